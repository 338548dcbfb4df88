package returns

import (
	"context"
	"errors"

	"github.com/aftersales/backend/internal/domain/returns"
	"github.com/aftersales/backend/internal/domain/shared"
	"github.com/google/uuid"
)

const statsCacheKeyAll = "all"

// ReturnService handles return record use cases
type ReturnService struct {
	returnRepo returns.ReturnRecordRepository
	statsCache StatsCache
}

// NewReturnService creates a new return service. The stats cache is
// optional; pass nil to recompute statistics on every request.
func NewReturnService(returnRepo returns.ReturnRecordRepository, statsCache StatsCache) *ReturnService {
	return &ReturnService{
		returnRepo: returnRepo,
		statsCache: statsCache,
	}
}

// Create creates a new return record in the requested state
func (s *ReturnService) Create(ctx context.Context, req CreateReturnRequest) (*ReturnResponse, error) {
	reason := returns.ReturnReason(req.ReturnReason)
	if !reason.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "invalid return reason: "+req.ReturnReason)
	}

	items := make([]returns.ReturnItem, 0, len(req.Items))
	for _, input := range req.Items {
		item, err := returns.NewReturnItem(
			input.ProductName,
			input.Variant,
			input.ReturnQuantity,
			input.Price,
			input.Condition,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	returnNumber, err := s.returnRepo.GenerateReturnNumber(ctx)
	if err != nil {
		return nil, err
	}

	record, err := returns.NewReturnRecord(
		returnNumber,
		req.OrderNumber,
		req.OrderID,
		req.UserID,
		req.ReturnType,
		reason,
		req.ReturnDescription,
		items,
		req.RefundMethod,
	)
	if err != nil {
		return nil, err
	}

	if err := s.returnRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)
	return ToReturnResponse(record), nil
}

// GetByID retrieves a return record by its ID
func (s *ReturnService) GetByID(ctx context.Context, id uuid.UUID) (*ReturnResponse, error) {
	record, err := s.returnRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToReturnResponse(record), nil
}

// GetByReturnNumber retrieves a return record by its display number
func (s *ReturnService) GetByReturnNumber(ctx context.Context, returnNumber string) (*ReturnResponse, error) {
	if returnNumber == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "return number cannot be empty")
	}
	record, err := s.returnRepo.FindByReturnNumber(ctx, returnNumber)
	if err != nil {
		return nil, err
	}
	return ToReturnResponse(record), nil
}

// List retrieves return records filtered by status, paginated. Pages past
// the last one yield an empty item list rather than an error.
func (s *ReturnService) List(ctx context.Context, filter ReturnListFilter) (*shared.Paginated[ReturnResponse], error) {
	if filter.Status != "" {
		if _, err := returns.ParseReturnStatus(filter.Status); err != nil {
			return nil, err
		}
	}

	domainFilter := s.buildFilter(filter.Status)
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	if domainFilter.Page < 1 {
		domainFilter.Page = 1
	}
	if domainFilter.PageSize < 1 {
		domainFilter.PageSize = 20
	}

	records, err := s.returnRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.returnRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]ReturnResponse, len(records))
	for i := range records {
		items[i] = *ToReturnResponse(&records[i])
	}

	result := shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// UpdateStatus applies a single status change through the transition engine
// and returns the full updated record
func (s *ReturnService) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*ReturnResponse, error) {
	target, err := returns.ParseReturnStatus(req.Status)
	if err != nil {
		return nil, err
	}

	record, err := s.returnRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := record.ApplyStatusChange(target, req.AdminNotes); err != nil {
		return nil, err
	}

	if err := s.returnRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)
	return ToReturnResponse(record), nil
}

// BulkUpdateStatus applies one target status to every supplied record ID,
// sequentially and independently. A failed record is reported in the result
// and never aborts the remainder of the batch. The target status is
// validated once up front so an out-of-set value rejects the whole batch
// before any record is touched.
func (s *ReturnService) BulkUpdateStatus(ctx context.Context, req BulkUpdateStatusRequest) (*BulkUpdateResult, error) {
	if len(req.ReturnIDs) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "at least one return ID is required")
	}
	target, err := returns.ParseReturnStatus(req.Status)
	if err != nil {
		return nil, err
	}

	result := &BulkUpdateResult{Errors: []BulkUpdateError{}}
	for _, id := range req.ReturnIDs {
		if err := s.applyStatusTo(ctx, id, target); err != nil {
			result.FailedCount++
			result.Errors = append(result.Errors, BulkUpdateError{
				RecordID: id.String(),
				Error:    errorLabel(err),
			})
			continue
		}
		result.SuccessCount++
	}

	if result.SuccessCount > 0 {
		s.invalidateStats(ctx)
	}
	return result, nil
}

// applyStatusTo runs the transition engine for one record. Each call
// commits independently; there is no transaction spanning a batch.
func (s *ReturnService) applyStatusTo(ctx context.Context, id uuid.UUID, target returns.ReturnStatus) error {
	record, err := s.returnRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := record.ApplyStatusChange(target, ""); err != nil {
		return err
	}
	return s.returnRepo.Save(ctx, record)
}

// GetStats computes dashboard statistics over the eligible record set,
// consulting the stats cache first when one is configured
func (s *ReturnService) GetStats(ctx context.Context, filter StatsFilter) (*StatsResponse, error) {
	if filter.Status != "" {
		if _, err := returns.ParseReturnStatus(filter.Status); err != nil {
			return nil, err
		}
	}

	key := statsCacheKeyAll
	if filter.Status != "" {
		key = filter.Status
	}

	if s.statsCache != nil {
		if cached, err := s.statsCache.Get(ctx, key); err == nil && cached != nil {
			return cached, nil
		}
	}

	records, err := s.returnRepo.FindAllUnpaged(ctx, s.buildFilter(filter.Status))
	if err != nil {
		return nil, err
	}

	response := ToStatsResponse(returns.ComputeStats(records))

	if s.statsCache != nil {
		// A cache write failure is not worth failing the request over
		_ = s.statsCache.Set(ctx, key, response)
	}
	return response, nil
}

func (s *ReturnService) buildFilter(status string) shared.Filter {
	filter := shared.DefaultFilter()
	if status != "" {
		filter.Filters["status"] = status
	}
	return filter
}

func (s *ReturnService) invalidateStats(ctx context.Context) {
	if s.statsCache == nil {
		return
	}
	_ = s.statsCache.Invalidate(ctx)
}

// errorLabel reports a stable identifier for a failed record in bulk
// results: the domain error code when available, the raw message otherwise
func errorLabel(err error) string {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return err.Error()
}
