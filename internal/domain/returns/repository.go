package returns

import (
	"context"

	"github.com/aftersales/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ReturnRecordRepository defines persistence operations for return records.
// Records are never deleted, so no delete operation is exposed.
type ReturnRecordRepository interface {
	// FindByID retrieves a return record by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ReturnRecord, error)

	// FindByReturnNumber retrieves a return record by its display number
	FindByReturnNumber(ctx context.Context, returnNumber string) (*ReturnRecord, error)

	// FindAll retrieves return records matching the filter, paginated
	FindAll(ctx context.Context, filter shared.Filter) ([]ReturnRecord, error)

	// FindAllUnpaged retrieves every record matching the filter's criteria,
	// ignoring pagination. Used by the statistics aggregator.
	FindAllUnpaged(ctx context.Context, filter shared.Filter) ([]ReturnRecord, error)

	// Save persists a return record and its item lines
	Save(ctx context.Context, record *ReturnRecord) error

	// Count returns the number of records matching the filter's criteria
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByReturnNumber checks whether a return number is already taken
	ExistsByReturnNumber(ctx context.Context, returnNumber string) (bool, error)

	// GenerateReturnNumber produces a unique display number for a new record
	GenerateReturnNumber(ctx context.Context) (string, error)
}
