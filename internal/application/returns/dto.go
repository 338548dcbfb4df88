package returns

import (
	"time"

	"github.com/aftersales/backend/internal/domain/returns"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateReturnRequest represents a request to create a return record
type CreateReturnRequest struct {
	OrderNumber       string                  `json:"orderNumber" binding:"required,min=1,max=50"`
	OrderID           uuid.UUID               `json:"orderId" binding:"required"`
	UserID            uuid.UUID               `json:"userId" binding:"required"`
	ReturnType        string                  `json:"returnType" binding:"required,min=1,max=50"`
	ReturnReason      string                  `json:"returnReason" binding:"required"`
	ReturnDescription string                  `json:"returnDescription" binding:"max=2000"`
	Items             []CreateReturnItemInput `json:"items" binding:"required,min=1"`
	RefundMethod      string                  `json:"refundMethod" binding:"max=50"`
}

// CreateReturnItemInput represents an item line in the create request
type CreateReturnItemInput struct {
	ProductName    string          `json:"productName" binding:"required,min=1,max=200"`
	Variant        string          `json:"variant" binding:"max=100"`
	ReturnQuantity int             `json:"returnQuantity" binding:"required,min=1"`
	Price          decimal.Decimal `json:"price" binding:"required"`
	Condition      string          `json:"condition" binding:"max=100"`
}

// UpdateStatusRequest represents a single-record status change request
type UpdateStatusRequest struct {
	Status     string `json:"status" binding:"required"`
	AdminNotes string `json:"adminNotes" binding:"max=2000"`
}

// BulkUpdateStatusRequest represents a batch status change request
type BulkUpdateStatusRequest struct {
	ReturnIDs []uuid.UUID `json:"returnIds" binding:"required,min=1"`
	Status    string      `json:"status" binding:"required"`
}

// BulkUpdateError describes a single failed record within a batch
type BulkUpdateError struct {
	RecordID string `json:"recordId"`
	Error    string `json:"error"`
}

// BulkUpdateResult reports per-record accounting for a batch status change.
// SuccessCount + FailedCount always equals the number of supplied IDs.
type BulkUpdateResult struct {
	SuccessCount int               `json:"successCount"`
	FailedCount  int               `json:"failedCount"`
	Errors       []BulkUpdateError `json:"errors"`
}

// ReturnListFilter represents filter options for the return record list
type ReturnListFilter struct {
	Status   string `form:"status" binding:"omitempty"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

// StatsFilter represents the optional filter for the statistics endpoint
type StatsFilter struct {
	Status string `form:"status" binding:"omitempty"`
}

// ReturnItemResponse represents an item line in API responses
type ReturnItemResponse struct {
	ID             uuid.UUID       `json:"id"`
	ProductName    string          `json:"productName"`
	Variant        string          `json:"variant,omitempty"`
	ReturnQuantity int             `json:"returnQuantity"`
	Price          decimal.Decimal `json:"price"`
	Condition      string          `json:"condition"`
}

// ReturnResponse represents a return record in API responses
type ReturnResponse struct {
	ID                uuid.UUID            `json:"id"`
	ReturnNumber      string               `json:"returnNumber"`
	OrderNumber       string               `json:"orderNumber"`
	OrderID           uuid.UUID            `json:"orderId"`
	UserID            uuid.UUID            `json:"userId"`
	ReturnType        string               `json:"returnType"`
	ReturnReason      string               `json:"returnReason"`
	ReturnDescription string               `json:"returnDescription,omitempty"`
	Items             []ReturnItemResponse `json:"items"`
	ReturnAmount      decimal.Decimal      `json:"returnAmount"`
	RefundMethod      string               `json:"refundMethod,omitempty"`
	ReturnStatus      string               `json:"returnStatus"`
	AdminNotes        string               `json:"adminNotes,omitempty"`
	ReturnDate        time.Time            `json:"returnDate"`
	ProcessedAt       *time.Time           `json:"processedAt,omitempty"`
	RefundedAt        *time.Time           `json:"refundedAt,omitempty"`
	CreatedAt         time.Time            `json:"createdAt"`
	UpdatedAt         time.Time            `json:"updatedAt"`
}

// StatsResponse represents dashboard statistics in API responses.
// The requested bucket is surfaced under the pending key, matching
// what the dashboard renders.
type StatsResponse struct {
	Total       int             `json:"total"`
	Pending     int             `json:"pending"`
	Approved    int             `json:"approved"`
	Rejected    int             `json:"rejected"`
	PickedUp    int             `json:"picked_up"`
	Processing  int             `json:"processing"`
	Refunded    int             `json:"refunded"`
	Cancelled   int             `json:"cancelled"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// ToReturnResponse converts a domain return record to a response DTO
func ToReturnResponse(record *returns.ReturnRecord) *ReturnResponse {
	items := make([]ReturnItemResponse, len(record.Items))
	for i, item := range record.Items {
		items[i] = ReturnItemResponse{
			ID:             item.ID,
			ProductName:    item.ProductName,
			Variant:        item.Variant,
			ReturnQuantity: item.ReturnQuantity,
			Price:          item.Price,
			Condition:      item.Condition,
		}
	}

	return &ReturnResponse{
		ID:                record.ID,
		ReturnNumber:      record.ReturnNumber,
		OrderNumber:       record.OrderNumber,
		OrderID:           record.OrderID,
		UserID:            record.UserID,
		ReturnType:        record.ReturnType,
		ReturnReason:      record.ReturnReason.String(),
		ReturnDescription: record.ReturnDescription,
		Items:             items,
		ReturnAmount:      record.ReturnAmount,
		RefundMethod:      record.RefundMethod,
		ReturnStatus:      record.Status.String(),
		AdminNotes:        record.AdminNotes,
		ReturnDate:        record.ReturnDate,
		ProcessedAt:       record.ProcessedAt,
		RefundedAt:        record.RefundedAt,
		CreatedAt:         record.CreatedAt,
		UpdatedAt:         record.UpdatedAt,
	}
}

// ToStatsResponse converts domain statistics to a response DTO
func ToStatsResponse(stats returns.Stats) *StatsResponse {
	return &StatsResponse{
		Total:       stats.Total,
		Pending:     stats.PerStatusCount[returns.StatusRequested],
		Approved:    stats.PerStatusCount[returns.StatusApproved],
		Rejected:    stats.PerStatusCount[returns.StatusRejected],
		PickedUp:    stats.PerStatusCount[returns.StatusPickedUp],
		Processing:  stats.PerStatusCount[returns.StatusProcessing],
		Refunded:    stats.PerStatusCount[returns.StatusRefunded],
		Cancelled:   stats.PerStatusCount[returns.StatusCancelled],
		TotalAmount: stats.TotalAmount,
	}
}
