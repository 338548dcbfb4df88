package returns

import (
	"fmt"
	"time"

	"github.com/aftersales/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReturnStatus represents the lifecycle status of a return record
type ReturnStatus string

const (
	StatusRequested  ReturnStatus = "requested"
	StatusApproved   ReturnStatus = "approved"
	StatusRejected   ReturnStatus = "rejected"
	StatusPickedUp   ReturnStatus = "picked_up"
	StatusProcessing ReturnStatus = "processing"
	StatusRefunded   ReturnStatus = "refunded"
	StatusCancelled  ReturnStatus = "cancelled"
)

// AllStatuses returns every valid return status in display order
func AllStatuses() []ReturnStatus {
	return []ReturnStatus{
		StatusRequested,
		StatusApproved,
		StatusRejected,
		StatusPickedUp,
		StatusProcessing,
		StatusRefunded,
		StatusCancelled,
	}
}

// IsValid checks if the status is a valid return status
func (s ReturnStatus) IsValid() bool {
	switch s {
	case StatusRequested, StatusApproved, StatusRejected, StatusPickedUp,
		StatusProcessing, StatusRefunded, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of the status
func (s ReturnStatus) String() string {
	return string(s)
}

// ParseReturnStatus converts a wire value into a ReturnStatus,
// rejecting anything outside the seven allowed tokens
func ParseReturnStatus(value string) (ReturnStatus, error) {
	status := ReturnStatus(value)
	if !status.IsValid() {
		return "", shared.NewDomainError("INVALID_STATUS",
			fmt.Sprintf("invalid return status: %s", value))
	}
	return status, nil
}

// ReturnReason represents why the customer is returning the items
type ReturnReason string

const (
	ReasonDefectiveProduct  ReturnReason = "defective_product"
	ReasonWrongItemReceived ReturnReason = "wrong_item_received"
	ReasonSizeIssue         ReturnReason = "size_issue"
	ReasonQualityIssue      ReturnReason = "quality_issue"
	ReasonNotAsDescribed    ReturnReason = "not_as_described"
	ReasonDamagedInShipping ReturnReason = "damaged_in_shipping"
	ReasonChangedMind       ReturnReason = "changed_mind"
	ReasonOther             ReturnReason = "other"
)

// IsValid checks if the reason is a valid return reason
func (r ReturnReason) IsValid() bool {
	switch r {
	case ReasonDefectiveProduct, ReasonWrongItemReceived, ReasonSizeIssue,
		ReasonQualityIssue, ReasonNotAsDescribed, ReasonDamagedInShipping,
		ReasonChangedMind, ReasonOther:
		return true
	}
	return false
}

// String returns the string representation of the reason
func (r ReturnReason) String() string {
	return string(r)
}

// ReturnItem represents a single item line within a return record.
// Item lines are immutable once the record is created.
type ReturnItem struct {
	ID             uuid.UUID
	ProductName    string
	Variant        string
	ReturnQuantity int
	Price          decimal.Decimal
	Condition      string
}

// NewReturnItem creates a validated return item line
func NewReturnItem(productName, variant string, quantity int, price decimal.Decimal, condition string) (*ReturnItem, error) {
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "product name cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_INPUT", "return quantity must be at least 1")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "price cannot be negative")
	}

	return &ReturnItem{
		ID:             uuid.New(),
		ProductName:    productName,
		Variant:        variant,
		ReturnQuantity: quantity,
		Price:          price,
		Condition:      condition,
	}, nil
}

// Subtotal returns price * quantity for this line
func (i *ReturnItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.ReturnQuantity)))
}

// ReturnRecord is the aggregate root for a customer return request.
// The status field is the governed lifecycle field; all other mutations
// go through the record's creation path.
type ReturnRecord struct {
	shared.BaseEntity
	ReturnNumber      string
	OrderNumber       string
	OrderID           uuid.UUID
	UserID            uuid.UUID
	ReturnType        string
	ReturnReason      ReturnReason
	ReturnDescription string
	Items             []ReturnItem
	ReturnAmount      decimal.Decimal
	RefundMethod      string
	Status            ReturnStatus
	AdminNotes        string
	ReturnDate        time.Time
	ProcessedAt       *time.Time
	RefundedAt        *time.Time
}

// NewReturnRecord creates a return record in the requested state.
// ReturnAmount is snapshotted from the item lines at creation and is
// never recomputed afterwards.
func NewReturnRecord(
	returnNumber string,
	orderNumber string,
	orderID uuid.UUID,
	userID uuid.UUID,
	returnType string,
	reason ReturnReason,
	description string,
	items []ReturnItem,
	refundMethod string,
) (*ReturnRecord, error) {
	if returnNumber == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "return number cannot be empty")
	}
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "order number cannot be empty")
	}
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "order ID cannot be empty")
	}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "user ID cannot be empty")
	}
	if !reason.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT",
			fmt.Sprintf("invalid return reason: %s", reason))
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "return record must have at least one item")
	}

	amount := decimal.Zero
	for i := range items {
		if items[i].ReturnQuantity < 1 {
			return nil, shared.NewDomainError("INVALID_INPUT", "return quantity must be at least 1")
		}
		if items[i].Price.IsNegative() {
			return nil, shared.NewDomainError("INVALID_INPUT", "price cannot be negative")
		}
		amount = amount.Add(items[i].Subtotal())
	}

	base := shared.NewBaseEntity()
	return &ReturnRecord{
		BaseEntity:        base,
		ReturnNumber:      returnNumber,
		OrderNumber:       orderNumber,
		OrderID:           orderID,
		UserID:            userID,
		ReturnType:        returnType,
		ReturnReason:      reason,
		ReturnDescription: description,
		Items:             items,
		ReturnAmount:      amount,
		RefundMethod:      refundMethod,
		Status:            StatusRequested,
		ReturnDate:        base.CreatedAt,
	}, nil
}

// ApplyStatusChange moves the record to the target status. Transitions are
// deliberately permissive: any of the seven statuses may be set from any
// current status, including re-applying the current one (idempotent).
//
// Side effects on the record:
//   - AdminNotes is overwritten with the supplied note, or with a
//     synthesized "Status changed from X to Y by admin" note when empty.
//   - ProcessedAt is set on the first transition out of requested.
//   - RefundedAt is set the first time the status becomes refunded.
func (r *ReturnRecord) ApplyStatusChange(target ReturnStatus, adminNotes string) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS",
			fmt.Sprintf("invalid return status: %s", target))
	}

	previous := r.Status
	now := time.Now()

	if adminNotes == "" {
		adminNotes = fmt.Sprintf("Status changed from %s to %s by admin", previous, target)
	}

	r.Status = target
	r.AdminNotes = adminNotes

	if previous == StatusRequested && target != StatusRequested && r.ProcessedAt == nil {
		r.ProcessedAt = &now
	}
	if target == StatusRefunded && r.RefundedAt == nil {
		r.RefundedAt = &now
	}

	r.UpdatedAt = now
	return nil
}

// IsRefunded checks if the record has reached the refunded status
func (r *ReturnRecord) IsRefunded() bool {
	return r.Status == StatusRefunded
}

// IsPending checks if the record is still awaiting admin action
func (r *ReturnRecord) IsPending() bool {
	return r.Status == StatusRequested
}

// ItemCount returns the total quantity across all item lines
func (r *ReturnRecord) ItemCount() int {
	count := 0
	for i := range r.Items {
		count += r.Items[i].ReturnQuantity
	}
	return count
}
