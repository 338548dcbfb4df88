package models

import (
	"time"

	"github.com/aftersales/backend/internal/domain/returns"
	"github.com/aftersales/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReturnRecordModel is the persistence model for the ReturnRecord aggregate root.
type ReturnRecordModel struct {
	ID                uuid.UUID             `gorm:"type:uuid;primary_key"`
	ReturnNumber      string                `gorm:"type:varchar(50);not null;uniqueIndex"`
	OrderNumber       string                `gorm:"type:varchar(50);not null;index"`
	OrderID           uuid.UUID             `gorm:"type:uuid;not null;index"`
	UserID            uuid.UUID             `gorm:"type:uuid;not null;index"`
	ReturnType        string                `gorm:"type:varchar(50);not null"`
	ReturnReason      string                `gorm:"type:varchar(50);not null"`
	ReturnDescription string                `gorm:"type:text"`
	Items             []ReturnItemModel     `gorm:"foreignKey:ReturnID;references:ID"`
	ReturnAmount      decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	RefundMethod      string                `gorm:"type:varchar(50)"`
	Status            returns.ReturnStatus  `gorm:"type:varchar(20);not null;default:'requested';index"`
	AdminNotes        string                `gorm:"type:text"`
	ReturnDate        time.Time             `gorm:"not null;index"`
	ProcessedAt       *time.Time
	RefundedAt        *time.Time
	CreatedAt         time.Time `gorm:"not null"`
	UpdatedAt         time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ReturnRecordModel) TableName() string {
	return "return_records"
}

// ToDomain converts the persistence model to a domain ReturnRecord entity.
func (m *ReturnRecordModel) ToDomain() *returns.ReturnRecord {
	record := &returns.ReturnRecord{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ReturnNumber:      m.ReturnNumber,
		OrderNumber:       m.OrderNumber,
		OrderID:           m.OrderID,
		UserID:            m.UserID,
		ReturnType:        m.ReturnType,
		ReturnReason:      returns.ReturnReason(m.ReturnReason),
		ReturnDescription: m.ReturnDescription,
		ReturnAmount:      m.ReturnAmount,
		RefundMethod:      m.RefundMethod,
		Status:            m.Status,
		AdminNotes:        m.AdminNotes,
		ReturnDate:        m.ReturnDate,
		ProcessedAt:       m.ProcessedAt,
		RefundedAt:        m.RefundedAt,
		Items:             make([]returns.ReturnItem, len(m.Items)),
	}
	for i, item := range m.Items {
		record.Items[i] = *item.ToDomain()
	}
	return record
}

// FromDomain populates the persistence model from a domain ReturnRecord entity.
func (m *ReturnRecordModel) FromDomain(r *returns.ReturnRecord) {
	m.ID = r.ID
	m.ReturnNumber = r.ReturnNumber
	m.OrderNumber = r.OrderNumber
	m.OrderID = r.OrderID
	m.UserID = r.UserID
	m.ReturnType = r.ReturnType
	m.ReturnReason = r.ReturnReason.String()
	m.ReturnDescription = r.ReturnDescription
	m.ReturnAmount = r.ReturnAmount
	m.RefundMethod = r.RefundMethod
	m.Status = r.Status
	m.AdminNotes = r.AdminNotes
	m.ReturnDate = r.ReturnDate
	m.ProcessedAt = r.ProcessedAt
	m.RefundedAt = r.RefundedAt
	m.CreatedAt = r.CreatedAt
	m.UpdatedAt = r.UpdatedAt
	m.Items = make([]ReturnItemModel, len(r.Items))
	for i, item := range r.Items {
		m.Items[i] = *ReturnItemModelFromDomain(r.ID, &item)
	}
}

// ReturnRecordModelFromDomain creates a new persistence model from a domain ReturnRecord entity.
func ReturnRecordModelFromDomain(r *returns.ReturnRecord) *ReturnRecordModel {
	m := &ReturnRecordModel{}
	m.FromDomain(r)
	return m
}

// ReturnItemModel is the persistence model for a return item line.
type ReturnItemModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key"`
	ReturnID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName    string          `gorm:"type:varchar(200);not null"`
	Variant        string          `gorm:"type:varchar(100)"`
	ReturnQuantity int             `gorm:"not null"`
	Price          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Condition      string          `gorm:"type:varchar(100)"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ReturnItemModel) TableName() string {
	return "return_items"
}

// ToDomain converts the persistence model to a domain ReturnItem value.
func (m *ReturnItemModel) ToDomain() *returns.ReturnItem {
	return &returns.ReturnItem{
		ID:             m.ID,
		ProductName:    m.ProductName,
		Variant:        m.Variant,
		ReturnQuantity: m.ReturnQuantity,
		Price:          m.Price,
		Condition:      m.Condition,
	}
}

// ReturnItemModelFromDomain creates a new persistence model from a domain ReturnItem value.
func ReturnItemModelFromDomain(returnID uuid.UUID, i *returns.ReturnItem) *ReturnItemModel {
	return &ReturnItemModel{
		ID:             i.ID,
		ReturnID:       returnID,
		ProductName:    i.ProductName,
		Variant:        i.Variant,
		ReturnQuantity: i.ReturnQuantity,
		Price:          i.Price,
		Condition:      i.Condition,
	}
}
