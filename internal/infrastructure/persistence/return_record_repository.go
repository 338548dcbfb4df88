package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aftersales/backend/internal/domain/returns"
	"github.com/aftersales/backend/internal/domain/shared"
	"github.com/aftersales/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormReturnRecordRepository implements returns.ReturnRecordRepository using GORM
type GormReturnRecordRepository struct {
	db *gorm.DB
}

// NewGormReturnRecordRepository creates a new GORM-based return record repository
func NewGormReturnRecordRepository(db *gorm.DB) *GormReturnRecordRepository {
	return &GormReturnRecordRepository{db: db}
}

// FindByID retrieves a return record by ID, with its item lines
func (r *GormReturnRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*returns.ReturnRecord, error) {
	var model models.ReturnRecordModel
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByReturnNumber retrieves a return record by its display number
func (r *GormReturnRecordRepository) FindByReturnNumber(ctx context.Context, returnNumber string) (*returns.ReturnRecord, error) {
	var model models.ReturnRecordModel
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("return_number = ?", returnNumber).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll retrieves return records matching the filter, paginated
func (r *GormReturnRecordRepository) FindAll(ctx context.Context, filter shared.Filter) ([]returns.ReturnRecord, error) {
	var modelList []models.ReturnRecordModel
	query := r.applyFilter(r.db.WithContext(ctx).Preload("Items"), filter)
	if err := query.Find(&modelList).Error; err != nil {
		return nil, err
	}
	return toDomainRecords(modelList), nil
}

// FindAllUnpaged retrieves every record matching the filter's criteria,
// ordered like FindAll but without pagination
func (r *GormReturnRecordRepository) FindAllUnpaged(ctx context.Context, filter shared.Filter) ([]returns.ReturnRecord, error) {
	var modelList []models.ReturnRecordModel
	query := r.applyCriteria(r.db.WithContext(ctx).Preload("Items"), filter)
	query = query.Order("return_date DESC, id DESC")
	if err := query.Find(&modelList).Error; err != nil {
		return nil, err
	}
	return toDomainRecords(modelList), nil
}

// Save persists a return record and replaces its item lines.
// The whole write runs in one transaction so a record is never stored
// without its items.
func (r *GormReturnRecordRepository) Save(ctx context.Context, record *returns.ReturnRecord) error {
	model := models.ReturnRecordModelFromDomain(record)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(model).Error; err != nil {
			return err
		}

		// Item lines are immutable in the domain, so a blind
		// delete-and-reinsert keeps reconciliation trivial
		if err := tx.Where("return_id = ?", model.ID).Delete(&models.ReturnItemModel{}).Error; err != nil {
			return err
		}
		if len(model.Items) > 0 {
			if err := tx.Create(&model.Items).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Count returns the number of records matching the filter's criteria
func (r *GormReturnRecordRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyCriteria(r.db.WithContext(ctx).Model(&models.ReturnRecordModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByReturnNumber checks whether a return number is already taken
func (r *GormReturnRecordRepository) ExistsByReturnNumber(ctx context.Context, returnNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ReturnRecordModel{}).
		Where("return_number = ?", returnNumber).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GenerateReturnNumber produces a unique display number of the form
// RET-<year>-<NNNNN>, retrying on collision
func (r *GormReturnRecordRepository) GenerateReturnNumber(ctx context.Context) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("RET-%d-", year)

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ReturnRecordModel{}).
		Where("return_number LIKE ?", prefix+"%").
		Count(&count).Error
	if err != nil {
		return "", err
	}

	for attempt := 0; attempt < 10; attempt++ {
		candidate := fmt.Sprintf("%s%05d", prefix, count+int64(attempt)+1)
		exists, err := r.ExistsByReturnNumber(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", shared.NewDomainError("PERSISTENCE_FAILURE", "could not generate a unique return number")
}

// applyFilter applies filter criteria plus ordering and pagination
func (r *GormReturnRecordRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyCriteria(query, filter)

	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "return_date"
	}
	orderDir := filter.OrderDir
	if orderDir != "asc" {
		orderDir = "desc"
	}
	// Secondary id ordering keeps pagination stable when timestamps collide
	query = query.Order(fmt.Sprintf("%s %s, id %s", orderBy, orderDir, orderDir))

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}

// applyCriteria applies the filter's criteria without ordering or pagination
func (r *GormReturnRecordRepository) applyCriteria(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "user_id":
			query = query.Where("user_id = ?", value)
		case "order_number":
			query = query.Where("order_number = ?", value)
		case "start_date":
			query = query.Where("return_date >= ?", value)
		case "end_date":
			query = query.Where("return_date <= ?", value)
		}
	}
	return query
}

func toDomainRecords(modelList []models.ReturnRecordModel) []returns.ReturnRecord {
	records := make([]returns.ReturnRecord, len(modelList))
	for i := range modelList {
		records[i] = *modelList[i].ToDomain()
	}
	return records
}

// Ensure GormReturnRecordRepository implements the repository interface
var _ returns.ReturnRecordRepository = (*GormReturnRecordRepository)(nil)
