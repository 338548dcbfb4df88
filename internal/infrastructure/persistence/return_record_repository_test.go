package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aftersales/backend/internal/domain/returns"
	"github.com/aftersales/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockReturnRecordRepository creates a GormReturnRecordRepository with a mocked SQL connection
func newMockReturnRecordRepository(t *testing.T) (*GormReturnRecordRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormReturnRecordRepository(gormDB), mock, mockDB
}

func returnRecordColumns() []string {
	return []string{
		"id", "return_number", "order_number", "order_id", "user_id",
		"return_type", "return_reason", "return_description", "return_amount",
		"refund_method", "status", "admin_notes", "return_date",
		"created_at", "updated_at",
	}
}

func addReturnRecordRow(rows *sqlmock.Rows, id uuid.UUID, returnNumber string, status string, amount string) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(
		id, returnNumber, "ORD-2026-00001", uuid.New(), uuid.New(),
		"refund", "defective_product", "", amount,
		"original_payment", status, "", now,
		now, now,
	)
}

func TestNewGormReturnRecordRepository(t *testing.T) {
	t.Run("creates repository with valid DB", func(t *testing.T) {
		repo, _, mockDB := newMockReturnRecordRepository(t)
		defer mockDB.Close()

		assert.NotNil(t, repo)
		assert.NotNil(t, repo.db)
	})
}

func TestGormReturnRecordRepository_FindByID(t *testing.T) {
	t.Run("finds existing record with items", func(t *testing.T) {
		repo, mock, mockDB := newMockReturnRecordRepository(t)
		defer mockDB.Close()

		recordID := uuid.New()
		rows := addReturnRecordRow(sqlmock.NewRows(returnRecordColumns()), recordID, "RET-2026-00001", "requested", "60")

		mock.ExpectQuery(`SELECT \* FROM "return_records" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(recordID, 1).
			WillReturnRows(rows)

		itemRows := sqlmock.NewRows([]string{"id", "return_id", "product_name", "variant", "return_quantity", "price", "condition", "created_at", "updated_at"}).
			AddRow(uuid.New(), recordID, "Wireless Mouse", "Black", 2, "25", "unopened", time.Now(), time.Now())
		mock.ExpectQuery(`SELECT \* FROM "return_items"`).
			WillReturnRows(itemRows)

		record, err := repo.FindByID(context.Background(), recordID)

		assert.NoError(t, err)
		assert.NotNil(t, record)
		assert.Equal(t, recordID, record.ID)
		assert.Equal(t, "RET-2026-00001", record.ReturnNumber)
		assert.Equal(t, returns.StatusRequested, record.Status)
		assert.Len(t, record.Items, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing record to domain not found", func(t *testing.T) {
		repo, mock, mockDB := newMockReturnRecordRepository(t)
		defer mockDB.Close()

		recordID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "return_records" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(recordID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		record, err := repo.FindByID(context.Background(), recordID)

		assert.Error(t, err)
		assert.Nil(t, record)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormReturnRecordRepository_FindByReturnNumber(t *testing.T) {
	t.Run("finds record by display number", func(t *testing.T) {
		repo, mock, mockDB := newMockReturnRecordRepository(t)
		defer mockDB.Close()

		recordID := uuid.New()
		rows := addReturnRecordRow(sqlmock.NewRows(returnRecordColumns()), recordID, "RET-2026-00042", "approved", "100")

		mock.ExpectQuery(`SELECT \* FROM "return_records" WHERE return_number = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("RET-2026-00042", 1).
			WillReturnRows(rows)
		mock.ExpectQuery(`SELECT \* FROM "return_items"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "return_id"}))

		record, err := repo.FindByReturnNumber(context.Background(), "RET-2026-00042")

		assert.NoError(t, err)
		assert.Equal(t, "RET-2026-00042", record.ReturnNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing number to domain not found", func(t *testing.T) {
		repo, mock, mockDB := newMockReturnRecordRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "return_records" WHERE return_number = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("RET-2026-99999", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByReturnNumber(context.Background(), "RET-2026-99999")

		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestGormReturnRecordRepository_FindAll(t *testing.T) {
	t.Run("applies status filter with pagination", func(t *testing.T) {
		repo, mock, mockDB := newMockReturnRecordRepository(t)
		defer mockDB.Close()

		recordID := uuid.New()
		rows := addReturnRecordRow(sqlmock.NewRows(returnRecordColumns()), recordID, "RET-2026-00001", "refunded", "200")

		mock.ExpectQuery(`SELECT \* FROM "return_records" WHERE status = \$1 ORDER BY return_date desc, id desc LIMIT .*`).
			WithArgs("refunded", 10).
			WillReturnRows(rows)
		mock.ExpectQuery(`SELECT \* FROM "return_items"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "return_id"}))

		filter := shared.DefaultFilter()
		filter.PageSize = 10
		filter.Filters["status"] = "refunded"

		records, err := repo.FindAll(context.Background(), filter)

		assert.NoError(t, err)
		assert.Len(t, records, 1)
		assert.Equal(t, returns.StatusRefunded, records[0].Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("offsets pages past the first", func(t *testing.T) {
		repo, mock, mockDB := newMockReturnRecordRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "return_records" ORDER BY return_date desc, id desc LIMIT .* OFFSET .*`).
			WithArgs(10, 20).
			WillReturnRows(sqlmock.NewRows(returnRecordColumns()))

		filter := shared.DefaultFilter()
		filter.Page = 3
		filter.PageSize = 10

		records, err := repo.FindAll(context.Background(), filter)

		assert.NoError(t, err)
		assert.Empty(t, records)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormReturnRecordRepository_FindAllUnpaged(t *testing.T) {
	t.Run("fetches every matching record without limit", func(t *testing.T) {
		repo, mock, mockDB := newMockReturnRecordRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows(returnRecordColumns())
		addReturnRecordRow(rows, uuid.New(), "RET-2026-00001", "requested", "100")
		addReturnRecordRow(rows, uuid.New(), "RET-2026-00002", "requested", "50")

		mock.ExpectQuery(`SELECT \* FROM "return_records" ORDER BY return_date DESC, id DESC`).
			WillReturnRows(rows)
		mock.ExpectQuery(`SELECT \* FROM "return_items"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "return_id"}))

		records, err := repo.FindAllUnpaged(context.Background(), shared.DefaultFilter())

		assert.NoError(t, err)
		assert.Len(t, records, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormReturnRecordRepository_Save(t *testing.T) {
	t.Run("saves record and replaces items in one transaction", func(t *testing.T) {
		repo, mock, mockDB := newMockReturnRecordRepository(t)
		defer mockDB.Close()

		item, err := returns.NewReturnItem("Wireless Mouse", "Black", 2, decimal.NewFromInt(25), "unopened")
		require.NoError(t, err)
		record, err := returns.NewReturnRecord(
			"RET-2026-00001", "ORD-2026-00001", uuid.New(), uuid.New(),
			"refund", returns.ReasonDefectiveProduct, "", []returns.ReturnItem{*item}, "original_payment",
		)
		require.NoError(t, err)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "return_records" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM "return_items" WHERE return_id = \$1`).
			WithArgs(record.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO "return_items"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = repo.Save(context.Background(), record)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormReturnRecordRepository_Count(t *testing.T) {
	t.Run("counts records matching status", func(t *testing.T) {
		repo, mock, mockDB := newMockReturnRecordRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "return_records" WHERE status = \$1`).
			WithArgs("requested").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

		filter := shared.DefaultFilter()
		filter.Filters["status"] = "requested"

		count, err := repo.Count(context.Background(), filter)

		assert.NoError(t, err)
		assert.Equal(t, int64(7), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormReturnRecordRepository_ExistsByReturnNumber(t *testing.T) {
	t.Run("reports existing number", func(t *testing.T) {
		repo, mock, mockDB := newMockReturnRecordRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "return_records" WHERE return_number = \$1`).
			WithArgs("RET-2026-00001").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsByReturnNumber(context.Background(), "RET-2026-00001")

		assert.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("reports free number", func(t *testing.T) {
		repo, mock, mockDB := newMockReturnRecordRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "return_records" WHERE return_number = \$1`).
			WithArgs("RET-2026-99999").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		exists, err := repo.ExistsByReturnNumber(context.Background(), "RET-2026-99999")

		assert.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestGormReturnRecordRepository_GenerateReturnNumber(t *testing.T) {
	t.Run("generates next sequential number", func(t *testing.T) {
		repo, mock, mockDB := newMockReturnRecordRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "return_records" WHERE return_number LIKE \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(41))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "return_records" WHERE return_number = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		number, err := repo.GenerateReturnNumber(context.Background())

		assert.NoError(t, err)
		assert.Contains(t, number, "RET-")
		assert.Contains(t, number, "00042")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("retries on collision", func(t *testing.T) {
		repo, mock, mockDB := newMockReturnRecordRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "return_records" WHERE return_number LIKE \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "return_records" WHERE return_number = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "return_records" WHERE return_number = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		number, err := repo.GenerateReturnNumber(context.Background())

		assert.NoError(t, err)
		assert.Contains(t, number, "00002")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
