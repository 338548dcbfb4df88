package returns

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestItems(t *testing.T) []ReturnItem {
	t.Helper()

	item1, err := NewReturnItem("Wireless Mouse", "Black", 2, decimal.NewFromInt(25), "unopened")
	require.NoError(t, err)
	item2, err := NewReturnItem("USB Cable", "", 1, decimal.NewFromInt(10), "used")
	require.NoError(t, err)

	return []ReturnItem{*item1, *item2}
}

func createTestReturnRecord(t *testing.T) *ReturnRecord {
	t.Helper()

	record, err := NewReturnRecord(
		"RET-2026-00001",
		"ORD-2026-00042",
		uuid.New(),
		uuid.New(),
		"refund",
		ReasonDefectiveProduct,
		"Left button stopped working after two days",
		createTestItems(t),
		"original_payment",
	)
	require.NoError(t, err)
	return record
}

func TestReturnStatus_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		status ReturnStatus
		want   bool
	}{
		{"requested is valid", StatusRequested, true},
		{"approved is valid", StatusApproved, true},
		{"rejected is valid", StatusRejected, true},
		{"picked_up is valid", StatusPickedUp, true},
		{"processing is valid", StatusProcessing, true},
		{"refunded is valid", StatusRefunded, true},
		{"cancelled is valid", StatusCancelled, true},
		{"shipped is invalid", ReturnStatus("shipped"), false},
		{"empty is invalid", ReturnStatus(""), false},
		{"uppercase is invalid", ReturnStatus("REQUESTED"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.IsValid())
		})
	}
}

func TestParseReturnStatus(t *testing.T) {
	t.Run("parses valid token", func(t *testing.T) {
		status, err := ParseReturnStatus("picked_up")
		require.NoError(t, err)
		assert.Equal(t, StatusPickedUp, status)
	})

	t.Run("rejects unknown token", func(t *testing.T) {
		_, err := ParseReturnStatus("shipped")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid return status")
	})
}

func TestReturnReason_IsValid(t *testing.T) {
	t.Run("accepts all enumerated reasons", func(t *testing.T) {
		reasons := []ReturnReason{
			ReasonDefectiveProduct, ReasonWrongItemReceived, ReasonSizeIssue,
			ReasonQualityIssue, ReasonNotAsDescribed, ReasonDamagedInShipping,
			ReasonChangedMind, ReasonOther,
		}
		for _, reason := range reasons {
			assert.True(t, reason.IsValid(), "reason %s should be valid", reason)
		}
	})

	t.Run("rejects unknown reason", func(t *testing.T) {
		assert.False(t, ReturnReason("lost_interest").IsValid())
	})
}

func TestNewReturnItem(t *testing.T) {
	t.Run("creates item with valid fields", func(t *testing.T) {
		item, err := NewReturnItem("Keyboard", "White", 3, decimal.NewFromFloat(49.99), "unopened")

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, item.ID)
		assert.Equal(t, "Keyboard", item.ProductName)
		assert.Equal(t, 3, item.ReturnQuantity)
		assert.True(t, decimal.NewFromFloat(149.97).Equal(item.Subtotal()))
	})

	t.Run("rejects empty product name", func(t *testing.T) {
		_, err := NewReturnItem("", "", 1, decimal.NewFromInt(10), "unopened")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "product name")
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := NewReturnItem("Keyboard", "", 0, decimal.NewFromInt(10), "unopened")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "quantity")
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewReturnItem("Keyboard", "", 1, decimal.NewFromInt(-1), "unopened")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "price")
	})
}

func TestNewReturnRecord(t *testing.T) {
	t.Run("creates record in requested state", func(t *testing.T) {
		record := createTestReturnRecord(t)

		assert.Equal(t, StatusRequested, record.Status)
		assert.Equal(t, "RET-2026-00001", record.ReturnNumber)
		assert.Nil(t, record.ProcessedAt)
		assert.Nil(t, record.RefundedAt)
		assert.False(t, record.ReturnDate.IsZero())
	})

	t.Run("snapshots return amount from items", func(t *testing.T) {
		record := createTestReturnRecord(t)

		// 2 * 25 + 1 * 10
		assert.True(t, decimal.NewFromInt(60).Equal(record.ReturnAmount))
	})

	t.Run("rejects empty item list", func(t *testing.T) {
		_, err := NewReturnRecord(
			"RET-2026-00002", "ORD-2026-00043", uuid.New(), uuid.New(),
			"refund", ReasonOther, "", nil, "original_payment",
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least one item")
	})

	t.Run("rejects invalid reason", func(t *testing.T) {
		_, err := NewReturnRecord(
			"RET-2026-00002", "ORD-2026-00043", uuid.New(), uuid.New(),
			"refund", ReturnReason("bored"), "", createTestItems(t), "original_payment",
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid return reason")
	})

	t.Run("rejects empty return number", func(t *testing.T) {
		_, err := NewReturnRecord(
			"", "ORD-2026-00043", uuid.New(), uuid.New(),
			"refund", ReasonOther, "", createTestItems(t), "original_payment",
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "return number")
	})
}

func TestReturnRecord_ApplyStatusChange(t *testing.T) {
	t.Run("applies any valid target status", func(t *testing.T) {
		for _, target := range AllStatuses() {
			record := createTestReturnRecord(t)

			err := record.ApplyStatusChange(target, "")

			require.NoError(t, err)
			assert.Equal(t, target, record.Status)
		}
	})

	t.Run("rejects status outside the enumerated set", func(t *testing.T) {
		record := createTestReturnRecord(t)

		err := record.ApplyStatusChange(ReturnStatus("shipped"), "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid return status")
		assert.Equal(t, StatusRequested, record.Status)
		assert.Nil(t, record.ProcessedAt)
	})

	t.Run("synthesizes admin note when omitted", func(t *testing.T) {
		record := createTestReturnRecord(t)

		err := record.ApplyStatusChange(StatusApproved, "")

		require.NoError(t, err)
		assert.Equal(t, "Status changed from requested to approved by admin", record.AdminNotes)
	})

	t.Run("keeps supplied admin note", func(t *testing.T) {
		record := createTestReturnRecord(t)

		err := record.ApplyStatusChange(StatusRejected, "Items show heavy wear")

		require.NoError(t, err)
		assert.Equal(t, "Items show heavy wear", record.AdminNotes)
	})

	t.Run("re-applying same status succeeds", func(t *testing.T) {
		record := createTestReturnRecord(t)
		require.NoError(t, record.ApplyStatusChange(StatusApproved, ""))

		err := record.ApplyStatusChange(StatusApproved, "double-checked")

		require.NoError(t, err)
		assert.Equal(t, StatusApproved, record.Status)
		assert.Equal(t, "double-checked", record.AdminNotes)
	})

	t.Run("sets processedAt on first exit from requested", func(t *testing.T) {
		record := createTestReturnRecord(t)
		require.Nil(t, record.ProcessedAt)

		require.NoError(t, record.ApplyStatusChange(StatusApproved, ""))
		require.NotNil(t, record.ProcessedAt)
		first := *record.ProcessedAt

		// Moving back to requested and out again must not reset it
		require.NoError(t, record.ApplyStatusChange(StatusRequested, ""))
		require.NoError(t, record.ApplyStatusChange(StatusProcessing, ""))
		assert.Equal(t, first, *record.ProcessedAt)
	})

	t.Run("does not set processedAt when re-applying requested", func(t *testing.T) {
		record := createTestReturnRecord(t)

		require.NoError(t, record.ApplyStatusChange(StatusRequested, ""))

		assert.Nil(t, record.ProcessedAt)
	})

	t.Run("sets refundedAt when status becomes refunded", func(t *testing.T) {
		record := createTestReturnRecord(t)

		require.NoError(t, record.ApplyStatusChange(StatusRefunded, ""))

		require.NotNil(t, record.RefundedAt)
		require.NotNil(t, record.ProcessedAt)
		assert.True(t, record.IsRefunded())
	})

	t.Run("keeps refundedAt across later changes", func(t *testing.T) {
		record := createTestReturnRecord(t)
		require.NoError(t, record.ApplyStatusChange(StatusRefunded, ""))
		first := *record.RefundedAt

		require.NoError(t, record.ApplyStatusChange(StatusProcessing, ""))
		require.NoError(t, record.ApplyStatusChange(StatusRefunded, ""))

		assert.Equal(t, first, *record.RefundedAt)
	})

	t.Run("allows backward transitions", func(t *testing.T) {
		record := createTestReturnRecord(t)
		require.NoError(t, record.ApplyStatusChange(StatusProcessing, ""))

		err := record.ApplyStatusChange(StatusApproved, "")

		require.NoError(t, err)
		assert.Equal(t, StatusApproved, record.Status)
	})

	t.Run("allows skipping straight to refunded", func(t *testing.T) {
		record := createTestReturnRecord(t)

		err := record.ApplyStatusChange(StatusRefunded, "")

		require.NoError(t, err)
		assert.Equal(t, StatusRefunded, record.Status)
	})

	t.Run("does not touch other fields", func(t *testing.T) {
		record := createTestReturnRecord(t)
		amount := record.ReturnAmount
		number := record.ReturnNumber
		itemCount := len(record.Items)

		require.NoError(t, record.ApplyStatusChange(StatusApproved, ""))

		assert.True(t, amount.Equal(record.ReturnAmount))
		assert.Equal(t, number, record.ReturnNumber)
		assert.Equal(t, itemCount, len(record.Items))
	})
}

func TestReturnRecord_ItemCount(t *testing.T) {
	t.Run("sums quantities across lines", func(t *testing.T) {
		record := createTestReturnRecord(t)
		assert.Equal(t, 3, record.ItemCount())
	})
}

func TestReturnRecord_StatusHistoryNote(t *testing.T) {
	t.Run("note reflects each consecutive transition", func(t *testing.T) {
		record := createTestReturnRecord(t)
		sequence := []ReturnStatus{StatusApproved, StatusPickedUp, StatusProcessing, StatusRefunded}

		previous := record.Status
		for _, target := range sequence {
			require.NoError(t, record.ApplyStatusChange(target, ""))
			expected := fmt.Sprintf("Status changed from %s to %s by admin", previous, target)
			assert.Equal(t, expected, record.AdminNotes)
			previous = target
		}
	})
}
