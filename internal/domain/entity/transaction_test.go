package entity

import (
	"strings"
	"testing"
	"time"

	errs "github.com/contactbot/payment-processor/internal/domain/error"
	coremocks "github.com/contactbot/payment-processor/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransaction(t *testing.T) {
	fixedTime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(fixedTime).Maybe()
	email := "buyer@example.com"

	t.Run("Valid transaction creation", func(t *testing.T) {
		tx, err := NewTransaction("order-1", "1234567", "user-1", 3000, StatusNew, &email, mockTime)

		require.NoError(t, err)
		assert.Equal(t, "order-1", tx.ID)
		assert.Equal(t, "1234567", tx.PaymentID)
		assert.Equal(t, "user-1", tx.UserID)
		assert.Equal(t, int64(3000), tx.Amount)
		assert.Equal(t, StatusNew, tx.Status)
		assert.Equal(t, &email, tx.Email)
		assert.Equal(t, fixedTime, tx.CreatedAt)
	})

	t.Run("Invalid input is rejected", func(t *testing.T) {
		testCases := []struct {
			name      string
			id        string
			paymentID string
			userID    string
			amount    int64
			status    TransactionStatus
			expected  error
		}{
			{"empty id", "", "1", "user-1", 1, StatusNew, errs.ErrInvalidTransactionID},
			{"id longer than 36", strings.Repeat("a", 37), "1", "user-1", 1, StatusNew, errs.ErrInvalidTransactionID},
			{"empty payment id", "order-1", "", "user-1", 1, StatusNew, errs.ErrInvalidPaymentID},
			{"payment id longer than 20", "order-1", strings.Repeat("9", 21), "user-1", 1, StatusNew, errs.ErrInvalidPaymentID},
			{"missing user", "order-1", "1", "", 1, StatusNew, errs.ErrInvalidUserID},
			{"negative amount", "order-1", "1", "user-1", -1, StatusNew, errs.ErrInvalidAmount},
			{"empty status", "order-1", "1", "user-1", 1, "", errs.ErrInvalidStatus},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				tx, err := NewTransaction(tc.id, tc.paymentID, tc.userID, tc.amount, tc.status, nil, mockTime)

				assert.ErrorIs(t, err, tc.expected)
				assert.Nil(t, tx)
			})
		}
	})
}

func TestTransactionUpdate(t *testing.T) {
	t.Run("Empty update has nothing to persist", func(t *testing.T) {
		assert.True(t, TransactionUpdate{}.IsEmpty())
		assert.NoError(t, TransactionUpdate{}.Validate())
	})

	t.Run("Apply overwrites only the provided fields", func(t *testing.T) {
		status := StatusConfirmed
		tx := Transaction{ID: "order-1", PaymentID: "1", UserID: "user-1", Amount: 3000, Status: StatusNew}

		updated := tx.Apply(TransactionUpdate{Status: &status})

		assert.Equal(t, StatusConfirmed, updated.Status)
		assert.Equal(t, "1", updated.PaymentID)
		assert.Equal(t, int64(3000), updated.Amount)
		assert.Equal(t, StatusNew, tx.Status, "original must not change")
	})

	t.Run("Validate enforces column limits", func(t *testing.T) {
		long := strings.Repeat("9", 21)
		assert.ErrorIs(t, TransactionUpdate{PaymentID: &long}.Validate(), errs.ErrInvalidPaymentID)

		empty := TransactionStatus("")
		assert.ErrorIs(t, TransactionUpdate{Status: &empty}.Validate(), errs.ErrInvalidStatus)
	})
}

func TestConfirmsPayment(t *testing.T) {
	testCases := []struct {
		previous TransactionStatus
		next     TransactionStatus
		expected bool
	}{
		{StatusNew, StatusConfirmed, true},
		{StatusRejected, StatusConfirmed, true},
		{StatusConfirmed, StatusConfirmed, false},
		{StatusNew, StatusRejected, false},
		{StatusConfirmed, StatusRefunded, false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.previous)+"->"+string(tc.next), func(t *testing.T) {
			assert.Equal(t, tc.expected, ConfirmsPayment(tc.previous, tc.next))
		})
	}
}
