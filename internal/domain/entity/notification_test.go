package entity

import (
	"testing"

	"github.com/contactbot/payment-processor/internal/domain/signature"
	"github.com/stretchr/testify/assert"
)

func TestPaymentNotificationSigningPayload(t *testing.T) {
	terminal := "TERM"
	amount := int64(3000)
	success := true

	n := &PaymentNotification{
		TerminalKey: &terminal,
		Amount:      &amount,
		OrderID:     "order-1",
		Success:     &success,
		Status:      StatusConfirmed,
		PaymentID:   "1234567",
	}

	t.Run("Absent optional fields do not change the token", func(t *testing.T) {
		expected := signature.Token(signature.Payload{}.
			Add("TerminalKey", signature.String("TERM")).
			Add("Amount", signature.Int(3000)).
			Add("OrderId", signature.String("order-1")).
			Add("Success", signature.Bool(true)).
			Add("Status", signature.String("CONFIRMED")).
			Add("PaymentId", signature.String("1234567")), "secret")

		assert.Equal(t, expected, signature.Token(n.SigningPayload(), "secret"))
	})

	t.Run("DATA object does not change the token", func(t *testing.T) {
		withData := *n
		withData.HasData = true

		assert.Equal(t,
			signature.Token(n.SigningPayload(), "secret"),
			signature.Token(withData.SigningPayload(), "secret"))
	})

	t.Run("Update carries payment id and status", func(t *testing.T) {
		update := n.Update()

		assert.Equal(t, "1234567", *update.PaymentID)
		assert.Equal(t, StatusConfirmed, *update.Status)
	})
}

func TestNewSubscriptionReceipt(t *testing.T) {
	receipt := NewSubscriptionReceipt("buyer@example.com", 3000, ReceiptTemplate{
		Taxation: "usn_income",
		ItemName: "Subscription",
		Tax:      "none",
	})

	assert.Equal(t, "buyer@example.com", receipt.Email)
	assert.Len(t, receipt.Items, 1)
	assert.Equal(t, int64(3000), receipt.Items[0].Amount)
	assert.Equal(t, int64(3000), receipt.Items[0].Price)
	assert.Equal(t, float64(1), receipt.Items[0].Quantity)
}
