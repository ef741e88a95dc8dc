package payment

import (
	"context"
	"strings"
	"testing"

	"go-booking-engine/internal/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACProvider_CreateOrder(t *testing.T) {
	provider := payment.NewHMACProvider("test-secret")

	orderID, err := provider.CreateOrder(context.Background(), 708.0, "ABC234")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(orderID, "order_"))
}

func TestHMACProvider_VerifySignature(t *testing.T) {
	provider := payment.NewHMACProvider("test-secret")

	t.Run("ValidSignature", func(t *testing.T) {
		sig := provider.Sign("order_1", "pay_1")
		assert.True(t, provider.VerifySignature("order_1", "pay_1", sig))
	})

	t.Run("WrongPaymentID", func(t *testing.T) {
		sig := provider.Sign("order_1", "pay_1")
		assert.False(t, provider.VerifySignature("order_1", "pay_2", sig))
	})

	t.Run("WrongOrderID", func(t *testing.T) {
		sig := provider.Sign("order_1", "pay_1")
		assert.False(t, provider.VerifySignature("order_2", "pay_1", sig))
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other := payment.NewHMACProvider("other-secret")
		sig := other.Sign("order_1", "pay_1")
		assert.False(t, provider.VerifySignature("order_1", "pay_1", sig))
	})

	t.Run("GarbageSignature", func(t *testing.T) {
		assert.False(t, provider.VerifySignature("order_1", "pay_1", "deadbeef"))
	})
}
