package pricing

import (
	"testing"
	"time"

	"go-booking-engine/internal/model"
	"go-booking-engine/internal/pricing"
	apperrors "go-booking-engine/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testShowtime() *model.Showtime {
	return &model.Showtime{
		ID:       1,
		IsActive: true,
		PriceTiers: map[string]float64{
			"Normal": 200,
			"VIP":    400,
		},
	}
}

func testSeatTypes() map[string]string {
	return map[string]string{
		"A1": "Normal",
		"A2": "Normal",
		"B1": "VIP",
		"C3": "Recliner",
	}
}

func TestComputeOriginalAmount(t *testing.T) {
	showtime := testShowtime()
	seatTypes := testSeatTypes()

	t.Run("Success", func(t *testing.T) {
		amount, err := pricing.ComputeOriginalAmount(showtime, seatTypes, []string{"A1", "A2", "B1"})
		require.NoError(t, err)
		assert.Equal(t, 800.0, amount)
	})

	t.Run("Failed - UnknownSeat", func(t *testing.T) {
		_, err := pricing.ComputeOriginalAmount(showtime, seatTypes, []string{"A1", "Z9"})
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrUnknownSeat)
	})

	t.Run("Failed - PricingUnavailable", func(t *testing.T) {
		// C3 exists in the layout but Recliner has no tier configured.
		_, err := pricing.ComputeOriginalAmount(showtime, seatTypes, []string{"C3"})
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrPricingUnavailable)
	})
}

func TestApplyPromo(t *testing.T) {
	now := time.Now().UTC()

	tenPercent := &model.PromoCode{
		ID:                1,
		Code:              "SAVE10",
		IsActive:          true,
		DiscountType:      model.DiscountTypePercentage,
		DiscountValue:     10,
		MinPurchaseAmount: 500,
		MaxDiscountAmount: 40,
	}

	t.Run("NilPromo - ZeroDiscount", func(t *testing.T) {
		discount, err := pricing.ApplyPromo(nil, 600, now)
		require.NoError(t, err)
		assert.Equal(t, 0.0, discount)
	})

	t.Run("PercentageCappedAtMax", func(t *testing.T) {
		// 10% of 500 is 50, capped at 40.
		discount, err := pricing.ApplyPromo(tenPercent, 500, now)
		require.NoError(t, err)
		assert.Equal(t, 40.0, discount)
	})

	t.Run("Failed - MinPurchaseNotMet", func(t *testing.T) {
		_, err := pricing.ApplyPromo(tenPercent, 499, now)
		require.Error(t, err)

		var promoErr *apperrors.PromoRejectedError
		require.ErrorAs(t, err, &promoErr)
		assert.Equal(t, apperrors.PromoReasonMinPurchase, promoErr.Reason)
	})

	t.Run("Failed - Inactive", func(t *testing.T) {
		inactive := *tenPercent
		inactive.IsActive = false

		_, err := pricing.ApplyPromo(&inactive, 600, now)
		require.Error(t, err)

		var promoErr *apperrors.PromoRejectedError
		require.ErrorAs(t, err, &promoErr)
		assert.Equal(t, apperrors.PromoReasonInactive, promoErr.Reason)
	})

	t.Run("Failed - Expired", func(t *testing.T) {
		expired := *tenPercent
		until := now.Add(-time.Hour)
		expired.ValidUntil = &until

		_, err := pricing.ApplyPromo(&expired, 600, now)
		require.Error(t, err)

		var promoErr *apperrors.PromoRejectedError
		require.ErrorAs(t, err, &promoErr)
		assert.Equal(t, apperrors.PromoReasonOutOfWindow, promoErr.Reason)
	})

	t.Run("Failed - UsageLimit", func(t *testing.T) {
		exhausted := *tenPercent
		maxUses := 100
		exhausted.MaxUses = &maxUses
		exhausted.Uses = 100

		_, err := pricing.ApplyPromo(&exhausted, 600, now)
		require.Error(t, err)

		var promoErr *apperrors.PromoRejectedError
		require.ErrorAs(t, err, &promoErr)
		assert.Equal(t, apperrors.PromoReasonUsageLimit, promoErr.Reason)
	})

	t.Run("FixedDiscountNeverExceedsAmount", func(t *testing.T) {
		fixed := &model.PromoCode{
			Code:          "FLAT300",
			IsActive:      true,
			DiscountType:  model.DiscountTypeFixed,
			DiscountValue: 300,
		}
		discount, err := pricing.ApplyPromo(fixed, 200, now)
		require.NoError(t, err)
		assert.Equal(t, 200.0, discount)
	})
}

func TestBuildQuote(t *testing.T) {
	t.Run("NoDiscount - GST18", func(t *testing.T) {
		// 2 Normal + 1 VIP at 18% GST: 600 net, 108 GST, 708 total.
		quote := pricing.BuildQuote(600, 0, 18)
		assert.Equal(t, 600.0, quote.OriginalAmount)
		assert.Equal(t, 0.0, quote.DiscountAmount)
		assert.Equal(t, 108.0, quote.GSTAmount)
		assert.Equal(t, 708.0, quote.TotalAmount)
	})

	t.Run("DiscountBeforeTax", func(t *testing.T) {
		// GST applies to the post-discount amount, not the original.
		quote := pricing.BuildQuote(600, 100, 18)
		assert.Equal(t, 90.0, quote.GSTAmount)
		assert.Equal(t, 590.0, quote.TotalAmount)
	})

	t.Run("DiscountExceedsOriginal - NetClampedToZero", func(t *testing.T) {
		quote := pricing.BuildQuote(100, 150, 18)
		assert.Equal(t, 0.0, quote.GSTAmount)
		assert.Equal(t, 0.0, quote.TotalAmount)
	})

	t.Run("ZeroRate", func(t *testing.T) {
		quote := pricing.BuildQuote(600, 0, 0)
		assert.Equal(t, 0.0, quote.GSTAmount)
		assert.Equal(t, 600.0, quote.TotalAmount)
	})

	t.Run("RoundingAppliedOnce", func(t *testing.T) {
		quote := pricing.BuildQuote(333.33, 0, 18)
		assert.Equal(t, 60.0, quote.GSTAmount)
		assert.Equal(t, 393.33, quote.TotalAmount)
	})
}

// The stored total must always equal the recomputation from its parts.
func TestTotal_CompositionLaw(t *testing.T) {
	cases := []struct {
		original float64
		discount float64
		gstRate  float64
	}{
		{600, 0, 18},
		{600, 40, 18},
		{499, 0, 18},
		{100, 150, 18},
		{333.33, 33.33, 12.5},
		{0, 0, 18},
	}

	for _, tc := range cases {
		quote := pricing.BuildQuote(tc.original, tc.discount, tc.gstRate)
		assert.Equal(t,
			pricing.Total(quote.OriginalAmount, quote.DiscountAmount, quote.GSTAmount),
			quote.TotalAmount,
		)
	}
}
