package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nyumba/errors"
	"nyumba/models"
)

func TestPricingService_Quote(t *testing.T) {
	pricing := NewPricingService()

	t.Run("giá cơ bản theo đêm", func(t *testing.T) {
		property := &models.Property{Price: 100000}
		itv, err := models.ParseInterval("2025-09-10", "2025-09-12")
		require.NoError(t, err)

		breakdown, err := pricing.Quote(property, itv)
		require.NoError(t, err)
		assert.Equal(t, 2, breakdown.Nights)
		assert.Equal(t, int64(100000), breakdown.NightlyPrice)
		assert.Equal(t, int64(200000), breakdown.TotalPrice)
	})

	t.Run("phụ phí cộng một lần, không nhân theo đêm", func(t *testing.T) {
		property := &models.Property{Price: 50000, CleaningFee: 15000, ServiceFee: 5000}
		itv, err := models.ParseInterval("2025-09-10", "2025-09-13")
		require.NoError(t, err)

		breakdown, err := pricing.Quote(property, itv)
		require.NoError(t, err)
		assert.Equal(t, 3, breakdown.Nights)
		assert.Equal(t, int64(15000), breakdown.CleaningFee)
		assert.Equal(t, int64(5000), breakdown.ServiceFee)
		assert.Equal(t, int64(3*50000+15000+5000), breakdown.TotalPrice)
	})

	t.Run("giá 0 đồng vẫn hợp lệ", func(t *testing.T) {
		property := &models.Property{Price: 0}
		itv, err := models.ParseInterval("2025-09-10", "2025-09-11")
		require.NoError(t, err)

		breakdown, err := pricing.Quote(property, itv)
		require.NoError(t, err)
		assert.Equal(t, int64(0), breakdown.TotalPrice)
	})

	t.Run("giá âm bị từ chối", func(t *testing.T) {
		property := &models.Property{Price: -1}
		itv, err := models.ParseInterval("2025-09-10", "2025-09-11")
		require.NoError(t, err)

		_, err = pricing.Quote(property, itv)
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidPrice))
	})

	t.Run("phụ phí âm bị từ chối", func(t *testing.T) {
		property := &models.Property{Price: 100000, CleaningFee: -500}
		itv, err := models.ParseInterval("2025-09-10", "2025-09-11")
		require.NoError(t, err)

		_, err = pricing.Quote(property, itv)
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidPrice))
	})

	t.Run("thiếu property", func(t *testing.T) {
		itv, err := models.ParseInterval("2025-09-10", "2025-09-11")
		require.NoError(t, err)

		_, err = pricing.Quote(nil, itv)
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidPrice))
	})
}
