package validator

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nyumba/dto"
	"nyumba/errors"
	"nyumba/models"
)

var validatorNow = time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)

func TestValidateCreateBooking(t *testing.T) {
	valid := func() *dto.CreateBookingRequest {
		return &dto.CreateBookingRequest{
			PropertyID: 10,
			StartDate:  "2025-09-10",
			EndDate:    "2025-09-12",
		}
	}

	t.Run("request hợp lệ", func(t *testing.T) {
		interval, err := ValidateCreateBooking(valid(), validatorNow)
		require.NoError(t, err)
		assert.Equal(t, 2, interval.Nights())
	})

	t.Run("thiếu property", func(t *testing.T) {
		req := valid()
		req.PropertyID = 0
		_, err := ValidateCreateBooking(req, validatorNow)
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeRequiredField))
	})

	t.Run("thiếu ngày", func(t *testing.T) {
		req := valid()
		req.EndDate = ""
		_, err := ValidateCreateBooking(req, validatorNow)
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeRequiredField))
	})

	t.Run("ngày sai định dạng", func(t *testing.T) {
		req := valid()
		req.StartDate = "10-09-2025"
		_, err := ValidateCreateBooking(req, validatorNow)
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
	})

	t.Run("ngày trả phòng phải sau ngày nhận phòng", func(t *testing.T) {
		req := valid()
		req.EndDate = req.StartDate
		_, err := ValidateCreateBooking(req, validatorNow)
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidInterval))
	})

	t.Run("không đặt lùi về quá khứ", func(t *testing.T) {
		req := valid()
		req.StartDate = "2025-08-20"
		req.EndDate = "2025-08-22"
		_, err := ValidateCreateBooking(req, validatorNow)
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
	})

	t.Run("nhận phòng ngay hôm nay vẫn được", func(t *testing.T) {
		req := valid()
		req.StartDate = "2025-09-01"
		req.EndDate = "2025-09-02"
		_, err := ValidateCreateBooking(req, validatorNow)
		assert.NoError(t, err)
	})

	t.Run("ghi chú quá dài", func(t *testing.T) {
		req := valid()
		req.Notes = strings.Repeat("a", 501)
		_, err := ValidateCreateBooking(req, validatorNow)
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
	})

	t.Run("ghi chú tiếng Việt đếm theo ký tự, không theo byte", func(t *testing.T) {
		req := valid()
		req.Notes = strings.Repeat("ă", 500) // 500 ký tự nhưng 1000 byte
		_, err := ValidateCreateBooking(req, validatorNow)
		assert.NoError(t, err)

		req.Notes = strings.Repeat("ă", 501)
		_, err = ValidateCreateBooking(req, validatorNow)
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
	})
}

func TestValidateProperty(t *testing.T) {
	t.Run("hợp lệ", func(t *testing.T) {
		err := ValidateProperty(&models.Property{Title: "Căn hộ", Price: 100000})
		assert.NoError(t, err)
	})

	t.Run("thiếu tên", func(t *testing.T) {
		err := ValidateProperty(&models.Property{Price: 100000})
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeRequiredField))
	})

	t.Run("giá âm", func(t *testing.T) {
		err := ValidateProperty(&models.Property{Title: "Căn hộ", Price: -1})
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidPrice))
	})

	t.Run("phụ phí âm", func(t *testing.T) {
		err := ValidateProperty(&models.Property{Title: "Căn hộ", Price: 1, ServiceFee: -1})
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidPrice))
	})
}

func TestValidateStatusValue(t *testing.T) {
	for _, valid := range []string{"PENDING", "CONFIRMED", "CANCELLED", "COMPLETED"} {
		status, err := ValidateStatusValue(valid)
		require.NoError(t, err, valid)
		assert.Equal(t, models.BookingStatus(valid), status)
	}

	for _, invalid := range []string{"", "pending", "ARCHIVED", "CONFIRM"} {
		_, err := ValidateStatusValue(invalid)
		require.Error(t, err, invalid)
		assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
	}
}
