package services

import (
	"nyumba/dto"
	"nyumba/errors"
	"nyumba/models"
)

// PricingService tính tổng giá booking: số đêm x giá mỗi đêm,
// cộng các phụ phí cố định của property
type PricingService struct{}

func NewPricingService() *PricingService {
	return &PricingService{}
}

// Quote tính giá cho một interval trên property. Giá được chốt tại thời điểm
// tạo booking, property đổi giá sau đó không ảnh hưởng booking cũ.
func (s *PricingService) Quote(property *models.Property, interval models.Interval) (*dto.PriceBreakdown, error) {
	if property == nil {
		return nil, errors.NewAppError(errors.ErrCodeInvalidPrice, "Thiếu thông tin property để tính giá", nil)
	}
	if property.Price < 0 {
		return nil, errors.NewAppError(errors.ErrCodeInvalidPrice, "Giá mỗi đêm của property không hợp lệ", nil)
	}
	if property.CleaningFee < 0 || property.ServiceFee < 0 {
		return nil, errors.NewAppError(errors.ErrCodeInvalidPrice, "Phụ phí của property không hợp lệ", nil)
	}

	nights := interval.Nights()
	breakdown := &dto.PriceBreakdown{
		Nights:       nights,
		NightlyPrice: property.Price,
		CleaningFee:  property.CleaningFee,
		ServiceFee:   property.ServiceFee,
	}
	breakdown.TotalPrice = int64(nights)*property.Price + property.CleaningFee + property.ServiceFee
	return breakdown, nil
}
