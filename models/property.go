package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Property là một bất động sản cho thuê. Giá tính theo đêm, đơn vị TZS
// (không có phần lẻ).
type Property struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"userId"` // Chủ sở hữu (seller)
	User        User      `json:"user" gorm:"foreignKey:UserID"`
	Title       string    `json:"title" validate:"required,max=255"`
	Description string    `json:"description" validate:"max=5000"`
	Address     string    `json:"address" validate:"max=255"`
	City        string    `json:"city" validate:"max=100"`
	District    string    `json:"district" validate:"max=100"`
	Price       int64     `json:"price" validate:"gte=0"`      // Giá mỗi đêm
	CleaningFee int64     `json:"cleaningFee" validate:"gte=0"` // Phụ phí dọn dẹp, cộng một lần
	ServiceFee  int64     `json:"serviceFee" validate:"gte=0"`  // Phụ phí dịch vụ, cộng một lần
	Bedrooms    int       `json:"bedrooms" validate:"gte=0"`
	Bathrooms   int       `json:"bathrooms" validate:"gte=0"`
	Status      int       `json:"status" gorm:"default:1"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Validate kiểm tra các ràng buộc khai báo bằng struct tag
func (p *Property) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}
