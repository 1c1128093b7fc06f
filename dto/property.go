package dto

import "time"

// CreatePropertyRequest là DTO cho request tạo property
type CreatePropertyRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Address     string `json:"address"`
	City        string `json:"city"`
	District    string `json:"district"`
	Price       int64  `json:"price" binding:"required"`
	CleaningFee int64  `json:"cleaningFee"`
	ServiceFee  int64  `json:"serviceFee"`
	Bedrooms    int    `json:"bedrooms"`
	Bathrooms   int    `json:"bathrooms"`
}

// UpdatePropertyRequest là DTO cho request cập nhật property.
// Phụ phí dùng con trỏ để phân biệt "không gửi" với "đặt về 0".
type UpdatePropertyRequest struct {
	ID          uint   `json:"id" binding:"required"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Address     string `json:"address"`
	City        string `json:"city"`
	District    string `json:"district"`
	Price       int64  `json:"price"`
	CleaningFee *int64 `json:"cleaningFee"`
	ServiceFee  *int64 `json:"serviceFee"`
	Bedrooms    int    `json:"bedrooms"`
	Bathrooms   int    `json:"bathrooms"`
}

// ChangePropertyStatusRequest là DTO cho request đổi trạng thái property
type ChangePropertyStatusRequest struct {
	ID     uint `json:"id" binding:"required"`
	Status int  `json:"status"`
}

type PropertyResponse struct {
	ID          uint          `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Address     string        `json:"address"`
	City        string        `json:"city"`
	District    string        `json:"district"`
	Price       int64         `json:"price"`
	CleaningFee int64         `json:"cleaningFee"`
	ServiceFee  int64         `json:"serviceFee"`
	Bedrooms    int           `json:"bedrooms"`
	Bathrooms   int           `json:"bathrooms"`
	Status      int           `json:"status"`
	Owner       ActorResponse `json:"owner"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// SearchFilters là bộ lọc tìm kiếm property, lưu lại cho lần tìm sau
type SearchFilters struct {
	Query    string `json:"query"`
	City     string `json:"city"`
	District string `json:"district"`
	MaxPrice int64  `json:"maxPrice"`
	Bedrooms int    `json:"bedrooms"`
}

// ScoredProperty gắn điểm phù hợp cho property khi tìm kiếm mờ
type ScoredProperty struct {
	Property PropertyResponse `json:"property"`
	Score    int              `json:"score"`
}
