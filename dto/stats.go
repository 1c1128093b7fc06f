package dto

// BookingStatusCounts đếm số booking theo từng trạng thái
type BookingStatusCounts struct {
	Pending   int64 `json:"pending"`
	Confirmed int64 `json:"confirmed"`
	Cancelled int64 `json:"cancelled"`
	Completed int64 `json:"completed"`
}

// StatsResponse là số liệu dashboard, scope theo role của viewer
type StatsResponse struct {
	Role          string              `json:"role"`
	Properties    int64               `json:"properties,omitempty"`
	Users         int64               `json:"users,omitempty"`
	Bookings      BookingStatusCounts `json:"bookings"`
	Revenue       int64               `json:"revenue,omitempty"`    // Tổng tiền các booking COMPLETED
	TotalSpent    int64               `json:"totalSpent,omitempty"` // Buyer: tổng tiền đã chi
	UpcomingStays int64               `json:"upcomingStays,omitempty"`
}
