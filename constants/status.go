package constants

// User status
const (
	UserStatusActive   = 1
	UserStatusInactive = 0
)

// User role
const (
	RoleBuyer  = 0
	RoleAdmin  = 1
	RoleSeller = 2
)

// Property status
const (
	PropertyStatusHidden    = 0
	PropertyStatusAvailable = 1
)

// Layout ngày dùng chung cho toàn bộ API (ISO, không có múi giờ)
const DateLayout = "2006-01-02"

// Số ký tự tối đa cho ghi chú của booking
const MaxBookingNotesLength = 500

// Phân trang mặc định
const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)
