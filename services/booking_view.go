package services

import (
	"sort"
	"strconv"
	"strings"

	"github.com/fiam/gounidecode/unidecode"

	"nyumba/constants"
	"nyumba/models"
	"nyumba/repositories"
)

// Sort key cho danh sách booking
const (
	SortByCheckIn = "checkin"
	SortByCreated = "created"
	SortByPrice   = "price"
)

// BookingFilters là bộ lọc/sắp xếp/phân trang cho danh sách booking
type BookingFilters struct {
	PropertyID uint   // Giới hạn theo một property, 0 = tất cả
	Status     string // Lọc theo trạng thái, rỗng = tất cả
	Query      string // Tìm theo tên property, tên khách, ghi chú, mã booking
	From       string // YYYY-MM-DD, lọc các booking giao với khoảng [From, To)
	To         string
	SortBy     string
	Page       int
	Limit      int
}

// VisibleBookings trả về tập booking mà viewer được phép thấy:
// admin thấy tất cả, seller thấy booking trên property của mình cộng với
// booking mình đi thuê, buyer chỉ thấy booking của mình.
// Một booking xuất hiện qua cả hai đường (vừa là chủ nhà vừa là khách)
// chỉ được tính một lần.
func VisibleBookings(repo repositories.BookingRepository, viewer models.Actor) ([]models.Booking, error) {
	if viewer.IsAdmin() {
		return repo.All()
	}

	own, err := repo.ForRequester(viewer.UserID)
	if err != nil {
		return nil, err
	}

	if viewer.Role != constants.RoleSeller {
		return own, nil
	}

	onProperties, err := repo.ForOwner(viewer.UserID)
	if err != nil {
		return nil, err
	}

	return DedupeBookings(append(own, onProperties...)), nil
}

// DedupeBookings loại các booking trùng theo id, giữ lần xuất hiện đầu tiên
func DedupeBookings(bookings []models.Booking) []models.Booking {
	seen := make(map[uint]bool, len(bookings))
	result := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if seen[b.ID] {
			continue
		}
		seen[b.ID] = true
		result = append(result, b)
	}
	return result
}

// FilterBookings áp bộ lọc trạng thái, tìm kiếm chữ và khoảng ngày
func FilterBookings(bookings []models.Booking, f BookingFilters) []models.Booking {
	var rangeFilter *models.Interval
	if f.From != "" && f.To != "" {
		if itv, err := models.ParseInterval(f.From, f.To); err == nil {
			rangeFilter = &itv
		}
	}

	query := normalizeText(f.Query)

	filtered := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if f.PropertyID != 0 && b.PropertyID != f.PropertyID {
			continue
		}
		if f.Status != "" && string(b.Status) != f.Status {
			continue
		}
		if query != "" && !bookingMatchesQuery(&b, query) {
			continue
		}
		if rangeFilter != nil {
			itv, err := b.Interval()
			if err != nil || !itv.Overlaps(*rangeFilter) {
				continue
			}
		}
		filtered = append(filtered, b)
	}
	return filtered
}

func bookingMatchesQuery(b *models.Booking, query string) bool {
	if strings.Contains(normalizeText(b.Property.Title), query) {
		return true
	}
	if b.User != nil && strings.Contains(normalizeText(b.User.Name), query) {
		return true
	}
	if strings.Contains(normalizeText(b.Notes), query) {
		return true
	}
	return strconv.FormatUint(uint64(b.ID), 10) == query
}

// Chuẩn hóa chuỗi tìm kiếm: bỏ dấu, hạ chữ thường
func normalizeText(input string) string {
	return strings.ToLower(unidecode.Unidecode(strings.TrimSpace(input)))
}

// SortBookings sắp xếp ổn định theo sort key, hòa thì theo id tăng dần
// để phân trang luôn xác định
func SortBookings(bookings []models.Booking, sortBy string) {
	less := func(i, j int) bool {
		a, b := &bookings[i], &bookings[j]
		switch sortBy {
		case SortByPrice:
			if a.TotalPrice != b.TotalPrice {
				return a.TotalPrice < b.TotalPrice
			}
		case SortByCreated:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
		default: // SortByCheckIn
			if a.StartDate != b.StartDate {
				return a.StartDate < b.StartDate
			}
		}
		return a.ID < b.ID
	}
	sort.SliceStable(bookings, less)
}

// PaginateBookings cắt trang, trả về trang dữ liệu và tổng số phần tử sau lọc
func PaginateBookings(bookings []models.Booking, page, limit int) ([]models.Booking, int) {
	total := len(bookings)
	if limit <= 0 {
		limit = constants.DefaultPageLimit
	}
	if limit > constants.MaxPageLimit {
		limit = constants.MaxPageLimit
	}
	if page < 0 {
		page = 0
	}

	start := page * limit
	if start >= total {
		return []models.Booking{}, total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return bookings[start:end], total
}
