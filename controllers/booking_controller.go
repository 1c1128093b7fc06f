package controllers

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"nyumba/config"
	"nyumba/dto"
	apperrors "nyumba/errors"
	"nyumba/middleware"
	"nyumba/models"
	"nyumba/repositories"
	"nyumba/response"
	"nyumba/services"
	"nyumba/validator"
)

func convertToBookingPropertyResponse(property models.Property) dto.BookingPropertyResponse {
	return dto.BookingPropertyResponse{
		ID:       property.ID,
		Title:    property.Title,
		Address:  property.Address,
		City:     property.City,
		District: property.District,
		Price:    property.Price,
		OwnerID:  property.UserID,
	}
}

func convertToActorResponse(user *models.User) dto.ActorResponse {
	if user == nil {
		return dto.ActorResponse{}
	}
	return dto.ActorResponse{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
	}
}

func convertToBookingResponse(booking *models.Booking) dto.BookingResponse {
	return dto.BookingResponse{
		ID:           booking.ID,
		User:         convertToActorResponse(booking.User),
		Property:     convertToBookingPropertyResponse(booking.Property),
		StartDate:    booking.StartDate,
		EndDate:      booking.EndDate,
		Nights:       booking.Nights,
		NightlyPrice: booking.NightlyPrice,
		CleaningFee:  booking.CleaningFee,
		ServiceFee:   booking.ServiceFee,
		TotalPrice:   booking.TotalPrice,
		Status:       booking.Status,
		Notes:        booking.Notes,
		CreatedAt:    booking.CreatedAt,
		UpdatedAt:    booking.UpdatedAt,
	}
}

type BookingController struct {
	rdb          *redis.Client
	bookings     repositories.BookingRepository
	service      *services.BookingService
	availability *services.AvailabilityService
}

func NewBookingController(db *gorm.DB, rdb *redis.Client, m *melody.Melody) *BookingController {
	bookings := repositories.NewBookingRepository(db)
	return &BookingController{
		rdb:      rdb,
		bookings: bookings,
		service: services.NewBookingService(services.BookingServiceOptions{
			DB:       db,
			Notifier: services.NewNotificationService(m),
		}),
		availability: services.NewAvailabilityService(bookings),
	}
}

// Map lỗi của service sang HTTP response. Lỗi kiểm tra lịch trống không bao giờ
// được trả về như "còn trống" — client phải thấy lỗi và thử lại.
func respondBookingError(c *gin.Context, err error) {
	if stderrors.Is(err, apperrors.ErrBookingNotFound) || stderrors.Is(err, apperrors.ErrPropertyNotFound) {
		response.NotFound(c)
		return
	}

	appErr := apperrors.GetAppError(err)
	if appErr == nil {
		response.ServerError(c)
		return
	}

	switch appErr.Code {
	case apperrors.ErrCodePermissionDenied:
		response.Forbidden(c, appErr.Message)
	case apperrors.ErrCodeInvalidTransition, apperrors.ErrCodeDatesUnavailable:
		response.Conflict(c, appErr.Message)
	case apperrors.ErrCodeAvailabilityCheck:
		response.ServiceUnavailable(c, appErr.Message)
	case apperrors.ErrCodeUnauthorized, apperrors.ErrCodeInvalidToken:
		response.Unauthorized(c)
	case apperrors.ErrCodeDBError:
		response.ServerError(c)
	default:
		response.BadRequest(c, appErr.Message)
	}
}

func (ctl *BookingController) invalidateBookingCaches() {
	if err := services.InvalidateBookingCaches(config.Ctx, ctl.rdb); err != nil {
		fmt.Printf("Lỗi khi xóa cache bookings: %v\n", err)
	}
}

// GetBookings trả về danh sách booking mà viewer được thấy, có lọc,
// sắp xếp và phân trang
func (ctl *BookingController) GetBookings(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	// Tập booking viewer được thấy, cache theo user
	cacheKey := services.BookingCacheKey(actor.UserID, actor.Role)

	var visible []models.Booking
	if ctl.rdb != nil {
		_ = services.GetFromRedis(config.Ctx, ctl.rdb, cacheKey, &visible)
	}

	if len(visible) == 0 {
		var err error
		visible, err = services.VisibleBookings(ctl.bookings, actor)
		if err != nil {
			response.ServerError(c)
			return
		}
		if ctl.rdb != nil && len(visible) > 0 {
			if err := services.SetToRedis(config.Ctx, ctl.rdb, cacheKey, visible, 10*time.Minute); err != nil {
				fmt.Printf("Lỗi khi lưu danh sách booking vào Redis: %v\n", err)
			}
		}
	}

	filters := services.BookingFilters{
		Status: c.Query("status"),
		Query:  c.Query("q"),
		From:   c.Query("from"),
		To:     c.Query("to"),
		SortBy: c.Query("sortBy"),
	}
	if propertyID, err := strconv.ParseUint(c.Query("property"), 10, 64); err == nil {
		filters.PropertyID = uint(propertyID)
	}

	if filters.Status != "" {
		if _, err := validator.ValidateStatusValue(filters.Status); err != nil {
			respondBookingError(c, err)
			return
		}
	}

	page := 0
	limit := 10
	if parsedPage, err := strconv.Atoi(c.Query("page")); err == nil && parsedPage >= 0 {
		page = parsedPage
	}
	if parsedLimit, err := strconv.Atoi(c.Query("limit")); err == nil && parsedLimit > 0 {
		limit = parsedLimit
	}

	filtered := services.FilterBookings(visible, filters)
	services.SortBookings(filtered, filters.SortBy)
	paged, total := services.PaginateBookings(filtered, page, limit)

	bookingResponses := make([]dto.BookingResponse, 0, len(paged))
	for i := range paged {
		bookingResponses = append(bookingResponses, convertToBookingResponse(&paged[i]))
	}

	response.SuccessWithPagination(c, bookingResponses, page, limit, total)
}

// GetBookingDetail trả về chi tiết một booking
func (ctl *BookingController) GetBookingDetail(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Mã booking không hợp lệ")
		return
	}

	booking, err := ctl.bookings.GetByID(uint(bookingID))
	if err != nil {
		respondBookingError(c, err)
		return
	}

	if !booking.CanManage(actor) && !booking.IsRequester(actor) {
		response.Forbidden(c, "Bạn không có quyền xem booking này")
		return
	}

	response.Success(c, convertToBookingResponse(booking))
}

// GetBookedDates trả về các ngày đã bị chiếm của một property,
// client dùng để disable ngày trên date picker
func (ctl *BookingController) GetBookedDates(c *gin.Context) {
	propertyID, err := strconv.ParseUint(c.Query("property"), 10, 64)
	if err != nil || propertyID == 0 {
		response.BadRequest(c, "Thiếu hoặc sai mã property")
		return
	}

	dates, err := ctl.availability.BookedDates(uint(propertyID))
	if err != nil {
		respondBookingError(c, err)
		return
	}

	response.Success(c, dto.BookedDatesResponse{
		PropertyID: uint(propertyID),
		Dates:      dates,
	})
}

// CheckAvailability kiểm tra một khoảng ngày còn trống không.
// Đây là check tham khảo cho UI; check quyết định chạy lại lúc xác nhận booking.
func (ctl *BookingController) CheckAvailability(c *gin.Context) {
	propertyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || propertyID == 0 {
		response.BadRequest(c, "Mã property không hợp lệ")
		return
	}

	interval, err := models.ParseInterval(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		respondBookingError(c, err)
		return
	}

	result, err := ctl.availability.Check(uint(propertyID), interval, 0)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	resp := dto.AvailabilityResponse{
		Available:        result.Available,
		ConflictingDates: result.ConflictingDates,
	}
	if !result.Available {
		resp.Message = "Khoảng ngày này đã có người đặt"
		if suggestion, err := ctl.availability.NextAvailableStart(uint(propertyID), interval, services.NextAvailableSearchDays); err == nil && suggestion != "" {
			resp.Message += ", khoảng trống gần nhất bắt đầu từ " + suggestion
		}
	}

	response.Success(c, resp)
}

// CreateBooking tạo booking mới ở trạng thái PENDING
func (ctl *BookingController) CreateBooking(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var request dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	booking, err := ctl.service.Create(&request, actor, time.Now())
	if err != nil {
		respondBookingError(c, err)
		return
	}

	ctl.invalidateBookingCaches()
	response.Success(c, convertToBookingResponse(booking))
}

// UpdateBookingStatus chuyển trạng thái booking theo state machine
func (ctl *BookingController) UpdateBookingStatus(c *gin.Context) {
	ctl.transition(c, "")
}

// ConfirmBooking là endpoint tiện lợi cho PENDING -> CONFIRMED
func (ctl *BookingController) ConfirmBooking(c *gin.Context) {
	ctl.transition(c, models.BookingStatusConfirmed)
}

// RejectBooking là endpoint tiện lợi cho việc từ chối (hủy) một booking
func (ctl *BookingController) RejectBooking(c *gin.Context) {
	ctl.transition(c, models.BookingStatusCancelled)
}

func (ctl *BookingController) transition(c *gin.Context, to models.BookingStatus) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Mã booking không hợp lệ")
		return
	}

	if to == "" {
		var request dto.UpdateBookingStatusRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			response.BadRequest(c, "Dữ liệu không hợp lệ")
			return
		}
		to, err = validator.ValidateStatusValue(request.Status)
		if err != nil {
			respondBookingError(c, err)
			return
		}
	}

	booking, err := ctl.service.Transition(uint(bookingID), to, actor)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	ctl.invalidateBookingCaches()
	response.Success(c, convertToBookingResponse(booking))
}
