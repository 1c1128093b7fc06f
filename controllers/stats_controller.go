package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"nyumba/constants"
	"nyumba/dto"
	"nyumba/middleware"
	"nyumba/models"
	"nyumba/response"
)

type StatsController struct {
	db *gorm.DB
}

func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

func countByStatus(query *gorm.DB) (dto.BookingStatusCounts, error) {
	var counts dto.BookingStatusCounts
	type row struct {
		Status models.BookingStatus
		Total  int64
	}

	var rows []row
	if err := query.Select("status, count(*) as total").Group("status").Scan(&rows).Error; err != nil {
		return counts, err
	}

	for _, r := range rows {
		switch r.Status {
		case models.BookingStatusPending:
			counts.Pending = r.Total
		case models.BookingStatusConfirmed:
			counts.Confirmed = r.Total
		case models.BookingStatusCancelled:
			counts.Cancelled = r.Total
		case models.BookingStatusCompleted:
			counts.Completed = r.Total
		}
	}
	return counts, nil
}

// GetStats trả về số liệu dashboard theo role của viewer
func (ctl *StatsController) GetStats(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	today := time.Now().UTC().Format(constants.DateLayout)

	switch {
	case actor.IsAdmin():
		ctl.adminStats(c)
	case actor.Role == constants.RoleSeller:
		ctl.sellerStats(c, actor, today)
	default:
		ctl.buyerStats(c, actor, today)
	}
}

func (ctl *StatsController) adminStats(c *gin.Context) {
	stats := dto.StatsResponse{Role: "admin"}

	if err := ctl.db.Model(&models.Property{}).Count(&stats.Properties).Error; err != nil {
		response.ServerError(c)
		return
	}
	if err := ctl.db.Model(&models.User{}).Count(&stats.Users).Error; err != nil {
		response.ServerError(c)
		return
	}

	counts, err := countByStatus(ctl.db.Model(&models.Booking{}))
	if err != nil {
		response.ServerError(c)
		return
	}
	stats.Bookings = counts

	if err := ctl.db.Model(&models.Booking{}).
		Where("status = ?", models.BookingStatusCompleted).
		Select("coalesce(sum(total_price), 0)").Scan(&stats.Revenue).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, stats)
}

func (ctl *StatsController) sellerStats(c *gin.Context, actor models.Actor, today string) {
	stats := dto.StatsResponse{Role: "seller"}

	ownProperties := ctl.db.Model(&models.Property{}).Where("user_id = ?", actor.UserID)
	if err := ownProperties.Count(&stats.Properties).Error; err != nil {
		response.ServerError(c)
		return
	}

	ownBookings := func() *gorm.DB {
		return ctl.db.Model(&models.Booking{}).
			Where("property_id IN (?)", ctl.db.Model(&models.Property{}).
				Select("id").Where("user_id = ?", actor.UserID))
	}

	counts, err := countByStatus(ownBookings())
	if err != nil {
		response.ServerError(c)
		return
	}
	stats.Bookings = counts

	if err := ownBookings().
		Where("status = ?", models.BookingStatusCompleted).
		Select("coalesce(sum(total_price), 0)").Scan(&stats.Revenue).Error; err != nil {
		response.ServerError(c)
		return
	}

	if err := ownBookings().
		Where("status = ? AND start_date >= ?", models.BookingStatusConfirmed, today).
		Count(&stats.UpcomingStays).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, stats)
}

func (ctl *StatsController) buyerStats(c *gin.Context, actor models.Actor, today string) {
	stats := dto.StatsResponse{Role: "buyer"}

	ownBookings := func() *gorm.DB {
		return ctl.db.Model(&models.Booking{}).Where("user_id = ?", actor.UserID)
	}

	counts, err := countByStatus(ownBookings())
	if err != nil {
		response.ServerError(c)
		return
	}
	stats.Bookings = counts

	if err := ownBookings().
		Where("status IN ?", []models.BookingStatus{models.BookingStatusConfirmed, models.BookingStatusCompleted}).
		Select("coalesce(sum(total_price), 0)").Scan(&stats.TotalSpent).Error; err != nil {
		response.ServerError(c)
		return
	}

	if err := ownBookings().
		Where("status = ? AND start_date >= ?", models.BookingStatusConfirmed, today).
		Count(&stats.UpcomingStays).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, stats)
}
