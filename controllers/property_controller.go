package controllers

import (
	stderrors "errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
	"gorm.io/gorm"

	"nyumba/config"
	"nyumba/constants"
	"nyumba/dto"
	apperrors "nyumba/errors"
	"nyumba/middleware"
	"nyumba/models"
	"nyumba/repositories"
	"nyumba/response"
	"nyumba/services"
	"nyumba/validator"
)

func convertToPropertyResponse(property models.Property) dto.PropertyResponse {
	return dto.PropertyResponse{
		ID:          property.ID,
		Title:       property.Title,
		Description: property.Description,
		Address:     property.Address,
		City:        property.City,
		District:    property.District,
		Price:       property.Price,
		CleaningFee: property.CleaningFee,
		ServiceFee:  property.ServiceFee,
		Bedrooms:    property.Bedrooms,
		Bathrooms:   property.Bathrooms,
		Status:      property.Status,
		Owner:       convertToActorResponse(&property.User),
		CreatedAt:   property.CreatedAt,
	}
}

// Hàm chuẩn hóa chuỗi
func normalizeInput(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ToLower(unidecode.Unidecode(input))
	return input
}

// Tạo đối tượng closestmatch cho danh sách từ khóa
func createMatcher(keywords []string) *closestmatch.ClosestMatch {
	return closestmatch.New(keywords, []int{2, 3})
}

// Tính độ tương đồng giữa hai chuỗi
func calculateSimilarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := float64(len(a))
	if float64(len(b)) > maxLen {
		maxLen = float64(len(b))
	}
	if maxLen == 0 {
		return 0
	}
	return 1 - float64(distance)/maxLen
}

// Tạo danh sách các giá trị duy nhất cho closestmatch
func prepareUniqueList(properties []models.Property, field string) []string {
	uniqueValues := make(map[string]bool)
	for _, p := range properties {
		var value string
		switch field {
		case "city":
			value = normalizeInput(p.City)
		case "district":
			value = normalizeInput(p.District)
		}
		if value != "" {
			uniqueValues[value] = true
		}
	}

	uniqueList := make([]string, 0, len(uniqueValues))
	for value := range uniqueValues {
		uniqueList = append(uniqueList, value)
	}
	return uniqueList
}

// Tính điểm phù hợp cho property với câu tìm kiếm
func calculatePropertyScore(query string, p models.Property, cmCity, cmDistrict *closestmatch.ClosestMatch) int {
	normalizedQuery := normalizeInput(query)
	score := 0

	title := normalizeInput(p.Title)
	if strings.Contains(title, normalizedQuery) {
		score += 10
	} else if calculateSimilarity(normalizedQuery, title) >= 0.6 {
		score += 7
	}

	if cmCity.Closest(normalizedQuery) == normalizeInput(p.City) && p.City != "" {
		score += 5
	}
	if cmDistrict.Closest(normalizedQuery) == normalizeInput(p.District) && p.District != "" {
		score += 4
	}

	if strings.Contains(normalizeInput(p.Address), normalizedQuery) {
		score += 3
	}

	return score
}

type PropertyController struct {
	db         *gorm.DB
	rdb        *redis.Client
	properties repositories.PropertyRepository
}

func NewPropertyController(db *gorm.DB, rdb *redis.Client) *PropertyController {
	return &PropertyController{
		db:         db,
		rdb:        rdb,
		properties: repositories.NewPropertyRepository(db),
	}
}

func (ctl *PropertyController) invalidatePropertyCaches() {
	if ctl.rdb == nil {
		return
	}
	_ = services.DeleteFromRedis(config.Ctx, ctl.rdb, "properties:all")
}

// GetProperties trả về danh sách property đang mở, có tìm kiếm mờ theo từ khóa
// và lọc theo thành phố, quận, giá, số phòng ngủ
func (ctl *PropertyController) GetProperties(c *gin.Context) {
	var allProperties []models.Property

	cacheKey := "properties:all"
	if ctl.rdb != nil {
		_ = services.GetFromRedis(config.Ctx, ctl.rdb, cacheKey, &allProperties)
	}

	if len(allProperties) == 0 {
		var err error
		allProperties, err = ctl.properties.All()
		if err != nil {
			response.ServerError(c)
			return
		}
		if ctl.rdb != nil && len(allProperties) > 0 {
			if err := services.SetToRedis(config.Ctx, ctl.rdb, cacheKey, allProperties, 10*time.Minute); err != nil {
				fmt.Printf("Lỗi khi lưu danh sách property vào Redis: %v\n", err)
			}
		}
	}

	query := c.Query("q")
	if decoded, err := url.QueryUnescape(query); err == nil {
		query = decoded
	}

	filters := dto.SearchFilters{
		Query:    query,
		City:     c.Query("city"),
		District: c.Query("district"),
	}
	if maxPrice, err := strconv.ParseInt(c.Query("maxPrice"), 10, 64); err == nil && maxPrice > 0 {
		filters.MaxPrice = maxPrice
	}
	if bedrooms, err := strconv.Atoi(c.Query("bedrooms")); err == nil && bedrooms > 0 {
		filters.Bedrooms = bedrooms
	}

	// Lưu lại bộ lọc gần nhất nếu người dùng đã đăng nhập
	if actor, ok := actorFromHeader(c); ok && ctl.rdb != nil {
		key := strconv.FormatUint(uint64(actor.UserID), 10)
		_ = services.SaveLastFilters(config.Ctx, ctl.rdb, key, &filters)
	}

	filtered := make([]models.Property, 0, len(allProperties))
	for _, p := range allProperties {
		if p.Status != constants.PropertyStatusAvailable {
			continue
		}
		if filters.City != "" && normalizeInput(p.City) != normalizeInput(filters.City) {
			continue
		}
		if filters.District != "" && normalizeInput(p.District) != normalizeInput(filters.District) {
			continue
		}
		if filters.MaxPrice > 0 && p.Price > filters.MaxPrice {
			continue
		}
		if filters.Bedrooms > 0 && p.Bedrooms < filters.Bedrooms {
			continue
		}
		filtered = append(filtered, p)
	}

	// Tìm kiếm mờ theo từ khóa, xếp theo điểm phù hợp
	if query != "" {
		cmCity := createMatcher(prepareUniqueList(filtered, "city"))
		cmDistrict := createMatcher(prepareUniqueList(filtered, "district"))

		scored := make([]dto.ScoredProperty, 0, len(filtered))
		for _, p := range filtered {
			score := calculatePropertyScore(query, p, cmCity, cmDistrict)
			if score > 0 {
				scored = append(scored, dto.ScoredProperty{
					Property: convertToPropertyResponse(p),
					Score:    score,
				})
			}
		}

		sort.SliceStable(scored, func(i, j int) bool {
			if scored[i].Score != scored[j].Score {
				return scored[i].Score > scored[j].Score
			}
			return scored[i].Property.ID < scored[j].Property.ID
		})

		propertyResponses := make([]dto.PropertyResponse, 0, len(scored))
		for _, s := range scored {
			propertyResponses = append(propertyResponses, s.Property)
		}
		paginatePropertyResponses(c, propertyResponses)
		return
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].ID < filtered[j].ID
	})

	propertyResponses := make([]dto.PropertyResponse, 0, len(filtered))
	for _, p := range filtered {
		propertyResponses = append(propertyResponses, convertToPropertyResponse(p))
	}
	paginatePropertyResponses(c, propertyResponses)
}

func paginatePropertyResponses(c *gin.Context, propertyResponses []dto.PropertyResponse) {
	page := 0
	limit := constants.DefaultPageLimit
	if parsedPage, err := strconv.Atoi(c.Query("page")); err == nil && parsedPage >= 0 {
		page = parsedPage
	}
	if parsedLimit, err := strconv.Atoi(c.Query("limit")); err == nil && parsedLimit > 0 {
		limit = parsedLimit
	}
	if limit > constants.MaxPageLimit {
		limit = constants.MaxPageLimit
	}

	total := len(propertyResponses)
	start := page * limit
	end := start + limit
	if start >= total {
		propertyResponses = []dto.PropertyResponse{}
	} else if end > total {
		propertyResponses = propertyResponses[start:]
	} else {
		propertyResponses = propertyResponses[start:end]
	}

	response.SuccessWithPagination(c, propertyResponses, page, limit, total)
}

// Resolve actor từ header khi route không bắt buộc đăng nhập
func actorFromHeader(c *gin.Context) (models.Actor, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return models.Actor{}, false
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	userID, role, err := services.GetUserIDFromToken(tokenString)
	if err != nil {
		return models.Actor{}, false
	}
	return models.Actor{UserID: userID, Role: role}, true
}

// GetPropertyDetail trả về chi tiết một property
func (ctl *PropertyController) GetPropertyDetail(c *gin.Context) {
	propertyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Mã property không hợp lệ")
		return
	}

	property, err := ctl.properties.GetByID(uint(propertyID))
	if err != nil {
		if stderrors.Is(err, apperrors.ErrPropertyNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	response.Success(c, convertToPropertyResponse(*property))
}

// CreateProperty tạo property mới cho seller hoặc admin
func (ctl *PropertyController) CreateProperty(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var request dto.CreatePropertyRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	property := models.Property{
		UserID:      actor.UserID,
		Title:       request.Title,
		Description: request.Description,
		Address:     request.Address,
		City:        request.City,
		District:    request.District,
		Price:       request.Price,
		CleaningFee: request.CleaningFee,
		ServiceFee:  request.ServiceFee,
		Bedrooms:    request.Bedrooms,
		Bathrooms:   request.Bathrooms,
		Status:      constants.PropertyStatusAvailable,
	}

	if err := validator.ValidateProperty(&property); err != nil {
		respondBookingError(c, err)
		return
	}

	if err := ctl.properties.Create(&property); err != nil {
		response.ServerError(c)
		return
	}

	ctl.invalidatePropertyCaches()
	response.Success(c, convertToPropertyResponse(property))
}

// UpdateProperty cập nhật property, chỉ chủ sở hữu hoặc admin
func (ctl *PropertyController) UpdateProperty(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var request dto.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	property, err := ctl.properties.GetByID(request.ID)
	if err != nil {
		if stderrors.Is(err, apperrors.ErrPropertyNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	if !actor.IsAdmin() && !actor.Owns(property) {
		response.Forbidden(c, "Bạn không có quyền sửa property này")
		return
	}

	if request.Title != "" {
		property.Title = request.Title
	}
	if request.Description != "" {
		property.Description = request.Description
	}
	if request.Address != "" {
		property.Address = request.Address
	}
	if request.City != "" {
		property.City = request.City
	}
	if request.District != "" {
		property.District = request.District
	}
	if request.Price > 0 {
		property.Price = request.Price
	}
	if request.CleaningFee != nil {
		property.CleaningFee = *request.CleaningFee
	}
	if request.ServiceFee != nil {
		property.ServiceFee = *request.ServiceFee
	}
	if request.Bedrooms > 0 {
		property.Bedrooms = request.Bedrooms
	}
	if request.Bathrooms > 0 {
		property.Bathrooms = request.Bathrooms
	}

	if err := validator.ValidateProperty(property); err != nil {
		respondBookingError(c, err)
		return
	}

	if err := ctl.properties.Update(property); err != nil {
		response.ServerError(c)
		return
	}

	ctl.invalidatePropertyCaches()
	response.Success(c, convertToPropertyResponse(*property))
}

// ChangePropertyStatus ẩn hoặc mở lại property
func (ctl *PropertyController) ChangePropertyStatus(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var request dto.ChangePropertyStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	property, err := ctl.properties.GetByID(request.ID)
	if err != nil {
		if stderrors.Is(err, apperrors.ErrPropertyNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	if !actor.IsAdmin() && !actor.Owns(property) {
		response.Forbidden(c, "Bạn không có quyền đổi trạng thái property này")
		return
	}

	property.Status = request.Status
	if err := ctl.properties.Update(property); err != nil {
		response.ServerError(c)
		return
	}

	ctl.invalidatePropertyCaches()
	response.Success(c, convertToPropertyResponse(*property))
}

// DeleteProperty xóa property chưa có booking CONFIRMED nào còn hiệu lực
func (ctl *PropertyController) DeleteProperty(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	propertyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Mã property không hợp lệ")
		return
	}

	property, err := ctl.properties.GetByID(uint(propertyID))
	if err != nil {
		if stderrors.Is(err, apperrors.ErrPropertyNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	if !actor.IsAdmin() && !actor.Owns(property) {
		response.Forbidden(c, "Bạn không có quyền xóa property này")
		return
	}

	today := time.Now().UTC().Format(constants.DateLayout)
	var activeConfirmed int64
	if err := ctl.db.Model(&models.Booking{}).
		Where("property_id = ? AND status = ? AND end_date > ?",
			property.ID, models.BookingStatusConfirmed, today).
		Count(&activeConfirmed).Error; err != nil {
		response.ServerError(c)
		return
	}
	if activeConfirmed > 0 {
		response.Conflict(c, "Property còn booking đã xác nhận, không thể xóa")
		return
	}

	if err := ctl.properties.Delete(property.ID); err != nil {
		response.ServerError(c)
		return
	}

	ctl.invalidatePropertyCaches()
	response.Success(c, gin.H{"message": "Đã xóa property"})
}

// GetLastSearch trả về bộ lọc tìm kiếm gần nhất của user
func (ctl *PropertyController) GetLastSearch(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	if ctl.rdb == nil {
		response.NotFound(c)
		return
	}

	key := strconv.FormatUint(uint64(actor.UserID), 10)
	filters, err := services.GetLastFilters(config.Ctx, ctl.rdb, key)
	if err != nil {
		response.NotFound(c)
		return
	}

	response.Success(c, filters)
}

// AddFavorite thêm property vào danh sách yêu thích của user
func (ctl *PropertyController) AddFavorite(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	propertyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Mã property không hợp lệ")
		return
	}

	if _, err := ctl.properties.GetByID(uint(propertyID)); err != nil {
		response.NotFound(c)
		return
	}

	var user models.User
	if err := ctl.db.First(&user, actor.UserID).Error; err != nil {
		response.ServerError(c)
		return
	}

	for _, id := range user.FavoriteIDs {
		if uint(id) == uint(propertyID) {
			response.Success(c, user.FavoriteIDs)
			return
		}
	}

	user.FavoriteIDs = append(user.FavoriteIDs, int64(propertyID))
	if err := ctl.db.Save(&user).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, user.FavoriteIDs)
}

// GetFavorites trả về các property user đã lưu
func (ctl *PropertyController) GetFavorites(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var user models.User
	if err := ctl.db.First(&user, actor.UserID).Error; err != nil {
		response.ServerError(c)
		return
	}

	if len(user.FavoriteIDs) == 0 {
		response.Success(c, []dto.PropertyResponse{})
		return
	}

	var properties []models.Property
	if err := ctl.db.Preload("User").Where("id IN ?", []int64(user.FavoriteIDs)).Find(&properties).Error; err != nil {
		response.ServerError(c)
		return
	}

	propertyResponses := make([]dto.PropertyResponse, 0, len(properties))
	for _, p := range properties {
		propertyResponses = append(propertyResponses, convertToPropertyResponse(p))
	}

	response.Success(c, propertyResponses)
}
