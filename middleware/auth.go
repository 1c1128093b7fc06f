package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"nyumba/models"
	"nyumba/response"
	"nyumba/services"
)

// AuthMiddleware xử lý authentication, giới hạn theo role nếu có yêu cầu
func AuthMiddleware(roles ...int) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		userID, userRole, err := services.GetUserIDFromToken(tokenString)
		if err != nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		// Kiểm tra role nếu có yêu cầu
		if len(roles) > 0 {
			hasRole := false
			for _, role := range roles {
				if role == userRole {
					hasRole = true
					break
				}
			}
			if !hasRole {
				response.Forbidden(c, "")
				c.Abort()
				return
			}
		}

		// Lưu thông tin user vào context
		c.Set("userID", userID)
		c.Set("userRole", userRole)
		c.Next()
	}
}

// CurrentActor lấy actor đã resolve từ token của request hiện tại.
// Gọi sau AuthMiddleware.
func CurrentActor(c *gin.Context) (models.Actor, bool) {
	userID, okID := c.Get("userID")
	userRole, okRole := c.Get("userRole")
	if !okID || !okRole {
		return models.Actor{}, false
	}
	return models.Actor{
		UserID: userID.(uint),
		Role:   userRole.(int),
	}, true
}
