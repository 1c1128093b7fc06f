package models

import (
	"time"

	"github.com/lib/pq"

	"nyumba/constants"
)

type User struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time     `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time     `gorm:"autoUpdateTime" json:"updatedAt"`
	Name        string        `gorm:"default:New User" json:"name"`
	Email       string        `gorm:"unique" json:"email"`
	PhoneNumber string        `gorm:"type:varchar(15)" json:"phoneNumber"`
	Role        int           `gorm:"default:0" json:"role"`
	Status      int           `gorm:"default:1" json:"status"`
	FavoriteIDs pq.Int64Array `gorm:"type:integer[]" json:"favoriteIds"`
}

// Actor là người thực hiện một thao tác, resolve một lần từ token cho mỗi request
type Actor struct {
	UserID uint
	Role   int
}

// IsAdmin kiểm tra actor có phải admin hệ thống không
func (a Actor) IsAdmin() bool {
	return a.Role == constants.RoleAdmin
}

// Owns kiểm tra actor có phải chủ của property không
func (a Actor) Owns(p *Property) bool {
	return p != nil && p.UserID == a.UserID
}
