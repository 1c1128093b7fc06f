package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Pattern khớp mọi cache danh sách booking theo viewer
const bookingCachePattern = "bookings:user:*"

// BookingCacheKey là khóa cache danh sách booking của một viewer
func BookingCacheKey(userID uint, role int) string {
	return fmt.Sprintf("bookings:user:%d:role:%d", userID, role)
}

// InvalidateBookingCaches xóa toàn bộ cache danh sách booking.
// Gọi sau mọi mutation đổi trạng thái booking, kể cả từ cron.
func InvalidateBookingCaches(ctx context.Context, rdb *redis.Client) error {
	if rdb == nil {
		return nil
	}
	return DeleteKeysByPattern(ctx, rdb, bookingCachePattern)
}

// Hàm lấy data từ Redis
func GetFromRedis(ctx context.Context, rdb *redis.Client, key string, target interface{}) error {
	cachedData, err := rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return err
	}

	// Parse JSON thành object
	if err := json.Unmarshal([]byte(cachedData), target); err != nil {
		return err
	}
	return nil
}

// Hàm lưu dữ liệu vào Redis
func SetToRedis(ctx context.Context, rdb *redis.Client, key string, value interface{}, ttl time.Duration) error {
	dataJSON, err := json.Marshal(value)
	if err != nil {
		return err
	}

	if err := rdb.Set(ctx, key, dataJSON, ttl).Err(); err != nil {
		return err
	}
	return nil
}

// Hàm xóa cache Redis
func DeleteFromRedis(ctx context.Context, rdb *redis.Client, key string) error {
	if err := rdb.Del(ctx, key).Err(); err != nil {
		return err
	}
	return nil
}

// Xóa tất cả các key khớp với pattern, ví dụ "bookings:*"
func DeleteKeysByPattern(ctx context.Context, rdb *redis.Client, pattern string) error {
	iter := rdb.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
