package jobs

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// StayCompleter định nghĩa interface cho việc chốt các booking đã kết thúc
type StayCompleter interface {
	CompleteFinishedStays(now time.Time) (int, error)
}

var stayCompleter StayCompleter

// SetStayCompleter thiết lập implementation cho StayCompleter
func SetStayCompleter(completer StayCompleter) {
	stayCompleter = completer
}

// InitCronJobs khởi tạo các cron jobs
func InitCronJobs(c *cron.Cron) error {
	// Cron job chạy lúc 0h mỗi ngày
	_, err := c.AddFunc("0 0 * * *", func() {
		now := time.Now().UTC()
		log.Printf("Đang chạy chốt các booking đã kết thúc lúc: %v", now)
		if stayCompleter == nil {
			log.Printf("Lỗi: StayCompleter chưa được thiết lập")
			return
		}
		completed, err := stayCompleter.CompleteFinishedStays(now)
		if err != nil {
			log.Printf("Lỗi khi chốt booking đã kết thúc: %v", err)
			return
		}
		if completed > 0 {
			log.Printf("Đã chuyển %d booking sang COMPLETED", completed)
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Println("Cron jobs initialized successfully")
	return nil
}
