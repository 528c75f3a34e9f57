package scheduler

import (
	"context"
	"log"
	"time"

	"dosebuddy-backend/internal/models"
	"dosebuddy-backend/internal/notify"

	"gorm.io/gorm"
)

// Stock thresholds: the dashboard flags at <=10 remaining, the guardian
// alert only fires at <=5.
const (
	LowStockDisplayThreshold = 10
	LowStockAlertThreshold   = 5
)

// LowStockChecker sends at most one low-stock alert per medication per
// calendar date, tracked through the low_stock_alerts marker table.
type LowStockChecker struct {
	DB         *gorm.DB
	Dispatcher *notify.Dispatcher
}

func (c *LowStockChecker) Run(ctx context.Context, now time.Time) error {
	var meds []models.Medication
	err := c.DB.
		Where("remaining_count <= ?", LowStockDisplayThreshold).
		Order("remaining_count ASC").
		Find(&meds).Error
	if err != nil {
		return err
	}

	date := now.Format("2006-01-02")
	for _, med := range meds {
		if med.RemainingCount > LowStockAlertThreshold {
			continue
		}

		var count int64
		err := c.DB.Model(&models.LowStockAlert{}).
			Where("medication_id = ? AND alert_date = ?", med.ID, date).
			Count(&count).Error
		if err != nil {
			log.Printf("scheduler: checking low-stock marker for %s: %v", med.Name, err)
			continue
		}
		if count > 0 {
			continue // already alerted today
		}

		ok, detail := c.Dispatcher.LowStock(ctx, med, date)
		if !ok {
			log.Printf("scheduler: low-stock alert for %s: %s", med.Name, detail)
		} else {
			log.Printf("scheduler: low-stock alert sent for %s (%d left)", med.Name, med.RemainingCount)
		}
	}
	return nil
}
