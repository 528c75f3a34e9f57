// Package analytics aggregates dose-log rows into the numbers the
// dashboard charts and the daily guardian summary are built from.
package analytics

import (
	"sort"
	"time"

	"dosebuddy-backend/internal/models"

	"gorm.io/gorm"
)

// Stats summarizes adherence over a date range.
type Stats struct {
	TotalDoses    int     `json:"total_doses"`
	Taken         int     `json:"taken"`
	Missed        int     `json:"missed"`
	Delayed       int     `json:"delayed"`
	AdherenceRate float64 `json:"adherence_rate"` // percent, one decimal
}

// cutoffDate returns the inclusive lower bound for an N-day window ending
// today. Computed in Go and passed as a bound parameter, never spliced
// into SQL.
func cutoffDate(now time.Time, days int) string {
	return now.AddDate(0, 0, -days).Format("2006-01-02")
}

// AdherenceStats aggregates the last N days of dose logs.
func AdherenceStats(db *gorm.DB, now time.Time, days int) (Stats, error) {
	var row struct {
		Total   int
		Taken   int
		Missed  int
		Delayed int
	}
	err := db.Raw(`
		SELECT COUNT(*) AS total,
		       COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS taken,
		       COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS missed,
		       COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS delayed
		FROM dose_logs
		WHERE date >= ?`,
		models.StatusTaken, models.StatusMissed, models.StatusDelayed,
		cutoffDate(now, days),
	).Scan(&row).Error
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{
		TotalDoses: row.Total,
		Taken:      row.Taken,
		Missed:     row.Missed,
		Delayed:    row.Delayed,
	}
	if stats.TotalDoses > 0 {
		rate := float64(stats.Taken) / float64(stats.TotalDoses) * 100
		stats.AdherenceRate = float64(int(rate*10+0.5)) / 10
	}
	return stats, nil
}

// DayCount is one (date, status) bucket for the stacked bar chart.
type DayCount struct {
	Date   string `json:"date"`
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// DailyBreakdown returns per-day status counts over the last N days,
// ordered by date.
func DailyBreakdown(db *gorm.DB, now time.Time, days int) ([]DayCount, error) {
	var out []DayCount
	err := db.Raw(`
		SELECT date, status, COUNT(*) AS count
		FROM dose_logs
		WHERE date >= ?
		GROUP BY date, status
		ORDER BY date`,
		cutoffDate(now, days),
	).Scan(&out).Error
	return out, err
}

// Streak counts consecutive days, ending today, with 100% adherence.
// Looks back at most 30 days.
func Streak(db *gorm.DB, now time.Time) (int, error) {
	var rows []struct {
		Date  string
		Taken int
		Total int
	}
	err := db.Raw(`
		SELECT date,
		       SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS taken,
		       COUNT(*) AS total
		FROM dose_logs
		WHERE date >= ?
		GROUP BY date
		ORDER BY date DESC`,
		models.StatusTaken, cutoffDate(now, 30),
	).Scan(&rows).Error
	if err != nil {
		return 0, err
	}

	streak := 0
	for _, r := range rows {
		if r.Total > 0 && r.Taken == r.Total {
			streak++
		} else {
			break
		}
	}
	return streak, nil
}

// MissedDose is a row of today's missed-dose report.
type MissedDose struct {
	Name          string `json:"name"`
	Dosage        string `json:"dosage"`
	ScheduledTime string `json:"scheduled_time"`
}

// MissedToday lists doses already marked Missed for the given date.
func MissedToday(db *gorm.DB, date string) ([]MissedDose, error) {
	var out []MissedDose
	err := db.Raw(`
		SELECT m.name, m.dosage, sl.scheduled_time
		FROM dose_logs sl
		JOIN medications m ON sl.medication_id = m.id
		WHERE sl.date = ? AND sl.status = ?
		ORDER BY sl.scheduled_time`,
		date, models.StatusMissed,
	).Scan(&out).Error
	return out, err
}

// UpcomingDose is a scheduled administration still ahead of now.
type UpcomingDose struct {
	Medication string    `json:"medication"`
	Time       string    `json:"time"`
	At         time.Time `json:"at"`
}

// UpcomingDoses returns the next doses across all medications, rolling
// already-passed times to tomorrow, soonest first.
func UpcomingDoses(db *gorm.DB, now time.Time, limit int) ([]UpcomingDose, error) {
	var meds []models.Medication
	if err := db.Find(&meds).Error; err != nil {
		return nil, err
	}

	var out []UpcomingDose
	for _, med := range meds {
		for _, t := range med.TimeList() {
			clock, err := time.Parse("15:04", t)
			if err != nil {
				continue
			}
			at := time.Date(now.Year(), now.Month(), now.Day(),
				clock.Hour(), clock.Minute(), 0, 0, now.Location())
			if at.Before(now) {
				at = at.AddDate(0, 0, 1)
			}
			out = append(out, UpcomingDose{
				Medication: med.Label(),
				Time:       t,
				At:         at,
			})
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].At.Before(out[j].At) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
