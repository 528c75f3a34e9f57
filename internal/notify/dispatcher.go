// Package notify dispatches medication events to the configured channels:
// desktop popups (best-effort), guardian WhatsApp messages (result
// reported, never raised), and optionally a device push.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"dosebuddy-backend/internal/analytics"
	"dosebuddy-backend/internal/models"
	"dosebuddy-backend/pkg/utils"

	"gorm.io/gorm"
)

// DesktopChannel shows a local popup. Failures are logged, never surfaced.
type DesktopChannel interface {
	Notify(title, body string) error
}

// GuardianChannel delivers a text body to the guardian's phone. It returns
// (ok, detail) instead of an error: an unreachable guardian (sandbox not
// joined, bad credentials, malformed number) must not break callers.
type GuardianChannel interface {
	Send(ctx context.Context, toPhone, body string) (bool, string)
}

// PushChannel sends to the owner's own device. Optional.
type PushChannel interface {
	Push(ctx context.Context, title, body string) error
}

type Dispatcher struct {
	db       *gorm.DB
	desktop  DesktopChannel
	guardian GuardianChannel
	push     PushChannel // may be nil
}

func New(db *gorm.DB, desktop DesktopChannel, guardian GuardianChannel, push PushChannel) *Dispatcher {
	return &Dispatcher{db: db, desktop: desktop, guardian: guardian, push: push}
}

// guardianInfo loads the singleton guardian record. ok is false when no
// guardian is configured or alerts are switched off.
func (d *Dispatcher) guardianInfo() (*models.Guardian, bool) {
	var g models.Guardian
	err := d.db.Order("id DESC").First(&g).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("notify: loading guardian: %v", err)
		}
		return nil, false
	}
	if !g.AlertsEnabled {
		return nil, false
	}
	return &g, true
}

func (d *Dispatcher) notifyDesktop(title, body string) {
	if d.desktop == nil {
		return
	}
	if err := d.desktop.Notify(title, body); err != nil {
		log.Printf("notify: desktop notification failed: %v", err)
	}
}

func (d *Dispatcher) pushDevice(ctx context.Context, title, body string) {
	if d.push == nil {
		return
	}
	if err := d.push.Push(ctx, title, body); err != nil {
		log.Printf("notify: device push failed: %v", err)
	}
}

// DoseReminder fires the local popup at a dose's scheduled time.
func (d *Dispatcher) DoseReminder(med models.Medication) {
	d.notifyDesktop(
		fmt.Sprintf("💊 DoseBuddy Reminder: %s", med.Name),
		fmt.Sprintf("Time to take %s\nPlease confirm in the app!", med.Dosage),
	)
}

// MissedDose alerts the guardian that a scheduled dose was not taken.
func (d *Dispatcher) MissedDose(ctx context.Context, med models.Medication, scheduledTime string) (bool, string) {
	g, ok := d.guardianInfo()
	if !ok {
		return false, "Guardian alerts are not configured"
	}

	body := fmt.Sprintf(missedDoseTemplate,
		g.PatientName, med.Label(), utils.Format12Hour(scheduledTime))

	d.pushDevice(ctx, "Missed dose: "+med.Name, "Scheduled at "+utils.Format12Hour(scheduledTime))
	return d.guardian.Send(ctx, g.GuardianPhone, body)
}

// LowStock alerts the guardian about a nearly-empty medication and records
// the (medication, date) marker so the same day never alerts twice.
func (d *Dispatcher) LowStock(ctx context.Context, med models.Medication, date string) (bool, string) {
	g, ok := d.guardianInfo()
	if !ok {
		return false, "Guardian alerts are not configured"
	}

	body := fmt.Sprintf(lowStockTemplate, g.PatientName, med.Label(), med.RemainingCount)

	ok, detail := d.guardian.Send(ctx, g.GuardianPhone, body)

	// Marker is recorded once the attempt was made. A failed send is not
	// retried until the next daily run.
	marker := models.LowStockAlert{MedicationID: med.ID, AlertDate: date}
	if err := d.db.Create(&marker).Error; err != nil {
		log.Printf("notify: recording low-stock marker: %v", err)
	}
	return ok, detail
}

// DailySummary sends the end-of-day adherence report.
func (d *Dispatcher) DailySummary(ctx context.Context, now time.Time, stats analytics.Stats) (bool, string) {
	g, ok := d.guardianInfo()
	if !ok {
		return false, "Guardian alerts are not configured"
	}

	emoji, feedback := "⚠️", "Needs improvement"
	switch {
	case stats.AdherenceRate == 100:
		emoji, feedback = "🌟", "Perfect day!"
	case stats.AdherenceRate >= 80:
		emoji, feedback = "✅", "Good job!"
	}

	body := fmt.Sprintf(dailySummaryTemplate,
		g.PatientName, now.Format("January 2, 2006"),
		stats.Taken, stats.Missed, stats.AdherenceRate, emoji, feedback)

	return d.guardian.Send(ctx, g.GuardianPhone, body)
}

// TestPing verifies the guardian channel end to end. Unlike alerts it runs
// even when alerts are toggled off, so the user can test before enabling.
func (d *Dispatcher) TestPing(ctx context.Context) (bool, string) {
	var g models.Guardian
	if err := d.db.Order("id DESC").First(&g).Error; err != nil {
		return false, "No guardian configured"
	}
	return d.guardian.Send(ctx, g.GuardianPhone, testPingBody)
}

const missedDoseTemplate = `🚨 *MEDICATION ALERT*

Patient: %s
Medication: %s
Scheduled Time: %s
Status: ❌ MISSED

This medication was not taken as scheduled. Please check on the patient.

- DoseBuddy Alert System`

const lowStockTemplate = `⚠️ *LOW STOCK ALERT*

Patient: %s
Medication: %s
Remaining: %d doses

Please refill the medication soon!

- DoseBuddy Alert System`

const dailySummaryTemplate = `📊 *DAILY SUMMARY*

Patient: %s
Date: %s

✅ Taken: %d dose(s)
❌ Missed: %d dose(s)
📈 Adherence: %.1f%%

%s %s

- DoseBuddy Daily Report`

const testPingBody = "✅ DoseBuddy WhatsApp notifications are now active! " +
	"You will receive alerts when medications are missed or stock is low."
