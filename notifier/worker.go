package notifier

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/NikoSAN02/Blacwom-website/models"
	"gorm.io/gorm"
)

const (
	defaultInterval = 15 * time.Second
	maxAttempts     = 5
)

// Worker drains pending outbox rows and posts them to the email
// endpoint. Handlers call Nudge after committing so emails usually go
// out immediately; the ticker catches anything a nudge missed.
type Worker struct {
	db       *gorm.DB
	client   *http.Client
	endpoint string
	interval time.Duration
	nudge    chan struct{}
	quit     chan struct{}
}

func NewWorker(db *gorm.DB, endpoint string) *Worker {
	return &Worker{
		db:       db,
		client:   &http.Client{Timeout: 10 * time.Second},
		endpoint: endpoint,
		interval: defaultInterval,
		nudge:    make(chan struct{}, 1),
		quit:     make(chan struct{}),
	}
}

func (w *Worker) Start() {
	go w.loop()
}

func (w *Worker) Stop() {
	close(w.quit)
}

// Nudge wakes the worker without blocking the caller.
func (w *Worker) Nudge() {
	select {
	case w.nudge <- struct{}{}:
	default:
	}
}

func (w *Worker) loop() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-w.nudge:
			w.Drain()
		case <-ticker.C:
			w.Drain()
		case <-w.quit:
			return
		}
	}
}

// Drain attempts every pending notification once. Failures are logged
// and retried on later passes until maxAttempts, then marked failed.
func (w *Worker) Drain() {
	var pending []models.EmailNotification
	if err := w.db.
		Where("status = ?", models.NotificationStatusPending).
		Order("created_at asc").
		Find(&pending).Error; err != nil {
		log.Printf("❌ Notifier: failed to load pending notifications: %v", err)
		return
	}

	for _, n := range pending {
		if err := w.send(n); err != nil {
			n.Attempts++
			n.LastError = err.Error()
			if n.Attempts >= maxAttempts {
				n.Status = models.NotificationStatusFailed
				log.Printf("❌ Notifier: giving up on %s email to %s after %d attempts: %v", n.Kind, n.Recipient, n.Attempts, err)
			} else {
				log.Printf("⚠️ Notifier: %s email to %s failed (attempt %d): %v", n.Kind, n.Recipient, n.Attempts, err)
			}
			if err := w.db.Model(&models.EmailNotification{}).Where("id = ?", n.ID).
				Updates(map[string]interface{}{
					"attempts":   n.Attempts,
					"last_error": n.LastError,
					"status":     n.Status,
				}).Error; err != nil {
				log.Printf("❌ Notifier: failed to record attempt for notification %d: %v", n.ID, err)
			}
			continue
		}

		now := time.Now()
		if err := w.db.Model(&models.EmailNotification{}).Where("id = ?", n.ID).
			Updates(map[string]interface{}{
				"status":  models.NotificationStatusSent,
				"sent_at": &now,
			}).Error; err != nil {
			log.Printf("❌ Notifier: failed to mark notification %d sent: %v", n.ID, err)
		}
	}
}

func (w *Worker) send(n models.EmailNotification) error {
	resp, err := w.client.Post(w.endpoint, "application/json", bytes.NewBufferString(n.Payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("email endpoint returned status %d", resp.StatusCode)
	}
	return nil
}
