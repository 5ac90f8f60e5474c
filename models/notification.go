package models

import "time"

type NotificationKind string
type NotificationStatus string

const (
	NotificationKindRegistration NotificationKind = "registration"
	NotificationKindApproval     NotificationKind = "approval"
	NotificationKindDelivery     NotificationKind = "delivery"

	NotificationStatusPending NotificationStatus = "pending"
	NotificationStatusSent    NotificationStatus = "sent"
	NotificationStatusFailed  NotificationStatus = "failed"
)

// EmailNotification is the outbox row written in the same transaction
// as the state change that triggered it. A background worker drains
// pending rows; delivery failures never touch the committed change.
type EmailNotification struct {
	ID        uint               `gorm:"primaryKey" json:"id"`
	Kind      NotificationKind   `gorm:"type:VARCHAR(20);not null" json:"kind"`
	Recipient string             `gorm:"not null" json:"recipient"`
	Payload   string             `gorm:"type:text;not null" json:"payload"`
	Status    NotificationStatus `gorm:"type:VARCHAR(20);not null;default:'pending';index" json:"status"`
	Attempts  int                `gorm:"not null;default:0" json:"attempts"`
	LastError string             `json:"last_error,omitempty"`
	SentAt    *time.Time         `json:"sent_at,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}
