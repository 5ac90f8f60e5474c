package notifier

import (
	"encoding/json"

	"github.com/NikoSAN02/Blacwom-website/models"
	"gorm.io/gorm"
)

// Payload is the JSON body posted to the email endpoint. Field names
// follow the endpoint's contract.
type Payload struct {
	To                     string `json:"to"`
	UserType               string `json:"userType,omitempty"`
	SalonName              string `json:"salonName,omitempty"`
	PhoneNumber            string `json:"phoneNumber,omitempty"`
	OrderNumber            string `json:"orderNumber,omitempty"`
	IsDeliveryNotification bool   `json:"isDeliveryNotification,omitempty"`
	IsApprovalNotification bool   `json:"isApprovalNotification,omitempty"`
	Approved               *bool  `json:"approved,omitempty"`
}

// Enqueue writes an outbox row. Call it inside the transaction that
// performs the state change the email announces, so a rolled-back
// change never produces an email and a committed change never loses one.
func Enqueue(tx *gorm.DB, kind models.NotificationKind, p Payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return tx.Create(&models.EmailNotification{
		Kind:      kind,
		Recipient: p.To,
		Payload:   string(body),
	}).Error
}
