package models

import "time"

type UserType string
type UserStatus string

const (
	// Account types, each mapped to its own list price on Product
	UserTypeCustomer  UserType = "customer"
	UserTypeSalon     UserType = "salon"
	UserTypeWholesale UserType = "wholesale"

	// Account statuses. Customers are approved on signup; salon and
	// wholesale accounts wait for an admin decision.
	UserStatusPending  UserStatus = "pending"
	UserStatusApproved UserStatus = "approved"
	UserStatusRejected UserStatus = "rejected"
)

type User struct {
	ID                 string     `gorm:"primaryKey" json:"id"`
	Email              string     `gorm:"unique;not null" json:"email"`
	PasswordHash       string     `gorm:"not null" json:"-"`
	UserType           UserType   `gorm:"type:VARCHAR(20);not null;default:'customer'" json:"user_type"`
	Status             UserStatus `gorm:"type:VARCHAR(20);not null;default:'pending'" json:"status"`
	GST                string     `json:"gst,omitempty"`
	SalonName          string     `json:"salon_name,omitempty"`
	BusinessName       string     `json:"business_name,omitempty"`
	Phone              string     `json:"phone,omitempty"`
	Address            Address    `gorm:"embedded" json:"address"`
	VerificationImages []string   `gorm:"serializer:json" json:"verification_images,omitempty"`
	Orders             []Order    `gorm:"foreignKey:UserID" json:"orders,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// Address model embedded in User and (prefixed) in Order
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

// Complete reports whether every field required at checkout is filled in.
func (a Address) Complete() bool {
	return a.Street != "" && a.City != "" && a.State != "" && a.ZipCode != "" && a.Country != ""
}
