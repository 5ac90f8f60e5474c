package models

// Admin rows decide who gets the "admin" role claim at login.
// Seeded from ADMIN_EMAILS at boot; never inferred from client state.
type Admin struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Email string `gorm:"unique;not null" json:"email"`
	Name  string `json:"name"`
}
