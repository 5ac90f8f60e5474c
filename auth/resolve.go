package auth

import (
	"errors"

	"github.com/NikoSAN02/Blacwom-website/models"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

// ResolveRole reads the account type and status for a principal. It
// deliberately hits the DB on every call: an admin decision can flip
// status between two requests, so the result must never be cached.
func ResolveRole(db *gorm.DB, userID string) (models.UserType, models.UserStatus, error) {
	var user models.User
	err := db.Select("user_type", "status").First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", "", ErrUserNotFound
	}
	if err != nil {
		return "", "", err
	}
	return user.UserType, user.Status, nil
}
