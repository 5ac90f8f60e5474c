package adminController

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/NikoSAN02/Blacwom-website/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.EmailNotification{},
	))
	return db
}

func seedPendingWholesaler(t *testing.T, db *gorm.DB, id, email string) models.User {
	t.Helper()
	user := models.User{
		ID:           id,
		Email:        email,
		PasswordHash: "x",
		UserType:     models.UserTypeWholesale,
		Status:       models.UserStatusPending,
		GST:          "GST123",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestListPendingOnlyNonCustomers(t *testing.T) {
	db := setupTestDB(t)
	seedPendingWholesaler(t, db, "w-1", "dealer@example.com")
	require.NoError(t, db.Create(&models.User{
		ID: "c-1", Email: "shopper@example.com", PasswordHash: "x",
		UserType: models.UserTypeCustomer, Status: models.UserStatusApproved,
	}).Error)

	pending, err := ListPending(db)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "w-1", pending[0].ID)
}

func TestDecideApproveRemovesFromPending(t *testing.T) {
	db := setupTestDB(t)
	user := seedPendingWholesaler(t, db, "w-1", "dealer@example.com")

	decided, err := Decide(db, user.ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusApproved, decided.Status)

	pending, err := ListPending(db)
	require.NoError(t, err)
	assert.Empty(t, pending, "approved user must disappear from the pending list")
}

func TestDecideEnqueuesOutcomeEmail(t *testing.T) {
	db := setupTestDB(t)
	user := seedPendingWholesaler(t, db, "w-1", "dealer@example.com")

	_, err := Decide(db, user.ID, false)
	require.NoError(t, err)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, "id = ?", user.ID).Error)
	assert.Equal(t, models.UserStatusRejected, reloaded.Status)

	var n models.EmailNotification
	require.NoError(t, db.Where("kind = ?", models.NotificationKindApproval).First(&n).Error)
	assert.Equal(t, user.Email, n.Recipient)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(n.Payload), &payload))
	assert.Equal(t, "wholesale", payload["userType"])
	assert.Equal(t, true, payload["isApprovalNotification"])
	assert.Equal(t, false, payload["approved"])
}

func TestDecideRejectsNonPending(t *testing.T) {
	db := setupTestDB(t)
	user := seedPendingWholesaler(t, db, "w-1", "dealer@example.com")

	_, err := Decide(db, user.ID, true)
	require.NoError(t, err)

	_, err = Decide(db, user.ID, false)
	assert.ErrorIs(t, err, ErrNotPending)
}

func TestDecideUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	_, err := Decide(db, "ghost", true)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
