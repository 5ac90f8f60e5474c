package notifier

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
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

	require.NoError(t, db.AutoMigrate(&models.EmailNotification{}))
	return db
}

func TestEnqueuePayloadFieldNames(t *testing.T) {
	db := setupTestDB(t)
	approved := true

	require.NoError(t, Enqueue(db, models.NotificationKindApproval, Payload{
		To:                     "salon@example.com",
		UserType:               "salon",
		SalonName:              "Shine Studio",
		PhoneNumber:            "555-0101",
		IsApprovalNotification: true,
		Approved:               &approved,
	}))

	var n models.EmailNotification
	require.NoError(t, db.First(&n).Error)
	assert.Equal(t, models.NotificationKindApproval, n.Kind)
	assert.Equal(t, "salon@example.com", n.Recipient)
	assert.Equal(t, models.NotificationStatusPending, n.Status)

	// field names are the email endpoint's contract
	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(n.Payload), &payload))
	assert.Equal(t, "salon@example.com", payload["to"])
	assert.Equal(t, "salon", payload["userType"])
	assert.Equal(t, "Shine Studio", payload["salonName"])
	assert.Equal(t, "555-0101", payload["phoneNumber"])
	assert.Equal(t, true, payload["isApprovalNotification"])
	assert.Equal(t, true, payload["approved"])
	assert.NotContains(t, payload, "orderNumber")
	assert.NotContains(t, payload, "isDeliveryNotification")
}

func TestDrainMarksSent(t *testing.T) {
	db := setupTestDB(t)

	var received atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received.Add(1)
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "buyer@example.com", payload["to"])
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	require.NoError(t, Enqueue(db, models.NotificationKindDelivery, Payload{
		To:                     "buyer@example.com",
		OrderNumber:            "ORD-20250901-ABCD1234",
		IsDeliveryNotification: true,
	}))

	w := NewWorker(db, srv.URL)
	w.Drain()

	assert.Equal(t, int32(1), received.Load())

	var n models.EmailNotification
	require.NoError(t, db.First(&n).Error)
	assert.Equal(t, models.NotificationStatusSent, n.Status)
	require.NotNil(t, n.SentAt)

	// an already-sent row is not posted again
	w.Drain()
	assert.Equal(t, int32(1), received.Load())
}

func TestDrainRetriesThenFails(t *testing.T) {
	db := setupTestDB(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	require.NoError(t, Enqueue(db, models.NotificationKindRegistration, Payload{
		To:       "salon@example.com",
		UserType: "salon",
	}))

	w := NewWorker(db, srv.URL)

	w.Drain()
	var n models.EmailNotification
	require.NoError(t, db.First(&n).Error)
	assert.Equal(t, models.NotificationStatusPending, n.Status, "failures stay pending until max attempts")
	assert.Equal(t, 1, n.Attempts)
	assert.NotEmpty(t, n.LastError)

	for i := 1; i < maxAttempts; i++ {
		w.Drain()
	}
	require.NoError(t, db.First(&n, n.ID).Error)
	assert.Equal(t, models.NotificationStatusFailed, n.Status)
	assert.Equal(t, maxAttempts, n.Attempts)
}
