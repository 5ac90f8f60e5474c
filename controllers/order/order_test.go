package orderControllers

import (
	"encoding/json"
	"strconv"
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
	// a fresh pool connection would see an empty in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Admin{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.EmailNotification{},
	))
	return db
}

func seedWholesaleBuyer(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	user := models.User{
		ID:           "buyer-1",
		Email:        "dealer@example.com",
		PasswordHash: "x",
		UserType:     models.UserTypeWholesale,
		Status:       models.UserStatusApproved,
		GST:          "GST123",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedProduct(t *testing.T, db *gorm.DB) models.Product {
	t.Helper()
	product := models.Product{
		Name:           "Argan Oil Shampoo",
		Brand:          "Glam Glide",
		CustomerPrice:  100,
		WholesalePrice: 70,
		SalonPrice:     85,
		Category:       "hair-care",
		Stock:          50,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func completeAddress() models.Address {
	return models.Address{
		Street:  "12 MG Road",
		City:    "Pune",
		State:   "MH",
		ZipCode: "411001",
		Country: "India",
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	db := setupTestDB(t)
	user := seedWholesaleBuyer(t, db)

	_, err := PlaceOrder(db, user.ID, PlaceOrderRequest{Address: completeAddress()})
	assert.ErrorIs(t, err, ErrEmptyCart)

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Zero(t, count, "no order row may be created for an empty cart")
}

func TestPlaceOrderIncompleteAddress(t *testing.T) {
	db := setupTestDB(t)
	user := seedWholesaleBuyer(t, db)
	product := seedProduct(t, db)
	require.NoError(t, db.Create(&models.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1}).Error)

	address := completeAddress()
	address.ZipCode = ""
	_, err := PlaceOrder(db, user.ID, PlaceOrderRequest{Address: address})
	assert.ErrorIs(t, err, ErrAddressIncomplete)
}

func TestPlaceOrderSnapshotsPrices(t *testing.T) {
	db := setupTestDB(t)
	user := seedWholesaleBuyer(t, db)
	product := seedProduct(t, db)
	require.NoError(t, db.Create(&models.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 2}).Error)

	order, err := PlaceOrder(db, user.ID, PlaceOrderRequest{Address: completeAddress()})
	require.NoError(t, err)

	// wholesale buyer pays the wholesale price
	require.Len(t, order.Items, 1)
	assert.Equal(t, 70.0, order.Items[0].PriceAtPurchase)
	assert.Equal(t, 140.0, order.Total)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.NotEmpty(t, order.OrderNumber)

	// cart cleared in the same transaction
	var cartCount int64
	db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&cartCount)
	assert.Zero(t, cartCount)

	// a later catalog price change must not touch the snapshot
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("wholesale_price", 999).Error)

	var reloaded models.Order
	require.NoError(t, db.Preload("Items").First(&reloaded, order.ID).Error)
	assert.Equal(t, 70.0, reloaded.Items[0].PriceAtPurchase)
	assert.Equal(t, 140.0, reloaded.Total)

	var sum float64
	for _, item := range reloaded.Items {
		sum += item.PriceAtPurchase * float64(item.Quantity)
	}
	assert.Equal(t, reloaded.Total, sum)
}

func TestPlaceOrderSavesAddress(t *testing.T) {
	db := setupTestDB(t)
	user := seedWholesaleBuyer(t, db)
	product := seedProduct(t, db)
	require.NoError(t, db.Create(&models.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1}).Error)

	_, err := PlaceOrder(db, user.ID, PlaceOrderRequest{Address: completeAddress(), SaveAddress: true})
	require.NoError(t, err)

	var saved models.User
	require.NoError(t, db.First(&saved, "id = ?", user.ID).Error)
	assert.Equal(t, "Pune", saved.Address.City)
	assert.Equal(t, "411001", saved.Address.ZipCode)
}

func placeTestOrder(t *testing.T, db *gorm.DB) *models.Order {
	t.Helper()
	user := seedWholesaleBuyer(t, db)
	product := seedProduct(t, db)
	require.NoError(t, db.Create(&models.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1}).Error)
	order, err := PlaceOrder(db, user.ID, PlaceOrderRequest{Address: completeAddress()})
	require.NoError(t, err)
	return order
}

func TestTransitionShippedRequiresTrackingID(t *testing.T) {
	db := setupTestDB(t)
	order := placeTestOrder(t, db)

	_, err := Transition(db, order.OrderNumber, models.OrderStatusShipped, "admin@example.com", "", "")
	assert.ErrorIs(t, err, ErrMissingTrackingID)

	updated, err := Transition(db, order.OrderNumber, models.OrderStatusShipped, "admin@example.com", "T123", "")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, updated.Status)
	assert.Equal(t, "T123", updated.TrackingID)
	assert.Equal(t, "admin@example.com", updated.UpdatedBy)
	assert.Equal(t, order.Version+1, updated.Version)
}

func TestTransitionLooksUpByRowIDOrOrderNumber(t *testing.T) {
	db := setupTestDB(t)
	order := placeTestOrder(t, db)

	// numeric param resolves against the row ID
	byID, err := Transition(db, strconv.FormatUint(uint64(order.ID), 10),
		models.OrderStatusProcessing, "admin@example.com", "", "")
	require.NoError(t, err)
	assert.Equal(t, order.OrderNumber, byID.OrderNumber)

	// non-numeric param resolves against the order number only, so it
	// never reaches the integer id column
	byNumber, err := Transition(db, order.OrderNumber,
		models.OrderStatusShipped, "admin@example.com", "T123", "")
	require.NoError(t, err)
	assert.Equal(t, order.ID, byNumber.ID)
}

func TestTransitionCancelRequiresReason(t *testing.T) {
	db := setupTestDB(t)
	order := placeTestOrder(t, db)

	_, err := Transition(db, order.OrderNumber, models.OrderStatusCancelled, "dealer@example.com", "", "")
	assert.ErrorIs(t, err, ErrMissingReason)

	updated, err := Transition(db, order.OrderNumber, models.OrderStatusCancelled, "dealer@example.com", "", "changed my mind")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, updated.Status)
	assert.Equal(t, "changed my mind", updated.CancellationReason)
	assert.Equal(t, "dealer@example.com", updated.CancelledBy)
	require.NotNil(t, updated.CancelledAt)
}

func TestTransitionDeliveredEnqueuesNotification(t *testing.T) {
	db := setupTestDB(t)
	order := placeTestOrder(t, db)

	_, err := Transition(db, order.OrderNumber, models.OrderStatusShipped, "admin@example.com", "T123", "")
	require.NoError(t, err)
	updated, err := Transition(db, order.OrderNumber, models.OrderStatusDelivered, "admin@example.com", "", "")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, updated.Status)

	var n models.EmailNotification
	require.NoError(t, db.Where("kind = ?", models.NotificationKindDelivery).First(&n).Error)
	assert.Equal(t, "dealer@example.com", n.Recipient)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(n.Payload), &payload))
	assert.Equal(t, order.OrderNumber, payload["orderNumber"])
	assert.Equal(t, true, payload["isDeliveryNotification"])
}

func TestTransitionTerminalStatusRejected(t *testing.T) {
	db := setupTestDB(t)
	order := placeTestOrder(t, db)

	_, err := Transition(db, order.OrderNumber, models.OrderStatusShipped, "admin@example.com", "T123", "")
	require.NoError(t, err)
	_, err = Transition(db, order.OrderNumber, models.OrderStatusDelivered, "admin@example.com", "", "")
	require.NoError(t, err)

	_, err = Transition(db, order.OrderNumber, models.OrderStatusProcessing, "admin@example.com", "", "")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = Transition(db, order.OrderNumber, models.OrderStatusCancelled, "admin@example.com", "", "too late")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransitionVersionCompareAndSwap(t *testing.T) {
	db := setupTestDB(t)
	order := placeTestOrder(t, db)

	updated, err := Transition(db, order.OrderNumber, models.OrderStatusProcessing, "admin@example.com", "", "")
	require.NoError(t, err)
	assert.Equal(t, order.Version+1, updated.Version)

	// a writer still holding the old version must lose
	result := db.Model(&models.Order{}).
		Where("id = ? AND version = ?", order.ID, order.Version).
		Updates(map[string]interface{}{"status": models.OrderStatusCancelled, "version": order.Version + 1})
	require.NoError(t, result.Error)
	assert.Zero(t, result.RowsAffected)
}
