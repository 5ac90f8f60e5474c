package orderControllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/NikoSAN02/Blacwom-website/auth"
	"github.com/NikoSAN02/Blacwom-website/middleware"
	"github.com/NikoSAN02/Blacwom-website/models"
	"github.com/NikoSAN02/Blacwom-website/notifier"
	"github.com/NikoSAN02/Blacwom-website/pricing"
)

// -------- Errors --------

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrAddressIncomplete = errors.New("shipping address is incomplete")
	ErrMissingTrackingID = errors.New("tracking ID is required to mark an order shipped")
	ErrMissingReason     = errors.New("cancellation reason is required")
	ErrInvalidTransition = errors.New("order status transition not allowed")
	ErrVersionConflict   = errors.New("order was modified by someone else, please retry")
)

// -------- Request Structs --------

type PlaceOrderRequest struct {
	Address     models.Address `json:"address"`
	SaveAddress bool           `json:"save_address"`
}

type UpdateOrderStatusRequest struct {
	Status     string `json:"status" binding:"required"`
	TrackingID string `json:"tracking_id"`
	Reason     string `json:"reason"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// -------- Helpers --------

// generateOrderNumber builds the display-friendly reference shown to
// customers, distinct from the row ID.
func generateOrderNumber() string {
	return "ORD-" + time.Now().Format("20060102") + "-" + strings.ToUpper(uuid.NewString()[:8])
}

// orderLookup scopes a query to the row ID or the order number,
// whichever the caller passed. Postgres rejects a non-numeric value
// against the bigint id column, so the two lookups stay separate.
func orderLookup(db *gorm.DB, orderID string) *gorm.DB {
	if _, err := strconv.ParseUint(orderID, 10, 64); err == nil {
		return db.Where("id = ?", orderID)
	}
	return db.Where("order_number = ?", orderID)
}

// -------- Core Logic --------

// PlaceOrder snapshots the user's cart into an immutable order. Unit
// prices are resolved for the buyer's account type at this moment and
// never recomputed afterwards. The cart is cleared in the same
// transaction. Stock is intentionally not decremented; inventory is
// reconciled manually by the shop.
func PlaceOrder(db *gorm.DB, userID string, req PlaceOrderRequest) (*models.Order, error) {
	role, _, err := auth.ResolveRole(db, userID)
	if err != nil {
		return nil, err
	}

	if !req.Address.Complete() {
		return nil, ErrAddressIncomplete
	}

	var cartItems []models.CartItem
	if err := db.Preload("Product").Where("user_id = ?", userID).Find(&cartItems).Error; err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, ErrEmptyCart
	}

	var total float64
	var orderItems []models.OrderItem
	for _, item := range cartItems {
		price := pricing.Resolve(item.Product, role)
		total += pricing.LineTotal(price, item.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			ProductID:       item.ProductID,
			ProductName:     item.Product.Name,
			ProductBrand:    item.Product.Brand,
			ProductImage:    item.Product.ImageURL,
			PriceAtPurchase: price,
			Quantity:        item.Quantity,
		})
	}

	order := models.Order{
		OrderNumber: generateOrderNumber(),
		UserID:      userID,
		Items:       orderItems,
		Total:       total,
		Address:     req.Address,
		Status:      models.OrderStatusPending,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		if req.SaveAddress {
			if err := tx.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
				"street":   req.Address.Street,
				"city":     req.Address.City,
				"state":    req.Address.State,
				"zip_code": req.Address.ZipCode,
				"country":  req.Address.Country,
			}).Error; err != nil {
				return err
			}
		}
		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Transition moves an order to target, enforcing the state machine and
// the per-transition requirements. The status update compare-and-swaps
// on the version counter, so of two concurrent updates one wins and
// the other gets ErrVersionConflict instead of silently overwriting.
// A delivery notification is enqueued in the same transaction.
func Transition(db *gorm.DB, orderID string, target models.OrderStatus, actorEmail, trackingID, reason string) (*models.Order, error) {
	var order models.Order
	if err := orderLookup(db.Preload("User").Preload("Items"), orderID).First(&order).Error; err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(target) {
		return nil, ErrInvalidTransition
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":     target,
		"updated_by": actorEmail,
		"updated_at": now,
		"version":    order.Version + 1,
	}

	switch target {
	case models.OrderStatusShipped:
		if strings.TrimSpace(trackingID) == "" {
			return nil, ErrMissingTrackingID
		}
		updates["tracking_id"] = strings.TrimSpace(trackingID)
	case models.OrderStatusCancelled:
		if strings.TrimSpace(reason) == "" {
			return nil, ErrMissingReason
		}
		updates["cancellation_reason"] = strings.TrimSpace(reason)
		updates["cancelled_by"] = actorEmail
		updates["cancelled_at"] = now
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Order{}).
			Where("id = ? AND version = ?", order.ID, order.Version).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrVersionConflict
		}
		if target == models.OrderStatusDelivered && order.User.Email != "" {
			return notifier.Enqueue(tx, models.NotificationKindDelivery, notifier.Payload{
				To:                     order.User.Email,
				OrderNumber:            order.OrderNumber,
				IsDeliveryNotification: true,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := db.Preload("Items").First(&order, order.ID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func transitionErrorStatus(err error) int {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrMissingTrackingID), errors.Is(err, ErrMissingReason):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrVersionConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// -------- Handlers --------

// POST /orders/place
func PlaceOrderHandler(db *gorm.DB, w *notifier.Worker) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get(middleware.ContextUserID)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		order, err := PlaceOrder(db, userID, req)
		if err != nil {
			switch {
			case errors.Is(err, ErrEmptyCart), errors.Is(err, ErrAddressIncomplete):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case errors.Is(err, auth.ErrUserNotFound):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown account"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
			}
			return
		}
		w.Nudge()
		broadcastOrderEvent("order_created", *order)
		c.JSON(http.StatusCreated, order)
	}
}

// GET /orders/user/:userID
// Owners see their own history newest-first; admins may read anyone's.
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("userID")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userID is required"})
			return
		}
		requester, _ := c.Get(middleware.ContextUserID)
		role, _ := c.Get(middleware.ContextRole)
		if requester != userID && role != auth.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only view your own orders"})
			return
		}

		var orders []models.Order
		if err := db.
			Where("user_id = ?", userID).
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /admin/orders
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("User").
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/:orderID — accepts row ID or order number.
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("orderID")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}

		var order models.Order
		if err := orderLookup(db.Preload("Items"), id).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		requester, _ := c.Get(middleware.ContextUserID)
		role, _ := c.Get(middleware.ContextRole)
		if requester != order.UserID && role != auth.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only view your own orders"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// PUT /admin/orders/:orderID/status
func UpdateOrderStatusHandler(db *gorm.DB, w *notifier.Worker) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		target, err := models.ParseOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		actorEmail, _ := c.Get(middleware.ContextEmail)
		order, err := Transition(db, orderID, target, actorEmail.(string), req.TrackingID, req.Reason)
		if err != nil {
			c.JSON(transitionErrorStatus(err), gin.H{"error": err.Error()})
			return
		}
		w.Nudge()
		broadcastOrderEvent("order_updated", *order)
		c.JSON(http.StatusOK, order)
	}
}

// POST /orders/:orderID/cancel
// Self-service cancellation: only the owner, only while the order is
// still pending or processing, and always with a reason.
func CancelOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		userIDVal, _ := c.Get(middleware.ContextUserID)
		emailVal, _ := c.Get(middleware.ContextEmail)

		var req CancelOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var order models.Order
		if err := orderLookup(db, orderID).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}
		if order.UserID != userIDVal {
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only cancel your own orders"})
			return
		}

		updated, err := Transition(db, orderID, models.OrderStatusCancelled, emailVal.(string), "", req.Reason)
		if err != nil {
			c.JSON(transitionErrorStatus(err), gin.H{"error": err.Error()})
			return
		}
		broadcastOrderEvent("order_updated", *updated)
		c.JSON(http.StatusOK, updated)
	}
}
