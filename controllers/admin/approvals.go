package adminController

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/NikoSAN02/Blacwom-website/models"
	"github.com/NikoSAN02/Blacwom-website/notifier"
)

var ErrNotPending = errors.New("account is not awaiting approval")

// ListPending returns salon and wholesale accounts awaiting a decision,
// newest first, including GST and verification images for review.
func ListPending(db *gorm.DB) ([]models.User, error) {
	var pending []models.User
	err := db.
		Where("user_type IN ? AND status = ?",
			[]models.UserType{models.UserTypeSalon, models.UserTypeWholesale},
			models.UserStatusPending).
		Order("created_at DESC").
		Find(&pending).Error
	return pending, err
}

// Decide commits the approval or rejection first, then enqueues the
// outcome email in the same transaction; email delivery can never undo
// or delay the decision.
func Decide(db *gorm.DB, userID string, approved bool) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	if user.Status != models.UserStatusPending {
		return nil, ErrNotPending
	}

	status := models.UserStatusRejected
	if approved {
		status = models.UserStatusApproved
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&user).Update("status", status).Error; err != nil {
			return err
		}
		return notifier.Enqueue(tx, models.NotificationKindApproval, notifier.Payload{
			To:                     user.Email,
			UserType:               string(user.UserType),
			IsApprovalNotification: true,
			Approved:               &approved,
		})
	})
	if err != nil {
		return nil, err
	}
	user.Status = status
	return &user, nil
}

// -------- Handlers --------

// GET /admin/approvals/pending
func ListPendingHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		pending, err := ListPending(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pending approvals"})
			return
		}
		c.JSON(http.StatusOK, pending)
	}
}

// POST /admin/approvals/decide
func DecideHandler(db *gorm.DB, w *notifier.Worker) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			UserID   string `json:"user_id" binding:"required"`
			Approved *bool  `json:"approved" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		user, err := Decide(db, req.UserID, *req.Approved)
		if err != nil {
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			case errors.Is(err, ErrNotPending):
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user status"})
			}
			return
		}
		w.Nudge()
		c.JSON(http.StatusOK, user)
	}
}
