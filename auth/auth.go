package auth

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/NikoSAN02/Blacwom-website/models"
	"github.com/NikoSAN02/Blacwom-website/notifier"
)

// RoleAdmin is the role claim given to emails present in the admins
// table. It is resolved server-side at login, never taken from the client.
const RoleAdmin = "admin"

// -------- Request Structs --------

type SignupRequest struct {
	Email              string   `json:"email" binding:"required,email"`
	Password           string   `json:"password" binding:"required,min=6"`
	ConfirmPassword    string   `json:"confirm_password" binding:"required"`
	SalonName          string   `json:"salon_name"`
	BusinessName       string   `json:"business_name"`
	Phone              string   `json:"phone"`
	GST                string   `json:"gst"`
	VerificationImages []string `json:"verification_images"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// -------- Handlers --------

// SignupHandler registers an account of the given type. Customers are
// approved immediately; salon and wholesale accounts start pending and
// trigger a registration email once the row is committed.
func SignupHandler(db *gorm.DB, w *notifier.Worker, userType models.UserType) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if req.Password != req.ConfirmPassword {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match"})
			return
		}
		if userType == models.UserTypeWholesale && strings.TrimSpace(req.GST) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "GST number is required for wholesale accounts"})
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		var count int64
		if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "An account with this email already exists"})
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}

		status := models.UserStatusPending
		if userType == models.UserTypeCustomer {
			status = models.UserStatusApproved
		}

		user := models.User{
			ID:                 uuid.NewString(),
			Email:              email,
			PasswordHash:       string(hashed),
			UserType:           userType,
			Status:             status,
			GST:                strings.TrimSpace(req.GST),
			SalonName:          req.SalonName,
			BusinessName:       req.BusinessName,
			Phone:              req.Phone,
			VerificationImages: req.VerificationImages,
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			if userType == models.UserTypeCustomer {
				return nil
			}
			name := user.SalonName
			if userType == models.UserTypeWholesale {
				name = user.BusinessName
			}
			return notifier.Enqueue(tx, models.NotificationKindRegistration, notifier.Payload{
				To:          user.Email,
				UserType:    string(userType),
				SalonName:   name,
				PhoneNumber: user.Phone,
			})
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
			return
		}
		w.Nudge()

		resp := gin.H{"message": "Account created", "user": user}
		if status == models.UserStatusApproved {
			resp["token"] = issueJWT(db, user)
		} else {
			resp["message"] = "Account created, awaiting approval"
		}
		c.JSON(http.StatusCreated, resp)
	}
}

// LoginHandler verifies credentials, then applies the application-level
// approval gate: a pending or rejected salon/wholesale account gets a
// specific message rather than a token.
func LoginHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		var user models.User
		if err := db.First(&user, "email = ?", email).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}

		// Credentials are valid; now the approval gate.
		switch user.Status {
		case models.UserStatusPending:
			c.JSON(http.StatusForbidden, gin.H{"error": "Your account is awaiting approval. We will email you once it has been reviewed."})
			return
		case models.UserStatusRejected:
			c.JSON(http.StatusForbidden, gin.H{"error": "Your registration was not approved. Please contact support."})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"user":    user,
			"token":   issueJWT(db, user),
		})
	}
}

// issueJWT generates a session token. The role claim is resolved here,
// against the admins table, so admin access never depends on
// client-supplied state.
func issueJWT(db *gorm.DB, user models.User) string {
	role := string(user.UserType)
	var count int64
	db.Model(&models.Admin{}).Where("email = ?", user.Email).Count(&count)
	if count > 0 {
		role = RoleAdmin
	}

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return ""
	}
	return signedToken
}
