package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/NikoSAN02/Blacwom-website/auth"
	"github.com/NikoSAN02/Blacwom-website/models"
)

const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
	ContextRole   = "role"
)

func parseToken(tokenString string) (jwt.MapClaims, bool) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	return claims, ok
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return header
}

// ValidateToken rejects requests without a valid session token and
// stores the token's identity in the request context.
func ValidateToken(c *gin.Context) {
	tokenString := bearerToken(c)
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
		c.Abort()
		return
	}
	claims, ok := parseToken(tokenString)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		c.Abort()
		return
	}

	c.Set(ContextUserID, claims["user_id"])
	c.Set(ContextEmail, claims["email"])
	c.Set(ContextRole, claims["role"])
	c.Next()
}

// OptionalToken is ValidateToken for public catalog routes: an absent
// or bad token just means the viewer prices as an anonymous customer.
func OptionalToken(c *gin.Context) {
	if tokenString := bearerToken(c); tokenString != "" {
		if claims, ok := parseToken(tokenString); ok {
			c.Set(ContextUserID, claims["user_id"])
			c.Set(ContextEmail, claims["email"])
			c.Set(ContextRole, claims["role"])
		}
	}
	c.Next()
}

// RequireAdmin gates admin routes on the server-resolved role claim.
func RequireAdmin(c *gin.Context) {
	if role, _ := c.Get(ContextRole); role != auth.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		c.Abort()
		return
	}
	c.Next()
}

// RequireApproved re-checks account status against the DB on every
// request, so an account rejected after login loses access immediately.
func RequireApproved(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := c.Get(ContextUserID)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		_, status, err := auth.ResolveRole(db, userID.(string))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown account"})
			c.Abort()
			return
		}
		if status != models.UserStatusApproved {
			c.JSON(http.StatusForbidden, gin.H{"error": "Your account is awaiting approval"})
			c.Abort()
			return
		}
		c.Next()
	}
}
