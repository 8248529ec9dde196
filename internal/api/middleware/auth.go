package middleware

import (
	"net/http"
	"strings"

	"waste-retrieval-api-server/internal/auth"

	"github.com/gin-gonic/gin"
)

// Các key dùng để lưu thông tin user trong gin.Context.
const (
	ContextUserID    = "user_id"
	ContextUserEmail = "user_email"
)

// Authenticate là middleware xác thực token JWT.
// Nó kiểm tra tính hợp lệ của token và đưa thông tin user vào context.
func Authenticate(secret []byte, issuer string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authorization header is required"})
			return
		}
		if !setIdentity(c, authHeader, secret, issuer) {
			return
		}
		c.Next()
	}
}

// OptionalAuthenticate accepts requests without a token. A token that is
// present but invalid is still rejected.
func OptionalAuthenticate(secret []byte, issuer string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && !setIdentity(c, authHeader, secret, issuer) {
			return
		}
		c.Next()
	}
}

func setIdentity(c *gin.Context, authHeader string, secret []byte, issuer string) bool {
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid token format"})
		return false
	}

	claims, err := auth.ParseToken(secret, issuer, tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid or expired token"})
		return false
	}

	// Lưu thông tin user vào context của request
	c.Set(ContextUserID, claims.UserID())
	c.Set(ContextUserEmail, claims.Email)
	return true
}
