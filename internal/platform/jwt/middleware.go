package jwtmw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"riskwizard_backend/internal/feature/auth/domain/entity"
)

const (
	ContextUserID = "userID"
	ContextEmail  = "email"

	// AccessTokenCookie はブラウザ経由のログインで発行されるアクセストークンのCookie名です。
	AccessTokenCookie = "access_token"
)

// AccessTokenParser verifies access tokens.
type AccessTokenParser interface {
	ParseAccess(token string) (*entity.TokenClaims, error)
}

// AuthRequired returns a Gin middleware that accepts an access token from the
// access_token cookie or an Authorization: Bearer header and rejects everything else.
func AuthRequired(parser AccessTokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := extractToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing access token"})
			return
		}

		claims, err := parser.ParseAccess(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Next()
	}
}

// OptionalAuth sets the user in the context when a valid access token is present
// and lets anonymous requests through.
func OptionalAuth(parser AccessTokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenStr, ok := extractToken(c); ok {
			if claims, err := parser.ParseAccess(tokenStr); err == nil {
				c.Set(ContextUserID, claims.UserID)
				c.Set(ContextEmail, claims.Email)
			}
		}
		c.Next()
	}
}

// UserID returns the authenticated user ID set by the middleware.
func UserID(c *gin.Context) (string, bool) {
	id := c.GetString(ContextUserID)
	return id, id != ""
}

// Cookie を優先し、なければ Authorization ヘッダーを見る
func extractToken(c *gin.Context) (string, bool) {
	if v, err := c.Cookie(AccessTokenCookie); err == nil && v != "" {
		return v, true
	}
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", false
	}
	tokenStr := strings.TrimPrefix(auth, "Bearer ")
	return tokenStr, tokenStr != ""
}
