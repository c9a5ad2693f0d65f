package middleware

import (
	"strings"

	"tadreeb/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by OptionalAuth.
const (
	CtxAuthenticated = "authenticated"
	CtxUserID        = "userID"
	CtxBearerToken   = "bearerToken"
)

// OptionalAuth reads the caller's bearer token when present and records an
// "is authenticated" flag in the context. It never rejects: the booking
// core only reads the flag, and the checkout collaborator's own 401 is
// what sends an unauthenticated caller to sign-up.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(CtxAuthenticated, false)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.Next()
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || userID == "" {
			c.Next()
			return
		}

		c.Set(CtxAuthenticated, true)
		c.Set(CtxUserID, userID)
		c.Set(CtxBearerToken, tokenString)
		c.Next()
	}
}

// BearerToken returns the validated bearer token from the context, empty
// when the caller is unauthenticated.
func BearerToken(c *gin.Context) string {
	if tok, ok := c.Get(CtxBearerToken); ok {
		if s, ok := tok.(string); ok {
			return s
		}
	}
	return ""
}
