package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/agriprofit/agriprofit/internal/auth"
)

const (
	AuthorizationHeader = "Authorization"
	BearerPrefix        = "Bearer "
	UserIDKey           = "user_id"
	UsernameKey         = "username"
)

// JWTAuth validates a token from the Authorization header or, failing
// that, from the auth cookie set at login. Browser pages rely on the
// cookie; API clients send the header.
func JWTAuth(authService *auth.Service, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c, cookieName)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing credentials",
			})
			return
		}

		claims, err := authService.ValidateToken(token)
		if err != nil {
			message := "invalid token"
			if err == auth.ErrExpiredToken {
				message = "token expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": message,
			})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UsernameKey, claims.Username)

		c.Next()
	}
}

// OptionalJWTAuth populates user identity when valid credentials are
// present but never rejects the request. Anonymous callers proceed with
// no identity set.
func OptionalJWTAuth(authService *auth.Service, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c, cookieName)
		if token != "" {
			if claims, err := authService.ValidateToken(token); err == nil {
				c.Set(UserIDKey, claims.UserID)
				c.Set(UsernameKey, claims.Username)
			}
		}
		c.Next()
	}
}

func extractToken(c *gin.Context, cookieName string) string {
	header := c.GetHeader(AuthorizationHeader)
	if strings.HasPrefix(header, BearerPrefix) {
		return strings.TrimPrefix(header, BearerPrefix)
	}
	if cookieName != "" {
		if cookie, err := c.Cookie(cookieName); err == nil {
			return cookie
		}
	}
	return ""
}

// GetUserID reports the authenticated user's ID, if any. The second
// return is false for anonymous requests.
func GetUserID(c *gin.Context) (int, bool) {
	if uid, exists := c.Get(UserIDKey); exists {
		if id, ok := uid.(int); ok {
			return id, true
		}
	}
	return 0, false
}

func GetUsername(c *gin.Context) (string, bool) {
	if name, exists := c.Get(UsernameKey); exists {
		if username, ok := name.(string); ok {
			return username, true
		}
	}
	return "", false
}
