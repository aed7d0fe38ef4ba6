package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey   = "userID"
	userRoleKey = "userRole"
)

// VerifyFunc checks a bearer token and returns the staff identity in it.
type VerifyFunc func(token string) (userID int64, role string, err error)

// AuthRequired rejects requests without a valid bearer token and stores the
// caller's id and role on the context for RequireRoles.
func AuthRequired(verify VerifyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			abortAuth(c, http.StatusUnauthorized, "unauthorized", "missing bearer token")
			return
		}
		userID, role, err := verify(strings.TrimSpace(token))
		if err != nil {
			abortAuth(c, http.StatusUnauthorized, "unauthorized", err.Error())
			return
		}
		c.Set(userIDKey, userID)
		c.Set(userRoleKey, role)
		c.Next()
	}
}

// RequireRoles only lets through callers whose role is one of allowedRoles.
// AuthRequired must run first.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}

	return func(c *gin.Context) {
		role := strings.ToLower(strings.TrimSpace(c.GetString(userRoleKey)))
		if role == "" {
			abortAuth(c, http.StatusUnauthorized, "unauthorized", "no role on request")
			return
		}
		if _, ok := allowed[role]; !ok {
			abortAuth(c, http.StatusForbidden, "forbidden", "role "+role+" is not allowed")
			return
		}
		c.Next()
	}
}

// GetUserID returns the authenticated staff id, or 0.
func GetUserID(c *gin.Context) int64 {
	if v, ok := c.Get(userIDKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

func abortAuth(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error":      message,
		"code":       code,
		"message":    message,
		"request_id": GetRequestID(c),
	})
}
