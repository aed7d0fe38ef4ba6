package handlers

import (
	"time"

	"safari-backend/internal/domain"
	"safari-backend/internal/http/middleware"
	"safari-backend/internal/repositories"
	"safari-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Handlers carries the shared dependencies; services are built per request
// so each one logs with the caller's request id.
type Handlers struct {
	Store     repositories.Store
	Rules     domain.Rules
	JWTSecret []byte
	Now       func() time.Time
}

func (h Handlers) bookings(c *gin.Context) services.BookingService {
	return services.BookingService{Store: h.Store, Rules: h.Rules, Now: h.Now, RequestID: middleware.GetRequestID(c)}
}

func (h Handlers) vehicles(c *gin.Context) services.VehicleService {
	return services.VehicleService{Store: h.Store, Rules: h.Rules, Now: h.Now, RequestID: middleware.GetRequestID(c)}
}

func (h Handlers) docs(c *gin.Context) services.DocsService {
	return services.DocsService{Bookings: h.bookings(c), RequestID: middleware.GetRequestID(c)}
}

func (h Handlers) auth(c *gin.Context) services.AuthService {
	return services.AuthService{Store: h.Store, Secret: h.JWTSecret, Now: h.Now, RequestID: middleware.GetRequestID(c)}
}

// VerifyToken adapts the auth service for middleware.AuthRequired.
func (h Handlers) VerifyToken(token string) (int64, string, error) {
	claims, err := services.AuthService{Secret: h.JWTSecret, Now: h.Now}.Verify(token)
	if err != nil {
		return 0, "", err
	}
	return claims.UserID, claims.Role, nil
}
