package api

import (
	"log"
	stdhttp "net/http"

	intconfig "safari-backend/internal/config"
	"safari-backend/internal/domain/models"
	h "safari-backend/internal/http/handlers"
	"safari-backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(env intconfig.Env, hs h.Handlers) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger("/api/health", "/metrics"), gin.Recovery(), middleware.CORS(env.AllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"success": false,
			"error":   "route not found",
			"path":    c.Request.URL.Path,
			"method":  c.Request.Method,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := middleware.AuthRequired(hs.VerifyToken)
	staff := middleware.RequireRoles(models.RoleReception, models.RoleGate, models.RoleManager)
	reception := middleware.RequireRoles(models.RoleReception, models.RoleManager)
	gate := middleware.RequireRoles(models.RoleGate, models.RoleManager)

	api := r.Group("/api")
	{
		api.GET("/health", hs.Health)
		api.GET("/db-check", hs.DBCheck)
		api.GET("/routes", auth, staff, hs.Routes)

		api.POST("/auth/login", hs.Login)

		// Public booking surface
		bookings := api.Group("/bookings")
		bookings.POST("", hs.CreateBooking)
		bookings.GET("/available-slots", hs.AvailableSlots)
		bookings.GET("/:id/:safariDate", hs.GetBookingByToken)
		bookings.GET("/:id/:safariDate/ticket", hs.BookingTicket)

		// Staff
		bookings.GET("", auth, staff, hs.ListBookings)
		bookings.PUT("/:id/confirm-payment", auth, reception, hs.ConfirmPayment)
		bookings.PUT("/:id/assign-vehicle", auth, reception, hs.AssignVehicle)
		bookings.PUT("/:id/start", auth, gate, hs.StartSafari)
		bookings.PUT("/:id/end", auth, gate, hs.EndSafari)

		vehicles := api.Group("/vehicle-assignments", auth)
		vehicles.GET("", staff, hs.ListVehicles)
		vehicles.PUT("/:id/driver", reception, hs.SetDriver)
		vehicles.PUT("/:id/move", staff, hs.MoveVehicle)
		vehicles.PUT("/:id/gate", gate, hs.RecordGate)
	}

	h.SetRouter(r)
	return r
}
