// README: HTTP router registration.
package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"letsgo/internal/http/handlers"
	"letsgo/internal/http/middleware"
	"letsgo/internal/modules/booking"
	"letsgo/internal/modules/trip"
)

type RouterDeps struct {
	Booking *booking.Service
	Trips   *trip.Service

	JWTSecret []byte

	// Observe records request latency; nil disables metrics.
	Observe func(route, method string, d time.Duration)
}

func NewRouter(deps RouterDeps) http.Handler {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization", "Accept", "Origin"},
		MaxAge:       24 * time.Hour,
	}))
	if deps.Observe != nil {
		r.Use(observeRequests(deps.Observe))
	}

	bookingHandler := handlers.NewBookingHandler(deps.Booking)
	r.GET("/api/trips/:trip_id/booking-details", bookingHandler.Details)
	r.POST("/api/trips/:trip_id/book", bookingHandler.Book)

	tripHandler := handlers.NewTripHandler(deps.Trips)
	driver := r.Group("/api", middleware.Auth(deps.JWTSecret))
	driver.POST("/trips", tripHandler.Create)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}

func observeRequests(observe func(route, method string, d time.Duration)) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		observe(route, c.Request.Method, time.Since(start))
	}
}
