// README: Trip posting handler for the driver surface.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"letsgo/internal/modules/trip"
	"letsgo/internal/types"
)

type TripHandler struct {
	trips *trip.Service
}

func NewTripHandler(svc *trip.Service) *TripHandler {
	return &TripHandler{trips: svc}
}

type postTripReq struct {
	DriverID              string  `json:"driver_id"`
	RouteID               string  `json:"route_id"`
	VehicleID             string  `json:"vehicle_id"`
	TripDate              string  `json:"trip_date"` // "2006-01-02"
	DepartureTime         string  `json:"departure_time"`
	TotalSeats            int     `json:"total_seats"`
	BaseFare              float64 `json:"base_fare"`
	GenderPreference      string  `json:"gender_preference"`
	Notes                 string  `json:"notes"`
	IsNegotiable          bool    `json:"is_negotiable"`
	MinimumAcceptableFare float64 `json:"minimum_acceptable_fare"`
}

// POST /api/trips
func (h *TripHandler) Create(c *gin.Context) {
	var req postTripReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.DriverID == "" || req.RouteID == "" || req.VehicleID == "" ||
		req.TripDate == "" || req.DepartureTime == "" || req.TotalSeats < 1 {
		writeError(c, http.StatusBadRequest, "missing fields")
		return
	}
	tripDate, err := time.Parse("2006-01-02", req.TripDate)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid trip date")
		return
	}

	res, err := h.trips.Create(c.Request.Context(), trip.CreateCommand{
		DriverID:              types.ID(req.DriverID),
		RouteID:               types.ID(req.RouteID),
		VehicleID:             types.ID(req.VehicleID),
		TripDate:              tripDate,
		DepartureTime:         req.DepartureTime,
		TotalSeats:            req.TotalSeats,
		CustomBaseFare:        req.BaseFare,
		GenderPreference:      req.GenderPreference,
		Notes:                 req.Notes,
		IsNegotiable:          req.IsNegotiable,
		MinimumAcceptableFare: req.MinimumAcceptableFare,
	})
	if err != nil {
		writeTripError(c, err)
		return
	}

	writeJSON(c, http.StatusCreated, gin.H{
		"success":          true,
		"trip_id":          res.Trip.ID,
		"base_fare":        res.Trip.BaseFare,
		"fare_calculation": res.Breakdown,
		"stop_breakdown":   res.Breakdowns,
	})
}
