// README: Booking handlers for the details document and seat reservation.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"letsgo/internal/modules/booking"
	"letsgo/internal/types"
)

type BookingHandler struct {
	booking *booking.Service
}

func NewBookingHandler(svc *booking.Service) *BookingHandler {
	return &BookingHandler{booking: svc}
}

// GET /api/trips/:trip_id/booking-details
func (h *BookingHandler) Details(c *gin.Context) {
	tripID := c.Param("trip_id")
	if tripID == "" {
		writeError(c, http.StatusBadRequest, "missing trip id")
		return
	}

	d, _, err := h.booking.Details(c.Request.Context(), types.ID(tripID))
	if err != nil {
		if errors.Is(err, booking.ErrTripNotFound) {
			writeError(c, http.StatusNotFound, "Trip not found")
			return
		}
		writeBookingError(c, err)
		return
	}

	writeJSON(c, http.StatusOK, gin.H{
		"success":        true,
		"trip":           d.Trip,
		"driver":         d.Driver,
		"vehicle":        d.Vehicle,
		"route":          d.Route,
		"passengers":     d.Passengers,
		"fare_data":      d.FareData,
		"stop_breakdown": d.StopBreakdown,
		"booking_info":   d.BookingInfo,
	})
}

type bookSeatsReq struct {
	PassengerID     string `json:"passenger_id"`
	FromStopOrder   int    `json:"from_stop_order"`
	ToStopOrder     int    `json:"to_stop_order"`
	NumberOfSeats   int    `json:"number_of_seats"`
	SpecialRequests string `json:"special_requests"`
}

// POST /api/trips/:trip_id/book
func (h *BookingHandler) Book(c *gin.Context) {
	tripID := c.Param("trip_id")
	if tripID == "" {
		writeError(c, http.StatusBadRequest, "missing trip id")
		return
	}

	var req bookSeatsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.PassengerID == "" || req.FromStopOrder == 0 || req.ToStopOrder == 0 || req.NumberOfSeats == 0 {
		writeError(c, http.StatusBadRequest, "missing fields")
		return
	}

	b, err := h.booking.Request(c.Request.Context(), booking.RequestCommand{
		TripID:          types.ID(tripID),
		PassengerID:     types.ID(req.PassengerID),
		FromStopOrder:   req.FromStopOrder,
		ToStopOrder:     req.ToStopOrder,
		Seats:           req.NumberOfSeats,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	writeJSON(c, http.StatusOK, gin.H{
		"success":    true,
		"booking_id": b.ID,
		"status":     b.Status,
		"total_fare": b.TotalFare,
	})
}
