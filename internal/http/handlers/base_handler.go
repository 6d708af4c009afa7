// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"letsgo/internal/modules/booking"
	"letsgo/internal/modules/trip"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Success: false, Error: msg})
}

// Mobile clients branch on the error string, not the status code, so
// business rejections are 400s with a stable message rather than 409s.
func writeBookingError(c *gin.Context, err error) {
	switch err {
	case booking.ErrBadRequest:
		writeError(c, http.StatusBadRequest, err.Error())
	case booking.ErrTripNotFound, booking.ErrPassengerNotFound, booking.ErrBookingNotFound:
		writeError(c, http.StatusNotFound, err.Error())
	case booking.ErrTripNotBookable, booking.ErrInsufficientSeats,
		booking.ErrDuplicateBooking, booking.ErrInvalidStopRange:
		writeError(c, http.StatusBadRequest, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writeTripError(c *gin.Context, err error) {
	switch err {
	case trip.ErrBadRequest:
		writeError(c, http.StatusBadRequest, err.Error())
	case trip.ErrNotFound, trip.ErrRouteNotFound, trip.ErrVehicleNotFound:
		writeError(c, http.StatusNotFound, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
