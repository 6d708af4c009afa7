// README: Booking record and status definitions.
package booking

import (
	"time"

	"letsgo/internal/types"
)

type Status string

const (
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusPending   Status = "PENDING"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
)

// Booking links a passenger to a trip over a stop range. The sum of seats
// across CONFIRMED bookings for a trip never exceeds the trip's total seats,
// and a passenger holds at most one CONFIRMED booking per trip.
type Booking struct {
	ID              int64
	TripID          types.ID
	PassengerID     types.ID
	FromStopOrder   int
	ToStopOrder     int
	Seats           int
	TotalFare       float64
	Status          Status
	PaymentStatus   PaymentStatus
	SpecialRequests string
	CreatedAt       time.Time
}

// ConfirmedPassenger is a roster row for the booking-details view: only the
// fields safe to show other riders.
type ConfirmedPassenger struct {
	Name            string
	Gender          string
	PassengerRating float64
	SeatsBooked     int
}
