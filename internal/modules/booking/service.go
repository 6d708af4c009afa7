// README: Booking coordinator; validates requests and reserves seats atomically.
package booking

import (
	"context"
	"errors"
	"log"
	"time"

	"letsgo/internal/modules/trip"
	"letsgo/internal/modules/user"
	"letsgo/internal/types"
)

var (
	ErrBadRequest        = errors.New("bad request")
	ErrTripNotFound      = errors.New("trip not found")
	ErrTripNotBookable   = errors.New("trip is not available for booking")
	ErrInsufficientSeats = errors.New("not enough seats available")
	ErrPassengerNotFound = errors.New("passenger not found")
	ErrDuplicateBooking  = errors.New("passenger already has a booking for this trip")
	ErrInvalidStopRange  = errors.New("invalid stop range for this route")
	ErrBookingNotFound   = errors.New("booking not found")
)

// ConfirmedEvent is published after a booking commits.
type ConfirmedEvent struct {
	BookingID   int64     `json:"booking_id"`
	TripID      string    `json:"trip_id"`
	PassengerID string    `json:"passenger_id"`
	Seats       int       `json:"seats"`
	TotalFare   float64   `json:"total_fare"`
	BookedAt    time.Time `json:"booked_at"`
}

// EventPublisher fans booking confirmations out to downstream consumers
// (notifications, analytics). Publishing is fire-and-forget.
type EventPublisher interface {
	BookingConfirmed(ctx context.Context, ev ConfirmedEvent) error
}

// Metrics is the slice of the metrics collector the coordinator uses.
type Metrics interface {
	BookingConfirmedInc()
	BookingRejectedInc(reason string)
}

type Service struct {
	store     *Store
	trips     *trip.Store
	users     *user.Store
	fareCache *trip.FareCache
	publisher EventPublisher
	metrics   Metrics

	// maxSeatsPerBooking caps a single booking on the read path's
	// booking_info; the write path only enforces availability.
	maxSeatsPerBooking int
}

func NewService(store *Store, trips *trip.Store, users *user.Store, fareCache *trip.FareCache, publisher EventPublisher, metrics Metrics, maxSeatsPerBooking int) *Service {
	if maxSeatsPerBooking <= 0 {
		maxSeatsPerBooking = 4
	}
	return &Service{
		store:              store,
		trips:              trips,
		users:              users,
		fareCache:          fareCache,
		publisher:          publisher,
		metrics:            metrics,
		maxSeatsPerBooking: maxSeatsPerBooking,
	}
}

type RequestCommand struct {
	TripID          types.ID
	PassengerID     types.ID
	FromStopOrder   int
	ToStopOrder     int
	Seats           int
	SpecialRequests string
}

// Request validates and commits a seat reservation. The entire
// check-then-decrement sequence is atomic; on any failure nothing persists.
func (s *Service) Request(ctx context.Context, cmd RequestCommand) (*Booking, error) {
	if cmd.TripID == "" || cmd.PassengerID == "" {
		return nil, ErrBadRequest
	}

	b, err := s.store.Reserve(ctx, reserveParams{
		TripID:          cmd.TripID,
		PassengerID:     cmd.PassengerID,
		FromStopOrder:   cmd.FromStopOrder,
		ToStopOrder:     cmd.ToStopOrder,
		Seats:           cmd.Seats,
		SpecialRequests: cmd.SpecialRequests,
	})
	if err != nil {
		if s.metrics != nil {
			s.metrics.BookingRejectedInc(rejectionReason(err))
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.BookingConfirmedInc()
	}
	if s.publisher != nil {
		ev := ConfirmedEvent{
			BookingID:   b.ID,
			TripID:      string(b.TripID),
			PassengerID: string(b.PassengerID),
			Seats:       b.Seats,
			TotalFare:   b.TotalFare,
			BookedAt:    b.CreatedAt,
		}
		if err := s.publisher.BookingConfirmed(ctx, ev); err != nil {
			log.Printf("booking event publish failed booking_id=%d: %v", b.ID, err)
		}
	}
	return b, nil
}

// Details assembles the booking-details view. Optional sections degrade to
// documented defaults; only a missing trip fails the call.
func (s *Service) Details(ctx context.Context, tripID types.ID) (*Details, []string, error) {
	t, err := s.trips.Get(ctx, tripID)
	if err != nil {
		if errors.Is(err, trip.ErrNotFound) {
			return nil, nil, ErrTripNotFound
		}
		return nil, nil, err
	}

	in := assemblyInput{Trip: t, MaxSeatsCap: s.maxSeatsPerBooking}

	if driver, err := s.users.GetByID(ctx, t.DriverID); err == nil {
		in.Driver = driver
	} else {
		log.Printf("booking details trip=%s: driver fetch: %v", tripID, err)
	}
	if vehicle, err := s.trips.GetVehicle(ctx, t.VehicleID); err == nil {
		in.Vehicle = vehicle
	} else {
		log.Printf("booking details trip=%s: vehicle fetch: %v", tripID, err)
	}
	if route, err := s.trips.GetRoute(ctx, t.RouteID); err == nil {
		in.Route = route
	} else {
		log.Printf("booking details trip=%s: route fetch: %v", tripID, err)
	}
	if stops, err := s.trips.GetRouteStops(ctx, t.RouteID); err == nil {
		in.Stops = stops
	} else {
		log.Printf("booking details trip=%s: stops fetch: %v", tripID, err)
	}
	if passengers, err := s.store.ListConfirmedByTrip(ctx, tripID); err == nil {
		in.Passengers = passengers
	} else {
		log.Printf("booking details trip=%s: roster fetch: %v", tripID, err)
	}
	if breakdowns, err := s.trips.GetStopBreakdowns(ctx, tripID); err == nil {
		in.StopBreakdown = breakdowns
	} else {
		log.Printf("booking details trip=%s: stop breakdowns fetch: %v", tripID, err)
	}

	// Cached breakdown first; the trip row's JSON column is the fallback.
	if fb, ok := s.fareCache.Get(ctx, tripID); ok {
		in.Fare = fb
	} else if t.FareCalculation != nil {
		in.Fare = t.FareCalculation
		s.fareCache.Set(ctx, tripID, t.FareCalculation)
	}

	d, degraded := assembleDetails(in)
	if len(degraded) > 0 {
		log.Printf("booking details trip=%s degraded fields: %v", tripID, degraded)
	}
	return &d, degraded, nil
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrTripNotFound):
		return "trip_not_found"
	case errors.Is(err, ErrTripNotBookable):
		return "not_bookable"
	case errors.Is(err, ErrInsufficientSeats):
		return "insufficient_seats"
	case errors.Is(err, ErrPassengerNotFound):
		return "passenger_not_found"
	case errors.Is(err, ErrDuplicateBooking):
		return "duplicate"
	case errors.Is(err, ErrInvalidStopRange):
		return "invalid_stop_range"
	default:
		return "error"
	}
}
