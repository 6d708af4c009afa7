// README: Booking store; the reservation transaction lives here.
package booking

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"letsgo/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

type reserveParams struct {
	TripID          types.ID
	PassengerID     types.ID
	FromStopOrder   int
	ToStopOrder     int
	Seats           int
	SpecialRequests string
}

// Reserve runs the whole check-then-decrement sequence as one transaction.
// The trip row is locked up front, so two concurrent requests for the same
// trip serialize: the second one revalidates against the committed seat
// count and fails cleanly instead of overbooking. The precondition checks
// run in a fixed order so each failure mode is distinct.
func (s *Store) Reserve(ctx context.Context, p reserveParams) (*Booking, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// 1-3. Trip exists, is bookable, and has the seats. FOR UPDATE holds the
	// row until commit.
	var (
		routeID        string
		status         string
		availableSeats int
		baseFare       float64
	)
	err = tx.QueryRow(ctx, `
        SELECT route_id, trip_status, available_seats, base_fare
        FROM trips
        WHERE trip_id = $1
        FOR UPDATE`, string(p.TripID),
	).Scan(&routeID, &status, &availableSeats, &baseFare)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTripNotFound
	}
	if err != nil {
		return nil, err
	}
	if status != "SCHEDULED" {
		return nil, ErrTripNotBookable
	}
	if p.Seats < 1 || p.Seats > availableSeats {
		return nil, ErrInsufficientSeats
	}

	// 4. Passenger exists.
	var passengerExists bool
	if err := tx.QueryRow(ctx, `
        SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, string(p.PassengerID),
	).Scan(&passengerExists); err != nil {
		return nil, err
	}
	if !passengerExists {
		return nil, ErrPassengerNotFound
	}

	// 5. No existing confirmed booking for this passenger on this trip.
	var duplicate bool
	if err := tx.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT 1 FROM bookings
            WHERE trip_id = $1 AND passenger_id = $2 AND booking_status = 'CONFIRMED'
        )`, string(p.TripID), string(p.PassengerID),
	).Scan(&duplicate); err != nil {
		return nil, err
	}
	if duplicate {
		return nil, ErrDuplicateBooking
	}

	// 6. Both stops exist on the trip's route and are ordered.
	if p.FromStopOrder >= p.ToStopOrder {
		return nil, ErrInvalidStopRange
	}
	var stopCount int
	if err := tx.QueryRow(ctx, `
        SELECT COUNT(*) FROM route_stops
        WHERE route_id = $1 AND stop_order IN ($2, $3)`,
		routeID, p.FromStopOrder, p.ToStopOrder,
	).Scan(&stopCount); err != nil {
		return nil, err
	}
	if stopCount != 2 {
		return nil, ErrInvalidStopRange
	}

	b := &Booking{
		TripID:        p.TripID,
		PassengerID:   p.PassengerID,
		FromStopOrder: p.FromStopOrder,
		ToStopOrder:   p.ToStopOrder,
		Seats:         p.Seats,
		// Charged from the trip base fare, not the booked segment's share of
		// the stop breakdown.
		// TODO: reconcile with trip_stop_breakdowns segment prices.
		TotalFare:       baseFare * float64(p.Seats),
		Status:          StatusConfirmed,
		PaymentStatus:   PaymentPending,
		SpecialRequests: p.SpecialRequests,
		CreatedAt:       time.Now(),
	}
	err = tx.QueryRow(ctx, `
        INSERT INTO bookings (
            trip_id, passenger_id, from_stop_order, to_stop_order,
            number_of_seats, total_fare, booking_status, payment_status,
            special_requests, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id`,
		string(b.TripID), string(b.PassengerID), b.FromStopOrder, b.ToStopOrder,
		b.Seats, b.TotalFare, string(b.Status), string(b.PaymentStatus),
		b.SpecialRequests, b.CreatedAt,
	).Scan(&b.ID)
	if err != nil {
		return nil, err
	}

	// Conditional decrement guards the counter a second time.
	tag, err := tx.Exec(ctx, `
        UPDATE trips
        SET available_seats = available_seats - $1
        WHERE trip_id = $2 AND available_seats >= $1`,
		p.Seats, string(p.TripID),
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() != 1 {
		return nil, ErrInsufficientSeats
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return b, nil
}

// ListConfirmedByTrip returns the roster shown on the booking-details view.
func (s *Store) ListConfirmedByTrip(ctx context.Context, tripID types.ID) ([]ConfirmedPassenger, error) {
	rows, err := s.db.Query(ctx, `
        SELECT COALESCE(u.name, ''), COALESCE(u.gender, ''),
               COALESCE(u.passenger_rating, 0), b.number_of_seats
        FROM bookings b
        JOIN users u ON u.id = b.passenger_id
        WHERE b.trip_id = $1 AND b.booking_status = 'CONFIRMED'
        ORDER BY b.created_at`, string(tripID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ConfirmedPassenger
	for rows.Next() {
		var cp ConfirmedPassenger
		if err := rows.Scan(&cp.Name, &cp.Gender, &cp.PassengerRating, &cp.SeatsBooked); err != nil {
			return nil, err
		}
		out = append(out, cp)
	}
	return out, rows.Err()
}

// Get fetches a single booking by id.
func (s *Store) Get(ctx context.Context, id int64) (*Booking, error) {
	row := s.db.QueryRow(ctx, `
        SELECT id, trip_id, passenger_id, from_stop_order, to_stop_order,
               number_of_seats, total_fare, booking_status, payment_status,
               COALESCE(special_requests, ''), created_at
        FROM bookings
        WHERE id = $1`, id,
	)

	var b Booking
	err := row.Scan(
		&b.ID, &b.TripID, &b.PassengerID, &b.FromStopOrder, &b.ToStopOrder,
		&b.Seats, &b.TotalFare, &b.Status, &b.PaymentStatus,
		&b.SpecialRequests, &b.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}
