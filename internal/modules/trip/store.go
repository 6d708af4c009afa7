// README: Trip store backed by PostgreSQL.
package trip

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"letsgo/internal/modules/fare"
	"letsgo/internal/types"
)

var (
	ErrNotFound        = errors.New("trip not found")
	ErrRouteNotFound   = errors.New("route not found")
	ErrVehicleNotFound = errors.New("vehicle not found")
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Trip, error) {
	row := s.db.QueryRow(ctx, `
        SELECT trip_id, route_id, driver_id, vehicle_id,
               trip_date, departure_time, estimated_arrival_time,
               trip_status, total_seats, available_seats, base_fare,
               gender_preference, notes, is_negotiable, minimum_acceptable_fare,
               fare_calculation, created_at
        FROM trips
        WHERE trip_id = $1`, string(id),
	)
	return scanTrip(row)
}

func (s *Store) Create(ctx context.Context, t *Trip, breakdowns []StopBreakdown) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var fareJSON []byte
	if t.FareCalculation != nil {
		fareJSON, err = json.Marshal(t.FareCalculation)
		if err != nil {
			return fmt.Errorf("marshal fare calculation: %w", err)
		}
	}

	_, err = tx.Exec(ctx, `
        INSERT INTO trips (
            trip_id, route_id, driver_id, vehicle_id,
            trip_date, departure_time, estimated_arrival_time,
            trip_status, total_seats, available_seats, base_fare,
            gender_preference, notes, is_negotiable, minimum_acceptable_fare,
            fare_calculation, created_at
        ) VALUES (
            $1, $2, $3, $4,
            $5, $6, $7,
            $8, $9, $10, $11,
            $12, $13, $14, $15,
            $16, $17
        )`,
		string(t.ID), string(t.RouteID), string(t.DriverID), string(t.VehicleID),
		t.TripDate, t.DepartureTime, t.EstimatedArrivalTime,
		string(t.Status), t.TotalSeats, t.AvailableSeats, t.BaseFare,
		t.GenderPreference, t.Notes, t.IsNegotiable, t.MinimumAcceptableFare,
		fareJSON, t.CreatedAt,
	)
	if err != nil {
		return err
	}

	for _, b := range breakdowns {
		_, err = tx.Exec(ctx, `
            INSERT INTO trip_stop_breakdowns (
                trip_id, from_stop_order, to_stop_order,
                from_stop_name, to_stop_name,
                distance_km, duration_minutes, price
            ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			string(t.ID), b.FromStopOrder, b.ToStopOrder,
			b.FromStopName, b.ToStopName,
			b.DistanceKm, b.DurationMinutes, b.Price,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (s *Store) GetRoute(ctx context.Context, id types.ID) (*Route, error) {
	row := s.db.QueryRow(ctx, `
        SELECT route_id, COALESCE(route_name, ''), COALESCE(route_description, ''),
               COALESCE(total_distance_km, 0), COALESCE(estimated_duration_minutes, 0)
        FROM routes
        WHERE route_id = $1`, string(id),
	)

	var r Route
	err := row.Scan(&r.ID, &r.Name, &r.Description, &r.TotalDistanceKm, &r.EstimatedDurationMinutes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRouteNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Store) GetRouteStops(ctx context.Context, routeID types.ID) ([]RouteStop, error) {
	rows, err := s.db.Query(ctx, `
        SELECT stop_order, COALESCE(stop_name, ''), latitude, longitude,
               COALESCE(address, ''), COALESCE(estimated_time_from_start, 0)
        FROM route_stops
        WHERE route_id = $1
        ORDER BY stop_order`, string(routeID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stops []RouteStop
	for rows.Next() {
		var st RouteStop
		if err := rows.Scan(&st.Order, &st.Name, &st.Position.Lat, &st.Position.Lng, &st.Address, &st.EstimatedTimeFromStart); err != nil {
			return nil, err
		}
		stops = append(stops, st)
	}
	return stops, rows.Err()
}

func (s *Store) GetVehicle(ctx context.Context, id types.ID) (*Vehicle, error) {
	row := s.db.QueryRow(ctx, `
        SELECT id, COALESCE(model_number, ''), COALESCE(company_name, ''),
               vehicle_type, fuel_type, COALESCE(color, ''), seats,
               photo_front IS NOT NULL
        FROM vehicles
        WHERE id = $1`, string(id),
	)

	var v Vehicle
	err := row.Scan(&v.ID, &v.Model, &v.Company, &v.VehicleType, &v.FuelType, &v.Color, &v.Seats, &v.HasPhoto)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrVehicleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *Store) GetStopBreakdowns(ctx context.Context, tripID types.ID) ([]StopBreakdown, error) {
	rows, err := s.db.Query(ctx, `
        SELECT from_stop_order, to_stop_order,
               COALESCE(from_stop_name, ''), COALESCE(to_stop_name, ''),
               COALESCE(distance_km, 0), COALESCE(duration_minutes, 0), COALESCE(price, 0)
        FROM trip_stop_breakdowns
        WHERE trip_id = $1
        ORDER BY from_stop_order`, string(tripID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StopBreakdown
	for rows.Next() {
		var b StopBreakdown
		if err := rows.Scan(&b.FromStopOrder, &b.ToStopOrder, &b.FromStopName, &b.ToStopName, &b.DistanceKm, &b.DurationMinutes, &b.Price); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func scanTrip(row pgx.Row) (*Trip, error) {
	var t Trip
	var fareJSON []byte

	err := row.Scan(
		&t.ID, &t.RouteID, &t.DriverID, &t.VehicleID,
		&t.TripDate, &t.DepartureTime, &t.EstimatedArrivalTime,
		&t.Status, &t.TotalSeats, &t.AvailableSeats, &t.BaseFare,
		&t.GenderPreference, &t.Notes, &t.IsNegotiable, &t.MinimumAcceptableFare,
		&fareJSON, &t.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if len(fareJSON) > 0 {
		var fb fare.Breakdown
		// A malformed stored breakdown degrades to "no breakdown" instead of
		// failing the whole trip read.
		if err := json.Unmarshal(fareJSON, &fb); err == nil {
			t.FareCalculation = &fb
		}
	}
	return &t, nil
}
