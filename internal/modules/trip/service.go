// README: Trip service; drivers post trips with a precomputed fare and segment prices.
package trip

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"letsgo/internal/modules/fare"
	"letsgo/internal/types"
)

var (
	ErrBadRequest = errors.New("bad request")
)

// Metrics is the slice of the metrics collector the trip service uses.
type Metrics interface {
	FareComputedInc()
	TripPostedInc()
}

type Service struct {
	store      *Store
	calculator *fare.Calculator
	cache      *FareCache
	metrics    Metrics
}

func NewService(store *Store, calculator *fare.Calculator, cache *FareCache, metrics Metrics) *Service {
	return &Service{store: store, calculator: calculator, cache: cache, metrics: metrics}
}

type CreateCommand struct {
	DriverID      types.ID
	RouteID       types.ID
	VehicleID     types.ID
	TripDate      time.Time
	DepartureTime string // "HH:MM"
	TotalSeats    int
	// CustomBaseFare overrides the computed fare when the driver negotiates
	// their own price. Zero means "use the calculator".
	CustomBaseFare        float64
	GenderPreference      string
	Notes                 string
	IsNegotiable          bool
	MinimumAcceptableFare float64
}

type CreateResult struct {
	Trip       *Trip
	Breakdown  *fare.Breakdown
	Breakdowns []StopBreakdown
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*CreateResult, error) {
	if cmd.DriverID == "" || cmd.RouteID == "" || cmd.VehicleID == "" || cmd.TotalSeats < 1 {
		return nil, ErrBadRequest
	}
	departure, err := time.Parse("15:04", cmd.DepartureTime)
	if err != nil {
		return nil, ErrBadRequest
	}

	route, err := s.store.GetRoute(ctx, cmd.RouteID)
	if err != nil {
		return nil, err
	}
	stops, err := s.store.GetRouteStops(ctx, cmd.RouteID)
	if err != nil {
		return nil, err
	}
	vehicle, err := s.store.GetVehicle(ctx, cmd.VehicleID)
	if err != nil {
		return nil, err
	}
	if cmd.TotalSeats > vehicle.Seats {
		return nil, ErrBadRequest
	}

	breakdown, err := s.calculator.Compute(
		fare.Route{TotalDistanceKm: route.TotalDistanceKm},
		fare.Vehicle{Type: vehicle.VehicleType, FuelType: vehicle.FuelType, Seats: vehicle.Seats},
		departure,
		1, // base fare is the per-seat price
	)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.FareComputedInc()
	}

	baseFare := breakdown.BaseFare
	if cmd.CustomBaseFare > 0 {
		baseFare = cmd.CustomBaseFare
		// Keep the stored breakdown honest about what is actually charged.
		breakdown.BaseFare = baseFare
	}

	t := &Trip{
		ID:             newID(),
		RouteID:        route.ID,
		DriverID:       cmd.DriverID,
		VehicleID:      vehicle.ID,
		TripDate:       cmd.TripDate,
		DepartureTime:  cmd.DepartureTime,
		Status:         StatusScheduled,
		TotalSeats:     cmd.TotalSeats,
		AvailableSeats: cmd.TotalSeats,
		BaseFare:       baseFare,
		IsNegotiable:   cmd.IsNegotiable,
		FareCalculation: &breakdown,
		CreatedAt:      time.Now(),
	}
	if cmd.GenderPreference != "" {
		t.GenderPreference = &cmd.GenderPreference
	}
	if cmd.Notes != "" {
		t.Notes = &cmd.Notes
	}
	if cmd.MinimumAcceptableFare > 0 {
		t.MinimumAcceptableFare = &cmd.MinimumAcceptableFare
	}
	if route.EstimatedDurationMinutes > 0 {
		arrival := departure.Add(time.Duration(route.EstimatedDurationMinutes) * time.Minute).Format("15:04")
		t.EstimatedArrivalTime = &arrival
	}

	breakdowns := SegmentPrices(route, stops, baseFare)

	if err := s.store.Create(ctx, t, breakdowns); err != nil {
		return nil, err
	}
	s.cache.Set(ctx, t.ID, t.FareCalculation)
	if s.metrics != nil {
		s.metrics.TripPostedInc()
	}

	return &CreateResult{Trip: t, Breakdown: t.FareCalculation, Breakdowns: breakdowns}, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Trip, error) {
	return s.store.Get(ctx, id)
}

// SegmentPrices derives the per-segment price table for consecutive stop
// pairs. Segment distance is spread evenly across the route when stop
// spacing is unknown, and each price is the distance-proportional share of
// the per-seat base fare.
func SegmentPrices(route *Route, stops []RouteStop, baseFare float64) []StopBreakdown {
	if len(stops) < 2 || route.TotalDistanceKm <= 0 {
		return nil
	}

	segments := len(stops) - 1
	out := make([]StopBreakdown, 0, segments)
	for i := 0; i < segments; i++ {
		from, to := stops[i], stops[i+1]
		distance := route.TotalDistanceKm / float64(segments)
		duration := to.EstimatedTimeFromStart - from.EstimatedTimeFromStart
		if duration < 0 {
			duration = 0
		}
		out = append(out, StopBreakdown{
			FromStopOrder:   from.Order,
			ToStopOrder:     to.Order,
			FromStopName:    from.Name,
			ToStopName:      to.Name,
			DistanceKm:      round2(distance),
			DurationMinutes: duration,
			Price:           round2(baseFare * distance / route.TotalDistanceKm),
		})
	}
	return out
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

func newID() types.ID {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return types.ID(hex.EncodeToString(b[:]))
}
