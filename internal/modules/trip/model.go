// README: Trip aggregate, route reference data and per-segment price table.
package trip

import (
	"time"

	"letsgo/internal/modules/fare"
	"letsgo/internal/types"
)

type Status string

const (
	StatusScheduled  Status = "SCHEDULED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

// Route is immutable reference data once posted.
type Route struct {
	ID                       types.ID
	Name                     string
	Description              string
	TotalDistanceKm          float64
	EstimatedDurationMinutes int
}

// RouteStop invariant: orders within a route are unique and strictly
// increasing.
type RouteStop struct {
	Order                  int
	Name                   string
	Position               types.Point
	Address                string
	EstimatedTimeFromStart int // minutes
}

// Vehicle is the registry record a trip is operated with.
type Vehicle struct {
	ID          types.ID
	Model       string
	Company     string
	VehicleType fare.VehicleType
	FuelType    fare.FuelType
	Color       string
	Seats       int
	HasPhoto    bool
}

type Trip struct {
	ID                    types.ID
	RouteID               types.ID
	DriverID              types.ID
	VehicleID             types.ID
	TripDate              time.Time
	DepartureTime         string // "HH:MM"
	EstimatedArrivalTime  *string
	Status                Status
	TotalSeats            int
	AvailableSeats        int
	BaseFare              float64
	GenderPreference      *string
	Notes                 *string
	IsNegotiable          bool
	MinimumAcceptableFare *float64
	FareCalculation       *fare.Breakdown
	CreatedAt             time.Time
}

// StopBreakdown prices one segment of a trip's route. Informational for the
// booking view; booking totals are charged from the trip base fare.
type StopBreakdown struct {
	FromStopOrder   int
	ToStopOrder     int
	FromStopName    string
	ToStopName      string
	DistanceKm      float64
	DurationMinutes int
	Price           float64
}
