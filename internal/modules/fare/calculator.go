// README: Pure fare computation; no I/O, safe for concurrent use.
package fare

import (
	"errors"
	"math"
	"time"
)

var (
	ErrInvalidRoute          = errors.New("route distance must be positive")
	ErrInvalidSeatCount      = errors.New("seat count out of range for vehicle")
	ErrUnknownVehicleProfile = errors.New("unknown vehicle or fuel type")
)

type Calculator struct {
	cfg Config
}

func NewCalculator(cfg Config) *Calculator {
	return &Calculator{cfg: cfg}
}

// Compute derives the fare for a route/vehicle/departure/seat combination.
// The result depends only on the inputs and the calculator's config:
//
//	fare = distance*fuelRate * vehicle * time * distanceFactor * seatFactor
//
// rounded half-up to 2 decimal places. Only the departure's time of day is
// read; the date part is ignored.
func (c *Calculator) Compute(route Route, vehicle Vehicle, departure time.Time, seatCount int) (Breakdown, error) {
	if route.TotalDistanceKm <= 0 {
		return Breakdown{}, ErrInvalidRoute
	}
	if seatCount <= 0 || (vehicle.Seats > 0 && seatCount > vehicle.Seats) {
		return Breakdown{}, ErrInvalidSeatCount
	}
	perKm, ok := c.cfg.FuelPricePerKm[vehicle.FuelType]
	if !ok {
		return Breakdown{}, ErrUnknownVehicleProfile
	}
	vehicleMult, ok := c.cfg.VehicleMultiplier[vehicle.Type]
	if !ok {
		return Breakdown{}, ErrUnknownVehicleProfile
	}

	fuelCost := route.TotalDistanceKm * perKm

	timeMult := 1.00
	peak := c.isPeakHour(departure)
	if peak {
		timeMult = c.cfg.PeakMultiplier
	}

	distFactor := 1.00
	switch {
	case route.TotalDistanceKm < c.cfg.ShortTripKm:
		distFactor = c.cfg.ShortTripFactor
	case route.TotalDistanceKm > c.cfg.LongTripKm:
		distFactor = c.cfg.LongTripFactor
	}

	seatFactor := c.seatFactor(seatCount)

	total := roundCurrency(fuelCost * vehicleMult * timeMult * distFactor * seatFactor)
	fuelCost = roundCurrency(fuelCost)
	margin := roundCurrency(total - fuelCost)

	profitPct := 0.0
	if fuelCost > 0 {
		profitPct = roundCurrency(margin / fuelCost * 100)
	}

	return Breakdown{
		BaseFare:          total,
		TotalDistanceKm:   route.TotalDistanceKm,
		PricePerKm:        perKm,
		FuelType:          string(vehicle.FuelType),
		VehicleType:       string(vehicle.Type),
		VehicleMultiplier: vehicleMult,
		TimeMultiplier:    timeMult,
		IsPeakHour:        peak,
		DistanceFactor:    distFactor,
		SeatFactor:        seatFactor,
		SeatCount:         seatCount,
		BulkDiscount:      roundCurrency((1 - seatFactor) * 100),
		FuelCost:          fuelCost,
		ProfitMargin:      margin,
		ProfitPercentage:  profitPct,
		Currency:          c.cfg.Currency,
	}, nil
}

func (c *Calculator) isPeakHour(t time.Time) bool {
	minute := t.Hour()*60 + t.Minute()
	for _, w := range c.cfg.PeakWindows {
		if w.contains(minute) {
			return true
		}
	}
	return false
}

func (c *Calculator) seatFactor(seats int) float64 {
	factor := 1.00
	for _, tier := range c.cfg.SeatTiers {
		if seats >= tier.MinSeats {
			factor = tier.Factor
		}
	}
	return factor
}

// roundCurrency rounds half-up to 2 decimal places.
func roundCurrency(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
