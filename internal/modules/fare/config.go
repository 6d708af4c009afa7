// README: Pricing table passed into the calculator, never read from ambient state.
package fare

// Window is a time-of-day interval in minutes from midnight, start inclusive,
// end exclusive.
type Window struct {
	Start int
	End   int
}

func (w Window) contains(minuteOfDay int) bool {
	return minuteOfDay >= w.Start && minuteOfDay < w.End
}

// SeatTier applies Factor to bookings of MinSeats seats or more. Tiers must be
// sorted by ascending MinSeats; the last matching tier wins.
type SeatTier struct {
	MinSeats int
	Factor   float64
}

type Config struct {
	FuelPricePerKm    map[FuelType]float64
	VehicleMultiplier map[VehicleType]float64
	PeakWindows       []Window
	PeakMultiplier    float64
	ShortTripKm       float64
	ShortTripFactor   float64
	LongTripKm        float64
	LongTripFactor    float64
	SeatTiers         []SeatTier
	Currency          string
}

// DefaultConfig returns the production Pakistan pricing table: petrol/diesel
// per-km cost as the baseline, CNG cheapest, electric close behind; rush-hour
// windows at 30% surcharge; short-trip premium and long-trip discount; bulk
// seat discounts up to 18% at six seats.
func DefaultConfig() Config {
	return Config{
		FuelPricePerKm: map[FuelType]float64{
			FuelPetrol:   22.0,
			FuelDiesel:   20.0,
			FuelCNG:      10.0,
			FuelElectric: 12.0,
		},
		VehicleMultiplier: map[VehicleType]float64{
			TwoWheeler:  0.70,
			FourWheeler: 1.00,
		},
		PeakWindows: []Window{
			{Start: 7 * 60, End: 9 * 60},   // morning rush 07:00-09:00
			{Start: 17 * 60, End: 20 * 60}, // evening rush 17:00-20:00
		},
		PeakMultiplier:  1.30,
		ShortTripKm:     10.0,
		ShortTripFactor: 1.20,
		LongTripKm:      100.0,
		LongTripFactor:  0.90,
		SeatTiers: []SeatTier{
			{MinSeats: 1, Factor: 1.00},
			{MinSeats: 4, Factor: 0.90},
			{MinSeats: 6, Factor: 0.82},
		},
		Currency: "PKR",
	}
}
