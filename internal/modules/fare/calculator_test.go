package fare

import (
	"math"
	"testing"
	"time"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC)
}

func petrolCar(seats int) Vehicle {
	return Vehicle{Type: FourWheeler, FuelType: FuelPetrol, Seats: seats}
}

func TestCompute_Table(t *testing.T) {
	c := NewCalculator(DefaultConfig())

	tests := []struct {
		name    string
		route   Route
		vehicle Vehicle
		at      time.Time
		seats   int
		want    float64
	}{
		{
			name:    "mid-range off-peak single seat",
			route:   Route{TotalDistanceKm: 50},
			vehicle: petrolCar(4),
			at:      at(14, 0),
			seats:   1,
			// 50*22 = 1100. All factors 1.00.
			want: 1100.00,
		},
		{
			name:    "morning rush single seat",
			route:   Route{TotalDistanceKm: 50},
			vehicle: petrolCar(4),
			at:      at(8, 0),
			seats:   1,
			// 1100 * 1.30 = 1430.
			want: 1430.00,
		},
		{
			name:    "short trip premium",
			route:   Route{TotalDistanceKm: 5},
			vehicle: petrolCar(4),
			at:      at(14, 0),
			seats:   1,
			// 5*22 = 110. * 1.20 short-trip = 132.
			want: 132.00,
		},
		{
			name:    "long trip discount during peak",
			route:   Route{TotalDistanceKm: 300},
			vehicle: petrolCar(4),
			at:      at(8, 0),
			seats:   1,
			// 300*22 = 6600. * 1.00 vehicle * 1.30 peak * 0.90 long = 7722.
			want: 7722.00,
		},
		{
			name:    "two-wheeler 30% cheaper",
			route:   Route{TotalDistanceKm: 50},
			vehicle: Vehicle{Type: TwoWheeler, FuelType: FuelPetrol, Seats: 2},
			at:      at(14, 0),
			seats:   1,
			// 1100 * 0.70 = 770.
			want: 770.00,
		},
		{
			name:    "cng cheapest fuel",
			route:   Route{TotalDistanceKm: 50},
			vehicle: Vehicle{Type: FourWheeler, FuelType: FuelCNG, Seats: 4},
			at:      at(14, 0),
			seats:   1,
			// 50*10 = 500.
			want: 500.00,
		},
		{
			name:    "family booking 4 seats",
			route:   Route{TotalDistanceKm: 50},
			vehicle: petrolCar(6),
			at:      at(10, 0),
			seats:   4,
			// 1100 * 0.90 seat tier = 990.
			want: 990.00,
		},
		{
			name:    "bulk booking 6 seats",
			route:   Route{TotalDistanceKm: 50},
			vehicle: petrolCar(7),
			at:      at(10, 0),
			seats:   6,
			// 1100 * 0.82 seat tier = 902.
			want: 902.00,
		},
		{
			name:    "late night is off-peak",
			route:   Route{TotalDistanceKm: 50},
			vehicle: petrolCar(4),
			at:      at(23, 0),
			seats:   2,
			want:    1100.00,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Compute(tt.route, tt.vehicle, tt.at, tt.seats)
			if err != nil {
				t.Fatalf("Compute() error = %v", err)
			}
			if got.BaseFare != tt.want {
				t.Errorf("Compute() fare = %v, want %v", got.BaseFare, tt.want)
			}
		})
	}
}

func TestCompute_BreakdownFields(t *testing.T) {
	c := NewCalculator(DefaultConfig())

	got, err := c.Compute(Route{TotalDistanceKm: 300}, petrolCar(4), at(8, 0), 1)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if !got.IsPeakHour {
		t.Error("expected peak hour flag at 08:00")
	}
	if got.TimeMultiplier != 1.30 {
		t.Errorf("time multiplier = %v, want 1.30", got.TimeMultiplier)
	}
	if got.VehicleMultiplier != 1.00 {
		t.Errorf("vehicle multiplier = %v, want 1.00", got.VehicleMultiplier)
	}
	if got.DistanceFactor != 0.90 {
		t.Errorf("distance factor = %v, want 0.90 long-trip discount", got.DistanceFactor)
	}
	if got.SeatFactor != 1.00 {
		t.Errorf("seat factor = %v, want 1.00", got.SeatFactor)
	}
	// 300 km * 22 PKR/km
	if got.FuelCost != 6600.00 {
		t.Errorf("fuel cost = %v, want 6600.00", got.FuelCost)
	}
	if got.ProfitMargin != got.BaseFare-got.FuelCost {
		t.Errorf("profit margin = %v, want fare minus fuel cost", got.ProfitMargin)
	}
	if got.Currency != "PKR" {
		t.Errorf("currency = %q, want PKR", got.Currency)
	}
}

func TestCompute_Deterministic(t *testing.T) {
	c := NewCalculator(DefaultConfig())

	first, err := c.Compute(Route{TotalDistanceKm: 42.5}, petrolCar(4), at(17, 30), 3)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	for i := 0; i < 100; i++ {
		again, err := c.Compute(Route{TotalDistanceKm: 42.5}, petrolCar(4), at(17, 30), 3)
		if err != nil {
			t.Fatalf("Compute() error = %v", err)
		}
		if again != first {
			t.Fatalf("breakdown changed between identical calls: %+v vs %+v", again, first)
		}
	}
}

func TestCompute_MonotonicInDistance(t *testing.T) {
	c := NewCalculator(DefaultConfig())

	prev := 0.0
	for km := 1.0; km <= 400; km += 7.3 {
		got, err := c.Compute(Route{TotalDistanceKm: km}, petrolCar(4), at(12, 0), 1)
		if err != nil {
			t.Fatalf("Compute(%v km) error = %v", km, err)
		}
		if got.BaseFare < prev {
			t.Fatalf("fare decreased with distance: %v km -> %v (prev %v)", km, got.BaseFare, prev)
		}
		prev = got.BaseFare
	}
}

func TestCompute_PeakRatio(t *testing.T) {
	c := NewCalculator(DefaultConfig())

	offPeak, err := c.Compute(Route{TotalDistanceKm: 80}, petrolCar(4), at(13, 0), 2)
	if err != nil {
		t.Fatalf("off-peak: %v", err)
	}
	peak, err := c.Compute(Route{TotalDistanceKm: 80}, petrolCar(4), at(18, 0), 2)
	if err != nil {
		t.Fatalf("peak: %v", err)
	}
	if math.Abs(peak.BaseFare-1.30*offPeak.BaseFare) > 0.01 {
		t.Errorf("peak fare %v, want 1.30 x %v", peak.BaseFare, offPeak.BaseFare)
	}
}

func TestCompute_TwoWheelerUndercutsFourWheeler(t *testing.T) {
	c := NewCalculator(DefaultConfig())

	tw, err := c.Compute(Route{TotalDistanceKm: 30}, Vehicle{Type: TwoWheeler, FuelType: FuelPetrol, Seats: 2}, at(12, 0), 1)
	if err != nil {
		t.Fatalf("two-wheeler: %v", err)
	}
	fw, err := c.Compute(Route{TotalDistanceKm: 30}, petrolCar(4), at(12, 0), 1)
	if err != nil {
		t.Fatalf("four-wheeler: %v", err)
	}
	if tw.BaseFare >= fw.BaseFare {
		t.Errorf("two-wheeler fare %v not below four-wheeler %v", tw.BaseFare, fw.BaseFare)
	}
	if math.Abs(tw.BaseFare-0.70*fw.BaseFare) > 0.01 {
		t.Errorf("two-wheeler fare %v, want 0.70 x %v", tw.BaseFare, fw.BaseFare)
	}
}

func TestCompute_BulkDiscountCap(t *testing.T) {
	c := NewCalculator(DefaultConfig())

	single, err := c.Compute(Route{TotalDistanceKm: 60}, petrolCar(8), at(12, 0), 1)
	if err != nil {
		t.Fatalf("single: %v", err)
	}
	bulk, err := c.Compute(Route{TotalDistanceKm: 60}, petrolCar(8), at(12, 0), 6)
	if err != nil {
		t.Fatalf("bulk: %v", err)
	}
	if bulk.BaseFare > 0.82*single.BaseFare+0.01 {
		t.Errorf("bulk fare %v exceeds 0.82 x single %v", bulk.BaseFare, single.BaseFare)
	}
	if bulk.BulkDiscount != 18.00 {
		t.Errorf("bulk discount = %v, want 18.00", bulk.BulkDiscount)
	}
}

func TestCompute_Errors(t *testing.T) {
	c := NewCalculator(DefaultConfig())

	if _, err := c.Compute(Route{TotalDistanceKm: 0}, petrolCar(4), at(12, 0), 1); err != ErrInvalidRoute {
		t.Errorf("zero distance: got %v, want ErrInvalidRoute", err)
	}
	if _, err := c.Compute(Route{TotalDistanceKm: -5}, petrolCar(4), at(12, 0), 1); err != ErrInvalidRoute {
		t.Errorf("negative distance: got %v, want ErrInvalidRoute", err)
	}
	if _, err := c.Compute(Route{TotalDistanceKm: 10}, petrolCar(4), at(12, 0), 0); err != ErrInvalidSeatCount {
		t.Errorf("zero seats: got %v, want ErrInvalidSeatCount", err)
	}
	if _, err := c.Compute(Route{TotalDistanceKm: 10}, petrolCar(4), at(12, 0), 5); err != ErrInvalidSeatCount {
		t.Errorf("seats over capacity: got %v, want ErrInvalidSeatCount", err)
	}
	if _, err := c.Compute(Route{TotalDistanceKm: 10}, Vehicle{Type: FourWheeler, FuelType: "Kerosene", Seats: 4}, at(12, 0), 1); err != ErrUnknownVehicleProfile {
		t.Errorf("unknown fuel: got %v, want ErrUnknownVehicleProfile", err)
	}
	if _, err := c.Compute(Route{TotalDistanceKm: 10}, Vehicle{Type: "SW", FuelType: FuelPetrol, Seats: 4}, at(12, 0), 1); err != ErrUnknownVehicleProfile {
		t.Errorf("unknown vehicle type: got %v, want ErrUnknownVehicleProfile", err)
	}
}

func TestPeakWindowBoundaries(t *testing.T) {
	c := NewCalculator(DefaultConfig())

	cases := []struct {
		hour, minute int
		peak         bool
	}{
		{6, 59, false},
		{7, 0, true},
		{8, 59, true},
		{9, 0, false}, // end exclusive
		{16, 59, false},
		{17, 0, true},
		{19, 59, true},
		{20, 0, false},
	}
	for _, tc := range cases {
		got, err := c.Compute(Route{TotalDistanceKm: 20}, petrolCar(4), at(tc.hour, tc.minute), 1)
		if err != nil {
			t.Fatalf("Compute at %02d:%02d: %v", tc.hour, tc.minute, err)
		}
		if got.IsPeakHour != tc.peak {
			t.Errorf("%02d:%02d peak = %v, want %v", tc.hour, tc.minute, got.IsPeakHour, tc.peak)
		}
	}
}
