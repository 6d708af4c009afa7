// README: Fare calculator input types and the priced breakdown.
package fare

// VehicleType mirrors the vehicle registry codes.
type VehicleType string

const (
	TwoWheeler  VehicleType = "TW"
	FourWheeler VehicleType = "FW"
)

type FuelType string

const (
	FuelPetrol   FuelType = "Petrol"
	FuelDiesel   FuelType = "Diesel"
	FuelCNG      FuelType = "CNG"
	FuelElectric FuelType = "Electric"
)

// Route carries the only route attribute pricing needs.
type Route struct {
	TotalDistanceKm float64
}

// Vehicle carries the multiplier lookup keys and the seat capacity cap.
type Vehicle struct {
	Type     VehicleType
	FuelType FuelType
	Seats    int
}

// Breakdown is the itemized fare derivation. Field names follow the
// fare_calculation document stored on each trip, so it marshals straight
// into the read path's fare_data.
type Breakdown struct {
	BaseFare          float64 `json:"base_fare"`
	TotalDistanceKm   float64 `json:"total_distance_km"`
	PricePerKm        float64 `json:"price_per_km"`
	FuelType          string  `json:"fuel_type"`
	VehicleType       string  `json:"vehicle_type"`
	VehicleMultiplier float64 `json:"vehicle_multiplier"`
	TimeMultiplier    float64 `json:"time_multiplier"`
	IsPeakHour        bool    `json:"is_peak_hour"`
	DistanceFactor    float64 `json:"distance_factor"`
	SeatFactor        float64 `json:"seat_factor"`
	SeatCount         int     `json:"seat_count"`
	BulkDiscount      float64 `json:"bulk_discount"` // percent off, 0 when no tier applies
	FuelCost          float64 `json:"fuel_cost"`
	ProfitMargin      float64 `json:"profit_margin"`
	ProfitPercentage  float64 `json:"profit_percentage"`
	Currency          string  `json:"currency"`
}
