// README: Booking-details view document and its best-effort assembly.
package booking

import (
	"fmt"

	"letsgo/internal/modules/fare"
	"letsgo/internal/modules/trip"
	"letsgo/internal/modules/user"
)

// Details is the document returned by the booking-details read path. Shapes
// and defaults mirror the passenger app's contract.
type Details struct {
	Trip          TripView            `json:"trip"`
	Driver        DriverView          `json:"driver"`
	Vehicle       VehicleView         `json:"vehicle"`
	Route         RouteView           `json:"route"`
	Passengers    []PassengerView     `json:"passengers"`
	FareData      map[string]any      `json:"fare_data"`
	StopBreakdown []StopBreakdownView `json:"stop_breakdown"`
	BookingInfo   BookingInfo         `json:"booking_info"`
}

type TripView struct {
	TripID                string   `json:"trip_id"`
	TripDate              string   `json:"trip_date"`
	DepartureTime         string   `json:"departure_time"`
	EstimatedArrivalTime  *string  `json:"estimated_arrival_time"`
	TripStatus            string   `json:"trip_status"`
	TotalSeats            int      `json:"total_seats"`
	AvailableSeats        int      `json:"available_seats"`
	BaseFare              float64  `json:"base_fare"`
	GenderPreference      *string  `json:"gender_preference"`
	Notes                 *string  `json:"notes"`
	IsNegotiable          bool     `json:"is_negotiable"`
	MinimumAcceptableFare *float64 `json:"minimum_acceptable_fare"`
	CreatedAt             string   `json:"created_at"`
}

type DriverView struct {
	ID           *string `json:"id"`
	Name         string  `json:"name"`
	DriverRating float64 `json:"driver_rating"`
	ProfilePhoto *string `json:"profile_photo"`
	PhoneNo      *string `json:"phone_no"`
	Gender       string  `json:"gender"`
}

type VehicleView struct {
	ID         *string `json:"id"`
	Model      string  `json:"model"`
	Company    string  `json:"company"`
	Type       string  `json:"type"`
	Color      string  `json:"color"`
	Seats      int     `json:"seats"`
	PhotoFront *string `json:"photo_front"`
}

type RouteView struct {
	ID                       string     `json:"id"`
	Name                     string     `json:"name"`
	Description              string     `json:"description"`
	TotalDistanceKm          float64    `json:"total_distance_km"`
	EstimatedDurationMinutes int        `json:"estimated_duration_minutes"`
	Stops                    []StopView `json:"stops"`
}

type StopView struct {
	Order                  int     `json:"order"`
	Name                   string  `json:"name"`
	Latitude               float64 `json:"latitude"`
	Longitude              float64 `json:"longitude"`
	Address                string  `json:"address"`
	EstimatedTimeFromStart int     `json:"estimated_time_from_start"`
}

type PassengerView struct {
	Name            string  `json:"name"`
	Gender          string  `json:"gender"`
	PassengerRating float64 `json:"passenger_rating"`
	SeatsBooked     int     `json:"seats_booked"`
}

type StopBreakdownView struct {
	FromStopOrder   int     `json:"from_stop_order"`
	ToStopOrder     int     `json:"to_stop_order"`
	FromStopName    string  `json:"from_stop_name"`
	ToStopName      string  `json:"to_stop_name"`
	DistanceKm      float64 `json:"distance_km"`
	DurationMinutes int     `json:"duration_minutes"`
	Price           float64 `json:"price"`
}

type BookingInfo struct {
	CanBook      bool    `json:"can_book"`
	MinSeats     int     `json:"min_seats"`
	MaxSeats     int     `json:"max_seats"`
	PricePerSeat float64 `json:"price_per_seat"`
	TotalPrice   float64 `json:"total_price"`
}

// Documented defaults substituted for missing optional data.
const (
	defaultDriverName  = "Unknown Driver"
	defaultGender      = "Unknown"
	defaultVehicle     = "N/A"
	defaultRouteName   = "Custom Route"
	defaultRouteDesc   = "Route description not available"
	defaultPetrolPerKm = 22.0
)

// assemblyInput bundles the fetched records. Everything except Trip is
// optional; missing pieces degrade individual fields rather than the view.
type assemblyInput struct {
	Trip          *trip.Trip
	Driver        *user.User
	Vehicle       *trip.Vehicle
	Route         *trip.Route
	Stops         []trip.RouteStop
	Passengers    []ConfirmedPassenger
	Fare          *fare.Breakdown
	StopBreakdown []trip.StopBreakdown
	MaxSeatsCap   int
}

// assembleDetails builds the booking-details view from whatever was fetched,
// substituting documented defaults field by field. The returned list names
// the sections that degraded.
func assembleDetails(in assemblyInput) (Details, []string) {
	var degraded []string
	t := in.Trip

	d := Details{
		Trip: TripView{
			TripID:                string(t.ID),
			TripDate:              t.TripDate.Format("2006-01-02"),
			DepartureTime:         t.DepartureTime,
			EstimatedArrivalTime:  t.EstimatedArrivalTime,
			TripStatus:            string(t.Status),
			TotalSeats:            t.TotalSeats,
			AvailableSeats:        t.AvailableSeats,
			BaseFare:              t.BaseFare,
			GenderPreference:      t.GenderPreference,
			Notes:                 t.Notes,
			IsNegotiable:          t.IsNegotiable,
			MinimumAcceptableFare: t.MinimumAcceptableFare,
			CreatedAt:             t.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		},
		Passengers: []PassengerView{},
	}

	if in.Driver != nil {
		id := string(in.Driver.ID)
		d.Driver = DriverView{
			ID:           &id,
			Name:         in.Driver.Name,
			DriverRating: in.Driver.DriverRating,
			Gender:       orDefault(in.Driver.Gender, defaultGender),
		}
		if in.Driver.PhoneNo != "" {
			phone := in.Driver.PhoneNo
			d.Driver.PhoneNo = &phone
		}
		if in.Driver.HasProfilePhoto {
			photo := fmt.Sprintf("/lets_go/user_image/%s/profile_photo/", id)
			d.Driver.ProfilePhoto = &photo
		}
	} else {
		degraded = append(degraded, "driver")
		d.Driver = DriverView{Name: defaultDriverName, Gender: defaultGender}
	}

	if in.Vehicle != nil {
		id := string(in.Vehicle.ID)
		d.Vehicle = VehicleView{
			ID:      &id,
			Model:   orDefault(in.Vehicle.Model, defaultVehicle),
			Company: orDefault(in.Vehicle.Company, defaultVehicle),
			Type:    orDefault(string(in.Vehicle.VehicleType), defaultVehicle),
			Color:   orDefault(in.Vehicle.Color, defaultVehicle),
			Seats:   in.Vehicle.Seats,
		}
		if in.Vehicle.HasPhoto {
			photo := fmt.Sprintf("/lets_go/vehicle_image/%s/photo_front/", id)
			d.Vehicle.PhotoFront = &photo
		}
	} else {
		degraded = append(degraded, "vehicle")
		d.Vehicle = VehicleView{Model: defaultVehicle, Company: defaultVehicle, Type: defaultVehicle, Color: defaultVehicle}
	}

	if in.Route != nil {
		d.Route = RouteView{
			ID:                       string(in.Route.ID),
			Name:                     orDefault(in.Route.Name, defaultRouteName),
			Description:              orDefault(in.Route.Description, defaultRouteDesc),
			TotalDistanceKm:          in.Route.TotalDistanceKm,
			EstimatedDurationMinutes: in.Route.EstimatedDurationMinutes,
			Stops:                    []StopView{},
		}
	} else {
		degraded = append(degraded, "route")
		d.Route = RouteView{ID: "Unknown", Name: defaultRouteName, Description: defaultRouteDesc, Stops: []StopView{}}
	}

	if len(in.Stops) > 0 {
		for _, st := range in.Stops {
			d.Route.Stops = append(d.Route.Stops, StopView{
				Order:                  st.Order,
				Name:                   orDefault(st.Name, "Unknown Stop"),
				Latitude:               st.Position.Lat,
				Longitude:              st.Position.Lng,
				Address:                orDefault(st.Address, "No address"),
				EstimatedTimeFromStart: st.EstimatedTimeFromStart,
			})
		}
	} else {
		degraded = append(degraded, "route_stops")
	}

	for _, p := range in.Passengers {
		d.Passengers = append(d.Passengers, PassengerView{
			Name:            orDefault(p.Name, "Unknown"),
			Gender:          orDefault(p.Gender, defaultGender),
			PassengerRating: p.PassengerRating,
			SeatsBooked:     p.SeatsBooked,
		})
	}

	switch {
	case in.Fare != nil:
		d.FareData = fareDataFromBreakdown(in.Fare, t.BaseFare)
	case in.Route != nil && in.Route.TotalDistanceKm > 0:
		d.FareData = map[string]any{
			"base_fare":         t.BaseFare,
			"total_distance_km": in.Route.TotalDistanceKm,
			"price_per_km":      defaultPetrolPerKm,
		}
	default:
		degraded = append(degraded, "fare_data")
		d.FareData = map[string]any{
			"base_fare":         t.BaseFare,
			"total_distance_km": 0.0,
			"price_per_km":      defaultPetrolPerKm,
		}
	}

	d.StopBreakdown = []StopBreakdownView{}
	for _, b := range in.StopBreakdown {
		d.StopBreakdown = append(d.StopBreakdown, StopBreakdownView{
			FromStopOrder:   b.FromStopOrder,
			ToStopOrder:     b.ToStopOrder,
			FromStopName:    orDefault(b.FromStopName, "Unknown"),
			ToStopName:      orDefault(b.ToStopName, "Unknown"),
			DistanceKm:      b.DistanceKm,
			DurationMinutes: b.DurationMinutes,
			Price:           b.Price,
		})
	}

	maxSeats := t.AvailableSeats
	if in.MaxSeatsCap > 0 && maxSeats > in.MaxSeatsCap {
		maxSeats = in.MaxSeatsCap
	}
	d.BookingInfo = BookingInfo{
		CanBook:      t.AvailableSeats > 0 && t.Status == trip.StatusScheduled,
		MinSeats:     1,
		MaxSeats:     maxSeats,
		PricePerSeat: t.BaseFare,
		TotalPrice:   t.BaseFare,
	}

	return d, degraded
}

// fareDataFromBreakdown flattens the stored breakdown, forcing base_fare to
// the trip's actual (possibly driver-negotiated) price.
func fareDataFromBreakdown(fb *fare.Breakdown, tripBaseFare float64) map[string]any {
	return map[string]any{
		"base_fare":          tripBaseFare,
		"total_distance_km":  fb.TotalDistanceKm,
		"price_per_km":       fb.PricePerKm,
		"fuel_type":          fb.FuelType,
		"vehicle_type":       fb.VehicleType,
		"vehicle_multiplier": fb.VehicleMultiplier,
		"time_multiplier":    fb.TimeMultiplier,
		"is_peak_hour":       fb.IsPeakHour,
		"distance_factor":    fb.DistanceFactor,
		"seat_factor":        fb.SeatFactor,
		"bulk_discount":      fb.BulkDiscount,
		"fuel_cost":          fb.FuelCost,
		"profit_margin":      fb.ProfitMargin,
		"profit_percentage":  fb.ProfitPercentage,
		"currency":           fb.Currency,
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
