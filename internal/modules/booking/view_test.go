package booking

import (
	"testing"
	"time"

	"letsgo/internal/modules/fare"
	"letsgo/internal/modules/trip"
	"letsgo/internal/modules/user"
)

func fixtureTrip() *trip.Trip {
	return &trip.Trip{
		ID:             "t1",
		RouteID:        "r1",
		DriverID:       "d1",
		VehicleID:      "v1",
		TripDate:       time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		DepartureTime:  "08:30",
		Status:         trip.StatusScheduled,
		TotalSeats:     4,
		AvailableSeats: 3,
		BaseFare:       1000,
		CreatedAt:      time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC),
	}
}

func TestAssembleDetails_FullInput(t *testing.T) {
	in := assemblyInput{
		Trip: fixtureTrip(),
		Driver: &user.User{
			ID: "d1", Name: "Ahmed", Gender: "male", PhoneNo: "+923001234567",
			DriverRating: 4.5, HasProfilePhoto: true,
		},
		Vehicle: &trip.Vehicle{
			ID: "v1", Model: "Corolla", Company: "Toyota",
			VehicleType: fare.FourWheeler, FuelType: fare.FuelPetrol,
			Color: "White", Seats: 4, HasPhoto: true,
		},
		Route: &trip.Route{ID: "r1", Name: "Islamabad to Lahore", Description: "Via motorway", TotalDistanceKm: 300, EstimatedDurationMinutes: 240},
		Stops: []trip.RouteStop{
			{Order: 1, Name: "Islamabad", Address: "F-8"},
			{Order: 2, Name: "Lahore", Address: "Thokar", EstimatedTimeFromStart: 240},
		},
		Passengers: []ConfirmedPassenger{{Name: "Sara", Gender: "female", PassengerRating: 4.8, SeatsBooked: 1}},
		Fare:       &fare.Breakdown{BaseFare: 990, TotalDistanceKm: 300, PricePerKm: 22, FuelType: "Petrol", Currency: "PKR"},
		StopBreakdown: []trip.StopBreakdown{
			{FromStopOrder: 1, ToStopOrder: 2, FromStopName: "Islamabad", ToStopName: "Lahore", DistanceKm: 300, Price: 1000},
		},
		MaxSeatsCap: 4,
	}

	d, degraded := assembleDetails(in)
	if len(degraded) != 0 {
		t.Fatalf("expected no degraded fields, got %v", degraded)
	}
	if d.Driver.Name != "Ahmed" || d.Driver.ProfilePhoto == nil {
		t.Errorf("driver view not assembled: %+v", d.Driver)
	}
	if d.Vehicle.Model != "Corolla" || d.Vehicle.PhotoFront == nil {
		t.Errorf("vehicle view not assembled: %+v", d.Vehicle)
	}
	if len(d.Route.Stops) != 2 {
		t.Errorf("expected 2 stops, got %d", len(d.Route.Stops))
	}
	if len(d.Passengers) != 1 || d.Passengers[0].Name != "Sara" {
		t.Errorf("roster not assembled: %+v", d.Passengers)
	}
	// base_fare in fare_data always follows the trip's actual price.
	if d.FareData["base_fare"] != 1000.0 {
		t.Errorf("fare_data base_fare = %v, want trip base fare 1000", d.FareData["base_fare"])
	}
	if !d.BookingInfo.CanBook || d.BookingInfo.MinSeats != 1 || d.BookingInfo.MaxSeats != 3 {
		t.Errorf("booking info = %+v", d.BookingInfo)
	}
}

func TestAssembleDetails_MissingOptionalData(t *testing.T) {
	d, degraded := assembleDetails(assemblyInput{Trip: fixtureTrip(), MaxSeatsCap: 4})

	want := map[string]bool{"driver": true, "vehicle": true, "route": true, "route_stops": true, "fare_data": true}
	for _, name := range degraded {
		if !want[name] {
			t.Errorf("unexpected degraded field %q", name)
		}
		delete(want, name)
	}
	if len(want) != 0 {
		t.Errorf("fields not reported degraded: %v", want)
	}

	if d.Driver.Name != "Unknown Driver" || d.Driver.Gender != "Unknown" {
		t.Errorf("driver defaults = %+v", d.Driver)
	}
	if d.Vehicle.Model != "N/A" || d.Vehicle.Seats != 0 {
		t.Errorf("vehicle defaults = %+v", d.Vehicle)
	}
	if d.Route.Name != "Custom Route" {
		t.Errorf("route default name = %q", d.Route.Name)
	}
	if d.FareData["price_per_km"] != 22.0 {
		t.Errorf("fare_data default price_per_km = %v", d.FareData["price_per_km"])
	}
	// Degradation never nils out the JSON arrays.
	if d.Passengers == nil || d.Route.Stops == nil || d.StopBreakdown == nil {
		t.Error("expected empty slices, not nil")
	}
	if d.Trip.TripID != "t1" || d.Trip.BaseFare != 1000 {
		t.Errorf("trip view = %+v", d.Trip)
	}
}

func TestAssembleDetails_BookingInfo(t *testing.T) {
	t.Run("seat cap applies", func(t *testing.T) {
		tr := fixtureTrip()
		tr.TotalSeats, tr.AvailableSeats = 10, 7
		d, _ := assembleDetails(assemblyInput{Trip: tr, MaxSeatsCap: 4})
		if d.BookingInfo.MaxSeats != 4 {
			t.Errorf("max seats = %d, want cap 4", d.BookingInfo.MaxSeats)
		}
	})

	t.Run("sold out is not bookable", func(t *testing.T) {
		tr := fixtureTrip()
		tr.AvailableSeats = 0
		d, _ := assembleDetails(assemblyInput{Trip: tr, MaxSeatsCap: 4})
		if d.BookingInfo.CanBook {
			t.Error("expected can_book=false with no seats")
		}
	})

	t.Run("cancelled trip is not bookable", func(t *testing.T) {
		tr := fixtureTrip()
		tr.Status = trip.StatusCancelled
		d, _ := assembleDetails(assemblyInput{Trip: tr, MaxSeatsCap: 4})
		if d.BookingInfo.CanBook {
			t.Error("expected can_book=false for cancelled trip")
		}
	})
}
