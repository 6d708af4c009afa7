package trip

import (
	"context"
	"testing"
	"time"

	"letsgo/internal/modules/fare"
)

func TestSegmentPrices(t *testing.T) {
	route := &Route{TotalDistanceKm: 300}
	stops := []RouteStop{
		{Order: 1, Name: "Islamabad", EstimatedTimeFromStart: 0},
		{Order: 2, Name: "Rawalpindi", EstimatedTimeFromStart: 30},
		{Order: 3, Name: "Gujranwala", EstimatedTimeFromStart: 180},
		{Order: 4, Name: "Lahore", EstimatedTimeFromStart: 240},
	}

	got := SegmentPrices(route, stops, 6600)
	if len(got) != 3 {
		t.Fatalf("segments = %d, want 3", len(got))
	}

	// 300 km over 3 segments: 100 km each, 2200 per segment.
	var priceSum float64
	for i, seg := range got {
		if seg.FromStopOrder != stops[i].Order || seg.ToStopOrder != stops[i+1].Order {
			t.Errorf("segment %d orders = %d..%d", i, seg.FromStopOrder, seg.ToStopOrder)
		}
		if seg.DistanceKm != 100 {
			t.Errorf("segment %d distance = %v, want 100", i, seg.DistanceKm)
		}
		if seg.Price != 2200 {
			t.Errorf("segment %d price = %v, want 2200", i, seg.Price)
		}
		priceSum += seg.Price
	}
	if priceSum != 6600 {
		t.Errorf("price sum = %v, want the full base fare", priceSum)
	}

	if got[0].DurationMinutes != 30 || got[1].DurationMinutes != 150 || got[2].DurationMinutes != 60 {
		t.Errorf("durations = %d,%d,%d", got[0].DurationMinutes, got[1].DurationMinutes, got[2].DurationMinutes)
	}
}

func TestSegmentPrices_Degenerate(t *testing.T) {
	if got := SegmentPrices(&Route{TotalDistanceKm: 50}, []RouteStop{{Order: 1}}, 100); got != nil {
		t.Errorf("single stop: got %v, want nil", got)
	}
	if got := SegmentPrices(&Route{TotalDistanceKm: 0}, []RouteStop{{Order: 1}, {Order: 2}}, 100); got != nil {
		t.Errorf("zero distance: got %v, want nil", got)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(nil, fare.NewCalculator(fare.DefaultConfig()), nil, nil)
	ctx := context.Background()
	date := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		cmd  CreateCommand
	}{
		{"missing driver", CreateCommand{RouteID: "r1", VehicleID: "v1", TripDate: date, DepartureTime: "08:00", TotalSeats: 4}},
		{"missing route", CreateCommand{DriverID: "d1", VehicleID: "v1", TripDate: date, DepartureTime: "08:00", TotalSeats: 4}},
		{"zero seats", CreateCommand{DriverID: "d1", RouteID: "r1", VehicleID: "v1", TripDate: date, DepartureTime: "08:00"}},
		{"bad departure time", CreateCommand{DriverID: "d1", RouteID: "r1", VehicleID: "v1", TripDate: date, DepartureTime: "8 am", TotalSeats: 4}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tc.cmd); err != ErrBadRequest {
				t.Errorf("got %v, want ErrBadRequest", err)
			}
		})
	}
}
