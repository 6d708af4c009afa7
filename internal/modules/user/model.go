// README: Read-side user records (drivers and passengers).
package user

import "letsgo/internal/types"

// User is the slice of the account record the trip and booking flows read.
// Registration, verification and photo upload are handled elsewhere.
type User struct {
	ID              types.ID
	Name            string
	Gender          string
	PhoneNo         string
	DriverRating    float64
	PassengerRating float64
	HasProfilePhoto bool
}
