package domain

import "time"

type ReservationStatus string

const (
	ReservationStatusConfirmed ReservationStatus = "CONFIRMED"
	ReservationStatusCancelled ReservationStatus = "CANCELLED"
)

// MaxSeatsPerReservation caps a single booking regardless of remaining capacity.
const MaxSeatsPerReservation = 10

type Reservation struct {
	ID          string
	Code        string
	OfferingID  string
	PrincipalID int64
	Seats       int
	// TotalPriceCents is frozen at booking time from the offering's price.
	// It is never recomputed, even if the offering is repriced later.
	TotalPriceCents int64
	Email           string
	Status          ReservationStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ReservationDetail is a reservation joined with its offering, as returned
// for a principal's booking history.
type ReservationDetail struct {
	Reservation
	Offering Offering
}

// Upcoming reports whether the reserved offering has not yet departed.
func (d *ReservationDetail) Upcoming(now time.Time) bool {
	return d.Offering.DepartureTime.After(now)
}
