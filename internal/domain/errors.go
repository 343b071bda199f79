package domain

import "errors"

var (
	// ErrInvalidRequest rejects malformed booking input, e.g. a seat count
	// outside [1, MaxSeatsPerReservation].
	ErrInvalidRequest = errors.New("invalid request")
	// ErrOfferingUnavailable rejects bookings against a departed offering.
	ErrOfferingUnavailable = errors.New("offering unavailable")
	// ErrInsufficientCapacity means the offering had fewer seats left than
	// requested at commit time.
	ErrInsufficientCapacity = errors.New("insufficient capacity")
	ErrNotFound             = errors.New("not found")
	// ErrNotCancellable means the reservation is already cancelled or its
	// offering has departed.
	ErrNotCancellable = errors.New("reservation not cancellable")
)
