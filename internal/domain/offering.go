package domain

import "time"

type OfferingCategory string

const (
	CategoryFlight OfferingCategory = "FLIGHT"
	CategoryTrain  OfferingCategory = "TRAIN"
	CategoryBus    OfferingCategory = "BUS"
)

func (c OfferingCategory) Valid() bool {
	switch c {
	case CategoryFlight, CategoryTrain, CategoryBus:
		return true
	}
	return false
}

// CodePrefix is the leading letter of display codes for this category: F0001, T0001, B0001.
func (c OfferingCategory) CodePrefix() string {
	return string(c[:1])
}

type Offering struct {
	ID             string
	Code           string
	Category       OfferingCategory
	Origin         string
	Destination    string
	DepartureTime  time.Time
	PriceCents     int64
	TotalSeats     int
	AvailableSeats int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Bookable reports whether the offering can still take reservations:
// seats remain and departure is strictly in the future.
func (o *Offering) Bookable(now time.Time) bool {
	return o.AvailableSeats > 0 && o.DepartureTime.After(now)
}

// OfferingFilter narrows offering listings. Zero-valued fields match everything;
// set fields combine conjunctively. Origin and Destination are substring matches.
type OfferingFilter struct {
	Category    OfferingCategory
	Origin      string
	Destination string
	Date        time.Time
}

func (f OfferingFilter) Empty() bool {
	return f.Category == "" && f.Origin == "" && f.Destination == "" && f.Date.IsZero()
}
