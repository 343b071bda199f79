package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOfferingCategory_Valid(t *testing.T) {
	assert.True(t, CategoryFlight.Valid())
	assert.True(t, CategoryTrain.Valid())
	assert.True(t, CategoryBus.Valid())
	assert.False(t, OfferingCategory("BOAT").Valid())
	assert.False(t, OfferingCategory("flight").Valid())
}

func TestOffering_Bookable(t *testing.T) {
	now := time.Now()

	testCases := []struct {
		name     string
		offering Offering
		want     bool
	}{
		{
			name:     "seats left and future departure",
			offering: Offering{AvailableSeats: 1, DepartureTime: now.Add(time.Hour)},
			want:     true,
		},
		{
			name:     "sold out",
			offering: Offering{AvailableSeats: 0, DepartureTime: now.Add(time.Hour)},
			want:     false,
		},
		{
			name:     "departed",
			offering: Offering{AvailableSeats: 5, DepartureTime: now.Add(-time.Minute)},
			want:     false,
		},
		{
			name:     "departing exactly now",
			offering: Offering{AvailableSeats: 5, DepartureTime: now},
			want:     false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.offering.Bookable(now))
		})
	}
}

func TestReservationDetail_Upcoming(t *testing.T) {
	now := time.Now()
	upcoming := ReservationDetail{Offering: Offering{DepartureTime: now.Add(time.Hour)}}
	past := ReservationDetail{Offering: Offering{DepartureTime: now.Add(-time.Hour)}}

	assert.True(t, upcoming.Upcoming(now))
	assert.False(t, past.Upcoming(now))
}
