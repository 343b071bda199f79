package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/zvrva/travelbook/internal/domain"
)

func TestOfferingCode(t *testing.T) {
	assert.Equal(t, "F0001", offeringCode(domain.CategoryFlight, 1))
	assert.Equal(t, "T0042", offeringCode(domain.CategoryTrain, 42))
	assert.Equal(t, "B9999", offeringCode(domain.CategoryBus, 9999))
	// counters past the pad width keep growing instead of wrapping
	assert.Equal(t, "F10001", offeringCode(domain.CategoryFlight, 10001))
}

func TestReservationCode(t *testing.T) {
	day := time.Date(2026, 8, 31, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "BK20260831001", reservationCode(day, 1))
	assert.Equal(t, "BK20260831123", reservationCode(day, 123))
	assert.Equal(t, "BK202608311000", reservationCode(day, 1000))
}

func TestSequenceScopes(t *testing.T) {
	assert.Equal(t, "offering:FLIGHT", offeringScope(domain.CategoryFlight))
	assert.Equal(t, "offering:BUS", offeringScope(domain.CategoryBus))

	day := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "reservation:2026-08-31", reservationScope(day))
}
