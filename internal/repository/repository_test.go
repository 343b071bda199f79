package repository

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewRepositories(t *testing.T) {
	pool := &pgxpool.Pool{}

	ledger := NewInventoryLedger(pool)
	assert.NotNil(t, ledger)

	assert.NotNil(t, NewOfferingRepository(pool))
	assert.NotNil(t, NewReservationRepository(pool, ledger))
}
