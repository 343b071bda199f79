package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zvrva/travelbook/internal/domain"
)

// pgExecutor is the subset of pgx satisfied by both *pgxpool.Pool and pgx.Tx,
// so ledger and sequence statements can run standalone or enlisted in a
// caller's transaction.
type pgExecutor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// InventoryLedger owns available_seats for each offering. The conditional
// UPDATE takes the offering's row lock, so the capacity check and the
// decrement are one atomic unit per offering; offerings never contend with
// each other.
type InventoryLedger interface {
	TryReserve(ctx context.Context, offeringID string, seats int) error
	Release(ctx context.Context, offeringID string, seats int) error
	TryReserveTx(ctx context.Context, tx pgx.Tx, offeringID string, seats int) error
	ReleaseTx(ctx context.Context, tx pgx.Tx, offeringID string, seats int) error
}

type PGInventoryLedger struct {
	db *pgxpool.Pool
}

func NewInventoryLedger(db *pgxpool.Pool) InventoryLedger {
	return &PGInventoryLedger{db: db}
}

func (l *PGInventoryLedger) TryReserve(ctx context.Context, offeringID string, seats int) error {
	return tryReserveSeats(ctx, l.db, offeringID, seats)
}

func (l *PGInventoryLedger) Release(ctx context.Context, offeringID string, seats int) error {
	return releaseSeats(ctx, l.db, offeringID, seats)
}

func (l *PGInventoryLedger) TryReserveTx(ctx context.Context, tx pgx.Tx, offeringID string, seats int) error {
	return tryReserveSeats(ctx, tx, offeringID, seats)
}

func (l *PGInventoryLedger) ReleaseTx(ctx context.Context, tx pgx.Tx, offeringID string, seats int) error {
	return releaseSeats(ctx, tx, offeringID, seats)
}

func tryReserveSeats(ctx context.Context, q pgExecutor, offeringID string, seats int) error {
	if seats < 1 {
		return domain.ErrInvalidRequest
	}
	res, err := q.Exec(ctx, `UPDATE offerings SET available_seats = available_seats - $2, updated_at = now() WHERE id=$1 AND available_seats >= $2`, offeringID, seats)
	if err != nil {
		return fmt.Errorf("reserve seats: %w", err)
	}
	if res.RowsAffected() == 0 {
		var exists bool
		if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM offerings WHERE id=$1)`, offeringID).Scan(&exists); err != nil {
			return fmt.Errorf("reserve seats: %w", err)
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrInsufficientCapacity
	}
	return nil
}

func releaseSeats(ctx context.Context, q pgExecutor, offeringID string, seats int) error {
	if seats < 1 {
		return domain.ErrInvalidRequest
	}
	// LEAST clamps at total_seats so a double release can never mint capacity.
	res, err := q.Exec(ctx, `UPDATE offerings SET available_seats = LEAST(available_seats + $2, total_seats), updated_at = now() WHERE id=$1`, offeringID, seats)
	if err != nil {
		return fmt.Errorf("release seats: %w", err)
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ InventoryLedger = (*PGInventoryLedger)(nil)
