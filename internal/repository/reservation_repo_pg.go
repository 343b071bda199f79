package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zvrva/travelbook/internal/domain"
)

type ReservationRepository interface {
	CreateConfirmed(ctx context.Context, reservation *domain.Reservation) error
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	ListByPrincipal(ctx context.Context, principalID int64) ([]domain.ReservationDetail, error)
	CancelConfirmed(ctx context.Context, id string) error
}

type PGReservationRepository struct {
	db     *pgxpool.Pool
	ledger InventoryLedger
}

func NewReservationRepository(db *pgxpool.Pool, ledger InventoryLedger) ReservationRepository {
	return &PGReservationRepository{db: db, ledger: ledger}
}

// CreateConfirmed books seats and records the reservation as one transaction.
// The ledger decrement, the per-day code sequence and the insert all commit
// together; if any step fails the decrement rolls back, so no caller can ever
// observe seats deducted without a matching reservation row.
func (r *PGReservationRepository) CreateConfirmed(ctx context.Context, reservation *domain.Reservation) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := r.ledger.TryReserveTx(ctx, tx, reservation.OfferingID, reservation.Seats); err != nil {
		return err
	}

	day := time.Now().UTC()
	seq, err := nextSequence(ctx, tx, reservationScope(day))
	if err != nil {
		return err
	}
	reservation.Code = reservationCode(day, seq)
	reservation.Status = domain.ReservationStatusConfirmed

	if err := tx.QueryRow(ctx, `INSERT INTO reservations (id, code, offering_id, principal_id, seats, total_price_cents, email, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`,
		reservation.ID, reservation.Code, reservation.OfferingID, reservation.PrincipalID, reservation.Seats, reservation.TotalPriceCents, reservation.Email, reservation.Status).
		Scan(&reservation.CreatedAt, &reservation.UpdatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGReservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	row := r.db.QueryRow(ctx, `SELECT id, code, offering_id, principal_id, seats, total_price_cents, email, status, created_at, updated_at FROM reservations WHERE id=$1`, id)
	var b domain.Reservation
	if err := row.Scan(&b.ID, &b.Code, &b.OfferingID, &b.PrincipalID, &b.Seats, &b.TotalPriceCents, &b.Email, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *PGReservationRepository) ListByPrincipal(ctx context.Context, principalID int64) ([]domain.ReservationDetail, error) {
	rows, err := r.db.Query(ctx, `SELECT r.id, r.code, r.offering_id, r.principal_id, r.seats, r.total_price_cents, r.email, r.status, r.created_at, r.updated_at,
			o.id, o.code, o.category, o.origin, o.destination, o.departure_time, o.price_cents, o.total_seats, o.available_seats, o.created_at, o.updated_at
		FROM reservations r
		JOIN offerings o ON o.id = r.offering_id
		WHERE r.principal_id = $1
		ORDER BY r.created_at DESC`, principalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]domain.ReservationDetail, 0)
	for rows.Next() {
		var d domain.ReservationDetail
		if err := rows.Scan(&d.ID, &d.Code, &d.OfferingID, &d.PrincipalID, &d.Seats, &d.TotalPriceCents, &d.Email, &d.Status, &d.CreatedAt, &d.UpdatedAt,
			&d.Offering.ID, &d.Offering.Code, &d.Offering.Category, &d.Offering.Origin, &d.Offering.Destination, &d.Offering.DepartureTime, &d.Offering.PriceCents, &d.Offering.TotalSeats, &d.Offering.AvailableSeats, &d.Offering.CreatedAt, &d.Offering.UpdatedAt); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// CancelConfirmed flips a CONFIRMED reservation to CANCELLED and restores its
// seats in the same transaction. The conditional UPDATE makes the status
// transition the serialization point: of two concurrent cancels exactly one
// matches the CONFIRMED row, the other gets ErrNotCancellable and the seats
// are released once.
func (r *PGReservationRepository) CancelConfirmed(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var offeringID string
	var seats int
	err = tx.QueryRow(ctx, `UPDATE reservations SET status=$2, updated_at=now() WHERE id=$1 AND status=$3 RETURNING offering_id, seats`,
		id, domain.ReservationStatusCancelled, domain.ReservationStatusConfirmed).Scan(&offeringID, &seats)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotCancellable
		}
		return err
	}

	if err := r.ledger.ReleaseTx(ctx, tx, offeringID, seats); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

var _ ReservationRepository = (*PGReservationRepository)(nil)
