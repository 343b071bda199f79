package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zvrva/travelbook/internal/domain"
)

type OfferingRepository interface {
	Create(ctx context.Context, offering *domain.Offering) error
	List(ctx context.Context, filter domain.OfferingFilter) ([]domain.Offering, error)
	GetByID(ctx context.Context, id string) (*domain.Offering, error)
	AuditInventory(ctx context.Context) ([]InventoryDrift, error)
}

// InventoryDrift is an offering whose available_seats disagrees with
// total_seats minus the sum of its confirmed reservations. Under the
// transactional booking path none should ever exist.
type InventoryDrift struct {
	OfferingID     string
	Code           string
	TotalSeats     int
	AvailableSeats int
	ConfirmedSeats int
}

type PGOfferingRepository struct {
	db *pgxpool.Pool
}

func NewOfferingRepository(db *pgxpool.Pool) OfferingRepository {
	return &PGOfferingRepository{db: db}
}

func (r *PGOfferingRepository) Create(ctx context.Context, offering *domain.Offering) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	seq, err := nextSequence(ctx, tx, offeringScope(offering.Category))
	if err != nil {
		return err
	}
	offering.Code = offeringCode(offering.Category, seq)
	offering.AvailableSeats = offering.TotalSeats

	if err := tx.QueryRow(ctx, `INSERT INTO offerings (id, code, category, origin, destination, departure_time, price_cents, total_seats, available_seats)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING created_at, updated_at`,
		offering.ID, offering.Code, offering.Category, offering.Origin, offering.Destination, offering.DepartureTime, offering.PriceCents, offering.TotalSeats).
		Scan(&offering.CreatedAt, &offering.UpdatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGOfferingRepository) List(ctx context.Context, filter domain.OfferingFilter) ([]domain.Offering, error) {
	query := `SELECT id, code, category, origin, destination, departure_time, price_cents, total_seats, available_seats, created_at, updated_at
		FROM offerings WHERE departure_time > now() AND available_seats > 0`
	args := make([]any, 0, 4)

	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.Origin != "" {
		args = append(args, filter.Origin)
		query += fmt.Sprintf(" AND origin ILIKE '%%' || $%d || '%%'", len(args))
	}
	if filter.Destination != "" {
		args = append(args, filter.Destination)
		query += fmt.Sprintf(" AND destination ILIKE '%%' || $%d || '%%'", len(args))
	}
	if !filter.Date.IsZero() {
		args = append(args, filter.Date)
		query += fmt.Sprintf(" AND departure_time::date = $%d::date", len(args))
	}
	query += " ORDER BY departure_time"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	offerings := make([]domain.Offering, 0)
	for rows.Next() {
		var o domain.Offering
		if err := rows.Scan(&o.ID, &o.Code, &o.Category, &o.Origin, &o.Destination, &o.DepartureTime, &o.PriceCents, &o.TotalSeats, &o.AvailableSeats, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		offerings = append(offerings, o)
	}
	return offerings, rows.Err()
}

func (r *PGOfferingRepository) GetByID(ctx context.Context, id string) (*domain.Offering, error) {
	row := r.db.QueryRow(ctx, `SELECT id, code, category, origin, destination, departure_time, price_cents, total_seats, available_seats, created_at, updated_at FROM offerings WHERE id=$1`, id)
	var o domain.Offering
	if err := row.Scan(&o.ID, &o.Code, &o.Category, &o.Origin, &o.Destination, &o.DepartureTime, &o.PriceCents, &o.TotalSeats, &o.AvailableSeats, &o.CreatedAt, &o.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *PGOfferingRepository) AuditInventory(ctx context.Context) ([]InventoryDrift, error) {
	rows, err := r.db.Query(ctx, `SELECT o.id, o.code, o.total_seats, o.available_seats,
			COALESCE(SUM(r.seats) FILTER (WHERE r.status = 'CONFIRMED'), 0) AS confirmed_seats
		FROM offerings o
		LEFT JOIN reservations r ON r.offering_id = o.id
		GROUP BY o.id, o.code, o.total_seats, o.available_seats
		HAVING o.available_seats + COALESCE(SUM(r.seats) FILTER (WHERE r.status = 'CONFIRMED'), 0) <> o.total_seats`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drift []InventoryDrift
	for rows.Next() {
		var d InventoryDrift
		if err := rows.Scan(&d.OfferingID, &d.Code, &d.TotalSeats, &d.AvailableSeats, &d.ConfirmedSeats); err != nil {
			return nil, err
		}
		drift = append(drift, d)
	}
	return drift, rows.Err()
}

var _ OfferingRepository = (*PGOfferingRepository)(nil)
