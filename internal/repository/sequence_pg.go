package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/zvrva/travelbook/internal/domain"
)

// nextSequence increments the named scope's counter and returns the new value.
// The upsert takes the counter row's lock, so concurrent creations in the same
// scope serialize and never observe the same value. Run it inside the
// transaction that creates the entity so an aborted creation also rolls the
// counter back.
func nextSequence(ctx context.Context, q pgExecutor, scope string) (int64, error) {
	var value int64
	err := q.QueryRow(ctx, `INSERT INTO code_sequences (scope, value) VALUES ($1, 1)
		ON CONFLICT (scope) DO UPDATE SET value = code_sequences.value + 1
		RETURNING value`, scope).Scan(&value)
	if err != nil {
		return 0, fmt.Errorf("next sequence for %s: %w", scope, err)
	}
	return value, nil
}

func offeringCode(category domain.OfferingCategory, n int64) string {
	return fmt.Sprintf("%s%04d", category.CodePrefix(), n)
}

func offeringScope(category domain.OfferingCategory) string {
	return "offering:" + string(category)
}

func reservationCode(day time.Time, n int64) string {
	return fmt.Sprintf("BK%s%03d", day.Format("20060102"), n)
}

func reservationScope(day time.Time) string {
	return "reservation:" + day.Format("2006-01-02")
}
