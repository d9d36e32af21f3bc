package repository

import (
	"context"

	"github.com/bizbooks/bizbooks-api/internal/domain/enum"
)

// SequenceRepository maintains the per-year bill-number counters.
type SequenceRepository interface {
	// Increment atomically bumps the counter for the given type and year
	// and returns the new value. The first call for a year creates the
	// sequence row; concurrent callers never observe the same value.
	Increment(ctx context.Context, year int, t enum.TransactionType) (int64, error)
}
