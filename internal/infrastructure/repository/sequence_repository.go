package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/bizbooks/bizbooks-api/internal/domain/enum"
	domainRepo "github.com/bizbooks/bizbooks-api/internal/domain/repository"
	"gorm.io/gorm"
)

type sequenceRepository struct {
	store
}

// NewSequenceRepository creates a new bill-number sequence repository
func NewSequenceRepository(db *gorm.DB, timeout time.Duration) domainRepo.SequenceRepository {
	return &sequenceRepository{store{db: db, timeout: timeout}}
}

// Increment bumps the counter for (year, type) in a single statement. The
// upsert creates the year row on first use and the increment happens inside
// the same INSERT ... ON CONFLICT, so concurrent callers each get a
// distinct value with no read-then-write window.
func (r *sequenceRepository) Increment(ctx context.Context, year int, t enum.TransactionType) (int64, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	column := "last_sale_number"
	saleInit, purchaseInit := 1, 0
	if t == enum.TransactionTypePurchase {
		column = "last_purchase_number"
		saleInit, purchaseInit = 0, 1
	}

	// column comes from the enum above, never from request input.
	query := fmt.Sprintf(`
		INSERT INTO bill_number_sequences (year, last_sale_number, last_purchase_number)
		VALUES (?, ?, ?)
		ON CONFLICT (year)
		DO UPDATE SET %s = bill_number_sequences.%s + 1
		RETURNING %s`, column, column, column)

	var next int64
	err := r.db.WithContext(ctx).Raw(query, year, saleInit, purchaseInit).Scan(&next).Error
	if err != nil {
		return 0, err
	}
	return next, nil
}
