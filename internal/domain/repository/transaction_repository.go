package repository

import (
	"context"

	"github.com/bizbooks/bizbooks-api/internal/domain/entity"
)

// TransactionRepository defines the interface for transaction data operations
type TransactionRepository interface {
	Create(ctx context.Context, transaction *entity.Transaction) error
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	// GetAll returns every transaction ordered by date descending.
	GetAll(ctx context.Context) ([]entity.Transaction, error)
	Update(ctx context.Context, transaction *entity.Transaction) error
	// Delete reports whether a row was actually removed; an unknown id is
	// not an error.
	Delete(ctx context.Context, id string) (bool, error)
}
