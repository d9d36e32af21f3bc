package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bizbooks/bizbooks-api/internal/domain/entity"
	domainRepo "github.com/bizbooks/bizbooks-api/internal/domain/repository"
	"gorm.io/gorm"
)

type transactionRepository struct {
	store
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB, timeout time.Duration) domainRepo.TransactionRepository {
	return &transactionRepository{store{db: db, timeout: timeout}}
}

func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	ctx, cancel := r.bound(ctx)
	defer cancel()
	return r.db.WithContext(ctx).Create(transaction).Error
}

func (r *transactionRepository) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	var transaction entity.Transaction
	err := r.db.WithContext(ctx).First(&transaction, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &transaction, err
}

func (r *transactionRepository) GetAll(ctx context.Context) ([]entity.Transaction, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	var transactions []entity.Transaction
	err := r.db.WithContext(ctx).
		Order("date DESC").
		Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	ctx, cancel := r.bound(ctx)
	defer cancel()
	return r.db.WithContext(ctx).Save(transaction).Error
}

func (r *transactionRepository) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	res := r.db.WithContext(ctx).Delete(&entity.Transaction{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
