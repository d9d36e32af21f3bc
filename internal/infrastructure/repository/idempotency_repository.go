package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bizbooks/bizbooks-api/internal/domain/entity"
	domainRepo "github.com/bizbooks/bizbooks-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type idempotencyRepository struct {
	store
}

// NewIdempotencyRepository creates a new idempotency key repository
func NewIdempotencyRepository(db *gorm.DB, timeout time.Duration) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{store{db: db, timeout: timeout}}
}

func (r *idempotencyRepository) Create(ctx context.Context, key *entity.IdempotencyKey) error {
	ctx, cancel := r.bound(ctx)
	defer cancel()
	return r.db.WithContext(ctx).Create(key).Error
}

func (r *idempotencyRepository) GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	var record entity.IdempotencyKey
	err := r.db.WithContext(ctx).
		First(&record, "key = ? AND user_id = ?", key, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &record, err
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context) error {
	ctx, cancel := r.bound(ctx)
	defer cancel()
	return r.db.WithContext(ctx).
		Delete(&entity.IdempotencyKey{}, "expires_at < ?", time.Now()).Error
}
