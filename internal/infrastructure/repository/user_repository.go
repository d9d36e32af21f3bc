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

type userRepository struct {
	store
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB, timeout time.Duration) domainRepo.UserRepository {
	return &userRepository{store{db: db, timeout: timeout}}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	ctx, cancel := r.bound(ctx)
	defer cancel()
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	var user entity.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	var user entity.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	ctx, cancel := r.bound(ctx)
	defer cancel()
	return r.db.WithContext(ctx).Model(&entity.User{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash).Error
}
