package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/gestor/backend/internal/domain/identity"
	"github.com/gestor/backend/internal/domain/shared"
	"github.com/gestor/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormUserRepository implements identity.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create inserts a new account row.
func (r *GormUserRepository) Create(ctx context.Context, user *identity.User) error {
	if err := r.db.WithContext(ctx).Create(models.UserModelFromDomain(user)).Error; err != nil {
		return shared.WrapPersistence(err)
	}
	return nil
}

// Update rewrites the account row.
func (r *GormUserRepository) Update(ctx context.Context, user *identity.User) error {
	result := r.db.WithContext(ctx).Model(&models.UserModel{}).
		Where("id = ?", user.ID).
		Select("name", "email", "password_hash", "status", "updated_at").
		Updates(models.UserModelFromDomain(user))
	if result.Error != nil {
		return shared.WrapPersistence(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds an account by its ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.WrapPersistence(err)
	}
	return model.ToDomain(), nil
}

// FindByEmail finds an account by email. The lookup is global: login
// happens before any tenant context exists.
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.WrapPersistence(err)
	}
	return model.ToDomain(), nil
}

// EmailExists checks if an account with the given email exists
func (r *GormUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.UserModel{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error; err != nil {
		return false, shared.WrapPersistence(err)
	}
	return count > 0, nil
}

// Ensure GormUserRepository implements UserRepository
var _ identity.UserRepository = (*GormUserRepository)(nil)
