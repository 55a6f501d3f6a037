package repositories

import (
	"context"
	"fmt"

	"sonority/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	stamp(&user.CreatedAt)
	stamp(&user.UpdatedAt)
	if err := conn(r.db, tx).WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", translateWriteError(err, "email", "username"))
	}
	return nil
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.User, error) {
	var user models.User
	if err := conn(r.db, tx).WithContext(ctx).Take(&user, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, translateReadError(err))
	}
	return &user, nil
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := conn(r.db, tx).WithContext(ctx).Take(&user, "email = ?", email).Error; err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", translateReadError(err))
	}
	return &user, nil
}

// EmailExists reports whether an account already uses the email.
func (r *GORMUserRepository) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	var n int64
	if err := conn(r.db, tx).WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return n > 0, nil
}

// UsernameExists reports whether an account already uses the username.
func (r *GORMUserRepository) UsernameExists(ctx context.Context, tx *gorm.DB, username string) (bool, error) {
	var n int64
	if err := conn(r.db, tx).WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&n).Error; err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return n > 0, nil
}

// Update writes every column of the user.
func (r *GORMUserRepository) Update(ctx context.Context, tx *gorm.DB, user *models.User) error {
	if err := conn(r.db, tx).WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user %s: %w", user.ID, translateWriteError(err, "email", "username"))
	}
	return nil
}

// Delete removes the user row. Dependent rows must be removed by the caller first.
func (r *GORMUserRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	res := conn(r.db, tx).WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete user %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("failed to delete user %s: %w", id, ErrNotFound)
	}
	return nil
}
