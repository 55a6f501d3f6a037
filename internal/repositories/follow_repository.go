package repositories

import (
	"context"
	"fmt"

	"sonority/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository defines the interface for the follow graph.
type FollowRepository interface {
	// Create inserts the edge and reports whether it was new.
	Create(ctx context.Context, tx *gorm.DB, follow *models.Follow) (bool, error)
	// Delete removes the edge and reports whether it existed.
	Delete(ctx context.Context, tx *gorm.DB, followerID, artistID string) (bool, error)
	Exists(ctx context.Context, tx *gorm.DB, followerID, artistID string) (bool, error)
	DeleteByFollower(ctx context.Context, tx *gorm.DB, followerID string) error
	DeleteByArtist(ctx context.Context, tx *gorm.DB, artistID string) error
}

// GORMFollowRepository is a GORM implementation of FollowRepository.
type GORMFollowRepository struct {
	db *gorm.DB
}

// NewGORMFollowRepository creates a new instance of GORMFollowRepository.
func NewGORMFollowRepository(db *gorm.DB) *GORMFollowRepository {
	return &GORMFollowRepository{db: db}
}

// Create inserts a follow edge. An existing edge is left untouched.
func (r *GORMFollowRepository) Create(ctx context.Context, tx *gorm.DB, follow *models.Follow) (bool, error) {
	stamp(&follow.CreatedAt)
	res := conn(r.db, tx).WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(follow)
	if res.Error != nil {
		return false, fmt.Errorf("failed to follow artist %s: %w", follow.ArtistID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Delete removes a follow edge.
func (r *GORMFollowRepository) Delete(ctx context.Context, tx *gorm.DB, followerID, artistID string) (bool, error) {
	res := conn(r.db, tx).WithContext(ctx).
		Where("follower_id = ? AND artist_id = ?", followerID, artistID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to unfollow artist %s: %w", artistID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Exists reports whether the follower follows the artist.
func (r *GORMFollowRepository) Exists(ctx context.Context, tx *gorm.DB, followerID, artistID string) (bool, error) {
	var n int64
	err := conn(r.db, tx).WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND artist_id = ?", followerID, artistID).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("failed to check follow: %w", err)
	}
	return n > 0, nil
}

// DeleteByFollower removes every edge made by the user.
func (r *GORMFollowRepository) DeleteByFollower(ctx context.Context, tx *gorm.DB, followerID string) error {
	if err := conn(r.db, tx).WithContext(ctx).Where("follower_id = ?", followerID).Delete(&models.Follow{}).Error; err != nil {
		return fmt.Errorf("failed to delete follows of %s: %w", followerID, err)
	}
	return nil
}

// DeleteByArtist removes every edge pointing at the artist.
func (r *GORMFollowRepository) DeleteByArtist(ctx context.Context, tx *gorm.DB, artistID string) error {
	if err := conn(r.db, tx).WithContext(ctx).Where("artist_id = ?", artistID).Delete(&models.Follow{}).Error; err != nil {
		return fmt.Errorf("failed to delete followers of %s: %w", artistID, err)
	}
	return nil
}
