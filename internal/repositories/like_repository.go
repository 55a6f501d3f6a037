package repositories

import (
	"context"
	"fmt"

	"sonority/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines the interface for album likes.
type LikeRepository interface {
	// Create inserts the like and reports whether it was new.
	Create(ctx context.Context, tx *gorm.DB, like *models.Like) (bool, error)
	// Delete removes the like and reports whether it existed.
	Delete(ctx context.Context, tx *gorm.DB, userID, albumID string) (bool, error)
	Exists(ctx context.Context, tx *gorm.DB, userID, albumID string) (bool, error)
	DeleteByUser(ctx context.Context, tx *gorm.DB, userID string) error
	DeleteByAlbum(ctx context.Context, tx *gorm.DB, albumID string) error
	// DeleteByArtist removes the likes on every album owned by the artist.
	DeleteByArtist(ctx context.Context, tx *gorm.DB, artistID string) error
}

// GORMLikeRepository is a GORM implementation of LikeRepository.
type GORMLikeRepository struct {
	db *gorm.DB
}

// NewGORMLikeRepository creates a new instance of GORMLikeRepository.
func NewGORMLikeRepository(db *gorm.DB) *GORMLikeRepository {
	return &GORMLikeRepository{db: db}
}

func (r *GORMLikeRepository) Create(ctx context.Context, tx *gorm.DB, like *models.Like) (bool, error) {
	stamp(&like.CreatedAt)
	res := conn(r.db, tx).WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(like)
	if res.Error != nil {
		return false, fmt.Errorf("failed to like album %s: %w", like.AlbumID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *GORMLikeRepository) Delete(ctx context.Context, tx *gorm.DB, userID, albumID string) (bool, error) {
	res := conn(r.db, tx).WithContext(ctx).
		Where("user_id = ? AND album_id = ?", userID, albumID).
		Delete(&models.Like{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to unlike album %s: %w", albumID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *GORMLikeRepository) Exists(ctx context.Context, tx *gorm.DB, userID, albumID string) (bool, error) {
	var n int64
	err := conn(r.db, tx).WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND album_id = ?", userID, albumID).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}
	return n > 0, nil
}

func (r *GORMLikeRepository) DeleteByUser(ctx context.Context, tx *gorm.DB, userID string) error {
	if err := conn(r.db, tx).WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Like{}).Error; err != nil {
		return fmt.Errorf("failed to delete likes of %s: %w", userID, err)
	}
	return nil
}

func (r *GORMLikeRepository) DeleteByAlbum(ctx context.Context, tx *gorm.DB, albumID string) error {
	if err := conn(r.db, tx).WithContext(ctx).Where("album_id = ?", albumID).Delete(&models.Like{}).Error; err != nil {
		return fmt.Errorf("failed to delete likes on %s: %w", albumID, err)
	}
	return nil
}

func (r *GORMLikeRepository) DeleteByArtist(ctx context.Context, tx *gorm.DB, artistID string) error {
	db := conn(r.db, tx).WithContext(ctx)
	albums := db.Model(&models.Album{}).Select("id").Where("artist_id = ?", artistID)
	if err := db.Where("album_id IN (?)", albums).Delete(&models.Like{}).Error; err != nil {
		return fmt.Errorf("failed to delete likes on albums of %s: %w", artistID, err)
	}
	return nil
}
