package repositories

import (
	"context"
	"fmt"

	"sonority/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMAlbumRepository is a GORM implementation of AlbumRepository.
type GORMAlbumRepository struct {
	db *gorm.DB
}

// NewGORMAlbumRepository creates a new instance of GORMAlbumRepository.
func NewGORMAlbumRepository(db *gorm.DB) *GORMAlbumRepository {
	return &GORMAlbumRepository{db: db}
}

// Create creates a new album in the database.
func (r *GORMAlbumRepository) Create(ctx context.Context, tx *gorm.DB, album *models.Album) error {
	if album.ID == "" {
		album.ID = uuid.New().String()
	}
	stamp(&album.CreatedAt)
	stamp(&album.UpdatedAt)
	if err := conn(r.db, tx).WithContext(ctx).Create(album).Error; err != nil {
		return fmt.Errorf("failed to create album: %w", translateWriteError(err, "name"))
	}
	return nil
}

// GetByID retrieves an album by its ID.
func (r *GORMAlbumRepository) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Album, error) {
	var album models.Album
	if err := conn(r.db, tx).WithContext(ctx).Take(&album, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get album %s: %w", id, translateReadError(err))
	}
	return &album, nil
}

func (r *GORMAlbumRepository) NameExists(ctx context.Context, tx *gorm.DB, artistID, name, excludeID string) (bool, error) {
	q := conn(r.db, tx).WithContext(ctx).
		Model(&models.Album{}).
		Where("artist_id = ? AND name = ?", artistID, name)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, fmt.Errorf("failed to check album name: %w", err)
	}
	return n > 0, nil
}

// Update writes every column of the album.
func (r *GORMAlbumRepository) Update(ctx context.Context, tx *gorm.DB, album *models.Album) error {
	if err := conn(r.db, tx).WithContext(ctx).Save(album).Error; err != nil {
		return fmt.Errorf("failed to update album %s: %w", album.ID, translateWriteError(err, "name"))
	}
	return nil
}

// Delete removes the album row.
func (r *GORMAlbumRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	res := conn(r.db, tx).WithContext(ctx).Delete(&models.Album{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete album %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("failed to delete album %s: %w", id, ErrNotFound)
	}
	return nil
}

// ListByArtist lists the artist's albums. Released listings are ordered by release
// date, everything else by last update, newest first.
func (r *GORMAlbumRepository) ListByArtist(ctx context.Context, tx *gorm.DB, artistID string, filter models.AlbumFilter, page models.Page) ([]models.Album, error) {
	q := conn(r.db, tx).WithContext(ctx).Where("artist_id = ?", artistID)
	switch {
	case filter.ReleasedOnly:
		q = q.Where("released = ?", true).Order("release_date DESC").Order("updated_at DESC")
	case filter.UnreleasedOnly:
		q = q.Where("released = ?", false).Order("updated_at DESC")
	default:
		q = q.Order("updated_at DESC")
	}

	albums := make([]models.Album, 0, page.Take)
	if err := q.Order("id").Offset(page.Skip).Limit(page.Take).Find(&albums).Error; err != nil {
		return nil, fmt.Errorf("failed to list albums of %s: %w", artistID, err)
	}
	return albums, nil
}

// ListLikedBy lists the albums the user liked, most recent like first.
func (r *GORMAlbumRepository) ListLikedBy(ctx context.Context, tx *gorm.DB, userID string, page models.Page) ([]models.Album, error) {
	albums := make([]models.Album, 0, page.Take)
	err := conn(r.db, tx).WithContext(ctx).
		Select("albums.*").
		Joins("JOIN album_likes ON album_likes.album_id = albums.id").
		Where("album_likes.user_id = ?", userID).
		Order("album_likes.created_at DESC").
		Offset(page.Skip).
		Limit(page.Take).
		Find(&albums).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list albums liked by %s: %w", userID, err)
	}
	return albums, nil
}

// CoverKeysByArtist returns the blob ids of every cover uploaded by the artist.
func (r *GORMAlbumRepository) CoverKeysByArtist(ctx context.Context, tx *gorm.DB, artistID string) ([]string, error) {
	var keys []string
	err := conn(r.db, tx).WithContext(ctx).
		Model(&models.Album{}).
		Where("artist_id = ? AND cover_key IS NOT NULL", artistID).
		Pluck("cover_key", &keys).Error
	if err != nil {
		return nil, fmt.Errorf("failed to collect covers of %s: %w", artistID, err)
	}
	return keys, nil
}

// DeleteByArtist removes every album owned by the artist.
func (r *GORMAlbumRepository) DeleteByArtist(ctx context.Context, tx *gorm.DB, artistID string) error {
	if err := conn(r.db, tx).WithContext(ctx).Where("artist_id = ?", artistID).Delete(&models.Album{}).Error; err != nil {
		return fmt.Errorf("failed to delete albums of %s: %w", artistID, err)
	}
	return nil
}
