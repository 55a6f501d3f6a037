package repositories

import (
	"context"
	"fmt"

	"sonority/internal/models"

	"gorm.io/gorm"
)

// artistColumns selects an artist together with its follower count.
const artistColumns = "artists.*, (SELECT COUNT(*) FROM follows fc WHERE fc.artist_id = artists.id) AS follower_count"

// GORMArtistRepository is a GORM implementation of ArtistRepository.
type GORMArtistRepository struct {
	db *gorm.DB
}

// NewGORMArtistRepository creates a new instance of GORMArtistRepository.
func NewGORMArtistRepository(db *gorm.DB) *GORMArtistRepository {
	return &GORMArtistRepository{db: db}
}

// Create inserts a new artist profile. The ID must already be set to the owning user's ID.
func (r *GORMArtistRepository) Create(ctx context.Context, tx *gorm.DB, artist *models.Artist) error {
	if artist.ID == "" {
		return fmt.Errorf("failed to create artist: missing user id")
	}
	stamp(&artist.CreatedAt)
	stamp(&artist.UpdatedAt)
	if err := conn(r.db, tx).WithContext(ctx).Create(artist).Error; err != nil {
		return fmt.Errorf("failed to create artist: %w", translateWriteError(err, "name"))
	}
	return nil
}

// GetByID retrieves an artist by ID.
func (r *GORMArtistRepository) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Artist, error) {
	return r.getWhere(ctx, tx, "artists.id = ?", id)
}

// GetByName retrieves an artist by its unique name.
func (r *GORMArtistRepository) GetByName(ctx context.Context, tx *gorm.DB, name string) (*models.Artist, error) {
	return r.getWhere(ctx, tx, "artists.name = ?", name)
}

func (r *GORMArtistRepository) getWhere(ctx context.Context, tx *gorm.DB, query string, arg string) (*models.Artist, error) {
	var artist models.Artist
	err := conn(r.db, tx).WithContext(ctx).
		Model(&models.Artist{}).
		Select(artistColumns).
		Where(query, arg).
		Take(&artist).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get artist: %w", translateReadError(err))
	}
	return &artist, nil
}

// Exists reports whether the user with the given ID has an artist profile.
func (r *GORMArtistRepository) Exists(ctx context.Context, tx *gorm.DB, id string) (bool, error) {
	var n int64
	if err := conn(r.db, tx).WithContext(ctx).Model(&models.Artist{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("failed to check artist %s: %w", id, err)
	}
	return n > 0, nil
}

// NameExists reports whether an artist already uses the name.
func (r *GORMArtistRepository) NameExists(ctx context.Context, tx *gorm.DB, name string) (bool, error) {
	var n int64
	if err := conn(r.db, tx).WithContext(ctx).Model(&models.Artist{}).Where("name = ?", name).Count(&n).Error; err != nil {
		return false, fmt.Errorf("failed to check artist name: %w", err)
	}
	return n > 0, nil
}

// Update writes every stored column of the artist.
func (r *GORMArtistRepository) Update(ctx context.Context, tx *gorm.DB, artist *models.Artist) error {
	if err := conn(r.db, tx).WithContext(ctx).Save(artist).Error; err != nil {
		return fmt.Errorf("failed to update artist %s: %w", artist.ID, translateWriteError(err, "name"))
	}
	return nil
}

// Delete removes the artist row.
func (r *GORMArtistRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	res := conn(r.db, tx).WithContext(ctx).Delete(&models.Artist{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete artist %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("failed to delete artist %s: %w", id, ErrNotFound)
	}
	return nil
}

// CountFollowers counts the follow edges pointing at the artist.
func (r *GORMArtistRepository) CountFollowers(ctx context.Context, tx *gorm.DB, id string) (int64, error) {
	var n int64
	if err := conn(r.db, tx).WithContext(ctx).Model(&models.Follow{}).Where("artist_id = ?", id).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count followers of %s: %w", id, err)
	}
	return n, nil
}

// ListFollowedBy lists the artists followed by the user, most recently followed first.
func (r *GORMArtistRepository) ListFollowedBy(ctx context.Context, tx *gorm.DB, userID string, page models.Page) ([]models.Artist, error) {
	artists := make([]models.Artist, 0, page.Take)
	err := conn(r.db, tx).WithContext(ctx).
		Model(&models.Artist{}).
		Select(artistColumns).
		Joins("JOIN follows ON follows.artist_id = artists.id").
		Where("follows.follower_id = ?", userID).
		Order("follows.created_at DESC").
		Offset(page.Skip).
		Limit(page.Take).
		Find(&artists).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list artists followed by %s: %w", userID, err)
	}
	return artists, nil
}
