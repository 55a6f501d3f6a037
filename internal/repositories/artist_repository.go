package repositories

import (
	"context"

	"sonority/internal/models"

	"gorm.io/gorm"
)

// ArtistRepository defines the interface for artist data access. Every artist
// returned carries its current follower count.
type ArtistRepository interface {
	Create(ctx context.Context, tx *gorm.DB, artist *models.Artist) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Artist, error)
	GetByName(ctx context.Context, tx *gorm.DB, name string) (*models.Artist, error)
	Exists(ctx context.Context, tx *gorm.DB, id string) (bool, error)
	NameExists(ctx context.Context, tx *gorm.DB, name string) (bool, error)
	Update(ctx context.Context, tx *gorm.DB, artist *models.Artist) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
	CountFollowers(ctx context.Context, tx *gorm.DB, id string) (int64, error)
	ListFollowedBy(ctx context.Context, tx *gorm.DB, userID string, page models.Page) ([]models.Artist, error)
}
