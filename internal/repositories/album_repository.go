package repositories

import (
	"context"

	"sonority/internal/models"

	"gorm.io/gorm"
)

// AlbumRepository defines the interface for album data access.
type AlbumRepository interface {
	Create(ctx context.Context, tx *gorm.DB, album *models.Album) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Album, error)
	// NameExists reports whether the artist owns another album with the name.
	// excludeID, when not empty, is ignored in the check.
	NameExists(ctx context.Context, tx *gorm.DB, artistID, name, excludeID string) (bool, error)
	Update(ctx context.Context, tx *gorm.DB, album *models.Album) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
	ListByArtist(ctx context.Context, tx *gorm.DB, artistID string, filter models.AlbumFilter, page models.Page) ([]models.Album, error)
	ListLikedBy(ctx context.Context, tx *gorm.DB, userID string, page models.Page) ([]models.Album, error)
	CoverKeysByArtist(ctx context.Context, tx *gorm.DB, artistID string) ([]string, error)
	DeleteByArtist(ctx context.Context, tx *gorm.DB, artistID string) error
}
