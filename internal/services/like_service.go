package services

import (
	"context"

	"sonority/internal/models"

	"gorm.io/gorm"
)

// LikeService records which albums users like.
type LikeService struct {
	base
}

// NewLikeService creates a new LikeService.
func NewLikeService(deps Dependencies) *LikeService {
	return &LikeService{base: newBase(deps, "LikeService")}
}

// Like adds the album to the user's likes. It reports false when it was already liked.
func (s *LikeService) Like(ctx context.Context, user *models.User, albumID string) (bool, error) {
	var created bool
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		if _, err := visibleAlbum(ctx, s.store, tx, user.ID, albumID); err != nil {
			return err
		}
		var err error
		created, err = s.store.Likes.Create(ctx, tx, &models.Like{
			UserID:    user.ID,
			AlbumID:   albumID,
			CreatedAt: s.now(),
		})
		return err
	})
	if err != nil {
		return false, err
	}
	if created {
		s.emit(EventAlbumLiked, map[string]string{"user_id": user.ID, "album_id": albumID})
	}
	return created, nil
}

// Unlike removes the album from the user's likes. It reports false when it was not liked.
func (s *LikeService) Unlike(ctx context.Context, user *models.User, albumID string) (bool, error) {
	var removed bool
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		if _, err := visibleAlbum(ctx, s.store, tx, user.ID, albumID); err != nil {
			return err
		}
		var err error
		removed, err = s.store.Likes.Delete(ctx, tx, user.ID, albumID)
		return err
	})
	if err != nil {
		return false, err
	}
	if removed {
		s.emit(EventAlbumUnliked, map[string]string{"user_id": user.ID, "album_id": albumID})
	}
	return removed, nil
}

// IsLiked reports whether the user likes the album.
func (s *LikeService) IsLiked(ctx context.Context, user *models.User, albumID string) (bool, error) {
	var liked bool
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		liked, err = s.store.Likes.Exists(ctx, tx, user.ID, albumID)
		return err
	})
	return liked, err
}

// ListLikedAlbums pages through the user's liked albums, most recent like first.
func (s *LikeService) ListLikedAlbums(ctx context.Context, user *models.User, page models.Page) ([]models.Album, error) {
	if !page.Valid() {
		return nil, ErrInvalidPage
	}
	var albums []models.Album
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		albums, err = s.store.Albums.ListLikedBy(ctx, tx, user.ID, page)
		return err
	})
	return albums, err
}
