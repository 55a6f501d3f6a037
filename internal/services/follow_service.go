package services

import (
	"context"

	"sonority/internal/models"

	"gorm.io/gorm"
)

// FollowService maintains the follow graph between users and artists.
type FollowService struct {
	base
}

// NewFollowService creates a new FollowService.
func NewFollowService(deps Dependencies) *FollowService {
	return &FollowService{base: newBase(deps, "FollowService")}
}

// Follow makes the user follow the artist. It reports false when the user
// already followed the artist.
func (s *FollowService) Follow(ctx context.Context, user *models.User, artistID string) (bool, error) {
	if user.ID == artistID {
		return false, ErrCannotFollowSelf
	}
	var created bool
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.requireArtist(ctx, tx, artistID); err != nil {
			return err
		}
		var err error
		created, err = s.store.Follows.Create(ctx, tx, &models.Follow{
			FollowerID: user.ID,
			ArtistID:   artistID,
			CreatedAt:  s.now(),
		})
		return err
	})
	if err != nil {
		return false, err
	}
	if created {
		s.emit(EventArtistFollowed, map[string]string{"user_id": user.ID, "artist_id": artistID})
	}
	return created, nil
}

// Unfollow removes the follow edge. It reports false when there was none.
func (s *FollowService) Unfollow(ctx context.Context, user *models.User, artistID string) (bool, error) {
	var removed bool
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.requireArtist(ctx, tx, artistID); err != nil {
			return err
		}
		var err error
		removed, err = s.store.Follows.Delete(ctx, tx, user.ID, artistID)
		return err
	})
	if err != nil {
		return false, err
	}
	if removed {
		s.emit(EventArtistUnfollowed, map[string]string{"user_id": user.ID, "artist_id": artistID})
	}
	return removed, nil
}

// IsFollowing reports whether the user follows the artist.
func (s *FollowService) IsFollowing(ctx context.Context, user *models.User, artistID string) (bool, error) {
	var following bool
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		following, err = s.store.Follows.Exists(ctx, tx, user.ID, artistID)
		return err
	})
	return following, err
}

// ListFollowedArtists pages through the artists the user follows, most recently
// followed first.
func (s *FollowService) ListFollowedArtists(ctx context.Context, user *models.User, page models.Page) ([]models.Artist, error) {
	if !page.Valid() {
		return nil, ErrInvalidPage
	}
	var artists []models.Artist
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		artists, err = s.store.Artists.ListFollowedBy(ctx, tx, user.ID, page)
		return err
	})
	return artists, err
}

func (s *FollowService) requireArtist(ctx context.Context, tx *gorm.DB, artistID string) error {
	exists, err := s.store.Artists.Exists(ctx, tx, artistID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrArtistNotFound
	}
	return nil
}
