package services

import (
	"context"
	"errors"

	"sonority/internal/models"
	"sonority/internal/repositories"

	"gorm.io/gorm"
)

// ArtistService manages artist profiles.
type ArtistService struct {
	base
}

// NewArtistService creates a new ArtistService.
func NewArtistService(deps Dependencies) *ArtistService {
	return &ArtistService{base: newBase(deps, "ArtistService")}
}

// RegisterArtist opens an artist profile for the user.
func (s *ArtistService) RegisterArtist(ctx context.Context, user *models.User, req models.CreateArtistRequest) (*models.Artist, error) {
	var artist *models.Artist
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		exists, err := s.store.Artists.Exists(ctx, tx, user.ID)
		if err != nil {
			return err
		}
		if exists {
			return ErrArtistExists
		}
		taken, err := s.store.Artists.NameExists(ctx, tx, req.Name)
		if err != nil {
			return err
		}
		if taken {
			return ErrArtistNameInUse
		}

		now := s.now()
		a := &models.Artist{
			ID:          user.ID,
			Name:        req.Name,
			Description: req.Description,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.store.Artists.Create(ctx, tx, a); err != nil {
			return artistConflict(err)
		}
		artist = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("artist registered", "artist_id", artist.ID)
	s.emit(EventArtistRegistered, map[string]string{"artist_id": artist.ID, "name": artist.Name})
	return artist, nil
}

// CurrentArtist returns the artist profile of the user.
func (s *ArtistService) CurrentArtist(ctx context.Context, user *models.User) (*models.Artist, error) {
	var artist *models.Artist
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		a, err := s.store.Artists.GetByID(ctx, tx, user.ID)
		if err != nil {
			return notFound(err, ErrNotArtist)
		}
		artist = a
		return nil
	})
	return artist, err
}

// UpdateArtist applies a partial update. The name of a verified artist cannot change.
func (s *ArtistService) UpdateArtist(ctx context.Context, artistID string, req models.UpdateArtistRequest) (*models.Artist, error) {
	var artist *models.Artist
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		a, err := s.store.Artists.GetByID(ctx, tx, artistID)
		if err != nil {
			return notFound(err, ErrArtistNotFound)
		}
		artist = a
		if req.Empty() {
			return nil
		}

		if req.Name != nil && *req.Name != a.Name {
			if a.IsVerified {
				return ErrVerifiedArtistRename
			}
			taken, err := s.store.Artists.NameExists(ctx, tx, *req.Name)
			if err != nil {
				return err
			}
			if taken {
				return ErrArtistNameInUse
			}
			a.Name = *req.Name
		}
		if req.Description != nil {
			a.Description = req.Description
		}
		a.UpdatedAt = s.now()
		return artistConflict(s.store.Artists.Update(ctx, tx, a))
	})
	if err != nil {
		return nil, err
	}
	return artist, nil
}

// Verify marks the artist as verified. Verification cannot be repeated or undone.
func (s *ArtistService) Verify(ctx context.Context, artistID string) (*models.Artist, error) {
	var artist *models.Artist
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		a, err := s.store.Artists.GetByID(ctx, tx, artistID)
		if err != nil {
			return notFound(err, ErrArtistNotFound)
		}
		if a.IsVerified {
			return ErrArtistAlreadyVerified
		}
		a.IsVerified = true
		a.UpdatedAt = s.now()
		if err := s.store.Artists.Update(ctx, tx, a); err != nil {
			return err
		}
		artist = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("artist verified", "artist_id", artist.ID)
	s.emit(EventArtistVerified, map[string]string{"artist_id": artist.ID})
	return artist, nil
}

// Lookup resolves an artist by exactly one of id or name.
func (s *ArtistService) Lookup(ctx context.Context, id, name string) (*models.Artist, error) {
	if (id == "") == (name == "") {
		return nil, ErrBadLookupParameters
	}
	var artist *models.Artist
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		var (
			a   *models.Artist
			err error
		)
		if id != "" {
			a, err = s.store.Artists.GetByID(ctx, tx, id)
		} else {
			a, err = s.store.Artists.GetByName(ctx, tx, name)
		}
		if err != nil {
			return notFound(err, ErrArtistNotFound)
		}
		artist = a
		return nil
	})
	return artist, err
}

// FollowerCount counts the artist's followers at read time.
func (s *ArtistService) FollowerCount(ctx context.Context, artistID string) (int64, error) {
	var count int64
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		exists, err := s.store.Artists.Exists(ctx, tx, artistID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrArtistNotFound
		}
		count, err = s.store.Artists.CountFollowers(ctx, tx, artistID)
		return err
	})
	return count, err
}

// DeleteArtist removes the artist profile, leaving the user account in place.
func (s *ArtistService) DeleteArtist(ctx context.Context, artistID string) error {
	var covers []string
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		exists, err := s.store.Artists.Exists(ctx, tx, artistID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrArtistNotFound
		}
		covers, err = purgeArtist(ctx, s.store, tx, artistID)
		return err
	})
	if err != nil {
		return err
	}

	s.dropBlobs(ctx, covers...)
	s.log.Info("artist deleted", "artist_id", artistID)
	s.emit(EventArtistDeleted, map[string]string{"artist_id": artistID})
	return nil
}

// purgeArtist deletes an artist with its albums, the likes on them and the follows
// pointing at it. It returns the cover blobs that are no longer referenced.
func purgeArtist(ctx context.Context, store *repositories.Store, tx *gorm.DB, artistID string) ([]string, error) {
	covers, err := store.Albums.CoverKeysByArtist(ctx, tx, artistID)
	if err != nil {
		return nil, err
	}
	if err := store.Likes.DeleteByArtist(ctx, tx, artistID); err != nil {
		return nil, err
	}
	if err := store.Albums.DeleteByArtist(ctx, tx, artistID); err != nil {
		return nil, err
	}
	if err := store.Follows.DeleteByArtist(ctx, tx, artistID); err != nil {
		return nil, err
	}
	if err := store.Artists.Delete(ctx, tx, artistID); err != nil {
		return nil, err
	}
	return covers, nil
}

// artistConflict maps a store-level unique violation on artists to the same
// error the pre-checks return.
func artistConflict(err error) error {
	if !errors.Is(err, repositories.ErrDuplicateEntry) {
		return err
	}
	var dup *repositories.DuplicateEntryError
	if errors.As(err, &dup) && dup.Column == "name" {
		return ErrArtistNameInUse
	}
	return ErrArtistExists
}
