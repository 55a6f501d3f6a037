package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"sonority/internal/models"
	"sonority/internal/repositories"
	"sonority/internal/storage"

	"github.com/disintegration/imaging"
	"gorm.io/gorm"
)

const (
	coverSize    = 600
	coverQuality = 85
	coverType    = "image/jpeg"
)

// AlbumService manages artists' album catalogs. An album is a draft until it is
// released; once released its name and type are frozen.
type AlbumService struct {
	base
}

// NewAlbumService creates a new AlbumService.
func NewAlbumService(deps Dependencies) *AlbumService {
	return &AlbumService{base: newBase(deps, "AlbumService")}
}

// CreateAlbum creates a draft album owned by the artist.
func (s *AlbumService) CreateAlbum(ctx context.Context, artist *models.Artist, req models.CreateAlbumRequest) (*models.Album, error) {
	if !req.AlbumType.Valid() {
		return nil, ErrInvalidAlbumType
	}
	var album *models.Album
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		taken, err := s.store.Albums.NameExists(ctx, tx, artist.ID, req.Name, "")
		if err != nil {
			return err
		}
		if taken {
			return ErrAlbumNameInUse
		}

		now := s.now()
		a := &models.Album{
			Name:      req.Name,
			AlbumType: req.AlbumType,
			ArtistID:  artist.ID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.store.Albums.Create(ctx, tx, a); err != nil {
			return albumConflict(err)
		}
		album = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emit(EventAlbumCreated, map[string]string{"album_id": album.ID, "artist_id": artist.ID})
	return album, nil
}

// GetAlbum returns the album if the user may see it. Drafts of other artists are
// reported as missing.
func (s *AlbumService) GetAlbum(ctx context.Context, viewer *models.User, albumID string) (*models.Album, error) {
	var album *models.Album
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		album, err = visibleAlbum(ctx, s.store, tx, viewer.ID, albumID)
		return err
	})
	return album, err
}

// UpdateAlbum applies a partial update to a draft album.
func (s *AlbumService) UpdateAlbum(ctx context.Context, artist *models.Artist, albumID string, req models.UpdateAlbumRequest) (*models.Album, error) {
	if req.AlbumType != nil && !req.AlbumType.Valid() {
		return nil, ErrInvalidAlbumType
	}
	var album *models.Album
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		a, err := ownedAlbum(ctx, s.store, tx, artist, albumID)
		if err != nil {
			return err
		}
		if a.Released {
			return ErrReleasedAlbumImmutable
		}
		album = a
		if req.Empty() {
			return nil
		}

		if req.Name != nil && *req.Name != a.Name {
			taken, err := s.store.Albums.NameExists(ctx, tx, artist.ID, *req.Name, a.ID)
			if err != nil {
				return err
			}
			if taken {
				return ErrAlbumNameInUse
			}
			a.Name = *req.Name
		}
		if req.AlbumType != nil {
			a.AlbumType = *req.AlbumType
		}
		a.UpdatedAt = s.now()
		return albumConflict(s.store.Albums.Update(ctx, tx, a))
	})
	if err != nil {
		return nil, err
	}
	return album, nil
}

// ReleaseAlbum publishes a draft and stamps today's date as its release date.
func (s *AlbumService) ReleaseAlbum(ctx context.Context, artist *models.Artist, albumID string) (*models.Album, error) {
	var album *models.Album
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		a, err := ownedAlbum(ctx, s.store, tx, artist, albumID)
		if err != nil {
			return err
		}
		if a.Released {
			return ErrAlbumAlreadyReleased
		}
		now := s.now()
		day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		a.Released = true
		a.ReleaseDate = &day
		a.UpdatedAt = now
		if err := s.store.Albums.Update(ctx, tx, a); err != nil {
			return err
		}
		album = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("album released", "album_id", album.ID, "artist_id", artist.ID)
	s.emit(EventAlbumReleased, map[string]string{"album_id": album.ID, "artist_id": artist.ID})
	return album, nil
}

// DeleteAlbum removes the album, released or not, with its likes and cover.
func (s *AlbumService) DeleteAlbum(ctx context.Context, artist *models.Artist, albumID string) error {
	var cover string
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		a, err := ownedAlbum(ctx, s.store, tx, artist, albumID)
		if err != nil {
			return err
		}
		if a.HasCover() {
			cover = *a.CoverKey
		}
		if err := s.store.Likes.DeleteByAlbum(ctx, tx, a.ID); err != nil {
			return err
		}
		return s.store.Albums.Delete(ctx, tx, a.ID)
	})
	if err != nil {
		return err
	}

	s.dropBlobs(ctx, cover)
	s.emit(EventAlbumDeleted, map[string]string{"album_id": albumID, "artist_id": artist.ID})
	return nil
}

// ListAlbums pages through an artist's albums. Released albums are ordered by
// release date, drafts and unfiltered listings by last update, newest first.
func (s *AlbumService) ListAlbums(ctx context.Context, artistID string, filter models.AlbumFilter, page models.Page) ([]models.Album, error) {
	if filter.ReleasedOnly && filter.UnreleasedOnly {
		return nil, ErrConflictingFilters
	}
	if !page.Valid() {
		return nil, ErrInvalidPage
	}
	var albums []models.Album
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		exists, err := s.store.Artists.Exists(ctx, tx, artistID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrArtistNotFound
		}
		albums, err = s.store.Albums.ListByArtist(ctx, tx, artistID, filter, page)
		return err
	})
	return albums, err
}

// SetCover stores a new cover image for the album, normalised to a square JPEG,
// and drops the previous one.
func (s *AlbumService) SetCover(ctx context.Context, artist *models.Artist, albumID string, image []byte) (*models.Album, error) {
	if s.blobs == nil {
		return nil, errors.New("cover storage is not configured")
	}
	data, err := normalizeCover(image)
	if err != nil {
		s.log.Debug("rejected cover upload", "album_id", albumID, "error", err)
		return nil, ErrInvalidImage
	}
	key, err := s.blobs.Put(ctx, data, coverType)
	if err != nil {
		return nil, err
	}

	var (
		album    *models.Album
		previous string
	)
	err = s.store.Transaction(ctx, func(tx *gorm.DB) error {
		a, err := ownedAlbum(ctx, s.store, tx, artist, albumID)
		if err != nil {
			return err
		}
		if a.HasCover() {
			previous = *a.CoverKey
		}
		a.CoverKey = &key
		a.UpdatedAt = s.now()
		if err := s.store.Albums.Update(ctx, tx, a); err != nil {
			return err
		}
		album = a
		return nil
	})
	if err != nil {
		s.dropBlobs(ctx, key)
		return nil, err
	}

	s.dropBlobs(ctx, previous)
	return album, nil
}

// Cover returns the JPEG cover of an album visible to the user.
func (s *AlbumService) Cover(ctx context.Context, viewer *models.User, albumID string) ([]byte, error) {
	var key string
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		a, err := visibleAlbum(ctx, s.store, tx, viewer.ID, albumID)
		if err != nil {
			return err
		}
		if !a.HasCover() {
			return ErrCoverNotFound
		}
		key = *a.CoverKey
		return nil
	})
	if err != nil {
		return nil, err
	}
	if s.blobs == nil {
		return nil, ErrCoverNotFound
	}

	data, err := s.blobs.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrCoverNotFound
	}
	return data, err
}

// ownedAlbum loads an album the artist is about to modify.
func ownedAlbum(ctx context.Context, store *repositories.Store, tx *gorm.DB, artist *models.Artist, albumID string) (*models.Album, error) {
	a, err := store.Albums.GetByID(ctx, tx, albumID)
	if err != nil {
		return nil, notFound(err, ErrAlbumNotFound)
	}
	if a.ArtistID != artist.ID {
		return nil, ErrAlbumNotOwned
	}
	return a, nil
}

// visibleAlbum loads an album the user is about to read or like.
func visibleAlbum(ctx context.Context, store *repositories.Store, tx *gorm.DB, userID, albumID string) (*models.Album, error) {
	a, err := store.Albums.GetByID(ctx, tx, albumID)
	if err != nil {
		return nil, notFound(err, ErrAlbumNotFound)
	}
	if !a.VisibleTo(userID) {
		return nil, ErrAlbumNotFound
	}
	return a, nil
}

// normalizeCover crops the image to a centred square and encodes it as JPEG.
func normalizeCover(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	resized := imaging.Fill(img, coverSize, coverSize, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(coverQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

func albumConflict(err error) error {
	if errors.Is(err, repositories.ErrDuplicateEntry) {
		return ErrAlbumNameInUse
	}
	return err
}
