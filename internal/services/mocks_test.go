package services_test

import (
	"context"

	"sonority/internal/models"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func ctxb() context.Context { return context.Background() }

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	args := m.Called(ctx, tx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.User, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error) {
	args := m.Called(ctx, tx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	args := m.Called(ctx, tx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) UsernameExists(ctx context.Context, tx *gorm.DB, username string) (bool, error) {
	args := m.Called(ctx, tx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, tx *gorm.DB, user *models.User) error {
	args := m.Called(ctx, tx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

// MockAlbumRepository is a mock implementation of repositories.AlbumRepository
type MockAlbumRepository struct {
	mock.Mock
}

func (m *MockAlbumRepository) Create(ctx context.Context, tx *gorm.DB, album *models.Album) error {
	args := m.Called(ctx, tx, album)
	return args.Error(0)
}

func (m *MockAlbumRepository) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Album, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Album), args.Error(1)
}

func (m *MockAlbumRepository) NameExists(ctx context.Context, tx *gorm.DB, artistID, name, excludeID string) (bool, error) {
	args := m.Called(ctx, tx, artistID, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAlbumRepository) Update(ctx context.Context, tx *gorm.DB, album *models.Album) error {
	args := m.Called(ctx, tx, album)
	return args.Error(0)
}

func (m *MockAlbumRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

func (m *MockAlbumRepository) ListByArtist(ctx context.Context, tx *gorm.DB, artistID string, filter models.AlbumFilter, page models.Page) ([]models.Album, error) {
	args := m.Called(ctx, tx, artistID, filter, page)
	return args.Get(0).([]models.Album), args.Error(1)
}

func (m *MockAlbumRepository) ListLikedBy(ctx context.Context, tx *gorm.DB, userID string, page models.Page) ([]models.Album, error) {
	args := m.Called(ctx, tx, userID, page)
	return args.Get(0).([]models.Album), args.Error(1)
}

func (m *MockAlbumRepository) CoverKeysByArtist(ctx context.Context, tx *gorm.DB, artistID string) ([]string, error) {
	args := m.Called(ctx, tx, artistID)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAlbumRepository) DeleteByArtist(ctx context.Context, tx *gorm.DB, artistID string) error {
	args := m.Called(ctx, tx, artistID)
	return args.Error(0)
}

// MockArtistRepository is a mock implementation of repositories.ArtistRepository
type MockArtistRepository struct {
	mock.Mock
}

func (m *MockArtistRepository) Create(ctx context.Context, tx *gorm.DB, artist *models.Artist) error {
	args := m.Called(ctx, tx, artist)
	return args.Error(0)
}

func (m *MockArtistRepository) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Artist, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Artist), args.Error(1)
}

func (m *MockArtistRepository) GetByName(ctx context.Context, tx *gorm.DB, name string) (*models.Artist, error) {
	args := m.Called(ctx, tx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Artist), args.Error(1)
}

func (m *MockArtistRepository) Exists(ctx context.Context, tx *gorm.DB, id string) (bool, error) {
	args := m.Called(ctx, tx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockArtistRepository) NameExists(ctx context.Context, tx *gorm.DB, name string) (bool, error) {
	args := m.Called(ctx, tx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockArtistRepository) Update(ctx context.Context, tx *gorm.DB, artist *models.Artist) error {
	args := m.Called(ctx, tx, artist)
	return args.Error(0)
}

func (m *MockArtistRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

func (m *MockArtistRepository) CountFollowers(ctx context.Context, tx *gorm.DB, id string) (int64, error) {
	args := m.Called(ctx, tx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockArtistRepository) ListFollowedBy(ctx context.Context, tx *gorm.DB, userID string, page models.Page) ([]models.Artist, error) {
	args := m.Called(ctx, tx, userID, page)
	return args.Get(0).([]models.Artist), args.Error(1)
}
