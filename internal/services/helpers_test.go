package services_test

import (
	"encoding/json"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"sonority/internal/database"
	"sonority/internal/models"
	"sonority/internal/repositories"
	"sonority/internal/services"
	"sonority/internal/storage"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// steppingClock returns a strictly increasing time on every call.
type steppingClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *steppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

// recordingPublisher keeps every published event in memory.
type recordingPublisher struct {
	mu     sync.Mutex
	events []services.Event
}

func (p *recordingPublisher) Publish(routingKey string, body []byte) error {
	var evt services.Event
	if err := json.Unmarshal(body, &evt); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type env struct {
	store    *repositories.Store
	blobs    *storage.LocalStore
	fs       afero.Fs
	events   *recordingPublisher
	accounts *services.AccountService
	artists  *services.ArtistService
	follows  *services.FollowService
	albums   *services.AlbumService
	likes    *services.LikeService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db, err := database.Open("sqlite", filepath.Join(t.TempDir(), "services.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.Migrate(db))

	fs := afero.NewMemMapFs()
	blobs, err := storage.NewLocalStore(fs, "/blobs")
	require.NoError(t, err)

	store := repositories.NewStore(db)
	events := &recordingPublisher{}
	clock := &steppingClock{now: time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)}
	deps := services.Dependencies{Store: store, Events: events, Blobs: blobs, Clock: clock.Now}

	return &env{
		store:    store,
		blobs:    blobs,
		fs:       fs,
		events:   events,
		accounts: services.NewAccountService(deps, services.NewBcryptHasher(bcrypt.MinCost)),
		artists:  services.NewArtistService(deps),
		follows:  services.NewFollowService(deps),
		albums:   services.NewAlbumService(deps),
		likes:    services.NewLikeService(deps),
	}
}

func (e *env) register(t *testing.T, name string) *models.User {
	t.Helper()
	u, err := e.accounts.Register(ctxb(), models.RegisterRequest{
		Email:    name + "@example.com",
		Username: name,
		FullName: "Test " + name,
		Password: "password-" + name,
	})
	require.NoError(t, err)
	return u
}

func (e *env) artist(t *testing.T, name string) (*models.User, *models.Artist) {
	t.Helper()
	u := e.register(t, name)
	a, err := e.artists.RegisterArtist(ctxb(), u, models.CreateArtistRequest{Name: name})
	require.NoError(t, err)
	return u, a
}

func (e *env) album(t *testing.T, a *models.Artist, name string) *models.Album {
	t.Helper()
	album, err := e.albums.CreateAlbum(ctxb(), a, models.CreateAlbumRequest{Name: name, AlbumType: models.AlbumTypeAlbum})
	require.NoError(t, err)
	return album
}

func (e *env) released(t *testing.T, a *models.Artist, name string) *models.Album {
	t.Helper()
	album := e.album(t, a, name)
	album, err := e.albums.ReleaseAlbum(ctxb(), a, album.ID)
	require.NoError(t, err)
	return album
}

func strptr(s string) *string { return &s }

func page(skip, take int) models.Page { return models.Page{Skip: skip, Take: take} }
