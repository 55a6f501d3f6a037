package services_test

import (
	"testing"

	"sonority/internal/models"
	"sonority/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenario_ArtistLifecycle(t *testing.T) {
	e := newEnv(t)

	u1 := e.register(t, "u1")
	u2 := e.register(t, "u2")
	a1, err := e.artists.RegisterArtist(ctxb(), u1, models.CreateArtistRequest{Name: "Alpha"})
	require.NoError(t, err)

	created, err := e.follows.Follow(ctxb(), u2, a1.ID)
	require.NoError(t, err)
	assert.True(t, created)
	count, err := e.artists.FollowerCount(ctxb(), a1.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	_, err = e.artists.Verify(ctxb(), a1.ID)
	require.NoError(t, err)
	_, err = e.artists.UpdateArtist(ctxb(), a1.ID, models.UpdateArtistRequest{Name: strptr("Beta")})
	assert.ErrorIs(t, err, services.ErrVerifiedArtistRename)

	require.NoError(t, e.accounts.DeleteAccount(ctxb(), u1.ID))

	_, err = e.artists.Lookup(ctxb(), a1.ID, "")
	assert.ErrorIs(t, err, services.ErrArtistNotFound)
	followed, err := e.follows.ListFollowedArtists(ctxb(), u2, page(0, 20))
	require.NoError(t, err)
	assert.Empty(t, followed)
}

func TestScenario_AlbumLifecycle(t *testing.T) {
	e := newEnv(t)
	_, artist := e.artist(t, "artist")
	fan := e.register(t, "fan")

	x, err := e.albums.CreateAlbum(ctxb(), artist, models.CreateAlbumRequest{Name: "X", AlbumType: models.AlbumTypeAlbum})
	require.NoError(t, err)
	_, err = e.albums.CreateAlbum(ctxb(), artist, models.CreateAlbumRequest{Name: "X", AlbumType: models.AlbumTypeSingle})
	assert.ErrorIs(t, err, services.ErrAlbumNameInUse)

	released, err := e.albums.ReleaseAlbum(ctxb(), artist, x.ID)
	require.NoError(t, err)
	assert.NotNil(t, released.ReleaseDate)

	_, err = e.albums.UpdateAlbum(ctxb(), artist, x.ID, models.UpdateAlbumRequest{Name: strptr("Y")})
	assert.ErrorIs(t, err, services.ErrReleasedAlbumImmutable)

	_, err = e.likes.Like(ctxb(), fan, x.ID)
	require.NoError(t, err)
	liked, err := e.likes.ListLikedAlbums(ctxb(), fan, page(0, 20))
	require.NoError(t, err)
	assert.Equal(t, []string{x.ID}, ids(liked))

	require.NoError(t, e.albums.DeleteAlbum(ctxb(), artist, x.ID))
	liked, err = e.likes.ListLikedAlbums(ctxb(), fan, page(0, 20))
	require.NoError(t, err)
	assert.Empty(t, liked)

	assert.Equal(t, []string{
		services.EventAlbumCreated, services.EventAlbumReleased, services.EventAlbumLiked, services.EventAlbumDeleted,
	}, e.events.types()[3:])
}
