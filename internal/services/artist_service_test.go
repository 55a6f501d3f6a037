package services_test

import (
	"testing"

	"sonority/internal/models"
	"sonority/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtistService_RegisterArtist(t *testing.T) {
	e := newEnv(t)
	user := e.register(t, "nina")

	artist, err := e.artists.RegisterArtist(ctxb(), user, models.CreateArtistRequest{
		Name:        "Nina",
		Description: strptr("jazz"),
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, artist.ID)
	assert.False(t, artist.IsVerified)

	_, err = e.artists.RegisterArtist(ctxb(), user, models.CreateArtistRequest{Name: "Another"})
	assert.ErrorIs(t, err, services.ErrArtistExists)

	other := e.register(t, "copycat")
	_, err = e.artists.RegisterArtist(ctxb(), other, models.CreateArtistRequest{Name: "Nina"})
	assert.ErrorIs(t, err, services.ErrArtistNameInUse)
}

func TestArtistService_CurrentArtist(t *testing.T) {
	e := newEnv(t)
	user, artist := e.artist(t, "miles")
	listener := e.register(t, "listener")

	got, err := e.artists.CurrentArtist(ctxb(), user)
	require.NoError(t, err)
	assert.Equal(t, artist.ID, got.ID)

	_, err = e.artists.CurrentArtist(ctxb(), listener)
	assert.ErrorIs(t, err, services.ErrNotArtist)
	assert.Equal(t, services.KindForbidden, services.KindOf(err))
}

func TestArtistService_UpdateArtist(t *testing.T) {
	e := newEnv(t)
	_, artist := e.artist(t, "prince")
	e.artist(t, "taken")

	got, err := e.artists.UpdateArtist(ctxb(), artist.ID, models.UpdateArtistRequest{})
	require.NoError(t, err)
	assert.Equal(t, "prince", got.Name)

	_, err = e.artists.UpdateArtist(ctxb(), artist.ID, models.UpdateArtistRequest{Name: strptr("taken")})
	assert.ErrorIs(t, err, services.ErrArtistNameInUse)

	got, err = e.artists.UpdateArtist(ctxb(), artist.ID, models.UpdateArtistRequest{
		Name:        strptr("The Artist"),
		Description: strptr("funk"),
	})
	require.NoError(t, err)
	assert.Equal(t, "The Artist", got.Name)
	require.NotNil(t, got.Description)
	assert.Equal(t, "funk", *got.Description)
}

func TestArtistService_VerifiedNameIsFrozen(t *testing.T) {
	e := newEnv(t)
	_, artist := e.artist(t, "bowie")

	verified, err := e.artists.Verify(ctxb(), artist.ID)
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)

	_, err = e.artists.Verify(ctxb(), artist.ID)
	assert.ErrorIs(t, err, services.ErrArtistAlreadyVerified)
	assert.Equal(t, "Artist is already verified", err.Error())

	// Rejected even though the new name is free.
	_, err = e.artists.UpdateArtist(ctxb(), artist.ID, models.UpdateArtistRequest{Name: strptr("Ziggy")})
	assert.ErrorIs(t, err, services.ErrVerifiedArtistRename)
	assert.Equal(t, services.KindInvalidTransition, services.KindOf(err))

	// Description stays editable, and restating the current name is not a rename.
	got, err := e.artists.UpdateArtist(ctxb(), artist.ID, models.UpdateArtistRequest{
		Name:        strptr("bowie"),
		Description: strptr("starman"),
	})
	require.NoError(t, err)
	assert.Equal(t, "starman", *got.Description)
	assert.True(t, got.IsVerified)
}

func TestArtistService_Lookup(t *testing.T) {
	e := newEnv(t)
	_, artist := e.artist(t, "bjork")

	byID, err := e.artists.Lookup(ctxb(), artist.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "bjork", byID.Name)

	byName, err := e.artists.Lookup(ctxb(), "", "bjork")
	require.NoError(t, err)
	assert.Equal(t, artist.ID, byName.ID)

	_, err = e.artists.Lookup(ctxb(), artist.ID, "bjork")
	assert.ErrorIs(t, err, services.ErrBadLookupParameters)
	_, err = e.artists.Lookup(ctxb(), "", "")
	assert.ErrorIs(t, err, services.ErrBadLookupParameters)

	_, err = e.artists.Lookup(ctxb(), "", "nobody")
	assert.ErrorIs(t, err, services.ErrArtistNotFound)
	assert.Equal(t, services.KindNotFound, services.KindOf(err))
}

func TestArtistService_FollowerCountIsComputed(t *testing.T) {
	e := newEnv(t)
	_, artist := e.artist(t, "adele")

	for _, name := range []string{"f1", "f2", "f3"} {
		fan := e.register(t, name)
		_, err := e.follows.Follow(ctxb(), fan, artist.ID)
		require.NoError(t, err)
	}

	count, err := e.artists.FollowerCount(ctxb(), artist.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	got, err := e.artists.Lookup(ctxb(), artist.ID, "")
	require.NoError(t, err)
	assert.EqualValues(t, 3, got.FollowerCount)

	_, err = e.artists.FollowerCount(ctxb(), "missing")
	assert.ErrorIs(t, err, services.ErrArtistNotFound)
}

func TestArtistService_DeleteArtistKeepsUser(t *testing.T) {
	e := newEnv(t)
	user, artist := e.artist(t, "sade")
	fan := e.register(t, "fan")
	album := e.released(t, artist, "Diamond Life")
	_, err := e.follows.Follow(ctxb(), fan, artist.ID)
	require.NoError(t, err)
	_, err = e.likes.Like(ctxb(), fan, album.ID)
	require.NoError(t, err)

	require.NoError(t, e.artists.DeleteArtist(ctxb(), artist.ID))

	_, err = e.accounts.GetUser(ctxb(), user.ID)
	assert.NoError(t, err)
	_, err = e.artists.CurrentArtist(ctxb(), user)
	assert.ErrorIs(t, err, services.ErrNotArtist)
	liked, err := e.likes.ListLikedAlbums(ctxb(), fan, page(0, 10))
	require.NoError(t, err)
	assert.Empty(t, liked)
	following, err := e.follows.IsFollowing(ctxb(), fan, artist.ID)
	require.NoError(t, err)
	assert.False(t, following)

	assert.ErrorIs(t, e.artists.DeleteArtist(ctxb(), artist.ID), services.ErrArtistNotFound)

	// The name is free again.
	_, err = e.artists.RegisterArtist(ctxb(), fan, models.CreateArtistRequest{Name: "sade"})
	assert.NoError(t, err)
}
