package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	app "galleryserv/src/app"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAlbum(t *testing.T, store *InMemoryAlbumStore, ownerID, name string) *app.Album {
	t.Helper()
	album := &app.Album{UserID: ownerID, Name: name, Description: "holiday"}
	require.NoError(t, store.Create(context.Background(), album))
	return album
}

func TestAlbumOwnershipDisguise(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryAlbumStore()
	album := seedAlbum(t, store, "owner", "Summer")

	t.Run("OwnerSeesAlbum", func(t *testing.T) {
		got, err := store.Get(ctx, album.ID, "owner")
		require.NoError(t, err)
		assert.Equal(t, "Summer", got.Name)
	})

	t.Run("ForeignLooksAbsent", func(t *testing.T) {
		_, foreignErr := store.Get(ctx, album.ID, "intruder")
		_, missingErr := store.Get(ctx, "00000000-0000-0000-0000-000000000000", "owner")
		assert.True(t, errors.Is(foreignErr, app.ErrNotFound))
		assert.True(t, errors.Is(missingErr, app.ErrNotFound))
		// Same error either way, nothing to enumerate on.
		assert.Equal(t, foreignErr, missingErr)
	})

	t.Run("ForeignUpdateLooksAbsent", func(t *testing.T) {
		_, err := store.Update(ctx, album.ID, "intruder", AlbumUpdate{Name: "Stolen"})
		assert.True(t, errors.Is(err, app.ErrNotFound))
	})
}

func TestAlbumUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("EmptyNameFails", func(t *testing.T) {
		store := NewInMemoryAlbumStore()
		album := seedAlbum(t, store, "owner", "Summer")
		priv := true
		_, err := store.Update(ctx, album.ID, "owner", AlbumUpdate{Name: "   ", Description: "new", IsPrivate: &priv})
		assert.True(t, errors.Is(err, app.ErrValidation))
	})

	t.Run("NoDeltaFails", func(t *testing.T) {
		store := NewInMemoryAlbumStore()
		album := seedAlbum(t, store, "owner", "Summer")
		_, err := store.Update(ctx, album.ID, "owner", AlbumUpdate{Name: "Summer", Description: "holiday"})
		assert.True(t, errors.Is(err, app.ErrNoChange))
	})

	t.Run("TrimmedNameApplied", func(t *testing.T) {
		store := NewInMemoryAlbumStore()
		album := seedAlbum(t, store, "owner", "Summer")
		before := album.UpdatedAt

		time.Sleep(10 * time.Millisecond)
		updated, err := store.Update(ctx, album.ID, "owner", AlbumUpdate{Name: "  Winter  ", Description: "holiday"})
		require.NoError(t, err)
		assert.Equal(t, "Winter", updated.Name)
		assert.True(t, updated.UpdatedAt.After(before))
	})

	t.Run("PrivateFlagOptional", func(t *testing.T) {
		store := NewInMemoryAlbumStore()
		album := seedAlbum(t, store, "owner", "Summer")
		priv := true
		updated, err := store.Update(ctx, album.ID, "owner", AlbumUpdate{Name: "Summer", Description: "holiday", IsPrivate: &priv})
		require.NoError(t, err)
		assert.True(t, updated.IsPrivate)

		// Omitting the flag keeps the stored value.
		updated, err = store.Update(ctx, album.ID, "owner", AlbumUpdate{Name: "Summer again", Description: "holiday"})
		require.NoError(t, err)
		assert.True(t, updated.IsPrivate)
	})
}
