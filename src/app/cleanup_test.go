package app

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type (
	fakeAlbumRemover struct {
		deleted []string
		err     error
	}

	fakeImageRemover struct {
		members      []Image
		bulkDeleted  []string
		listErr      error
		bulkErr      error
		bulkObserved func()
	}

	fakeBlobStore struct {
		mu      sync.Mutex
		deleted []string
		err     error
	}
)

func (f *fakeAlbumRemover) Delete(ctx context.Context, albumID string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, albumID)
	return nil
}

func (f *fakeImageRemover) ListForAlbum(ctx context.Context, albumID string) ([]Image, error) {
	return f.members, f.listErr
}

func (f *fakeImageRemover) DeleteAllForAlbum(ctx context.Context, albumID string) (int64, error) {
	if f.bulkErr != nil {
		return 0, f.bulkErr
	}
	if f.bulkObserved != nil {
		f.bulkObserved()
	}
	f.bulkDeleted = append(f.bulkDeleted, albumID)
	return int64(len(f.members)), nil
}

func (f *fakeBlobStore) DeleteFile(publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, publicID)
	return f.err
}

func members(publicIDs ...string) []Image {
	images := make([]Image, 0, len(publicIDs))
	for i, id := range publicIDs {
		images = append(images, Image{ID: string(rune('a' + i)), AlbumID: "album-1", PublicID: id})
	}
	return images
}

func TestAlbumCleaner(t *testing.T) {
	t.Run("DeletesBlobsRecordsAndAlbum", func(t *testing.T) {
		albums := &fakeAlbumRemover{}
		images := &fakeImageRemover{members: members("u/1", "u/2", "u/3")}
		blobs := &fakeBlobStore{}

		err := NewAlbumCleaner(albums, images, blobs).DeleteAlbum(context.Background(), "album-1")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"u/1", "u/2", "u/3"}, blobs.deleted)
		assert.Equal(t, []string{"album-1"}, images.bulkDeleted)
		assert.Equal(t, []string{"album-1"}, albums.deleted)
	})

	t.Run("BlobFailuresDoNotAbort", func(t *testing.T) {
		albums := &fakeAlbumRemover{}
		images := &fakeImageRemover{members: members("u/1", "u/2")}
		blobs := &fakeBlobStore{err: errors.New("blob storage down")}

		err := NewAlbumCleaner(albums, images, blobs).DeleteAlbum(context.Background(), "album-1")
		require.NoError(t, err)
		assert.Len(t, blobs.deleted, 2)
		assert.Equal(t, []string{"album-1"}, images.bulkDeleted)
		assert.Equal(t, []string{"album-1"}, albums.deleted)
	})

	t.Run("SkipsImagesWithoutPublicID", func(t *testing.T) {
		albums := &fakeAlbumRemover{}
		images := &fakeImageRemover{members: members("u/1", "", "u/3")}
		blobs := &fakeBlobStore{}

		err := NewAlbumCleaner(albums, images, blobs).DeleteAlbum(context.Background(), "album-1")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"u/1", "u/3"}, blobs.deleted)
		assert.Equal(t, []string{"album-1"}, albums.deleted)
	})

	t.Run("AllBlobDeletesFinishBeforeRecords", func(t *testing.T) {
		albums := &fakeAlbumRemover{}
		blobs := &fakeBlobStore{}
		images := &fakeImageRemover{members: members("u/1", "u/2", "u/3", "u/4")}
		images.bulkObserved = func() {
			blobs.mu.Lock()
			defer blobs.mu.Unlock()
			assert.Len(t, blobs.deleted, 4)
		}

		err := NewAlbumCleaner(albums, images, blobs).DeleteAlbum(context.Background(), "album-1")
		require.NoError(t, err)
	})

	t.Run("EnumerationErrorAborts", func(t *testing.T) {
		albums := &fakeAlbumRemover{}
		images := &fakeImageRemover{listErr: errors.New("store unavailable")}
		blobs := &fakeBlobStore{}

		err := NewAlbumCleaner(albums, images, blobs).DeleteAlbum(context.Background(), "album-1")
		require.Error(t, err)
		assert.Empty(t, blobs.deleted)
		assert.Empty(t, albums.deleted)
	})

	t.Run("RecordDeletionErrorSurfaces", func(t *testing.T) {
		albums := &fakeAlbumRemover{}
		images := &fakeImageRemover{members: members("u/1"), bulkErr: errors.New("store unavailable")}
		blobs := &fakeBlobStore{}

		err := NewAlbumCleaner(albums, images, blobs).DeleteAlbum(context.Background(), "album-1")
		require.Error(t, err)
		// Blobs were already purged, there is no rollback.
		assert.Equal(t, []string{"u/1"}, blobs.deleted)
		assert.Empty(t, albums.deleted)
	})
}
