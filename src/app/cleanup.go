package app

import (
	"context"
	"fmt"
	"log"
	"sync"
)

type (
	albumRemover interface {
		Delete(ctx context.Context, albumID string) error
	}

	imageRemover interface {
		ListForAlbum(ctx context.Context, albumID string) ([]Image, error)
		DeleteAllForAlbum(ctx context.Context, albumID string) (int64, error)
	}

	// AlbumCleaner tears an album down across both stores. The metadata
	// store is authoritative: blob deletions are best effort and a blob
	// failure never stops the record cleanup. There is no rollback, so a
	// metadata failure after blobs were purged leaves the blobs gone.
	AlbumCleaner struct {
		albums albumRemover
		images imageRemover
		blobs  BlobStore
	}
)

func NewAlbumCleaner(albums albumRemover, images imageRemover, blobs BlobStore) *AlbumCleaner {
	return &AlbumCleaner{albums: albums, images: images, blobs: blobs}
}

// DeleteAlbum removes every image record of the album, their blobs and the
// album record itself. Callers must have verified ownership already.
func (c *AlbumCleaner) DeleteAlbum(ctx context.Context, albumID string) error {
	members, err := c.images.ListForAlbum(ctx, albumID)
	if err != nil {
		return fmt.Errorf("can not list images of album %s: %w", albumID, err)
	}

	c.purgeBlobs(members)

	if _, err := c.images.DeleteAllForAlbum(ctx, albumID); err != nil {
		return fmt.Errorf("can not delete image records of album %s: %w", albumID, err)
	}
	if err := c.albums.Delete(ctx, albumID); err != nil {
		return fmt.Errorf("can not delete album %s: %w", albumID, err)
	}
	return nil
}

// purgeBlobs fans the blob deletions out and waits for the whole batch.
// Images without a PublicID have nothing stored remotely and are skipped.
// Failures are collected and logged, never propagated.
func (c *AlbumCleaner) purgeBlobs(members []Image) {
	results := make([]error, len(members))
	var wg sync.WaitGroup
	for i, img := range members {
		if img.PublicID == "" {
			continue
		}
		wg.Add(1)
		go func(i int, publicID string) {
			defer wg.Done()
			results[i] = c.blobs.DeleteFile(publicID)
		}(i, img.PublicID)
	}
	wg.Wait()

	for i, err := range results {
		if err != nil {
			log.Printf("error deleting image %s from blob storage: %v", members[i].PublicID, err)
		}
	}
}
