package repository

import (
	"context"
	"errors"
	"fmt"
	app "galleryserv/src/app"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	AlbumStore interface {
		Get(ctx context.Context, albumID, ownerID string) (*app.Album, error)
		ListForOwner(ctx context.Context, ownerID string) ([]app.Album, error)
		Create(ctx context.Context, album *app.Album) error
		Update(ctx context.Context, albumID, ownerID string, upd AlbumUpdate) (*app.Album, error)
		Delete(ctx context.Context, albumID string) error
	}

	// AlbumUpdate carries the mutable album fields. A nil IsPrivate means
	// the flag was not part of the request and stays as it is.
	AlbumUpdate struct {
		Name        string
		Description string
		IsPrivate   *bool
	}
)

type AlbumRepo struct{ db *gorm.DB }

func NewAlbumRepo(db *gorm.DB) *AlbumRepo {
	return &AlbumRepo{db: db}
}

// Get looks an album up by id and owner in one query. A foreign album and
// a missing album are the same ErrNotFound so callers can not tell other
// users' albums apart from absent ones.
func (r *AlbumRepo) Get(ctx context.Context, albumID, ownerID string) (*app.Album, error) {
	var album app.Album
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", albumID, ownerID).First(&album).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, app.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can not get album: %w", err)
	}
	return &album, nil
}

func (r *AlbumRepo) ListForOwner(ctx context.Context, ownerID string) ([]app.Album, error) {
	var albums []app.Album
	err := r.db.WithContext(ctx).Where("user_id = ?", ownerID).Order("created_at DESC").Find(&albums).Error
	if err != nil {
		return nil, fmt.Errorf("can not list albums: %w", err)
	}
	return albums, nil
}

func (r *AlbumRepo) Create(ctx context.Context, album *app.Album) error {
	if album.ID == "" {
		album.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(album).Error; err != nil {
		return fmt.Errorf("can not create album: %w", err)
	}
	return nil
}

// Update applies name/description/isPrivate after the ownership check.
// An update that changes nothing is reported as ErrNoChange, so callers
// can tell an effective no-op from a real write.
func (r *AlbumRepo) Update(ctx context.Context, albumID, ownerID string, upd AlbumUpdate) (*app.Album, error) {
	name := strings.TrimSpace(upd.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: album name is required", app.ErrValidation)
	}

	album, err := r.Get(ctx, albumID, ownerID)
	if err != nil {
		return nil, err
	}

	description := strings.TrimSpace(upd.Description)
	isPrivate := album.IsPrivate
	if upd.IsPrivate != nil {
		isPrivate = *upd.IsPrivate
	}
	if name == album.Name && description == album.Description && isPrivate == album.IsPrivate {
		return nil, app.ErrNoChange
	}

	res := r.db.WithContext(ctx).Model(&app.Album{}).Where("id = ?", albumID).Updates(map[string]interface{}{
		"name":        name,
		"description": description,
		"is_private":  isPrivate,
		"updated_at":  time.Now(),
	})
	if res.Error != nil {
		return nil, fmt.Errorf("can not update album: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, app.ErrNoChange
	}
	return r.Get(ctx, albumID, ownerID)
}

// Delete removes the record unconditionally. Only the album cleaner calls
// it, after ownership was verified and the images are gone.
func (r *AlbumRepo) Delete(ctx context.Context, albumID string) error {
	if err := r.db.WithContext(ctx).Delete(&app.Album{}, "id = ?", albumID).Error; err != nil {
		return fmt.Errorf("can not delete album: %w", err)
	}
	return nil
}

// InMemoryAlbumStore mirrors AlbumRepo for tests and local runs.
type InMemoryAlbumStore struct {
	mu     sync.RWMutex
	albums map[string]app.Album
}

func NewInMemoryAlbumStore() *InMemoryAlbumStore {
	return &InMemoryAlbumStore{albums: make(map[string]app.Album)}
}

func (s *InMemoryAlbumStore) Get(ctx context.Context, albumID, ownerID string) (*app.Album, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	album, ok := s.albums[albumID]
	if !ok || album.UserID != ownerID {
		return nil, app.ErrNotFound
	}
	found := album
	return &found, nil
}

func (s *InMemoryAlbumStore) ListForOwner(ctx context.Context, ownerID string) ([]app.Album, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := []app.Album{}
	for _, album := range s.albums {
		if album.UserID == ownerID {
			result = append(result, album)
		}
	}
	return result, nil
}

func (s *InMemoryAlbumStore) Create(ctx context.Context, album *app.Album) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if album.ID == "" {
		album.ID = uuid.NewString()
	}
	now := time.Now()
	album.CreatedAt = now
	album.UpdatedAt = now
	s.albums[album.ID] = *album
	return nil
}

func (s *InMemoryAlbumStore) Update(ctx context.Context, albumID, ownerID string, upd AlbumUpdate) (*app.Album, error) {
	name := strings.TrimSpace(upd.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: album name is required", app.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	album, ok := s.albums[albumID]
	if !ok || album.UserID != ownerID {
		return nil, app.ErrNotFound
	}

	description := strings.TrimSpace(upd.Description)
	isPrivate := album.IsPrivate
	if upd.IsPrivate != nil {
		isPrivate = *upd.IsPrivate
	}
	if name == album.Name && description == album.Description && isPrivate == album.IsPrivate {
		return nil, app.ErrNoChange
	}

	album.Name = name
	album.Description = description
	album.IsPrivate = isPrivate
	album.UpdatedAt = time.Now()
	s.albums[albumID] = album
	found := album
	return &found, nil
}

func (s *InMemoryAlbumStore) Delete(ctx context.Context, albumID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.albums, albumID)
	return nil
}
