package repository

import (
	"context"
	"errors"
	"fmt"
	app "galleryserv/src/app"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ImageStore interface {
	Create(ctx context.Context, image *app.Image) error
	GetForAlbum(ctx context.Context, imageID, albumID string) (*app.Image, error)
	CountForAlbum(ctx context.Context, albumID string) (int64, error)
	ListForAlbum(ctx context.Context, albumID string) ([]app.Image, error)
	ListSorted(ctx context.Context, albumID string, key app.SortKey, skip, limit int) ([]app.Image, error)
	ListRandom(ctx context.Context, albumID string, skip, limit int) ([]app.Image, error)
	Delete(ctx context.Context, imageID string) error
	DeleteAllForAlbum(ctx context.Context, albumID string) (int64, error)
}

var sortClauses = map[app.SortKey]string{
	app.SortNewest:   "created_at DESC",
	app.SortOldest:   "created_at ASC",
	app.SortLargest:  "size DESC",
	app.SortSmallest: "size ASC",
}

type ImageRepo struct{ db *gorm.DB }

func NewImageRepo(db *gorm.DB) *ImageRepo {
	return &ImageRepo{db: db}
}

func (r *ImageRepo) Create(ctx context.Context, image *app.Image) error {
	if image.ID == "" {
		image.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(image).Error; err != nil {
		return fmt.Errorf("can not create image: %w", err)
	}
	return nil
}

func (r *ImageRepo) GetForAlbum(ctx context.Context, imageID, albumID string) (*app.Image, error) {
	var image app.Image
	err := r.db.WithContext(ctx).Where("id = ? AND album_id = ?", imageID, albumID).First(&image).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, app.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can not get image: %w", err)
	}
	return &image, nil
}

func (r *ImageRepo) CountForAlbum(ctx context.Context, albumID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&app.Image{}).Where("album_id = ?", albumID).Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("can not count images: %w", err)
	}
	return total, nil
}

func (r *ImageRepo) ListForAlbum(ctx context.Context, albumID string) ([]app.Image, error) {
	var images []app.Image
	err := r.db.WithContext(ctx).Where("album_id = ?", albumID).Find(&images).Error
	if err != nil {
		return nil, fmt.Errorf("can not list images: %w", err)
	}
	return images, nil
}

func (r *ImageRepo) ListSorted(ctx context.Context, albumID string, key app.SortKey, skip, limit int) ([]app.Image, error) {
	clause, ok := sortClauses[key]
	if !ok {
		return nil, fmt.Errorf("%w: unknown sort %q", app.ErrValidation, key)
	}
	var images []app.Image
	err := r.db.WithContext(ctx).
		Where("album_id = ?", albumID).
		Order(clause).
		Offset(skip).
		Limit(limit).
		Find(&images).Error
	if err != nil {
		return nil, fmt.Errorf("can not list images: %w", err)
	}
	return images, nil
}

// ListRandom draws one capped random sample and pages inside it instead of
// shuffling per page; see app.RandomSampleCap for the trade-off.
func (r *ImageRepo) ListRandom(ctx context.Context, albumID string, skip, limit int) ([]app.Image, error) {
	var sample []app.Image
	err := r.db.WithContext(ctx).
		Where("album_id = ?", albumID).
		Order("RANDOM()").
		Limit(app.RandomSampleCap).
		Find(&sample).Error
	if err != nil {
		return nil, fmt.Errorf("can not sample images: %w", err)
	}
	return window(sample, skip, limit), nil
}

func (r *ImageRepo) Delete(ctx context.Context, imageID string) error {
	if err := r.db.WithContext(ctx).Delete(&app.Image{}, "id = ?", imageID).Error; err != nil {
		return fmt.Errorf("can not delete image: %w", err)
	}
	return nil
}

func (r *ImageRepo) DeleteAllForAlbum(ctx context.Context, albumID string) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&app.Image{}, "album_id = ?", albumID)
	if res.Error != nil {
		return 0, fmt.Errorf("can not delete images: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// window applies skip/limit inside an already fetched candidate set,
// bounding the indices so out-of-range paging yields an empty page rather
// than a panic.
func window(items []app.Image, skip, limit int) []app.Image {
	if skip < 0 {
		skip = 0
	}
	if limit < 0 {
		limit = 0
	}
	if skip >= len(items) {
		return []app.Image{}
	}
	end := skip + limit
	if end > len(items) {
		end = len(items)
	}
	return items[skip:end]
}

// InMemoryImageStore mirrors ImageRepo for tests and local runs.
type InMemoryImageStore struct {
	mu     sync.RWMutex
	images map[string]app.Image
}

func NewInMemoryImageStore() *InMemoryImageStore {
	return &InMemoryImageStore{images: make(map[string]app.Image)}
}

func (s *InMemoryImageStore) Create(ctx context.Context, image *app.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if image.ID == "" {
		image.ID = uuid.NewString()
	}
	if image.CreatedAt.IsZero() {
		image.CreatedAt = time.Now()
	}
	s.images[image.ID] = *image
	return nil
}

func (s *InMemoryImageStore) GetForAlbum(ctx context.Context, imageID, albumID string) (*app.Image, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	image, ok := s.images[imageID]
	if !ok || image.AlbumID != albumID {
		return nil, app.ErrNotFound
	}
	found := image
	return &found, nil
}

func (s *InMemoryImageStore) CountForAlbum(ctx context.Context, albumID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.forAlbum(albumID))), nil
}

func (s *InMemoryImageStore) ListForAlbum(ctx context.Context, albumID string) ([]app.Image, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.forAlbum(albumID), nil
}

func (s *InMemoryImageStore) ListSorted(ctx context.Context, albumID string, key app.SortKey, skip, limit int) ([]app.Image, error) {
	if _, ok := sortClauses[key]; !ok {
		return nil, fmt.Errorf("%w: unknown sort %q", app.ErrValidation, key)
	}
	s.mu.RLock()
	members := s.forAlbum(albumID)
	s.mu.RUnlock()

	sort.SliceStable(members, func(i, j int) bool {
		switch key {
		case app.SortNewest:
			return members[i].CreatedAt.After(members[j].CreatedAt)
		case app.SortOldest:
			return members[i].CreatedAt.Before(members[j].CreatedAt)
		case app.SortLargest:
			return members[i].Size > members[j].Size
		default:
			return members[i].Size < members[j].Size
		}
	})
	return window(members, skip, limit), nil
}

func (s *InMemoryImageStore) ListRandom(ctx context.Context, albumID string, skip, limit int) ([]app.Image, error) {
	s.mu.RLock()
	members := s.forAlbum(albumID)
	s.mu.RUnlock()

	rand.Shuffle(len(members), func(i, j int) {
		members[i], members[j] = members[j], members[i]
	})
	if len(members) > app.RandomSampleCap {
		members = members[:app.RandomSampleCap]
	}
	return window(members, skip, limit), nil
}

func (s *InMemoryImageStore) Delete(ctx context.Context, imageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.images, imageID)
	return nil
}

func (s *InMemoryImageStore) DeleteAllForAlbum(ctx context.Context, albumID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var deleted int64
	for id, image := range s.images {
		if image.AlbumID == albumID {
			delete(s.images, id)
			deleted++
		}
	}
	return deleted, nil
}

func (s *InMemoryImageStore) forAlbum(albumID string) []app.Image {
	result := []app.Image{}
	for _, image := range s.images {
		if image.AlbumID == albumID {
			result = append(result, image)
		}
	}
	return result
}
