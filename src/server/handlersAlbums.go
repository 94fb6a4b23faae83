package server

import (
	"errors"
	"log"
	"net/http"
	"strings"

	app "galleryserv/src/app"
	db "galleryserv/src/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type (
	AlbumBody struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		IsPrivate   *bool  `json:"isPrivate"`
	}

	AlbumDetail struct {
		app.Album
		ImageCount int64 `json:"imageCount"`
	}
)

func (a *AppHandler) GetAlbumList(c *gin.Context) {
	userID := identity(c)
	albums, err := a.albums.ListForOwner(c.Request.Context(), userID)
	if err != nil {
		log.Printf("list albums error: %v", err)
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}

	result := make([]AlbumDetail, 0, len(albums))
	for _, album := range albums {
		total, err := a.images.CountForAlbum(c.Request.Context(), album.ID)
		if err != nil {
			log.Printf("count images error: %v", err)
			fail(c, http.StatusInternalServerError, "Server error")
			return
		}
		result = append(result, AlbumDetail{Album: album, ImageCount: total})
	}
	ok(c, result)
}

func (a *AppHandler) PostAlbum(c *gin.Context) {
	var body AlbumBody
	if err := c.BindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, "Album name is required")
		return
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		fail(c, http.StatusBadRequest, "Album name is required")
		return
	}

	album := &app.Album{
		UserID:      identity(c),
		Name:        name,
		Description: strings.TrimSpace(body.Description),
	}
	if body.IsPrivate != nil {
		album.IsPrivate = *body.IsPrivate
	}
	if err := a.albums.Create(c.Request.Context(), album); err != nil {
		log.Printf("create album error: %v", err)
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	ok(c, album)
}

func (a *AppHandler) GetAlbum(c *gin.Context) {
	albumID := c.Param("id")
	if uuid.Validate(albumID) != nil {
		fail(c, http.StatusBadRequest, "Invalid album ID")
		return
	}

	album, err := a.albums.Get(c.Request.Context(), albumID, identity(c))
	if err != nil {
		if errors.Is(err, app.ErrNotFound) {
			fail(c, http.StatusNotFound, "Album not found")
			return
		}
		log.Printf("get album error: %v", err)
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}

	total, err := a.images.CountForAlbum(c.Request.Context(), album.ID)
	if err != nil {
		log.Printf("count images error: %v", err)
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	ok(c, AlbumDetail{Album: *album, ImageCount: total})
}

func (a *AppHandler) PutAlbum(c *gin.Context) {
	albumID := c.Param("id")
	if uuid.Validate(albumID) != nil {
		fail(c, http.StatusBadRequest, "Invalid album ID")
		return
	}

	var body AlbumBody
	if err := c.BindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, "Album name is required")
		return
	}

	album, err := a.albums.Update(c.Request.Context(), albumID, identity(c), db.AlbumUpdate{
		Name:        body.Name,
		Description: body.Description,
		IsPrivate:   body.IsPrivate,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrValidation):
			fail(c, http.StatusBadRequest, "Album name is required")
		case errors.Is(err, app.ErrNotFound):
			fail(c, http.StatusNotFound, "Album not found")
		case errors.Is(err, app.ErrNoChange):
			fail(c, http.StatusBadRequest, "No changes were made")
		default:
			log.Printf("update album error: %v", err)
			fail(c, http.StatusInternalServerError, "Server error")
		}
		return
	}
	ok(c, album)
}

// DeleteAlbum verifies ownership, then hands off to the cleaner which
// purges blobs best effort and removes the image and album records.
func (a *AppHandler) DeleteAlbum(c *gin.Context) {
	albumID := c.Param("id")
	if uuid.Validate(albumID) != nil {
		fail(c, http.StatusBadRequest, "Invalid album ID")
		return
	}

	if _, err := a.albums.Get(c.Request.Context(), albumID, identity(c)); err != nil {
		if errors.Is(err, app.ErrNotFound) {
			fail(c, http.StatusNotFound, "Album not found")
			return
		}
		log.Printf("get album error: %v", err)
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}

	if err := a.cleaner.DeleteAlbum(c.Request.Context(), albumID); err != nil {
		log.Printf("delete album error: %v", err)
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	okMessage(c, "Album deleted successfully")
}
