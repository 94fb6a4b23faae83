package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	app "galleryserv/src/app"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ImageView struct {
	app.Image
	URL string `json:"url,omitempty"`
}

// downloadURLExpiry is how long presigned image links stay valid.
const downloadURLExpiry = 7 * 24 * time.Hour

// withDownloadURLs presigns a download link per image; records without a
// PublicID have no blob and get no link.
func (a *AppHandler) withDownloadURLs(images []app.Image) ([]ImageView, error) {
	views := make([]ImageView, 0, len(images))
	for _, img := range images {
		view := ImageView{Image: img}
		if img.PublicID != "" {
			presigned, err := a.s3.PresignedURL(img.PublicID, downloadURLExpiry)
			if err != nil {
				return nil, err
			}
			view.URL = presigned.String()
		}
		views = append(views, view)
	}
	return views, nil
}

// GetAlbumImages returns one page of an album's images. Sort, page and
// limit come from the query string; random is the default order and pages
// inside a capped random sample rather than reshuffling per page.
func (a *AppHandler) GetAlbumImages(c *gin.Context) {
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

	q := app.ParsePageQuery(c.Query("sort"), c.Query("page"), c.Query("limit"))

	var (
		imageList []app.Image
		err       error
	)
	if q.Sort == app.SortRandom {
		imageList, err = a.images.ListRandom(c.Request.Context(), albumID, q.Skip(), q.Limit)
	} else {
		imageList, err = a.images.ListSorted(c.Request.Context(), albumID, q.Sort, q.Skip(), q.Limit)
	}
	if err != nil {
		log.Printf("list images error: %v", err)
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}

	total, err := a.images.CountForAlbum(c.Request.Context(), albumID)
	if err != nil {
		log.Printf("count images error: %v", err)
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}

	views, err := a.withDownloadURLs(imageList)
	if err != nil {
		log.Printf("presign images error: %v", err)
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}

	ok(c, gin.H{
		"images":  views,
		"total":   total,
		"hasMore": q.HasMore(len(imageList), int(total)),
		"page":    q.Page,
		"limit":   q.Limit,
	})
}

func (a *AppHandler) PostImage(c *gin.Context) {
	albumID := c.Param("id")
	if uuid.Validate(albumID) != nil {
		fail(c, http.StatusBadRequest, "Invalid album ID")
		return
	}
	userID := identity(c)
	if _, err := a.albums.Get(c.Request.Context(), albumID, userID); err != nil {
		if errors.Is(err, app.ErrNotFound) {
			fail(c, http.StatusNotFound, "Album not found")
			return
		}
		log.Printf("get album error: %v", err)
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}

	// Parse the form data, including the uploaded file
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		fail(c, http.StatusBadRequest, "Image file is required")
		return
	}
	defer file.Close()

	// Read the file into a buffer
	var buffer bytes.Buffer
	if _, err := io.Copy(&buffer, file); err != nil {
		log.Printf("read upload error: %v", err)
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}

	publicID := fmt.Sprintf("%s/%s", userID, uuid.NewString())
	contentType := header.Header.Get("Content-Type")
	size := int64(buffer.Len())
	if err := a.s3.UploadFile(publicID, &buffer, size, contentType); err != nil {
		log.Printf("upload to blob storage error: %v", err)
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}

	image := &app.Image{
		AlbumID:     albumID,
		UserID:      userID,
		PublicID:    publicID,
		Name:        header.Filename,
		ContentType: contentType,
		Size:        size,
	}
	if err := a.images.Create(c.Request.Context(), image); err != nil {
		log.Printf("create image record error: %v", err)
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}

	views, err := a.withDownloadURLs([]app.Image{*image})
	if err != nil {
		log.Printf("presign image error: %v", err)
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	ok(c, views[0])
}

func (a *AppHandler) DeleteImage(c *gin.Context) {
	albumID := c.Param("id")
	imageID := c.Param("imageId")
	if uuid.Validate(albumID) != nil {
		fail(c, http.StatusBadRequest, "Invalid album ID")
		return
	}
	if uuid.Validate(imageID) != nil {
		fail(c, http.StatusBadRequest, "Invalid image ID")
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

	image, err := a.images.GetForAlbum(c.Request.Context(), imageID, albumID)
	if err != nil {
		if errors.Is(err, app.ErrNotFound) {
			fail(c, http.StatusNotFound, "Image not found")
			return
		}
		log.Printf("get image error: %v", err)
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}

	// Blob removal is best effort, the record goes regardless.
	if image.PublicID != "" {
		if err := a.s3.DeleteFile(image.PublicID); err != nil {
			log.Printf("error deleting image %s from blob storage: %v", image.PublicID, err)
		}
	}
	if err := a.images.Delete(c.Request.Context(), imageID); err != nil {
		log.Printf("delete image record error: %v", err)
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	okMessage(c, "Image deleted successfully")
}
