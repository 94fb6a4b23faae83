package server

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	app "galleryserv/src/app"
	cfg "galleryserv/src/configuration"
	db "galleryserv/src/repository"

	"github.com/gin-gonic/gin"
)

type (
	// BlobClient is the blob-storage surface the handlers use; the minio
	// client satisfies it in production.
	BlobClient interface {
		UploadFile(uploadPath string, object io.Reader, size int64, contentType string) error
		DeleteFile(publicID string) error
		PresignedURL(publicID string, expires time.Duration) (*url.URL, error)
	}

	AppHandler struct {
		users          db.UserStore
		albums         db.AlbumStore
		images         db.ImageStore
		s3             BlobClient
		cleaner        *app.AlbumCleaner
		tokens         *app.TokenService
		verifier       app.AuthVerifier
		minPasswordLen int
	}
)

const identityKey = "x-user-id"

func NewHandler(config *cfg.Properties,
	users db.UserStore,
	albums db.AlbumStore,
	images db.ImageStore,
	s3 BlobClient) *AppHandler {

	tokens := app.NewTokenService(config.Auth.JWTSecret, config.Auth.TokenTTL)
	return &AppHandler{
		users:          users,
		albums:         albums,
		images:         images,
		s3:             s3,
		cleaner:        app.NewAlbumCleaner(albums, images, s3),
		tokens:         tokens,
		verifier:       tokens,
		minPasswordLen: config.Auth.MinPasswordLen,
	}
}

func (a *AppHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"status": "up"}})
}

// RequireAuth rejects requests without a valid bearer token before any
// handler or store code runs, and records the caller identity for them.
func (a *AppHandler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token"})
			return
		}
		userID, err := a.verifier.Verify(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token"})
			return
		}
		c.Set(identityKey, userID)
		c.Next()
	}
}

func identity(c *gin.Context) string {
	v, _ := c.Get(identityKey)
	userID, _ := v.(string)
	return userID
}

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func okMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}
