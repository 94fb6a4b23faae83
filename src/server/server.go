package server

import (
	"fmt"
	"log"
	"net/http"
	"time"

	app "galleryserv/src/app"
	cfg "galleryserv/src/configuration"
	db "galleryserv/src/repository"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func RunServer(config *cfg.Properties) {
	// Create Gin router
	router := gin.Default()
	//
	router.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET", "HEAD", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "Cache-Control"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowOriginFunc:  func(origin string) bool { return true },
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	//
	clientS3, err := app.NewMinioS3Client(
		config.S3.Host,
		config.S3.AccessKey,
		config.S3.SecretKey,
		config.S3.Bucket,
		config.S3.UseSSL)
	if err != nil {
		log.Fatalf("could not connect to minio: %v", err)
	}

	gallery, err := db.NewGalleryDataBase(config)
	if err != nil {
		log.Fatalf("database not respond: %v", err)
	}

	handler := NewHandler(config,
		db.NewUserRepo(gallery),
		db.NewAlbumRepo(gallery),
		db.NewImageRepo(gallery),
		clientS3)

	RegisterRoutes(router, handler)

	// Start the server
	router.Run(fmt.Sprintf(":%s", config.Server.Port))
}

func RegisterRoutes(router *gin.Engine, handler *AppHandler) {
	router.GET("/health", handler.GetHealth)

	auth := router.Group("/auth")
	auth.POST("/register", handler.Register)
	auth.POST("/login", handler.Login)

	albums := router.Group("/albums", handler.RequireAuth())
	albums.GET("", handler.GetAlbumList)
	albums.POST("", handler.PostAlbum)
	albums.GET("/:id", handler.GetAlbum)
	albums.PUT("/:id", handler.PutAlbum)
	albums.DELETE("/:id", handler.DeleteAlbum)
	albums.GET("/:id/images", handler.GetAlbumImages)
	albums.POST("/:id/images", handler.PostImage)
	albums.DELETE("/:id/images/:imageId", handler.DeleteImage)

	router.HandleMethodNotAllowed = true
	router.NoMethod(func(ctx *gin.Context) {
		ctx.JSON(http.StatusMethodNotAllowed, gin.H{"success": false, "message": "Method not allowed"})
	})
	router.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Not found"})
	})
}
