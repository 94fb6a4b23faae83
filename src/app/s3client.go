package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// BlobStore is the slice of blob storage the gallery core needs. Deletes
// are idempotent: removing a key that is already gone is not an error.
type BlobStore interface {
	DeleteFile(publicID string) error
}

type ClientMinio interface {
	PresignedGetObject(ctx context.Context, bucketName, objectName string, expires time.Duration, reqParams url.Values) (*url.URL, error)
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (info minio.UploadInfo, err error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

type MinioS3Client struct {
	endpoint   string
	bucketName string
	client     ClientMinio
}

// NewMinioS3Client creates a new MinioS3Client instance.
func NewMinioS3Client(endpoint, accessKeyID, secretAccessKey, bucketName string, useSSL bool) (*MinioS3Client, error) {
	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		log.Printf("can not create minio client %v for endpoint %s", err, endpoint)
		return nil, fmt.Errorf("failed to create Minio S3 client: %w", err)
	}

	return &MinioS3Client{
		endpoint:   endpoint,
		bucketName: bucketName,
		client:     minioClient,
	}, nil
}

// UploadFile stores an object under the given key and returns nothing but
// an error; the key doubles as the image record's PublicID.
func (s3 *MinioS3Client) UploadFile(uploadPath string, object io.Reader, size int64, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s3.client.PutObject(context.Background(),
		s3.bucketName,
		uploadPath,
		object,
		size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("can not upload %s: %w", uploadPath, err)
	}
	return nil
}

func (s3 *MinioS3Client) DeleteFile(publicID string) error {
	err := s3.client.RemoveObject(context.Background(), s3.bucketName, publicID, minio.RemoveObjectOptions{})
	if err != nil {
		log.Printf("remove %s/%s failed: %v", s3.bucketName, publicID, err)
		return fmt.Errorf("can not delete %s: %w", publicID, err)
	}
	return nil
}

// PresignedURL generates a time-limited download link for an object.
func (s3 *MinioS3Client) PresignedURL(publicID string, expires time.Duration) (*url.URL, error) {
	reqParams := make(url.Values)
	reqParams.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", publicID))
	presignedURL, err := s3.client.PresignedGetObject(context.Background(),
		s3.bucketName,
		publicID,
		expires,
		reqParams)
	if err != nil {
		return nil, fmt.Errorf("can not presign %s: %w", publicID, err)
	}
	return presignedURL, nil
}
