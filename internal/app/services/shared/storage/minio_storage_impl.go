package storage

import (
	"context"
	"io"
	"time"

	"patholab-service/internal/app/config"
	"patholab-service/internal/app/contracts"
	"patholab-service/internal/pkg/exceptions"

	"github.com/minio/minio-go/v7"
)

type minioStorage struct {
	MinioClient *minio.Client
	BucketName  string
}

func NewMinioStorage(minioClient *minio.Client, driverConfig *config.DriverConfig) contracts.ObjectStorage {
	return &minioStorage{
		MinioClient: minioClient,
		BucketName:  driverConfig.Minio.BucketName,
	}
}

func (m *minioStorage) Upload(ctx context.Context, objectName, contentType string, reader io.Reader, size int64) (string, error) {
	_, err := m.MinioClient.PutObject(ctx, m.BucketName, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", exceptions.ErrMinioUploadObject(err, m.BucketName)
	}

	return objectName, nil
}

func (m *minioStorage) PresignedURL(ctx context.Context, objectName string) (string, error) {
	presignedURL, err := m.MinioClient.PresignedGetObject(ctx, m.BucketName, objectName, 15*time.Minute, nil)
	if err != nil {
		return "", exceptions.ErrMinioPresignObject(err, objectName)
	}

	return presignedURL.String(), nil
}
