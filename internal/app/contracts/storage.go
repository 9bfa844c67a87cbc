package contracts

import (
	"context"
	"io"
)

type ObjectStorage interface {
	Upload(ctx context.Context, objectName, contentType string, reader io.Reader, size int64) (string, error)
	PresignedURL(ctx context.Context, objectName string) (string, error)
}
