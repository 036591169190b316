package util

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/HermawanSutanto/sertifikat-lokal2/common"
)

// BlobStore is the object storage holding templates, certificates and archives.
type BlobStore interface {
	Upload(ctx context.Context, bucketName, objectName string, data []byte, contentType string) error
	Download(ctx context.Context, bucketName, objectName string) ([]byte, error)
	Delete(ctx context.Context, bucketName, objectName string) error
	ListOlderThan(ctx context.Context, bucketName, prefix string, before time.Time) ([]string, error)
	PublicURL(bucketName, objectName string) string
}

// InitStorage builds the blob store selected by storage_driver.
func InitStorage(ctx context.Context) (BlobStore, error) {
	cfg := common.Config

	switch deref(cfg.StorageDriver) {
	case "gcs":
		return NewGCSStore(ctx, deref(cfg.GcsProjectID), deref(cfg.GcsCredentialsPath))
	case "minio", "":
		secure := true
		if cfg.MinIoSecure != nil {
			secure = *cfg.MinIoSecure
		}
		return NewMinioStore(deref(cfg.MinIoEndpoint), deref(cfg.MinIoAccessKey), deref(cfg.MinIoSecretKey), secure)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", *cfg.StorageDriver)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// escapeObjectPath escapes each segment of an object name for use in a URL path.
func escapeObjectPath(objectName string) string {
	segments := strings.Split(objectName, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}
