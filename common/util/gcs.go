package util

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GCSStore keeps objects in Google Cloud Storage. Missing buckets are created in projectID;
// public read access is granted outside the service.
type GCSStore struct {
	client    *storage.Client
	projectID string
	ensured   sync.Map
}

func NewGCSStore(ctx context.Context, projectID, credentialsPath string) (*GCSStore, error) {
	var client *storage.Client
	var err error

	if credentialsPath != "" {
		client, err = storage.NewClient(ctx, option.WithCredentialsFile(credentialsPath))
	} else {
		client, err = storage.NewClient(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSStore{client: client, projectID: projectID}, nil
}

func (g *GCSStore) ensureBucket(ctx context.Context, bucketName string) error {
	if _, ok := g.ensured.Load(bucketName); ok {
		return nil
	}

	bucket := g.client.Bucket(bucketName)
	_, err := bucket.Attrs(ctx)
	if errors.Is(err, storage.ErrBucketNotExist) {
		if g.projectID == "" {
			return fmt.Errorf("bucket %s does not exist and no project id is configured", bucketName)
		}
		if err := bucket.Create(ctx, g.projectID, nil); err != nil {
			return fmt.Errorf("failed to create GCS bucket: %w", err)
		}
		slog.Info("GCS bucket created", "bucket", bucketName, "project", g.projectID)
	} else if err != nil {
		return fmt.Errorf("failed to check GCS bucket: %w", err)
	}

	g.ensured.Store(bucketName, struct{}{})
	return nil
}

func (g *GCSStore) Upload(ctx context.Context, bucketName, objectName string, data []byte, contentType string) error {
	if err := g.ensureBucket(ctx, bucketName); err != nil {
		return err
	}

	writer := g.client.Bucket(bucketName).Object(objectName).NewWriter(ctx)
	if contentType != "" {
		writer.ContentType = contentType
	}

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return fmt.Errorf("failed to copy data to GCS: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close GCS writer: %w", err)
	}
	return nil
}

func (g *GCSStore) Download(ctx context.Context, bucketName, objectName string) ([]byte, error) {
	reader, err := g.client.Bucket(bucketName).Object(objectName).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open GCS object: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read GCS object: %w", err)
	}
	return data, nil
}

func (g *GCSStore) Delete(ctx context.Context, bucketName, objectName string) error {
	return g.client.Bucket(bucketName).Object(objectName).Delete(ctx)
}

func (g *GCSStore) ListOlderThan(ctx context.Context, bucketName, prefix string, before time.Time) ([]string, error) {
	var names []string

	it := g.client.Bucket(bucketName).Objects(ctx, &storage.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list GCS objects: %w", err)
		}
		if attrs.Updated.Before(before) {
			names = append(names, attrs.Name)
		}
	}
	return names, nil
}

func (g *GCSStore) PublicURL(bucketName, objectName string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucketName, escapeObjectPath(objectName))
}

func (g *GCSStore) Close() error {
	return g.client.Close()
}
