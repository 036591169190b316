package util

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	neturl "net/url"
	"strings"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioStore struct {
	client   *minio.Client
	endpoint string
	secure   bool
	ensured  sync.Map
}

func NewMinioStore(endpoint, accessKey, secretKey string, secure bool) (*MinioStore, error) {
	if endpoint == "" || accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("MinIO configuration is incomplete")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	return &MinioStore{
		client:   client,
		endpoint: endpoint,
		secure:   secure,
	}, nil
}

// ensureBucket creates the bucket on first use and opens it for public reads.
func (s *MinioStore) ensureBucket(ctx context.Context, bucketName string) error {
	if _, ok := s.ensured.Load(bucketName); ok {
		return nil
	}

	exists, err := s.client.BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err := s.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}

		policy := fmt.Sprintf(`{
			"Version": "2012-10-17",
			"Statement": [
				{
					"Effect": "Allow",
					"Principal": "*",
					"Action": "s3:GetObject",
					"Resource": "arn:aws:s3:::%s/*"
				}
			]
		}`, bucketName)

		if err := s.client.SetBucketPolicy(ctx, bucketName, policy); err != nil {
			return fmt.Errorf("failed to set bucket policy: %w", err)
		}
		slog.Info("MinIO bucket created", "bucket", bucketName)
	}

	s.ensured.Store(bucketName, struct{}{})
	return nil
}

func (s *MinioStore) Upload(ctx context.Context, bucketName, objectName string, data []byte, contentType string) error {
	if err := s.ensureBucket(ctx, bucketName); err != nil {
		return err
	}

	_, err := s.client.PutObject(ctx, bucketName, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload file: %w", err)
	}
	return nil
}

func (s *MinioStore) Download(ctx context.Context, bucketName, objectName string) ([]byte, error) {
	object, err := s.client.GetObject(ctx, bucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

func (s *MinioStore) Delete(ctx context.Context, bucketName, objectName string) error {
	if err := s.client.RemoveObject(ctx, bucketName, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *MinioStore) ListOlderThan(ctx context.Context, bucketName, prefix string, before time.Time) ([]string, error) {
	var names []string

	objectCh := s.client.ListObjects(ctx, bucketName, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})
	for object := range objectCh {
		if object.Err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", object.Err)
		}
		if object.LastModified.Before(before) {
			names = append(names, object.Key)
		}
	}
	return names, nil
}

func (s *MinioStore) PublicURL(bucketName, objectName string) string {
	scheme := "http"
	if s.secure {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, bucketName, escapeObjectPath(objectName))
}

// ExtractObjectNameFromURL extracts the object name from a public object URL
// Example: https://endpoint/bucket/path/to/file.jpg -> path/to/file.jpg
func ExtractObjectNameFromURL(url string, bucketName string) (string, error) {
	if url == "" {
		return "", fmt.Errorf("URL is empty")
	}

	bucketPrefix := fmt.Sprintf("/%s/", bucketName)
	idx := strings.Index(url, bucketPrefix)
	if idx == -1 {
		return "", fmt.Errorf("bucket name not found in URL")
	}

	objectName, err := neturl.PathUnescape(url[idx+len(bucketPrefix):])
	if err != nil {
		return "", fmt.Errorf("invalid object name: %w", err)
	}
	if objectName == "" {
		return "", fmt.Errorf("object name is empty")
	}

	return objectName, nil
}
