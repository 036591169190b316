package util

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupOldArchives(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryBlobStore("http://blobs.test")

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store.Now = func() time.Time { return now.Add(-48 * time.Hour) }
	require.NoError(t, store.Upload(ctx, "archives", ArchivePrefix+"sertifikat-u1-1.zip", []byte("old"), "application/zip"))
	require.NoError(t, store.Upload(ctx, "certificates", ArchivePrefix+"other-bucket.zip", []byte("old"), "application/zip"))
	require.NoError(t, store.Upload(ctx, "archives", "keep/not-an-archive.zip", []byte("old"), "application/zip"))

	store.Now = func() time.Time { return now.Add(-time.Hour) }
	require.NoError(t, store.Upload(ctx, "archives", ArchivePrefix+"sertifikat-u1-2.zip", []byte("new"), "application/zip"))

	deleted := CleanupOldArchives(ctx, store, "archives", now.Add(-ArchiveRetention))
	assert.Equal(t, 1, deleted)
	assert.ElementsMatch(t, []string{"keep/not-an-archive.zip", ArchivePrefix + "sertifikat-u1-2.zip"}, store.Objects("archives"))
	assert.Len(t, store.Objects("certificates"), 1)
}

func TestMemoryBlobStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryBlobStore("http://blobs.test/")

	require.NoError(t, store.Upload(ctx, "b", "a/b.jpg", []byte("data"), "image/jpeg"))
	data, err := store.Download(ctx, "b", "a/b.jpg")
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), data)
	assert.Equal(t, "http://blobs.test/b/a/b.jpg", store.PublicURL("b", "a/b.jpg"))

	require.NoError(t, store.Delete(ctx, "b", "a/b.jpg"))
	_, err = store.Download(ctx, "b", "a/b.jpg")
	assert.Error(t, err)
}

func TestPublicURLEscapesObjectNames(t *testing.T) {
	minioStore := &MinioStore{endpoint: "minio.test", secure: true}
	gcsStore := &GCSStore{}
	memory := NewMemoryBlobStore("http://blobs.test")

	stores := map[string]BlobStore{"minio": minioStore, "gcs": gcsStore, "memory": memory}
	objects := []string{"user-1/sertifikat-Budi #1.jpg", "user-1/Who?.jpg", "user-1/Rina 100%.jpg"}

	for name, store := range stores {
		for _, object := range objects {
			t.Run(name+" "+object, func(t *testing.T) {
				raw := store.PublicURL("certificates", object)
				u, err := url.Parse(raw)
				require.NoError(t, err)
				assert.Equal(t, "/certificates/"+object, u.Path)
				assert.Empty(t, u.RawQuery)
				assert.Empty(t, u.Fragment)

				back, err := ExtractObjectNameFromURL(raw, "certificates")
				require.NoError(t, err)
				assert.Equal(t, object, back)
			})
		}
	}
}

func TestExtractObjectNameFromURL(t *testing.T) {
	name, err := ExtractObjectNameFromURL("https://minio.test/certificates/u1/sertifikat-a.jpg", "certificates")
	require.NoError(t, err)
	assert.Equal(t, "u1/sertifikat-a.jpg", name)

	_, err = ExtractObjectNameFromURL("https://minio.test/other/x.jpg", "certificates")
	assert.Error(t, err)
}
