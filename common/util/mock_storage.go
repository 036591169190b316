package util

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

type memoryObject struct {
	data        []byte
	contentType string
	modified    time.Time
}

// MemoryBlobStore is an in-process BlobStore for tests and local runs without object storage.
type MemoryBlobStore struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
	BaseURL string
	Now     func() time.Time
}

func NewMemoryBlobStore(baseURL string) *MemoryBlobStore {
	return &MemoryBlobStore{
		objects: make(map[string]memoryObject),
		BaseURL: baseURL,
		Now:     time.Now,
	}
}

func memoryKey(bucketName, objectName string) string {
	return bucketName + "/" + objectName
}

func (m *MemoryBlobStore) Upload(_ context.Context, bucketName, objectName string, data []byte, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[memoryKey(bucketName, objectName)] = memoryObject{
		data:        append([]byte(nil), data...),
		contentType: contentType,
		modified:    m.Now(),
	}
	return nil
}

func (m *MemoryBlobStore) Download(_ context.Context, bucketName, objectName string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[memoryKey(bucketName, objectName)]
	if !ok {
		return nil, fmt.Errorf("object %s/%s not found", bucketName, objectName)
	}
	return append([]byte(nil), obj.data...), nil
}

func (m *MemoryBlobStore) Delete(_ context.Context, bucketName, objectName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, memoryKey(bucketName, objectName))
	return nil
}

func (m *MemoryBlobStore) ListOlderThan(_ context.Context, bucketName, prefix string, before time.Time) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var names []string
	for key, obj := range m.objects {
		name, ok := strings.CutPrefix(key, bucketName+"/")
		if !ok || !strings.HasPrefix(name, prefix) {
			continue
		}
		if obj.modified.Before(before) {
			names = append(names, name)
		}
	}
	return names, nil
}

func (m *MemoryBlobStore) PublicURL(bucketName, objectName string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(m.BaseURL, "/"), bucketName, escapeObjectPath(objectName))
}

// Objects lists the keys currently stored in bucketName.
func (m *MemoryBlobStore) Objects(bucketName string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var names []string
	for key := range m.objects {
		if name, ok := strings.CutPrefix(key, bucketName+"/"); ok {
			names = append(names, name)
		}
	}
	return names
}
