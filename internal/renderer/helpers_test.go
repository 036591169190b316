package renderer

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/HermawanSutanto/sertifikat-lokal2/type/shared/model"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

type fontServer struct {
	*httptest.Server
	hits atomic.Int32
}

// newFontServer serves goregular for every path except /missing.ttf.
func newFontServer(t *testing.T) *fontServer {
	t.Helper()
	fs := &fontServer{}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fs.hits.Add(1)
		if r.URL.Path == "/missing.ttf" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "font/ttf")
		_, _ = w.Write(goregular.TTF)
	}))
	t.Cleanup(fs.Close)
	return fs
}

func (fs *fontServer) cache() *FontCache {
	return NewFontCache(fs.Client(), map[string]string{
		"Roboto":           fs.URL + "/roboto.ttf",
		"Montserrat":       fs.URL + "/montserrat.ttf",
		"Playfair Display": fs.URL + "/playfair.ttf",
		"Arial":            fs.URL + "/roboto.ttf",
		"Broken":           fs.URL + "/missing.ttf",
	})
}

type memoryBlobs struct {
	mu           sync.Mutex
	objects      map[string][]byte
	failUpload   func(objectPath string) bool
	failDownload func(objectPath string) bool
}

func newMemoryBlobs() *memoryBlobs {
	return &memoryBlobs{objects: make(map[string][]byte)}
}

func (m *memoryBlobs) Upload(_ context.Context, bucket, objectPath string, data []byte, _ string) error {
	if m.failUpload != nil && m.failUpload(objectPath) {
		return errors.New("upload refused")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[bucket+"/"+objectPath] = append([]byte(nil), data...)
	return nil
}

func (m *memoryBlobs) Download(_ context.Context, bucket, objectPath string) ([]byte, error) {
	if m.failDownload != nil && m.failDownload(objectPath) {
		return nil, errors.New("download refused")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[bucket+"/"+objectPath]
	if !ok {
		return nil, errors.New("object not found")
	}
	return data, nil
}

func (m *memoryBlobs) PublicURL(bucket, objectPath string) string {
	return "http://blobs.test/" + bucket + "/" + objectPath
}

func (m *memoryBlobs) get(bucket, objectPath string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[bucket+"/"+objectPath]
	return data, ok
}

type fakeStore struct {
	mu        sync.Mutex
	batches   [][]*model.Certificate
	insertErr error
	all       []*model.Certificate
}

func (s *fakeStore) InsertBatch(_ context.Context, certificates []*model.Certificate) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches = append(s.batches, certificates)
	return nil
}

func (s *fakeStore) GetAllByUser(_ context.Context, userID string) ([]*model.Certificate, error) {
	var owned []*model.Certificate
	for _, cert := range s.all {
		if cert.UserID == userID {
			owned = append(owned, cert)
		}
	}
	return owned, nil
}

var testBuckets = Buckets{Template: "templates", Certificate: "certificates", Archive: "archives"}

func solidPNG(t *testing.T, width, height int, fill color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, fill)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// darkPixels counts pixels inside r noticeably darker than white.
func darkPixels(img image.Image, r image.Rectangle) int {
	count := 0
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			red, green, blue, _ := img.At(x, y).RGBA()
			if (red+green+blue)/3 < 0x8000 {
				count++
			}
		}
	}
	return count
}
