package renderer

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const DefaultFontFamily = "Roboto"

const robotoURL = "https://fonts.gstatic.com/s/roboto/v30/KFOmCnqEu92Fr1Me5Q.ttf"

// DefaultFontCatalog maps the families the editor offers to their font files.
// Arial has no free file and is served with Roboto.
var DefaultFontCatalog = map[string]string{
	"Roboto":           robotoURL,
	"Montserrat":       "https://fonts.gstatic.com/s/montserrat/v25/JTUHjIg1_i6t8kCHKm4532VJOt5-QNFgpCtr6Hw5aXo.ttf",
	"Playfair Display": "https://fonts.gstatic.com/s/playfairdisplay/v30/nuFvD-vYSZviVYUb_rj3ij__anPXJzDwcbmjWos7joP-pg.ttf",
	"Arial":            robotoURL,
}

// FontAsset is a fetched font file, base64 encoded for embedding in a layer document.
type FontAsset struct {
	Family         string
	ResolvedFamily string
	SourceURL      string
	Encoded        string
}

// FontSource resolves a family name to a font asset.
type FontSource interface {
	Get(ctx context.Context, family string) (*FontAsset, error)
}

// FontCache memoizes font assets for the lifetime of the process.
// Concurrent misses for the same family share one fetch. Failed fetches are not cached.
type FontCache struct {
	catalog  map[string]string
	client   *http.Client
	timeout  time.Duration
	fonts    *gocache.Cache
	inflight singleflight.Group
}

// NewFontCache builds a cache over the default catalog. Entries in catalog override
// or extend the defaults.
func NewFontCache(client *http.Client, catalog map[string]string) *FontCache {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	merged := make(map[string]string, len(DefaultFontCatalog)+len(catalog))
	for family, url := range DefaultFontCatalog {
		merged[family] = url
	}
	for family, url := range catalog {
		merged[family] = url
	}

	return &FontCache{
		catalog: merged,
		client:  client,
		timeout: 30 * time.Second,
		fonts:   gocache.New(gocache.NoExpiration, 0),
	}
}

// Families lists the catalog entries in name order.
func (f *FontCache) Families() []string {
	families := make([]string, 0, len(f.catalog))
	for family := range f.catalog {
		families = append(families, family)
	}
	sort.Strings(families)
	return families
}

// resolve returns the catalog family and URL used for a requested family.
// Unknown families fall back to the default family.
func (f *FontCache) resolve(family string) (string, string) {
	if url, ok := f.catalog[family]; ok {
		return family, url
	}
	if url, ok := f.catalog[DefaultFontFamily]; ok {
		return DefaultFontFamily, url
	}
	return DefaultFontFamily, robotoURL
}

func (f *FontCache) Get(ctx context.Context, family string) (*FontAsset, error) {
	if family == "" {
		family = DefaultFontFamily
	}

	if cached, found := f.fonts.Get(family); found {
		return cached.(*FontAsset), nil
	}

	ch := f.inflight.DoChan(family, func() (any, error) {
		if cached, found := f.fonts.Get(family); found {
			return cached, nil
		}
		asset, err := f.fetch(family)
		if err != nil {
			return nil, err
		}
		f.fonts.Set(family, asset, gocache.NoExpiration)
		return asset, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*FontAsset), nil
	}
}

// fetch runs detached from the caller context since other waiters may share its result.
func (f *FontCache) fetch(family string) (*FontAsset, error) {
	resolved, url := f.resolve(family)

	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFontUnavailable, family, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		slog.Warn("FontCache fetch failed", "family", family, "url", url, "error", err)
		return nil, fmt.Errorf("%w: %s: %v", ErrFontUnavailable, family, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Warn("FontCache fetch returned bad status", "family", family, "url", url, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: %s: status %d", ErrFontUnavailable, family, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFontUnavailable, family, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s: empty body", ErrFontUnavailable, family)
	}

	slog.Info("FontCache fetched font", "family", family, "resolved_family", resolved, "bytes", len(data))

	return &FontAsset{
		Family:         family,
		ResolvedFamily: resolved,
		SourceURL:      url,
		Encoded:        base64.StdEncoding.EncodeToString(data),
	}, nil
}

// Warm loads every distinct family concurrently and returns the failures keyed by family.
func (f *FontCache) Warm(ctx context.Context, families []string) map[string]error {
	distinct := DistinctFamilies(families)

	var mu sync.Mutex
	failed := make(map[string]error)

	var g errgroup.Group
	for _, family := range distinct {
		g.Go(func() error {
			if _, err := f.Get(ctx, family); err != nil {
				mu.Lock()
				failed[family] = err
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	return failed
}

// DistinctFamilies normalizes empty names to the default family and removes duplicates,
// keeping first-seen order.
func DistinctFamilies(families []string) []string {
	seen := make(map[string]struct{}, len(families))
	distinct := make([]string, 0, len(families))
	for _, family := range families {
		if family == "" {
			family = DefaultFontFamily
		}
		if _, ok := seen[family]; ok {
			continue
		}
		seen[family] = struct{}{}
		distinct = append(distinct, family)
	}
	return distinct
}
