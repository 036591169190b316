package renderer

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/HermawanSutanto/sertifikat-lokal2/type/shared/model"
	"golang.org/x/sync/errgroup"
)

const archiveDownloadConcurrency = 8

// CertificateLister lists every certificate a user owns.
type CertificateLister interface {
	GetAllByUser(ctx context.Context, userID string) ([]*model.Certificate, error)
}

type Archive struct {
	URL        string
	ObjectPath string
	Count      int
	Omitted    int
}

// ArchiveBuilder bundles a user's certificates into a single zip object.
type ArchiveBuilder struct {
	store   CertificateLister
	blobs   BlobStore
	buckets Buckets
}

func NewArchiveBuilder(store CertificateLister, blobs BlobStore, buckets Buckets) *ArchiveBuilder {
	return &ArchiveBuilder{store: store, blobs: blobs, buckets: buckets}
}

func (b *ArchiveBuilder) Build(ctx context.Context, userID string) (*Archive, error) {
	certificates, err := b.store.GetAllByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list certificates: %w", err)
	}
	if len(certificates) == 0 {
		return nil, ErrArchiveEmpty
	}

	files := make([][]byte, len(certificates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(archiveDownloadConcurrency)
	for i, cert := range certificates {
		if cert.ObjectPath == "" {
			slog.Warn("ArchiveBuilder certificate has no object path", "certificate_id", cert.ID)
			continue
		}
		g.Go(func() error {
			data, err := b.blobs.Download(gctx, b.buckets.Certificate, cert.ObjectPath)
			if err != nil {
				slog.Warn("ArchiveBuilder download failed", "certificate_id", cert.ID, "object", cert.ObjectPath, "error", err)
				return nil
			}
			files[i] = data
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	names := make(map[string]bool, len(certificates))
	count := 0
	for i, cert := range certificates {
		if files[i] == nil {
			continue
		}
		header := &zip.FileHeader{
			Name:     archiveEntryName(names, cert),
			Method:   zip.Deflate,
			Modified: cert.CreatedAt,
		}
		w, err := zw.CreateHeader(header)
		if err != nil {
			return nil, fmt.Errorf("create zip entry: %w", err)
		}
		if _, err := w.Write(files[i]); err != nil {
			return nil, fmt.Errorf("write zip entry: %w", err)
		}
		count++
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close zip: %w", err)
	}

	if count == 0 {
		return nil, ErrArchiveDownload
	}

	objectPath := fmt.Sprintf("arsip-zip/sertifikat-%s-%d.zip", userID, time.Now().UnixNano())
	if err := b.blobs.Upload(ctx, b.buckets.Archive, objectPath, buf.Bytes(), "application/zip"); err != nil {
		return nil, fmt.Errorf("upload archive: %w", err)
	}

	slog.Info("ArchiveBuilder archive uploaded", "user_id", userID, "object", objectPath, "entries", count, "omitted", len(certificates)-count)

	return &Archive{
		URL:        b.blobs.PublicURL(b.buckets.Archive, objectPath),
		ObjectPath: objectPath,
		Count:      count,
		Omitted:    len(certificates) - count,
	}, nil
}

// archiveEntryName names an entry after the primary value, adding -2, -3, ... to repeats.
func archiveEntryName(taken map[string]bool, cert *model.Certificate) string {
	ext := strings.TrimPrefix(path.Ext(cert.ObjectPath), ".")
	if ext == "" {
		ext = "jpg"
	}
	base := "sertifikat-" + FileSlug(cert.PrimaryValue)

	name := base + "." + ext
	for n := 2; taken[name]; n++ {
		name = fmt.Sprintf("%s-%d.%s", base, n, ext)
	}
	taken[name] = true
	return name
}
