package renderer

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"time"

	"github.com/HermawanSutanto/sertifikat-lokal2/type/shared/model"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultRenderTimeout = 120 * time.Second
	uploadConcurrency    = 16
)

// BlobStore is the object storage the renderer writes to and reads from.
type BlobStore interface {
	Upload(ctx context.Context, bucket, objectPath string, data []byte, contentType string) error
	Download(ctx context.Context, bucket, objectPath string) ([]byte, error)
	PublicURL(bucket, objectPath string) string
}

// CertificateStore persists the records of a batch as one atomic write.
type CertificateStore interface {
	InsertBatch(ctx context.Context, certificates []*model.Certificate) error
}

type Buckets struct {
	Template    string
	Certificate string
	Archive     string
}

type BatchOptions struct {
	Buckets       Buckets
	Format        OutputFormat
	RenderTimeout time.Duration
	Workers       int
	VerifyHost    string
}

type BatchOrchestrator struct {
	fonts      FontSource
	blobs      BlobStore
	store      CertificateStore
	rasterizer *Rasterizer
	opts       BatchOptions
}

func NewBatchOrchestrator(fonts FontSource, blobs BlobStore, store CertificateStore, opts BatchOptions) *BatchOrchestrator {
	if opts.RenderTimeout <= 0 {
		opts.RenderTimeout = DefaultRenderTimeout
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.Format == "" {
		opts.Format = FormatJPEG
	}
	return &BatchOrchestrator{
		fonts:      fonts,
		blobs:      blobs,
		store:      store,
		rasterizer: NewRasterizer(),
		opts:       opts,
	}
}

// GenerateInput is one generation request. Mapping is nil for identity resolution
// (manual entry) and required for tabular data.
type GenerateInput struct {
	UserID       string
	Template     []byte
	Elements     []model.TextElement
	Rows         []Row
	Mapping      FieldMapping
	Tabular      bool
	PreviewWidth int
	QR           *QROptions
}

func (in GenerateInput) Validate() error {
	if in.UserID == "" {
		return fmt.Errorf("%w: missing user", ErrValidation)
	}
	if len(in.Template) == 0 {
		return fmt.Errorf("%w: template image is required", ErrValidation)
	}
	if len(in.Elements) == 0 {
		return fmt.Errorf("%w: at least one text element is required", ErrValidation)
	}
	if len(in.Rows) == 0 {
		return fmt.Errorf("%w: no data rows", ErrValidation)
	}
	if in.Tabular && len(in.Mapping) == 0 {
		return fmt.Errorf("%w: column mapping is required for tabular data", ErrValidation)
	}

	labels := make(map[string]struct{}, len(in.Elements))
	for _, el := range in.Elements {
		if el.Label == "" {
			return fmt.Errorf("%w: text element without label", ErrValidation)
		}
		if _, dup := labels[el.Label]; dup {
			return fmt.Errorf("%w: duplicate label %q", ErrValidation, el.Label)
		}
		labels[el.Label] = struct{}{}
	}
	return nil
}

type BatchStatus string

const (
	BatchSuccess        BatchStatus = "success"
	BatchPartialSuccess BatchStatus = "partial_success"
	BatchFailed         BatchStatus = "failed"
)

type SkippedRow struct {
	Index        int    `json:"index"`
	PrimaryValue string `json:"primaryValue,omitempty"`
	Reason       string `json:"reason"`
}

type BatchResult struct {
	BatchID         string
	Status          BatchStatus
	TemplateURL     string
	CertificateURLs []string
	Certificates    []*model.Certificate
	Skipped         []SkippedRow
	FontFailures    map[string]string
}

// Generate renders, uploads and records every row of the request. Rows are independent:
// a failing row is reported in Skipped and never fails the batch. Once the render
// timeout passes no new row starts, and rows already rendered are still stored.
func (o *BatchOrchestrator) Generate(ctx context.Context, in GenerateInput) (*BatchResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	tpl, err := IngestTemplate(in.Template)
	if err != nil {
		return nil, err
	}

	families := make([]string, 0, len(in.Elements))
	for _, el := range in.Elements {
		families = append(families, el.FontFamily)
	}
	distinct := DistinctFamilies(families)
	failures := o.warmFonts(ctx, distinct)
	if len(failures) == len(distinct) {
		return nil, fmt.Errorf("%w: %v", ErrFontCatalogDown, distinct)
	}

	result := &BatchResult{
		BatchID:      uuid.NewString(),
		FontFailures: failures,
	}

	scale := NewScale(tpl.Width, tpl.Height, in.PreviewWidth)
	rowRenderer := &RowRenderer{
		Template:   tpl,
		Elements:   in.Elements,
		Mapping:    in.Mapping,
		Scale:      scale,
		Fonts:      o.fonts,
		Rasterizer: o.rasterizer,
		Format:     o.opts.Format,
		QR:         o.qrOptions(in.QR),

		UnavailableFonts: failures,
	}

	slog.Info("BatchOrchestrator rendering",
		"batch_id", result.BatchID,
		"user_id", in.UserID,
		"rows", len(in.Rows),
		"elements", len(in.Elements),
		"template_width", tpl.Width,
		"template_height", tpl.Height,
	)

	renderCtx, cancel := context.WithTimeout(ctx, o.opts.RenderTimeout)
	rows := o.renderRows(renderCtx, rowRenderer, in.Rows)
	cancel()

	// Rendered rows are stored even if the request is cancelled from here on.
	storeCtx := context.WithoutCancel(ctx)

	rendered := 0
	for _, row := range rows {
		if row.Status == RowRendered {
			rendered++
		} else {
			result.Skipped = append(result.Skipped, SkippedRow{Index: row.Index, PrimaryValue: row.PrimaryValue, Reason: row.Reason})
		}
	}
	if rendered == 0 {
		result.Status = BatchFailed
		return result, fmt.Errorf("%w: %d rows skipped", ErrNoRenderableRows, len(rows))
	}

	result.TemplateURL = o.storeTemplate(storeCtx, in.UserID, result.BatchID, tpl)

	createdAt := time.Now().UTC().Truncate(time.Millisecond)
	certificates, uploadSkips := o.uploadRows(storeCtx, in, result, rows, createdAt)
	result.Skipped = append(result.Skipped, uploadSkips...)
	sort.Slice(result.Skipped, func(i, j int) bool { return result.Skipped[i].Index < result.Skipped[j].Index })

	if len(certificates) == 0 {
		result.Status = BatchFailed
		return result, ErrUploadFailed
	}

	if err := o.store.InsertBatch(storeCtx, certificates); err != nil {
		slog.Error("BatchOrchestrator persist failed", "batch_id", result.BatchID, "count", len(certificates), "error", err)
		result.Status = BatchFailed
		return result, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	result.Certificates = certificates
	result.CertificateURLs = make([]string, 0, len(certificates))
	for _, cert := range certificates {
		result.CertificateURLs = append(result.CertificateURLs, cert.CertificateURL)
	}

	result.Status = BatchSuccess
	if len(result.Skipped) > 0 {
		result.Status = BatchPartialSuccess
	}

	slog.Info("BatchOrchestrator done",
		"batch_id", result.BatchID,
		"status", result.Status,
		"stored", len(certificates),
		"skipped", len(result.Skipped),
	)
	return result, nil
}

func (o *BatchOrchestrator) warmFonts(ctx context.Context, families []string) map[string]string {
	type warmer interface {
		Warm(ctx context.Context, families []string) map[string]error
	}

	var errs map[string]error
	if w, ok := o.fonts.(warmer); ok {
		errs = w.Warm(ctx, families)
	} else {
		errs = make(map[string]error)
		for _, family := range families {
			if _, err := o.fonts.Get(ctx, family); err != nil {
				errs[family] = err
			}
		}
	}

	failures := make(map[string]string, len(errs))
	for family, err := range errs {
		slog.Warn("BatchOrchestrator font unavailable", "family", family, "error", err)
		failures[family] = err.Error()
	}
	return failures
}

func (o *BatchOrchestrator) qrOptions(qr *QROptions) *QROptions {
	if qr == nil || !qr.Enabled {
		return nil
	}
	opts := *qr
	if opts.VerifyHost == "" {
		opts.VerifyHost = o.opts.VerifyHost
	}
	return &opts
}

func (o *BatchOrchestrator) renderRows(ctx context.Context, r *RowRenderer, rows []Row) []RowResult {
	results := make([]RowResult, len(rows))

	var g errgroup.Group
	g.SetLimit(o.opts.Workers)
	for i, row := range rows {
		if ctx.Err() != nil {
			results[i] = timedOutRow(i)
			continue
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				results[i] = timedOutRow(i)
				return nil
			}
			results[i] = renderRowSafely(ctx, r, i, row)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func timedOutRow(index int) RowResult {
	return RowResult{Index: index, Status: RowFailed, Reason: "render timeout reached before the row started"}
}

func renderRowSafely(ctx context.Context, r *RowRenderer, index int, row Row) (result RowResult) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("BatchOrchestrator row panicked", "row", index, "panic", rec)
			result = RowResult{Index: index, Status: RowFailed, Reason: fmt.Sprintf("panic: %v", rec)}
		}
	}()
	return r.Render(ctx, index, row)
}

func (o *BatchOrchestrator) storeTemplate(ctx context.Context, userID, batchID string, tpl *Template) string {
	objectPath := fmt.Sprintf("%s/template-%s.%s", userID, batchID, tpl.Extension())
	if err := o.blobs.Upload(ctx, o.opts.Buckets.Template, objectPath, tpl.Bytes, tpl.ContentType); err != nil {
		slog.Warn("BatchOrchestrator template upload failed", "batch_id", batchID, "error", err)
		return ""
	}
	return o.blobs.PublicURL(o.opts.Buckets.Template, objectPath)
}

func (o *BatchOrchestrator) uploadRows(ctx context.Context, in GenerateInput, batch *BatchResult, rows []RowResult, createdAt time.Time) ([]*model.Certificate, []SkippedRow) {
	stored := make([]*model.Certificate, len(rows))
	failed := make([]*SkippedRow, len(rows))

	var g errgroup.Group
	g.SetLimit(uploadConcurrency)
	for i := range rows {
		row := rows[i]
		if row.Status != RowRendered {
			continue
		}
		g.Go(func() error {
			objectPath := fmt.Sprintf("%s/sertifikat-%s-%s.%s", in.UserID, FileSlug(row.PrimaryValue), row.ID, o.opts.Format.Extension())
			if err := o.blobs.Upload(ctx, o.opts.Buckets.Certificate, objectPath, row.Image, o.opts.Format.ContentType()); err != nil {
				slog.Warn("BatchOrchestrator upload failed", "row", row.Index, "object", objectPath, "error", err)
				failed[i] = &SkippedRow{Index: row.Index, PrimaryValue: row.PrimaryValue, Reason: "upload failed: " + err.Error()}
				return nil
			}
			stored[i] = &model.Certificate{
				ID:             row.ID,
				UserID:         in.UserID,
				BatchID:        batch.BatchID,
				PrimaryValue:   row.PrimaryValue,
				CertificateURL: o.blobs.PublicURL(o.opts.Buckets.Certificate, objectPath),
				ObjectPath:     objectPath,
				TemplateURL:    batch.TemplateURL,
				RowData:        row.Row.Map(),
				Elements:       in.Elements,
				PreviewWidth:   in.PreviewWidth,
				SkippedLayers:  row.SkippedLayers(),
				CreatedAt:      createdAt,
			}
			return nil
		})
	}
	_ = g.Wait()

	certificates := make([]*model.Certificate, 0, len(rows))
	var skipped []SkippedRow
	for i := range rows {
		if stored[i] != nil {
			certificates = append(certificates, stored[i])
		}
		if failed[i] != nil {
			skipped = append(skipped, *failed[i])
		}
	}
	return certificates, skipped
}
