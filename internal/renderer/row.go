package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/HermawanSutanto/sertifikat-lokal2/type/shared/model"
	"github.com/google/uuid"
)

// Row is one data record. Field order is kept as given.
type Row struct {
	fields []string
	values map[string]string
}

// NewRow pairs fields with values by position. Missing values are empty.
func NewRow(fields []string, values []string) Row {
	row := Row{
		fields: make([]string, 0, len(fields)),
		values: make(map[string]string, len(fields)),
	}
	for i, field := range fields {
		value := ""
		if i < len(values) {
			value = values[i]
		}
		row.Set(field, value)
	}
	return row
}

// RowFromMap builds a row with fields in name order.
func RowFromMap(m map[string]string) Row {
	fields := make([]string, 0, len(m))
	for field := range m {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	row := Row{
		fields: fields,
		values: make(map[string]string, len(m)),
	}
	for field, value := range m {
		row.values[field] = value
	}
	return row
}

func (r *Row) Set(field, value string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	if _, ok := r.values[field]; !ok {
		r.fields = append(r.fields, field)
	}
	r.values[field] = value
}

func (r Row) Get(field string) (string, bool) {
	v, ok := r.values[field]
	return v, ok
}

func (r Row) Fields() []string {
	return append([]string(nil), r.fields...)
}

func (r Row) Map() map[string]string {
	m := make(map[string]string, len(r.values))
	for k, v := range r.values {
		m[k] = v
	}
	return m
}

// FieldMapping maps element labels to row fields. A nil mapping means identity:
// each label reads the field of the same name.
type FieldMapping map[string]string

// Resolve returns the trimmed value for label. It reports false when the label is
// unmapped, the field is absent, or the value is blank.
func (m FieldMapping) Resolve(row Row, label string) (string, bool) {
	field := label
	if m != nil {
		mapped, ok := m[label]
		if !ok || mapped == "" {
			return "", false
		}
		field = mapped
	}

	value, ok := row.Get(field)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}

type LayerStatus string

const (
	LayerRendered               LayerStatus = "rendered"
	LayerSkippedMissingValue    LayerStatus = "skipped_missing_value"
	LayerSkippedFontUnavailable LayerStatus = "skipped_font_unavailable"
	LayerFailed                 LayerStatus = "failed"
)

type LayerOutcome struct {
	Label  string      `json:"label"`
	Status LayerStatus `json:"status"`
	Reason string      `json:"reason,omitempty"`
}

type RowStatus string

const (
	RowRendered RowStatus = "rendered"
	RowSkipped  RowStatus = "skipped"
	RowFailed   RowStatus = "failed"
)

// RowResult is the outcome of rendering one row. Image is set only for rendered rows.
type RowResult struct {
	Index        int
	ID           string
	PrimaryValue string
	Row          Row
	Image        []byte
	Status       RowStatus
	Reason       string
	Layers       []LayerOutcome
}

// SkippedLayers lists the labels of layers that were not drawn.
func (r RowResult) SkippedLayers() []string {
	var skipped []string
	for _, layer := range r.Layers {
		if layer.Status != LayerRendered {
			skipped = append(skipped, layer.Label)
		}
	}
	return skipped
}

// RowRenderer draws the configured elements of a request onto copies of its template.
// A RowRenderer is shared by all rows of a batch and is safe for concurrent use.
type RowRenderer struct {
	Template   *Template
	Elements   []model.TextElement
	Mapping    FieldMapping
	Scale      Scale
	Fonts      FontSource
	Rasterizer *Rasterizer
	Format     OutputFormat
	QR         *QROptions

	// UnavailableFonts holds the families that failed to load before rendering.
	// Their layers are skipped without another fetch.
	UnavailableFonts map[string]string
}

// PrimaryElement is the locked element, or the first element when none is locked.
func PrimaryElement(elements []model.TextElement) (model.TextElement, bool) {
	if len(elements) == 0 {
		return model.TextElement{}, false
	}
	for _, el := range elements {
		if el.IsLocked {
			return el, true
		}
	}
	return elements[0], true
}

// PrimaryValue identifies a row. Rows without a value for the primary element get a
// synthetic identifier made unique by the row index.
func (r *RowRenderer) PrimaryValue(index int, row Row) string {
	if primary, ok := PrimaryElement(r.Elements); ok {
		if value, ok := r.Mapping.Resolve(row, primary.Label); ok {
			return value
		}
	}
	return fmt.Sprintf("sertifikat-%d-%d", time.Now().UnixNano(), index)
}

func (r *RowRenderer) Render(ctx context.Context, index int, row Row) RowResult {
	result := RowResult{
		Index:        index,
		ID:           uuid.NewString(),
		PrimaryValue: r.PrimaryValue(index, row),
		Row:          row,
		Layers:       make([]LayerOutcome, 0, len(r.Elements)),
	}

	canvas := r.Template.Canvas()
	rendered := 0
	for _, el := range r.Elements {
		outcome := r.drawElement(ctx, canvas, el, row)
		if outcome.Status == LayerRendered {
			rendered++
		} else if outcome.Status == LayerFailed {
			slog.Warn("RowRenderer layer failed", "row", index, "label", el.Label, "reason", outcome.Reason)
		}
		result.Layers = append(result.Layers, outcome)
	}

	if rendered == 0 {
		result.Status = RowSkipped
		result.Reason = "no text layer could be rendered"
		return result
	}

	if r.QR != nil && r.QR.Enabled {
		if err := drawQR(canvas, r.QR, result.ID, r.Scale); err != nil {
			slog.Warn("RowRenderer qr code failed", "row", index, "error", err)
		}
	}

	data, err := r.Format.Encode(canvas)
	if err != nil {
		result.Status = RowFailed
		result.Reason = err.Error()
		return result
	}

	result.Image = data
	result.Status = RowRendered
	return result
}

func (r *RowRenderer) drawElement(ctx context.Context, canvas *image.RGBA, el model.TextElement, row Row) LayerOutcome {
	outcome := LayerOutcome{Label: el.Label}

	value, ok := r.Mapping.Resolve(row, el.Label)
	if !ok {
		outcome.Status = LayerSkippedMissingValue
		return outcome
	}

	family := el.FontFamily
	if family == "" {
		family = DefaultFontFamily
	}
	if reason, unavailable := r.UnavailableFonts[family]; unavailable {
		outcome.Status = LayerSkippedFontUnavailable
		outcome.Reason = reason
		return outcome
	}

	asset, err := r.Fonts.Get(ctx, family)
	if err != nil {
		outcome.Status = LayerSkippedFontUnavailable
		if !errors.Is(err, ErrFontUnavailable) {
			outcome.Status = LayerFailed
		}
		outcome.Reason = err.Error()
		return outcome
	}

	style := LayerStyle{
		FontSize: r.Scale.FontSize(el.FontSize),
		Color:    el.TextColor,
	}
	doc, err := RenderLayer(value, style, r.Scale.Point(el.PositionPercent), r.Template.Size(), asset)
	if err != nil {
		outcome.Status = LayerFailed
		outcome.Reason = err.Error()
		return outcome
	}

	layer, painted, err := r.Rasterizer.Rasterize(doc)
	if err != nil {
		outcome.Status = LayerFailed
		outcome.Reason = err.Error()
		return outcome
	}

	draw.Draw(canvas, painted, layer, painted.Min, draw.Over)
	outcome.Status = LayerRendered
	return outcome
}

var unsafeSlugPattern = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// FileSlug turns a primary value into a file name fragment made of [A-Za-z0-9._-].
func FileSlug(value string) string {
	slug := unsafeSlugPattern.ReplaceAllString(value, "-")
	slug = strings.Trim(slug, "-.")
	if slug == "" {
		return "tanpa-nama"
	}
	return slug
}
