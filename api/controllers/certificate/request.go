package certificate_controller

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/HermawanSutanto/sertifikat-lokal2/common/util"
	"github.com/HermawanSutanto/sertifikat-lokal2/internal/renderer"
	"github.com/HermawanSutanto/sertifikat-lokal2/type/payload"
	"github.com/HermawanSutanto/sertifikat-lokal2/type/shared/model"
	"github.com/gofiber/fiber/v2"
)

const (
	LegacyPrimaryLabel   = "nama"
	LegacySecondaryLabel = "keterangan"

	defaultFontSize          = 48
	defaultSecondaryFontSize = 24
	defaultSecondaryY        = 0.6
)

type elementList struct {
	Elements []model.TextElement `validate:"required,min=1,dive"`
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", renderer.ErrValidation, fmt.Sprintf(format, args...))
}

// parseGenerateRequest reads the multipart generate form. Element-driven requests carry
// textElements plus csvFile, csvData or a names list; anything else is read as the flat
// single-name form with an optional secondary line.
func parseGenerateRequest(c *fiber.Ctx, userId string) (renderer.GenerateInput, error) {
	in := renderer.GenerateInput{
		UserID:       userId,
		PreviewWidth: renderer.DefaultPreviewWidth,
	}

	templateFile, err := c.FormFile("template")
	if err != nil {
		return in, invalid("template image is required")
	}
	in.Template, err = readFormFile(templateFile)
	if err != nil {
		return in, invalid("template image could not be read")
	}

	if raw := c.FormValue("previewWidth"); raw != "" {
		if width, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && width > 0 {
			in.PreviewWidth = width
		}
	}

	if raw := c.FormValue("qr"); raw != "" {
		var qr payload.QRPayload
		if err := json.Unmarshal([]byte(raw), &qr); err != nil {
			return in, invalid("qr must be a JSON object")
		}
		if err := util.ValidateStruct(qr); err != nil {
			return in, invalid("%s", strings.Join(util.GetValidationErrors(err), ", "))
		}
		if qr.Enabled {
			in.QR = &renderer.QROptions{
				Enabled:     true,
				Position:    qr.PositionPercent,
				SizePercent: qr.SizePercent,
			}
		}
	}

	if raw := c.FormValue("textElements"); raw != "" {
		err = parseElementRequest(c, raw, &in)
	} else {
		err = parseLegacyRequest(c, &in)
	}
	return in, err
}

func parseElementRequest(c *fiber.Ctx, rawElements string, in *renderer.GenerateInput) error {
	var list elementList
	if err := json.Unmarshal([]byte(rawElements), &list.Elements); err != nil {
		return invalid("textElements must be a JSON array")
	}
	if err := util.ValidateStruct(list); err != nil {
		return invalid("%s", strings.Join(util.GetValidationErrors(err), ", "))
	}
	in.Elements = list.Elements
	for i := range in.Elements {
		in.Elements[i].FontSize = positiveOr(in.Elements[i].FontSize, defaultFontSize)
	}

	switch {
	case hasFormFile(c, "csvFile"):
		file, _ := c.FormFile("csvFile")
		raw, err := readFormFile(file)
		if err != nil {
			return invalid("csvFile could not be read")
		}
		headers, records, err := util.ParseCSV(bytes.NewReader(raw))
		if err != nil {
			if errors.Is(err, util.ErrCSVEmpty) {
				return invalid("csvFile has no rows")
			}
			return invalid("csvFile is not valid CSV: %v", err)
		}
		for _, record := range records {
			in.Rows = append(in.Rows, renderer.NewRow(headers, record))
		}
		in.Tabular = true
	case c.FormValue("csvData") != "":
		rows, err := parseCSVData(c.FormValue("csvData"))
		if err != nil {
			return err
		}
		in.Rows = rows
		in.Tabular = true
	default:
		primary, _ := renderer.PrimaryElement(in.Elements)
		for _, name := range splitList(namesValue(c)) {
			in.Rows = append(in.Rows, renderer.NewRow([]string{primary.Label}, []string{name}))
		}
	}

	if in.Tabular {
		raw := c.FormValue("mapping")
		if raw == "" {
			return invalid("mapping is required for CSV data")
		}
		var mapping map[string]string
		if err := json.Unmarshal([]byte(raw), &mapping); err != nil {
			return invalid("mapping must be a JSON object")
		}
		in.Mapping = renderer.FieldMapping(mapping)
	}

	if len(in.Rows) == 0 {
		return invalid("no data rows")
	}
	return nil
}

// parseCSVData decodes a JSON array of objects. Non-string cells are kept in their JSON text form.
func parseCSVData(raw string) ([]renderer.Row, error) {
	decoder := json.NewDecoder(strings.NewReader(raw))
	decoder.UseNumber()

	var records []map[string]any
	if err := decoder.Decode(&records); err != nil {
		return nil, invalid("csvData must be a JSON array of objects")
	}

	rows := make([]renderer.Row, 0, len(records))
	for _, record := range records {
		values := make(map[string]string, len(record))
		for column, cell := range record {
			switch v := cell.(type) {
			case nil:
				values[column] = ""
			case string:
				values[column] = v
			default:
				values[column] = fmt.Sprint(v)
			}
		}
		rows = append(rows, renderer.RowFromMap(values))
	}
	return rows, nil
}

func parseLegacyRequest(c *fiber.Ctx, in *renderer.GenerateInput) error {
	var form payload.LegacyTextFields
	if err := c.BodyParser(&form); err != nil {
		return invalid("malformed form fields")
	}

	names := splitList(namesValue(c))
	if len(names) == 0 {
		return invalid("names are required")
	}

	primary := model.TextElement{
		Label:      LegacyPrimaryLabel,
		FontFamily: orDefault(form.FontFamily, renderer.DefaultFontFamily),
		FontSize:   positiveOr(form.FontSize, defaultFontSize),
		TextColor:  orDefault(form.TextColor, renderer.DefaultTextColor),
		PositionPercent: model.Position{
			X: nonZeroOr(form.PositionXPercent, 0.5),
			Y: nonZeroOr(form.PositionYPercent, 0.5),
		},
		IsLocked: true,
	}
	in.Elements = []model.TextElement{primary}

	var secondary []string
	if form.SecondaryTextField != "" {
		secondary = splitKeepEmpty(form.SecondaryTextField)
		in.Elements = append(in.Elements, model.TextElement{
			Label:      LegacySecondaryLabel,
			FontFamily: orDefault(form.SecondaryFontFamily, primary.FontFamily),
			FontSize:   positiveOr(form.SecondaryFontSize, defaultSecondaryFontSize),
			TextColor:  orDefault(form.SecondaryTextColor, primary.TextColor),
			PositionPercent: model.Position{
				X: nonZeroOr(form.SecondaryPositionXPercent, 0.5),
				Y: nonZeroOr(form.SecondaryPositionYPercent, defaultSecondaryY),
			},
		})
	}

	for i, name := range names {
		row := renderer.NewRow([]string{LegacyPrimaryLabel}, []string{name})
		if secondary != nil {
			value := ""
			if i < len(secondary) {
				value = secondary[i]
			}
			row.Set(LegacySecondaryLabel, value)
		}
		in.Rows = append(in.Rows, row)
	}
	return nil
}

func namesValue(c *fiber.Ctx) string {
	if names := c.FormValue("names"); names != "" {
		return names
	}
	return c.FormValue("namesField")
}

// splitList splits a comma separated list, dropping blank entries.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// splitKeepEmpty keeps positions so secondary values stay aligned with names.
func splitKeepEmpty(raw string) []string {
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func hasFormFile(c *fiber.Ctx, key string) bool {
	file, err := c.FormFile(key)
	return err == nil && file != nil
}

func readFormFile(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

func orDefault(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}

func positiveOr(value, def int) int {
	if value <= 0 {
		return def
	}
	return value
}

func nonZeroOr(value, def float64) float64 {
	if value == 0 {
		return def
	}
	return value
}
