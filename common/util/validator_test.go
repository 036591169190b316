package util

import (
	"testing"

	"github.com/HermawanSutanto/sertifikat-lokal2/type/shared/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type designForm struct {
	Name     string              `validate:"required,max=20"`
	Format   string              `validate:"omitempty,oneof=jpeg webp"`
	Elements []model.TextElement `validate:"required,min=1,dive"`
}

func validElement() model.TextElement {
	return model.TextElement{
		Label:           "nama",
		FontFamily:      "Roboto",
		FontSize:        48,
		TextColor:       "#333333",
		PositionPercent: model.Position{X: 0.5, Y: 0.5},
	}
}

func TestValidateStruct(t *testing.T) {
	testCases := []struct {
		name       string
		form       designForm
		shouldFail bool
	}{
		{"Valid form", designForm{Name: "Seminar", Elements: []model.TextElement{validElement()}}, false},
		{"Missing name", designForm{Elements: []model.TextElement{validElement()}}, true},
		{"No elements", designForm{Name: "Seminar", Elements: []model.TextElement{}}, true},
		{"Bad format", designForm{Name: "Seminar", Format: "gif", Elements: []model.TextElement{validElement()}}, true},
		{"Element without label", designForm{Name: "Seminar", Elements: []model.TextElement{{FontSize: 10}}}, true},
		{"Element with bad color", designForm{Name: "Seminar", Elements: []model.TextElement{{Label: "x", TextColor: "blue"}}}, true},
		{"Element with negative size", designForm{Name: "Seminar", Elements: []model.TextElement{{Label: "x", FontSize: -1}}}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateStruct(tc.form)
			if tc.shouldFail {
				assert.Error(t, err, "Should fail validation")
			} else {
				assert.NoError(t, err, "Should pass validation")
			}
		})
	}
}

func TestGetValidationErrors(t *testing.T) {
	testCases := []struct {
		name          string
		form          designForm
		expectedError string
	}{
		{
			name:          "Required error",
			form:          designForm{Elements: []model.TextElement{validElement()}},
			expectedError: "Name is required",
		},
		{
			name:          "Max error",
			form:          designForm{Name: "a name that is far too long", Elements: []model.TextElement{validElement()}},
			expectedError: "Name must be at most 20 characters",
		},
		{
			name:          "Min items error",
			form:          designForm{Name: "Seminar", Elements: []model.TextElement{}},
			expectedError: "Elements must be at least 1 items",
		},
		{
			name:          "Oneof error",
			form:          designForm{Name: "Seminar", Format: "gif", Elements: []model.TextElement{validElement()}},
			expectedError: "Format must be one of: jpeg webp",
		},
		{
			name:          "Hex color error",
			form:          designForm{Name: "Seminar", Elements: []model.TextElement{{Label: "x", TextColor: "blue"}}},
			expectedError: "TextColor must be a hex color",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateStruct(tc.form)
			require.Error(t, err, "Should have validation error")

			errors := GetValidationErrors(err)
			assert.Contains(t, errors, tc.expectedError)
		})
	}
}

func TestGetValidationErrors_NonValidationError(t *testing.T) {
	assert.Empty(t, GetValidationErrors(assert.AnError))
	assert.Empty(t, GetValidationErrors(nil))
}
