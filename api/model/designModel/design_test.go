package designmodel

import (
	"testing"

	"github.com/HermawanSutanto/sertifikat-lokal2/test/helpers"
	"github.com/HermawanSutanto/sertifikat-lokal2/type/payload"
	"github.com/HermawanSutanto/sertifikat-lokal2/type/shared/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePayload(name string) payload.CreateDesignPayload {
	return payload.CreateDesignPayload{
		Name:         name,
		TemplateURL:  "http://blobs.test/templates/user-1/template.jpg",
		Width:        2000,
		Height:       1414,
		PreviewWidth: 500,
		Elements: []model.TextElement{
			{Label: "nama", FontFamily: "Montserrat", FontSize: 32, TextColor: "#112233", PositionPercent: model.Position{X: 0.5, Y: 0.45}, IsLocked: true},
			{Label: "kota", FontSize: 18, PositionPercent: model.Position{X: 0.5, Y: 0.6}},
		},
	}
}

// TestDesignRepository_Create tests design creation and the json elements column
func TestDesignRepository_Create(t *testing.T) {
	container := helpers.SetupTestDatabase(t)
	db := helpers.GetTestDB(t, container)
	repo := NewDesignRepository(db)

	design, err := repo.Create(samplePayload("Seminar"), "user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, design.ID)
	helpers.AssertRecordExists(t, db, &model.DesignTemplate{}, "id = ?", design.ID)

	found, err := repo.GetById(design.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Seminar", found.Name)
	require.Len(t, found.Elements, 2)
	assert.Equal(t, "Montserrat", found.Elements[0].FontFamily)
	assert.True(t, found.Elements[0].IsLocked)
	assert.Equal(t, 0.6, found.Elements[1].PositionPercent.Y)
}

func TestDesignRepository_GetById_NotFound(t *testing.T) {
	container := helpers.SetupTestDatabase(t)
	db := helpers.GetTestDB(t, container)
	repo := NewDesignRepository(db)

	found, err := repo.GetById("nonexistent")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestDesignRepository_GetByUserAndDelete(t *testing.T) {
	container := helpers.SetupTestDatabase(t)
	db := helpers.GetTestDB(t, container)
	repo := NewDesignRepository(db)

	first, err := repo.Create(samplePayload("A"), "user-1")
	require.NoError(t, err)
	_, err = repo.Create(samplePayload("B"), "user-1")
	require.NoError(t, err)
	_, err = repo.Create(samplePayload("C"), "user-2")
	require.NoError(t, err)

	designs, err := repo.GetByUser("user-1")
	require.NoError(t, err)
	assert.Len(t, designs, 2)

	deleted, err := repo.Delete(first.ID, "user-2")
	require.NoError(t, err)
	assert.False(t, deleted, "other users cannot delete the design")

	deleted, err = repo.Delete(first.ID, "user-1")
	require.NoError(t, err)
	assert.True(t, deleted)

	designs, err = repo.GetByUser("user-1")
	require.NoError(t, err)
	assert.Len(t, designs, 1)
}
