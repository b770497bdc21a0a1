package editor_test

import (
	"io"
	"log/slog"
	"testing"

	"listing_editor/internal/domain/models"
	"listing_editor/internal/services/editor"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }

func fillDraft(t *testing.T, s *editor.Session) {
	t.Helper()
	err := s.ApplyPatch(editor.DraftPatch{
		Description:        strPtr("Quiet house with a large garden"),
		RoomCount:          strPtr("3"),
		BathroomCount:      strPtr("2"),
		SizeInSquareMeters: strPtr("120.5"),
		Price:              strPtr("250000"),
		PropertyTypeID:     strPtr("1"),
		SaleTypeID:         strPtr("2"),
	})
	require.NoError(t, err)
}

func jpeg(name string) models.ImageFile {
	return models.ImageFile{Name: name, ContentType: "image/jpeg", Size: 2048, Path: "/tmp/" + name}
}

func storedProperty(images ...string) *models.Property {
	return &models.Property{
		ID:                 11,
		UniqueCode:         "H-11",
		Description:        "Stored listing description",
		RoomCount:          4,
		BathroomCount:      2,
		SizeInSquareMeters: 140,
		Price:              320000,
		IsAvailable:        false,
		Images:             images,
		PropertyType:       &models.CatalogItem{ID: 3},
		SaleType:           &models.CatalogItem{ID: 1},
		Improvements:       []models.CatalogItem{{ID: 5}},
	}
}
