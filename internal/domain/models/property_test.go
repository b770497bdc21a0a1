package models_test

import (
	"testing"

	"listing_editor/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProperty_ToDraft(t *testing.T) {
	p := models.Property{
		ID:                 42,
		UniqueCode:         "ABC-1",
		Description:        "Sunny flat near the park",
		RoomCount:          3,
		BathroomCount:      0,
		SizeInSquareMeters: 72.5,
		Price:              150000,
		IsAvailable:        false,
		Images:             []string{"img/a.jpg"},
		PropertyType:       &models.CatalogItem{ID: 2, Name: "Flat"},
		SaleType:           &models.CatalogItem{ID: 1, Name: "Sale"},
		Improvements:       []models.CatalogItem{{ID: 4}, {ID: 7}},
	}

	d := p.ToDraft()

	require.NotNil(t, d.ID)
	assert.Equal(t, 42, *d.ID)
	assert.Equal(t, models.ModeEdit, d.Mode())
	assert.Equal(t, "2", d.PropertyTypeID)
	assert.Equal(t, "1", d.SaleTypeID)
	assert.Equal(t, []int{4, 7}, d.Improvements)
	require.NotNil(t, d.BathroomCount)
	assert.Equal(t, 0, *d.BathroomCount)
	assert.Equal(t, 72.5, *d.SizeInSquareMeters)
	assert.False(t, d.IsAvailable)
	assert.Empty(t, d.Images)
}

func TestPropertyDraft_Clone(t *testing.T) {
	rooms := 2
	d := models.PropertyDraft{RoomCount: &rooms, Improvements: []int{1}}

	c := d.Clone()
	*c.RoomCount = 5
	c.Improvements[0] = 9

	assert.Equal(t, 2, *d.RoomCount)
	assert.Equal(t, []int{1}, d.Improvements)
	assert.Equal(t, models.ModeCreate, d.Mode())
}

func TestValidationResult_Add(t *testing.T) {
	r := models.NewValidationResult()
	assert.True(t, r.Valid)

	r.Add("price", "first")
	r.Add("price", "second")

	msg, ok := r.Field("price")
	assert.True(t, ok)
	assert.Equal(t, "first", msg)
	assert.False(t, r.Valid)
}
