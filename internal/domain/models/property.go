package models

import (
	"strconv"
)

// Property объявление в том виде, в каком его хранит внешний API.
type Property struct {
	ID                 int           `json:"id"`
	UniqueCode         string        `json:"uniqueCode"`
	Description        string        `json:"description"`
	RoomCount          int           `json:"roomCount"`
	BathroomCount      int           `json:"bathroomCount"`
	SizeInSquareMeters float64       `json:"sizeInSquareMeters"`
	Price              float64       `json:"price"`
	IsAvailable        bool          `json:"isAvailable"`
	Images             []string      `json:"images"`
	PropertyType       *CatalogItem  `json:"propertyType,omitempty"`
	SaleType           *CatalogItem  `json:"saleType,omitempty"`
	Improvements       []CatalogItem `json:"improvements"`
	AgentID            string        `json:"agentId,omitempty"`
}

// ToDraft pre-fills an edit-mode draft from the stored listing.
func (p Property) ToDraft() PropertyDraft {
	id := p.ID
	rooms := p.RoomCount
	baths := p.BathroomCount
	size := p.SizeInSquareMeters
	price := p.Price

	d := PropertyDraft{
		ID:                 &id,
		Description:        p.Description,
		RoomCount:          &rooms,
		BathroomCount:      &baths,
		SizeInSquareMeters: &size,
		Price:              &price,
		UniqueCode:         p.UniqueCode,
		IsAvailable:        p.IsAvailable,
		Improvements:       make([]int, 0, len(p.Improvements)),
	}
	if p.PropertyType != nil {
		d.PropertyTypeID = strconv.Itoa(p.PropertyType.ID)
	}
	if p.SaleType != nil {
		d.SaleTypeID = strconv.Itoa(p.SaleType.ID)
	}
	for _, imp := range p.Improvements {
		d.Improvements = append(d.Improvements, imp.ID)
	}

	return d
}
