package estateapi

import (
	"listing_editor/internal/domain/models"
)

type catalogItemResponse struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (r catalogItemResponse) toDomain() models.CatalogItem {
	item := models.CatalogItem{ID: r.ID, Name: r.Name}
	if r.Description != nil {
		item.Description = *r.Description
	}
	return item
}

type propertyResponse struct {
	ID                 int                   `json:"id"`
	UniqueCode         *string               `json:"uniqueCode"`
	Description        *string               `json:"description"`
	Price              float64               `json:"price"`
	SizeInSquareMeters float64               `json:"sizeInSquareMeters"`
	RoomCount          int                   `json:"roomCount"`
	BathroomCount      int                   `json:"bathroomCount"`
	IsAvailable        bool                  `json:"isAvailable"`
	Images             []string              `json:"images"`
	PropertyType       *catalogItemResponse  `json:"propertyType"`
	SaleType           *catalogItemResponse  `json:"saleType"`
	Improvements       []catalogItemResponse `json:"improvements"`
	AgentID            *string               `json:"agentId"`
}

func (r propertyResponse) toDomain() *models.Property {
	p := &models.Property{
		ID:                 r.ID,
		UniqueCode:         deref(r.UniqueCode),
		Description:        deref(r.Description),
		Price:              r.Price,
		SizeInSquareMeters: r.SizeInSquareMeters,
		RoomCount:          r.RoomCount,
		BathroomCount:      r.BathroomCount,
		IsAvailable:        r.IsAvailable,
		Images:             append([]string{}, r.Images...),
		Improvements:       make([]models.CatalogItem, 0, len(r.Improvements)),
		AgentID:            deref(r.AgentID),
	}
	if r.PropertyType != nil {
		item := r.PropertyType.toDomain()
		p.PropertyType = &item
	}
	if r.SaleType != nil {
		item := r.SaleType.toDomain()
		p.SaleType = &item
	}
	for _, imp := range r.Improvements {
		p.Improvements = append(p.Improvements, imp.toDomain())
	}
	return p
}

type currentUserResponse struct {
	ID        string   `json:"id"`
	FirstName *string  `json:"firstName"`
	LastName  *string  `json:"lastName"`
	Email     *string  `json:"email"`
	Roles     []string `json:"roles"`
}

func (r currentUserResponse) toDomain() models.Agent {
	return models.Agent{
		ID:        r.ID,
		FirstName: deref(r.FirstName),
		LastName:  deref(r.LastName),
		Email:     deref(r.Email),
		Roles:     append([]string{}, r.Roles...),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
