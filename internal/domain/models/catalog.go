package models

type CatalogItem struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Catalogs справочники, доступные при редактировании.
type Catalogs struct {
	PropertyTypes []CatalogItem `json:"propertyTypes"`
	SaleTypes     []CatalogItem `json:"saleTypes"`
	Improvements  []CatalogItem `json:"improvements"`
}
