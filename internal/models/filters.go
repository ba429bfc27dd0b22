package models

// FilterMetadata agrupa los datos de filtros para el storefront
type FilterMetadata struct {
	Availability  AvailabilityData `json:"availability"`
	Categories    []string         `json:"categories"`
	Brands        []string         `json:"brands"`
	PriceRange    PriceRangeData   `json:"priceRange"`
	AverageRating float64          `json:"averageRating"`
}

// AvailabilityData cuenta productos por disponibilidad
type AvailabilityData struct {
	InStock    int `json:"inStock"`
	OutOfStock int `json:"outOfStock"`
}

// PriceRangeData es el rango de precios del catálogo
type PriceRangeData struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}
