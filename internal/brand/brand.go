package brand

import (
	catalogDatamodel "github.com/frahmantamala/review-marketplace/internal/core/datamodel/catalog"
)

type Brand struct {
	ID       int64  `json:"-"`
	MarketID int64  `json:"-"`
	Serial   int64  `json:"serial"`
	Name     string `json:"name"`
}

func FromDataModel(b *catalogDatamodel.Brand) *Brand {
	return &Brand{
		ID:       b.ID,
		MarketID: b.MarketID,
		Serial:   b.Serial,
		Name:     b.Name,
	}
}
