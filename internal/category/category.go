package category

import (
	catalogDatamodel "github.com/frahmantamala/review-marketplace/internal/core/datamodel/catalog"
)

// Category is a node of the per-market category forest. The parent is
// resolved by serial lookup at creation time, so a child can only ever point
// at a category that already exists; there is no separate cycle check.
type Category struct {
	ID       int64  `json:"-"`
	MarketID int64  `json:"-"`
	Serial   int64  `json:"serial"`
	Name     string `json:"name"`
	ParentID *int64 `json:"-"`
}

func FromDataModel(c *catalogDatamodel.Category) *Category {
	return &Category{
		ID:       c.ID,
		MarketID: c.MarketID,
		Serial:   c.Serial,
		Name:     c.Name,
		ParentID: c.ParentID,
	}
}
