package market

import (
	"time"

	marketDatamodel "github.com/frahmantamala/review-marketplace/internal/core/datamodel/market"
	"github.com/frahmantamala/review-marketplace/internal"
)

// Market is a tenant partition identified by a human-readable slug. All
// catalog data belongs to exactly one market and never moves between them.
type Market struct {
	ID        int64     `json:"-"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	Serial    int64     `json:"serial"`
	CreatedAt time.Time `json:"created_at"`
}

func (m *Market) ToActive() *internal.ActiveMarket {
	return &internal.ActiveMarket{
		ID:     m.ID,
		Serial: m.Serial,
		Slug:   m.Slug,
	}
}

func FromDataModel(m *marketDatamodel.Market) *Market {
	return &Market{
		ID:        m.ID,
		Slug:      m.Slug,
		Name:      m.Name,
		Serial:    m.Serial,
		CreatedAt: m.CreatedAt,
	}
}
