package catalog

import "time"

// Product belongs to exactly one category and optionally one brand, all
// within one market. Rating aggregates are maintained by the review
// subsystem.
type Product struct {
	ID            int64     `gorm:"primaryKey"`
	MarketID      int64     `gorm:"column:market_id;not null;uniqueIndex:uq_products_market_serial,priority:1"`
	Serial        int64     `gorm:"column:serial;not null;uniqueIndex:uq_products_market_serial,priority:2"`
	Name          string    `gorm:"column:name;not null"`
	Description   string    `gorm:"column:description"`
	CategoryID    int64     `gorm:"column:category_id;not null"`
	BrandID       *int64    `gorm:"column:brand_id"`
	RatingCount   int64     `gorm:"column:rating_count;default:0"`
	AverageRating float64   `gorm:"column:average_rating;default:0"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Product) TableName() string {
	return "products"
}
