package catalog

import "time"

// Category is a node of the per-market category forest. Root categories have
// no parent. Serial is the externally visible identifier, unique per market.
type Category struct {
	ID        int64     `gorm:"primaryKey"`
	MarketID  int64     `gorm:"column:market_id;not null;uniqueIndex:uq_categories_market_serial,priority:1"`
	Serial    int64     `gorm:"column:serial;not null;uniqueIndex:uq_categories_market_serial,priority:2"`
	Name      string    `gorm:"column:name;not null"`
	ParentID  *int64    `gorm:"column:parent_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Category) TableName() string {
	return "categories"
}
