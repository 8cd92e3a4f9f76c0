package catalog

import "time"

type Brand struct {
	ID        int64     `gorm:"primaryKey"`
	MarketID  int64     `gorm:"column:market_id;not null;uniqueIndex:uq_brands_market_serial,priority:1"`
	Serial    int64     `gorm:"column:serial;not null;uniqueIndex:uq_brands_market_serial,priority:2"`
	Name      string    `gorm:"column:name;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Brand) TableName() string {
	return "brands"
}
