package market

import "time"

type Market struct {
	ID        int64     `gorm:"primaryKey"`
	Slug      string    `gorm:"column:slug;uniqueIndex;not null"`
	Name      string    `gorm:"column:name;not null"`
	Serial    int64     `gorm:"column:serial;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Market) TableName() string {
	return "markets"
}
