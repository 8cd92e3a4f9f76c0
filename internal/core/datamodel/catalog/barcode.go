package catalog

import "time"

// Barcode registers a product's external identifier. Uniqueness is global,
// not per market; the primary key enforces it even under concurrent creates.
type Barcode struct {
	Value     string    `gorm:"column:value;primaryKey"`
	ProductID int64     `gorm:"column:product_id;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Barcode) TableName() string {
	return "barcodes"
}
