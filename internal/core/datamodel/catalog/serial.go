package catalog

// SerialCounter backs serial allocation: one row per (kind, market), bumped
// with a single atomic upsert.
type SerialCounter struct {
	Kind     string `gorm:"column:kind;primaryKey"`
	MarketID int64  `gorm:"column:market_id;primaryKey"`
	Value    int64  `gorm:"column:value;not null"`
}

func (SerialCounter) TableName() string {
	return "serial_counters"
}
