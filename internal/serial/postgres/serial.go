package postgres

import (
	"github.com/frahmantamala/review-marketplace/internal/serial"
	"gorm.io/gorm"
)

type Allocator struct {
	db *gorm.DB
}

func NewAllocator(db *gorm.DB) *Allocator {
	return &Allocator{db: db}
}

// WithDB rebinds the allocator, used to join an ambient transaction so a
// rolled-back create does not leave its serial visible.
func (a *Allocator) WithDB(db *gorm.DB) *Allocator {
	return &Allocator{db: db}
}

// Next bumps the counter row with a single atomic upsert. A read-then-write
// would hand the same serial to concurrent requests; the upsert cannot.
func (a *Allocator) Next(kind string, marketID int64) (int64, error) {
	var value int64
	row := a.db.Raw(`
		INSERT INTO serial_counters (kind, market_id, value)
		VALUES (?, ?, 1)
		ON CONFLICT (kind, market_id)
		DO UPDATE SET value = serial_counters.value + 1
		RETURNING value`, kind, marketID).Row()
	if err := row.Scan(&value); err != nil {
		return 0, err
	}
	return value, nil
}

var _ serial.Allocator = (*Allocator)(nil)
