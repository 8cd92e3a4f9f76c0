package postgres

import (
	"github.com/frahmantamala/review-marketplace/internal/brand"
	catalogDatamodel "github.com/frahmantamala/review-marketplace/internal/core/datamodel/catalog"
	"github.com/frahmantamala/review-marketplace/internal/serial"
	serialPostgres "github.com/frahmantamala/review-marketplace/internal/serial/postgres"
	"gorm.io/gorm"
)

type BrandRepository struct {
	db      *gorm.DB
	serials *serialPostgres.Allocator
}

func NewBrandRepository(db *gorm.DB) brand.RepositoryAPI {
	return &BrandRepository{db: db, serials: serialPostgres.NewAllocator(db)}
}

func (r *BrandRepository) FindBySerial(marketID, serial int64) (*catalogDatamodel.Brand, error) {
	var b catalogDatamodel.Brand
	err := r.db.Where("market_id = ? AND serial = ?", marketID, serial).First(&b).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *BrandRepository) FindByMarket(marketID int64) ([]*catalogDatamodel.Brand, error) {
	var brands []*catalogDatamodel.Brand
	err := r.db.Where("market_id = ?", marketID).Order("serial ASC").Find(&brands).Error
	return brands, err
}

func (r *BrandRepository) Create(b *catalogDatamodel.Brand) error {
	return r.db.Create(b).Error
}

func (r *BrandRepository) NextSerial(marketID int64) (int64, error) {
	return r.serials.Next(serial.KindBrand, marketID)
}

func (r *BrandRepository) Transact(fn func(brand.RepositoryAPI) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&BrandRepository{db: tx, serials: r.serials.WithDB(tx)})
	})
}
