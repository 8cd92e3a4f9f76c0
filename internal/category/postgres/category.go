package postgres

import (
	"github.com/frahmantamala/review-marketplace/internal/category"
	catalogDatamodel "github.com/frahmantamala/review-marketplace/internal/core/datamodel/catalog"
	"github.com/frahmantamala/review-marketplace/internal/serial"
	serialPostgres "github.com/frahmantamala/review-marketplace/internal/serial/postgres"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	db      *gorm.DB
	serials *serialPostgres.Allocator
}

func NewCategoryRepository(db *gorm.DB) category.RepositoryAPI {
	return &CategoryRepository{db: db, serials: serialPostgres.NewAllocator(db)}
}

func (r *CategoryRepository) FindBySerial(marketID, serial int64) (*catalogDatamodel.Category, error) {
	var cat catalogDatamodel.Category
	err := r.db.Where("market_id = ? AND serial = ?", marketID, serial).First(&cat).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) FindByMarket(marketID int64) ([]*catalogDatamodel.Category, error) {
	var categories []*catalogDatamodel.Category
	err := r.db.Where("market_id = ?", marketID).Order("serial ASC").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) FindByParentID(parentID int64) ([]*catalogDatamodel.Category, error) {
	var categories []*catalogDatamodel.Category
	err := r.db.Where("parent_id = ?", parentID).Order("serial ASC").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) Create(cat *catalogDatamodel.Category) error {
	return r.db.Create(cat).Error
}

func (r *CategoryRepository) NextSerial(marketID int64) (int64, error) {
	return r.serials.Next(serial.KindCategory, marketID)
}

func (r *CategoryRepository) Transact(fn func(category.RepositoryAPI) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&CategoryRepository{db: tx, serials: r.serials.WithDB(tx)})
	})
}
