package postgres

import (
	marketDatamodel "github.com/frahmantamala/review-marketplace/internal/core/datamodel/market"
	"github.com/frahmantamala/review-marketplace/internal/market"
	"github.com/frahmantamala/review-marketplace/internal/serial"
	serialPostgres "github.com/frahmantamala/review-marketplace/internal/serial/postgres"
	"gorm.io/gorm"
)

type MarketRepository struct {
	db      *gorm.DB
	serials *serialPostgres.Allocator
}

func NewMarketRepository(db *gorm.DB) market.RepositoryAPI {
	return &MarketRepository{db: db, serials: serialPostgres.NewAllocator(db)}
}

func (r *MarketRepository) GetBySlug(slug string) (*marketDatamodel.Market, error) {
	var m marketDatamodel.Market
	err := r.db.Where("slug = ?", slug).First(&m).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *MarketRepository) GetAll() ([]*marketDatamodel.Market, error) {
	var markets []*marketDatamodel.Market
	err := r.db.Order("serial ASC").Find(&markets).Error
	return markets, err
}

func (r *MarketRepository) Create(m *marketDatamodel.Market) error {
	return r.db.Create(m).Error
}

func (r *MarketRepository) NextSerial() (int64, error) {
	return r.serials.Next(serial.KindMarket, serial.GlobalMarketID)
}

func (r *MarketRepository) Transact(fn func(market.RepositoryAPI) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&MarketRepository{db: tx, serials: r.serials.WithDB(tx)})
	})
}
