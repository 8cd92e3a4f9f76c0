package postgres

import (
	"errors"

	"github.com/frahmantamala/review-marketplace/internal"
	catalogDatamodel "github.com/frahmantamala/review-marketplace/internal/core/datamodel/catalog"
	"github.com/frahmantamala/review-marketplace/internal/product"
	"github.com/frahmantamala/review-marketplace/internal/serial"
	serialPostgres "github.com/frahmantamala/review-marketplace/internal/serial/postgres"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type ProductRepository struct {
	db      *gorm.DB
	serials *serialPostgres.Allocator
}

func NewProductRepository(db *gorm.DB) product.RepositoryAPI {
	return &ProductRepository{db: db, serials: serialPostgres.NewAllocator(db)}
}

const recordColumns = `products.id, products.market_id, products.serial, products.name,
	products.description, products.category_id, products.rating_count, products.average_rating,
	categories.serial AS category_serial,
	brands.serial AS brand_serial, brands.name AS brand_name,
	barcodes.value AS barcode`

func (r *ProductRepository) recordQuery() *gorm.DB {
	return r.db.Table("products").
		Select(recordColumns).
		Joins("JOIN categories ON categories.id = products.category_id").
		Joins("LEFT JOIN brands ON brands.id = products.brand_id").
		Joins("LEFT JOIN barcodes ON barcodes.product_id = products.id")
}

func (r *ProductRepository) FindBySerial(marketID, serial int64) (*product.Record, error) {
	var rec product.Record
	err := r.recordQuery().
		Where("products.market_id = ? AND products.serial = ?", marketID, serial).
		Take(&rec).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *ProductRepository) FindByCategoryIDs(marketID int64, categoryIDs []int64) ([]*product.Record, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}
	var records []*product.Record
	err := r.recordQuery().
		Where("products.market_id = ? AND products.category_id IN ?", marketID, categoryIDs).
		Order("products.serial ASC").
		Find(&records).Error
	return records, err
}

func (r *ProductRepository) FindByBrandID(brandID int64) ([]*product.Record, error) {
	var records []*product.Record
	err := r.recordQuery().
		Where("products.brand_id = ?", brandID).
		Order("products.serial ASC").
		Find(&records).Error
	return records, err
}

func (r *ProductRepository) BarcodeExists(value string) (bool, error) {
	var count int64
	err := r.db.Model(&catalogDatamodel.Barcode{}).Where("value = ?", value).Count(&count).Error
	return count > 0, err
}

func (r *ProductRepository) Create(p *catalogDatamodel.Product) error {
	return r.db.Create(p).Error
}

// RegisterBarcode inserts the barcode row. BarcodeExists runs before the
// insert, so a primary key violation here means a concurrent create committed
// the same value in between; it surfaces as the same conflict the precheck
// reports.
func (r *ProductRepository) RegisterBarcode(b *catalogDatamodel.Barcode) error {
	if err := r.db.Create(b).Error; err != nil {
		if isUniqueViolation(err) {
			return internal.NewDuplicateBarcodeError(b.Value)
		}
		return err
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// RefreshRatingStats recomputes the aggregates from the reviews table in one
// statement, so concurrent review writes cannot leave a stale count.
func (r *ProductRepository) RefreshRatingStats(productID int64) error {
	return r.db.Exec(`
		UPDATE products SET
			rating_count = (SELECT COUNT(*) FROM reviews WHERE reviews.product_id = products.id),
			average_rating = COALESCE((SELECT AVG(rating) FROM reviews WHERE reviews.product_id = products.id), 0)
		WHERE products.id = ?`, productID).Error
}

func (r *ProductRepository) NextSerial(marketID int64) (int64, error) {
	return r.serials.Next(serial.KindProduct, marketID)
}

func (r *ProductRepository) Transact(fn func(product.RepositoryAPI) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&ProductRepository{db: tx, serials: r.serials.WithDB(tx)})
	})
}
