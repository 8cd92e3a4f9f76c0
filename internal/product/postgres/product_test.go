package postgres_test

import (
	"testing"

	"github.com/frahmantamala/review-marketplace/internal"
	catalogDatamodel "github.com/frahmantamala/review-marketplace/internal/core/datamodel/catalog"
	"github.com/frahmantamala/review-marketplace/internal/product"
	productPostgres "github.com/frahmantamala/review-marketplace/internal/product/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestProductPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Product Postgres Suite")
}

var _ = Describe("Product Repository", func() {
	var (
		db   *gorm.DB
		repo product.RepositoryAPI
	)

	BeforeEach(func() {
		var err error
		// in-memory SQLite stands in for postgres in repository tests
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Silent),
			TranslateError: true,
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&catalogDatamodel.Category{},
			&catalogDatamodel.Brand{},
			&catalogDatamodel.Product{},
			&catalogDatamodel.Barcode{},
			&catalogDatamodel.SerialCounter{},
		)
		Expect(err).NotTo(HaveOccurred())

		repo = productPostgres.NewProductRepository(db)

		Expect(db.Create(&catalogDatamodel.Category{
			ID: 1, MarketID: 1, Serial: 1, Name: "Süßigkeiten",
		}).Error).To(Succeed())
	})

	newProduct := func(name string) *catalogDatamodel.Product {
		serial, err := repo.NextSerial(1)
		Expect(err).NotTo(HaveOccurred())
		p := &catalogDatamodel.Product{
			MarketID:   1,
			Serial:     serial,
			Name:       name,
			CategoryID: 1,
		}
		Expect(repo.Create(p)).To(Succeed())
		return p
	}

	It("scans the joined record with category, brand and barcode", func() {
		brand := &catalogDatamodel.Brand{MarketID: 1, Serial: 1, Name: "Haribo"}
		Expect(db.Create(brand).Error).To(Succeed())

		p := newProduct("Goldbären")
		p.BrandID = &brand.ID
		Expect(db.Save(p).Error).To(Succeed())
		Expect(repo.RegisterBarcode(&catalogDatamodel.Barcode{
			Value: "4001686301", ProductID: p.ID,
		})).To(Succeed())

		rec, err := repo.FindBySerial(1, p.Serial)
		Expect(err).NotTo(HaveOccurred())
		Expect(rec).NotTo(BeNil())
		Expect(rec.CategorySerial).To(Equal(int64(1)))
		Expect(rec.BrandName).To(HaveValue(Equal("Haribo")))
		Expect(rec.Barcode).To(HaveValue(Equal("4001686301")))
	})

	It("reports a barcode committed by a concurrent create as the duplicate conflict", func() {
		first := newProduct("Goldbären")
		Expect(repo.RegisterBarcode(&catalogDatamodel.Barcode{
			Value: "4001686301", ProductID: first.ID,
		})).To(Succeed())

		// the existence check of a second create can pass before the first
		// commit lands; the insert must still surface the conflict
		second := newProduct("Color-Rado")
		err := repo.RegisterBarcode(&catalogDatamodel.Barcode{
			Value: "4001686301", ProductID: second.ID,
		})

		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Code).To(Equal(internal.ErrCodeDuplicateBarcode))
	})

	It("rolls back the barcode with the failing transaction", func() {
		outer := newProduct("Goldbären")
		err := repo.Transact(func(txRepo product.RepositoryAPI) error {
			if txErr := txRepo.RegisterBarcode(&catalogDatamodel.Barcode{
				Value: "4001686301", ProductID: outer.ID,
			}); txErr != nil {
				return txErr
			}
			return gorm.ErrInvalidTransaction
		})
		Expect(err).To(HaveOccurred())

		taken, err := repo.BarcodeExists("4001686301")
		Expect(err).NotTo(HaveOccurred())
		Expect(taken).To(BeFalse())
	})
})
