package product_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/frahmantamala/review-marketplace/internal"
	"github.com/frahmantamala/review-marketplace/internal/auth"
	"github.com/frahmantamala/review-marketplace/internal/brand"
	"github.com/frahmantamala/review-marketplace/internal/category"
	catalogDatamodel "github.com/frahmantamala/review-marketplace/internal/core/datamodel/catalog"
	"github.com/frahmantamala/review-marketplace/internal/core/events"
	"github.com/frahmantamala/review-marketplace/internal/product"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestProductService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Product Service Suite")
}

// MockRepository implements product.RepositoryAPI for testing
type MockRepository struct {
	products     []*catalogDatamodel.Product
	barcodes     map[string]int64
	counters     map[int64]int64
	refreshed    []int64
	nextID       int64
	categorySers map[int64]int64 // category ID -> serial, for record projections
	brandInfo    map[int64]brand.Brand
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		barcodes:     make(map[string]int64),
		counters:     make(map[int64]int64),
		nextID:       1,
		categorySers: make(map[int64]int64),
		brandInfo:    make(map[int64]brand.Brand),
	}
}

func (m *MockRepository) toRecord(p *catalogDatamodel.Product) *product.Record {
	rec := &product.Record{
		ID:             p.ID,
		MarketID:       p.MarketID,
		Serial:         p.Serial,
		Name:           p.Name,
		Description:    p.Description,
		CategoryID:     p.CategoryID,
		CategorySerial: m.categorySers[p.CategoryID],
		RatingCount:    p.RatingCount,
		AverageRating:  p.AverageRating,
	}
	if p.BrandID != nil {
		if b, ok := m.brandInfo[*p.BrandID]; ok {
			rec.BrandSerial = &b.Serial
			rec.BrandName = &b.Name
		}
	}
	for value, productID := range m.barcodes {
		if productID == p.ID {
			v := value
			rec.Barcode = &v
		}
	}
	return rec
}

func (m *MockRepository) FindBySerial(marketID, serial int64) (*product.Record, error) {
	for _, p := range m.products {
		if p.MarketID == marketID && p.Serial == serial {
			return m.toRecord(p), nil
		}
	}
	return nil, nil
}

func (m *MockRepository) FindByCategoryIDs(marketID int64, categoryIDs []int64) ([]*product.Record, error) {
	var result []*product.Record
	for _, p := range m.products {
		if p.MarketID != marketID {
			continue
		}
		for _, id := range categoryIDs {
			if p.CategoryID == id {
				result = append(result, m.toRecord(p))
				break
			}
		}
	}
	return result, nil
}

func (m *MockRepository) FindByBrandID(brandID int64) ([]*product.Record, error) {
	var result []*product.Record
	for _, p := range m.products {
		if p.BrandID != nil && *p.BrandID == brandID {
			result = append(result, m.toRecord(p))
		}
	}
	return result, nil
}

func (m *MockRepository) BarcodeExists(value string) (bool, error) {
	_, exists := m.barcodes[value]
	return exists, nil
}

func (m *MockRepository) Create(p *catalogDatamodel.Product) error {
	p.ID = m.nextID
	m.nextID++
	m.products = append(m.products, p)
	return nil
}

func (m *MockRepository) RegisterBarcode(b *catalogDatamodel.Barcode) error {
	m.barcodes[b.Value] = b.ProductID
	return nil
}

func (m *MockRepository) RefreshRatingStats(productID int64) error {
	m.refreshed = append(m.refreshed, productID)
	return nil
}

func (m *MockRepository) NextSerial(marketID int64) (int64, error) {
	m.counters[marketID]++
	return m.counters[marketID], nil
}

func (m *MockRepository) Transact(fn func(product.RepositoryAPI) error) error {
	return fn(m)
}

// MockCategoryAPI implements product.CategoryAPI
type MockCategoryAPI struct {
	bySerial map[int64]*category.Category
	subtrees map[int64][]int64
}

func (m *MockCategoryAPI) GetBySerial(ctx context.Context, serial int64) (*category.Category, error) {
	return m.bySerial[serial], nil
}

func (m *MockCategoryAPI) SubtreeIDs(ctx context.Context, serial int64) ([]int64, error) {
	ids, ok := m.subtrees[serial]
	if !ok {
		return nil, internal.NewSerialNotFoundError("category", serial)
	}
	return ids, nil
}

// MockBrandAPI implements product.BrandAPI
type MockBrandAPI struct {
	bySerial map[int64]*brand.Brand
}

func (m *MockBrandAPI) GetBySerial(ctx context.Context, serial int64) (*brand.Brand, error) {
	return m.bySerial[serial], nil
}

var _ = Describe("Product Service", func() {
	var (
		mockRepo   *MockRepository
		categories *MockCategoryAPI
		brands     *MockBrandAPI
		service    *product.Service
		ctx        context.Context
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		// category tree: Lebensmittel(1, id 10) > Süßigkeiten(2, id 11) > Fruchtgummi(3, id 12)
		categories = &MockCategoryAPI{
			bySerial: map[int64]*category.Category{
				1: {ID: 10, MarketID: 1, Serial: 1, Name: "Lebensmittel"},
				2: {ID: 11, MarketID: 1, Serial: 2, Name: "Süßigkeiten"},
				3: {ID: 12, MarketID: 1, Serial: 3, Name: "Fruchtgummi"},
			},
			subtrees: map[int64][]int64{
				1: {10, 11, 12},
				2: {11, 12},
				3: {12},
			},
		}
		mockRepo.categorySers = map[int64]int64{10: 1, 11: 2, 12: 3}
		mockRepo.brandInfo = map[int64]brand.Brand{
			20: {ID: 20, Serial: 1, Name: "Haribo"},
			21: {ID: 21, Serial: 2, Name: "Coca Cola"},
		}
		brands = &MockBrandAPI{
			bySerial: map[int64]*brand.Brand{
				1: {ID: 20, MarketID: 1, Serial: 1, Name: "Haribo"},
				2: {ID: 21, MarketID: 1, Serial: 2, Name: "Coca Cola"},
			},
		}

		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = product.NewService(mockRepo, categories, brands, logger)

		userCtx := auth.ContextWithUser(context.Background(), &auth.User{
			ID: 3, Name: "bob", Roles: []auth.Role{auth.RoleUser},
		})
		ctx = internal.ContextWithMarket(userCtx, &internal.ActiveMarket{ID: 1, Serial: 1, Slug: "de"})
	})

	Describe("CreateProduct", func() {
		It("creates a product with brand and barcode", func() {
			serial, err := service.CreateProduct(ctx, product.CreateProductDTO{
				Name:           "Goldbären",
				CategorySerial: 3,
				BrandSerial:    1,
				Barcode:        "4001686301166",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(serial).To(Equal(int64(1)))
			Expect(mockRepo.barcodes).To(HaveKey("4001686301166"))
		})

		It("creates a product without a brand", func() {
			serial, err := service.CreateProduct(ctx, product.CreateProductDTO{
				Name:           "Hausbrot",
				CategorySerial: 1,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(serial).To(Equal(int64(1)))
			Expect(mockRepo.products[0].BrandID).To(BeNil())
		})

		It("rejects an unknown category serial", func() {
			_, err := service.CreateProduct(ctx, product.CreateProductDTO{
				Name:           "Nope",
				CategorySerial: 99,
			})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeReferenceNotFound))
		})

		It("rejects an unknown brand serial", func() {
			_, err := service.CreateProduct(ctx, product.CreateProductDTO{
				Name:           "Nope",
				CategorySerial: 1,
				BrandSerial:    99,
			})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeReferenceNotFound))
		})

		It("rejects a duplicate barcode without consuming a serial", func() {
			_, err := service.CreateProduct(ctx, product.CreateProductDTO{
				Name:           "Goldbären",
				CategorySerial: 3,
				Barcode:        "4001686301166",
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.CreateProduct(ctx, product.CreateProductDTO{
				Name:           "Kopie",
				CategorySerial: 3,
				Barcode:        "4001686301166",
			})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeDuplicateBarcode))

			// the doomed create must not have advanced the serial counter
			Expect(mockRepo.counters[1]).To(Equal(int64(1)))
		})

		It("requires the add_product permission", func() {
			anon := internal.ContextWithMarket(context.Background(), &internal.ActiveMarket{ID: 1, Slug: "de"})
			_, err := service.CreateProduct(anon, product.CreateProductDTO{Name: "Nope", CategorySerial: 1})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeUnauthorized))
		})
	})

	Describe("GetProductBySerial", func() {
		It("returns the product view with serials only", func() {
			_, err := service.CreateProduct(ctx, product.CreateProductDTO{
				Name:           "Goldbären",
				CategorySerial: 3,
				BrandSerial:    1,
			})
			Expect(err).NotTo(HaveOccurred())

			resp, err := service.GetProductBySerial(ctx, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Serial).To(Equal(int64(1)))
			Expect(resp.CategorySerial).To(Equal(int64(3)))
		})

		It("reports an unknown serial", func() {
			_, err := service.GetProductBySerial(ctx, 42)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeSerialNotFound))
		})
	})

	Describe("GetProductsByCategory", func() {
		BeforeEach(func() {
			for _, p := range []product.CreateProductDTO{
				{Name: "Goldbären", CategorySerial: 3},
				{Name: "Schokolade", CategorySerial: 2},
				{Name: "Hausbrot", CategorySerial: 1},
			} {
				_, err := service.CreateProduct(ctx, p)
				Expect(err).NotTo(HaveOccurred())
			}
		})

		It("includes products of descendant categories", func() {
			products, err := service.GetProductsByCategory(ctx, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(products).To(HaveLen(2))

			all, err := service.GetProductsByCategory(ctx, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(3))
		})

		It("reports an unknown category serial", func() {
			_, err := service.GetProductsByCategory(ctx, 99)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeSerialNotFound))
		})

		It("returns an empty list for a category without products", func() {
			categories.bySerial[4] = &category.Category{ID: 13, MarketID: 1, Serial: 4, Name: "Getränke"}
			categories.subtrees[4] = []int64{13}

			products, err := service.GetProductsByCategory(ctx, 4)
			Expect(err).NotTo(HaveOccurred())
			Expect(products).To(BeEmpty())
		})
	})

	Describe("GetProductsByBrand", func() {
		It("lists the brand's products", func() {
			_, err := service.CreateProduct(ctx, product.CreateProductDTO{
				Name: "Goldbären", CategorySerial: 3, BrandSerial: 1,
			})
			Expect(err).NotTo(HaveOccurred())

			products, err := service.GetProductsByBrand(ctx, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(products).To(HaveLen(1))
			Expect(products[0].Brand).NotTo(BeNil())
			Expect(products[0].Brand.Name).To(Equal("Haribo"))
		})

		It("returns an empty list for a brand without products", func() {
			products, err := service.GetProductsByBrand(ctx, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(products).To(BeEmpty())
		})

		It("reports an unknown brand serial", func() {
			_, err := service.GetProductsByBrand(ctx, 99)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeSerialNotFound))
		})
	})

	Describe("event handlers", func() {
		It("refreshes rating stats on review events", func() {
			logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
			bus := events.NewEventBus(logger)
			product.RegisterEventHandlers(bus, service)

			err := bus.PublishSync(context.Background(), events.NewReviewCreatedEvent(7, 5))
			Expect(err).NotTo(HaveOccurred())
			Expect(mockRepo.refreshed).To(Equal([]int64{7}))

			err = bus.PublishSync(context.Background(), events.NewReviewDeletedEvent(7))
			Expect(err).NotTo(HaveOccurred())
			Expect(mockRepo.refreshed).To(Equal([]int64{7, 7}))
		})
	})
})
