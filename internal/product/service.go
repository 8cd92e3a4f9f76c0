package product

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/review-marketplace/internal"
	"github.com/frahmantamala/review-marketplace/internal/auth"
	"github.com/frahmantamala/review-marketplace/internal/brand"
	"github.com/frahmantamala/review-marketplace/internal/category"
	catalogDatamodel "github.com/frahmantamala/review-marketplace/internal/core/datamodel/catalog"
)

type RepositoryAPI interface {
	FindBySerial(marketID, serial int64) (*Record, error)
	FindByCategoryIDs(marketID int64, categoryIDs []int64) ([]*Record, error)
	FindByBrandID(brandID int64) ([]*Record, error)
	BarcodeExists(value string) (bool, error)
	Create(p *catalogDatamodel.Product) error
	RegisterBarcode(b *catalogDatamodel.Barcode) error
	RefreshRatingStats(productID int64) error
	NextSerial(marketID int64) (int64, error)
	Transact(fn func(RepositoryAPI) error) error
}

// CategoryAPI is the slice of the category service the product service needs
// for reference checks and subtree listings.
type CategoryAPI interface {
	GetBySerial(ctx context.Context, serial int64) (*category.Category, error)
	SubtreeIDs(ctx context.Context, serial int64) ([]int64, error)
}

type BrandAPI interface {
	GetBySerial(ctx context.Context, serial int64) (*brand.Brand, error)
}

type Service struct {
	repo       RepositoryAPI
	categories CategoryAPI
	brands     BrandAPI
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, categories CategoryAPI, brands BrandAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		brands:     brands,
		logger:     logger,
	}
}

// CreateProduct creates a product in the active market and returns its
// serial. The category serial must name an existing category of the market
// and a non-zero brand serial an existing brand. The barcode is checked
// before a serial is allocated so a doomed create consumes none, and the
// barcode row is registered only after the product is persisted. The whole
// create runs in one transaction.
func (s *Service) CreateProduct(ctx context.Context, dto CreateProductDTO) (int64, error) {
	if err := auth.Authorize(ctx, auth.PermissionAddProduct); err != nil {
		return 0, err
	}
	if err := dto.Validate(); err != nil {
		return 0, err
	}

	market, err := internal.RequireMarket(ctx)
	if err != nil {
		return 0, err
	}

	cat, err := s.categories.GetBySerial(ctx, dto.CategorySerial)
	if err != nil {
		return 0, err
	}
	if cat == nil {
		return 0, internal.NewReferenceNotFoundError("category", dto.CategorySerial)
	}

	var brandID *int64
	if dto.BrandSerial != 0 {
		b, err := s.brands.GetBySerial(ctx, dto.BrandSerial)
		if err != nil {
			return 0, err
		}
		if b == nil {
			return 0, internal.NewReferenceNotFoundError("brand", dto.BrandSerial)
		}
		brandID = &b.ID
	}

	var serial int64
	err = s.repo.Transact(func(repo RepositoryAPI) error {
		if dto.Barcode != "" {
			taken, txErr := repo.BarcodeExists(dto.Barcode)
			if txErr != nil {
				return txErr
			}
			if taken {
				return internal.NewDuplicateBarcodeError(dto.Barcode)
			}
		}

		var txErr error
		serial, txErr = repo.NextSerial(market.ID)
		if txErr != nil {
			return txErr
		}

		p := &catalogDatamodel.Product{
			MarketID:    market.ID,
			Serial:      serial,
			Name:        dto.Name,
			Description: dto.Description,
			CategoryID:  cat.ID,
			BrandID:     brandID,
		}
		if txErr = repo.Create(p); txErr != nil {
			return txErr
		}

		if dto.Barcode != "" {
			return repo.RegisterBarcode(&catalogDatamodel.Barcode{
				Value:     dto.Barcode,
				ProductID: p.ID,
			})
		}
		return nil
	})
	if err != nil {
		if _, ok := internal.IsAppError(err); !ok {
			s.logger.Error("failed to create product", "error", err, "market", market.Slug, "name", dto.Name)
		}
		return 0, err
	}

	s.logger.Info("created product", "market", market.Slug, "name", dto.Name, "serial", serial)
	return serial, nil
}

func (s *Service) GetProductBySerial(ctx context.Context, serial int64) (*ProductResponse, error) {
	market, err := internal.RequireMarket(ctx)
	if err != nil {
		return nil, err
	}

	rec, err := s.repo.FindBySerial(market.ID, serial)
	if err != nil {
		s.logger.Error("failed to get product", "error", err, "serial", serial)
		return nil, err
	}
	if rec == nil {
		return nil, internal.NewSerialNotFoundError("product", serial)
	}

	resp := rec.ToResponse()
	return &resp, nil
}

// GetProductsByCategory lists the products of the category with the given
// serial and of every descendant category. The category itself must exist; an
// existing category without products yields an empty list.
func (s *Service) GetProductsByCategory(ctx context.Context, categorySerial int64) ([]ProductResponse, error) {
	market, err := internal.RequireMarket(ctx)
	if err != nil {
		return nil, err
	}

	categoryIDs, err := s.categories.SubtreeIDs(ctx, categorySerial)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.FindByCategoryIDs(market.ID, categoryIDs)
	if err != nil {
		s.logger.Error("failed to list products by category", "error", err, "category_serial", categorySerial)
		return nil, err
	}
	return toResponses(records), nil
}

// GetProductsByBrand lists the products of the brand with the given serial.
// An unknown brand is a not-found; a brand without products yields an empty
// list.
func (s *Service) GetProductsByBrand(ctx context.Context, brandSerial int64) ([]ProductResponse, error) {
	b, err := s.brands.GetBySerial(ctx, brandSerial)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, internal.NewSerialNotFoundError("brand", brandSerial)
	}

	records, err := s.repo.FindByBrandID(b.ID)
	if err != nil {
		s.logger.Error("failed to list products by brand", "error", err, "brand_serial", brandSerial)
		return nil, err
	}
	return toResponses(records), nil
}

// RefreshRatingStats recomputes the product's rating count and average from
// its persisted reviews. Driven by review events.
func (s *Service) RefreshRatingStats(ctx context.Context, productID int64) error {
	if err := s.repo.RefreshRatingStats(productID); err != nil {
		s.logger.Error("failed to refresh rating stats", "error", err, "product_id", productID)
		return err
	}
	return nil
}

func toResponses(records []*Record) []ProductResponse {
	responses := make([]ProductResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, rec.ToResponse())
	}
	return responses
}
