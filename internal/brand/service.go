package brand

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/review-marketplace/internal"
	"github.com/frahmantamala/review-marketplace/internal/auth"
	catalogDatamodel "github.com/frahmantamala/review-marketplace/internal/core/datamodel/catalog"
)

type RepositoryAPI interface {
	FindBySerial(marketID, serial int64) (*catalogDatamodel.Brand, error)
	FindByMarket(marketID int64) ([]*catalogDatamodel.Brand, error)
	Create(b *catalogDatamodel.Brand) error
	NextSerial(marketID int64) (int64, error)
	Transact(fn func(RepositoryAPI) error) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CreateBrand creates a brand in the active market and returns its serial.
func (s *Service) CreateBrand(ctx context.Context, dto CreateBrandDTO) (int64, error) {
	if err := auth.Authorize(ctx, auth.PermissionCreateBrand); err != nil {
		return 0, err
	}
	if err := dto.Validate(); err != nil {
		return 0, err
	}

	market, err := internal.RequireMarket(ctx)
	if err != nil {
		return 0, err
	}

	var serial int64
	err = s.repo.Transact(func(repo RepositoryAPI) error {
		var txErr error
		serial, txErr = repo.NextSerial(market.ID)
		if txErr != nil {
			return txErr
		}
		return repo.Create(&catalogDatamodel.Brand{
			MarketID: market.ID,
			Serial:   serial,
			Name:     dto.Name,
		})
	})
	if err != nil {
		s.logger.Error("failed to create brand", "error", err, "market", market.Slug, "name", dto.Name)
		return 0, err
	}

	s.logger.Info("created brand", "market", market.Slug, "name", dto.Name, "serial", serial)
	return serial, nil
}

// GetBySerial looks up a brand of the active market; nil when unknown.
func (s *Service) GetBySerial(ctx context.Context, serial int64) (*Brand, error) {
	market, err := internal.RequireMarket(ctx)
	if err != nil {
		return nil, err
	}

	dataBrand, err := s.repo.FindBySerial(market.ID, serial)
	if err != nil {
		s.logger.Error("failed to get brand", "error", err, "serial", serial)
		return nil, err
	}
	if dataBrand == nil {
		return nil, nil
	}
	return FromDataModel(dataBrand), nil
}

func (s *Service) GetAllBrands(ctx context.Context) ([]BrandResponse, error) {
	market, err := internal.RequireMarket(ctx)
	if err != nil {
		return nil, err
	}

	dataBrands, err := s.repo.FindByMarket(market.ID)
	if err != nil {
		s.logger.Error("failed to list brands", "error", err, "market", market.Slug)
		return nil, err
	}

	responses := make([]BrandResponse, 0, len(dataBrands))
	for _, b := range dataBrands {
		responses = append(responses, BrandResponse{Serial: b.Serial, Name: b.Name})
	}
	return responses, nil
}
