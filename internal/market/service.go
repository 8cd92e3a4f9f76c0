package market

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/review-marketplace/internal"
	"github.com/frahmantamala/review-marketplace/internal/auth"
	marketDatamodel "github.com/frahmantamala/review-marketplace/internal/core/datamodel/market"
)

type RepositoryAPI interface {
	GetBySlug(slug string) (*marketDatamodel.Market, error)
	GetAll() ([]*marketDatamodel.Market, error)
	Create(m *marketDatamodel.Market) error
	NextSerial() (int64, error)
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

// CreateMarket registers a new market partition. Slugs are globally unique.
func (s *Service) CreateMarket(ctx context.Context, dto CreateMarketDTO) (int64, error) {
	if err := auth.Authorize(ctx, auth.PermissionCreateMarket); err != nil {
		return 0, err
	}
	if err := dto.Validate(); err != nil {
		return 0, err
	}

	existing, err := s.repo.GetBySlug(dto.Slug)
	if err != nil {
		s.logger.Error("failed to check market slug", "error", err, "slug", dto.Slug)
		return 0, err
	}
	if existing != nil {
		return 0, internal.NewConflictError("market slug already exists", internal.ErrCodeDuplicateSlug)
	}

	var serial int64
	err = s.repo.Transact(func(repo RepositoryAPI) error {
		var txErr error
		serial, txErr = repo.NextSerial()
		if txErr != nil {
			return txErr
		}
		return repo.Create(&marketDatamodel.Market{
			Slug:   dto.Slug,
			Name:   dto.Name,
			Serial: serial,
		})
	})
	if err != nil {
		s.logger.Error("failed to create market", "error", err, "slug", dto.Slug)
		return 0, err
	}

	s.logger.Info("created market", "slug", dto.Slug, "serial", serial)
	return serial, nil
}

// GetBySlug resolves a market partition. The market middleware calls this for
// every scoped request.
func (s *Service) GetBySlug(slug string) (*Market, error) {
	dataMarket, err := s.repo.GetBySlug(slug)
	if err != nil {
		s.logger.Error("failed to get market", "error", err, "slug", slug)
		return nil, err
	}
	if dataMarket == nil {
		return nil, internal.ErrMarketNotFound
	}
	return FromDataModel(dataMarket), nil
}

// ResolveSlug resolves a slug to the active market descriptor stored in the
// request context by the market middleware.
func (s *Service) ResolveSlug(ctx context.Context, slug string) (*internal.ActiveMarket, error) {
	m, err := s.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	return m.ToActive(), nil
}

func (s *Service) GetAllMarkets() ([]MarketResponse, error) {
	dataMarkets, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list markets", "error", err)
		return nil, err
	}

	responses := make([]MarketResponse, 0, len(dataMarkets))
	for _, m := range dataMarkets {
		responses = append(responses, toResponse(FromDataModel(m)))
	}
	return responses, nil
}
