package market_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/frahmantamala/review-marketplace/internal"
	"github.com/frahmantamala/review-marketplace/internal/auth"
	marketDatamodel "github.com/frahmantamala/review-marketplace/internal/core/datamodel/market"
	"github.com/frahmantamala/review-marketplace/internal/market"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestMarketService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Market Service Suite")
}

// MockRepository implements market.RepositoryAPI for testing
type MockRepository struct {
	markets []*marketDatamodel.Market
	counter int64
	nextID  int64
}

func NewMockRepository() *MockRepository {
	return &MockRepository{nextID: 1}
}

func (m *MockRepository) GetBySlug(slug string) (*marketDatamodel.Market, error) {
	for _, mk := range m.markets {
		if mk.Slug == slug {
			return mk, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) GetAll() ([]*marketDatamodel.Market, error) {
	return m.markets, nil
}

func (m *MockRepository) Create(mk *marketDatamodel.Market) error {
	mk.ID = m.nextID
	m.nextID++
	m.markets = append(m.markets, mk)
	return nil
}

func (m *MockRepository) NextSerial() (int64, error) {
	m.counter++
	return m.counter, nil
}

func (m *MockRepository) Transact(fn func(market.RepositoryAPI) error) error {
	return fn(m)
}

var _ = Describe("Market Service", func() {
	var (
		mockRepo *MockRepository
		service  *market.Service
		adminCtx context.Context
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = market.NewService(mockRepo, logger)
		adminCtx = auth.ContextWithUser(context.Background(), &auth.User{
			ID: 1, Name: "justus", Roles: []auth.Role{auth.RoleAdmin},
		})
	})

	Describe("CreateMarket", func() {
		It("creates markets with increasing global serials", func() {
			first, err := service.CreateMarket(adminCtx, market.CreateMarketDTO{Slug: "de", Name: "Germany"})
			Expect(err).NotTo(HaveOccurred())
			Expect(first).To(Equal(int64(1)))

			second, err := service.CreateMarket(adminCtx, market.CreateMarketDTO{Slug: "us", Name: "United States"})
			Expect(err).NotTo(HaveOccurred())
			Expect(second).To(Equal(int64(2)))
		})

		It("rejects a duplicate slug", func() {
			_, err := service.CreateMarket(adminCtx, market.CreateMarketDTO{Slug: "de", Name: "Germany"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.CreateMarket(adminCtx, market.CreateMarketDTO{Slug: "de", Name: "Deutschland"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeDuplicateSlug))
		})

		It("rejects an invalid slug", func() {
			for _, slug := range []string{"", "D", "DE", "too-long-slug-over-limit", "spa ce"} {
				_, err := service.CreateMarket(adminCtx, market.CreateMarketDTO{Slug: slug, Name: "Nope"})
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
			}
		})

		It("requires the create_market permission", func() {
			modCtx := auth.ContextWithUser(context.Background(), &auth.User{
				ID: 2, Name: "peter", Roles: []auth.Role{auth.RoleModerator},
			})
			_, err := service.CreateMarket(modCtx, market.CreateMarketDTO{Slug: "fr", Name: "France"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodePermissionDenied))
		})
	})

	Describe("ResolveSlug", func() {
		It("resolves a known slug to the active market", func() {
			_, err := service.CreateMarket(adminCtx, market.CreateMarketDTO{Slug: "de", Name: "Germany"})
			Expect(err).NotTo(HaveOccurred())

			active, err := service.ResolveSlug(context.Background(), "de")
			Expect(err).NotTo(HaveOccurred())
			Expect(active.Slug).To(Equal("de"))
			Expect(active.Serial).To(Equal(int64(1)))
		})

		It("reports an unknown slug", func() {
			_, err := service.ResolveSlug(context.Background(), "nope")
			Expect(err).To(Equal(internal.ErrMarketNotFound))
		})
	})
})
