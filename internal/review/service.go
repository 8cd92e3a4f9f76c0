package review

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/review-marketplace/internal"
	"github.com/frahmantamala/review-marketplace/internal/auth"
	reviewDatamodel "github.com/frahmantamala/review-marketplace/internal/core/datamodel/review"
	"github.com/frahmantamala/review-marketplace/internal/core/events"
)

type RepositoryAPI interface {
	// FindProductIDBySerial resolves a product serial of the market to its
	// storage ID; 0 when absent.
	FindProductIDBySerial(marketID, productSerial int64) (int64, error)
	FindBySerial(marketID, serial int64) (*Record, error)
	FindByProductID(marketID, productID int64) ([]*Record, error)
	FindCommentsByReviewID(reviewID int64) ([]*CommentRecord, error)
	Create(r *reviewDatamodel.Review) error
	Delete(reviewID int64) error
	UpsertVote(v *reviewDatamodel.ReviewVote) error
	CreateComment(c *reviewDatamodel.ReviewComment) error
	NextSerial(marketID int64) (int64, error)
	Transact(fn func(RepositoryAPI) error) error
}

type EventPublisherAPI interface {
	PublishSync(ctx context.Context, event events.Event) error
}

type Service struct {
	repo   RepositoryAPI
	bus    EventPublisherAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, bus EventPublisherAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		bus:    bus,
		logger: logger,
	}
}

// CreateReview creates a review for a product of the active market and
// returns its serial. The rating aggregates of the product are refreshed
// synchronously through the event bus, so a follow-up read sees them.
func (s *Service) CreateReview(ctx context.Context, dto CreateReviewDTO) (int64, error) {
	if err := auth.Authorize(ctx, auth.PermissionAddReview); err != nil {
		return 0, err
	}
	if err := dto.Validate(); err != nil {
		return 0, err
	}

	market, err := internal.RequireMarket(ctx)
	if err != nil {
		return 0, err
	}
	user, _ := auth.UserFromContext(ctx)

	productID, err := s.repo.FindProductIDBySerial(market.ID, dto.ProductSerial)
	if err != nil {
		return 0, err
	}
	if productID == 0 {
		return 0, internal.NewReferenceNotFoundError("product", dto.ProductSerial)
	}

	var serial int64
	err = s.repo.Transact(func(repo RepositoryAPI) error {
		var txErr error
		serial, txErr = repo.NextSerial(market.ID)
		if txErr != nil {
			return txErr
		}
		return repo.Create(&reviewDatamodel.Review{
			MarketID:  market.ID,
			Serial:    serial,
			ProductID: productID,
			UserID:    user.ID,
			Title:     dto.Title,
			Text:      dto.Text,
			Rating:    dto.Rating,
		})
	})
	if err != nil {
		if _, ok := internal.IsAppError(err); !ok {
			s.logger.Error("failed to create review", "error", err, "market", market.Slug, "product_serial", dto.ProductSerial)
		}
		return 0, err
	}

	if err := s.bus.PublishSync(ctx, events.NewReviewCreatedEvent(productID, dto.Rating)); err != nil {
		s.logger.Error("failed to publish review created event", "error", err, "product_id", productID)
	}

	s.logger.Info("created review", "market", market.Slug, "product_serial", dto.ProductSerial, "serial", serial)
	return serial, nil
}

// DeleteReview removes a review together with its votes and comments.
func (s *Service) DeleteReview(ctx context.Context, serial int64) error {
	if err := auth.Authorize(ctx, auth.PermissionDeleteReview); err != nil {
		return err
	}

	market, err := internal.RequireMarket(ctx)
	if err != nil {
		return err
	}

	rec, err := s.repo.FindBySerial(market.ID, serial)
	if err != nil {
		return err
	}
	if rec == nil {
		return internal.NewSerialNotFoundError("review", serial)
	}

	if err := s.repo.Transact(func(repo RepositoryAPI) error {
		return repo.Delete(rec.ID)
	}); err != nil {
		s.logger.Error("failed to delete review", "error", err, "serial", serial)
		return err
	}

	if err := s.bus.PublishSync(ctx, events.NewReviewDeletedEvent(rec.ProductID)); err != nil {
		s.logger.Error("failed to publish review deleted event", "error", err, "product_id", rec.ProductID)
	}

	s.logger.Info("deleted review", "market", market.Slug, "serial", serial)
	return nil
}

// VoteReview records whether the calling user found the review helpful. One
// vote per user per review; voting again overwrites the previous vote.
func (s *Service) VoteReview(ctx context.Context, serial int64, dto VoteDTO) error {
	if err := auth.Authorize(ctx, auth.PermissionAddReview); err != nil {
		return err
	}
	if err := dto.Validate(); err != nil {
		return err
	}
	user, _ := auth.UserFromContext(ctx)

	market, err := internal.RequireMarket(ctx)
	if err != nil {
		return err
	}

	rec, err := s.repo.FindBySerial(market.ID, serial)
	if err != nil {
		return err
	}
	if rec == nil {
		return internal.NewSerialNotFoundError("review", serial)
	}

	if err := s.repo.UpsertVote(&reviewDatamodel.ReviewVote{
		ReviewID: rec.ID,
		UserID:   user.ID,
		Upvote:   *dto.Upvote,
	}); err != nil {
		s.logger.Error("failed to vote on review", "error", err, "serial", serial)
		return err
	}
	return nil
}

// CreateComment adds a comment by the calling user to a review.
func (s *Service) CreateComment(ctx context.Context, serial int64, dto CreateCommentDTO) error {
	if err := auth.Authorize(ctx, auth.PermissionAddReview); err != nil {
		return err
	}
	if err := dto.Validate(); err != nil {
		return err
	}
	user, _ := auth.UserFromContext(ctx)

	market, err := internal.RequireMarket(ctx)
	if err != nil {
		return err
	}

	rec, err := s.repo.FindBySerial(market.ID, serial)
	if err != nil {
		return err
	}
	if rec == nil {
		return internal.NewSerialNotFoundError("review", serial)
	}

	if err := s.repo.CreateComment(&reviewDatamodel.ReviewComment{
		ReviewID: rec.ID,
		UserID:   user.ID,
		Text:     dto.Text,
	}); err != nil {
		s.logger.Error("failed to comment on review", "error", err, "serial", serial)
		return err
	}
	return nil
}

// GetReviewBySerial returns one review with its comments.
func (s *Service) GetReviewBySerial(ctx context.Context, serial int64) (*ReviewDetailResponse, error) {
	market, err := internal.RequireMarket(ctx)
	if err != nil {
		return nil, err
	}

	rec, err := s.repo.FindBySerial(market.ID, serial)
	if err != nil {
		s.logger.Error("failed to get review", "error", err, "serial", serial)
		return nil, err
	}
	if rec == nil {
		return nil, internal.NewSerialNotFoundError("review", serial)
	}

	comments, err := s.repo.FindCommentsByReviewID(rec.ID)
	if err != nil {
		return nil, err
	}

	detail := &ReviewDetailResponse{
		ReviewResponse: rec.ToResponse(),
		Comments:       make([]CommentResponse, 0, len(comments)),
	}
	for _, c := range comments {
		detail.Comments = append(detail.Comments, c.ToResponse())
	}
	return detail, nil
}

// GetReviewsByProduct lists a product's reviews, most helpful first. The
// product must exist; a product without reviews yields an empty list.
func (s *Service) GetReviewsByProduct(ctx context.Context, productSerial int64) ([]ReviewResponse, error) {
	market, err := internal.RequireMarket(ctx)
	if err != nil {
		return nil, err
	}

	productID, err := s.repo.FindProductIDBySerial(market.ID, productSerial)
	if err != nil {
		return nil, err
	}
	if productID == 0 {
		return nil, internal.NewSerialNotFoundError("product", productSerial)
	}

	records, err := s.repo.FindByProductID(market.ID, productID)
	if err != nil {
		s.logger.Error("failed to list reviews", "error", err, "product_serial", productSerial)
		return nil, err
	}

	responses := make([]ReviewResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, rec.ToResponse())
	}
	return responses, nil
}
