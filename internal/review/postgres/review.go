package postgres

import (
	reviewDatamodel "github.com/frahmantamala/review-marketplace/internal/core/datamodel/review"
	"github.com/frahmantamala/review-marketplace/internal/review"
	"github.com/frahmantamala/review-marketplace/internal/serial"
	serialPostgres "github.com/frahmantamala/review-marketplace/internal/serial/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewRepository struct {
	db      *gorm.DB
	serials *serialPostgres.Allocator
}

func NewReviewRepository(db *gorm.DB) review.RepositoryAPI {
	return &ReviewRepository{db: db, serials: serialPostgres.NewAllocator(db)}
}

const recordColumns = `reviews.id, reviews.market_id, reviews.serial, reviews.product_id,
	reviews.user_id, reviews.title, reviews.text, reviews.rating, reviews.created_at,
	users.name AS author_name,
	(SELECT COUNT(*) FROM review_votes WHERE review_votes.review_id = reviews.id AND review_votes.upvote) AS upvotes,
	(SELECT COUNT(*) FROM review_votes WHERE review_votes.review_id = reviews.id AND NOT review_votes.upvote) AS downvotes`

func (r *ReviewRepository) recordQuery() *gorm.DB {
	return r.db.Table("reviews").
		Select(recordColumns).
		Joins("JOIN users ON users.id = reviews.user_id")
}

func (r *ReviewRepository) FindProductIDBySerial(marketID, productSerial int64) (int64, error) {
	var id int64
	err := r.db.Table("products").
		Select("id").
		Where("market_id = ? AND serial = ?", marketID, productSerial).
		Take(&id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		return 0, err
	}
	return id, nil
}

func (r *ReviewRepository) FindBySerial(marketID, serial int64) (*review.Record, error) {
	var rec review.Record
	err := r.recordQuery().
		Where("reviews.market_id = ? AND reviews.serial = ?", marketID, serial).
		Take(&rec).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// FindByProductID orders by vote balance so the most helpful reviews come
// first; serial breaks ties for a stable order.
func (r *ReviewRepository) FindByProductID(marketID, productID int64) ([]*review.Record, error) {
	var records []*review.Record
	err := r.recordQuery().
		Where("reviews.market_id = ? AND reviews.product_id = ?", marketID, productID).
		Order("upvotes - downvotes DESC, reviews.serial ASC").
		Find(&records).Error
	return records, err
}

func (r *ReviewRepository) FindCommentsByReviewID(reviewID int64) ([]*review.CommentRecord, error) {
	var comments []*review.CommentRecord
	err := r.db.Table("review_comments").
		Select("review_comments.id, review_comments.review_id, review_comments.text, review_comments.created_at, users.name AS author_name").
		Joins("JOIN users ON users.id = review_comments.user_id").
		Where("review_comments.review_id = ?", reviewID).
		Order("review_comments.created_at ASC, review_comments.id ASC").
		Find(&comments).Error
	return comments, err
}

func (r *ReviewRepository) Create(rv *reviewDatamodel.Review) error {
	return r.db.Create(rv).Error
}

func (r *ReviewRepository) Delete(reviewID int64) error {
	if err := r.db.Where("review_id = ?", reviewID).Delete(&reviewDatamodel.ReviewVote{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("review_id = ?", reviewID).Delete(&reviewDatamodel.ReviewComment{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&reviewDatamodel.Review{}, reviewID).Error
}

func (r *ReviewRepository) UpsertVote(v *reviewDatamodel.ReviewVote) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "review_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"upvote", "updated_at"}),
	}).Create(v).Error
}

func (r *ReviewRepository) CreateComment(c *reviewDatamodel.ReviewComment) error {
	return r.db.Create(c).Error
}

func (r *ReviewRepository) NextSerial(marketID int64) (int64, error) {
	return r.serials.Next(serial.KindReview, marketID)
}

func (r *ReviewRepository) Transact(fn func(review.RepositoryAPI) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&ReviewRepository{db: tx, serials: r.serials.WithDB(tx)})
	})
}
