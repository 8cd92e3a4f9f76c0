package review

import "time"

type Review struct {
	ID        int64     `gorm:"primaryKey"`
	MarketID  int64     `gorm:"column:market_id;not null;uniqueIndex:uq_reviews_market_serial,priority:1"`
	Serial    int64     `gorm:"column:serial;not null;uniqueIndex:uq_reviews_market_serial,priority:2"`
	ProductID int64     `gorm:"column:product_id;not null"`
	UserID    int64     `gorm:"column:user_id;not null"`
	Title     string    `gorm:"column:title;not null"`
	Text      string    `gorm:"column:text"`
	Rating    int       `gorm:"column:rating;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Review) TableName() string {
	return "reviews"
}

type ReviewComment struct {
	ID        int64     `gorm:"primaryKey"`
	ReviewID  int64     `gorm:"column:review_id;not null"`
	UserID    int64     `gorm:"column:user_id;not null"`
	Text      string    `gorm:"column:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (ReviewComment) TableName() string {
	return "review_comments"
}

// ReviewVote holds one vote per user per review; re-voting overwrites.
type ReviewVote struct {
	ID        int64     `gorm:"primaryKey"`
	ReviewID  int64     `gorm:"column:review_id;not null;uniqueIndex:uq_review_votes_review_user,priority:1"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:uq_review_votes_review_user,priority:2"`
	Upvote    bool      `gorm:"column:upvote;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (ReviewVote) TableName() string {
	return "review_votes"
}
