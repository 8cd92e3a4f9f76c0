package review

import "time"

// Record is the flat read projection of a review joined with its author name
// and vote tallies.
type Record struct {
	ID         int64     `gorm:"column:id"`
	MarketID   int64     `gorm:"column:market_id"`
	Serial     int64     `gorm:"column:serial"`
	ProductID  int64     `gorm:"column:product_id"`
	UserID     int64     `gorm:"column:user_id"`
	AuthorName string    `gorm:"column:author_name"`
	Title      string    `gorm:"column:title"`
	Text       string    `gorm:"column:text"`
	Rating     int       `gorm:"column:rating"`
	Upvotes    int64     `gorm:"column:upvotes"`
	Downvotes  int64     `gorm:"column:downvotes"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (r *Record) ToResponse() ReviewResponse {
	return ReviewResponse{
		Serial:    r.Serial,
		Title:     r.Title,
		Text:      r.Text,
		Rating:    r.Rating,
		Author:    r.AuthorName,
		Upvotes:   r.Upvotes,
		Downvotes: r.Downvotes,
		CreatedAt: r.CreatedAt,
	}
}

type CommentRecord struct {
	ID         int64     `gorm:"column:id"`
	ReviewID   int64     `gorm:"column:review_id"`
	AuthorName string    `gorm:"column:author_name"`
	Text       string    `gorm:"column:text"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (c *CommentRecord) ToResponse() CommentResponse {
	return CommentResponse{
		Author:    c.AuthorName,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
}
