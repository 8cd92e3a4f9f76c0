package review

import (
	"time"

	"github.com/frahmantamala/review-marketplace/internal"
)

type CreateReviewDTO struct {
	ProductSerial int64  `json:"product_serial"`
	Title         string `json:"title"`
	Text          string `json:"text"`
	Rating        int    `json:"rating"`
}

func (dto CreateReviewDTO) Validate() error {
	if dto.ProductSerial == 0 {
		return internal.NewValidationError("product_serial is required", internal.ErrCodeValidationFailed)
	}
	if dto.Title == "" {
		return internal.NewValidationError("title is required", internal.ErrCodeValidationFailed)
	}
	if dto.Rating < 1 || dto.Rating > 5 {
		return internal.NewValidationError("rating must be between 1 and 5", internal.ErrCodeInvalidRating)
	}
	return nil
}

type VoteDTO struct {
	Upvote *bool `json:"upvote"`
}

func (dto VoteDTO) Validate() error {
	if dto.Upvote == nil {
		return internal.NewValidationError("upvote is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type CreateCommentDTO struct {
	Text string `json:"text"`
}

func (dto CreateCommentDTO) Validate() error {
	if dto.Text == "" {
		return internal.NewValidationError("text is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type ReviewResponse struct {
	Serial    int64     `json:"serial"`
	Title     string    `json:"title"`
	Text      string    `json:"text,omitempty"`
	Rating    int       `json:"rating"`
	Author    string    `json:"author"`
	Upvotes   int64     `json:"upvotes"`
	Downvotes int64     `json:"downvotes"`
	CreatedAt time.Time `json:"created_at"`
}

type CommentResponse struct {
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type ReviewDetailResponse struct {
	ReviewResponse
	Comments []CommentResponse `json:"comments"`
}

type ReviewsResponse struct {
	Reviews []ReviewResponse `json:"reviews"`
}

type SerialResponse struct {
	Serial int64 `json:"serial"`
}
