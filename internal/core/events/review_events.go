package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeReviewCreated = "review.created"
	EventTypeReviewDeleted = "review.deleted"
)

// NewReviewCreatedEvent signals that a review was persisted for the product;
// subscribers refresh the product's rating aggregates.
func NewReviewCreatedEvent(productID int64, rating int) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      EventTypeReviewCreated,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"product_id": productID,
			"rating":     rating,
		},
	}
}

func NewReviewDeletedEvent(productID int64) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      EventTypeReviewDeleted,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"product_id": productID,
		},
	}
}

// ProductIDFromPayload extracts the product reference carried by review
// events.
func ProductIDFromPayload(e Event) (int64, bool) {
	data, ok := e.Payload().(map[string]interface{})
	if !ok {
		return 0, false
	}
	switch v := data["product_id"].(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
