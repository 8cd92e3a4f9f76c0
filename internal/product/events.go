package product

import (
	"context"
	"fmt"

	"github.com/frahmantamala/review-marketplace/internal/core/events"
)

// RegisterEventHandlers wires the service to review lifecycle events so the
// product's rating aggregates track its reviews.
func RegisterEventHandlers(bus *events.EventBus, service *Service) {
	refresh := func(ctx context.Context, event events.Event) error {
		productID, ok := events.ProductIDFromPayload(event)
		if !ok {
			return fmt.Errorf("event %s carries no product_id", event.EventID())
		}
		return service.RefreshRatingStats(ctx, productID)
	}

	bus.Subscribe(events.EventTypeReviewCreated, refresh)
	bus.Subscribe(events.EventTypeReviewDeleted, refresh)
}
