package internal

import (
	"context"
	"time"
)

type ctxKey string

const contextMarketKey ctxKey = "market"

// ActiveMarket is the market partition a request operates in. It is resolved
// from the request path by the market middleware and carried in the request
// context; catalog operations refuse to run without it.
type ActiveMarket struct {
	ID     int64
	Serial int64
	Slug   string
}

func ContextWithMarket(ctx context.Context, market *ActiveMarket) context.Context {
	return context.WithValue(ctx, contextMarketKey, market)
}

func MarketFromContext(ctx context.Context) (*ActiveMarket, bool) {
	if ctx == nil {
		return nil, false
	}
	market, ok := ctx.Value(contextMarketKey).(*ActiveMarket)
	return market, ok && market != nil
}

// RequireMarket returns the active market or ErrMarketRequired. Every
// market-scoped service call goes through this instead of reading a global.
func RequireMarket(ctx context.Context) (*ActiveMarket, error) {
	market, ok := MarketFromContext(ctx)
	if !ok {
		return nil, ErrMarketRequired
	}
	return market, nil
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
