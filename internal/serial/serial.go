package serial

// Kinds of entities that receive serials. Markets are global; everything else
// counts per market.
const (
	KindMarket   = "market"
	KindCategory = "category"
	KindBrand    = "brand"
	KindProduct  = "product"
	KindReview   = "review"
)

// GlobalMarketID is the market_id used for kinds that are not partitioned by
// market.
const GlobalMarketID int64 = 0

// Allocator issues strictly increasing serials per (kind, market). Serials
// are the externally visible identifiers; they are allocated exactly once and
// never reused, even if the entity is later deleted.
//
// Implementations must be safe under concurrent allocation: two in-flight
// requests must never observe the same serial.
type Allocator interface {
	Next(kind string, marketID int64) (int64, error)
}
