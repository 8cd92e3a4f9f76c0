package market

import (
	"regexp"

	"github.com/frahmantamala/review-marketplace/internal"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]{2,16}$`)

type CreateMarketDTO struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

func (dto CreateMarketDTO) Validate() error {
	if dto.Name == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeInvalidName)
	}
	if !slugPattern.MatchString(dto.Slug) {
		return internal.NewValidationError("slug must be 2-16 lowercase characters", internal.ErrCodeInvalidSlug)
	}
	return nil
}

type MarketResponse struct {
	Slug   string `json:"slug"`
	Name   string `json:"name"`
	Serial int64  `json:"serial"`
}

type SerialResponse struct {
	Serial int64 `json:"serial"`
}

func toResponse(m *Market) MarketResponse {
	return MarketResponse{
		Slug:   m.Slug,
		Name:   m.Name,
		Serial: m.Serial,
	}
}
