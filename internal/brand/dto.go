package brand

import "github.com/frahmantamala/review-marketplace/internal"

type CreateBrandDTO struct {
	Name string `json:"name"`
}

func (dto CreateBrandDTO) Validate() error {
	if dto.Name == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeInvalidName)
	}
	return nil
}

type BrandResponse struct {
	Serial int64  `json:"serial"`
	Name   string `json:"name"`
}

type BrandsResponse struct {
	Brands []BrandResponse `json:"brands"`
}

type SerialResponse struct {
	Serial int64 `json:"serial"`
}
