package product

import "github.com/frahmantamala/review-marketplace/internal"

type CreateProductDTO struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	CategorySerial int64  `json:"category_serial"`
	BrandSerial    int64  `json:"brand_serial"`
	Barcode        string `json:"barcode"`
}

func (dto CreateProductDTO) Validate() error {
	if dto.Name == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeInvalidName)
	}
	if dto.CategorySerial == 0 {
		return internal.NewValidationError("category_serial is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type BrandRef struct {
	Serial int64  `json:"serial"`
	Name   string `json:"name"`
}

type ProductResponse struct {
	Serial         int64     `json:"serial"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	CategorySerial int64     `json:"category_serial"`
	Brand          *BrandRef `json:"brand,omitempty"`
	Barcode        string    `json:"barcode,omitempty"`
	RatingCount    int64     `json:"rating_count"`
	AverageRating  float64   `json:"average_rating"`
}

type ProductsResponse struct {
	Products []ProductResponse `json:"products"`
}

type SerialResponse struct {
	Serial int64 `json:"serial"`
}
