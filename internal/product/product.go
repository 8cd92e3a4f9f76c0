package product

// Record is the flat read projection of a product joined with its category
// serial, optional brand and optional barcode. Storage IDs never leave the
// service; responses carry serials only.
type Record struct {
	ID             int64   `gorm:"column:id"`
	MarketID       int64   `gorm:"column:market_id"`
	Serial         int64   `gorm:"column:serial"`
	Name           string  `gorm:"column:name"`
	Description    string  `gorm:"column:description"`
	CategoryID     int64   `gorm:"column:category_id"`
	CategorySerial int64   `gorm:"column:category_serial"`
	BrandSerial    *int64  `gorm:"column:brand_serial"`
	BrandName      *string `gorm:"column:brand_name"`
	Barcode        *string `gorm:"column:barcode"`
	RatingCount    int64   `gorm:"column:rating_count"`
	AverageRating  float64 `gorm:"column:average_rating"`
}

func (r *Record) ToResponse() ProductResponse {
	resp := ProductResponse{
		Serial:         r.Serial,
		Name:           r.Name,
		Description:    r.Description,
		CategorySerial: r.CategorySerial,
		RatingCount:    r.RatingCount,
		AverageRating:  r.AverageRating,
	}
	if r.Barcode != nil {
		resp.Barcode = *r.Barcode
	}
	if r.BrandSerial != nil && r.BrandName != nil {
		resp.Brand = &BrandRef{Serial: *r.BrandSerial, Name: *r.BrandName}
	}
	return resp
}
