package category

import "github.com/frahmantamala/review-marketplace/internal"

type CreateCategoryDTO struct {
	Name string `json:"name"`
	// ParentSerial zero means a new root category.
	ParentSerial int64 `json:"parent_serial"`
}

func (dto CreateCategoryDTO) Validate() error {
	if dto.Name == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeInvalidName)
	}
	if dto.ParentSerial < 0 {
		return internal.NewValidationError("parent_serial must not be negative", internal.ErrCodeValidationFailed)
	}
	return nil
}

// CategoryNode is one node of the category tree response, children ordered by
// serial.
type CategoryNode struct {
	Serial   int64          `json:"serial"`
	Name     string         `json:"name"`
	Children []CategoryNode `json:"children,omitempty"`
}

type CategoryTreeResponse struct {
	Categories []CategoryNode `json:"categories"`
}

type SerialResponse struct {
	Serial int64 `json:"serial"`
}
