package auth

import "github.com/frahmantamala/review-marketplace/internal"

type LoginDTO struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (dto LoginDTO) Validate() error {
	if dto.Name == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeValidationFailed)
	}
	if dto.Password == "" {
		return internal.NewValidationError("password is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type RefreshDTO struct {
	RefreshToken string `json:"refresh_token"`
}

type AuthenticatedUserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Roles []Role `json:"roles"`
	Level Role   `json:"level"`
}
