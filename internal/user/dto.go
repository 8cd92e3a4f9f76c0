package user

import (
	"regexp"

	"github.com/frahmantamala/review-marketplace/internal"
	"github.com/frahmantamala/review-marketplace/internal/auth"
)

var namePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,32}$`)

type RegisterDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (dto RegisterDTO) Validate() error {
	if !namePattern.MatchString(dto.Name) {
		return internal.NewValidationError("name must be 3 to 32 characters of letters, digits, '_', '.' or '-'", internal.ErrCodeInvalidName)
	}
	if len(dto.Password) < 3 {
		return internal.NewValidationError("password is too short", internal.ErrCodeValidationFailed)
	}
	return nil
}

type GrantRoleDTO struct {
	Role string `json:"role"`
}

func (dto GrantRoleDTO) Validate() error {
	switch auth.Role(dto.Role) {
	case auth.RoleUser, auth.RoleModerator, auth.RoleAdmin:
		return nil
	}
	return internal.NewValidationError("unknown role", internal.ErrCodeValidationFailed)
}

type UserResponse struct {
	ID    int64       `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email,omitempty"`
	Level auth.Role   `json:"level"`
	Roles []auth.Role `json:"roles"`
}

type UsersResponse struct {
	Users []UserResponse `json:"users"`
}

// CurrentUserResponse also carries the effective permission set so clients
// can gate their UI without re-deriving role inheritance.
type CurrentUserResponse struct {
	UserResponse
	Permissions []auth.Permission `json:"permissions"`
}
