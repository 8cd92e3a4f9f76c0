package user

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/review-marketplace/internal"
	"github.com/frahmantamala/review-marketplace/internal/auth"
	userDatamodel "github.com/frahmantamala/review-marketplace/internal/core/datamodel/user"
)

type RepositoryAPI interface {
	FindByName(name string) (*userDatamodel.User, error)
	FindByID(id int64) (*userDatamodel.User, error)
	FindAll() ([]*userDatamodel.User, error)
	RolesByUserID(userID int64) ([]auth.Role, error)
	Create(u *userDatamodel.User) error
	GrantRole(ur *userDatamodel.UserRole) error
	Transact(fn func(RepositoryAPI) error) error
}

type Service struct {
	repo       RepositoryAPI
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register creates an account with the default USER role. Registration is
// open; elevated roles are only ever granted by an admin afterwards.
func (s *Service) Register(ctx context.Context, dto RegisterDTO) (*UserResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByName(dto.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, internal.NewConflictError("user name is already taken", internal.ErrCodeDuplicateUser)
	}

	hash, err := auth.HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, internal.NewInternalError("failed to register user", err)
	}

	dataUser := &userDatamodel.User{
		Name:         dto.Name,
		PasswordHash: hash,
		IsActive:     true,
	}
	if dto.Email != "" {
		dataUser.Email = &dto.Email
	}

	err = s.repo.Transact(func(repo RepositoryAPI) error {
		if txErr := repo.Create(dataUser); txErr != nil {
			return txErr
		}
		return repo.GrantRole(&userDatamodel.UserRole{
			UserID: dataUser.ID,
			Role:   string(auth.RoleUser),
		})
	})
	if err != nil {
		s.logger.Error("failed to register user", "error", err, "name", dto.Name)
		return nil, err
	}

	s.logger.Info("registered user", "name", dto.Name, "user_id", dataUser.ID)
	return s.toResponse(dataUser, []auth.Role{auth.RoleUser}), nil
}

// GetCurrentUser describes the calling user, including the effective
// permission set derived from their roles.
func (s *Service) GetCurrentUser(ctx context.Context) (*CurrentUserResponse, error) {
	caller, ok := auth.UserFromContext(ctx)
	if !ok {
		return nil, internal.NewUnauthorizedError("authentication required", internal.ErrCodeInvalidToken)
	}

	dataUser, err := s.repo.FindByID(caller.ID)
	if err != nil {
		return nil, err
	}
	if dataUser == nil {
		return nil, internal.ErrUserNotFound
	}

	return &CurrentUserResponse{
		UserResponse: *s.toResponse(dataUser, caller.Roles),
		Permissions:  auth.Permissions(caller.Roles),
	}, nil
}

// GrantRole adds a role to the named user. Granting a role the user already
// holds is a no-op.
func (s *Service) GrantRole(ctx context.Context, name string, dto GrantRoleDTO) (*UserResponse, error) {
	if err := auth.Authorize(ctx, auth.PermissionManageUsers); err != nil {
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	target, err := s.repo.FindByName(name)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, internal.ErrUserNotFound
	}

	caller, _ := auth.UserFromContext(ctx)
	if err := s.repo.GrantRole(&userDatamodel.UserRole{
		UserID:    target.ID,
		Role:      dto.Role,
		GrantedBy: &caller.ID,
	}); err != nil {
		s.logger.Error("failed to grant role", "error", err, "name", name, "role", dto.Role)
		return nil, err
	}

	roles, err := s.repo.RolesByUserID(target.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("granted role", "name", name, "role", dto.Role, "granted_by", caller.Name)
	return s.toResponse(target, roles), nil
}

// ListUsers returns all accounts with their roles. Admin only.
func (s *Service) ListUsers(ctx context.Context) ([]UserResponse, error) {
	if err := auth.Authorize(ctx, auth.PermissionManageUsers); err != nil {
		return nil, err
	}

	dataUsers, err := s.repo.FindAll()
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, err
	}

	responses := make([]UserResponse, 0, len(dataUsers))
	for _, dataUser := range dataUsers {
		roles, err := s.repo.RolesByUserID(dataUser.ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *s.toResponse(dataUser, roles))
	}
	return responses, nil
}

func (s *Service) toResponse(dataUser *userDatamodel.User, roles []auth.Role) *UserResponse {
	resp := &UserResponse{
		ID:    dataUser.ID,
		Name:  dataUser.Name,
		Level: auth.Level(roles),
		Roles: roles,
	}
	if dataUser.Email != nil {
		resp.Email = *dataUser.Email
	}
	return resp
}
