package user_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/frahmantamala/review-marketplace/internal"
	"github.com/frahmantamala/review-marketplace/internal/auth"
	userDatamodel "github.com/frahmantamala/review-marketplace/internal/core/datamodel/user"
	"github.com/frahmantamala/review-marketplace/internal/user"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

func TestUserService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Service Suite")
}

// MockRepository implements user.RepositoryAPI for testing
type MockRepository struct {
	users  []*userDatamodel.User
	roles  map[int64][]auth.Role
	nextID int64
}

func NewMockRepository() *MockRepository {
	return &MockRepository{roles: make(map[int64][]auth.Role), nextID: 1}
}

func (m *MockRepository) FindByName(name string) (*userDatamodel.User, error) {
	for _, u := range m.users {
		if u.Name == name {
			return u, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) FindByID(id int64) (*userDatamodel.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) FindAll() ([]*userDatamodel.User, error) {
	return m.users, nil
}

func (m *MockRepository) RolesByUserID(userID int64) ([]auth.Role, error) {
	return m.roles[userID], nil
}

func (m *MockRepository) Create(u *userDatamodel.User) error {
	u.ID = m.nextID
	m.nextID++
	m.users = append(m.users, u)
	return nil
}

func (m *MockRepository) GrantRole(ur *userDatamodel.UserRole) error {
	for _, r := range m.roles[ur.UserID] {
		if r == auth.Role(ur.Role) {
			return nil
		}
	}
	m.roles[ur.UserID] = append(m.roles[ur.UserID], auth.Role(ur.Role))
	return nil
}

func (m *MockRepository) Transact(fn func(user.RepositoryAPI) error) error {
	return fn(m)
}

var _ = Describe("User Service", func() {
	var (
		mockRepo *MockRepository
		service  *user.Service
		adminCtx context.Context
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = user.NewService(mockRepo, bcrypt.MinCost, logger)
		adminCtx = auth.ContextWithUser(context.Background(), &auth.User{
			ID: 99, Name: "justus", Roles: []auth.Role{auth.RoleAdmin},
		})
	})

	Describe("Register", func() {
		It("creates an account with the default USER role", func() {
			resp, err := service.Register(context.Background(), user.RegisterDTO{
				Name:     "bob",
				Password: "123",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Name).To(Equal("bob"))
			Expect(resp.Roles).To(ConsistOf(auth.RoleUser))
			Expect(resp.Level).To(Equal(auth.RoleUser))
		})

		It("stores a bcrypt hash, never the password", func() {
			_, err := service.Register(context.Background(), user.RegisterDTO{
				Name:     "bob",
				Password: "123",
			})
			Expect(err).NotTo(HaveOccurred())

			stored, err := mockRepo.FindByName("bob")
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.PasswordHash).NotTo(Equal("123"))
			Expect(auth.VerifyPassword(stored.PasswordHash, "123")).To(Succeed())
		})

		It("rejects a taken name", func() {
			_, err := service.Register(context.Background(), user.RegisterDTO{Name: "bob", Password: "123"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Register(context.Background(), user.RegisterDTO{Name: "bob", Password: "456"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeDuplicateUser))
		})

		It("rejects invalid names", func() {
			for _, name := range []string{"", "ab", "has space", "way-too-long-name-over-the-limit-x"} {
				_, err := service.Register(context.Background(), user.RegisterDTO{Name: name, Password: "123"})
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
			}
		})
	})

	Describe("GrantRole", func() {
		BeforeEach(func() {
			_, err := service.Register(context.Background(), user.RegisterDTO{Name: "bob", Password: "123"})
			Expect(err).NotTo(HaveOccurred())
		})

		It("adds a role for an admin caller", func() {
			resp, err := service.GrantRole(adminCtx, "bob", user.GrantRoleDTO{Role: "MODERATOR"})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Roles).To(ConsistOf(auth.RoleUser, auth.RoleModerator))
			Expect(resp.Level).To(Equal(auth.RoleModerator))
		})

		It("is a no-op when the role is already held", func() {
			_, err := service.GrantRole(adminCtx, "bob", user.GrantRoleDTO{Role: "USER"})
			Expect(err).NotTo(HaveOccurred())

			stored, err := mockRepo.FindByName("bob")
			Expect(err).NotTo(HaveOccurred())
			Expect(mockRepo.roles[stored.ID]).To(HaveLen(1))
		})

		It("requires the manage_users permission", func() {
			modCtx := auth.ContextWithUser(context.Background(), &auth.User{
				ID: 2, Name: "peter", Roles: []auth.Role{auth.RoleModerator},
			})
			_, err := service.GrantRole(modCtx, "bob", user.GrantRoleDTO{Role: "MODERATOR"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodePermissionDenied))
		})

		It("rejects an unknown role", func() {
			_, err := service.GrantRole(adminCtx, "bob", user.GrantRoleDTO{Role: "OVERLORD"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("reports an unknown user", func() {
			_, err := service.GrantRole(adminCtx, "ghost", user.GrantRoleDTO{Role: "MODERATOR"})
			Expect(err).To(Equal(internal.ErrUserNotFound))
		})
	})

	Describe("GetCurrentUser", func() {
		It("includes the effective permission set", func() {
			resp, err := service.Register(context.Background(), user.RegisterDTO{Name: "peter", Password: "123"})
			Expect(err).NotTo(HaveOccurred())

			callerCtx := auth.ContextWithUser(context.Background(), &auth.User{
				ID: resp.ID, Name: "peter", Roles: []auth.Role{auth.RoleModerator},
			})
			current, err := service.GetCurrentUser(callerCtx)
			Expect(err).NotTo(HaveOccurred())
			Expect(current.Level).To(Equal(auth.RoleModerator))
			Expect(current.Permissions).To(ContainElements(
				auth.PermissionAddReview,
				auth.PermissionDeleteProduct,
			))
			Expect(current.Permissions).NotTo(ContainElement(auth.PermissionManageUsers))
		})

		It("requires authentication", func() {
			_, err := service.GetCurrentUser(context.Background())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeUnauthorized))
		})
	})

	Describe("ListUsers", func() {
		It("requires the manage_users permission", func() {
			userCtx := auth.ContextWithUser(context.Background(), &auth.User{
				ID: 3, Name: "bob", Roles: []auth.Role{auth.RoleUser},
			})
			_, err := service.ListUsers(userCtx)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodePermissionDenied))
		})

		It("returns every account with roles", func() {
			_, err := service.Register(context.Background(), user.RegisterDTO{Name: "bob", Password: "123"})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.Register(context.Background(), user.RegisterDTO{Name: "peter", Password: "123"})
			Expect(err).NotTo(HaveOccurred())

			users, err := service.ListUsers(adminCtx)
			Expect(err).NotTo(HaveOccurred())
			Expect(users).To(HaveLen(2))
		})
	})
})
