package auth

import (
	"log/slog"
	"os"
	"time"

	"github.com/frahmantamala/review-marketplace/internal"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type mockAuthRepo struct {
	users  map[string]struct {
		hash string
		id   int64
	}
	roles map[int64][]Role
}

func (m *mockAuthRepo) GetPasswordForName(name string) (string, int64, error) {
	u, ok := m.users[name]
	if !ok {
		return "", 0, internal.ErrUserNotFound
	}
	return u.hash, u.id, nil
}

func (m *mockAuthRepo) GetUserWithRoles(userID int64) (*User, error) {
	for name, u := range m.users {
		if u.id == userID {
			return &User{ID: userID, Name: name, Roles: m.roles[userID]}, nil
		}
	}
	return nil, internal.ErrUserNotFound
}

var _ = Describe("Auth Service", func() {
	var (
		repo    *mockAuthRepo
		service *Service
	)

	newGenerator := func(accessTTL time.Duration) *JWTTokenGenerator {
		return NewJWTTokenGenerator(
			"test-access-secret-0123456789abcdef",
			"test-refresh-secret-0123456789abcdef",
			accessTTL,
			24*time.Hour,
		)
	}

	BeforeEach(func() {
		hash, err := HashPassword("123", 4)
		Expect(err).NotTo(HaveOccurred())

		repo = &mockAuthRepo{
			users: map[string]struct {
				hash string
				id   int64
			}{
				"bob": {hash: hash, id: 3},
			},
			roles: map[int64][]Role{3: {RoleUser}},
		}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = NewService(repo, newGenerator(time.Minute), logger)
	})

	Describe("Authenticate", func() {
		It("returns a token pair for valid credentials", func() {
			tokens, err := service.Authenticate(LoginDTO{Name: "bob", Password: "123"})
			Expect(err).NotTo(HaveOccurred())
			Expect(tokens.AccessToken).NotTo(BeEmpty())
			Expect(tokens.RefreshToken).NotTo(BeEmpty())

			claims, err := service.ValidateAccessToken(tokens.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.UserID).To(Equal(int64(3)))
			Expect(claims.Name).To(Equal("bob"))
		})

		It("rejects a wrong password", func() {
			_, err := service.Authenticate(LoginDTO{Name: "bob", Password: "wrong"})
			Expect(err).To(Equal(internal.ErrInvalidCredentials))
		})

		It("rejects an unknown user the same way as a wrong password", func() {
			_, err := service.Authenticate(LoginDTO{Name: "ghost", Password: "123"})
			Expect(err).To(Equal(internal.ErrInvalidCredentials))
		})
	})

	Describe("RefreshTokens", func() {
		It("issues a fresh pair from a valid refresh token", func() {
			tokens, err := service.Authenticate(LoginDTO{Name: "bob", Password: "123"})
			Expect(err).NotTo(HaveOccurred())

			refreshed, err := service.RefreshTokens(tokens.RefreshToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(refreshed.AccessToken).NotTo(BeEmpty())
		})

		It("rejects garbage tokens", func() {
			_, err := service.RefreshTokens("not-a-token")
			Expect(err).To(Equal(internal.ErrInvalidToken))
		})
	})

	Describe("token expiry", func() {
		It("reports an expired access token", func() {
			expiredService := NewService(repo, newGenerator(-time.Minute),
				slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})))

			tokens, err := expiredService.Authenticate(LoginDTO{Name: "bob", Password: "123"})
			Expect(err).NotTo(HaveOccurred())

			_, err = expiredService.ValidateAccessToken(tokens.AccessToken)
			Expect(err).To(Equal(internal.ErrTokenExpired))
		})
	})
})
