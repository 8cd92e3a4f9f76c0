package auth

import (
	"errors"
	"log/slog"
	"time"

	"github.com/frahmantamala/review-marketplace/internal"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type RepositoryAPI interface {
	GetPasswordForName(name string) (passwordHash string, userID int64, err error)
	GetUserWithRoles(userID int64) (*User, error)
}

type TokenGeneratorAPI interface {
	GenerateAccessToken(userID int64, name string) (string, error)
	GenerateRefreshToken(userID int64, name string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type Service struct {
	repo     RepositoryAPI
	tokenGen TokenGeneratorAPI
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, tokenGen TokenGeneratorAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		tokenGen: tokenGen,
		logger:   logger,
	}
}

func NewJWTTokenGenerator(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWTTokenGenerator {
	return &JWTTokenGenerator{
		AccessTokenSecret:  []byte(accessSecret),
		RefreshTokenSecret: []byte(refreshSecret),
		AccessTokenTTL:     accessTTL,
		RefreshTokenTTL:    refreshTTL,
	}
}

// Authenticate validates credentials and returns a token pair.
func (s *Service) Authenticate(dto LoginDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	storedHash, userID, err := s.repo.GetPasswordForName(dto.Name)
	if err != nil {
		s.logger.Warn("authentication failed: unknown user", "name", dto.Name)
		return AuthTokens{}, internal.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(dto.Password)); err != nil {
		s.logger.Warn("authentication failed: bad password", "name", dto.Name)
		return AuthTokens{}, internal.ErrInvalidCredentials
	}

	return s.issueTokens(userID, dto.Name)
}

// RefreshTokens validates the refresh token and issues a new pair.
func (s *Service) RefreshTokens(refreshToken string) (AuthTokens, error) {
	claims, err := s.tokenGen.ValidateToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}
	return s.issueTokens(claims.UserID, claims.Name)
}

func (s *Service) issueTokens(userID int64, name string) (AuthTokens, error) {
	accessToken, err := s.tokenGen.GenerateAccessToken(userID, name)
	if err != nil {
		return AuthTokens{}, err
	}

	refreshToken, err := s.tokenGen.GenerateRefreshToken(userID, name)
	if err != nil {
		return AuthTokens{}, err
	}

	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGen.ValidateToken(tokenString)
}

// GetUserWithRoles loads the caller's user record including assigned roles.
// The auth middleware uses this to populate the request context.
func (s *Service) GetUserWithRoles(userID int64) (*User, error) {
	user, err := s.repo.GetUserWithRoles(userID)
	if err != nil {
		s.logger.Error("failed to load user with roles", "error", err, "user_id", userID)
		return nil, err
	}
	return user, nil
}

func (j *JWTTokenGenerator) GenerateAccessToken(userID int64, name string) (string, error) {
	return j.signToken(userID, name, j.AccessTokenTTL, j.AccessTokenSecret)
}

func (j *JWTTokenGenerator) GenerateRefreshToken(userID int64, name string) (string, error) {
	return j.signToken(userID, name, j.RefreshTokenTTL, j.RefreshTokenSecret)
}

func (j *JWTTokenGenerator) signToken(userID int64, name string, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Name:   name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   name,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken parses and validates a token against both secrets; access and
// refresh tokens share the claim shape.
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	for _, secret := range [][]byte{j.AccessTokenSecret, j.RefreshTokenSecret} {
		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, internal.ErrInvalidToken
			}
			return secret, nil
		})
		if err == nil && token.Valid {
			return claims, nil
		}
		if err != nil && errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
	}
	return nil, internal.ErrInvalidToken
}
