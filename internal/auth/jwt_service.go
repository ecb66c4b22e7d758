package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"spotbook/internal/model"
)

// Claims represents the session token claims. Data is the safe user
// projection, never the stored user row.
type Claims struct {
	Data model.SessionUser `json:"data"`
	jwt.RegisteredClaims
}

// JWTService handles session token issuing and validation.
type JWTService struct {
	secret    []byte
	expiresIn time.Duration
	now       func() time.Time
}

// NewJWTService creates a new JWT service with the given secret and lifetime.
func NewJWTService(secret string, expiresIn time.Duration) *JWTService {
	return &JWTService{
		secret:    []byte(secret),
		expiresIn: expiresIn,
		now:       time.Now,
	}
}

// ExpiresIn is the lifetime of issued tokens, also used as cookie max-age.
func (s *JWTService) ExpiresIn() time.Duration {
	return s.expiresIn
}

// Issue signs a token for user with a fresh jti.
func (s *JWTService) Issue(user model.SessionUser) (string, *Claims, error) {
	now := s.now()
	claims := &Claims{
		Data: user,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}
	return token, claims, nil
}

// Validate parses tokenString and returns its claims. Only HS256 tokens
// carrying an expiry are accepted.
func (s *JWTService) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Data.ID == 0 {
		return nil, errors.New("token carries no user")
	}
	return claims, nil
}

// Remaining is how long claims stay valid from now, never negative.
func (s *JWTService) Remaining(claims *Claims) time.Duration {
	if claims.ExpiresAt == nil {
		return 0
	}
	d := claims.ExpiresAt.Sub(s.now())
	if d < 0 {
		return 0
	}
	return d
}
