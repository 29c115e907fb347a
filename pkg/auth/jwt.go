package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken  = errors.New("missing bearer token")
	ErrInvalidFormat = errors.New("invalid authorization format")
	ErrInvalidToken  = errors.New("invalid token")
)

// Claims carries the caller identity issued by the account service.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// TokenMeta is what handlers see of an authenticated caller.
type TokenMeta struct {
	UserID string `json:"userId"`
}

type JWTService interface {
	ValidateToken(token string) (*TokenMeta, error)
	GenerateToken(userID string, ttl time.Duration) (string, error)
}

type hmacService struct {
	secret []byte
}

// NewJWTService returns an HS256 token service keyed by secret.
func NewJWTService(secret string) JWTService {
	return &hmacService{secret: []byte(secret)}
}

func (s *hmacService) ValidateToken(token string) (*TokenMeta, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return &TokenMeta{UserID: claims.UserID}, nil
}

func (s *hmacService) GenerateToken(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrMissingToken
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", ErrInvalidFormat
	}
	return parts[1], nil
}
