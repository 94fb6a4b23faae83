package app

import (
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

type (
	// AuthVerifier turns a raw bearer token into the caller's user id.
	AuthVerifier interface {
		Verify(token string) (string, error)
	}

	Claims struct {
		Email string `json:"email"`
		jwt.RegisteredClaims
	}

	// TokenService issues and verifies HS256 access tokens.
	TokenService struct {
		secret []byte
		ttl    time.Duration
	}
)

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

func (t *TokenService) CreateAccessToken(user *User) (string, error) {
	claims := Claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(t.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify parses and validates a token and returns the user id it was
// issued for. Expired, malformed and badly signed tokens all come back as
// ErrInvalidToken.
func (t *TokenService) Verify(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
