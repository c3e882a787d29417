package auth

import (
	"context"
	"encoding/base64"
	"time"

	jwt "github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"

	"github.com/bookorg/bookstore-service/internal/errs"
)

type Config struct {
	// Secret is a base64-encoded symmetric signing key.
	Secret string `yaml:"secret" envconfig:"JWT_SECRET"`
	// TokenTTL is the token validity window in milliseconds.
	TokenTTL int64 `yaml:"tokenTTL" envconfig:"JWT_EXPIRATION_MS" default:"3600000"`
}

type Claims struct {
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

type TokenManager struct {
	key []byte
	ttl time.Duration
}

func NewTokenManager(cfg Config) (*TokenManager, error) {
	key, err := base64.StdEncoding.DecodeString(cfg.Secret)
	if err != nil {
		return nil, errors.Wrap(err, "decode jwt secret")
	}
	if len(key) == 0 {
		return nil, errors.New("empty jwt secret")
	}
	return &TokenManager{
		key: key,
		ttl: time.Duration(cfg.TokenTTL) * time.Millisecond,
	}, nil
}

// Issue signs a compact HS256 token for the given subject.
func (m *TokenManager) Issue(username string, roles []string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.key)
}

// Parse verifies the signature and returns the claims. Any tampered token
// yields errs.ErrSignatureInvalid; a valid but stale one errs.ErrTokenExpired.
func (m *TokenManager) Parse(tokenStr string) (*Claims, error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errs.ErrSignatureInvalid
		}
		return m.key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errs.ErrTokenExpired
		}
		return nil, errs.ErrSignatureInvalid
	}
	if !token.Valid {
		return nil, errs.ErrSignatureInvalid
	}
	return claims, nil
}

func (m *TokenManager) ExtractUsername(tokenStr string) (string, error) {
	claims, err := m.Parse(tokenStr)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// IsValid reports whether the token belongs to expectedUsername and is not
// expired. An expired or malformed token yields false, never an error.
func (m *TokenManager) IsValid(tokenStr, expectedUsername string) bool {
	claims, err := m.Parse(tokenStr)
	if err != nil {
		return false
	}
	return claims.Subject == expectedUsername
}

type contextKey int

const identityKey contextKey = iota + 1

type Identity struct {
	Username string
	Roles    []string
}

func SetAuthContext(ctx context.Context, username string, roles []string) context.Context {
	return context.WithValue(ctx, identityKey, Identity{Username: username, Roles: roles})
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
