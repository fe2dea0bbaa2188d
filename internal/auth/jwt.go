package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/zakatfund/backend/internal/models"
)

// JWTAuthorizer accepts HS256 tokens whose subject is the caller principal.
type JWTAuthorizer struct {
	secret []byte
	issuer string
}

func NewJWTAuthorizer(secret, issuer string) *JWTAuthorizer {
	return &JWTAuthorizer{secret: []byte(secret), issuer: issuer}
}

func (a *JWTAuthorizer) Verify(_ context.Context, token Token) (models.Principal, error) {
	if token == "" {
		return "", fmt.Errorf("%w: identity proof required", models.ErrUnauthorized)
	}
	if len(a.secret) == 0 {
		return "", fmt.Errorf("%w: token verification not configured", models.ErrUnauthorized)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(string(token), claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, opts...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrUnauthorized, err)
	}
	if !parsed.Valid {
		return "", fmt.Errorf("%w: invalid token", models.ErrUnauthorized)
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("%w: token has no subject", models.ErrUnauthorized)
	}
	return models.Principal(claims.Subject), nil
}

// Issue signs a token proving principal for ttl.
func (a *JWTAuthorizer) Issue(principal models.Principal, ttl time.Duration) (string, error) {
	if principal == "" {
		return "", errors.New("principal is required")
	}
	if len(a.secret) == 0 {
		return "", errors.New("signing secret is required")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   string(principal),
		Issuer:    a.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}
