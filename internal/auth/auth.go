// Package auth verifies the identity proofs that accompany mutating ledger calls.
package auth

import (
	"context"
	"fmt"

	"github.com/zakatfund/backend/internal/models"
)

// Token is the caller-supplied proof of identity for a single call.
type Token string

// Authorizer turns a Token into the principal it proves.
type Authorizer interface {
	Verify(ctx context.Context, token Token) (models.Principal, error)
}

// Static maps fixed tokens to principals. It backs tests and local demos.
type Static map[Token]models.Principal

func (s Static) Verify(_ context.Context, token Token) (models.Principal, error) {
	p, ok := s[token]
	if !ok || p == "" {
		return "", fmt.Errorf("%w: unknown token", models.ErrUnauthorized)
	}
	return p, nil
}

type tokenKey struct{}

// WithToken stores the request's bearer token in ctx.
func WithToken(ctx context.Context, token Token) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the bearer token stored by WithToken.
func TokenFromContext(ctx context.Context) (Token, bool) {
	token, ok := ctx.Value(tokenKey{}).(Token)
	return token, ok && token != ""
}
