package models

import "errors"

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNotFound           = errors.New("not found")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrInvalidState       = errors.New("invalid state")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrAlreadyInitialized = errors.New("already initialized")
)

var errorKinds = []struct {
	err  error
	kind string
}{
	{ErrUnauthorized, "Unauthorized"},
	{ErrNotFound, "NotFound"},
	{ErrInvalidArgument, "InvalidArgument"},
	{ErrInvalidState, "InvalidState"},
	{ErrInsufficientFunds, "InsufficientFunds"},
	{ErrAlreadyInitialized, "AlreadyInitialized"},
}

// ErrorKind names the ledger error kind wrapped by err, or "Internal" when
// err carries none of them.
func ErrorKind(err error) string {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return "Internal"
}
