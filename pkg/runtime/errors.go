package runtime

import "github.com/pkg/errors"

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrAlreadyInitialized  = errors.New("account already initialized")
	ErrWrongOwner          = errors.New("account owned by wrong program")
	ErrWrongKind           = errors.New("account data is of the wrong kind")
	ErrBadSeeds            = errors.New("provided seeds do not derive the expected address")
	ErrMissingSignature    = errors.New("required signature is missing")
	ErrInsufficientBalance = errors.New("insufficient balance")
)
