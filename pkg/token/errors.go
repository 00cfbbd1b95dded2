package token

import "github.com/pkg/errors"

// Token engine failures keep the SPL token program's error vocabulary so
// they can bubble through program instructions with their native meaning
// preserved.
var (
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrInvalidMint           = errors.New("invalid mint")
	ErrMintMismatch          = errors.New("account does not match the mint")
	ErrOwnerMismatch         = errors.New("owner does not match")
	ErrAlreadyInUse          = errors.New("account already in use")
	ErrUninitializedState    = errors.New("uninitialized account state")
	ErrAccountFrozen         = errors.New("account is frozen")
	ErrAccountNotFrozen      = errors.New("account is not frozen")
	ErrMintDecimalsMismatch  = errors.New("decimals different from the mint decimals")
	ErrNonNativeHasBalance   = errors.New("non-native account has a balance")
	ErrMintCannotFreeze      = errors.New("mint has no freeze authority")
	ErrDelegateMismatch      = errors.New("delegate does not match")
	ErrInsufficientDelegated = errors.New("insufficient delegated amount")
)
