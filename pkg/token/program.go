// Package token executes SPL token program semantics against the runtime
// account store: mints, token accounts, and the transfer primitives the
// program cores consume. Every operation is journaled through the enclosing
// runtime.Execution, so a later failure in the same instruction unwinds it.
package token

import (
	"bytes"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/fili8-labs/onchain/pkg/runtime"
	"github.com/fili8-labs/onchain/pkg/safemath"
	"github.com/fili8-labs/onchain/pkg/solana"
)

// ProgramID is the address of the token program.
//
// Current key: TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA
var ProgramID = ed25519.PublicKey(solana.MustBase58Decode("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"))

// InitializeMint creates a mint account with the given decimals and
// authorities. The freeze authority may be nil.
func InitializeMint(ex *runtime.Execution, address, mintAuthority, freezeAuthority ed25519.PublicKey, decimals uint8, payer ed25519.PublicKey) error {
	account, err := ex.Create(address, ProgramID, MintSize, payer)
	if err != nil {
		if errors.Is(err, runtime.ErrAlreadyInitialized) {
			return ErrAlreadyInUse
		}
		return err
	}

	mint := &Mint{
		MintAuthority:   mintAuthority,
		Decimals:        decimals,
		IsInitialized:   true,
		FreezeAuthority: freezeAuthority,
	}
	copy(account.Data, mint.Marshal())
	return nil
}

// InitializeAccount creates a token account holding the given mint for the
// given owner.
func InitializeAccount(ex *runtime.Execution, address, mint, owner ed25519.PublicKey, payer ed25519.PublicKey) error {
	if _, _, err := loadMint(ex, mint); err != nil {
		return err
	}

	account, err := ex.Create(address, ProgramID, AccountSize, payer)
	if err != nil {
		if errors.Is(err, runtime.ErrAlreadyInitialized) {
			return ErrAlreadyInUse
		}
		return err
	}

	state := &Account{
		Mint:  mint,
		Owner: owner,
		State: AccountStateInitialized,
	}
	copy(account.Data, state.Marshal())
	return nil
}

// TransferChecked moves tokens between two accounts of the same mint,
// validating the mint's decimals. The authority must resolve to the source
// account's owner, or its delegate with sufficient delegated amount.
func TransferChecked(ex *runtime.Execution, source, destination, mint ed25519.PublicKey, amount uint64, decimals uint8, authority runtime.Authority) error {
	mintState, _, err := loadMint(ex, mint)
	if err != nil {
		return err
	}
	if mintState.Decimals != decimals {
		return ErrMintDecimalsMismatch
	}

	sourceState, sourceAccount, err := loadAccount(ex, source)
	if err != nil {
		return err
	}
	destState, destAccount, err := loadAccount(ex, destination)
	if err != nil {
		return err
	}

	if !bytes.Equal(sourceState.Mint, mint) || !bytes.Equal(destState.Mint, mint) {
		return ErrMintMismatch
	}
	if sourceState.State == AccountStateFrozen || destState.State == AccountStateFrozen {
		return ErrAccountFrozen
	}
	if sourceState.Amount < amount {
		return ErrInsufficientFunds
	}

	if err := debitAuthority(sourceState, amount, authority); err != nil {
		return err
	}

	sourceState.Amount -= amount
	destState.Amount, err = safemath.CheckedAddU64(destState.Amount, amount)
	if err != nil {
		return err
	}

	copy(sourceAccount.Data, sourceState.Marshal())
	copy(destAccount.Data, destState.Marshal())
	return nil
}

// MintTo mints new tokens to a destination account. The authority must be
// the mint's mint authority.
func MintTo(ex *runtime.Execution, mint, destination ed25519.PublicKey, amount uint64, authority runtime.Authority) error {
	mintState, mintAccount, err := loadMint(ex, mint)
	if err != nil {
		return err
	}
	if err := authority.Verify(mintState.MintAuthority); err != nil {
		return ErrOwnerMismatch
	}

	destState, destAccount, err := loadAccount(ex, destination)
	if err != nil {
		return err
	}
	if !bytes.Equal(destState.Mint, mint) {
		return ErrMintMismatch
	}
	if destState.State == AccountStateFrozen {
		return ErrAccountFrozen
	}

	mintState.Supply, err = safemath.CheckedAddU64(mintState.Supply, amount)
	if err != nil {
		return err
	}
	destState.Amount, err = safemath.CheckedAddU64(destState.Amount, amount)
	if err != nil {
		return err
	}

	copy(mintAccount.Data, mintState.Marshal())
	copy(destAccount.Data, destState.Marshal())
	return nil
}

// Burn destroys tokens from an account, reducing the mint's supply.
func Burn(ex *runtime.Execution, mint, source ed25519.PublicKey, amount uint64, authority runtime.Authority) error {
	mintState, mintAccount, err := loadMint(ex, mint)
	if err != nil {
		return err
	}

	sourceState, sourceAccount, err := loadAccount(ex, source)
	if err != nil {
		return err
	}
	if !bytes.Equal(sourceState.Mint, mint) {
		return ErrMintMismatch
	}
	if sourceState.State == AccountStateFrozen {
		return ErrAccountFrozen
	}
	if sourceState.Amount < amount {
		return ErrInsufficientFunds
	}

	if err := debitAuthority(sourceState, amount, authority); err != nil {
		return err
	}

	sourceState.Amount -= amount
	mintState.Supply, err = safemath.CheckedSubU64(mintState.Supply, amount)
	if err != nil {
		return err
	}

	copy(sourceAccount.Data, sourceState.Marshal())
	copy(mintAccount.Data, mintState.Marshal())
	return nil
}

// Approve sets a delegate allowed to transfer up to amount from the account.
func Approve(ex *runtime.Execution, address, delegate ed25519.PublicKey, amount uint64, authority runtime.Authority) error {
	state, account, err := loadAccount(ex, address)
	if err != nil {
		return err
	}
	if state.State == AccountStateFrozen {
		return ErrAccountFrozen
	}
	if err := authority.Verify(state.Owner); err != nil {
		return ErrOwnerMismatch
	}

	state.Delegate = delegate
	state.DelegatedAmount = amount
	copy(account.Data, state.Marshal())
	return nil
}

// Revoke clears the account's delegate.
func Revoke(ex *runtime.Execution, address ed25519.PublicKey, authority runtime.Authority) error {
	state, account, err := loadAccount(ex, address)
	if err != nil {
		return err
	}
	if err := authority.Verify(state.Owner); err != nil {
		return ErrOwnerMismatch
	}

	state.Delegate = nil
	state.DelegatedAmount = 0
	copy(account.Data, state.Marshal())
	return nil
}

// CloseAccount closes an empty token account and refunds its rent to the
// destination.
func CloseAccount(ex *runtime.Execution, address, destination ed25519.PublicKey, authority runtime.Authority) error {
	state, _, err := loadAccount(ex, address)
	if err != nil {
		return err
	}
	if state.Amount != 0 {
		return ErrNonNativeHasBalance
	}

	closeAuthority := state.Owner
	if len(state.CloseAuthority) > 0 {
		closeAuthority = state.CloseAuthority
	}
	if err := authority.Verify(closeAuthority); err != nil {
		return ErrOwnerMismatch
	}

	return ex.Close(address, destination)
}

// FreezeAccount freezes a token account using the mint's freeze authority.
func FreezeAccount(ex *runtime.Execution, address, mint ed25519.PublicKey, authority runtime.Authority) error {
	mintState, _, err := loadMint(ex, mint)
	if err != nil {
		return err
	}
	if len(mintState.FreezeAuthority) == 0 {
		return ErrMintCannotFreeze
	}
	if err := authority.Verify(mintState.FreezeAuthority); err != nil {
		return ErrOwnerMismatch
	}

	return setFrozen(ex, address, mint, true)
}

// ThawAccount thaws a frozen token account using the mint's freeze authority.
func ThawAccount(ex *runtime.Execution, address, mint ed25519.PublicKey, authority runtime.Authority) error {
	mintState, _, err := loadMint(ex, mint)
	if err != nil {
		return err
	}
	if len(mintState.FreezeAuthority) == 0 {
		return ErrMintCannotFreeze
	}
	if err := authority.Verify(mintState.FreezeAuthority); err != nil {
		return ErrOwnerMismatch
	}

	return setFrozen(ex, address, mint, false)
}

// FreezeDelegated freezes a token account on behalf of its approved
// delegate. This is the path the metadata program's master edition uses for
// staked NFTs; the delegate proves itself with seeds rather than the mint's
// freeze authority.
func FreezeDelegated(ex *runtime.Execution, address ed25519.PublicKey, delegate runtime.Authority) error {
	state, _, err := loadAccount(ex, address)
	if err != nil {
		return err
	}
	if len(state.Delegate) == 0 {
		return ErrDelegateMismatch
	}
	if err := delegate.Verify(state.Delegate); err != nil {
		return ErrDelegateMismatch
	}
	if state.State == AccountStateFrozen {
		return ErrAccountFrozen
	}

	return setFrozen(ex, address, state.Mint, true)
}

// ThawDelegated thaws a frozen token account on behalf of its delegate.
func ThawDelegated(ex *runtime.Execution, address ed25519.PublicKey, delegate runtime.Authority) error {
	state, _, err := loadAccount(ex, address)
	if err != nil {
		return err
	}
	if len(state.Delegate) == 0 {
		return ErrDelegateMismatch
	}
	if err := delegate.Verify(state.Delegate); err != nil {
		return ErrDelegateMismatch
	}
	if state.State != AccountStateFrozen {
		return ErrAccountNotFrozen
	}

	return setFrozen(ex, address, state.Mint, false)
}

// GetAccount returns the decoded token account state.
func GetAccount(ex *runtime.Execution, address ed25519.PublicKey) (*Account, error) {
	state, _, err := loadAccount(ex, address)
	return state, err
}

// GetMint returns the decoded mint state.
func GetMint(ex *runtime.Execution, address ed25519.PublicKey) (*Mint, error) {
	state, _, err := loadMint(ex, address)
	return state, err
}

func setFrozen(ex *runtime.Execution, address, mint ed25519.PublicKey, frozen bool) error {
	state, account, err := loadAccount(ex, address)
	if err != nil {
		return err
	}
	if !bytes.Equal(state.Mint, mint) {
		return ErrMintMismatch
	}

	if frozen {
		state.State = AccountStateFrozen
	} else {
		state.State = AccountStateInitialized
	}
	copy(account.Data, state.Marshal())
	return nil
}

func debitAuthority(state *Account, amount uint64, authority runtime.Authority) error {
	address, err := authority.Address()
	if err != nil {
		return err
	}

	if bytes.Equal(address, state.Owner) {
		return nil
	}
	if len(state.Delegate) > 0 && bytes.Equal(address, state.Delegate) {
		if state.DelegatedAmount < amount {
			return ErrInsufficientDelegated
		}
		state.DelegatedAmount -= amount
		return nil
	}
	return ErrOwnerMismatch
}

func loadMint(ex *runtime.Execution, address ed25519.PublicKey) (*Mint, *runtime.Account, error) {
	account, err := ex.Load(address, ProgramID)
	if err != nil {
		if errors.Is(err, runtime.ErrAccountNotFound) {
			return nil, nil, ErrInvalidMint
		}
		return nil, nil, err
	}

	var mint Mint
	if !mint.Unmarshal(account.Data) || !mint.IsInitialized {
		return nil, nil, ErrInvalidMint
	}
	return &mint, account, nil
}

func loadAccount(ex *runtime.Execution, address ed25519.PublicKey) (*Account, *runtime.Account, error) {
	account, err := ex.Load(address, ProgramID)
	if err != nil {
		return nil, nil, err
	}

	var state Account
	if !state.Unmarshal(account.Data) || state.State == AccountStateUninitialized {
		return nil, nil, ErrUninitializedState
	}
	return &state, account, nil
}
