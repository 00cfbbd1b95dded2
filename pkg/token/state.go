package token

import (
	"crypto/ed25519"

	"github.com/fili8-labs/onchain/pkg/solana/binary"
)

type AccountState byte

const (
	AccountStateUninitialized AccountState = iota
	AccountStateInitialized
	AccountStateFrozen
)

// Reference: https://github.com/solana-labs/solana-program-library/blob/11b1e3eefdd4e523768d63f7c70a7aa391ea0d02/token/program/src/state.rs#L16
const MintSize = 82

// Reference: https://github.com/solana-labs/solana-program-library/blob/11b1e3eefdd4e523768d63f7c70a7aa391ea0d02/token/program/src/state.rs#L125
const AccountSize = 165

type Mint struct {
	// Optional authority used to mint new tokens. Derived addresses mint
	// by supplying their seeds.
	MintAuthority ed25519.PublicKey
	// Total supply of tokens.
	Supply uint64
	// Number of base 10 digits to the right of the decimal place.
	Decimals uint8
	// Is initialized state.
	IsInitialized bool
	// Optional authority to freeze token accounts.
	FreezeAuthority ed25519.PublicKey
}

func (m *Mint) Marshal() []byte {
	b := make([]byte, MintSize)

	var offset int
	binary.PutCOptionKey(b, m.MintAuthority, &offset)
	binary.PutUint64(b, m.Supply, &offset)
	binary.PutUint8(b, m.Decimals, &offset)
	binary.PutBool(b, m.IsInitialized, &offset)
	binary.PutCOptionKey(b, m.FreezeAuthority, &offset)

	return b
}

func (m *Mint) Unmarshal(b []byte) bool {
	if len(b) != MintSize {
		return false
	}

	var offset int
	binary.GetCOptionKey(b, &m.MintAuthority, &offset)
	binary.GetUint64(b, &m.Supply, &offset)
	binary.GetUint8(b, &m.Decimals, &offset)
	binary.GetBool(b, &m.IsInitialized, &offset)
	binary.GetCOptionKey(b, &m.FreezeAuthority, &offset)

	return true
}

type Account struct {
	// The mint associated with this account
	Mint ed25519.PublicKey
	// The owner of this account.
	Owner ed25519.PublicKey
	// The amount of tokens this account holds.
	Amount uint64
	// If set, then the 'DelegatedAmount' represents the amount
	// authorized by the delegate.
	Delegate ed25519.PublicKey
	// The account's state
	State AccountState
	// If set, this is a native token, and the value logs the rent-exempt
	// reserve.
	IsNative *uint64
	// The amount delegated
	DelegatedAmount uint64
	// Optional authority to close the account.
	CloseAuthority ed25519.PublicKey
}

func (a *Account) Marshal() []byte {
	b := make([]byte, AccountSize)

	var offset int
	binary.PutKey(b, a.Mint, &offset)
	binary.PutKey(b, a.Owner, &offset)
	binary.PutUint64(b, a.Amount, &offset)
	binary.PutCOptionKey(b, a.Delegate, &offset)
	binary.PutUint8(b, uint8(a.State), &offset)
	binary.PutCOptionUint64(b, a.IsNative, &offset)
	binary.PutUint64(b, a.DelegatedAmount, &offset)
	binary.PutCOptionKey(b, a.CloseAuthority, &offset)

	return b
}

func (a *Account) Unmarshal(b []byte) bool {
	if len(b) != AccountSize {
		return false
	}

	var offset int
	binary.GetKey(b, &a.Mint, &offset)
	binary.GetKey(b, &a.Owner, &offset)
	binary.GetUint64(b, &a.Amount, &offset)
	binary.GetCOptionKey(b, &a.Delegate, &offset)

	var state uint8
	binary.GetUint8(b, &state, &offset)
	a.State = AccountState(state)

	binary.GetCOptionUint64(b, &a.IsNative, &offset)
	binary.GetUint64(b, &a.DelegatedAmount, &offset)
	binary.GetCOptionKey(b, &a.CloseAuthority, &offset)

	return true
}
