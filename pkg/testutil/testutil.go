// Package testutil provides ledger fixtures shared by the program test
// suites: funded wallets, mints, and token balances.
package testutil

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fili8-labs/onchain/pkg/runtime"
	"github.com/fili8-labs/onchain/pkg/solana"
	"github.com/fili8-labs/onchain/pkg/token"
)

// DefaultClock is an arbitrary fixed timestamp tests start at.
const DefaultClock = int64(1_700_000_000)

func NewLedger(t *testing.T) *runtime.Ledger {
	ledger := runtime.NewLedger()
	ledger.SetClock(DefaultClock)
	return ledger
}

// NewKey generates a random public key.
func NewKey(t *testing.T) ed25519.PublicKey {
	key, err := solana.NewRandomKey()
	require.NoError(t, err)
	return key
}

// FundedWallet creates a native account holding the given lamports.
func FundedWallet(t *testing.T, ledger *runtime.Ledger, lamports uint64) ed25519.PublicKey {
	wallet := NewKey(t)
	ledger.FundWallet(wallet, lamports)
	return wallet
}

// CreateMint creates a mint at a fresh address with the given authority and
// decimals, funded by the authority.
func CreateMint(t *testing.T, ledger *runtime.Ledger, authority ed25519.PublicKey, decimals uint8) ed25519.PublicKey {
	mint := NewKey(t)
	err := ledger.Execute(func(ex *runtime.Execution) error {
		return token.InitializeMint(ex, mint, authority, nil, decimals, authority)
	})
	require.NoError(t, err)
	return mint
}

// MintToWallet mints amount of the mint into the wallet's associated token
// account, creating it if needed, and returns the account address.
func MintToWallet(t *testing.T, ledger *runtime.Ledger, mint, mintAuthority, wallet ed25519.PublicKey, amount uint64) ed25519.PublicKey {
	var address ed25519.PublicKey
	err := ledger.Execute(func(ex *runtime.Execution) error {
		var err error
		address, err = token.CreateAssociatedAccountIdempotent(ex, mintAuthority, wallet, mint)
		if err != nil {
			return err
		}
		if amount == 0 {
			return nil
		}
		return token.MintTo(ex, mint, address, amount, runtime.SignerAuthority(mintAuthority))
	})
	require.NoError(t, err)
	return address
}

// TokenBalance returns the wallet's associated-account balance for the mint,
// zero if the account does not exist.
func TokenBalance(t *testing.T, ledger *runtime.Ledger, wallet, mint ed25519.PublicKey) uint64 {
	address, err := token.GetAssociatedAccount(wallet, mint)
	require.NoError(t, err)

	var amount uint64
	_ = ledger.Execute(func(ex *runtime.Execution) error {
		state, err := token.GetAccount(ex, address)
		if err != nil {
			return err
		}
		amount = state.Amount
		return nil
	})
	return amount
}
