package token

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fili8-labs/onchain/pkg/runtime"
	"github.com/fili8-labs/onchain/pkg/solana"
)

type tokenFixture struct {
	ledger    *runtime.Ledger
	authority ed25519.PublicKey
	alice     ed25519.PublicKey
	bob       ed25519.PublicKey
	mint      ed25519.PublicKey
	aliceAta  ed25519.PublicKey
	bobAta    ed25519.PublicKey
}

func newKey(t *testing.T) ed25519.PublicKey {
	key, err := solana.NewRandomKey()
	require.NoError(t, err)
	return key
}

func setupToken(t *testing.T) *tokenFixture {
	ledger := runtime.NewLedger()
	authority := newKey(t)
	alice := newKey(t)
	bob := newKey(t)
	mint := newKey(t)
	ledger.FundWallet(authority, 1_000_000_000)

	f := &tokenFixture{
		ledger:    ledger,
		authority: authority,
		alice:     alice,
		bob:       bob,
		mint:      mint,
	}

	require.NoError(t, ledger.Execute(func(ex *runtime.Execution) error {
		if err := InitializeMint(ex, mint, authority, nil, 6, authority); err != nil {
			return err
		}

		var err error
		f.aliceAta, err = CreateAssociatedAccount(ex, authority, alice, mint)
		if err != nil {
			return err
		}
		f.bobAta, err = CreateAssociatedAccount(ex, authority, bob, mint)
		if err != nil {
			return err
		}
		return MintTo(ex, mint, f.aliceAta, 1_000, runtime.SignerAuthority(authority))
	}))

	return f
}

func (f *tokenFixture) balance(t *testing.T, address ed25519.PublicKey) uint64 {
	var amount uint64
	require.NoError(t, f.ledger.Execute(func(ex *runtime.Execution) error {
		state, err := GetAccount(ex, address)
		if err != nil {
			return err
		}
		amount = state.Amount
		return nil
	}))
	return amount
}

func TestTransferChecked(t *testing.T) {
	f := setupToken(t)

	require.NoError(t, f.ledger.Execute(func(ex *runtime.Execution) error {
		return TransferChecked(ex, f.aliceAta, f.bobAta, f.mint, 400, 6, runtime.SignerAuthority(f.alice))
	}))
	assert.EqualValues(t, 600, f.balance(t, f.aliceAta))
	assert.EqualValues(t, 400, f.balance(t, f.bobAta))

	err := f.ledger.Execute(func(ex *runtime.Execution) error {
		return TransferChecked(ex, f.aliceAta, f.bobAta, f.mint, 601, 6, runtime.SignerAuthority(f.alice))
	})
	assert.Equal(t, ErrInsufficientFunds, err)

	err = f.ledger.Execute(func(ex *runtime.Execution) error {
		return TransferChecked(ex, f.aliceAta, f.bobAta, f.mint, 100, 9, runtime.SignerAuthority(f.alice))
	})
	assert.Equal(t, ErrMintDecimalsMismatch, err)

	// Bob cannot move Alice's tokens.
	err = f.ledger.Execute(func(ex *runtime.Execution) error {
		return TransferChecked(ex, f.aliceAta, f.bobAta, f.mint, 100, 6, runtime.SignerAuthority(f.bob))
	})
	assert.Equal(t, ErrOwnerMismatch, err)
}

func TestDelegate(t *testing.T) {
	f := setupToken(t)
	delegate := newKey(t)

	require.NoError(t, f.ledger.Execute(func(ex *runtime.Execution) error {
		return Approve(ex, f.aliceAta, delegate, 300, runtime.SignerAuthority(f.alice))
	}))

	// The delegate spends against its allowance.
	require.NoError(t, f.ledger.Execute(func(ex *runtime.Execution) error {
		return TransferChecked(ex, f.aliceAta, f.bobAta, f.mint, 250, 6, runtime.SignerAuthority(delegate))
	}))
	assert.EqualValues(t, 750, f.balance(t, f.aliceAta))

	err := f.ledger.Execute(func(ex *runtime.Execution) error {
		return TransferChecked(ex, f.aliceAta, f.bobAta, f.mint, 100, 6, runtime.SignerAuthority(delegate))
	})
	assert.Equal(t, ErrInsufficientDelegated, err)

	require.NoError(t, f.ledger.Execute(func(ex *runtime.Execution) error {
		return Revoke(ex, f.aliceAta, runtime.SignerAuthority(f.alice))
	}))

	err = f.ledger.Execute(func(ex *runtime.Execution) error {
		return TransferChecked(ex, f.aliceAta, f.bobAta, f.mint, 10, 6, runtime.SignerAuthority(delegate))
	})
	assert.Equal(t, ErrOwnerMismatch, err)
}

func TestFreezeThawDelegated(t *testing.T) {
	f := setupToken(t)
	delegate := newKey(t)

	// Freezing requires an approved delegate.
	err := f.ledger.Execute(func(ex *runtime.Execution) error {
		return FreezeDelegated(ex, f.aliceAta, runtime.SignerAuthority(delegate))
	})
	assert.Equal(t, ErrDelegateMismatch, err)

	require.NoError(t, f.ledger.Execute(func(ex *runtime.Execution) error {
		if err := Approve(ex, f.aliceAta, delegate, 1, runtime.SignerAuthority(f.alice)); err != nil {
			return err
		}
		return FreezeDelegated(ex, f.aliceAta, runtime.SignerAuthority(delegate))
	}))

	// Nothing moves from, or to, a frozen account. Even the owner.
	err = f.ledger.Execute(func(ex *runtime.Execution) error {
		return TransferChecked(ex, f.aliceAta, f.bobAta, f.mint, 1, 6, runtime.SignerAuthority(f.alice))
	})
	assert.Equal(t, ErrAccountFrozen, err)

	err = f.ledger.Execute(func(ex *runtime.Execution) error {
		return ThawDelegated(ex, f.aliceAta, runtime.SignerAuthority(f.alice))
	})
	assert.Equal(t, ErrDelegateMismatch, err)

	require.NoError(t, f.ledger.Execute(func(ex *runtime.Execution) error {
		return ThawDelegated(ex, f.aliceAta, runtime.SignerAuthority(delegate))
	}))

	require.NoError(t, f.ledger.Execute(func(ex *runtime.Execution) error {
		return TransferChecked(ex, f.aliceAta, f.bobAta, f.mint, 1, 6, runtime.SignerAuthority(f.alice))
	}))
}

func TestCloseAccount(t *testing.T) {
	f := setupToken(t)
	refund := newKey(t)

	err := f.ledger.Execute(func(ex *runtime.Execution) error {
		return CloseAccount(ex, f.aliceAta, refund, runtime.SignerAuthority(f.alice))
	})
	assert.Equal(t, ErrNonNativeHasBalance, err)

	require.NoError(t, f.ledger.Execute(func(ex *runtime.Execution) error {
		return TransferChecked(ex, f.aliceAta, f.bobAta, f.mint, 1_000, 6, runtime.SignerAuthority(f.alice))
	}))

	err = f.ledger.Execute(func(ex *runtime.Execution) error {
		return CloseAccount(ex, f.aliceAta, refund, runtime.SignerAuthority(f.bob))
	})
	assert.Equal(t, ErrOwnerMismatch, err)

	require.NoError(t, f.ledger.Execute(func(ex *runtime.Execution) error {
		return CloseAccount(ex, f.aliceAta, refund, runtime.SignerAuthority(f.alice))
	}))
	assert.Equal(t, runtime.RentExemptBalance(AccountSize), f.ledger.Balance(refund))
	_, ok := f.ledger.Account(f.aliceAta)
	assert.False(t, ok)
}

func TestMintAndBurn(t *testing.T) {
	f := setupToken(t)

	err := f.ledger.Execute(func(ex *runtime.Execution) error {
		return MintTo(ex, f.mint, f.aliceAta, 1, runtime.SignerAuthority(f.alice))
	})
	assert.Equal(t, ErrOwnerMismatch, err)

	require.NoError(t, f.ledger.Execute(func(ex *runtime.Execution) error {
		return Burn(ex, f.mint, f.aliceAta, 400, runtime.SignerAuthority(f.alice))
	}))
	assert.EqualValues(t, 600, f.balance(t, f.aliceAta))

	require.NoError(t, f.ledger.Execute(func(ex *runtime.Execution) error {
		mint, err := GetMint(ex, f.mint)
		if err != nil {
			return err
		}
		assert.EqualValues(t, 600, mint.Supply)
		return nil
	}))
}
