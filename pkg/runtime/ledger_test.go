package runtime

import (
	"crypto/ed25519"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fili8-labs/onchain/pkg/solana"
)

func newKey(t *testing.T) ed25519.PublicKey {
	key, err := solana.NewRandomKey()
	require.NoError(t, err)
	return key
}

func TestExecute_Rollback(t *testing.T) {
	ledger := NewLedger()
	wallet := newKey(t)
	other := newKey(t)
	ledger.FundWallet(wallet, 1_000)

	failure := errors.New("boom")
	err := ledger.Execute(func(ex *Execution) error {
		if err := ex.Transfer(wallet, other, 400, SignerAuthority(wallet)); err != nil {
			return err
		}
		return failure
	})
	require.Equal(t, failure, err)

	// No partial effects survive the failed instruction.
	assert.EqualValues(t, 1_000, ledger.Balance(wallet))
	assert.Zero(t, ledger.Balance(other))
}

func TestExecute_RollbackRestoresDeletedAccounts(t *testing.T) {
	ledger := NewLedger()
	program := newKey(t)
	wallet := newKey(t)
	record := newKey(t)
	ledger.FundWallet(wallet, 10_000_000)

	require.NoError(t, ledger.Execute(func(ex *Execution) error {
		account, err := ex.Create(record, program, 8, wallet)
		if err != nil {
			return err
		}
		account.StoreData([]byte{1, 2, 3})
		return nil
	}))

	failure := errors.New("boom")
	err := ledger.Execute(func(ex *Execution) error {
		if err := ex.Close(record, wallet); err != nil {
			return err
		}
		return failure
	})
	require.Equal(t, failure, err)

	account, ok := ledger.Account(record)
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, account.Data[:3])
	assert.Equal(t, ed25519.PublicKey(program), account.Owner)
}

func TestCreate_RentAndReinit(t *testing.T) {
	ledger := NewLedger()
	program := newKey(t)
	wallet := newKey(t)
	record := newKey(t)
	ledger.FundWallet(wallet, 10_000_000)

	require.NoError(t, ledger.Execute(func(ex *Execution) error {
		_, err := ex.Create(record, program, 100, wallet)
		return err
	}))

	rent := RentExemptBalance(100)
	assert.Equal(t, 10_000_000-rent, ledger.Balance(wallet))
	assert.Equal(t, rent, ledger.Balance(record))

	err := ledger.Execute(func(ex *Execution) error {
		_, err := ex.Create(record, program, 100, wallet)
		return err
	})
	assert.Equal(t, ErrAlreadyInitialized, err)

	// Closing refunds the rent and frees the address for reuse.
	require.NoError(t, ledger.Execute(func(ex *Execution) error {
		return ex.Close(record, wallet)
	}))
	assert.EqualValues(t, 10_000_000, ledger.Balance(wallet))

	require.NoError(t, ledger.Execute(func(ex *Execution) error {
		_, err := ex.Create(record, program, 100, wallet)
		return err
	}))
}

func TestTransfer_Authority(t *testing.T) {
	ledger := NewLedger()
	program := newKey(t)
	wallet := newKey(t)
	thief := newKey(t)
	ledger.FundWallet(wallet, 1_000)

	// A signature for a different wallet does not move funds.
	err := ledger.Execute(func(ex *Execution) error {
		return ex.Transfer(wallet, thief, 500, SignerAuthority(thief))
	})
	assert.Equal(t, ErrMissingSignature, err)

	err = ledger.Execute(func(ex *Execution) error {
		return ex.Transfer(wallet, thief, 5_000, SignerAuthority(wallet))
	})
	assert.Equal(t, ErrInsufficientBalance, err)

	// Program addresses are moved by their seed tuple, and only the
	// correct tuple.
	derived, bump, err := solana.FindProgramAddressAndBump(program, []byte("vault"))
	require.NoError(t, err)
	ledger.FundWallet(derived, 1_000)

	err = ledger.Execute(func(ex *Execution) error {
		return ex.Transfer(derived, wallet, 400, DerivedAuthority(program, bump, []byte("other")))
	})
	assert.Equal(t, ErrBadSeeds, err)

	require.NoError(t, ledger.Execute(func(ex *Execution) error {
		return ex.Transfer(derived, wallet, 400, DerivedAuthority(program, bump, []byte("vault")))
	}))
	assert.EqualValues(t, 1_400, ledger.Balance(wallet))
	assert.EqualValues(t, 600, ledger.Balance(derived))
}

func TestTransfer_NonNativeSource(t *testing.T) {
	ledger := NewLedger()
	program := newKey(t)
	wallet := newKey(t)
	record := newKey(t)
	ledger.FundWallet(wallet, 10_000_000)

	require.NoError(t, ledger.Execute(func(ex *Execution) error {
		_, err := ex.Create(record, program, 8, wallet)
		return err
	}))

	err := ledger.Execute(func(ex *Execution) error {
		return ex.Transfer(record, wallet, 1, SignerAuthority(record))
	})
	assert.Equal(t, ErrWrongOwner, err)
}
