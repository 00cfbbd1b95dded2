package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fili8-labs/onchain/pkg/runtime"
	"github.com/fili8-labs/onchain/pkg/testutil"
)

func TestVaultLifecycle(t *testing.T) {
	ledger := testutil.NewLedger(t)
	owner := testutil.FundedWallet(t, ledger, 1_000_000_000)

	processor := NewProcessor()
	stateAddress, err := processor.Initialize(ledger, owner)
	require.NoError(t, err)

	account, ok := ledger.Account(stateAddress)
	require.True(t, ok)
	assert.Equal(t, ProgramID, account.Owner)

	// Persisted bumps re-derive both addresses.
	var state State
	require.NoError(t, state.Unmarshal(account.Data))
	expected, stateBump, err := GetStateAddress(owner)
	require.NoError(t, err)
	assert.Equal(t, expected, stateAddress)
	assert.Equal(t, stateBump, state.StateBump)
	_, vaultBump, err := GetVaultAddress(stateAddress)
	require.NoError(t, err)
	assert.Equal(t, vaultBump, state.VaultBump)

	ownerBefore := ledger.Balance(owner)
	require.NoError(t, processor.Deposit(ledger, owner, 500_000))

	balance, err := GetVaultBalance(ledger, owner)
	require.NoError(t, err)
	assert.EqualValues(t, 500_000, balance)
	assert.Equal(t, ownerBefore-500_000, ledger.Balance(owner))

	require.NoError(t, processor.Withdraw(ledger, owner, 200_000))
	balance, err = GetVaultBalance(ledger, owner)
	require.NoError(t, err)
	assert.EqualValues(t, 300_000, balance)
	assert.Equal(t, ownerBefore-300_000, ledger.Balance(owner))
}

func TestWithdraw_InsufficientBalance(t *testing.T) {
	ledger := testutil.NewLedger(t)
	owner := testutil.FundedWallet(t, ledger, 1_000_000_000)

	processor := NewProcessor()
	_, err := processor.Initialize(ledger, owner)
	require.NoError(t, err)
	require.NoError(t, processor.Deposit(ledger, owner, 100_000))

	assert.Equal(t, ErrInsufficientBalance, processor.Withdraw(ledger, owner, 100_001))

	// The failed withdrawal left the vault untouched.
	balance, err := GetVaultBalance(ledger, owner)
	require.NoError(t, err)
	assert.EqualValues(t, 100_000, balance)
}

func TestVault_Validation(t *testing.T) {
	ledger := testutil.NewLedger(t)
	owner := testutil.FundedWallet(t, ledger, 1_000_000_000)

	processor := NewProcessor()

	// Deposits and withdrawals require an initialized state record.
	assert.Equal(t, runtime.ErrAccountNotFound, processor.Deposit(ledger, owner, 1))

	_, err := processor.Initialize(ledger, owner)
	require.NoError(t, err)

	assert.Equal(t, ErrZeroAmount, processor.Deposit(ledger, owner, 0))
	assert.Equal(t, ErrZeroAmount, processor.Withdraw(ledger, owner, 0))

	// Vaults are per owner: a second initialize for the same owner fails.
	_, err = processor.Initialize(ledger, owner)
	assert.Equal(t, runtime.ErrAlreadyInitialized, err)
}
