package staking

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fili8-labs/onchain/pkg/runtime"
	"github.com/fili8-labs/onchain/pkg/testutil"
	"github.com/fili8-labs/onchain/pkg/token"
)

type stakingFixture struct {
	ledger      *runtime.Ledger
	admin       ed25519.PublicKey
	user        ed25519.PublicKey
	userAccount ed25519.PublicKey
	config      ed25519.PublicKey
	nftMint     ed25519.PublicKey
}

func setupStaking(t *testing.T, pointsPerStake, maxStake uint8, freezePeriod uint32) (*Processor, *stakingFixture) {
	ledger := testutil.NewLedger(t)
	admin := testutil.FundedWallet(t, ledger, 1_000_000_000)
	user := testutil.FundedWallet(t, ledger, 1_000_000_000)

	nftMint := testutil.CreateMint(t, ledger, admin, 0)
	testutil.MintToWallet(t, ledger, nftMint, admin, user, 1)

	processor := NewProcessor()
	config, err := processor.InitializeConfig(ledger, admin, pointsPerStake, maxStake, freezePeriod)
	require.NoError(t, err)

	userAccount, err := processor.InitializeUser(ledger, user)
	require.NoError(t, err)

	return processor, &stakingFixture{
		ledger:      ledger,
		admin:       admin,
		user:        user,
		userAccount: userAccount,
		config:      config,
		nftMint:     nftMint,
	}
}

func getUserAccount(t *testing.T, f *stakingFixture) *UserAccount {
	account, ok := f.ledger.Account(f.userAccount)
	require.True(t, ok)

	var record UserAccount
	require.NoError(t, record.Unmarshal(account.Data))
	return &record
}

func TestInitialize(t *testing.T) {
	_, f := setupStaking(t, 10, 3, 7)

	account, ok := f.ledger.Account(f.config)
	require.True(t, ok)
	assert.Equal(t, ProgramID, account.Owner)

	var config Config
	require.NoError(t, config.Unmarshal(account.Data))
	assert.EqualValues(t, 10, config.PointsPerStake)
	assert.EqualValues(t, 3, config.MaxStake)
	assert.EqualValues(t, 7, config.FreezePeriod)

	// Persisted bumps re-derive the config and rewards mint addresses.
	expected, bump, err := GetConfigAddress()
	require.NoError(t, err)
	assert.Equal(t, expected, f.config)
	assert.Equal(t, bump, config.Bump)

	rewardsMint, rewardsBump, err := GetRewardsMintAddress(f.config)
	require.NoError(t, err)
	assert.Equal(t, rewardsBump, config.RewardsBump)

	err = f.ledger.Execute(func(ex *runtime.Execution) error {
		mint, err := token.GetMint(ex, rewardsMint)
		if err != nil {
			return err
		}
		assert.Equal(t, ed25519.PublicKey(f.config), mint.MintAuthority)
		return nil
	})
	require.NoError(t, err)

	user := getUserAccount(t, f)
	assert.EqualValues(t, 0, user.AmountStaked)
	assert.EqualValues(t, 0, user.Points)
}

func TestStakeUnstakeCycle(t *testing.T) {
	processor, f := setupStaking(t, 10, 3, 7)

	_, err := processor.Stake(f.ledger, f.user, f.nftMint)
	require.NoError(t, err)

	user := getUserAccount(t, f)
	assert.EqualValues(t, 1, user.AmountStaked)

	// The NFT stays in the user's account but is frozen and delegated.
	userAta, err := token.GetAssociatedAccount(f.user, f.nftMint)
	require.NoError(t, err)
	stakeAddress, _, err := GetStakeAccountAddress(f.config, f.nftMint)
	require.NoError(t, err)
	err = f.ledger.Execute(func(ex *runtime.Execution) error {
		state, err := token.GetAccount(ex, userAta)
		if err != nil {
			return err
		}
		assert.Equal(t, token.AccountStateFrozen, state.State)
		assert.Equal(t, ed25519.PublicKey(stakeAddress), state.Delegate)
		return nil
	})
	require.NoError(t, err)

	// A frozen account cannot transfer.
	err = f.ledger.Execute(func(ex *runtime.Execution) error {
		other, err := token.CreateAssociatedAccountIdempotent(ex, f.admin, f.admin, f.nftMint)
		if err != nil {
			return err
		}
		return token.TransferChecked(ex, userAta, other, f.nftMint, 1, 0, runtime.SignerAuthority(f.user))
	})
	assert.Equal(t, token.ErrAccountFrozen, err)

	f.ledger.SetClock(testutil.DefaultClock + 7*86_400 + 1)
	require.NoError(t, processor.Unstake(f.ledger, f.user, f.nftMint))

	user = getUserAccount(t, f)
	assert.EqualValues(t, 0, user.AmountStaked)
	assert.EqualValues(t, 70, user.Points)

	// Stake record is closed, delegate revoked, account thawed.
	_, ok := f.ledger.Account(stakeAddress)
	assert.False(t, ok)
	err = f.ledger.Execute(func(ex *runtime.Execution) error {
		state, err := token.GetAccount(ex, userAta)
		if err != nil {
			return err
		}
		assert.Equal(t, token.AccountStateInitialized, state.State)
		assert.Empty(t, state.Delegate)
		return nil
	})
	require.NoError(t, err)
}

func TestUnstake_FreezePeriodBoundary(t *testing.T) {
	processor, f := setupStaking(t, 10, 3, 7)

	_, err := processor.Stake(f.ledger, f.user, f.nftMint)
	require.NoError(t, err)

	// One day short of the freeze period.
	f.ledger.SetClock(testutil.DefaultClock + 6*86_400 + 86_399)
	assert.Equal(t, ErrFreezePeriodNotPassed, processor.Unstake(f.ledger, f.user, f.nftMint))

	// Exactly at the boundary the unstake succeeds and awards
	// freeze_period * points_per_stake.
	f.ledger.SetClock(testutil.DefaultClock + 7*86_400)
	require.NoError(t, processor.Unstake(f.ledger, f.user, f.nftMint))
	assert.EqualValues(t, 70, getUserAccount(t, f).Points)
}

func TestUnstake_ClockBeforeStakedAt(t *testing.T) {
	processor, f := setupStaking(t, 10, 3, 7)

	_, err := processor.Stake(f.ledger, f.user, f.nftMint)
	require.NoError(t, err)

	// A clock behind the stake time counts as zero elapsed days rather
	// than wrapping into a huge unsigned value.
	f.ledger.SetClock(testutil.DefaultClock - 86_400)
	assert.Equal(t, ErrFreezePeriodNotPassed, processor.Unstake(f.ledger, f.user, f.nftMint))

	user := getUserAccount(t, f)
	assert.EqualValues(t, 1, user.AmountStaked)
	assert.EqualValues(t, 0, user.Points)
}

func TestStake_MaxStake(t *testing.T) {
	processor, f := setupStaking(t, 10, 1, 7)

	_, err := processor.Stake(f.ledger, f.user, f.nftMint)
	require.NoError(t, err)

	second := testutil.CreateMint(t, f.ledger, f.admin, 0)
	testutil.MintToWallet(t, f.ledger, second, f.admin, f.user, 1)

	_, err = processor.Stake(f.ledger, f.user, second)
	assert.Equal(t, ErrMaxStakeReached, err)
}

func TestUnstake_NotOwner(t *testing.T) {
	processor, f := setupStaking(t, 10, 3, 7)

	_, err := processor.Stake(f.ledger, f.user, f.nftMint)
	require.NoError(t, err)

	other := testutil.FundedWallet(t, f.ledger, 1_000_000_000)
	_, err = processor.InitializeUser(f.ledger, other)
	require.NoError(t, err)

	f.ledger.SetClock(testutil.DefaultClock + 8*86_400)
	assert.Equal(t, ErrNotStakeOwner, processor.Unstake(f.ledger, other, f.nftMint))
}
