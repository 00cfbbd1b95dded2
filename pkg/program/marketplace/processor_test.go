package marketplace

import (
	"crypto/ed25519"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fili8-labs/onchain/pkg/runtime"
	"github.com/fili8-labs/onchain/pkg/testutil"
	"github.com/fili8-labs/onchain/pkg/token"
)

type marketplaceFixture struct {
	ledger      *runtime.Ledger
	admin       ed25519.PublicKey
	maker       ed25519.PublicKey
	taker       ed25519.PublicKey
	nftMint     ed25519.PublicKey
	venue       ed25519.PublicKey
	rewardsMint ed25519.PublicKey
}

func setupMarketplace(t *testing.T, feeBps uint16) (*Processor, *marketplaceFixture) {
	ledger := testutil.NewLedger(t)
	admin := testutil.FundedWallet(t, ledger, 1_000_000_000)
	maker := testutil.FundedWallet(t, ledger, 1_000_000_000)
	taker := testutil.FundedWallet(t, ledger, 1_000_000_000)

	// One-of-one NFT held by the maker.
	nftMint := testutil.CreateMint(t, ledger, admin, 0)
	testutil.MintToWallet(t, ledger, nftMint, admin, maker, 1)

	processor := NewProcessor()
	venue, err := processor.Initialize(ledger, admin, "degen-mart", feeBps)
	require.NoError(t, err)

	rewardsMint, _, err := GetRewardsMintAddress(venue)
	require.NoError(t, err)

	return processor, &marketplaceFixture{
		ledger:      ledger,
		admin:       admin,
		maker:       maker,
		taker:       taker,
		nftMint:     nftMint,
		venue:       venue,
		rewardsMint: rewardsMint,
	}
}

func TestInitialize(t *testing.T) {
	_, f := setupMarketplace(t, 500)

	account, ok := f.ledger.Account(f.venue)
	require.True(t, ok)
	assert.Equal(t, ProgramID, account.Owner)

	var record Marketplace
	require.NoError(t, record.Unmarshal(account.Data))
	assert.Equal(t, "degen-mart", record.Name)
	assert.EqualValues(t, 500, record.Fee)
	assert.Equal(t, ed25519.PublicKey(f.admin), record.Admin)

	// The persisted bumps re-derive every venue address.
	expected, bump, err := GetMarketplaceAddress(record.Name)
	require.NoError(t, err)
	assert.Equal(t, expected, f.venue)
	assert.Equal(t, bump, record.Bump)

	_, treasuryBump, err := GetTreasuryAddress(f.venue)
	require.NoError(t, err)
	assert.Equal(t, treasuryBump, record.TreasuryBump)

	_, rewardsBump, err := GetRewardsMintAddress(f.venue)
	require.NoError(t, err)
	assert.Equal(t, rewardsBump, record.RewardsBump)

	err = f.ledger.Execute(func(ex *runtime.Execution) error {
		mint, err := token.GetMint(ex, f.rewardsMint)
		if err != nil {
			return err
		}
		assert.Equal(t, ed25519.PublicKey(f.venue), mint.MintAuthority)
		assert.EqualValues(t, RewardsMintDecimals, mint.Decimals)
		return nil
	})
	require.NoError(t, err)
}

func TestInitialize_Validation(t *testing.T) {
	ledger := testutil.NewLedger(t)
	admin := testutil.FundedWallet(t, ledger, 1_000_000_000)
	processor := NewProcessor()

	_, err := processor.Initialize(ledger, admin, "", 500)
	assert.Equal(t, ErrInvalidName, err)

	_, err = processor.Initialize(ledger, admin, strings.Repeat("x", MaxNameLength+1), 500)
	assert.Equal(t, ErrInvalidName, err)

	_, err = processor.Initialize(ledger, admin, "degen-mart", 10_001)
	assert.Equal(t, ErrInvalidFee, err)
}

func TestListDelist(t *testing.T) {
	processor, f := setupMarketplace(t, 500)

	_, err := processor.List(f.ledger, f.maker, f.venue, f.nftMint, 0)
	assert.Equal(t, ErrInvalidPrice, err)

	listing, err := processor.List(f.ledger, f.maker, f.venue, f.nftMint, 1_000_000)
	require.NoError(t, err)

	assert.EqualValues(t, 0, testutil.TokenBalance(t, f.ledger, f.maker, f.nftMint))
	assert.EqualValues(t, 1, testutil.TokenBalance(t, f.ledger, listing, f.nftMint))

	other := testutil.FundedWallet(t, f.ledger, 1_000_000)
	assert.Equal(t, ErrNotMaker, processor.Delist(f.ledger, other, f.venue, f.nftMint))

	require.NoError(t, processor.Delist(f.ledger, f.maker, f.venue, f.nftMint))
	assert.EqualValues(t, 1, testutil.TokenBalance(t, f.ledger, f.maker, f.nftMint))

	_, ok := f.ledger.Account(listing)
	assert.False(t, ok)

	// Delisting again fails: the record is gone.
	assert.Equal(t, runtime.ErrAccountNotFound, processor.Delist(f.ledger, f.maker, f.venue, f.nftMint))
}

func TestPurchase(t *testing.T) {
	processor, f := setupMarketplace(t, 500)

	makerBefore := f.ledger.Balance(f.maker)
	listing, err := processor.List(f.ledger, f.maker, f.venue, f.nftMint, 1_000_000)
	require.NoError(t, err)

	require.NoError(t, processor.Purchase(f.ledger, f.taker, f.venue, f.nftMint))

	// Fee 5% of 1,000,000 goes to the treasury, the rest to the maker. The
	// maker also recovers the rent it fronted for the listing and vault.
	treasury, err := GetTreasuryBalance(f.ledger, f.venue)
	require.NoError(t, err)
	assert.EqualValues(t, 50_000, treasury)
	assert.Equal(t, makerBefore+950_000, f.ledger.Balance(f.maker))

	assert.EqualValues(t, 1, testutil.TokenBalance(t, f.ledger, f.taker, f.nftMint))
	assert.EqualValues(t, 1, testutil.TokenBalance(t, f.ledger, f.taker, f.rewardsMint))

	// Listing and vault are closed.
	_, ok := f.ledger.Account(listing)
	assert.False(t, ok)
	vault, err := token.GetAssociatedAccount(listing, f.nftMint)
	require.NoError(t, err)
	_, ok = f.ledger.Account(vault)
	assert.False(t, ok)
}

func TestPurchase_Atomicity(t *testing.T) {
	processor, f := setupMarketplace(t, 500)

	listing, err := processor.List(f.ledger, f.maker, f.venue, f.nftMint, 1_000_000)
	require.NoError(t, err)

	// A broke taker cannot settle; the listing survives untouched.
	broke := testutil.FundedWallet(t, f.ledger, 100)
	err = processor.Purchase(f.ledger, broke, f.venue, f.nftMint)
	assert.Equal(t, runtime.ErrInsufficientBalance, err)

	assert.EqualValues(t, 1, testutil.TokenBalance(t, f.ledger, listing, f.nftMint))
	treasury, err := GetTreasuryBalance(f.ledger, f.venue)
	require.NoError(t, err)
	assert.EqualValues(t, 0, treasury)

	_, ok := f.ledger.Account(listing)
	assert.True(t, ok)
}
