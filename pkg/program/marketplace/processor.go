package marketplace

import (
	"bytes"
	"crypto/ed25519"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/fili8-labs/onchain/pkg/runtime"
	"github.com/fili8-labs/onchain/pkg/safemath"
	"github.com/fili8-labs/onchain/pkg/token"
)

// Processor executes marketplace instructions against a ledger.
type Processor struct {
	log *logrus.Entry
}

func NewProcessor() *Processor {
	logger := logrus.New()
	logger.Out = io.Discard
	return &Processor{log: logrus.NewEntry(logger)}
}

func (p *Processor) WithLogger(log *logrus.Entry) *Processor {
	p.log = log
	return p
}

// Initialize creates the venue record and its rewards mint. The treasury is
// a derived native account that fees accumulate into on purchase.
func (p *Processor) Initialize(ledger *runtime.Ledger, admin ed25519.PublicKey, name string, feeBps uint16) (ed25519.PublicKey, error) {
	if len(name) == 0 || len(name) > MaxNameLength {
		return nil, ErrInvalidName
	}
	if feeBps > MaxFeeBps {
		return nil, ErrInvalidFee
	}

	marketplaceAddress, bump, err := GetMarketplaceAddress(name)
	if err != nil {
		return nil, err
	}
	_, treasuryBump, err := GetTreasuryAddress(marketplaceAddress)
	if err != nil {
		return nil, err
	}
	rewardsMint, rewardsBump, err := GetRewardsMintAddress(marketplaceAddress)
	if err != nil {
		return nil, err
	}

	err = ledger.Execute(func(ex *runtime.Execution) error {
		account, err := ex.Create(marketplaceAddress, ProgramID, MarketplaceSize, admin)
		if err != nil {
			return err
		}

		record := &Marketplace{
			Admin:        admin,
			Fee:          feeBps,
			Bump:         bump,
			TreasuryBump: treasuryBump,
			RewardsBump:  rewardsBump,
			Name:         name,
		}
		account.StoreData(record.Marshal())

		return token.InitializeMint(ex, rewardsMint, marketplaceAddress, nil, RewardsMintDecimals, admin)
	})
	if err != nil {
		return nil, err
	}

	p.log.WithFields(logrus.Fields{
		"instruction": "initialize",
		"marketplace": logKey(marketplaceAddress),
		"fee_bps":     feeBps,
	}).Debug("marketplace initialized")

	return marketplaceAddress, nil
}

// List escrows one unit of the NFT in a listing-owned vault at a fixed
// native price.
func (p *Processor) List(ledger *runtime.Ledger, maker, marketplaceAddress, nftMint ed25519.PublicKey, price uint64) (ed25519.PublicKey, error) {
	if price == 0 {
		return nil, ErrInvalidPrice
	}

	listingAddress, listingBump, err := GetListingAddress(marketplaceAddress, nftMint)
	if err != nil {
		return nil, err
	}

	err = ledger.Execute(func(ex *runtime.Execution) error {
		if _, _, err := loadMarketplace(ex, marketplaceAddress); err != nil {
			return err
		}

		account, err := ex.Create(listingAddress, ProgramID, ListingSize, maker)
		if err != nil {
			return err
		}

		listing := &Listing{
			Maker: maker,
			Price: price,
			Bump:  listingBump,
		}
		account.StoreData(listing.Marshal())

		vault, err := token.CreateAssociatedAccount(ex, maker, listingAddress, nftMint)
		if err != nil {
			return err
		}

		mintState, err := token.GetMint(ex, nftMint)
		if err != nil {
			return err
		}
		makerAta, err := token.GetAssociatedAccount(maker, nftMint)
		if err != nil {
			return err
		}
		return token.TransferChecked(ex, makerAta, vault, nftMint, 1, mintState.Decimals, runtime.SignerAuthority(maker))
	})
	if err != nil {
		return nil, err
	}

	p.log.WithFields(logrus.Fields{
		"instruction": "list",
		"listing":     logKey(listingAddress),
		"price":       price,
	}).Debug("nft listed")

	return listingAddress, nil
}

// Delist returns the NFT to the maker and closes the vault and listing.
// Only the maker may delist.
func (p *Processor) Delist(ledger *runtime.Ledger, signer, marketplaceAddress, nftMint ed25519.PublicKey) error {
	err := ledger.Execute(func(ex *runtime.Execution) error {
		listingAddress, listing, err := loadListing(ex, marketplaceAddress, nftMint)
		if err != nil {
			return err
		}
		if !bytes.Equal(signer, listing.Maker) {
			return ErrNotMaker
		}

		mintState, err := token.GetMint(ex, nftMint)
		if err != nil {
			return err
		}
		vault, err := token.GetAssociatedAccount(listingAddress, nftMint)
		if err != nil {
			return err
		}
		makerAta, err := token.GetAssociatedAccount(listing.Maker, nftMint)
		if err != nil {
			return err
		}

		listingAuthority := listing.signingAuthority(marketplaceAddress, nftMint)
		if err := token.TransferChecked(ex, vault, makerAta, nftMint, 1, mintState.Decimals, listingAuthority); err != nil {
			return err
		}
		if err := token.CloseAccount(ex, vault, listing.Maker, listingAuthority); err != nil {
			return err
		}
		return ex.Close(listingAddress, listing.Maker)
	})
	if err != nil {
		return err
	}

	p.log.WithFields(logrus.Fields{
		"instruction": "delist",
		"marketplace": logKey(marketplaceAddress),
		"nft_mint":    logKey(nftMint),
	}).Debug("nft delisted")
	return nil
}

// Purchase settles a listing: the taker pays the price with the venue fee
// carved out to the treasury, receives the NFT and one rewards token, and
// the vault and listing close to the maker.
func (p *Processor) Purchase(ledger *runtime.Ledger, taker, marketplaceAddress, nftMint ed25519.PublicKey) error {
	err := ledger.Execute(func(ex *runtime.Execution) error {
		record, _, err := loadMarketplace(ex, marketplaceAddress)
		if err != nil {
			return err
		}
		listingAddress, listing, err := loadListing(ex, marketplaceAddress, nftMint)
		if err != nil {
			return err
		}

		fee, err := safemath.MulDivFloor(listing.Price, uint64(record.Fee), 10_000)
		if err != nil {
			return err
		}

		treasury, _, err := GetTreasuryAddress(marketplaceAddress)
		if err != nil {
			return err
		}

		takerAuthority := runtime.SignerAuthority(taker)
		if err := ex.Transfer(taker, treasury, fee, takerAuthority); err != nil {
			return err
		}
		if err := ex.Transfer(taker, listing.Maker, listing.Price-fee, takerAuthority); err != nil {
			return err
		}

		mintState, err := token.GetMint(ex, nftMint)
		if err != nil {
			return err
		}
		vault, err := token.GetAssociatedAccount(listingAddress, nftMint)
		if err != nil {
			return err
		}
		takerAta, err := token.CreateAssociatedAccountIdempotent(ex, taker, taker, nftMint)
		if err != nil {
			return err
		}

		listingAuthority := listing.signingAuthority(marketplaceAddress, nftMint)
		if err := token.TransferChecked(ex, vault, takerAta, nftMint, 1, mintState.Decimals, listingAuthority); err != nil {
			return err
		}

		rewardsMint, _, err := GetRewardsMintAddress(marketplaceAddress)
		if err != nil {
			return err
		}
		rewardsAta, err := token.CreateAssociatedAccountIdempotent(ex, taker, taker, rewardsMint)
		if err != nil {
			return err
		}
		if err := token.MintTo(ex, rewardsMint, rewardsAta, 1, record.signingAuthority()); err != nil {
			return err
		}

		if err := token.CloseAccount(ex, vault, listing.Maker, listingAuthority); err != nil {
			return err
		}
		return ex.Close(listingAddress, listing.Maker)
	})
	if err != nil {
		return err
	}

	p.log.WithFields(logrus.Fields{
		"instruction": "purchase",
		"marketplace": logKey(marketplaceAddress),
		"nft_mint":    logKey(nftMint),
	}).Debug("nft purchased")
	return nil
}

// GetTreasuryBalance returns the venue's accumulated native fees.
func GetTreasuryBalance(ledger *runtime.Ledger, marketplaceAddress ed25519.PublicKey) (uint64, error) {
	treasury, _, err := GetTreasuryAddress(marketplaceAddress)
	if err != nil {
		return 0, err
	}
	return ledger.Balance(treasury), nil
}

func (m *Marketplace) signingAuthority() runtime.Authority {
	return runtime.DerivedAuthority(ProgramID, m.Bump, marketplacePrefix, []byte(m.Name))
}

func (l *Listing) signingAuthority(marketplace, nftMint ed25519.PublicKey) runtime.Authority {
	return runtime.DerivedAuthority(ProgramID, l.Bump, listingPrefix, marketplace, nftMint)
}

func loadMarketplace(ex *runtime.Execution, address ed25519.PublicKey) (*Marketplace, *runtime.Account, error) {
	account, err := ex.Load(address, ProgramID)
	if err != nil {
		return nil, nil, err
	}

	var record Marketplace
	if err := record.Unmarshal(account.Data); err != nil {
		return nil, nil, err
	}
	return &record, account, nil
}

func loadListing(ex *runtime.Execution, marketplace, nftMint ed25519.PublicKey) (ed25519.PublicKey, *Listing, error) {
	address, _, err := GetListingAddress(marketplace, nftMint)
	if err != nil {
		return nil, nil, err
	}

	account, err := ex.Load(address, ProgramID)
	if err != nil {
		return nil, nil, err
	}

	var listing Listing
	if err := listing.Unmarshal(account.Data); err != nil {
		return nil, nil, err
	}
	return address, &listing, nil
}
