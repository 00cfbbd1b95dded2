package marketplace

import (
	"crypto/ed25519"

	"github.com/fili8-labs/onchain/pkg/solana"
)

var (
	marketplacePrefix = []byte("marketplace")
	treasuryPrefix    = []byte("treasury")
	rewardsPrefix     = []byte("rewards")
	listingPrefix     = []byte("listing")
)

// GetMarketplaceAddress derives the marketplace record address for a name.
func GetMarketplaceAddress(name string) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		ProgramID,
		marketplacePrefix,
		[]byte(name),
	)
}

// GetTreasuryAddress derives the native treasury for a marketplace.
func GetTreasuryAddress(marketplace ed25519.PublicKey) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		ProgramID,
		treasuryPrefix,
		marketplace,
	)
}

// GetRewardsMintAddress derives the rewards mint for a marketplace.
func GetRewardsMintAddress(marketplace ed25519.PublicKey) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		ProgramID,
		rewardsPrefix,
		marketplace,
	)
}

// GetListingAddress derives the listing record for an NFT on a marketplace.
func GetListingAddress(marketplace, nftMint ed25519.PublicKey) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		ProgramID,
		listingPrefix,
		marketplace,
		nftMint,
	)
}
