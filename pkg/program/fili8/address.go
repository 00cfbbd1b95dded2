package fili8

import (
	"crypto/ed25519"
	"encoding/binary"

	"github.com/fili8-labs/onchain/pkg/solana"
)

var (
	configPrefix            = []byte("config")
	treasuryPrefix          = []byte("treasury")
	merchantPrefix          = []byte("merchant")
	affiliatePrefix         = []byte("affiliate")
	campaignPrefix          = []byte("campaign")
	escrowPrefix            = []byte("escrow")
	campaignAffiliatePrefix = []byte("campaign_affiliate")
)

func seedBytes(seed uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, seed)
	return b
}

// GetConfigAddress derives the singleton config record address.
func GetConfigAddress() (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		ProgramID,
		configPrefix,
	)
}

// GetTreasuryAddress derives the shared native fee treasury.
func GetTreasuryAddress() (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		ProgramID,
		treasuryPrefix,
	)
}

// GetMerchantAddress derives the merchant record for a signer.
func GetMerchantAddress(owner ed25519.PublicKey) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		ProgramID,
		merchantPrefix,
		owner,
	)
}

// GetAffiliateAddress derives the affiliate record for a signer.
func GetAffiliateAddress(owner ed25519.PublicKey) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		ProgramID,
		affiliatePrefix,
		owner,
	)
}

// GetCampaignAddress derives the campaign record for a merchant and seed.
func GetCampaignAddress(merchant ed25519.PublicKey, seed uint64) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		ProgramID,
		campaignPrefix,
		merchant,
		seedBytes(seed),
	)
}

// GetEscrowAddress derives the native escrow funding a campaign.
func GetEscrowAddress(campaign ed25519.PublicKey) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		ProgramID,
		escrowPrefix,
		campaign,
	)
}

// GetCampaignAffiliateAddress derives the per-enrollment counter record.
func GetCampaignAffiliateAddress(campaign, affiliate ed25519.PublicKey) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		ProgramID,
		campaignAffiliatePrefix,
		campaign,
		affiliate,
	)
}
