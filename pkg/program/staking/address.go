package staking

import (
	"crypto/ed25519"

	"github.com/fili8-labs/onchain/pkg/solana"
)

var (
	configPrefix  = []byte("config")
	rewardsPrefix = []byte("rewards")
	userPrefix    = []byte("user")
	stakePrefix   = []byte("stake")
)

// GetConfigAddress derives the singleton config record address.
func GetConfigAddress() (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		ProgramID,
		configPrefix,
	)
}

// GetRewardsMintAddress derives the rewards mint for a config.
func GetRewardsMintAddress(config ed25519.PublicKey) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		ProgramID,
		rewardsPrefix,
		config,
	)
}

// GetUserAccountAddress derives the per-user counter record.
func GetUserAccountAddress(user ed25519.PublicKey) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		ProgramID,
		userPrefix,
		user,
	)
}

// GetStakeAccountAddress derives the per-NFT stake record.
func GetStakeAccountAddress(config, nftMint ed25519.PublicKey) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		ProgramID,
		stakePrefix,
		config,
		nftMint,
	)
}
