// Package metadata models the slice of the NFT metadata program the staking
// core depends on: deriving metadata and master edition addresses, and
// freezing or thawing a delegated token account through the master edition
// authority.
package metadata

import (
	"crypto/ed25519"

	"github.com/fili8-labs/onchain/pkg/runtime"
	"github.com/fili8-labs/onchain/pkg/solana"
	"github.com/fili8-labs/onchain/pkg/token"
)

// ProgramID is the address of the token metadata program.
//
// Current key: metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s
var ProgramID = ed25519.PublicKey(solana.MustBase58Decode("metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s"))

var (
	metadataPrefix = []byte("metadata")
	editionPrefix  = []byte("edition")
)

// GetMetadataAddress derives the metadata record address for a mint.
func GetMetadataAddress(mint ed25519.PublicKey) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		ProgramID,
		metadataPrefix,
		ProgramID,
		mint,
	)
}

// GetMasterEditionAddress derives the master edition address for a mint.
func GetMasterEditionAddress(mint ed25519.PublicKey) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		ProgramID,
		metadataPrefix,
		ProgramID,
		mint,
		editionPrefix,
	)
}

// FreezeDelegatedAccount freezes a token account through the master edition
// authority. The delegate must have been approved on the token account and
// must sign, typically with its deriving seeds.
func FreezeDelegatedAccount(ex *runtime.Execution, tokenAccount ed25519.PublicKey, delegate runtime.Authority) error {
	return token.FreezeDelegated(ex, tokenAccount, delegate)
}

// ThawDelegatedAccount thaws a token account previously frozen through the
// master edition authority.
func ThawDelegatedAccount(ex *runtime.Execution, tokenAccount ed25519.PublicKey, delegate runtime.Authority) error {
	return token.ThawDelegated(ex, tokenAccount, delegate)
}
