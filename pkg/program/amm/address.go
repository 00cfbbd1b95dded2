package amm

import (
	"crypto/ed25519"
	"encoding/binary"

	"github.com/fili8-labs/onchain/pkg/solana"
)

var (
	configPrefix = []byte("config")
	mintPrefix   = []byte("mint")
)

func seedBytes(seed uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, seed)
	return b
}

// GetConfigAddress derives the pool config address for a seed.
func GetConfigAddress(seed uint64) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		ProgramID,
		configPrefix,
		seedBytes(seed),
	)
}

// GetLpMintAddress derives the LP mint address for a pool config.
func GetLpMintAddress(config ed25519.PublicKey) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		ProgramID,
		mintPrefix,
		config,
	)
}
