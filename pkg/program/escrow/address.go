package escrow

import (
	"crypto/ed25519"
	"encoding/binary"

	"github.com/fili8-labs/onchain/pkg/solana"
)

var escrowPrefix = []byte("escrow")

func seedBytes(seed uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, seed)
	return b
}

// GetStateAddress derives the escrow record address for a maker and seed.
func GetStateAddress(maker ed25519.PublicKey, seed uint64) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		ProgramID,
		escrowPrefix,
		maker,
		seedBytes(seed),
	)
}
