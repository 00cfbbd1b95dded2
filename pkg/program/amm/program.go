// Package amm implements a constant-product automated market maker: a
// config record per pool, token vaults held under the config's derived
// address, an LP mint, and deposit/withdraw/swap instructions priced by the
// x*y=k curve with a basis-point input fee.
package amm

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"

	"github.com/fili8-labs/onchain/pkg/solana"
)

// ProgramID is the address of the amm program.
//
// Current key: 79pHagCGJvjR9snFr5YAYitGpMun6abyzD8jmoCCBrTQ
var ProgramID = ed25519.PublicKey(solana.MustBase58Decode("79pHagCGJvjR9snFr5YAYitGpMun6abyzD8jmoCCBrTQ"))

type AccountType uint8

const (
	AccountTypeUnknown AccountType = iota
	AccountTypeConfig
)

// LP mints are created with 6 decimals.
const LpMintDecimals = 6

// MaxFeeBps is the basis-point denominator and the highest permitted fee.
const MaxFeeBps = 10_000

func logKey(key ed25519.PublicKey) string {
	return base58.Encode(key)
}
