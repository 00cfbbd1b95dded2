// Package marketplace implements an NFT marketplace: makers list an NFT at
// a native-asset price, takers purchase it with a protocol fee routed to a
// treasury and a rewards token minted per purchase.
package marketplace

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"

	"github.com/fili8-labs/onchain/pkg/solana"
)

// ProgramID is the address of the marketplace program.
//
// Current key: 3E2FszhTgmzqxJzYHJpKJBvHxhftzvE3fYNpn1bTiw4a
var ProgramID = ed25519.PublicKey(solana.MustBase58Decode("3E2FszhTgmzqxJzYHJpKJBvHxhftzvE3fYNpn1bTiw4a"))

type AccountType uint8

const (
	AccountTypeUnknown AccountType = iota
	AccountTypeMarketplace
	AccountTypeListing
)

const (
	// MaxNameLength is the byte allocation the marketplace record reserves
	// for its name.
	MaxNameLength = 32

	RewardsMintDecimals = 6

	MaxFeeBps = 10_000
)

func logKey(key ed25519.PublicKey) string {
	return base58.Encode(key)
}
