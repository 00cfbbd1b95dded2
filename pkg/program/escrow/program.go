// Package escrow implements a token-for-token escrow: a maker deposits
// asset A into a vault held by the escrow record and names the amount of
// asset B they expect; a taker settles both legs atomically, or the maker
// refunds.
package escrow

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"

	"github.com/fili8-labs/onchain/pkg/solana"
)

// ProgramID is the address of the escrow program.
//
// Current key: DY3vDNvABPVGZZrd2rtbF8bvoJ5woHRgc7SaqsTMqxbR
var ProgramID = ed25519.PublicKey(solana.MustBase58Decode("DY3vDNvABPVGZZrd2rtbF8bvoJ5woHRgc7SaqsTMqxbR"))

type AccountType uint8

const (
	AccountTypeUnknown AccountType = iota
	AccountTypeState
)

func logKey(key ed25519.PublicKey) string {
	return base58.Encode(key)
}
