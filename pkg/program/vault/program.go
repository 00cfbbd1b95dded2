// Package vault implements a per-owner native-asset vault: the owner
// deposits into a derived system account and only the vault's own seeds can
// sign withdrawals back out.
package vault

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"

	"github.com/fili8-labs/onchain/pkg/solana"
)

// ProgramID is the address of the vault program.
//
// Current key: 7ypQcHE8DpA6Ezbkgi5PEmDRqLovV2JgAas4s5rDKdBK
var ProgramID = ed25519.PublicKey(solana.MustBase58Decode("7ypQcHE8DpA6Ezbkgi5PEmDRqLovV2JgAas4s5rDKdBK"))

type AccountType uint8

const (
	AccountTypeUnknown AccountType = iota
	AccountTypeState
)

func logKey(key ed25519.PublicKey) string {
	return base58.Encode(key)
}
