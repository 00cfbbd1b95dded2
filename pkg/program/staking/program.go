// Package staking implements NFT staking: a staked NFT stays in the user's
// token account but is delegated to a per-stake record and frozen through
// the metadata program, so it cannot move until the freeze period elapses
// and the user unstakes for points.
package staking

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"

	"github.com/fili8-labs/onchain/pkg/solana"
)

// ProgramID is the address of the staking program.
//
// Current key: 9AShomzKyEcXCKANqtPgygjRW5ghavpgqvxk8Gocgy81
var ProgramID = ed25519.PublicKey(solana.MustBase58Decode("9AShomzKyEcXCKANqtPgygjRW5ghavpgqvxk8Gocgy81"))

type AccountType uint8

const (
	AccountTypeUnknown AccountType = iota
	AccountTypeConfig
	AccountTypeUser
	AccountTypeStake
)

const (
	RewardsMintDecimals = 6

	secondsPerDay = 86_400
)

func logKey(key ed25519.PublicKey) string {
	return base58.Encode(key)
}
