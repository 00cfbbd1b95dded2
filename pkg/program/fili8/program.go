// Package fili8 implements an affiliate-marketing campaign system.
// Merchants fund campaigns into a per-campaign escrow, affiliates join and
// drive referrals, and each reported conversion pays the affiliate's payout
// address from escrow with a protocol fee carved out to a shared treasury.
package fili8

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"

	"github.com/fili8-labs/onchain/pkg/solana"
)

// ProgramID is the address of the fili8 program.
//
// Current key: 28f44mAq1ioVtsXnK9QSFjS7iNcq2Vu3cPgrYdqoC9cS
var ProgramID = ed25519.PublicKey(solana.MustBase58Decode("28f44mAq1ioVtsXnK9QSFjS7iNcq2Vu3cPgrYdqoC9cS"))

type AccountType uint8

const (
	AccountTypeUnknown AccountType = iota
	AccountTypeConfig
	AccountTypeMerchant
	AccountTypeAffiliate
	AccountTypeCampaign
	AccountTypeCampaignAffiliate
)

const (
	MinNameLength        = 10
	MaxNameLength        = 50
	MaxDescriptionLength = 100
	MaxProductURILength  = 100
)

func logKey(key ed25519.PublicKey) string {
	return base58.Encode(key)
}
