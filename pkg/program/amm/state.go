package amm

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/fili8-labs/onchain/pkg/solana/binary"
)

const ConfigSize = (8 + // discriminator
	8 + // seed
	1 + 32 + // authority option
	32 + // mint_x
	32 + // mint_y
	2 + // fee
	1 + // locked
	1 + // config_bump
	1) // lp_mint_bump

var ConfigDiscriminator = []byte{byte(AccountTypeConfig), 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}

// Config is the pool record. The LP mint and both vaults are addressed off
// the config address, so the record carries only the bumps needed to re-sign.
type Config struct {
	Seed       uint64
	Authority  ed25519.PublicKey // optional; empty means no authority
	MintX      ed25519.PublicKey
	MintY      ed25519.PublicKey
	Fee        uint16 // basis points
	Locked     bool
	ConfigBump uint8
	LpMintBump uint8
}

func (obj *Config) Marshal() []byte {
	data := make([]byte, ConfigSize)

	var offset int
	binary.PutDiscriminator(data, ConfigDiscriminator, &offset)
	binary.PutUint64(data, obj.Seed, &offset)
	binary.PutOptionalKey(data, obj.Authority, &offset)
	binary.PutKey(data, obj.MintX, &offset)
	binary.PutKey(data, obj.MintY, &offset)
	binary.PutUint16(data, obj.Fee, &offset)
	binary.PutBool(data, obj.Locked, &offset)
	binary.PutUint8(data, obj.ConfigBump, &offset)
	binary.PutUint8(data, obj.LpMintBump, &offset)

	return data[:offset]
}

func (obj *Config) Unmarshal(data []byte) error {
	var offset int

	var discriminator []byte
	if !binary.GetDiscriminator(data, &discriminator, &offset) || !bytes.Equal(discriminator, ConfigDiscriminator) {
		return ErrInvalidAccountData
	}

	ok := binary.GetUint64(data, &obj.Seed, &offset) &&
		binary.GetOptionalKey(data, &obj.Authority, &offset) &&
		binary.GetKey(data, &obj.MintX, &offset) &&
		binary.GetKey(data, &obj.MintY, &offset) &&
		binary.GetUint16(data, &obj.Fee, &offset) &&
		binary.GetBool(data, &obj.Locked, &offset) &&
		binary.GetUint8(data, &obj.ConfigBump, &offset) &&
		binary.GetUint8(data, &obj.LpMintBump, &offset)
	if !ok {
		return ErrInvalidAccountData
	}

	return nil
}

func (obj *Config) String() string {
	return fmt.Sprintf(
		"Config{seed=%d,mint_x=%s,mint_y=%s,fee=%d,locked=%t,config_bump=%d,lp_mint_bump=%d}",
		obj.Seed,
		base58.Encode(obj.MintX),
		base58.Encode(obj.MintY),
		obj.Fee,
		obj.Locked,
		obj.ConfigBump,
		obj.LpMintBump,
	)
}
