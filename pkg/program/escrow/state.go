package escrow

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/fili8-labs/onchain/pkg/solana/binary"
)

const StateSize = (8 + // discriminator
	8 + // seed
	32 + // maker
	32 + // mint_a
	32 + // mint_b
	8 + // receive_amount
	1) // bump

var StateDiscriminator = []byte{byte(AccountTypeState), 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}

// State is the escrow record. The vault holding the deposited A is the
// record's associated token account for mint A.
type State struct {
	Seed          uint64
	Maker         ed25519.PublicKey
	MintA         ed25519.PublicKey
	MintB         ed25519.PublicKey
	ReceiveAmount uint64
	Bump          uint8
}

func (obj *State) Marshal() []byte {
	data := make([]byte, StateSize)

	var offset int
	binary.PutDiscriminator(data, StateDiscriminator, &offset)
	binary.PutUint64(data, obj.Seed, &offset)
	binary.PutKey(data, obj.Maker, &offset)
	binary.PutKey(data, obj.MintA, &offset)
	binary.PutKey(data, obj.MintB, &offset)
	binary.PutUint64(data, obj.ReceiveAmount, &offset)
	binary.PutUint8(data, obj.Bump, &offset)

	return data
}

func (obj *State) Unmarshal(data []byte) error {
	if len(data) < StateSize {
		return ErrInvalidAccountData
	}

	var offset int

	var discriminator []byte
	binary.GetDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, StateDiscriminator) {
		return ErrInvalidAccountData
	}

	binary.GetUint64(data, &obj.Seed, &offset)
	binary.GetKey(data, &obj.Maker, &offset)
	binary.GetKey(data, &obj.MintA, &offset)
	binary.GetKey(data, &obj.MintB, &offset)
	binary.GetUint64(data, &obj.ReceiveAmount, &offset)
	binary.GetUint8(data, &obj.Bump, &offset)

	return nil
}

func (obj *State) String() string {
	return fmt.Sprintf(
		"State{seed=%d,maker=%s,mint_a=%s,mint_b=%s,receive=%d,bump=%d}",
		obj.Seed,
		base58.Encode(obj.Maker),
		base58.Encode(obj.MintA),
		base58.Encode(obj.MintB),
		obj.ReceiveAmount,
		obj.Bump,
	)
}
