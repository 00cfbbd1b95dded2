package vault

import (
	"bytes"
	"crypto/ed25519"

	"github.com/fili8-labs/onchain/pkg/solana"
	"github.com/fili8-labs/onchain/pkg/solana/binary"
)

const StateSize = (8 + // discriminator
	1 + // vault_bump
	1) // state_bump

var StateDiscriminator = []byte{byte(AccountTypeState), 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}

var statePrefix = []byte("state")

// State holds the two bumps that pin an owner's state record and vault.
// The vault is derived from the state address alone.
type State struct {
	VaultBump uint8
	StateBump uint8
}

func (obj *State) Marshal() []byte {
	data := make([]byte, StateSize)

	var offset int
	binary.PutDiscriminator(data, StateDiscriminator, &offset)
	binary.PutUint8(data, obj.VaultBump, &offset)
	binary.PutUint8(data, obj.StateBump, &offset)

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

	binary.GetUint8(data, &obj.VaultBump, &offset)
	binary.GetUint8(data, &obj.StateBump, &offset)

	return nil
}

// GetStateAddress derives the state record address for an owner.
func GetStateAddress(owner ed25519.PublicKey) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		ProgramID,
		statePrefix,
		owner,
	)
}

// GetVaultAddress derives the native vault from the state address.
func GetVaultAddress(state ed25519.PublicKey) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		ProgramID,
		state,
	)
}
