package runtime

import (
	"bytes"
	"crypto/ed25519"

	"github.com/fili8-labs/onchain/pkg/solana"
)

// Authority is the uniform proof of who may direct a mutation: either a
// transaction signer identified by public key, or a program-derived address
// proved by supplying the seed tuple and bump that re-derive it. Transfer
// and token primitives accept it without caring which variant they got.
type Authority struct {
	signer  ed25519.PublicKey
	program ed25519.PublicKey
	seeds   [][]byte
	bump    uint8
	derived bool
}

// SignerAuthority represents a wallet signature over the instruction.
func SignerAuthority(signer ed25519.PublicKey) Authority {
	return Authority{signer: signer}
}

// DerivedAuthority represents a program signing for one of its derived
// addresses by supplying the seed tuple and persisted bump.
func DerivedAuthority(program ed25519.PublicKey, bump uint8, seeds ...[]byte) Authority {
	return Authority{
		program: program,
		seeds:   seeds,
		bump:    bump,
		derived: true,
	}
}

// IsDerived reports whether the authority is seed-based.
func (a Authority) IsDerived() bool {
	return a.derived
}

// Address resolves the authority to the address it can act for. Derived
// authorities re-run the derivation; ErrBadSeeds is returned if the seed
// tuple plus bump does not produce a valid off-curve address.
func (a Authority) Address() (ed25519.PublicKey, error) {
	if !a.derived {
		if len(a.signer) != ed25519.PublicKeySize {
			return nil, ErrMissingSignature
		}
		return a.signer, nil
	}

	seeds := make([][]byte, 0, len(a.seeds)+1)
	seeds = append(seeds, a.seeds...)
	seeds = append(seeds, []byte{a.bump})

	address, err := solana.CreateProgramAddress(a.program, seeds...)
	if err != nil {
		return nil, ErrBadSeeds
	}
	return address, nil
}

// Verify checks that the authority resolves to the expected address.
func (a Authority) Verify(expected ed25519.PublicKey) error {
	address, err := a.Address()
	if err != nil {
		return err
	}
	if !bytes.Equal(address, expected) {
		if a.derived {
			return ErrBadSeeds
		}
		return ErrMissingSignature
	}
	return nil
}
