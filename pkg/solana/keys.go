package solana

import (
	"crypto/ed25519"
	"crypto/rand"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

// NewRandomKey generates a new random public key. Useful for wallets and
// mints in tests and local simulation; no private key is retained because the
// runtime proves authority by identity, not by signature verification.
func NewRandomKey() (ed25519.PublicKey, error) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate key")
	}
	return pub, nil
}

// MustBase58Decode decodes a base58 address, panicking on malformed input.
// Reserved for compile-time constants like program ids.
func MustBase58Decode(value string) []byte {
	decoded, err := base58.Decode(value)
	if err != nil {
		panic(err)
	}
	return decoded
}

// Base58Encode renders a public key in its canonical display form.
func Base58Encode(key ed25519.PublicKey) string {
	return base58.Encode(key)
}
