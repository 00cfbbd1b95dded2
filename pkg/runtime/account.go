package runtime

import (
	"crypto/ed25519"
)

// SystemProgramID is the owner of native accounts.
//
// Current key: 11111111111111111111111111111111
var SystemProgramID = ed25519.PublicKey(make([]byte, ed25519.PublicKeySize))

// Account is a persisted account record: lamports plus opaque data bytes
// owned by a program. Records, mints, token accounts and native wallets are
// all Accounts; the owner decides how Data is interpreted.
type Account struct {
	// Owner is the program that owns the account's bytes. Only that
	// program may mutate Data or debit Lamports.
	Owner ed25519.PublicKey

	// Lamports is the native balance.
	Lamports uint64

	// Data is the serialized account state. Empty for native wallets.
	Data []byte
}

func (a *Account) clone() *Account {
	cloned := &Account{
		Owner:    append(ed25519.PublicKey(nil), a.Owner...),
		Lamports: a.Lamports,
	}
	if a.Data != nil {
		cloned.Data = append([]byte(nil), a.Data...)
	}
	return cloned
}

// IsNative reports whether the account is owned by the system program.
func (a *Account) IsNative() bool {
	return string(a.Owner) == string(SystemProgramID)
}

// StoreData writes a serialized record into the account's allocation,
// zeroing any tail left over from a previously longer encoding.
func (a *Account) StoreData(b []byte) {
	copy(a.Data, b)
	for i := len(b); i < len(a.Data); i++ {
		a.Data[i] = 0
	}
}

const (
	// Rent parameters follow the mainnet genesis configuration:
	// 3,480 lamports per byte-year with a two year exemption threshold,
	// applied to the data length plus the 128 byte account overhead.
	lamportsPerByteYear = 3480
	rentExemptionYears  = 2
	accountOverhead     = 128
)

// RentExemptBalance returns the lamports required to keep an account with
// the given data size alive indefinitely.
func RentExemptBalance(space uint64) uint64 {
	return (accountOverhead + space) * lamportsPerByteYear * rentExemptionYears
}
