package token

import (
	"crypto/ed25519"

	"github.com/fili8-labs/onchain/pkg/runtime"
	"github.com/fili8-labs/onchain/pkg/solana"
)

// AssociatedTokenAccountProgramID is the address of the associated token
// account program.
//
// Current key: ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL
var AssociatedTokenAccountProgramID = ed25519.PublicKey(solana.MustBase58Decode("ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL"))

// GetAssociatedAccount returns the canonical token account address for a
// (wallet, mint) pair.
//
// Reference: https://spl.solana.com/associated-token-account#finding-the-associated-token-account-address
func GetAssociatedAccount(wallet, mint ed25519.PublicKey) (ed25519.PublicKey, error) {
	return solana.FindProgramAddress(
		AssociatedTokenAccountProgramID,
		wallet,
		ProgramID,
		mint,
	)
}

// CreateAssociatedAccount derives and initializes the associated token
// account for (wallet, mint), returning its address.
func CreateAssociatedAccount(ex *runtime.Execution, payer, wallet, mint ed25519.PublicKey) (ed25519.PublicKey, error) {
	address, err := GetAssociatedAccount(wallet, mint)
	if err != nil {
		return nil, err
	}
	if err := InitializeAccount(ex, address, mint, wallet, payer); err != nil {
		return nil, err
	}
	return address, nil
}

// CreateAssociatedAccountIdempotent is CreateAssociatedAccount with
// init_if_needed semantics: an already initialized associated account is
// returned as-is.
func CreateAssociatedAccountIdempotent(ex *runtime.Execution, payer, wallet, mint ed25519.PublicKey) (ed25519.PublicKey, error) {
	address, err := GetAssociatedAccount(wallet, mint)
	if err != nil {
		return nil, err
	}

	err = InitializeAccount(ex, address, mint, wallet, payer)
	if err == ErrAlreadyInUse {
		return address, nil
	}
	if err != nil {
		return nil, err
	}
	return address, nil
}
