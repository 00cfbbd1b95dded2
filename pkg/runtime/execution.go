package runtime

import (
	"bytes"
	"crypto/ed25519"

	"github.com/pkg/errors"
)

// Execution is the rollback scope of a single instruction. All account
// reads and writes inside an instruction body go through it; the first
// mutation of each account records a snapshot that Ledger.Execute restores
// if the body fails.
type Execution struct {
	ledger *Ledger

	// snapshots holds the pre-instruction state of every touched account.
	// A nil value means the account did not exist when first touched.
	snapshots map[string]*Account
}

// Clock returns the host timestamp the instruction observes.
func (e *Execution) Clock() int64 {
	return e.ledger.clock
}

func (e *Execution) snapshot(address ed25519.PublicKey) {
	key := string(address)
	if _, ok := e.snapshots[key]; ok {
		return
	}
	if existing, ok := e.ledger.accounts[key]; ok {
		e.snapshots[key] = existing.clone()
	} else {
		e.snapshots[key] = nil
	}
}

func (e *Execution) revert() {
	for key, snapshot := range e.snapshots {
		if snapshot == nil {
			delete(e.ledger.accounts, key)
		} else {
			e.ledger.accounts[key] = snapshot
		}
	}
}

// Account returns the live account for mutation, snapshotting it first.
func (e *Execution) Account(address ed25519.PublicKey) (*Account, bool) {
	account, ok := e.ledger.accounts[string(address)]
	if !ok {
		return nil, false
	}
	e.snapshot(address)
	return account, true
}

// Load fetches an account and enforces program ownership, the precondition
// for interpreting its bytes as one of the program's records.
func (e *Execution) Load(address, program ed25519.PublicKey) (*Account, error) {
	account, ok := e.Account(address)
	if !ok {
		return nil, ErrAccountNotFound
	}
	if !bytes.Equal(account.Owner, program) {
		return nil, ErrWrongOwner
	}
	return account, nil
}

// Create allocates a program-owned account of the given size and debits the
// payer for the rent-exempt balance.
func (e *Execution) Create(address, owner ed25519.PublicKey, space uint64, payer ed25519.PublicKey) (*Account, error) {
	key := string(address)
	if existing, ok := e.ledger.accounts[key]; ok && (len(existing.Data) > 0 || !existing.IsNative()) {
		return nil, ErrAlreadyInitialized
	}

	rent := RentExemptBalance(space)
	if err := e.debit(payer, rent); err != nil {
		return nil, errors.Wrap(err, "failed to fund rent")
	}

	e.snapshot(address)

	account, ok := e.ledger.accounts[key]
	if !ok {
		account = &Account{}
		e.ledger.accounts[key] = account
	}
	account.Owner = append(ed25519.PublicKey(nil), owner...)
	account.Lamports += rent
	account.Data = make([]byte, space)

	return account, nil
}

// Close sweeps the account's residual lamports to refundTo and marks it
// uninitialized. Ownership checks are the caller's responsibility; record
// kinds enforce their own close rules before calling.
func (e *Execution) Close(address, refundTo ed25519.PublicKey) error {
	account, ok := e.Account(address)
	if !ok {
		return ErrAccountNotFound
	}

	e.credit(refundTo, account.Lamports)
	delete(e.ledger.accounts, string(address))

	return nil
}

// Transfer moves native lamports. The source must be a system-owned account
// and the authority must resolve to the source address: a wallet signature
// for normal accounts, or the deriving seed tuple for program addresses.
func (e *Execution) Transfer(from, to ed25519.PublicKey, amount uint64, authority Authority) error {
	if err := authority.Verify(from); err != nil {
		return err
	}

	source, ok := e.Account(from)
	if !ok {
		return ErrAccountNotFound
	}
	if !source.IsNative() {
		return ErrWrongOwner
	}
	if source.Lamports < amount {
		return ErrInsufficientBalance
	}

	source.Lamports -= amount
	e.credit(to, amount)
	return nil
}

func (e *Execution) debit(address ed25519.PublicKey, amount uint64) error {
	account, ok := e.Account(address)
	if !ok {
		return ErrAccountNotFound
	}
	if account.Lamports < amount {
		return ErrInsufficientBalance
	}
	account.Lamports -= amount
	return nil
}

func (e *Execution) credit(address ed25519.PublicKey, amount uint64) {
	key := string(address)
	e.snapshot(address)

	account, ok := e.ledger.accounts[key]
	if !ok {
		account = &Account{Owner: SystemProgramID}
		e.ledger.accounts[key] = account
	}
	account.Lamports += amount
}

// Balance returns the lamport balance of an account, zero if absent.
func (e *Execution) Balance(address ed25519.PublicKey) uint64 {
	if account, ok := e.ledger.accounts[string(address)]; ok {
		return account.Lamports
	}
	return 0
}
