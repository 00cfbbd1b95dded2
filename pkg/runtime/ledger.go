package runtime

import (
	"crypto/ed25519"
	"io"

	"github.com/sirupsen/logrus"
)

// Ledger is the persistent account store an instruction executes against.
// The host guarantees exclusion over the accounts an instruction touches, so
// the ledger itself is not synchronized; callers serialize instructions.
type Ledger struct {
	accounts map[string]*Account
	clock    int64
	log      *logrus.Entry
}

func NewLedger() *Ledger {
	logger := logrus.New()
	logger.Out = io.Discard

	return &Ledger{
		accounts: make(map[string]*Account),
		log:      logrus.NewEntry(logger),
	}
}

// WithLogger attaches a logger used for instruction commit/revert events.
func (l *Ledger) WithLogger(log *logrus.Entry) *Ledger {
	l.log = log
	return l
}

// SetClock sets the host-provided unix timestamp observed by instructions.
func (l *Ledger) SetClock(ts int64) {
	l.clock = ts
}

// Clock returns the current host timestamp.
func (l *Ledger) Clock() int64 {
	return l.clock
}

// FundWallet creates (or tops up) a native account. Test and host setup
// helper; it is not reachable from instruction bodies.
func (l *Ledger) FundWallet(address ed25519.PublicKey, lamports uint64) {
	account, ok := l.accounts[string(address)]
	if !ok {
		account = &Account{Owner: SystemProgramID}
		l.accounts[string(address)] = account
	}
	account.Lamports += lamports
}

// Balance returns the lamport balance of an account, zero if absent.
func (l *Ledger) Balance(address ed25519.PublicKey) uint64 {
	if account, ok := l.accounts[string(address)]; ok {
		return account.Lamports
	}
	return 0
}

// Account returns a copy of the stored account. Mutations must go through
// an Execution so they participate in rollback.
func (l *Ledger) Account(address ed25519.PublicKey) (*Account, bool) {
	account, ok := l.accounts[string(address)]
	if !ok {
		return nil, false
	}
	return account.clone(), true
}

// Execute runs fn as an atomic instruction. Every account fn touches is
// snapshotted on first mutation; if fn returns an error all snapshots are
// restored and no partial effects persist.
func (l *Ledger) Execute(fn func(*Execution) error) error {
	execution := &Execution{
		ledger:    l,
		snapshots: make(map[string]*Account),
	}

	if err := fn(execution); err != nil {
		execution.revert()
		l.log.WithError(err).Debug("instruction reverted")
		return err
	}

	l.log.WithField("accounts_touched", len(execution.snapshots)).Trace("instruction committed")
	return nil
}
