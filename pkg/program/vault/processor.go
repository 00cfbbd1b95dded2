package vault

import (
	"crypto/ed25519"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/fili8-labs/onchain/pkg/runtime"
)

// Processor executes vault instructions against a ledger.
type Processor struct {
	log *logrus.Entry
}

func NewProcessor() *Processor {
	logger := logrus.New()
	logger.Out = io.Discard
	return &Processor{log: logrus.NewEntry(logger)}
}

func (p *Processor) WithLogger(log *logrus.Entry) *Processor {
	p.log = log
	return p
}

// Initialize creates the owner's state record. The vault itself is a native
// account that springs into existence on the first deposit.
func (p *Processor) Initialize(ledger *runtime.Ledger, owner ed25519.PublicKey) (ed25519.PublicKey, error) {
	stateAddress, stateBump, err := GetStateAddress(owner)
	if err != nil {
		return nil, err
	}
	_, vaultBump, err := GetVaultAddress(stateAddress)
	if err != nil {
		return nil, err
	}

	err = ledger.Execute(func(ex *runtime.Execution) error {
		account, err := ex.Create(stateAddress, ProgramID, StateSize, owner)
		if err != nil {
			return err
		}

		state := &State{
			VaultBump: vaultBump,
			StateBump: stateBump,
		}
		account.StoreData(state.Marshal())
		return nil
	})
	if err != nil {
		return nil, err
	}

	p.log.WithFields(logrus.Fields{
		"instruction": "initialize",
		"state":       logKey(stateAddress),
	}).Debug("vault initialized")

	return stateAddress, nil
}

// Deposit moves native balance from the owner into their vault.
func (p *Processor) Deposit(ledger *runtime.Ledger, owner ed25519.PublicKey, amount uint64) error {
	if amount == 0 {
		return ErrZeroAmount
	}

	return ledger.Execute(func(ex *runtime.Execution) error {
		stateAddress, _, err := loadState(ex, owner)
		if err != nil {
			return err
		}
		vault, _, err := GetVaultAddress(stateAddress)
		if err != nil {
			return err
		}
		return ex.Transfer(owner, vault, amount, runtime.SignerAuthority(owner))
	})
}

// Withdraw moves native balance from the vault back to the owner, signed by
// the vault's deriving seeds.
func (p *Processor) Withdraw(ledger *runtime.Ledger, owner ed25519.PublicKey, amount uint64) error {
	if amount == 0 {
		return ErrZeroAmount
	}

	return ledger.Execute(func(ex *runtime.Execution) error {
		stateAddress, state, err := loadState(ex, owner)
		if err != nil {
			return err
		}
		vault, _, err := GetVaultAddress(stateAddress)
		if err != nil {
			return err
		}
		if ex.Balance(vault) < amount {
			return ErrInsufficientBalance
		}

		vaultAuthority := runtime.DerivedAuthority(ProgramID, state.VaultBump, stateAddress)
		return ex.Transfer(vault, owner, amount, vaultAuthority)
	})
}

// GetVaultBalance returns the owner's current vault balance.
func GetVaultBalance(ledger *runtime.Ledger, owner ed25519.PublicKey) (uint64, error) {
	stateAddress, _, err := GetStateAddress(owner)
	if err != nil {
		return 0, err
	}
	vault, _, err := GetVaultAddress(stateAddress)
	if err != nil {
		return 0, err
	}
	return ledger.Balance(vault), nil
}

func loadState(ex *runtime.Execution, owner ed25519.PublicKey) (ed25519.PublicKey, *State, error) {
	address, _, err := GetStateAddress(owner)
	if err != nil {
		return nil, nil, err
	}

	account, err := ex.Load(address, ProgramID)
	if err != nil {
		return nil, nil, err
	}

	var state State
	if err := state.Unmarshal(account.Data); err != nil {
		return nil, nil, err
	}
	return address, &state, nil
}
