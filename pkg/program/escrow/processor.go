package escrow

import (
	"bytes"
	"crypto/ed25519"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/fili8-labs/onchain/pkg/runtime"
	"github.com/fili8-labs/onchain/pkg/token"
)

// Processor executes escrow instructions against a ledger.
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

// Make opens an escrow: the maker deposits the A amount into a vault owned
// by the escrow record and names the B amount required to settle it.
func (p *Processor) Make(ledger *runtime.Ledger, maker ed25519.PublicKey, seed uint64, mintA, mintB ed25519.PublicKey, receive, deposit uint64) (ed25519.PublicKey, error) {
	if receive == 0 || deposit == 0 {
		return nil, ErrZeroAmount
	}
	if bytes.Equal(mintA, mintB) {
		return nil, ErrSameMint
	}

	stateAddress, stateBump, err := GetStateAddress(maker, seed)
	if err != nil {
		return nil, err
	}

	err = ledger.Execute(func(ex *runtime.Execution) error {
		account, err := ex.Create(stateAddress, ProgramID, StateSize, maker)
		if err != nil {
			return err
		}

		state := &State{
			Seed:          seed,
			Maker:         maker,
			MintA:         mintA,
			MintB:         mintB,
			ReceiveAmount: receive,
			Bump:          stateBump,
		}
		account.StoreData(state.Marshal())

		vault, err := token.CreateAssociatedAccount(ex, maker, stateAddress, mintA)
		if err != nil {
			return err
		}

		mintAState, err := token.GetMint(ex, mintA)
		if err != nil {
			return err
		}
		makerA, err := token.GetAssociatedAccount(maker, mintA)
		if err != nil {
			return err
		}
		return token.TransferChecked(ex, makerA, vault, mintA, deposit, mintAState.Decimals, runtime.SignerAuthority(maker))
	})
	if err != nil {
		return nil, err
	}

	p.log.WithFields(logrus.Fields{
		"instruction": "make",
		"state":       logKey(stateAddress),
		"receive":     receive,
		"deposit":     deposit,
	}).Debug("escrow opened")

	return stateAddress, nil
}

// Take settles the escrow: the taker pays the full B amount to the maker
// and receives the entire vault balance of A. The vault and the record are
// closed to the maker. Both legs land or neither does.
func (p *Processor) Take(ledger *runtime.Ledger, taker, stateAddress ed25519.PublicKey) error {
	err := ledger.Execute(func(ex *runtime.Execution) error {
		state, err := loadState(ex, stateAddress)
		if err != nil {
			return err
		}

		mintAState, err := token.GetMint(ex, state.MintA)
		if err != nil {
			return err
		}
		mintBState, err := token.GetMint(ex, state.MintB)
		if err != nil {
			return err
		}

		takerB, err := token.GetAssociatedAccount(taker, state.MintB)
		if err != nil {
			return err
		}
		makerB, err := token.CreateAssociatedAccountIdempotent(ex, taker, state.Maker, state.MintB)
		if err != nil {
			return err
		}
		if err := token.TransferChecked(ex, takerB, makerB, state.MintB, state.ReceiveAmount, mintBState.Decimals, runtime.SignerAuthority(taker)); err != nil {
			return err
		}

		vault, err := token.GetAssociatedAccount(stateAddress, state.MintA)
		if err != nil {
			return err
		}
		vaultState, err := token.GetAccount(ex, vault)
		if err != nil {
			return err
		}

		takerA, err := token.CreateAssociatedAccountIdempotent(ex, taker, taker, state.MintA)
		if err != nil {
			return err
		}

		stateAuthority := state.signingAuthority()
		if err := token.TransferChecked(ex, vault, takerA, state.MintA, vaultState.Amount, mintAState.Decimals, stateAuthority); err != nil {
			return err
		}
		if err := token.CloseAccount(ex, vault, state.Maker, stateAuthority); err != nil {
			return err
		}
		return ex.Close(stateAddress, state.Maker)
	})
	if err != nil {
		return err
	}

	p.log.WithFields(logrus.Fields{
		"instruction": "take",
		"state":       logKey(stateAddress),
	}).Debug("escrow settled")
	return nil
}

// Refund returns the vault balance to the maker and closes the escrow.
// Only the maker may refund.
func (p *Processor) Refund(ledger *runtime.Ledger, signer, stateAddress ed25519.PublicKey) error {
	err := ledger.Execute(func(ex *runtime.Execution) error {
		state, err := loadState(ex, stateAddress)
		if err != nil {
			return err
		}
		if !bytes.Equal(signer, state.Maker) {
			return ErrNotMaker
		}

		mintAState, err := token.GetMint(ex, state.MintA)
		if err != nil {
			return err
		}

		vault, err := token.GetAssociatedAccount(stateAddress, state.MintA)
		if err != nil {
			return err
		}
		vaultState, err := token.GetAccount(ex, vault)
		if err != nil {
			return err
		}

		makerA, err := token.GetAssociatedAccount(state.Maker, state.MintA)
		if err != nil {
			return err
		}

		stateAuthority := state.signingAuthority()
		if err := token.TransferChecked(ex, vault, makerA, state.MintA, vaultState.Amount, mintAState.Decimals, stateAuthority); err != nil {
			return err
		}
		if err := token.CloseAccount(ex, vault, state.Maker, stateAuthority); err != nil {
			return err
		}
		return ex.Close(stateAddress, state.Maker)
	})
	if err != nil {
		return err
	}

	p.log.WithFields(logrus.Fields{
		"instruction": "refund",
		"state":       logKey(stateAddress),
	}).Debug("escrow refunded")
	return nil
}

func (s *State) signingAuthority() runtime.Authority {
	return runtime.DerivedAuthority(ProgramID, s.Bump, escrowPrefix, s.Maker, seedBytes(s.Seed))
}

func loadState(ex *runtime.Execution, address ed25519.PublicKey) (*State, error) {
	account, err := ex.Load(address, ProgramID)
	if err != nil {
		return nil, err
	}

	var state State
	if err := state.Unmarshal(account.Data); err != nil {
		return nil, err
	}
	return &state, nil
}
