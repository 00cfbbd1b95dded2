package amm

import (
	"bytes"
	"crypto/ed25519"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/fili8-labs/onchain/pkg/runtime"
	"github.com/fili8-labs/onchain/pkg/token"
)

// Processor executes amm instructions against a ledger. Each instruction is
// an atomic unit: any failure reverts every transfer and record mutation.
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

// Initialize creates the pool config, the LP mint and both vaults. The
// optional authority may later lock and unlock the pool.
func (p *Processor) Initialize(ledger *runtime.Ledger, signer ed25519.PublicKey, seed uint64, authority, mintX, mintY ed25519.PublicKey, feeBps uint16) (ed25519.PublicKey, error) {
	if feeBps > MaxFeeBps {
		return nil, ErrInvalidFee
	}
	if bytes.Equal(mintX, mintY) {
		return nil, ErrSameMint
	}

	configAddress, configBump, err := GetConfigAddress(seed)
	if err != nil {
		return nil, err
	}
	lpMint, lpMintBump, err := GetLpMintAddress(configAddress)
	if err != nil {
		return nil, err
	}

	err = ledger.Execute(func(ex *runtime.Execution) error {
		account, err := ex.Create(configAddress, ProgramID, ConfigSize, signer)
		if err != nil {
			return err
		}

		config := &Config{
			Seed:       seed,
			Authority:  authority,
			MintX:      mintX,
			MintY:      mintY,
			Fee:        feeBps,
			Locked:     false,
			ConfigBump: configBump,
			LpMintBump: lpMintBump,
		}
		account.StoreData(config.Marshal())

		if err := token.InitializeMint(ex, lpMint, configAddress, nil, LpMintDecimals, signer); err != nil {
			return err
		}
		if _, err := token.CreateAssociatedAccount(ex, signer, configAddress, mintX); err != nil {
			return err
		}
		if _, err := token.CreateAssociatedAccount(ex, signer, configAddress, mintY); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	p.log.WithFields(logrus.Fields{
		"instruction": "initialize",
		"config":      logKey(configAddress),
		"fee_bps":     feeBps,
	}).Debug("pool initialized")

	return configAddress, nil
}

// Deposit mints l LP tokens to the signer against at most (maxX, maxY) of
// the pool assets. The first deposit bootstraps the reserves at exactly
// (maxX, maxY).
func (p *Processor) Deposit(ledger *runtime.Ledger, signer, configAddress ed25519.PublicKey, l, maxX, maxY uint64) error {
	return ledger.Execute(func(ex *runtime.Execution) error {
		config, _, err := loadConfig(ex, configAddress)
		if err != nil {
			return err
		}
		if config.Locked {
			return ErrPoolLocked
		}
		if l == 0 {
			return ErrZeroAmount
		}

		pool, err := loadPool(ex, configAddress, config)
		if err != nil {
			return err
		}

		dx, dy := maxX, maxY
		if !pool.bootstrap() {
			dx, dy, err = DepositAmounts(pool.reserveX, pool.reserveY, pool.lpSupply, l)
			if err != nil {
				return err
			}
			if dx > maxX {
				return ErrSlippageX
			}
			if dy > maxY {
				return ErrSlippageY
			}
		}

		userX, err := token.GetAssociatedAccount(signer, config.MintX)
		if err != nil {
			return err
		}
		userY, err := token.GetAssociatedAccount(signer, config.MintY)
		if err != nil {
			return err
		}

		signerAuthority := runtime.SignerAuthority(signer)
		if err := token.TransferChecked(ex, userX, pool.vaultX, config.MintX, dx, pool.decimalsX, signerAuthority); err != nil {
			return err
		}
		if err := token.TransferChecked(ex, userY, pool.vaultY, config.MintY, dy, pool.decimalsY, signerAuthority); err != nil {
			return err
		}

		userLp, err := token.CreateAssociatedAccountIdempotent(ex, signer, signer, pool.lpMint)
		if err != nil {
			return err
		}
		if err := token.MintTo(ex, pool.lpMint, userLp, l, config.signingAuthority()); err != nil {
			return err
		}

		p.log.WithFields(logrus.Fields{
			"instruction": "deposit",
			"config":      logKey(configAddress),
			"lp":          l,
		}).Debug("liquidity deposited")
		return nil
	})
}

// Withdraw burns l LP tokens and releases the proportional share of both
// reserves, failing if either amount is below the provided minimum.
func (p *Processor) Withdraw(ledger *runtime.Ledger, signer, configAddress ed25519.PublicKey, l, minX, minY uint64) error {
	return ledger.Execute(func(ex *runtime.Execution) error {
		config, _, err := loadConfig(ex, configAddress)
		if err != nil {
			return err
		}
		if config.Locked {
			return ErrPoolLocked
		}
		if l == 0 {
			return ErrZeroAmount
		}

		pool, err := loadPool(ex, configAddress, config)
		if err != nil {
			return err
		}

		dx, dy, err := WithdrawAmounts(pool.reserveX, pool.reserveY, pool.lpSupply, l)
		if err != nil {
			return err
		}
		if dx < minX {
			return ErrSlippageX
		}
		if dy < minY {
			return ErrSlippageY
		}

		userLp, err := token.GetAssociatedAccount(signer, pool.lpMint)
		if err != nil {
			return err
		}
		if err := token.Burn(ex, pool.lpMint, userLp, l, runtime.SignerAuthority(signer)); err != nil {
			return err
		}

		userX, err := token.GetAssociatedAccount(signer, config.MintX)
		if err != nil {
			return err
		}
		userY, err := token.GetAssociatedAccount(signer, config.MintY)
		if err != nil {
			return err
		}

		configAuthority := config.signingAuthority()
		if err := token.TransferChecked(ex, pool.vaultX, userX, config.MintX, dx, pool.decimalsX, configAuthority); err != nil {
			return err
		}
		if err := token.TransferChecked(ex, pool.vaultY, userY, config.MintY, dy, pool.decimalsY, configAuthority); err != nil {
			return err
		}

		p.log.WithFields(logrus.Fields{
			"instruction": "withdraw",
			"config":      logKey(configAddress),
			"lp":          l,
		}).Debug("liquidity withdrawn")
		return nil
	})
}

// Swap trades amountIn of one pool asset for the other along the curve.
// isX selects the input side.
func (p *Processor) Swap(ledger *runtime.Ledger, signer, configAddress ed25519.PublicKey, isX bool, amountIn, minOut uint64) error {
	return ledger.Execute(func(ex *runtime.Execution) error {
		config, _, err := loadConfig(ex, configAddress)
		if err != nil {
			return err
		}
		if config.Locked {
			return ErrPoolLocked
		}
		if amountIn == 0 {
			return ErrZeroAmount
		}

		pool, err := loadPool(ex, configAddress, config)
		if err != nil {
			return err
		}

		reserveIn, reserveOut := pool.reserveX, pool.reserveY
		mintIn, mintOut := config.MintX, config.MintY
		vaultIn, vaultOut := pool.vaultX, pool.vaultY
		decimalsIn, decimalsOut := pool.decimalsX, pool.decimalsY
		if !isX {
			reserveIn, reserveOut = pool.reserveY, pool.reserveX
			mintIn, mintOut = config.MintY, config.MintX
			vaultIn, vaultOut = pool.vaultY, pool.vaultX
			decimalsIn, decimalsOut = pool.decimalsY, pool.decimalsX
		}

		amountOut, err := SwapOutput(reserveIn, reserveOut, amountIn, config.Fee)
		if err != nil {
			return err
		}
		if amountOut == 0 || amountOut >= reserveOut {
			return ErrInsufficientLiquidity
		}
		if amountOut < minOut {
			return ErrSlippageOut
		}

		userIn, err := token.GetAssociatedAccount(signer, mintIn)
		if err != nil {
			return err
		}
		userOut, err := token.CreateAssociatedAccountIdempotent(ex, signer, signer, mintOut)
		if err != nil {
			return err
		}

		if err := token.TransferChecked(ex, userIn, vaultIn, mintIn, amountIn, decimalsIn, runtime.SignerAuthority(signer)); err != nil {
			return err
		}
		if err := token.TransferChecked(ex, vaultOut, userOut, mintOut, amountOut, decimalsOut, config.signingAuthority()); err != nil {
			return err
		}

		p.log.WithFields(logrus.Fields{
			"instruction": "swap",
			"config":      logKey(configAddress),
			"amount_in":   amountIn,
			"amount_out":  amountOut,
		}).Debug("swap executed")
		return nil
	})
}

// SetLocked locks or unlocks the pool. Only the configured authority may
// flip the flag; pools without an authority cannot be locked.
func (p *Processor) SetLocked(ledger *runtime.Ledger, signer, configAddress ed25519.PublicKey, locked bool) error {
	return ledger.Execute(func(ex *runtime.Execution) error {
		config, account, err := loadConfig(ex, configAddress)
		if err != nil {
			return err
		}
		if len(config.Authority) == 0 || !bytes.Equal(config.Authority, signer) {
			return ErrInvalidAuthority
		}

		config.Locked = locked
		account.StoreData(config.Marshal())
		return nil
	})
}

// GetVaultBalance returns the pool's vault balance for one of its mints.
func GetVaultBalance(ledger *runtime.Ledger, configAddress, mint ed25519.PublicKey) (uint64, error) {
	vault, err := token.GetAssociatedAccount(configAddress, mint)
	if err != nil {
		return 0, err
	}

	var amount uint64
	err = ledger.Execute(func(ex *runtime.Execution) error {
		state, err := token.GetAccount(ex, vault)
		if err != nil {
			return err
		}
		amount = state.Amount
		return nil
	})
	return amount, err
}

// poolView is the working set of a pool instruction: vault and mint
// addresses plus their decoded balances.
type poolView struct {
	lpMint   ed25519.PublicKey
	lpSupply uint64

	vaultX, vaultY       ed25519.PublicKey
	reserveX, reserveY   uint64
	decimalsX, decimalsY uint8
}

func (v *poolView) bootstrap() bool {
	return v.lpSupply == 0 && v.reserveX == 0 && v.reserveY == 0
}

func loadPool(ex *runtime.Execution, configAddress ed25519.PublicKey, config *Config) (*poolView, error) {
	lpMint, _, err := GetLpMintAddress(configAddress)
	if err != nil {
		return nil, err
	}
	lpMintState, err := token.GetMint(ex, lpMint)
	if err != nil {
		return nil, err
	}

	vaultX, err := token.GetAssociatedAccount(configAddress, config.MintX)
	if err != nil {
		return nil, err
	}
	vaultY, err := token.GetAssociatedAccount(configAddress, config.MintY)
	if err != nil {
		return nil, err
	}

	vaultXState, err := token.GetAccount(ex, vaultX)
	if err != nil {
		return nil, err
	}
	vaultYState, err := token.GetAccount(ex, vaultY)
	if err != nil {
		return nil, err
	}

	mintXState, err := token.GetMint(ex, config.MintX)
	if err != nil {
		return nil, err
	}
	mintYState, err := token.GetMint(ex, config.MintY)
	if err != nil {
		return nil, err
	}

	return &poolView{
		lpMint:    lpMint,
		lpSupply:  lpMintState.Supply,
		vaultX:    vaultX,
		vaultY:    vaultY,
		reserveX:  vaultXState.Amount,
		reserveY:  vaultYState.Amount,
		decimalsX: mintXState.Decimals,
		decimalsY: mintYState.Decimals,
	}, nil
}

func (c *Config) signingAuthority() runtime.Authority {
	return runtime.DerivedAuthority(ProgramID, c.ConfigBump, configPrefix, seedBytes(c.Seed))
}

func loadConfig(ex *runtime.Execution, address ed25519.PublicKey) (*Config, *runtime.Account, error) {
	account, err := ex.Load(address, ProgramID)
	if err != nil {
		return nil, nil, err
	}

	var config Config
	if err := config.Unmarshal(account.Data); err != nil {
		return nil, nil, err
	}
	return &config, account, nil
}
