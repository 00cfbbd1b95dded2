package staking

import (
	"bytes"
	"crypto/ed25519"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/fili8-labs/onchain/pkg/metadata"
	"github.com/fili8-labs/onchain/pkg/runtime"
	"github.com/fili8-labs/onchain/pkg/safemath"
	"github.com/fili8-labs/onchain/pkg/token"
)

// Processor executes staking instructions against a ledger.
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

// InitializeConfig creates the singleton policy record and its rewards mint.
// FreezePeriod is in days.
func (p *Processor) InitializeConfig(ledger *runtime.Ledger, admin ed25519.PublicKey, pointsPerStake, maxStake uint8, freezePeriod uint32) (ed25519.PublicKey, error) {
	configAddress, bump, err := GetConfigAddress()
	if err != nil {
		return nil, err
	}
	rewardsMint, rewardsBump, err := GetRewardsMintAddress(configAddress)
	if err != nil {
		return nil, err
	}

	err = ledger.Execute(func(ex *runtime.Execution) error {
		account, err := ex.Create(configAddress, ProgramID, ConfigSize, admin)
		if err != nil {
			return err
		}

		config := &Config{
			PointsPerStake: pointsPerStake,
			MaxStake:       maxStake,
			FreezePeriod:   freezePeriod,
			RewardsBump:    rewardsBump,
			Bump:           bump,
		}
		account.StoreData(config.Marshal())

		return token.InitializeMint(ex, rewardsMint, configAddress, nil, RewardsMintDecimals, admin)
	})
	if err != nil {
		return nil, err
	}

	p.log.WithFields(logrus.Fields{
		"instruction":   "initialize_config",
		"config":        logKey(configAddress),
		"freeze_period": freezePeriod,
	}).Debug("staking config initialized")

	return configAddress, nil
}

// InitializeUser creates the user's counter record with zeroed counters.
func (p *Processor) InitializeUser(ledger *runtime.Ledger, user ed25519.PublicKey) (ed25519.PublicKey, error) {
	userAddress, bump, err := GetUserAccountAddress(user)
	if err != nil {
		return nil, err
	}

	err = ledger.Execute(func(ex *runtime.Execution) error {
		account, err := ex.Create(userAddress, ProgramID, UserAccountSize, user)
		if err != nil {
			return err
		}

		record := &UserAccount{Bump: bump}
		account.StoreData(record.Marshal())
		return nil
	})
	if err != nil {
		return nil, err
	}

	return userAddress, nil
}

// Stake locks one unit of the NFT in place: the stake record is approved as
// delegate on the user's token account and the account is frozen through
// the metadata facade, signed with the stake record's seeds.
func (p *Processor) Stake(ledger *runtime.Ledger, user, nftMint ed25519.PublicKey) (ed25519.PublicKey, error) {
	configAddress, _, err := GetConfigAddress()
	if err != nil {
		return nil, err
	}
	stakeAddress, stakeBump, err := GetStakeAccountAddress(configAddress, nftMint)
	if err != nil {
		return nil, err
	}

	err = ledger.Execute(func(ex *runtime.Execution) error {
		config, err := loadConfig(ex, configAddress)
		if err != nil {
			return err
		}
		userRecord, userAccount, err := loadUserAccount(ex, user)
		if err != nil {
			return err
		}
		if userRecord.AmountStaked >= config.MaxStake {
			return ErrMaxStakeReached
		}

		account, err := ex.Create(stakeAddress, ProgramID, StakeAccountSize, user)
		if err != nil {
			return err
		}

		stake := &StakeAccount{
			Owner:    user,
			Mint:     nftMint,
			StakedAt: ex.Clock(),
			Bump:     stakeBump,
		}
		account.StoreData(stake.Marshal())

		userAta, err := token.GetAssociatedAccount(user, nftMint)
		if err != nil {
			return err
		}
		if err := token.Approve(ex, userAta, stakeAddress, 1, runtime.SignerAuthority(user)); err != nil {
			return err
		}
		if err := metadata.FreezeDelegatedAccount(ex, userAta, stake.signingAuthority(configAddress)); err != nil {
			return err
		}

		userRecord.AmountStaked, err = safemath.CheckedAddU8(userRecord.AmountStaked, 1)
		if err != nil {
			return err
		}
		userAccount.StoreData(userRecord.Marshal())
		return nil
	})
	if err != nil {
		return nil, err
	}

	p.log.WithFields(logrus.Fields{
		"instruction": "stake",
		"stake":       logKey(stakeAddress),
		"nft_mint":    logKey(nftMint),
	}).Debug("nft staked")

	return stakeAddress, nil
}

// Unstake thaws the NFT, revokes the delegate and awards points for the
// elapsed whole days. It fails until the freeze period has passed.
func (p *Processor) Unstake(ledger *runtime.Ledger, user, nftMint ed25519.PublicKey) error {
	err := ledger.Execute(func(ex *runtime.Execution) error {
		configAddress, _, err := GetConfigAddress()
		if err != nil {
			return err
		}
		config, err := loadConfig(ex, configAddress)
		if err != nil {
			return err
		}

		stakeAddress, _, err := GetStakeAccountAddress(configAddress, nftMint)
		if err != nil {
			return err
		}
		stakeAccount, err := ex.Load(stakeAddress, ProgramID)
		if err != nil {
			return err
		}
		var stake StakeAccount
		if err := stake.Unmarshal(stakeAccount.Data); err != nil {
			return err
		}
		if !bytes.Equal(user, stake.Owner) {
			return ErrNotStakeOwner
		}

		var elapsedDays uint32
		if now := ex.Clock(); now > stake.StakedAt {
			elapsedDays = uint32((now - stake.StakedAt) / secondsPerDay)
		}
		if elapsedDays < config.FreezePeriod {
			return ErrFreezePeriodNotPassed
		}

		userRecord, userAccount, err := loadUserAccount(ex, user)
		if err != nil {
			return err
		}

		awarded, err := safemath.CheckedMulU32(elapsedDays, uint32(config.PointsPerStake))
		if err != nil {
			return err
		}
		userRecord.Points, err = safemath.CheckedAddU32(userRecord.Points, awarded)
		if err != nil {
			return err
		}
		userRecord.AmountStaked, err = safemath.CheckedSubU8(userRecord.AmountStaked, 1)
		if err != nil {
			return err
		}

		userAta, err := token.GetAssociatedAccount(user, nftMint)
		if err != nil {
			return err
		}
		if err := metadata.ThawDelegatedAccount(ex, userAta, stake.signingAuthority(configAddress)); err != nil {
			return err
		}
		if err := token.Revoke(ex, userAta, runtime.SignerAuthority(user)); err != nil {
			return err
		}

		userAccount.StoreData(userRecord.Marshal())
		return ex.Close(stakeAddress, user)
	})
	if err != nil {
		return err
	}

	p.log.WithFields(logrus.Fields{
		"instruction": "unstake",
		"nft_mint":    logKey(nftMint),
	}).Debug("nft unstaked")
	return nil
}

func (s *StakeAccount) signingAuthority(config ed25519.PublicKey) runtime.Authority {
	return runtime.DerivedAuthority(ProgramID, s.Bump, stakePrefix, config, s.Mint)
}

func loadConfig(ex *runtime.Execution, address ed25519.PublicKey) (*Config, error) {
	account, err := ex.Load(address, ProgramID)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := config.Unmarshal(account.Data); err != nil {
		return nil, err
	}
	return &config, nil
}

func loadUserAccount(ex *runtime.Execution, user ed25519.PublicKey) (*UserAccount, *runtime.Account, error) {
	address, _, err := GetUserAccountAddress(user)
	if err != nil {
		return nil, nil, err
	}

	account, err := ex.Load(address, ProgramID)
	if err != nil {
		return nil, nil, err
	}

	var record UserAccount
	if err := record.Unmarshal(account.Data); err != nil {
		return nil, nil, err
	}
	return &record, account, nil
}
