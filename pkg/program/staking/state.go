package staking

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/fili8-labs/onchain/pkg/solana/binary"
)

const ConfigSize = (8 + // discriminator
	1 + // points_per_stake
	1 + // max_stake
	4 + // freeze_period
	1 + // rewards_bump
	1) // bump

const UserAccountSize = (8 + // discriminator
	1 + // amount_staked
	4 + // points
	1) // bump

const StakeAccountSize = (8 + // discriminator
	32 + // owner
	32 + // mint
	8 + // staked_at
	1) // bump

var (
	ConfigDiscriminator       = []byte{byte(AccountTypeConfig), 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	UserAccountDiscriminator  = []byte{byte(AccountTypeUser), 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	StakeAccountDiscriminator = []byte{byte(AccountTypeStake), 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
)

// Config is the singleton staking policy record. FreezePeriod is in days.
type Config struct {
	PointsPerStake uint8
	MaxStake       uint8
	FreezePeriod   uint32
	RewardsBump    uint8
	Bump           uint8
}

func (obj *Config) Marshal() []byte {
	data := make([]byte, ConfigSize)

	var offset int
	binary.PutDiscriminator(data, ConfigDiscriminator, &offset)
	binary.PutUint8(data, obj.PointsPerStake, &offset)
	binary.PutUint8(data, obj.MaxStake, &offset)
	binary.PutUint32(data, obj.FreezePeriod, &offset)
	binary.PutUint8(data, obj.RewardsBump, &offset)
	binary.PutUint8(data, obj.Bump, &offset)

	return data
}

func (obj *Config) Unmarshal(data []byte) error {
	if len(data) < ConfigSize {
		return ErrInvalidAccountData
	}

	var offset int

	var discriminator []byte
	binary.GetDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, ConfigDiscriminator) {
		return ErrInvalidAccountData
	}

	binary.GetUint8(data, &obj.PointsPerStake, &offset)
	binary.GetUint8(data, &obj.MaxStake, &offset)
	binary.GetUint32(data, &obj.FreezePeriod, &offset)
	binary.GetUint8(data, &obj.RewardsBump, &offset)
	binary.GetUint8(data, &obj.Bump, &offset)

	return nil
}

func (obj *Config) String() string {
	return fmt.Sprintf(
		"Config{points_per_stake=%d,max_stake=%d,freeze_period=%d}",
		obj.PointsPerStake,
		obj.MaxStake,
		obj.FreezePeriod,
	)
}

// UserAccount tracks how many NFTs a user has staked and the points they
// have accrued.
type UserAccount struct {
	AmountStaked uint8
	Points       uint32
	Bump         uint8
}

func (obj *UserAccount) Marshal() []byte {
	data := make([]byte, UserAccountSize)

	var offset int
	binary.PutDiscriminator(data, UserAccountDiscriminator, &offset)
	binary.PutUint8(data, obj.AmountStaked, &offset)
	binary.PutUint32(data, obj.Points, &offset)
	binary.PutUint8(data, obj.Bump, &offset)

	return data
}

func (obj *UserAccount) Unmarshal(data []byte) error {
	if len(data) < UserAccountSize {
		return ErrInvalidAccountData
	}

	var offset int

	var discriminator []byte
	binary.GetDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, UserAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	binary.GetUint8(data, &obj.AmountStaked, &offset)
	binary.GetUint32(data, &obj.Points, &offset)
	binary.GetUint8(data, &obj.Bump, &offset)

	return nil
}

// StakeAccount records one staked NFT and when it was staked.
type StakeAccount struct {
	Owner    ed25519.PublicKey
	Mint     ed25519.PublicKey
	StakedAt int64
	Bump     uint8
}

func (obj *StakeAccount) Marshal() []byte {
	data := make([]byte, StakeAccountSize)

	var offset int
	binary.PutDiscriminator(data, StakeAccountDiscriminator, &offset)
	binary.PutKey(data, obj.Owner, &offset)
	binary.PutKey(data, obj.Mint, &offset)
	binary.PutInt64(data, obj.StakedAt, &offset)
	binary.PutUint8(data, obj.Bump, &offset)

	return data
}

func (obj *StakeAccount) Unmarshal(data []byte) error {
	if len(data) < StakeAccountSize {
		return ErrInvalidAccountData
	}

	var offset int

	var discriminator []byte
	binary.GetDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, StakeAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	binary.GetKey(data, &obj.Owner, &offset)
	binary.GetKey(data, &obj.Mint, &offset)
	binary.GetInt64(data, &obj.StakedAt, &offset)
	binary.GetUint8(data, &obj.Bump, &offset)

	return nil
}

func (obj *StakeAccount) String() string {
	return fmt.Sprintf(
		"StakeAccount{owner=%s,mint=%s,staked_at=%d}",
		base58.Encode(obj.Owner),
		base58.Encode(obj.Mint),
		obj.StakedAt,
	)
}
