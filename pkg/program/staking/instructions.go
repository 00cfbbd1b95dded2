package staking

import (
	"github.com/fili8-labs/onchain/pkg/solana/binary"
)

// Command is the one-byte instruction opcode.
type Command uint8

const (
	CommandInitializeConfig Command = iota
	CommandInitializeUser
	CommandStake
	CommandUnstake
)

type InitializeConfigInstructionArgs struct {
	PointsPerStake uint8
	MaxStake       uint8
	FreezePeriod   uint32
}

func (args *InitializeConfigInstructionArgs) Marshal() []byte {
	data := make([]byte, 1+1+1+4)

	var offset int
	binary.PutUint8(data, uint8(CommandInitializeConfig), &offset)
	binary.PutUint8(data, args.PointsPerStake, &offset)
	binary.PutUint8(data, args.MaxStake, &offset)
	binary.PutUint32(data, args.FreezePeriod, &offset)

	return data
}

func (args *InitializeConfigInstructionArgs) Unmarshal(data []byte) error {
	if len(data) != 1+1+1+4 || Command(data[0]) != CommandInitializeConfig {
		return ErrInvalidInstructionData
	}

	offset := 1
	binary.GetUint8(data, &args.PointsPerStake, &offset)
	binary.GetUint8(data, &args.MaxStake, &offset)
	binary.GetUint32(data, &args.FreezePeriod, &offset)
	return nil
}

// InitializeUser, Stake and Unstake carry no payload beyond the opcode;
// every other input is an account reference.

type InitializeUserInstructionArgs struct {
}

func (args *InitializeUserInstructionArgs) Marshal() []byte {
	return []byte{uint8(CommandInitializeUser)}
}

func (args *InitializeUserInstructionArgs) Unmarshal(data []byte) error {
	if len(data) != 1 || Command(data[0]) != CommandInitializeUser {
		return ErrInvalidInstructionData
	}
	return nil
}

type StakeInstructionArgs struct {
}

func (args *StakeInstructionArgs) Marshal() []byte {
	return []byte{uint8(CommandStake)}
}

func (args *StakeInstructionArgs) Unmarshal(data []byte) error {
	if len(data) != 1 || Command(data[0]) != CommandStake {
		return ErrInvalidInstructionData
	}
	return nil
}

type UnstakeInstructionArgs struct {
}

func (args *UnstakeInstructionArgs) Marshal() []byte {
	return []byte{uint8(CommandUnstake)}
}

func (args *UnstakeInstructionArgs) Unmarshal(data []byte) error {
	if len(data) != 1 || Command(data[0]) != CommandUnstake {
		return ErrInvalidInstructionData
	}
	return nil
}
