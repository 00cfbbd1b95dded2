package vault

import (
	"github.com/fili8-labs/onchain/pkg/solana/binary"
)

// Command is the one-byte instruction opcode.
type Command uint8

const (
	CommandInitialize Command = iota
	CommandDeposit
	CommandWithdraw
)

type InitializeInstructionArgs struct {
}

func (args *InitializeInstructionArgs) Marshal() []byte {
	return []byte{uint8(CommandInitialize)}
}

func (args *InitializeInstructionArgs) Unmarshal(data []byte) error {
	if len(data) != 1 || Command(data[0]) != CommandInitialize {
		return ErrInvalidInstructionData
	}
	return nil
}

type DepositInstructionArgs struct {
	Amount uint64
}

func (args *DepositInstructionArgs) Marshal() []byte {
	data := make([]byte, 1+8)

	var offset int
	binary.PutUint8(data, uint8(CommandDeposit), &offset)
	binary.PutUint64(data, args.Amount, &offset)

	return data
}

func (args *DepositInstructionArgs) Unmarshal(data []byte) error {
	if len(data) != 1+8 || Command(data[0]) != CommandDeposit {
		return ErrInvalidInstructionData
	}

	offset := 1
	binary.GetUint64(data, &args.Amount, &offset)
	return nil
}

type WithdrawInstructionArgs struct {
	Amount uint64
}

func (args *WithdrawInstructionArgs) Marshal() []byte {
	data := make([]byte, 1+8)

	var offset int
	binary.PutUint8(data, uint8(CommandWithdraw), &offset)
	binary.PutUint64(data, args.Amount, &offset)

	return data
}

func (args *WithdrawInstructionArgs) Unmarshal(data []byte) error {
	if len(data) != 1+8 || Command(data[0]) != CommandWithdraw {
		return ErrInvalidInstructionData
	}

	offset := 1
	binary.GetUint64(data, &args.Amount, &offset)
	return nil
}
