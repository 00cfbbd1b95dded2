package escrow

import (
	"github.com/fili8-labs/onchain/pkg/solana/binary"
)

// Command is the one-byte instruction opcode.
type Command uint8

const (
	CommandMake Command = iota
	CommandTake
	CommandRefund
)

type MakeInstructionArgs struct {
	Seed    uint64
	Receive uint64
	Deposit uint64
}

func (args *MakeInstructionArgs) Marshal() []byte {
	data := make([]byte, 1+8+8+8)

	var offset int
	binary.PutUint8(data, uint8(CommandMake), &offset)
	binary.PutUint64(data, args.Seed, &offset)
	binary.PutUint64(data, args.Receive, &offset)
	binary.PutUint64(data, args.Deposit, &offset)

	return data
}

func (args *MakeInstructionArgs) Unmarshal(data []byte) error {
	if len(data) != 1+8+8+8 || Command(data[0]) != CommandMake {
		return ErrInvalidInstructionData
	}

	offset := 1
	binary.GetUint64(data, &args.Seed, &offset)
	binary.GetUint64(data, &args.Receive, &offset)
	binary.GetUint64(data, &args.Deposit, &offset)
	return nil
}

// Take and Refund carry no payload beyond the opcode.

type TakeInstructionArgs struct {
}

func (args *TakeInstructionArgs) Marshal() []byte {
	return []byte{uint8(CommandTake)}
}

func (args *TakeInstructionArgs) Unmarshal(data []byte) error {
	if len(data) != 1 || Command(data[0]) != CommandTake {
		return ErrInvalidInstructionData
	}
	return nil
}

type RefundInstructionArgs struct {
}

func (args *RefundInstructionArgs) Marshal() []byte {
	return []byte{uint8(CommandRefund)}
}

func (args *RefundInstructionArgs) Unmarshal(data []byte) error {
	if len(data) != 1 || Command(data[0]) != CommandRefund {
		return ErrInvalidInstructionData
	}
	return nil
}
