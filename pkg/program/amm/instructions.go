package amm

import (
	"crypto/ed25519"

	"github.com/fili8-labs/onchain/pkg/solana/binary"
)

// Command is the one-byte instruction opcode.
type Command uint8

const (
	CommandInitialize Command = iota
	CommandDeposit
	CommandWithdraw
	CommandSwap
	CommandSetLocked
)

// Payloads are little-endian fixed-width fields; the optional authority is
// a 1-byte tag plus key.

type InitializeInstructionArgs struct {
	Seed      uint64
	Authority ed25519.PublicKey // optional
	Fee       uint16
}

func (args *InitializeInstructionArgs) Marshal() []byte {
	data := make([]byte, 1+8+1+len(args.Authority)+2)

	var offset int
	binary.PutUint8(data, uint8(CommandInitialize), &offset)
	binary.PutUint64(data, args.Seed, &offset)
	binary.PutOptionalKey(data, args.Authority, &offset)
	binary.PutUint16(data, args.Fee, &offset)

	return data[:offset]
}

func (args *InitializeInstructionArgs) Unmarshal(data []byte) error {
	if len(data) < 1+8+1+2 || Command(data[0]) != CommandInitialize {
		return ErrInvalidInstructionData
	}

	offset := 1
	ok := binary.GetUint64(data, &args.Seed, &offset) &&
		binary.GetOptionalKey(data, &args.Authority, &offset) &&
		binary.GetUint16(data, &args.Fee, &offset)
	if !ok {
		return ErrInvalidInstructionData
	}
	return nil
}

type DepositInstructionArgs struct {
	Amount uint64 // LP tokens to mint
	MaxX   uint64
	MaxY   uint64
}

func (args *DepositInstructionArgs) Marshal() []byte {
	data := make([]byte, 1+8+8+8)

	var offset int
	binary.PutUint8(data, uint8(CommandDeposit), &offset)
	binary.PutUint64(data, args.Amount, &offset)
	binary.PutUint64(data, args.MaxX, &offset)
	binary.PutUint64(data, args.MaxY, &offset)

	return data
}

func (args *DepositInstructionArgs) Unmarshal(data []byte) error {
	if len(data) != 1+8+8+8 || Command(data[0]) != CommandDeposit {
		return ErrInvalidInstructionData
	}

	offset := 1
	binary.GetUint64(data, &args.Amount, &offset)
	binary.GetUint64(data, &args.MaxX, &offset)
	binary.GetUint64(data, &args.MaxY, &offset)
	return nil
}

type WithdrawInstructionArgs struct {
	Amount uint64 // LP tokens to burn
	MinX   uint64
	MinY   uint64
}

func (args *WithdrawInstructionArgs) Marshal() []byte {
	data := make([]byte, 1+8+8+8)

	var offset int
	binary.PutUint8(data, uint8(CommandWithdraw), &offset)
	binary.PutUint64(data, args.Amount, &offset)
	binary.PutUint64(data, args.MinX, &offset)
	binary.PutUint64(data, args.MinY, &offset)

	return data
}

func (args *WithdrawInstructionArgs) Unmarshal(data []byte) error {
	if len(data) != 1+8+8+8 || Command(data[0]) != CommandWithdraw {
		return ErrInvalidInstructionData
	}

	offset := 1
	binary.GetUint64(data, &args.Amount, &offset)
	binary.GetUint64(data, &args.MinX, &offset)
	binary.GetUint64(data, &args.MinY, &offset)
	return nil
}

type SwapInstructionArgs struct {
	IsX    bool
	Amount uint64
	Min    uint64
}

func (args *SwapInstructionArgs) Marshal() []byte {
	data := make([]byte, 1+1+8+8)

	var offset int
	binary.PutUint8(data, uint8(CommandSwap), &offset)
	binary.PutBool(data, args.IsX, &offset)
	binary.PutUint64(data, args.Amount, &offset)
	binary.PutUint64(data, args.Min, &offset)

	return data
}

func (args *SwapInstructionArgs) Unmarshal(data []byte) error {
	if len(data) != 1+1+8+8 || Command(data[0]) != CommandSwap {
		return ErrInvalidInstructionData
	}

	offset := 1
	binary.GetBool(data, &args.IsX, &offset)
	binary.GetUint64(data, &args.Amount, &offset)
	binary.GetUint64(data, &args.Min, &offset)
	return nil
}

type SetLockedInstructionArgs struct {
	Locked bool
}

func (args *SetLockedInstructionArgs) Marshal() []byte {
	data := make([]byte, 1+1)

	var offset int
	binary.PutUint8(data, uint8(CommandSetLocked), &offset)
	binary.PutBool(data, args.Locked, &offset)

	return data
}

func (args *SetLockedInstructionArgs) Unmarshal(data []byte) error {
	if len(data) != 1+1 || Command(data[0]) != CommandSetLocked {
		return ErrInvalidInstructionData
	}

	offset := 1
	binary.GetBool(data, &args.Locked, &offset)
	return nil
}
