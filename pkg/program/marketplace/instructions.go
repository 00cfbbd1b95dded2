package marketplace

import (
	"github.com/fili8-labs/onchain/pkg/solana/binary"
)

// Command is the one-byte instruction opcode.
type Command uint8

const (
	CommandInitialize Command = iota
	CommandList
	CommandDelist
	CommandPurchase
)

type InitializeInstructionArgs struct {
	Name string
	Fee  uint16
}

func (args *InitializeInstructionArgs) Marshal() []byte {
	data := make([]byte, 1+4+len(args.Name)+2)

	var offset int
	binary.PutUint8(data, uint8(CommandInitialize), &offset)
	binary.PutString(data, args.Name, &offset)
	binary.PutUint16(data, args.Fee, &offset)

	return data
}

func (args *InitializeInstructionArgs) Unmarshal(data []byte) error {
	if len(data) < 1+4+2 || Command(data[0]) != CommandInitialize {
		return ErrInvalidInstructionData
	}

	offset := 1
	ok := binary.GetString(data, &args.Name, &offset) &&
		binary.GetUint16(data, &args.Fee, &offset)
	if !ok {
		return ErrInvalidInstructionData
	}
	return nil
}

type ListInstructionArgs struct {
	Price uint64
}

func (args *ListInstructionArgs) Marshal() []byte {
	data := make([]byte, 1+8)

	var offset int
	binary.PutUint8(data, uint8(CommandList), &offset)
	binary.PutUint64(data, args.Price, &offset)

	return data
}

func (args *ListInstructionArgs) Unmarshal(data []byte) error {
	if len(data) != 1+8 || Command(data[0]) != CommandList {
		return ErrInvalidInstructionData
	}

	offset := 1
	binary.GetUint64(data, &args.Price, &offset)
	return nil
}

// Delist and Purchase carry no payload beyond the opcode.

type DelistInstructionArgs struct {
}

func (args *DelistInstructionArgs) Marshal() []byte {
	return []byte{uint8(CommandDelist)}
}

func (args *DelistInstructionArgs) Unmarshal(data []byte) error {
	if len(data) != 1 || Command(data[0]) != CommandDelist {
		return ErrInvalidInstructionData
	}
	return nil
}

type PurchaseInstructionArgs struct {
}

func (args *PurchaseInstructionArgs) Marshal() []byte {
	return []byte{uint8(CommandPurchase)}
}

func (args *PurchaseInstructionArgs) Unmarshal(data []byte) error {
	if len(data) != 1 || Command(data[0]) != CommandPurchase {
		return ErrInvalidInstructionData
	}
	return nil
}
