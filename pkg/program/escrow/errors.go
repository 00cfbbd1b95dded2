package escrow

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrInvalidAccountData     = errors.New("unexpected account data")
	ErrInvalidInstructionData = errors.New("unexpected instruction data")
)

type Error uint32

const (
	ErrZeroAmount Error = iota + 6000
	ErrSameMint
	ErrNotMaker
)

var errorMessages = map[Error]string{
	ErrZeroAmount: "amount must be greater than zero",
	ErrSameMint:   "deposit and receive mints must differ",
	ErrNotMaker:   "signer is not the maker",
}

func (e Error) Message() string {
	return errorMessages[e]
}

func (e Error) Error() string {
	return fmt.Sprintf("custom program error %d: %s", uint32(e), e.Message())
}
