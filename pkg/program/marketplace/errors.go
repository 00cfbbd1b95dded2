package marketplace

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
	ErrInvalidName Error = iota + 6000
	ErrInvalidFee
	ErrInvalidPrice
	ErrNotMaker
)

var errorMessages = map[Error]string{
	ErrInvalidName:  "name is empty or exceeds the reserved length",
	ErrInvalidFee:   "fee exceeds 10,000 basis points",
	ErrInvalidPrice: "price must be greater than zero",
	ErrNotMaker:     "signer is not the listing maker",
}

func (e Error) Message() string {
	return errorMessages[e]
}

func (e Error) Error() string {
	return fmt.Sprintf("custom program error %d: %s", uint32(e), e.Message())
}
