package amm

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrInvalidAccountData     = errors.New("unexpected account data")
	ErrInvalidInstructionData = errors.New("unexpected instruction data")
)

// Error is the program's flat error enum. The numeric code and message are
// the stable external contract.
type Error uint32

const (
	ErrInvalidFee Error = iota + 6000
	ErrSameMint
	ErrZeroAmount
	ErrPoolLocked
	ErrSlippageX
	ErrSlippageY
	ErrSlippageOut
	ErrInsufficientLiquidity
	ErrInvalidAuthority
	ErrOverflow
	ErrUnderflow
	ErrDivisionByZero
)

var errorMessages = map[Error]string{
	ErrInvalidFee:            "fee exceeds 10,000 basis points",
	ErrSameMint:              "mint x and mint y must differ",
	ErrZeroAmount:            "amount must be greater than zero",
	ErrPoolLocked:            "pool is locked",
	ErrSlippageX:             "required x exceeds the provided maximum",
	ErrSlippageY:             "required y exceeds the provided maximum",
	ErrSlippageOut:           "output is below the provided minimum",
	ErrInsufficientLiquidity: "insufficient liquidity for the swap",
	ErrInvalidAuthority:      "signer is not the pool authority",
	ErrOverflow:              "arithmetic overflow",
	ErrUnderflow:             "arithmetic underflow",
	ErrDivisionByZero:        "division by zero",
}

func (e Error) Message() string {
	return errorMessages[e]
}

func (e Error) Error() string {
	return fmt.Sprintf("custom program error %d: %s", uint32(e), e.Message())
}
