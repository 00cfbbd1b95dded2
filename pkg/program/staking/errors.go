package staking

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
	ErrMaxStakeReached Error = iota + 6000
	ErrFreezePeriodNotPassed
	ErrNotStakeOwner
)

var errorMessages = map[Error]string{
	ErrMaxStakeReached:       "max stake reached",
	ErrFreezePeriodNotPassed: "freeze period not passed",
	ErrNotStakeOwner:         "signer did not stake this nft",
}

func (e Error) Message() string {
	return errorMessages[e]
}

func (e Error) Error() string {
	return fmt.Sprintf("custom program error %d: %s", uint32(e), e.Message())
}
