package fili8

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
	ErrNameTooShort Error = iota + 6000
	ErrNameTooLong
	ErrDescriptionTooLong
	ErrInvalidProductURI
	ErrInvalidPayoutAddress
	ErrInvalidAdmin
	ErrInvalidCampaignOwner
	ErrInvalidCampaignPeriod
	ErrCampaignClosed
	ErrCampaignPaused
	ErrCampaignExpired
)

var errorMessages = map[Error]string{
	ErrNameTooShort:          "name is shorter than 10 bytes",
	ErrNameTooLong:           "name is longer than 50 bytes",
	ErrDescriptionTooLong:    "description is longer than 100 bytes",
	ErrInvalidProductURI:     "product uri is not a valid url",
	ErrInvalidPayoutAddress:  "payout address is invalid",
	ErrInvalidAdmin:          "signer is not the config admin",
	ErrInvalidCampaignOwner:  "signer does not own the campaign",
	ErrInvalidCampaignPeriod: "campaign end must be in the future",
	ErrCampaignClosed:        "campaign is closed",
	ErrCampaignPaused:        "campaign is paused",
	ErrCampaignExpired:       "campaign has expired",
}

func (e Error) Message() string {
	return errorMessages[e]
}

func (e Error) Error() string {
	return fmt.Sprintf("custom program error %d: %s", uint32(e), e.Message())
}
