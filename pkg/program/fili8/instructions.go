package fili8

import (
	"crypto/ed25519"

	"github.com/fili8-labs/onchain/pkg/solana/binary"
)

// Command is the one-byte instruction opcode.
type Command uint8

const (
	CommandInitializeConfig Command = iota
	CommandUpdateConfig
	CommandCreateMerchant
	CommandUpdateMerchant
	CommandCreateAffiliate
	CommandUpdateAffiliate
	CommandCreateCampaign
	CommandUpdateCampaign
	CommandJoinCampaign
	CommandReportConversion
	CommandCloseCampaign
	CommandWithdrawFees
)

type InitializeConfigInstructionArgs struct {
	Admin               ed25519.PublicKey // optional, defaults to the signer
	CampaignCreationFee uint16
	CommissionFee       uint16
}

func (args *InitializeConfigInstructionArgs) Marshal() []byte {
	data := make([]byte, 1+1+len(args.Admin)+2+2)

	var offset int
	binary.PutUint8(data, uint8(CommandInitializeConfig), &offset)
	binary.PutOptionalKey(data, args.Admin, &offset)
	binary.PutUint16(data, args.CampaignCreationFee, &offset)
	binary.PutUint16(data, args.CommissionFee, &offset)

	return data[:offset]
}

func (args *InitializeConfigInstructionArgs) Unmarshal(data []byte) error {
	if len(data) < 1+1+2+2 || Command(data[0]) != CommandInitializeConfig {
		return ErrInvalidInstructionData
	}

	offset := 1
	ok := binary.GetOptionalKey(data, &args.Admin, &offset) &&
		binary.GetUint16(data, &args.CampaignCreationFee, &offset) &&
		binary.GetUint16(data, &args.CommissionFee, &offset)
	if !ok {
		return ErrInvalidInstructionData
	}
	return nil
}

type UpdateConfigInstructionArgs struct {
	CampaignCreationFee *uint16
	CommissionFee       *uint16
}

func (args *UpdateConfigInstructionArgs) Marshal() []byte {
	data := make([]byte, 1+3+3)

	var offset int
	binary.PutUint8(data, uint8(CommandUpdateConfig), &offset)
	binary.PutOptionalUint16(data, args.CampaignCreationFee, &offset)
	binary.PutOptionalUint16(data, args.CommissionFee, &offset)

	return data[:offset]
}

func (args *UpdateConfigInstructionArgs) Unmarshal(data []byte) error {
	if len(data) < 1+1+1 || Command(data[0]) != CommandUpdateConfig {
		return ErrInvalidInstructionData
	}

	offset := 1
	ok := binary.GetOptionalUint16(data, &args.CampaignCreationFee, &offset) &&
		binary.GetOptionalUint16(data, &args.CommissionFee, &offset)
	if !ok {
		return ErrInvalidInstructionData
	}
	return nil
}

type CreateMerchantInstructionArgs struct {
	Name        string
	Description string
}

func (args *CreateMerchantInstructionArgs) Marshal() []byte {
	data := make([]byte, 1+4+len(args.Name)+4+len(args.Description))

	var offset int
	binary.PutUint8(data, uint8(CommandCreateMerchant), &offset)
	binary.PutString(data, args.Name, &offset)
	binary.PutString(data, args.Description, &offset)

	return data
}

func (args *CreateMerchantInstructionArgs) Unmarshal(data []byte) error {
	if len(data) < 1+4+4 || Command(data[0]) != CommandCreateMerchant {
		return ErrInvalidInstructionData
	}

	offset := 1
	ok := binary.GetString(data, &args.Name, &offset) &&
		binary.GetString(data, &args.Description, &offset)
	if !ok {
		return ErrInvalidInstructionData
	}
	return nil
}

type UpdateMerchantInstructionArgs struct {
	Name        *string
	Description *string
}

func (args *UpdateMerchantInstructionArgs) Marshal() []byte {
	size := 1 + 1 + 1
	if args.Name != nil {
		size += 4 + len(*args.Name)
	}
	if args.Description != nil {
		size += 4 + len(*args.Description)
	}
	data := make([]byte, size)

	var offset int
	binary.PutUint8(data, uint8(CommandUpdateMerchant), &offset)
	binary.PutOptionalString(data, args.Name, &offset)
	binary.PutOptionalString(data, args.Description, &offset)

	return data
}

func (args *UpdateMerchantInstructionArgs) Unmarshal(data []byte) error {
	if len(data) < 1+1+1 || Command(data[0]) != CommandUpdateMerchant {
		return ErrInvalidInstructionData
	}

	offset := 1
	ok := binary.GetOptionalString(data, &args.Name, &offset) &&
		binary.GetOptionalString(data, &args.Description, &offset)
	if !ok {
		return ErrInvalidInstructionData
	}
	return nil
}

type CreateAffiliateInstructionArgs struct {
	Name          string
	Description   string
	PayoutAddress ed25519.PublicKey
}

func (args *CreateAffiliateInstructionArgs) Marshal() []byte {
	data := make([]byte, 1+4+len(args.Name)+4+len(args.Description)+32)

	var offset int
	binary.PutUint8(data, uint8(CommandCreateAffiliate), &offset)
	binary.PutString(data, args.Name, &offset)
	binary.PutString(data, args.Description, &offset)
	binary.PutKey(data, args.PayoutAddress, &offset)

	return data
}

func (args *CreateAffiliateInstructionArgs) Unmarshal(data []byte) error {
	if len(data) < 1+4+4+32 || Command(data[0]) != CommandCreateAffiliate {
		return ErrInvalidInstructionData
	}

	offset := 1
	ok := binary.GetString(data, &args.Name, &offset) &&
		binary.GetString(data, &args.Description, &offset) &&
		binary.GetKey(data, &args.PayoutAddress, &offset)
	if !ok {
		return ErrInvalidInstructionData
	}
	return nil
}

type UpdateAffiliateInstructionArgs struct {
	Name          *string
	Description   *string
	PayoutAddress ed25519.PublicKey // optional
}

func (args *UpdateAffiliateInstructionArgs) Marshal() []byte {
	size := 1 + 1 + 1 + 1 + len(args.PayoutAddress)
	if args.Name != nil {
		size += 4 + len(*args.Name)
	}
	if args.Description != nil {
		size += 4 + len(*args.Description)
	}
	data := make([]byte, size)

	var offset int
	binary.PutUint8(data, uint8(CommandUpdateAffiliate), &offset)
	binary.PutOptionalString(data, args.Name, &offset)
	binary.PutOptionalString(data, args.Description, &offset)
	binary.PutOptionalKey(data, args.PayoutAddress, &offset)

	return data
}

func (args *UpdateAffiliateInstructionArgs) Unmarshal(data []byte) error {
	if len(data) < 1+1+1+1 || Command(data[0]) != CommandUpdateAffiliate {
		return ErrInvalidInstructionData
	}

	offset := 1
	ok := binary.GetOptionalString(data, &args.Name, &offset) &&
		binary.GetOptionalString(data, &args.Description, &offset) &&
		binary.GetOptionalKey(data, &args.PayoutAddress, &offset)
	if !ok {
		return ErrInvalidInstructionData
	}
	return nil
}

type CreateCampaignInstructionArgs struct {
	Seed                  uint64
	Name                  string
	Description           string
	ProductURI            string
	Budget                uint64
	CommissionPerReferral uint64
	EndsAt                *int64
}

func (args *CreateCampaignInstructionArgs) Marshal() []byte {
	size := 1 + 8 + 4 + len(args.Name) + 4 + len(args.Description) + 4 + len(args.ProductURI) + 8 + 8 + 9
	data := make([]byte, size)

	var offset int
	binary.PutUint8(data, uint8(CommandCreateCampaign), &offset)
	binary.PutUint64(data, args.Seed, &offset)
	binary.PutString(data, args.Name, &offset)
	binary.PutString(data, args.Description, &offset)
	binary.PutString(data, args.ProductURI, &offset)
	binary.PutUint64(data, args.Budget, &offset)
	binary.PutUint64(data, args.CommissionPerReferral, &offset)
	binary.PutOptionalInt64(data, args.EndsAt, &offset)

	return data[:offset]
}

func (args *CreateCampaignInstructionArgs) Unmarshal(data []byte) error {
	if len(data) < 1+8+4+4+4+8+8+1 || Command(data[0]) != CommandCreateCampaign {
		return ErrInvalidInstructionData
	}

	offset := 1
	ok := binary.GetUint64(data, &args.Seed, &offset) &&
		binary.GetString(data, &args.Name, &offset) &&
		binary.GetString(data, &args.Description, &offset) &&
		binary.GetString(data, &args.ProductURI, &offset) &&
		binary.GetUint64(data, &args.Budget, &offset) &&
		binary.GetUint64(data, &args.CommissionPerReferral, &offset) &&
		binary.GetOptionalInt64(data, &args.EndsAt, &offset)
	if !ok {
		return ErrInvalidInstructionData
	}
	return nil
}

type UpdateCampaignInstructionArgs struct {
	Name                  *string
	Description           *string
	ProductURI            *string
	CommissionPerReferral *uint64
	EndsAt                *int64
	AdditionalBudget      *uint64
}

func (args *UpdateCampaignInstructionArgs) Marshal() []byte {
	size := 1 + 3 + 9 + 9 + 9
	if args.Name != nil {
		size += 4 + len(*args.Name)
	}
	if args.Description != nil {
		size += 4 + len(*args.Description)
	}
	if args.ProductURI != nil {
		size += 4 + len(*args.ProductURI)
	}
	data := make([]byte, size)

	var offset int
	binary.PutUint8(data, uint8(CommandUpdateCampaign), &offset)
	binary.PutOptionalString(data, args.Name, &offset)
	binary.PutOptionalString(data, args.Description, &offset)
	binary.PutOptionalString(data, args.ProductURI, &offset)
	binary.PutOptionalUint64(data, args.CommissionPerReferral, &offset)
	binary.PutOptionalInt64(data, args.EndsAt, &offset)
	binary.PutOptionalUint64(data, args.AdditionalBudget, &offset)

	return data[:offset]
}

func (args *UpdateCampaignInstructionArgs) Unmarshal(data []byte) error {
	if len(data) < 1+6 || Command(data[0]) != CommandUpdateCampaign {
		return ErrInvalidInstructionData
	}

	offset := 1
	ok := binary.GetOptionalString(data, &args.Name, &offset) &&
		binary.GetOptionalString(data, &args.Description, &offset) &&
		binary.GetOptionalString(data, &args.ProductURI, &offset) &&
		binary.GetOptionalUint64(data, &args.CommissionPerReferral, &offset) &&
		binary.GetOptionalInt64(data, &args.EndsAt, &offset) &&
		binary.GetOptionalUint64(data, &args.AdditionalBudget, &offset)
	if !ok {
		return ErrInvalidInstructionData
	}
	return nil
}

// The remaining instructions carry no payload beyond the opcode; their
// inputs are account references.

type JoinCampaignInstructionArgs struct {
}

func (args *JoinCampaignInstructionArgs) Marshal() []byte {
	return []byte{uint8(CommandJoinCampaign)}
}

func (args *JoinCampaignInstructionArgs) Unmarshal(data []byte) error {
	if len(data) != 1 || Command(data[0]) != CommandJoinCampaign {
		return ErrInvalidInstructionData
	}
	return nil
}

type ReportConversionInstructionArgs struct {
}

func (args *ReportConversionInstructionArgs) Marshal() []byte {
	return []byte{uint8(CommandReportConversion)}
}

func (args *ReportConversionInstructionArgs) Unmarshal(data []byte) error {
	if len(data) != 1 || Command(data[0]) != CommandReportConversion {
		return ErrInvalidInstructionData
	}
	return nil
}

type CloseCampaignInstructionArgs struct {
}

func (args *CloseCampaignInstructionArgs) Marshal() []byte {
	return []byte{uint8(CommandCloseCampaign)}
}

func (args *CloseCampaignInstructionArgs) Unmarshal(data []byte) error {
	if len(data) != 1 || Command(data[0]) != CommandCloseCampaign {
		return ErrInvalidInstructionData
	}
	return nil
}

type WithdrawFeesInstructionArgs struct {
}

func (args *WithdrawFeesInstructionArgs) Marshal() []byte {
	return []byte{uint8(CommandWithdrawFees)}
}

func (args *WithdrawFeesInstructionArgs) Unmarshal(data []byte) error {
	if len(data) != 1 || Command(data[0]) != CommandWithdrawFees {
		return ErrInvalidInstructionData
	}
	return nil
}
