package fili8

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/fili8-labs/onchain/pkg/solana/binary"
)

const ConfigSize = (8 + // discriminator
	32 + // admin
	2 + // campaign_creation_fee
	2 + // commission_fee
	1 + // bump
	1) // treasury_bump

const MerchantSize = (8 + // discriminator
	4 + MaxNameLength + // name
	4 + MaxDescriptionLength + // description
	4 + // total_campaigns
	8 + // total_spent
	1) // bump

const AffiliateSize = (8 + // discriminator
	32 + // owner
	4 + MaxNameLength + // name
	4 + MaxDescriptionLength + // description
	32 + // payout_address
	4 + // total_campaigns
	8 + // total_earned
	1) // bump

const CampaignSize = (8 + // discriminator
	8 + // seed
	32 + // owner
	4 + MaxNameLength + // name
	4 + MaxDescriptionLength + // description
	4 + MaxProductURILength + // product_uri
	8 + // total_budget
	8 + // available_budget
	8 + // commission_per_referral
	4 + // successful_referrals
	8 + // created_at
	1 + 8 + // ends_at option
	1 + // is_paused
	1 + // is_closed
	4 + // total_affiliates
	1 + // campaign_bump
	1) // escrow_bump

const CampaignAffiliateSize = (8 + // discriminator
	32 + // campaign
	32 + // affiliate
	4 + // successful_referrals
	8 + // total_earned
	1) // bump

var (
	ConfigDiscriminator            = []byte{byte(AccountTypeConfig), 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	MerchantDiscriminator          = []byte{byte(AccountTypeMerchant), 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	AffiliateDiscriminator         = []byte{byte(AccountTypeAffiliate), 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	CampaignDiscriminator          = []byte{byte(AccountTypeCampaign), 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	CampaignAffiliateDiscriminator = []byte{byte(AccountTypeCampaignAffiliate), 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
)

// Config is the singleton protocol record: the admin and the two protocol
// fees, both in basis points.
type Config struct {
	Admin               ed25519.PublicKey
	CampaignCreationFee uint16
	CommissionFee       uint16
	Bump                uint8
	TreasuryBump        uint8
}

func (obj *Config) Marshal() []byte {
	data := make([]byte, ConfigSize)

	var offset int
	binary.PutDiscriminator(data, ConfigDiscriminator, &offset)
	binary.PutKey(data, obj.Admin, &offset)
	binary.PutUint16(data, obj.CampaignCreationFee, &offset)
	binary.PutUint16(data, obj.CommissionFee, &offset)
	binary.PutUint8(data, obj.Bump, &offset)
	binary.PutUint8(data, obj.TreasuryBump, &offset)

	return data
}

func (obj *Config) Unmarshal(data []byte) error {
	if len(data) < ConfigSize {
		return ErrInvalidAccountData
	}

	var offset int

	var discriminator []byte
	binary.GetDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, ConfigDiscriminator) {
		return ErrInvalidAccountData
	}

	binary.GetKey(data, &obj.Admin, &offset)
	binary.GetUint16(data, &obj.CampaignCreationFee, &offset)
	binary.GetUint16(data, &obj.CommissionFee, &offset)
	binary.GetUint8(data, &obj.Bump, &offset)
	binary.GetUint8(data, &obj.TreasuryBump, &offset)

	return nil
}

func (obj *Config) String() string {
	return fmt.Sprintf(
		"Config{admin=%s,campaign_creation_fee=%d,commission_fee=%d}",
		base58.Encode(obj.Admin),
		obj.CampaignCreationFee,
		obj.CommissionFee,
	)
}

// Merchant aggregates a merchant's campaigns and spend.
type Merchant struct {
	Name           string
	Description    string
	TotalCampaigns uint32
	TotalSpent     uint64
	Bump           uint8
}

func (obj *Merchant) Marshal() []byte {
	data := make([]byte, MerchantSize)

	var offset int
	binary.PutDiscriminator(data, MerchantDiscriminator, &offset)
	binary.PutString(data, obj.Name, &offset)
	binary.PutString(data, obj.Description, &offset)
	binary.PutUint32(data, obj.TotalCampaigns, &offset)
	binary.PutUint64(data, obj.TotalSpent, &offset)
	binary.PutUint8(data, obj.Bump, &offset)

	return data[:offset]
}

func (obj *Merchant) Unmarshal(data []byte) error {
	var offset int

	var discriminator []byte
	if !binary.GetDiscriminator(data, &discriminator, &offset) || !bytes.Equal(discriminator, MerchantDiscriminator) {
		return ErrInvalidAccountData
	}

	ok := binary.GetString(data, &obj.Name, &offset) &&
		binary.GetString(data, &obj.Description, &offset) &&
		binary.GetUint32(data, &obj.TotalCampaigns, &offset) &&
		binary.GetUint64(data, &obj.TotalSpent, &offset) &&
		binary.GetUint8(data, &obj.Bump, &offset)
	if !ok {
		return ErrInvalidAccountData
	}

	return nil
}

// Affiliate aggregates an affiliate's enrollments and earnings. Conversions
// pay out to PayoutAddress, which need not be the owner.
type Affiliate struct {
	Owner          ed25519.PublicKey
	Name           string
	Description    string
	PayoutAddress  ed25519.PublicKey
	TotalCampaigns uint32
	TotalEarned    uint64
	Bump           uint8
}

func (obj *Affiliate) Marshal() []byte {
	data := make([]byte, AffiliateSize)

	var offset int
	binary.PutDiscriminator(data, AffiliateDiscriminator, &offset)
	binary.PutKey(data, obj.Owner, &offset)
	binary.PutString(data, obj.Name, &offset)
	binary.PutString(data, obj.Description, &offset)
	binary.PutKey(data, obj.PayoutAddress, &offset)
	binary.PutUint32(data, obj.TotalCampaigns, &offset)
	binary.PutUint64(data, obj.TotalEarned, &offset)
	binary.PutUint8(data, obj.Bump, &offset)

	return data[:offset]
}

func (obj *Affiliate) Unmarshal(data []byte) error {
	var offset int

	var discriminator []byte
	if !binary.GetDiscriminator(data, &discriminator, &offset) || !bytes.Equal(discriminator, AffiliateDiscriminator) {
		return ErrInvalidAccountData
	}

	ok := binary.GetKey(data, &obj.Owner, &offset) &&
		binary.GetString(data, &obj.Name, &offset) &&
		binary.GetString(data, &obj.Description, &offset) &&
		binary.GetKey(data, &obj.PayoutAddress, &offset) &&
		binary.GetUint32(data, &obj.TotalCampaigns, &offset) &&
		binary.GetUint64(data, &obj.TotalEarned, &offset) &&
		binary.GetUint8(data, &obj.Bump, &offset)
	if !ok {
		return ErrInvalidAccountData
	}

	return nil
}

// Campaign is a merchant's funded campaign. AvailableBudget tracks what the
// escrow can still pay out; the record auto-pauses when it drops below the
// commission for one more referral.
type Campaign struct {
	Seed                  uint64
	Owner                 ed25519.PublicKey
	Name                  string
	Description           string
	ProductURI            string
	TotalBudget           uint64
	AvailableBudget       uint64
	CommissionPerReferral uint64
	SuccessfulReferrals   uint32
	CreatedAt             int64
	EndsAt                *int64
	IsPaused              bool
	IsClosed              bool
	TotalAffiliates       uint32
	CampaignBump          uint8
	EscrowBump            uint8
}

func (obj *Campaign) Marshal() []byte {
	data := make([]byte, CampaignSize)

	var offset int
	binary.PutDiscriminator(data, CampaignDiscriminator, &offset)
	binary.PutUint64(data, obj.Seed, &offset)
	binary.PutKey(data, obj.Owner, &offset)
	binary.PutString(data, obj.Name, &offset)
	binary.PutString(data, obj.Description, &offset)
	binary.PutString(data, obj.ProductURI, &offset)
	binary.PutUint64(data, obj.TotalBudget, &offset)
	binary.PutUint64(data, obj.AvailableBudget, &offset)
	binary.PutUint64(data, obj.CommissionPerReferral, &offset)
	binary.PutUint32(data, obj.SuccessfulReferrals, &offset)
	binary.PutInt64(data, obj.CreatedAt, &offset)
	binary.PutOptionalInt64(data, obj.EndsAt, &offset)
	binary.PutBool(data, obj.IsPaused, &offset)
	binary.PutBool(data, obj.IsClosed, &offset)
	binary.PutUint32(data, obj.TotalAffiliates, &offset)
	binary.PutUint8(data, obj.CampaignBump, &offset)
	binary.PutUint8(data, obj.EscrowBump, &offset)

	return data[:offset]
}

func (obj *Campaign) Unmarshal(data []byte) error {
	var offset int

	var discriminator []byte
	if !binary.GetDiscriminator(data, &discriminator, &offset) || !bytes.Equal(discriminator, CampaignDiscriminator) {
		return ErrInvalidAccountData
	}

	ok := binary.GetUint64(data, &obj.Seed, &offset) &&
		binary.GetKey(data, &obj.Owner, &offset) &&
		binary.GetString(data, &obj.Name, &offset) &&
		binary.GetString(data, &obj.Description, &offset) &&
		binary.GetString(data, &obj.ProductURI, &offset) &&
		binary.GetUint64(data, &obj.TotalBudget, &offset) &&
		binary.GetUint64(data, &obj.AvailableBudget, &offset) &&
		binary.GetUint64(data, &obj.CommissionPerReferral, &offset) &&
		binary.GetUint32(data, &obj.SuccessfulReferrals, &offset) &&
		binary.GetInt64(data, &obj.CreatedAt, &offset) &&
		binary.GetOptionalInt64(data, &obj.EndsAt, &offset) &&
		binary.GetBool(data, &obj.IsPaused, &offset) &&
		binary.GetBool(data, &obj.IsClosed, &offset) &&
		binary.GetUint32(data, &obj.TotalAffiliates, &offset) &&
		binary.GetUint8(data, &obj.CampaignBump, &offset) &&
		binary.GetUint8(data, &obj.EscrowBump, &offset)
	if !ok {
		return ErrInvalidAccountData
	}

	return nil
}

func (obj *Campaign) String() string {
	return fmt.Sprintf(
		"Campaign{seed=%d,owner=%s,name=%q,available_budget=%d,paused=%t,closed=%t}",
		obj.Seed,
		base58.Encode(obj.Owner),
		obj.Name,
		obj.AvailableBudget,
		obj.IsPaused,
		obj.IsClosed,
	)
}

// CampaignAffiliate is the per-enrollment counter record.
type CampaignAffiliate struct {
	Campaign            ed25519.PublicKey
	Affiliate           ed25519.PublicKey
	SuccessfulReferrals uint32
	TotalEarned         uint64
	Bump                uint8
}

func (obj *CampaignAffiliate) Marshal() []byte {
	data := make([]byte, CampaignAffiliateSize)

	var offset int
	binary.PutDiscriminator(data, CampaignAffiliateDiscriminator, &offset)
	binary.PutKey(data, obj.Campaign, &offset)
	binary.PutKey(data, obj.Affiliate, &offset)
	binary.PutUint32(data, obj.SuccessfulReferrals, &offset)
	binary.PutUint64(data, obj.TotalEarned, &offset)
	binary.PutUint8(data, obj.Bump, &offset)

	return data
}

func (obj *CampaignAffiliate) Unmarshal(data []byte) error {
	if len(data) < CampaignAffiliateSize {
		return ErrInvalidAccountData
	}

	var offset int

	var discriminator []byte
	binary.GetDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, CampaignAffiliateDiscriminator) {
		return ErrInvalidAccountData
	}

	binary.GetKey(data, &obj.Campaign, &offset)
	binary.GetKey(data, &obj.Affiliate, &offset)
	binary.GetUint32(data, &obj.SuccessfulReferrals, &offset)
	binary.GetUint64(data, &obj.TotalEarned, &offset)
	binary.GetUint8(data, &obj.Bump, &offset)

	return nil
}
