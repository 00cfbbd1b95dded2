package fili8

import (
	"bytes"
	"crypto/ed25519"
	"io"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/fili8-labs/onchain/pkg/runtime"
	"github.com/fili8-labs/onchain/pkg/safemath"
)

// Processor executes fili8 instructions against a ledger.
type Processor struct {
	log *logrus.Entry
}

func NewProcessor() *Processor {
	logger := logrus.New()
	logger.Out = io.Discard
	return &Processor{log: logrus.NewEntry(logger)}
}

func (p *Processor) WithLogger(log *logrus.Entry) *Processor {
	p.log = log
	return p
}

// CampaignUpdate is the set of optional campaign mutations. Nil fields are
// left unchanged.
type CampaignUpdate struct {
	Name                  *string
	Description           *string
	ProductURI            *string
	CommissionPerReferral *uint64
	EndsAt                *int64
	AdditionalBudget      *uint64
}

// InitializeConfig creates the singleton protocol record. The admin
// defaults to the signer when not provided. Fees are in basis points.
func (p *Processor) InitializeConfig(ledger *runtime.Ledger, signer, admin ed25519.PublicKey, campaignCreationFee, commissionFee uint16) (ed25519.PublicKey, error) {
	if len(admin) == 0 {
		admin = signer
	}

	configAddress, bump, err := GetConfigAddress()
	if err != nil {
		return nil, err
	}
	_, treasuryBump, err := GetTreasuryAddress()
	if err != nil {
		return nil, err
	}

	err = ledger.Execute(func(ex *runtime.Execution) error {
		account, err := ex.Create(configAddress, ProgramID, ConfigSize, signer)
		if err != nil {
			return err
		}

		config := &Config{
			Admin:               admin,
			CampaignCreationFee: campaignCreationFee,
			CommissionFee:       commissionFee,
			Bump:                bump,
			TreasuryBump:        treasuryBump,
		}
		account.StoreData(config.Marshal())
		return nil
	})
	if err != nil {
		return nil, err
	}

	p.log.WithFields(logrus.Fields{
		"instruction":           "initialize_config",
		"config":                logKey(configAddress),
		"campaign_creation_fee": campaignCreationFee,
		"commission_fee":        commissionFee,
	}).Debug("config initialized")

	return configAddress, nil
}

// UpdateConfig adjusts the protocol fees. Admin only.
func (p *Processor) UpdateConfig(ledger *runtime.Ledger, signer ed25519.PublicKey, campaignCreationFee, commissionFee *uint16) error {
	return ledger.Execute(func(ex *runtime.Execution) error {
		config, account, err := loadConfig(ex)
		if err != nil {
			return err
		}
		if !bytes.Equal(config.Admin, signer) {
			return ErrInvalidAdmin
		}

		if campaignCreationFee != nil {
			config.CampaignCreationFee = *campaignCreationFee
		}
		if commissionFee != nil {
			config.CommissionFee = *commissionFee
		}

		account.StoreData(config.Marshal())
		return nil
	})
}

// CreateMerchant registers the signer as a merchant.
func (p *Processor) CreateMerchant(ledger *runtime.Ledger, signer ed25519.PublicKey, name, description string) (ed25519.PublicKey, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}

	merchantAddress, bump, err := GetMerchantAddress(signer)
	if err != nil {
		return nil, err
	}

	err = ledger.Execute(func(ex *runtime.Execution) error {
		account, err := ex.Create(merchantAddress, ProgramID, MerchantSize, signer)
		if err != nil {
			return err
		}

		merchant := &Merchant{
			Name:        name,
			Description: description,
			Bump:        bump,
		}
		account.StoreData(merchant.Marshal())
		return nil
	})
	if err != nil {
		return nil, err
	}

	p.log.WithFields(logrus.Fields{
		"instruction": "create_merchant",
		"merchant":    logKey(merchantAddress),
	}).Debug("merchant created")

	return merchantAddress, nil
}

// UpdateMerchant updates the signer's merchant profile. Nil fields are left
// unchanged.
func (p *Processor) UpdateMerchant(ledger *runtime.Ledger, signer ed25519.PublicKey, name, description *string) error {
	return ledger.Execute(func(ex *runtime.Execution) error {
		_, merchant, account, err := loadMerchant(ex, signer)
		if err != nil {
			return err
		}

		if name != nil {
			if err := validateName(*name); err != nil {
				return err
			}
			merchant.Name = *name
		}
		if description != nil {
			if err := validateDescription(*description); err != nil {
				return err
			}
			merchant.Description = *description
		}

		account.StoreData(merchant.Marshal())
		return nil
	})
}

// CreateAffiliate registers the signer as an affiliate. The payout address
// receives conversion commissions and must be set.
func (p *Processor) CreateAffiliate(ledger *runtime.Ledger, signer ed25519.PublicKey, name, description string, payoutAddress ed25519.PublicKey) (ed25519.PublicKey, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}
	if len(payoutAddress) != ed25519.PublicKeySize || bytes.Equal(payoutAddress, runtime.SystemProgramID) {
		return nil, ErrInvalidPayoutAddress
	}

	affiliateAddress, bump, err := GetAffiliateAddress(signer)
	if err != nil {
		return nil, err
	}

	err = ledger.Execute(func(ex *runtime.Execution) error {
		account, err := ex.Create(affiliateAddress, ProgramID, AffiliateSize, signer)
		if err != nil {
			return err
		}

		affiliate := &Affiliate{
			Owner:         signer,
			Name:          name,
			Description:   description,
			PayoutAddress: payoutAddress,
			Bump:          bump,
		}
		account.StoreData(affiliate.Marshal())
		return nil
	})
	if err != nil {
		return nil, err
	}

	p.log.WithFields(logrus.Fields{
		"instruction": "create_affiliate",
		"affiliate":   logKey(affiliateAddress),
	}).Debug("affiliate created")

	return affiliateAddress, nil
}

// UpdateAffiliate updates the signer's affiliate profile. Nil fields are
// left unchanged.
func (p *Processor) UpdateAffiliate(ledger *runtime.Ledger, signer ed25519.PublicKey, name, description *string, payoutAddress ed25519.PublicKey) error {
	return ledger.Execute(func(ex *runtime.Execution) error {
		_, affiliate, account, err := loadAffiliate(ex, signer)
		if err != nil {
			return err
		}

		if name != nil {
			if err := validateName(*name); err != nil {
				return err
			}
			affiliate.Name = *name
		}
		if description != nil {
			if err := validateDescription(*description); err != nil {
				return err
			}
			affiliate.Description = *description
		}
		if len(payoutAddress) > 0 {
			if bytes.Equal(payoutAddress, runtime.SystemProgramID) {
				return ErrInvalidPayoutAddress
			}
			affiliate.PayoutAddress = payoutAddress
		}

		account.StoreData(affiliate.Marshal())
		return nil
	})
}

// CreateCampaign funds a new campaign: the budget moves into the campaign's
// escrow and the creation fee, a fraction of the budget, moves to the
// treasury.
func (p *Processor) CreateCampaign(ledger *runtime.Ledger, signer ed25519.PublicKey, seed uint64, name, description, productURI string, budget, commissionPerReferral uint64, endsAt *int64) (ed25519.PublicKey, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}
	if err := validateProductURI(productURI); err != nil {
		return nil, err
	}

	var campaignAddress ed25519.PublicKey
	err := ledger.Execute(func(ex *runtime.Execution) error {
		config, _, err := loadConfig(ex)
		if err != nil {
			return err
		}
		merchantAddress, merchant, merchantAccount, err := loadMerchant(ex, signer)
		if err != nil {
			return err
		}

		var campaignBump uint8
		campaignAddress, campaignBump, err = GetCampaignAddress(merchantAddress, seed)
		if err != nil {
			return err
		}
		escrow, escrowBump, err := GetEscrowAddress(campaignAddress)
		if err != nil {
			return err
		}

		account, err := ex.Create(campaignAddress, ProgramID, CampaignSize, signer)
		if err != nil {
			return err
		}

		campaign := &Campaign{
			Seed:                  seed,
			Owner:                 merchantAddress,
			Name:                  name,
			Description:           description,
			ProductURI:            productURI,
			TotalBudget:           budget,
			AvailableBudget:       budget,
			CommissionPerReferral: commissionPerReferral,
			CreatedAt:             ex.Clock(),
			EndsAt:                endsAt,
			CampaignBump:          campaignBump,
			EscrowBump:            escrowBump,
		}
		account.StoreData(campaign.Marshal())

		signerAuthority := runtime.SignerAuthority(signer)
		if err := ex.Transfer(signer, escrow, budget, signerAuthority); err != nil {
			return err
		}

		creationFee, err := safemath.MulDivFloor(uint64(config.CampaignCreationFee), budget, 10_000)
		if err != nil {
			return err
		}
		treasury, _, err := GetTreasuryAddress()
		if err != nil {
			return err
		}
		if err := ex.Transfer(signer, treasury, creationFee, signerAuthority); err != nil {
			return err
		}

		merchant.TotalCampaigns, err = safemath.CheckedAddU32(merchant.TotalCampaigns, 1)
		if err != nil {
			return err
		}
		merchant.TotalSpent, err = safemath.CheckedAddU64(merchant.TotalSpent, creationFee)
		if err != nil {
			return err
		}
		merchantAccount.StoreData(merchant.Marshal())
		return nil
	})
	if err != nil {
		return nil, err
	}

	p.log.WithFields(logrus.Fields{
		"instruction": "create_campaign",
		"campaign":    logKey(campaignAddress),
		"budget":      budget,
	}).Debug("campaign created")

	return campaignAddress, nil
}

// UpdateCampaign applies optional mutations to an open campaign owned by
// the signer's merchant. An additional budget tops up the escrow, pays the
// creation fee on the top-up, and un-pauses the campaign if the budget once
// again covers a referral.
func (p *Processor) UpdateCampaign(ledger *runtime.Ledger, signer, campaignAddress ed25519.PublicKey, update CampaignUpdate) error {
	return ledger.Execute(func(ex *runtime.Execution) error {
		config, _, err := loadConfig(ex)
		if err != nil {
			return err
		}
		merchantAddress, _, _, err := loadMerchant(ex, signer)
		if err != nil {
			return err
		}
		campaign, account, err := loadCampaign(ex, campaignAddress)
		if err != nil {
			return err
		}
		if !bytes.Equal(campaign.Owner, merchantAddress) {
			return ErrInvalidCampaignOwner
		}
		if campaign.IsClosed {
			return ErrCampaignClosed
		}

		if update.Name != nil {
			if err := validateName(*update.Name); err != nil {
				return err
			}
			campaign.Name = *update.Name
		}
		if update.Description != nil {
			if err := validateDescription(*update.Description); err != nil {
				return err
			}
			campaign.Description = *update.Description
		}
		if update.ProductURI != nil {
			if err := validateProductURI(*update.ProductURI); err != nil {
				return err
			}
			campaign.ProductURI = *update.ProductURI
		}
		if update.CommissionPerReferral != nil {
			campaign.CommissionPerReferral = *update.CommissionPerReferral
		}
		if update.EndsAt != nil {
			if *update.EndsAt <= ex.Clock() {
				return ErrInvalidCampaignPeriod
			}
			campaign.EndsAt = update.EndsAt
		}

		if update.AdditionalBudget != nil {
			additional := *update.AdditionalBudget

			escrow, _, err := GetEscrowAddress(campaignAddress)
			if err != nil {
				return err
			}
			signerAuthority := runtime.SignerAuthority(signer)
			if err := ex.Transfer(signer, escrow, additional, signerAuthority); err != nil {
				return err
			}

			fee, err := safemath.MulDivFloor(uint64(config.CampaignCreationFee), additional, 10_000)
			if err != nil {
				return err
			}
			treasury, _, err := GetTreasuryAddress()
			if err != nil {
				return err
			}
			if err := ex.Transfer(signer, treasury, fee, signerAuthority); err != nil {
				return err
			}

			campaign.TotalBudget, err = safemath.CheckedAddU64(campaign.TotalBudget, additional)
			if err != nil {
				return err
			}
			campaign.AvailableBudget, err = safemath.CheckedAddU64(campaign.AvailableBudget, additional)
			if err != nil {
				return err
			}

			if campaign.IsPaused && campaign.AvailableBudget >= campaign.CommissionPerReferral {
				campaign.IsPaused = false
			}
		}

		account.StoreData(campaign.Marshal())
		return nil
	})
}

// JoinCampaign enrolls the signer's affiliate in an open, unexpired
// campaign.
func (p *Processor) JoinCampaign(ledger *runtime.Ledger, signer, campaignAddress ed25519.PublicKey) (ed25519.PublicKey, error) {
	var campaignAffiliateAddress ed25519.PublicKey
	err := ledger.Execute(func(ex *runtime.Execution) error {
		affiliateAddress, affiliate, affiliateAccount, err := loadAffiliate(ex, signer)
		if err != nil {
			return err
		}
		campaign, campaignAccount, err := loadCampaign(ex, campaignAddress)
		if err != nil {
			return err
		}
		if campaign.IsClosed {
			return ErrCampaignClosed
		}
		if campaign.IsPaused {
			return ErrCampaignPaused
		}
		if campaign.EndsAt != nil && *campaign.EndsAt <= ex.Clock() {
			return ErrCampaignExpired
		}

		var bump uint8
		campaignAffiliateAddress, bump, err = GetCampaignAffiliateAddress(campaignAddress, affiliateAddress)
		if err != nil {
			return err
		}
		account, err := ex.Create(campaignAffiliateAddress, ProgramID, CampaignAffiliateSize, signer)
		if err != nil {
			return err
		}

		record := &CampaignAffiliate{
			Campaign:  campaignAddress,
			Affiliate: affiliateAddress,
			Bump:      bump,
		}
		account.StoreData(record.Marshal())

		campaign.TotalAffiliates, err = safemath.CheckedAddU32(campaign.TotalAffiliates, 1)
		if err != nil {
			return err
		}
		campaignAccount.StoreData(campaign.Marshal())

		affiliate.TotalCampaigns, err = safemath.CheckedAddU32(affiliate.TotalCampaigns, 1)
		if err != nil {
			return err
		}
		affiliateAccount.StoreData(affiliate.Marshal())
		return nil
	})
	if err != nil {
		return nil, err
	}

	p.log.WithFields(logrus.Fields{
		"instruction": "join_campaign",
		"campaign":    logKey(campaignAddress),
	}).Debug("campaign joined")

	return campaignAffiliateAddress, nil
}

// ReportConversion pays one referral commission out of the campaign escrow:
// the commission fee to the treasury, the remainder to the affiliate's
// payout address. Only the merchant owning the campaign may report. The
// campaign auto-pauses when the remaining budget no longer covers another
// referral.
func (p *Processor) ReportConversion(ledger *runtime.Ledger, signer, campaignAddress, affiliateOwner ed25519.PublicKey) error {
	err := ledger.Execute(func(ex *runtime.Execution) error {
		config, _, err := loadConfig(ex)
		if err != nil {
			return err
		}
		merchantAddress, merchant, merchantAccount, err := loadMerchant(ex, signer)
		if err != nil {
			return err
		}
		campaign, campaignAccount, err := loadCampaign(ex, campaignAddress)
		if err != nil {
			return err
		}
		if !bytes.Equal(campaign.Owner, merchantAddress) {
			return ErrInvalidCampaignOwner
		}
		if campaign.IsClosed {
			return ErrCampaignClosed
		}
		if campaign.IsPaused {
			return ErrCampaignPaused
		}

		affiliateAddress, affiliate, affiliateAccount, err := loadAffiliate(ex, affiliateOwner)
		if err != nil {
			return err
		}
		campaignAffiliate, campaignAffiliateAccount, err := loadCampaignAffiliate(ex, campaignAddress, affiliateAddress)
		if err != nil {
			return err
		}

		commission := campaign.CommissionPerReferral
		fee, err := safemath.MulDivFloor(uint64(config.CommissionFee), commission, 10_000)
		if err != nil {
			return err
		}
		net, err := safemath.CheckedSubU64(commission, fee)
		if err != nil {
			return err
		}

		campaign.AvailableBudget, err = safemath.CheckedSubU64(campaign.AvailableBudget, commission)
		if err != nil {
			return err
		}

		escrow, _, err := GetEscrowAddress(campaignAddress)
		if err != nil {
			return err
		}
		treasury, _, err := GetTreasuryAddress()
		if err != nil {
			return err
		}

		escrowAuthority := runtime.DerivedAuthority(ProgramID, campaign.EscrowBump, escrowPrefix, campaignAddress)
		if err := ex.Transfer(escrow, treasury, fee, escrowAuthority); err != nil {
			return err
		}
		if err := ex.Transfer(escrow, affiliate.PayoutAddress, net, escrowAuthority); err != nil {
			return err
		}

		campaign.SuccessfulReferrals, err = safemath.CheckedAddU32(campaign.SuccessfulReferrals, 1)
		if err != nil {
			return err
		}
		if campaign.AvailableBudget < campaign.CommissionPerReferral {
			campaign.IsPaused = true
		}
		campaignAccount.StoreData(campaign.Marshal())

		merchant.TotalSpent, err = safemath.CheckedAddU64(merchant.TotalSpent, commission)
		if err != nil {
			return err
		}
		merchantAccount.StoreData(merchant.Marshal())

		affiliate.TotalEarned, err = safemath.CheckedAddU64(affiliate.TotalEarned, commission)
		if err != nil {
			return err
		}
		affiliateAccount.StoreData(affiliate.Marshal())

		campaignAffiliate.SuccessfulReferrals, err = safemath.CheckedAddU32(campaignAffiliate.SuccessfulReferrals, 1)
		if err != nil {
			return err
		}
		campaignAffiliate.TotalEarned, err = safemath.CheckedAddU64(campaignAffiliate.TotalEarned, commission)
		if err != nil {
			return err
		}
		campaignAffiliateAccount.StoreData(campaignAffiliate.Marshal())
		return nil
	})
	if err != nil {
		return err
	}

	p.log.WithFields(logrus.Fields{
		"instruction": "report_conversion",
		"campaign":    logKey(campaignAddress),
	}).Debug("conversion reported")
	return nil
}

// CloseCampaign sweeps the remaining escrow balance to the withdraw address
// and closes the campaign for good.
func (p *Processor) CloseCampaign(ledger *runtime.Ledger, signer, campaignAddress, withdrawAddress ed25519.PublicKey) error {
	err := ledger.Execute(func(ex *runtime.Execution) error {
		merchantAddress, _, _, err := loadMerchant(ex, signer)
		if err != nil {
			return err
		}
		campaign, account, err := loadCampaign(ex, campaignAddress)
		if err != nil {
			return err
		}
		if !bytes.Equal(campaign.Owner, merchantAddress) {
			return ErrInvalidCampaignOwner
		}
		if campaign.IsClosed {
			return ErrCampaignClosed
		}

		escrow, _, err := GetEscrowAddress(campaignAddress)
		if err != nil {
			return err
		}
		remaining := ex.Balance(escrow)
		if remaining > 0 {
			escrowAuthority := runtime.DerivedAuthority(ProgramID, campaign.EscrowBump, escrowPrefix, campaignAddress)
			if err := ex.Transfer(escrow, withdrawAddress, remaining, escrowAuthority); err != nil {
				return err
			}
		}

		campaign.AvailableBudget = 0
		campaign.IsClosed = true
		account.StoreData(campaign.Marshal())
		return nil
	})
	if err != nil {
		return err
	}

	p.log.WithFields(logrus.Fields{
		"instruction": "close_campaign",
		"campaign":    logKey(campaignAddress),
	}).Debug("campaign closed")
	return nil
}

// WithdrawFees sweeps the treasury to the withdraw address. Admin only.
func (p *Processor) WithdrawFees(ledger *runtime.Ledger, signer, withdrawAddress ed25519.PublicKey) error {
	return ledger.Execute(func(ex *runtime.Execution) error {
		config, _, err := loadConfig(ex)
		if err != nil {
			return err
		}
		if !bytes.Equal(config.Admin, signer) {
			return ErrInvalidAdmin
		}

		treasury, _, err := GetTreasuryAddress()
		if err != nil {
			return err
		}
		amount := ex.Balance(treasury)
		if amount == 0 {
			return nil
		}

		treasuryAuthority := runtime.DerivedAuthority(ProgramID, config.TreasuryBump, treasuryPrefix)
		return ex.Transfer(treasury, withdrawAddress, amount, treasuryAuthority)
	})
}

// GetEscrowBalance returns the campaign escrow's native balance.
func GetEscrowBalance(ledger *runtime.Ledger, campaignAddress ed25519.PublicKey) (uint64, error) {
	escrow, _, err := GetEscrowAddress(campaignAddress)
	if err != nil {
		return 0, err
	}
	return ledger.Balance(escrow), nil
}

// GetTreasuryBalance returns the protocol treasury's native balance.
func GetTreasuryBalance(ledger *runtime.Ledger) (uint64, error) {
	treasury, _, err := GetTreasuryAddress()
	if err != nil {
		return 0, err
	}
	return ledger.Balance(treasury), nil
}

func validateName(name string) error {
	if len(name) < MinNameLength {
		return ErrNameTooShort
	}
	if len(name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}

func validateDescription(description string) error {
	if len(description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}

func validateProductURI(productURI string) error {
	if len(productURI) == 0 || len(productURI) > MaxProductURILength {
		return ErrInvalidProductURI
	}
	parsed, err := url.Parse(productURI)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return ErrInvalidProductURI
	}
	return nil
}

func loadConfig(ex *runtime.Execution) (*Config, *runtime.Account, error) {
	address, _, err := GetConfigAddress()
	if err != nil {
		return nil, nil, err
	}

	account, err := ex.Load(address, ProgramID)
	if err != nil {
		return nil, nil, err
	}

	var config Config
	if err := config.Unmarshal(account.Data); err != nil {
		return nil, nil, err
	}
	return &config, account, nil
}

func loadMerchant(ex *runtime.Execution, owner ed25519.PublicKey) (ed25519.PublicKey, *Merchant, *runtime.Account, error) {
	address, _, err := GetMerchantAddress(owner)
	if err != nil {
		return nil, nil, nil, err
	}

	account, err := ex.Load(address, ProgramID)
	if err != nil {
		return nil, nil, nil, err
	}

	var merchant Merchant
	if err := merchant.Unmarshal(account.Data); err != nil {
		return nil, nil, nil, err
	}
	return address, &merchant, account, nil
}

func loadAffiliate(ex *runtime.Execution, owner ed25519.PublicKey) (ed25519.PublicKey, *Affiliate, *runtime.Account, error) {
	address, _, err := GetAffiliateAddress(owner)
	if err != nil {
		return nil, nil, nil, err
	}

	account, err := ex.Load(address, ProgramID)
	if err != nil {
		return nil, nil, nil, err
	}

	var affiliate Affiliate
	if err := affiliate.Unmarshal(account.Data); err != nil {
		return nil, nil, nil, err
	}
	return address, &affiliate, account, nil
}

func loadCampaign(ex *runtime.Execution, address ed25519.PublicKey) (*Campaign, *runtime.Account, error) {
	account, err := ex.Load(address, ProgramID)
	if err != nil {
		return nil, nil, err
	}

	var campaign Campaign
	if err := campaign.Unmarshal(account.Data); err != nil {
		return nil, nil, err
	}
	return &campaign, account, nil
}

func loadCampaignAffiliate(ex *runtime.Execution, campaign, affiliate ed25519.PublicKey) (*CampaignAffiliate, *runtime.Account, error) {
	address, _, err := GetCampaignAffiliateAddress(campaign, affiliate)
	if err != nil {
		return nil, nil, err
	}

	account, err := ex.Load(address, ProgramID)
	if err != nil {
		return nil, nil, err
	}

	var record CampaignAffiliate
	if err := record.Unmarshal(account.Data); err != nil {
		return nil, nil, err
	}
	return &record, account, nil
}
