package storage

import (
	"errors"
	"fmt"
	"math/big"

	"launchpad-engine/models"

	"github.com/dogecoinw/go-dogecoin/log"
	"gorm.io/gorm"
)

const (
	// Platform token genesis. Four tranches vest the team allocation at
	// 0/30/150/270 days from the reference epoch.
	PlatformTokenId     = "LAUNCH"
	PlatformTokenName   = "BSC Launcher"
	PlatformTokenSymbol = "LAUNCH"
	PlatformTokenDec    = 18
)

var (
	platformCirculating = mustNumber("10000000000000000000000000")
	teamAllocation      = mustNumber("2000000000000000000000000")

	teamTranches = []struct {
		offset int64
		amt    string
	}{
		{0, "50000000000000000000000"},
		{30 * 24 * 3600, "500000000000000000000000"},
		{150 * 24 * 3600, "700000000000000000000000"},
		{270 * 24 * 3600, "750000000000000000000000"},
	}
)

func mustNumber(s string) *models.Number {
	n, err := models.NewNumberFromString(s)
	if err != nil {
		panic(err)
	}
	return n
}

// FactoryInit seeds the platform on first boot: the factory singleton, the
// native tick, the platform token with its circulating supply, and the team
// vesting schedule. Idempotent; a later boot leaves existing state alone.
func (db *DBClient) FactoryInit(genesis *models.FactoryConfig, beneficiary string, epoch int64) error {

	err := db.DB.First(&models.FactoryConfig{}).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	log.Info("engine", "FactoryInit", "genesis", "admin", genesis.AdminAddress)

	db.Lock()
	defer db.Unlock()

	tx := db.DB.Begin()

	genesis.PlatformTokenId = PlatformTokenId
	genesis.FeeVaultAddress = EscrowAddress("fee-vault:" + genesis.FeePayee0 + ":" + genesis.FeePayee1)
	err = tx.Create(genesis).Error
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("FactoryInit Create err: %s", err.Error())
	}

	native := &models.TokenCollect{
		TickId: NativeTick,
		Name:   NativeTick,
		Symbol: "WBNB",
		Dec:    18,
		Max:    models.NewNumber(0),
	}
	err = tx.Create(native).Error
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("FactoryInit Create err: %s", err.Error())
	}

	platform := &models.TokenCollect{
		TickId:        PlatformTokenId,
		Name:          PlatformTokenName,
		Symbol:        PlatformTokenSymbol,
		Dec:           PlatformTokenDec,
		Max:           models.NewNumber(0),
		HolderAddress: beneficiary,
	}
	err = tx.Create(platform).Error
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("FactoryInit Create err: %s", err.Error())
	}

	err = db.MintToken(tx, PlatformTokenId, beneficiary, platformCirculating.Int(), epoch)
	if err != nil {
		tx.Rollback()
		return err
	}

	vestingEscrow := EscrowAddress("vesting:" + PlatformTokenId)
	err = db.MintToken(tx, PlatformTokenId, vestingEscrow, teamAllocation.Int(), epoch)
	if err != nil {
		tx.Rollback()
		return err
	}

	vesting := &models.VestingCollect{
		TokenId:            PlatformTokenId,
		BeneficiaryAddress: beneficiary,
		ReferenceEpoch:     epoch,
		TotalAllocation:    teamAllocation,
	}
	err = tx.Create(vesting).Error
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("FactoryInit Create err: %s", err.Error())
	}

	for i, t := range teamTranches {
		tranche := &models.VestingTranche{
			TrancheIndex: i,
			UnlockOffset: t.offset,
			Amt:          mustNumber(t.amt),
		}
		err = tx.Create(tranche).Error
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("FactoryInit Create err: %s", err.Error())
		}
	}

	err = tx.Commit().Error
	if err != nil {
		tx.Rollback()
		return err
	}

	return nil
}

func (db *DBClient) factoryConfig(tx *gorm.DB) (*models.FactoryConfig, error) {

	cfg := &models.FactoryConfig{}
	err := tx.First(cfg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: factory not initialized", ErrNotFound)
		}
		return nil, err
	}

	return cfg, nil
}

// FactoryConfig reads the platform singleton.
func (db *DBClient) FactoryConfig() (*models.FactoryConfig, error) {
	return db.factoryConfig(db.DB)
}

// FactorySetAddresses updates the fee payees and the liquidity router.
// Admin only; the vault escrow address is re-derived when payees change.
func (db *DBClient) FactorySetAddresses(tx *gorm.DB, caller, feePayee0, feePayee1, lpRouter string) error {

	cfg, err := db.factoryConfig(tx)
	if err != nil {
		return err
	}

	if caller != cfg.AdminAddress {
		return ErrUnauthorized
	}

	updates := map[string]interface{}{}
	if feePayee0 != "" {
		updates["fee_payee0"] = feePayee0
		cfg.FeePayee0 = feePayee0
	}
	if feePayee1 != "" {
		updates["fee_payee1"] = feePayee1
		cfg.FeePayee1 = feePayee1
	}
	if lpRouter != "" {
		updates["lp_router_address"] = lpRouter
	}
	if feePayee0 != "" || feePayee1 != "" {
		updates["fee_vault_address"] = EscrowAddress("fee-vault:" + cfg.FeePayee0 + ":" + cfg.FeePayee1)
	}

	if len(updates) == 0 {
		return nil
	}

	return tx.Model(&models.FactoryConfig{}).Where("id = ?", cfg.ID).Updates(updates).Error
}

// CampaignCreate validates the configuration, assigns the next sequential
// index, derives the escrow address and records both the campaign and its
// factory record. Admin only.
func (db *DBClient) CampaignCreate(tx *gorm.DB, caller string, campaign *models.CampaignCollect, now int64) (*models.FactoryRecord, error) {

	cfg, err := db.factoryConfig(tx)
	if err != nil {
		return nil, err
	}

	if caller != cfg.AdminAddress {
		return nil, ErrUnauthorized
	}

	if err := validateCampaign(campaign); err != nil {
		return nil, err
	}

	err = tx.Where("tick_id = ?", campaign.TokenId).First(&models.TokenCollect{}).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: token %s", ErrNotFound, campaign.TokenId)
		}
		return nil, err
	}

	err = tx.Where("token_id = ? and sub_index = ?", campaign.TokenId, campaign.SubIndex).
		First(&models.FactoryRecord{}).Error
	if err == nil {
		return nil, fmt.Errorf("%w: campaign %s/%d already exists", ErrInvalidConfiguration,
			campaign.TokenId, campaign.SubIndex)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var count int64
	err = tx.Model(&models.FactoryRecord{}).Count(&count).Error
	if err != nil {
		return nil, err
	}

	campaign.CampaignIndex = count
	campaign.EscrowAddress = EscrowAddress(fmt.Sprintf("campaign:%s:%d", campaign.TokenId, campaign.SubIndex))
	campaign.CollectedNative = models.NewNumber(0)
	campaign.TokenFunded = models.NewNumber(0)
	campaign.LpTokenAmount = models.NewNumber(0)

	err = tx.Create(campaign).Error
	if err != nil {
		return nil, fmt.Errorf("CampaignCreate Create err: %s", err.Error())
	}

	record := &models.FactoryRecord{
		CampaignIndex:   campaign.CampaignIndex,
		ContractAddress: campaign.EscrowAddress,
		TokenId:         campaign.TokenId,
		SubIndex:        campaign.SubIndex,
		CampaignOwner:   campaign.CampaignOwner,
	}

	err = tx.Create(record).Error
	if err != nil {
		return nil, fmt.Errorf("CampaignCreate Create err: %s", err.Error())
	}

	log.Info("engine", "CampaignCreate", "created", "campaign_index", campaign.CampaignIndex,
		"token_id", campaign.TokenId, "owner", campaign.CampaignOwner)

	return record, nil
}

func validateCampaign(c *models.CampaignCollect) error {

	if c.CampaignOwner == "" || c.TokenId == "" {
		return ErrInvalidConfiguration
	}

	if c.SoftCap.Int().Sign() <= 0 || c.SoftCap.Cmp(c.HardCap) > 0 {
		return fmt.Errorf("%w: soft cap must not exceed hard cap", ErrInvalidConfiguration)
	}

	if c.TokenSalesQty.Int().Sign() <= 0 {
		return fmt.Errorf("%w: token sales qty must be positive", ErrInvalidConfiguration)
	}

	if c.MinBuyLimit.Int().Sign() <= 0 || c.MinBuyLimit.Cmp(c.MaxBuyLimit) > 0 {
		return fmt.Errorf("%w: min buy must not exceed max buy", ErrInvalidConfiguration)
	}

	if c.StartDate >= c.EndDate {
		return fmt.Errorf("%w: start date must precede end date", ErrInvalidConfiguration)
	}

	switch c.AccessMode {
	case models.AccessPublic, models.AccessWhitelistOnly:
	case models.AccessWhitelistThenEvery:
		if c.MidDate <= c.StartDate || c.MidDate >= c.EndDate {
			return fmt.Errorf("%w: mid date must fall inside the sale window", ErrInvalidConfiguration)
		}
	default:
		return fmt.Errorf("%w: unknown access mode %d", ErrInvalidConfiguration, c.AccessMode)
	}

	if c.FeePcnt < 0 || c.FeePcnt > 1000000 {
		return fmt.Errorf("%w: fee pcnt out of range", ErrInvalidConfiguration)
	}

	if c.LpLockDuration < 0 {
		return fmt.Errorf("%w: lp lock duration must not be negative", ErrInvalidConfiguration)
	}

	// The worst settleable outcome collects exactly softCap. It must still
	// cover the fee and the liquidity seed, or a closed sale could never
	// finish and never refund.
	fee := big.NewInt(0).Mul(c.SoftCap.Int(), big.NewInt(c.FeePcnt))
	fee.Div(fee, feeScale)
	if fee.Add(fee, c.LpNativeQty.Int()).Cmp(c.SoftCap.Int()) > 0 {
		return fmt.Errorf("%w: soft cap cannot cover fee and liquidity seed", ErrInvalidConfiguration)
	}

	return nil
}

// FactoryCampaign looks up one factory record by sequential index.
func (db *DBClient) FactoryCampaign(index int64) (*models.FactoryRecord, error) {

	record := &models.FactoryRecord{}
	err := db.DB.Where("campaign_index = ?", index).First(record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: campaign index %d", ErrNotFound, index)
		}
		return nil, err
	}

	return record, nil
}
