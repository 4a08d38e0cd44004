package storage

import (
	"errors"
	"fmt"
	"math/big"

	"launchpad-engine/models"

	"github.com/dogecoinw/go-dogecoin/log"
	"gorm.io/gorm"
)

// feeScale: FeePcnt is parts-per-million of the collected native value.
var feeScale = big.NewInt(1000000)

func (db *DBClient) campaign(tx *gorm.DB, index int64) (*models.CampaignCollect, error) {

	campaign := &models.CampaignCollect{}
	err := tx.Where("campaign_index = ?", index).First(campaign).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: campaign index %d", ErrNotFound, index)
		}
		return nil, err
	}

	return campaign, nil
}

// Campaign reads one campaign's full configuration and state.
func (db *DBClient) Campaign(index int64) (*models.CampaignCollect, error) {
	return db.campaign(db.DB, index)
}

// isLive: funded, inside the sale window, and under hard cap.
func campaignIsLive(c *models.CampaignCollect, now int64) bool {
	return c.IsFunded && !c.IsFinalized &&
		now >= c.StartDate && now < c.EndDate &&
		c.CollectedNative.Cmp(c.HardCap) < 0
}

// fundInRequired: the token escrow the owner must provide up front covers
// the full sale allotment plus the liquidity seed.
func fundInRequired(c *models.CampaignCollect) *big.Int {
	return big.NewInt(0).Add(c.TokenSalesQty.Int(), c.LpTokenQty.Int())
}

// tokenQtyFor computes the exact token amount a native contribution buys:
// value * tokenSalesQty / hardCap. TokenSalesQty is denominated in the sold
// token's own decimals, so the result lands in that precision with no
// rounding drift across decimal widths.
func tokenQtyFor(c *models.CampaignCollect, value *big.Int) *big.Int {
	qty := big.NewInt(0).Mul(value, c.TokenSalesQty.Int())
	return qty.Div(qty, c.HardCap.Int())
}

// CampaignFundIn escrows the sale allotment plus liquidity seed from the
// campaign owner. Callable once, owner only.
func (db *DBClient) CampaignFundIn(tx *gorm.DB, index int64, caller string, now int64) error {

	campaign, err := db.campaign(tx, index)
	if err != nil {
		return err
	}

	if caller != campaign.CampaignOwner {
		return fmt.Errorf("%w: only campaign owner can call", ErrUnauthorized)
	}

	if campaign.IsFunded {
		return ErrAlreadyFunded
	}

	required := fundInRequired(campaign)
	err = db.TransferToken(tx, campaign.TokenId, caller, campaign.EscrowAddress, required, now)
	if err != nil {
		return err
	}

	err = tx.Model(campaign).Where("campaign_index = ?", index).Updates(
		map[string]interface{}{
			"is_funded":    true,
			"token_funded": required.String(),
		}).Error
	if err != nil {
		return fmt.Errorf("CampaignFundIn Update err: %s", err.Error())
	}

	log.Info("engine", "CampaignFundIn", "funded", "campaign_index", index, "amt", required.String())
	return nil
}

func (db *DBClient) isWhitelisted(tx *gorm.DB, index int64, holder string) (bool, error) {

	err := tx.Where("campaign_index = ? and holder_address = ?", index, holder).
		First(&models.CampaignWhitelist{}).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

func (db *DBClient) checkAccess(tx *gorm.DB, campaign *models.CampaignCollect, buyer string, now int64) error {

	switch campaign.AccessMode {
	case models.AccessPublic:
		return nil
	case models.AccessWhitelistOnly:
		ok, err := db.isWhitelisted(tx, campaign.CampaignIndex, buyer)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotWhitelisted
		}
		return nil
	case models.AccessWhitelistThenEvery:
		if now >= campaign.MidDate {
			return nil
		}
		ok, err := db.isWhitelisted(tx, campaign.CampaignIndex, buyer)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotWhitelisted
		}
		return nil
	}

	return fmt.Errorf("%w: unknown access mode %d", ErrInvalidConfiguration, campaign.AccessMode)
}

// CampaignBuy accepts a native contribution, enforcing liveness, access
// tier, buy limits, the qualifying-token threshold and the hard cap, then
// escrows the value and reserves the exact token amount owed. Returns the
// reserved token quantity.
func (db *DBClient) CampaignBuy(tx *gorm.DB, index int64, buyer string, value *big.Int, now int64) (*big.Int, error) {

	campaign, err := db.campaign(tx, index)
	if err != nil {
		return nil, err
	}

	if !campaignIsLive(campaign, now) {
		return nil, ErrNotLive
	}

	if err := db.checkAccess(tx, campaign, buyer, now); err != nil {
		return nil, err
	}

	if campaign.QualifyingTokenQty.Int().Sign() > 0 {
		cfg, err := db.factoryConfig(tx)
		if err != nil {
			return nil, err
		}

		held, err := db.balanceOfTx(tx, cfg.PlatformTokenId, buyer)
		if err != nil {
			return nil, err
		}

		if held.Cmp(campaign.QualifyingTokenQty.Int()) < 0 {
			return nil, ErrNotQualified
		}
	}

	if value.Cmp(campaign.MinBuyLimit.Int()) < 0 {
		return nil, ErrBelowMinimum
	}

	// The participant row is only written once every guard has passed, so
	// a rejected buy leaves no trace even outside a transaction.
	first := false
	contribution := &models.CampaignContribution{}
	err = tx.Where("campaign_index = ? and holder_address = ?", index, buyer).First(contribution).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		first = true
		contribution.CampaignIndex = index
		contribution.HolderAddress = buyer
		contribution.Amt = models.NewNumber(0)
		contribution.TokenQty = models.NewNumber(0)
	}

	cumulative := big.NewInt(0).Add(contribution.Amt.Int(), value)
	if cumulative.Cmp(campaign.MaxBuyLimit.Int()) > 0 {
		return nil, ErrExceedsMaxLimit
	}

	collected := big.NewInt(0).Add(campaign.CollectedNative.Int(), value)
	if collected.Cmp(campaign.HardCap.Int()) > 0 {
		return nil, ErrHardCapExceeded
	}

	err = db.TransferToken(tx, NativeTick, buyer, campaign.EscrowAddress, value, now)
	if err != nil {
		return nil, err
	}

	qty := tokenQtyFor(campaign, value)
	tokenQty := big.NewInt(0).Add(contribution.TokenQty.Int(), qty)

	if first {
		contribution.Amt = (*models.Number)(cumulative)
		contribution.TokenQty = (*models.Number)(tokenQty)
		err = tx.Create(contribution).Error
		if err != nil {
			return nil, fmt.Errorf("CampaignBuy Create err: %s", err.Error())
		}
	} else {
		err = tx.Model(contribution).Where("campaign_index = ? and holder_address = ?", index, buyer).Updates(
			map[string]interface{}{
				"amt":       cumulative.String(),
				"token_qty": tokenQty.String(),
			}).Error
		if err != nil {
			return nil, fmt.Errorf("CampaignBuy Update err: %s", err.Error())
		}
	}

	err = tx.Model(campaign).Where("campaign_index = ?", index).
		Update("collected_native", collected.String()).Error
	if err != nil {
		return nil, fmt.Errorf("CampaignBuy Update err: %s", err.Error())
	}

	log.Info("engine", "CampaignBuy", "bought", "campaign_index", index, "buyer", buyer,
		"value", value.String(), "qty", qty.String())

	return qty, nil
}

// CampaignFinishUp settles a closed sale. Owner only, once, and only after
// the window has passed or the hard cap was reached. Returns whether the
// soft cap was met.
func (db *DBClient) CampaignFinishUp(tx *gorm.DB, index int64, caller string, now int64) (bool, error) {

	campaign, err := db.campaign(tx, index)
	if err != nil {
		return false, err
	}

	if caller != campaign.CampaignOwner {
		return false, fmt.Errorf("%w: only campaign owner can call", ErrUnauthorized)
	}

	if campaign.IsFinalized {
		return false, ErrAlreadyFinalized
	}

	hardCapMet := campaign.CollectedNative.Cmp(campaign.HardCap) >= 0
	if now < campaign.EndDate && !hardCapMet {
		return false, ErrNotYetEndable
	}

	success := campaign.IsFunded && campaign.CollectedNative.Cmp(campaign.SoftCap) >= 0
	if !success {
		err = tx.Model(campaign).Where("campaign_index = ?", index).Updates(
			map[string]interface{}{
				"is_finalized":      true,
				"finish_up_success": false,
			}).Error
		if err != nil {
			return false, fmt.Errorf("CampaignFinishUp Update err: %s", err.Error())
		}

		log.Info("engine", "CampaignFinishUp", "failed", "campaign_index", index,
			"collected", campaign.CollectedNative.String(), "soft_cap", campaign.SoftCap.String())
		return false, nil
	}

	collected := campaign.CollectedNative.Int()

	fee := big.NewInt(0).Mul(collected, big.NewInt(campaign.FeePcnt))
	fee.Div(fee, feeScale)
	if fee.Sign() > 0 {
		err = db.feeVaultDeposit(tx, campaign, NativeTick, fee, now)
		if err != nil {
			return false, err
		}
	}

	lpAmount, lpUnlock, err := db.liquidityCreate(tx, campaign, now)
	if err != nil {
		return false, err
	}

	// Remaining native proceeds go to the owner.
	remaining := big.NewInt(0).Sub(collected, fee)
	remaining.Sub(remaining, campaign.LpNativeQty.Int())
	if remaining.Sign() < 0 {
		return false, fmt.Errorf("%w: collected value cannot cover fee and liquidity", ErrTransferFailed)
	}
	if remaining.Sign() > 0 {
		err = db.TransferToken(tx, NativeTick, campaign.EscrowAddress, campaign.CampaignOwner, remaining, now)
		if err != nil {
			return false, err
		}
	}

	// Unsold sale tokens are burned or returned per the campaign flag.
	sold := tokenQtyFor(campaign, collected)
	unsold := big.NewInt(0).Sub(campaign.TokenSalesQty.Int(), sold)
	if unsold.Sign() > 0 {
		if campaign.BurnUnsold {
			err = db.BurnToken(tx, campaign.TokenId, campaign.EscrowAddress, unsold, now)
		} else {
			err = db.TransferToken(tx, campaign.TokenId, campaign.EscrowAddress, campaign.CampaignOwner, unsold, now)
		}
		if err != nil {
			return false, err
		}
	}

	err = tx.Model(campaign).Where("campaign_index = ?", index).Updates(
		map[string]interface{}{
			"is_finalized":      true,
			"finish_up_success": true,
			"lp_token_amount":   lpAmount.String(),
			"lp_unlock_date":    lpUnlock,
		}).Error
	if err != nil {
		return false, fmt.Errorf("CampaignFinishUp Update err: %s", err.Error())
	}

	log.Info("engine", "CampaignFinishUp", "success", "campaign_index", index,
		"collected", collected.String(), "fee", fee.String(), "lp_amount", lpAmount.String())

	return true, nil
}

// CampaignSetClaimable opens token claims. Owner only, after a successful
// finish.
func (db *DBClient) CampaignSetClaimable(tx *gorm.DB, index int64, caller string, now int64) error {

	campaign, err := db.campaign(tx, index)
	if err != nil {
		return err
	}

	if caller != campaign.CampaignOwner {
		return fmt.Errorf("%w: only campaign owner can call", ErrUnauthorized)
	}

	if !campaign.IsFinalized || !campaign.FinishUpSuccess {
		return ErrNotYetEndable
	}

	return tx.Model(campaign).Where("campaign_index = ?", index).
		Update("tokens_claimable", true).Error
}

// CampaignClaim pays out a participant's reserved tokens, once.
func (db *DBClient) CampaignClaim(tx *gorm.DB, index int64, caller string, now int64) (*big.Int, error) {

	campaign, err := db.campaign(tx, index)
	if err != nil {
		return nil, err
	}

	if !campaign.TokensClaimable {
		return nil, fmt.Errorf("%w: tokens are not claimable", ErrNothingToClaim)
	}

	contribution := &models.CampaignContribution{}
	err = tx.Where("campaign_index = ? and holder_address = ?", index, caller).First(contribution).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNothingToClaim
		}
		return nil, err
	}

	qty := contribution.TokenQty.Int()
	if contribution.Claimed || qty.Sign() <= 0 {
		return nil, ErrNothingToClaim
	}

	err = db.TransferToken(tx, campaign.TokenId, campaign.EscrowAddress, caller, qty, now)
	if err != nil {
		return nil, err
	}

	err = tx.Model(contribution).Where("campaign_index = ? and holder_address = ?", index, caller).Updates(
		map[string]interface{}{
			"token_qty": "0",
			"claimed":   true,
		}).Error
	if err != nil {
		return nil, fmt.Errorf("CampaignClaim Update err: %s", err.Error())
	}

	log.Info("engine", "CampaignClaim", "claimed", "campaign_index", index, "holder", caller, "qty", qty.String())
	return qty, nil
}

// CampaignRefund returns a participant's native contribution. Available
// once finalize failed, or once the window closed under soft cap even
// before an explicit finishUp.
func (db *DBClient) CampaignRefund(tx *gorm.DB, index int64, caller string, now int64) (*big.Int, error) {

	campaign, err := db.campaign(tx, index)
	if err != nil {
		return nil, err
	}

	failed := campaign.IsFinalized && !campaign.FinishUpSuccess
	missed := !campaign.IsFinalized && now >= campaign.EndDate &&
		campaign.CollectedNative.Cmp(campaign.SoftCap) < 0
	if !failed && !missed {
		return nil, fmt.Errorf("%w: campaign is not refundable", ErrNothingToClaim)
	}

	contribution := &models.CampaignContribution{}
	err = tx.Where("campaign_index = ? and holder_address = ?", index, caller).First(contribution).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNothingToClaim
		}
		return nil, err
	}

	amt := contribution.Amt.Int()
	if contribution.Refunded || amt.Sign() <= 0 {
		return nil, ErrNothingToClaim
	}

	err = db.TransferToken(tx, NativeTick, campaign.EscrowAddress, caller, amt, now)
	if err != nil {
		return nil, err
	}

	err = tx.Model(contribution).Where("campaign_index = ? and holder_address = ?", index, caller).Updates(
		map[string]interface{}{
			"amt":       "0",
			"token_qty": "0",
			"refunded":  true,
		}).Error
	if err != nil {
		return nil, fmt.Errorf("CampaignRefund Update err: %s", err.Error())
	}

	collected := big.NewInt(0).Sub(campaign.CollectedNative.Int(), amt)
	err = tx.Model(campaign).Where("campaign_index = ?", index).
		Update("collected_native", collected.String()).Error
	if err != nil {
		return nil, fmt.Errorf("CampaignRefund Update err: %s", err.Error())
	}

	log.Info("engine", "CampaignRefund", "refunded", "campaign_index", index, "holder", caller, "amt", amt.String())
	return amt, nil
}

// CampaignAppendWhitelisted adds addresses to the whitelist set. Owner
// only; already-present addresses are skipped.
func (db *DBClient) CampaignAppendWhitelisted(tx *gorm.DB, index int64, caller string, addresses []string, now int64) error {

	campaign, err := db.campaign(tx, index)
	if err != nil {
		return err
	}

	if caller != campaign.CampaignOwner {
		return fmt.Errorf("%w: only campaign owner can call", ErrUnauthorized)
	}

	added := int64(0)
	for _, addr := range addresses {
		ok, err := db.isWhitelisted(tx, index, addr)
		if err != nil {
			return err
		}
		if ok {
			continue
		}

		err = tx.Create(&models.CampaignWhitelist{
			CampaignIndex: index,
			HolderAddress: addr,
		}).Error
		if err != nil {
			return fmt.Errorf("CampaignAppendWhitelisted Create err: %s", err.Error())
		}
		added++
	}

	if added == 0 {
		return nil
	}

	return tx.Model(campaign).Where("campaign_index = ?", index).
		Update("num_of_whitelisted", campaign.NumOfWhitelisted+added).Error
}

// CampaignRemoveWhitelisted removes addresses from the whitelist set.
// Owner only; absent addresses are skipped.
func (db *DBClient) CampaignRemoveWhitelisted(tx *gorm.DB, index int64, caller string, addresses []string, now int64) error {

	campaign, err := db.campaign(tx, index)
	if err != nil {
		return err
	}

	if caller != campaign.CampaignOwner {
		return fmt.Errorf("%w: only campaign owner can call", ErrUnauthorized)
	}

	removed := int64(0)
	for _, addr := range addresses {
		result := tx.Where("campaign_index = ? and holder_address = ?", index, addr).
			Delete(&models.CampaignWhitelist{})
		if result.Error != nil {
			return fmt.Errorf("CampaignRemoveWhitelisted Delete err: %s", result.Error.Error())
		}
		removed += result.RowsAffected
	}

	if removed == 0 {
		return nil
	}

	return tx.Model(campaign).Where("campaign_index = ?", index).
		Update("num_of_whitelisted", campaign.NumOfWhitelisted-removed).Error
}

// CampaignIsLive reports liveness the way buyTokens would see it.
func (db *DBClient) CampaignIsLive(index int64, now int64) (bool, error) {

	campaign, err := db.campaign(db.DB, index)
	if err != nil {
		return false, err
	}

	return campaignIsLive(campaign, now), nil
}

// CampaignWhitelisted reports one address's whitelist membership.
func (db *DBClient) CampaignWhitelisted(index int64, holder string) (bool, error) {
	return db.isWhitelisted(db.DB, index, holder)
}

// CampaignContributionOf reads one participant's record; absence means a
// zero contribution.
func (db *DBClient) CampaignContributionOf(index int64, holder string) (*models.CampaignContribution, error) {

	contribution := &models.CampaignContribution{}
	err := db.DB.Where("campaign_index = ? and holder_address = ?", index, holder).First(contribution).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.CampaignContribution{
				CampaignIndex: index,
				HolderAddress: holder,
				Amt:           models.NewNumber(0),
				TokenQty:      models.NewNumber(0),
			}, nil
		}
		return nil, err
	}

	return contribution, nil
}

// CampaignSetLogo stores the IPFS CID of an uploaded campaign logo. Owner
// only.
func (db *DBClient) CampaignSetLogo(tx *gorm.DB, index int64, caller, cid string) error {

	campaign, err := db.campaign(tx, index)
	if err != nil {
		return err
	}

	if caller != campaign.CampaignOwner {
		return fmt.Errorf("%w: only campaign owner can call", ErrUnauthorized)
	}

	return tx.Model(campaign).Where("campaign_index = ?", index).Update("logo", cid).Error
}
