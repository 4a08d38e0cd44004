package storage

import (
	"fmt"
	"math/big"

	"launchpad-engine/models"

	"github.com/dogecoinw/go-dogecoin/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// liquidityCreate seeds the trading pair at settlement: configured native
// and token quantities move from the campaign escrow to the pair reserves,
// and the position is locked for the campaign's lpLockDuration. The LP
// amount is just the pair receipt; no pricing math happens here.
func (db *DBClient) liquidityCreate(tx *gorm.DB, campaign *models.CampaignCollect, now int64) (*big.Int, int64, error) {

	if campaign.LpNativeQty.Int().Sign() <= 0 || campaign.LpTokenQty.Int().Sign() <= 0 {
		return big.NewInt(0), 0, nil
	}

	pairId := uuid.New().String()
	reservesAddress := EscrowAddress("pair:" + campaign.TokenId + ":" + NativeTick)

	err := db.TransferToken(tx, NativeTick, campaign.EscrowAddress, reservesAddress, campaign.LpNativeQty.Int(), now)
	if err != nil {
		return nil, 0, err
	}

	err = db.TransferToken(tx, campaign.TokenId, campaign.EscrowAddress, reservesAddress, campaign.LpTokenQty.Int(), now)
	if err != nil {
		return nil, 0, err
	}

	// LP receipt: geometric mean would need AMM math; the pair store keeps
	// the seeded native quantity as the position size.
	lpAmount := big.NewInt(0).Set(campaign.LpNativeQty.Int())
	unlockDate := now + campaign.LpLockDuration

	pair := &models.LiquidityPair{
		PairId:          pairId,
		Tick0Id:         campaign.TokenId,
		Tick1Id:         NativeTick,
		Amt0:            campaign.LpTokenQty,
		Amt1:            campaign.LpNativeQty,
		LpAmount:        (*models.Number)(lpAmount),
		ReservesAddress: reservesAddress,
		HolderAddress:   campaign.CampaignOwner,
		UnlockDate:      unlockDate,
	}

	err = tx.Create(pair).Error
	if err != nil {
		return nil, 0, fmt.Errorf("LiquidityCreate Create err: %s", err.Error())
	}

	log.Info("engine", "LiquidityCreate", "seeded", "pair_id", pairId,
		"token_id", campaign.TokenId, "amt0", campaign.LpTokenQty.String(), "amt1", campaign.LpNativeQty.String())

	return lpAmount, unlockDate, nil
}

// feeVaultDeposit moves a settlement fee to the vault escrow and records
// the credit split between the two payees.
func (db *DBClient) feeVaultDeposit(tx *gorm.DB, campaign *models.CampaignCollect, tickId string, amt *big.Int, now int64) error {

	cfg, err := db.factoryConfig(tx)
	if err != nil {
		return err
	}

	err = db.TransferToken(tx, tickId, campaign.EscrowAddress, cfg.FeeVaultAddress, amt, now)
	if err != nil {
		return err
	}

	half := big.NewInt(0).Div(amt, big.NewInt(2))
	rest := big.NewInt(0).Sub(amt, half)

	deposits := []*models.FeeVaultDeposit{
		{CampaignIndex: campaign.CampaignIndex, TickId: tickId, Amt: (*models.Number)(half), PayeeAddress: cfg.FeePayee0},
		{CampaignIndex: campaign.CampaignIndex, TickId: tickId, Amt: (*models.Number)(rest), PayeeAddress: cfg.FeePayee1},
	}

	for _, deposit := range deposits {
		err = tx.Create(deposit).Error
		if err != nil {
			return fmt.Errorf("FeeVaultDeposit Create err: %s", err.Error())
		}
	}

	return nil
}

// LiquidityPair reads one seeded pair by the sold token's tick.
func (db *DBClient) LiquidityPair(tokenId string) (*models.LiquidityPair, error) {

	pair := &models.LiquidityPair{}
	err := db.DB.Where("tick0_id = ?", tokenId).First(pair).Error
	if err != nil {
		return nil, err
	}

	return pair, nil
}
