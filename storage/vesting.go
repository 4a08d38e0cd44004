package storage

import (
	"errors"
	"fmt"
	"math/big"

	"launchpad-engine/models"

	"github.com/dogecoinw/go-dogecoin/log"
	"gorm.io/gorm"
)

// VestingUnlock releases one team tranche to the beneficiary. Beneficiary
// only; a tranche releases exactly once, and only after its offset from the
// reference epoch has elapsed.
func (db *DBClient) VestingUnlock(tx *gorm.DB, trancheIndex int, caller string, now int64) (*big.Int, error) {

	vesting := &models.VestingCollect{}
	err := tx.First(vesting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: vesting schedule", ErrNotFound)
		}
		return nil, err
	}

	if caller != vesting.BeneficiaryAddress {
		return nil, fmt.Errorf("%w: only the team beneficiary can call", ErrUnauthorized)
	}

	tranche := &models.VestingTranche{}
	err = tx.Where("tranche_index = ?", trancheIndex).First(tranche).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: tranche %d", ErrNotFound, trancheIndex)
		}
		return nil, err
	}

	if tranche.Released {
		return nil, ErrAlreadyReleased
	}

	if now < vesting.ReferenceEpoch+tranche.UnlockOffset {
		return nil, ErrNotYetUnlockable
	}

	escrow := EscrowAddress("vesting:" + vesting.TokenId)
	err = db.TransferToken(tx, vesting.TokenId, escrow, vesting.BeneficiaryAddress, tranche.Amt.Int(), now)
	if err != nil {
		return nil, err
	}

	err = tx.Model(tranche).Where("tranche_index = ?", trancheIndex).Updates(
		map[string]interface{}{
			"released":     true,
			"release_date": now,
		}).Error
	if err != nil {
		return nil, fmt.Errorf("VestingUnlock Update err: %s", err.Error())
	}

	log.Info("engine", "VestingUnlock", "released", "tranche_index", trancheIndex, "amt", tranche.Amt.String())
	return tranche.Amt.Int(), nil
}

// VestingSchedule reads the schedule and its tranches in order.
func (db *DBClient) VestingSchedule() (*models.VestingCollect, []*models.VestingTranche, error) {

	vesting := &models.VestingCollect{}
	err := db.DB.First(vesting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: vesting schedule", ErrNotFound)
		}
		return nil, nil, err
	}

	tranches := make([]*models.VestingTranche, 0)
	err = db.DB.Order("tranche_index asc").Find(&tranches).Error
	if err != nil {
		return nil, nil, err
	}

	return vesting, tranches, nil
}
