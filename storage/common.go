package storage

import (
	"errors"
	"fmt"
	"math/big"

	"launchpad-engine/models"

	"github.com/dogecoinw/go-dogecoin/log"
	"gorm.io/gorm"
)

// TokenDeploy registers a fungible asset in the ledger and mints its full
// supply to the holder. Admin only; a campaign can only sell a registered
// token.
func (db *DBClient) TokenDeploy(tx *gorm.DB, caller string, token *models.TokenCollect, now int64) error {

	cfg, err := db.factoryConfig(tx)
	if err != nil {
		return err
	}

	if caller != cfg.AdminAddress {
		return ErrUnauthorized
	}

	if token.TickId == "" || token.Dec < 0 || token.Max.Int().Sign() <= 0 {
		return ErrInvalidConfiguration
	}

	err = tx.Where("tick_id = ?", token.TickId).First(&models.TokenCollect{}).Error
	if err == nil {
		return fmt.Errorf("%w: token %s already exists", ErrInvalidConfiguration, token.TickId)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	supply := token.Max.Int()
	token.Max = models.NewNumber(0)
	err = tx.Create(token).Error
	if err != nil {
		return fmt.Errorf("TokenDeploy Create err: %s", err.Error())
	}

	return db.MintToken(tx, token.TickId, token.HolderAddress, supply, now)
}

// TransferToken moves amt between two ledger accounts. A missing destination
// row means a zero balance and is created on the fly; a failure here aborts
// the caller's whole transaction.
func (db *DBClient) TransferToken(tx *gorm.DB, tickId, from, to string, amt *big.Int, now int64) error {
	log.Info("engine", "Transfer", "start", "tick_id", tickId, "from", from, "to", to, "amt", amt.String())

	if amt.Cmp(big.NewInt(0)) < 1 {
		return fmt.Errorf("%w: transfer amt < 0", ErrTransferFailed)
	}

	if from == to {
		return fmt.Errorf("%w: transfer from and to addresses are the same", ErrTransferFailed)
	}

	addFrom := &models.TokenCollectAddress{}
	err := tx.Where("tick_id = ? and holder_address = ?", tickId, from).First(addFrom).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: no balance tick_id: %s from: %s", ErrTransferFailed, tickId, from)
		}
		return fmt.Errorf("transfer err: %s tick_id: %s from: %s", err.Error(), tickId, from)
	}

	if amt.Cmp(addFrom.Amt.Int()) > 0 {
		return fmt.Errorf("%w: insufficient balance %s tick_id: %s from: %s transfer: %s",
			ErrTransferFailed, addFrom.Amt.String(), tickId, from, amt.String())
	}

	addTo := &models.TokenCollectAddress{}
	err = tx.Where("tick_id = ? and holder_address = ?", tickId, to).First(addTo).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("transfer err: %s tick_id: %s to: %s", err.Error(), tickId, to)
		}

		addTo.Amt = (*models.Number)(big.NewInt(0))
		addTo.TickId = tickId
		addTo.HolderAddress = to
		err := tx.Create(addTo).Error
		if err != nil {
			return fmt.Errorf("transfer err: %s tick_id: %s to: %s", err.Error(), tickId, to)
		}
	}

	count1 := addFrom.Amt.Int()
	count2 := addTo.Amt.Int()

	sub := big.NewInt(0).Sub(count1, amt)
	add := big.NewInt(0).Add(count2, amt)

	err = tx.Model(addFrom).Where("tick_id = ? and holder_address = ?", tickId, from).Updates(
		map[string]interface{}{
			"amt":          sub.String(),
			"transactions": addFrom.Transactions + 1,
		}).Error
	if err != nil {
		return fmt.Errorf("transfer err: %s tick_id: %s from: %s", err.Error(), tickId, from)
	}

	err = tx.Model(addTo).Where("tick_id = ? and holder_address = ?", tickId, to).Updates(
		map[string]interface{}{
			"amt":          add.String(),
			"transactions": addTo.Transactions + 1,
		}).Error
	if err != nil {
		return fmt.Errorf("transfer err: %s tick_id: %s to: %s", err.Error(), tickId, to)
	}

	err = tx.Model(&models.TokenCollect{}).Where("tick_id = ?", tickId).
		Update("transactions", gorm.Expr("transactions + 1")).Error
	if err != nil {
		return fmt.Errorf("transfer err: %s tick_id: %s", err.Error(), tickId)
	}

	return nil
}

// MintToken credits amt to holder and grows the tick's max supply.
func (db *DBClient) MintToken(tx *gorm.DB, tickId, holderAddress string, amt *big.Int, now int64) error {
	log.Info("engine", "Mint", "start", "tick_id", tickId, "holder_address", holderAddress, "amt", amt.String())

	tokenc := &models.TokenCollect{}
	err := tx.Where("tick_id = ?", tickId).First(tokenc).Error
	if err != nil {
		return fmt.Errorf("mint err: %s tick_id: %s", err.Error(), tickId)
	}

	tokenca := &models.TokenCollectAddress{}
	err = tx.Where("tick_id = ? and holder_address = ?", tickId, holderAddress).First(tokenca).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("mint err: %s tick_id: %s to: %s", err.Error(), tickId, holderAddress)
		}

		tokenca.Amt = (*models.Number)(big.NewInt(0))
		tokenca.TickId = tickId
		tokenca.HolderAddress = holderAddress
		err := tx.Create(tokenca).Error
		if err != nil {
			return fmt.Errorf("mint err: %s tick_id: %s to: %s", err.Error(), tickId, holderAddress)
		}
	}

	sum := big.NewInt(0).Add(tokenca.Amt.Int(), amt)
	max0 := big.NewInt(0).Add(tokenc.Max.Int(), amt)

	err = tx.Model(tokenca).Where("tick_id = ? and holder_address = ?", tickId, holderAddress).Updates(
		map[string]interface{}{
			"amt":          sum.String(),
			"transactions": tokenca.Transactions + 1,
		}).Error
	if err != nil {
		return fmt.Errorf("mint err: %s tick_id: %s to: %s", err.Error(), tickId, holderAddress)
	}

	err = tx.Model(tokenc).Where("tick_id = ?", tickId).Updates(
		map[string]interface{}{
			"max_":         max0.String(),
			"transactions": tokenc.Transactions + 1,
		}).Error
	if err != nil {
		return fmt.Errorf("mint err: %s tick_id: %s", err.Error(), tickId)
	}

	return nil
}

// BurnToken debits amt from holder and shrinks the tick's max supply.
func (db *DBClient) BurnToken(tx *gorm.DB, tickId, holderAddress string, amt *big.Int, now int64) error {
	log.Info("engine", "Burn", "start", "tick_id", tickId, "holder_address", holderAddress, "amt", amt.String())

	tokenc := &models.TokenCollect{}
	err := tx.Where("tick_id = ?", tickId).First(tokenc).Error
	if err != nil {
		return fmt.Errorf("burn err: %s tick_id: %s", err.Error(), tickId)
	}

	tokenca := &models.TokenCollectAddress{}
	err = tx.Where("tick_id = ? and holder_address = ?", tickId, holderAddress).First(tokenca).Error
	if err != nil {
		return fmt.Errorf("burn err: %s tick_id: %s from: %s", err.Error(), tickId, holderAddress)
	}

	count1 := tokenca.Amt.Int()
	if count1.Cmp(amt) == -1 {
		return fmt.Errorf("%w: burn balance < amount tick_id: %s balance: %s amount: %s",
			ErrTransferFailed, tickId, count1.String(), amt.String())
	}

	count2 := tokenc.Max.Int()
	if count2.Cmp(amt) == -1 {
		return fmt.Errorf("%w: burn supply < amount tick_id: %s supply: %s amount: %s",
			ErrTransferFailed, tickId, count2.String(), amt.String())
	}

	sum1 := big.NewInt(0).Sub(count1, amt)
	max0 := big.NewInt(0).Sub(count2, amt)

	err = tx.Model(tokenca).Where("tick_id = ? and holder_address = ?", tickId, holderAddress).Updates(
		map[string]interface{}{
			"amt":          sum1.String(),
			"transactions": tokenca.Transactions + 1,
		}).Error
	if err != nil {
		return fmt.Errorf("burn err: %s tick_id: %s from: %s", err.Error(), tickId, holderAddress)
	}

	err = tx.Model(tokenc).Where("tick_id = ?", tickId).Updates(
		map[string]interface{}{
			"max_":         max0.String(),
			"transactions": tokenc.Transactions + 1,
		}).Error
	if err != nil {
		return fmt.Errorf("burn err: %s tick_id: %s", err.Error(), tickId)
	}

	return nil
}

// NativeDeposit credits native value into the ledger. Admin only; this is
// the boundary where external value enters the abstract environment.
func (db *DBClient) NativeDeposit(tx *gorm.DB, caller, holderAddress string, amt *big.Int, now int64) error {

	cfg, err := db.factoryConfig(tx)
	if err != nil {
		return err
	}

	if caller != cfg.AdminAddress {
		return ErrUnauthorized
	}

	return db.MintToken(tx, NativeTick, holderAddress, amt, now)
}

// BalanceOf reads a ledger balance; a missing row is zero.
func (db *DBClient) BalanceOf(tickId, holderAddress string) (*big.Int, error) {

	tokenca := &models.TokenCollectAddress{}
	err := db.DB.Where("tick_id = ? and holder_address = ?", tickId, holderAddress).First(tokenca).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return big.NewInt(0), nil
		}
		return nil, err
	}

	return tokenca.Amt.Int(), nil
}

func (db *DBClient) balanceOfTx(tx *gorm.DB, tickId, holderAddress string) (*big.Int, error) {

	tokenca := &models.TokenCollectAddress{}
	err := tx.Where("tick_id = ? and holder_address = ?", tickId, holderAddress).First(tokenca).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return big.NewInt(0), nil
		}
		return nil, err
	}

	return tokenca.Amt.Int(), nil
}
