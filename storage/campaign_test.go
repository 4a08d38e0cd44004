package storage

import (
	"math/big"
	"sync"
	"testing"

	"launchpad-engine/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCampaignFundIn(t *testing.T) {
	dbc := newTestDB(t)

	campaign := saleCampaign()
	deployToken(t, dbc, campaign.TokenId, 18, e18(100000))
	_, err := dbc.CampaignCreate(dbc.DB, testAdmin, campaign, testEpoch)
	require.NoError(t, err)

	// Buying an unfunded campaign is rejected outright.
	depositNative(t, dbc, testBuyer, e18(10))
	_, err = dbc.CampaignBuy(dbc.DB, campaign.CampaignIndex, testBuyer, e18(1), testEpoch+1)
	require.ErrorIs(t, err, ErrNotLive)

	err = dbc.CampaignFundIn(dbc.DB, campaign.CampaignIndex, testBuyer, testEpoch)
	require.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, dbc.CampaignFundIn(dbc.DB, campaign.CampaignIndex, testOwner, testEpoch))

	// Escrow now holds the sale allotment plus the liquidity seed.
	required := big.NewInt(0).Add(e18(18720), e18(8112))
	require.Equal(t, required, balance(t, dbc, "SALE", campaign.EscrowAddress))
	require.Equal(t, big.NewInt(0).Sub(e18(100000), required), balance(t, dbc, "SALE", testOwner))

	created, err := dbc.Campaign(campaign.CampaignIndex)
	require.NoError(t, err)
	require.True(t, created.IsFunded)
	require.Equal(t, required.String(), created.TokenFunded.String())

	err = dbc.CampaignFundIn(dbc.DB, campaign.CampaignIndex, testOwner, testEpoch)
	require.ErrorIs(t, err, ErrAlreadyFunded)
}

func TestCampaignBuyMath(t *testing.T) {
	dbc := newTestDB(t)
	campaign := createSale(t, dbc, saleCampaign())
	depositNative(t, dbc, testBuyer, e18(10))

	// 1 native buys value * tokenSalesQty / hardCap = 4680 tokens.
	qty, err := dbc.CampaignBuy(dbc.DB, campaign.CampaignIndex, testBuyer, e18(1), testEpoch+1)
	require.NoError(t, err)
	require.Equal(t, e18(4680), qty)

	contribution, err := dbc.CampaignContributionOf(campaign.CampaignIndex, testBuyer)
	require.NoError(t, err)
	require.Equal(t, e18(1).String(), contribution.Amt.String())
	require.Equal(t, e18(4680).String(), contribution.TokenQty.String())

	// A second purchase accumulates on the same record.
	qty, err = dbc.CampaignBuy(dbc.DB, campaign.CampaignIndex, testBuyer, e18(1), testEpoch+2)
	require.NoError(t, err)
	require.Equal(t, e18(4680), qty)

	contribution, err = dbc.CampaignContributionOf(campaign.CampaignIndex, testBuyer)
	require.NoError(t, err)
	require.Equal(t, e18(2).String(), contribution.Amt.String())
	require.Equal(t, e18(9360).String(), contribution.TokenQty.String())

	// Collected native always matches the escrow's native balance.
	created, err := dbc.Campaign(campaign.CampaignIndex)
	require.NoError(t, err)
	require.Equal(t, e18(2).String(), created.CollectedNative.String())
	require.Equal(t, e18(2), balance(t, dbc, NativeTick, campaign.EscrowAddress))
	require.Equal(t, e18(8), balance(t, dbc, NativeTick, testBuyer))
}

func TestCampaignBuyNineDecimalToken(t *testing.T) {
	dbc := newTestDB(t)

	campaign := saleCampaign()
	campaign.TokenId = "NINE"
	campaign.TokenSalesQty = num(big.NewInt(4000000000))
	campaign.LpTokenQty = num(big.NewInt(1000000000))

	deployToken(t, dbc, "NINE", 9, big.NewInt(100000000000))
	_, err := dbc.CampaignCreate(dbc.DB, testAdmin, campaign, testEpoch)
	require.NoError(t, err)
	require.NoError(t, dbc.CampaignFundIn(dbc.DB, campaign.CampaignIndex, testOwner, testEpoch))

	depositNative(t, dbc, testBuyer, e18(10))

	// The quantity lands in the token's own 9-decimal precision: 1 native
	// of a 4-native hard cap buys exactly one whole token.
	qty, err := dbc.CampaignBuy(dbc.DB, campaign.CampaignIndex, testBuyer, e18(1), testEpoch+1)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(1000000000), qty)
}

func TestCampaignBuyLimits(t *testing.T) {
	dbc := newTestDB(t)
	campaign := createSale(t, dbc, saleCampaign())
	depositNative(t, dbc, testBuyer, e18(10))

	half := big.NewInt(0).Div(e18(1), big.NewInt(2))
	_, err := dbc.CampaignBuy(dbc.DB, campaign.CampaignIndex, testBuyer, half, testEpoch+1)
	require.ErrorIs(t, err, ErrBelowMinimum)

	_, err = dbc.CampaignBuy(dbc.DB, campaign.CampaignIndex, testBuyer, e18(3), testEpoch+1)
	require.ErrorIs(t, err, ErrExceedsMaxLimit)

	_, err = dbc.CampaignBuy(dbc.DB, campaign.CampaignIndex, testBuyer, e18(2), testEpoch+1)
	require.NoError(t, err)

	// The per-buyer cap applies to the cumulative total.
	_, err = dbc.CampaignBuy(dbc.DB, campaign.CampaignIndex, testBuyer, e18(1), testEpoch+2)
	require.ErrorIs(t, err, ErrExceedsMaxLimit)

	// Rejections leave both the ledger and the campaign untouched.
	require.Equal(t, e18(8), balance(t, dbc, NativeTick, testBuyer))
	created, err := dbc.Campaign(campaign.CampaignIndex)
	require.NoError(t, err)
	require.Equal(t, e18(2).String(), created.CollectedNative.String())

	// A rejected first-time buyer gets no participant row.
	depositNative(t, dbc, testBuyer2, e18(10))
	_, err = dbc.CampaignBuy(dbc.DB, campaign.CampaignIndex, testBuyer2, e18(3), testEpoch+1)
	require.ErrorIs(t, err, ErrExceedsMaxLimit)
	err = dbc.DB.Where("campaign_index = ? and holder_address = ?", campaign.CampaignIndex, testBuyer2).
		First(&models.CampaignContribution{}).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCampaignBuyHardCap(t *testing.T) {
	dbc := newTestDB(t)
	campaign := createSale(t, dbc, saleCampaign())
	depositNative(t, dbc, testBuyer, e18(10))
	depositNative(t, dbc, testBuyer2, e18(10))

	_, err := dbc.CampaignBuy(dbc.DB, campaign.CampaignIndex, testBuyer, e18(2), testEpoch+1)
	require.NoError(t, err)

	// With 2 native headroom left, a contribution pushing past the cap is
	// rejected rather than truncated.
	_, err = dbc.CampaignBuy(dbc.DB, campaign.CampaignIndex, testBuyer2, e18(2), testEpoch+1)
	require.NoError(t, err)
	_, err = dbc.CampaignBuy(dbc.DB, campaign.CampaignIndex, testBuyer2, e18(1), testEpoch+2)
	require.ErrorIs(t, err, ErrNotLive)

	// Reaching the hard cap ends the sale immediately.
	live, err := dbc.CampaignIsLive(campaign.CampaignIndex, testEpoch+2)
	require.NoError(t, err)
	require.False(t, live)

	// And the owner may settle before the window closes.
	ok, err := dbc.CampaignFinishUp(dbc.DB, campaign.CampaignIndex, testOwner, testEpoch+3)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestCampaignBuyHardCapRejectsOverage(t *testing.T) {
	dbc := newTestDB(t)

	campaign := saleCampaign()
	campaign.MaxBuyLimit = num(e18(4))
	campaign = createSale(t, dbc, campaign)
	depositNative(t, dbc, testBuyer, e18(10))

	_, err := dbc.CampaignBuy(dbc.DB, campaign.CampaignIndex, testBuyer, e18(3), testEpoch+1)
	require.NoError(t, err)

	_, err = dbc.CampaignBuy(dbc.DB, campaign.CampaignIndex, testBuyer2, e18(2), testEpoch+1)
	require.ErrorIs(t, err, ErrHardCapExceeded)

	created, err := dbc.Campaign(campaign.CampaignIndex)
	require.NoError(t, err)
	require.Equal(t, e18(3).String(), created.CollectedNative.String())
}

// Each goroutine runs the serialized call pattern: lock held from Begin to
// Commit, so every guard check sees committed state.
func serializedBuy(dbc *DBClient, index int64, buyer string, value *big.Int, now int64) error {
	dbc.Lock()
	defer dbc.Unlock()

	tx := dbc.DB.Begin()
	_, err := dbc.CampaignBuy(tx, index, buyer, value, now)
	if err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

func TestCampaignBuyConcurrentHardCap(t *testing.T) {
	dbc := newTestDB(t)

	campaign := saleCampaign()
	campaign.MaxBuyLimit = num(e18(3))
	campaign = createSale(t, dbc, campaign)
	depositNative(t, dbc, testBuyer, e18(10))
	depositNative(t, dbc, testBuyer2, e18(10))

	buyers := []string{testBuyer, testBuyer2}
	errs := make([]error, len(buyers))
	wg := sync.WaitGroup{}
	for i := range buyers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = serializedBuy(dbc, campaign.CampaignIndex, buyers[i], e18(3), testEpoch+1)
		}(i)
	}
	wg.Wait()

	// Only one 3-native buy fits under the 4 hard cap; the loser sees the
	// winner's committed total, never a stale snapshot.
	require.NotEqual(t, errs[0] == nil, errs[1] == nil)
	for _, err := range errs {
		if err != nil {
			require.ErrorIs(t, err, ErrHardCapExceeded)
		}
	}

	created, err := dbc.Campaign(campaign.CampaignIndex)
	require.NoError(t, err)
	require.Equal(t, e18(3).String(), created.CollectedNative.String())
	require.Equal(t, e18(3), balance(t, dbc, NativeTick, campaign.EscrowAddress))
}

func TestCampaignClaimConcurrentOnce(t *testing.T) {
	dbc := newTestDB(t)
	campaign := createSale(t, dbc, saleCampaign())
	depositNative(t, dbc, testBuyer, e18(10))

	_, err := dbc.CampaignBuy(dbc.DB, campaign.CampaignIndex, testBuyer, e18(2), testEpoch+1)
	require.NoError(t, err)

	ok, err := dbc.CampaignFinishUp(dbc.DB, campaign.CampaignIndex, testOwner, campaign.EndDate)
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, dbc.CampaignSetClaimable(dbc.DB, campaign.CampaignIndex, testOwner, campaign.EndDate))

	errs := make([]error, 2)
	wg := sync.WaitGroup{}
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			dbc.Lock()
			defer dbc.Unlock()

			tx := dbc.DB.Begin()
			_, err := dbc.CampaignClaim(tx, campaign.CampaignIndex, testBuyer, campaign.EndDate+1)
			if err != nil {
				tx.Rollback()
				errs[i] = err
				return
			}
			errs[i] = tx.Commit().Error
		}(i)
	}
	wg.Wait()

	// Exactly one claim pays out; the escrow cannot be drained twice.
	require.NotEqual(t, errs[0] == nil, errs[1] == nil)
	for _, err := range errs {
		if err != nil {
			require.ErrorIs(t, err, ErrNothingToClaim)
		}
	}
	require.Equal(t, e18(9360), balance(t, dbc, "SALE", testBuyer))
}

func TestCampaignAccessWhitelistOnly(t *testing.T) {
	dbc := newTestDB(t)

	campaign := saleCampaign()
	campaign.AccessMode = models.AccessWhitelistOnly
	campaign = createSale(t, dbc, campaign)

	depositNative(t, dbc, testBuyer, e18(10))
	depositNative(t, dbc, testBuyer2, e18(10))

	err := dbc.CampaignAppendWhitelisted(dbc.DB, campaign.CampaignIndex, testBuyer, []string{testBuyer}, testEpoch)
	require.ErrorIs(t, err, ErrUnauthorized)

	err = dbc.CampaignAppendWhitelisted(dbc.DB, campaign.CampaignIndex, testOwner, []string{testBuyer}, testEpoch)
	require.NoError(t, err)

	_, err = dbc.CampaignBuy(dbc.DB, campaign.CampaignIndex, testBuyer, e18(1), testEpoch+1)
	require.NoError(t, err)

	_, err = dbc.CampaignBuy(dbc.DB, campaign.CampaignIndex, testBuyer2, e18(1), testEpoch+1)
	require.ErrorIs(t, err, ErrNotWhitelisted)
}

func TestCampaignAccessWhitelistThenEveryone(t *testing.T) {
	dbc := newTestDB(t)

	campaign := saleCampaign()
	campaign.AccessMode = models.AccessWhitelistThenEvery
	campaign.MidDate = testEpoch + 24*3600
	campaign = createSale(t, dbc, campaign)

	err := dbc.CampaignAppendWhitelisted(dbc.DB, campaign.CampaignIndex, testOwner, []string{testBuyer}, testEpoch)
	require.NoError(t, err)

	depositNative(t, dbc, testBuyer, e18(10))
	depositNative(t, dbc, testBuyer2, e18(10))

	// Before midDate only whitelisted buyers get in.
	_, err = dbc.CampaignBuy(dbc.DB, campaign.CampaignIndex, testBuyer2, e18(1), campaign.MidDate-1)
	require.ErrorIs(t, err, ErrNotWhitelisted)
	_, err = dbc.CampaignBuy(dbc.DB, campaign.CampaignIndex, testBuyer, e18(1), campaign.MidDate-1)
	require.NoError(t, err)

	// From midDate on the sale is open to everyone.
	_, err = dbc.CampaignBuy(dbc.DB, campaign.CampaignIndex, testBuyer2, e18(1), campaign.MidDate)
	require.NoError(t, err)
}

func TestCampaignQualifyingToken(t *testing.T) {
	dbc := newTestDB(t)

	campaign := saleCampaign()
	campaign.QualifyingTokenQty = num(e18(100))
	campaign = createSale(t, dbc, campaign)
	depositNative(t, dbc, testBuyer, e18(10))

	_, err := dbc.CampaignBuy(dbc.DB, campaign.CampaignIndex, testBuyer, e18(1), testEpoch+1)
	require.ErrorIs(t, err, ErrNotQualified)

	// Holding the qualifying platform-token balance opens the gate.
	require.NoError(t, dbc.TransferToken(dbc.DB, PlatformTokenId, testBeneficiary, testBuyer, e18(100), testEpoch))
	_, err = dbc.CampaignBuy(dbc.DB, campaign.CampaignIndex, testBuyer, e18(1), testEpoch+1)
	require.NoError(t, err)
}

func TestCampaignFinishUpSuccess(t *testing.T) {
	dbc := newTestDB(t)
	campaign := createSale(t, dbc, saleCampaign())
	depositNative(t, dbc, testBuyer, e18(10))
	depositNative(t, dbc, testBuyer2, e18(10))

	_, err := dbc.CampaignBuy(dbc.DB, campaign.CampaignIndex, testBuyer, e18(2), testEpoch+1)
	require.NoError(t, err)
	_, err = dbc.CampaignBuy(dbc.DB, campaign.CampaignIndex, testBuyer2, e18(2), testEpoch+1)
	require.NoError(t, err)

	_, err = dbc.CampaignFinishUp(dbc.DB, campaign.CampaignIndex, testBuyer, testEpoch+2)
	require.ErrorIs(t, err, ErrUnauthorized)

	ok, err := dbc.CampaignFinishUp(dbc.DB, campaign.CampaignIndex, testOwner, testEpoch+2)
	require.NoError(t, err)
	require.True(t, ok)

	cfg, err := dbc.FactoryConfig()
	require.NoError(t, err)

	// 5% of the 4 native collected goes to the vault, split across payees.
	fee := big.NewInt(0).Div(e18(1), big.NewInt(5))
	require.Equal(t, fee, balance(t, dbc, NativeTick, cfg.FeeVaultAddress))

	deposits := make([]*models.FeeVaultDeposit, 0)
	require.NoError(t, dbc.DB.Where("campaign_index = ?", campaign.CampaignIndex).Find(&deposits).Error)
	require.Len(t, deposits, 2)
	sum := big.NewInt(0).Add(deposits[0].Amt.Int(), deposits[1].Amt.Int())
	require.Equal(t, fee, sum)

	// The pair reserves hold the configured liquidity seed.
	pair, err := dbc.LiquidityPair("SALE")
	require.NoError(t, err)
	require.Equal(t, e18(1), balance(t, dbc, NativeTick, pair.ReservesAddress))
	require.Equal(t, e18(8112), balance(t, dbc, "SALE", pair.ReservesAddress))
	require.Equal(t, testEpoch+2+campaign.LpLockDuration, pair.UnlockDate)

	// The owner receives collected - fee - liquidity = 2.8 native.
	remaining := big.NewInt(0).Sub(e18(4), fee)
	remaining.Sub(remaining, e18(1))
	require.Equal(t, remaining, balance(t, dbc, NativeTick, testOwner))

	// Every sale token sold out, so the escrow keeps exactly the claims.
	require.Equal(t, e18(18720), balance(t, dbc, "SALE", campaign.EscrowAddress))

	created, err := dbc.Campaign(campaign.CampaignIndex)
	require.NoError(t, err)
	require.True(t, created.IsFinalized)
	require.True(t, created.FinishUpSuccess)

	_, err = dbc.CampaignFinishUp(dbc.DB, campaign.CampaignIndex, testOwner, testEpoch+3)
	require.ErrorIs(t, err, ErrAlreadyFinalized)
}

func TestCampaignFinishUpBurnsUnsold(t *testing.T) {
	dbc := newTestDB(t)
	campaign := createSale(t, dbc, saleCampaign())
	depositNative(t, dbc, testBuyer, e18(10))

	// Soft cap met, hard cap not: half the allotment remains unsold.
	_, err := dbc.CampaignBuy(dbc.DB, campaign.CampaignIndex, testBuyer, e18(2), testEpoch+1)
	require.NoError(t, err)

	_, err = dbc.CampaignFinishUp(dbc.DB, campaign.CampaignIndex, testOwner, testEpoch+1)
	require.ErrorIs(t, err, ErrNotYetEndable)

	ok, err := dbc.CampaignFinishUp(dbc.DB, campaign.CampaignIndex, testOwner, campaign.EndDate)
	require.NoError(t, err)
	require.True(t, ok)

	// 9360 unsold tokens burned out of the supply.
	token := &models.TokenCollect{}
	require.NoError(t, dbc.DB.Where("tick_id = ?", "SALE").First(token).Error)
	require.Equal(t, big.NewInt(0).Sub(e18(100000), e18(9360)).String(), token.Max.String())
	require.Equal(t, e18(9360), balance(t, dbc, "SALE", campaign.EscrowAddress))
}

func TestCampaignFinishUpReturnsUnsold(t *testing.T) {
	dbc := newTestDB(t)

	campaign := saleCampaign()
	campaign.BurnUnsold = false
	campaign = createSale(t, dbc, campaign)
	depositNative(t, dbc, testBuyer, e18(10))

	_, err := dbc.CampaignBuy(dbc.DB, campaign.CampaignIndex, testBuyer, e18(2), testEpoch+1)
	require.NoError(t, err)

	ownerBefore := balance(t, dbc, "SALE", testOwner)
	ok, err := dbc.CampaignFinishUp(dbc.DB, campaign.CampaignIndex, testOwner, campaign.EndDate)
	require.NoError(t, err)
	require.True(t, ok)

	require.Equal(t, big.NewInt(0).Add(ownerBefore, e18(9360)), balance(t, dbc, "SALE", testOwner))
}

func TestCampaignClaim(t *testing.T) {
	dbc := newTestDB(t)
	campaign := createSale(t, dbc, saleCampaign())
	depositNative(t, dbc, testBuyer, e18(10))

	_, err := dbc.CampaignBuy(dbc.DB, campaign.CampaignIndex, testBuyer, e18(2), testEpoch+1)
	require.NoError(t, err)

	// Claims stay closed until the owner opens them after settlement.
	_, err = dbc.CampaignClaim(dbc.DB, campaign.CampaignIndex, testBuyer, testEpoch+2)
	require.ErrorIs(t, err, ErrNothingToClaim)

	err = dbc.CampaignSetClaimable(dbc.DB, campaign.CampaignIndex, testOwner, testEpoch+2)
	require.ErrorIs(t, err, ErrNotYetEndable)

	ok, err := dbc.CampaignFinishUp(dbc.DB, campaign.CampaignIndex, testOwner, campaign.EndDate)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, dbc.CampaignSetClaimable(dbc.DB, campaign.CampaignIndex, testOwner, campaign.EndDate))

	qty, err := dbc.CampaignClaim(dbc.DB, campaign.CampaignIndex, testBuyer, campaign.EndDate+1)
	require.NoError(t, err)
	require.Equal(t, e18(9360), qty)
	require.Equal(t, e18(9360), balance(t, dbc, "SALE", testBuyer))

	_, err = dbc.CampaignClaim(dbc.DB, campaign.CampaignIndex, testBuyer, campaign.EndDate+2)
	require.ErrorIs(t, err, ErrNothingToClaim)

	// Non-participants have nothing to claim.
	_, err = dbc.CampaignClaim(dbc.DB, campaign.CampaignIndex, testBuyer2, campaign.EndDate+2)
	require.ErrorIs(t, err, ErrNothingToClaim)
}

func TestCampaignRefund(t *testing.T) {
	dbc := newTestDB(t)
	campaign := createSale(t, dbc, saleCampaign())
	depositNative(t, dbc, testBuyer, e18(10))

	// 1 native collected, soft cap 2: the sale will miss.
	_, err := dbc.CampaignBuy(dbc.DB, campaign.CampaignIndex, testBuyer, e18(1), testEpoch+1)
	require.NoError(t, err)

	// Not refundable while the window is still open.
	_, err = dbc.CampaignRefund(dbc.DB, campaign.CampaignIndex, testBuyer, testEpoch+2)
	require.ErrorIs(t, err, ErrNothingToClaim)

	// After the window closes under soft cap, refunds work without an
	// explicit finish.
	amt, err := dbc.CampaignRefund(dbc.DB, campaign.CampaignIndex, testBuyer, campaign.EndDate)
	require.NoError(t, err)
	require.Equal(t, e18(1), amt)
	require.Equal(t, e18(10), balance(t, dbc, NativeTick, testBuyer))

	_, err = dbc.CampaignRefund(dbc.DB, campaign.CampaignIndex, testBuyer, campaign.EndDate+1)
	require.ErrorIs(t, err, ErrNothingToClaim)

	created, err := dbc.Campaign(campaign.CampaignIndex)
	require.NoError(t, err)
	require.Equal(t, "0", created.CollectedNative.String())
}

func TestCampaignRefundAfterFailedFinish(t *testing.T) {
	dbc := newTestDB(t)
	campaign := createSale(t, dbc, saleCampaign())
	depositNative(t, dbc, testBuyer, e18(10))

	_, err := dbc.CampaignBuy(dbc.DB, campaign.CampaignIndex, testBuyer, e18(1), testEpoch+1)
	require.NoError(t, err)

	ok, err := dbc.CampaignFinishUp(dbc.DB, campaign.CampaignIndex, testOwner, campaign.EndDate)
	require.NoError(t, err)
	require.False(t, ok)

	amt, err := dbc.CampaignRefund(dbc.DB, campaign.CampaignIndex, testBuyer, campaign.EndDate+1)
	require.NoError(t, err)
	require.Equal(t, e18(1), amt)

	// A failed campaign never opens claims.
	err = dbc.CampaignSetClaimable(dbc.DB, campaign.CampaignIndex, testOwner, campaign.EndDate+1)
	require.ErrorIs(t, err, ErrNotYetEndable)
}

func TestCampaignWhitelistManagement(t *testing.T) {
	dbc := newTestDB(t)

	campaign := saleCampaign()
	campaign.AccessMode = models.AccessWhitelistOnly
	campaign = createSale(t, dbc, campaign)

	addrs := []string{testBuyer, testBuyer2, testBuyer}
	require.NoError(t, dbc.CampaignAppendWhitelisted(dbc.DB, campaign.CampaignIndex, testOwner, addrs, testEpoch))

	// Duplicates in the batch count once.
	created, err := dbc.Campaign(campaign.CampaignIndex)
	require.NoError(t, err)
	require.Equal(t, int64(2), created.NumOfWhitelisted)

	ok, err := dbc.CampaignWhitelisted(campaign.CampaignIndex, testBuyer)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, dbc.CampaignRemoveWhitelisted(dbc.DB, campaign.CampaignIndex, testOwner, []string{testBuyer}, testEpoch))

	created, err = dbc.Campaign(campaign.CampaignIndex)
	require.NoError(t, err)
	require.Equal(t, int64(1), created.NumOfWhitelisted)

	depositNative(t, dbc, testBuyer, e18(10))
	_, err = dbc.CampaignBuy(dbc.DB, campaign.CampaignIndex, testBuyer, e18(1), testEpoch+1)
	require.ErrorIs(t, err, ErrNotWhitelisted)
}
