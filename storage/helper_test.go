package storage

import (
	"math/big"
	"path/filepath"
	"testing"

	"launchpad-engine/config"
	"launchpad-engine/models"

	"github.com/stretchr/testify/require"
)

const (
	testAdmin       = "DAdminUKxV2tEvwrjQGmQCClhqI0kTLx"
	testBeneficiary = "DTeamW9dLqPg6XHnBiiwcYxBsucAfY1b"
	testPayee0      = "DPayeeZeroQ4F7kNCRcTr0x2mSQJns4c"
	testPayee1      = "DPayeeOneLMCdqn02gwZCkYjXGoD5bXi"
	testOwner       = "DOwnerPBiivDsG8Hk7QMrsQ9PHCnEXAm"
	testBuyer       = "DBuyerQg6fAyHcPXfZB2V3o5x50TvDQE"
	testBuyer2      = "DBuyerTwoRg825f2zVnbcQj3YZprXmq9"
	testEpoch       = int64(1700000000)
)

func newTestDB(t *testing.T) *DBClient {
	t.Helper()

	dbc := NewSqliteClient(config.Sqlite{
		Database: filepath.Join(t.TempDir(), "engine.db"),
	})
	require.NoError(t, dbc.AutoMigrate())

	genesis := &models.FactoryConfig{
		AdminAddress:    testAdmin,
		FeePayee0:       testPayee0,
		FeePayee1:       testPayee1,
		LpRouterAddress: "DRouterHbUZg0B1M9qWqgrkcBjzefdRh",
	}
	require.NoError(t, dbc.FactoryInit(genesis, testBeneficiary, testEpoch))

	return dbc
}

func e18(n int64) *big.Int {
	exp := big.NewInt(0).Exp(big.NewInt(10), big.NewInt(18), nil)
	return exp.Mul(exp, big.NewInt(n))
}

func num(v *big.Int) *models.Number {
	return (*models.Number)(big.NewInt(0).Set(v))
}

// deployToken registers a sale token and mints its supply to the owner.
func deployToken(t *testing.T, dbc *DBClient, tickId string, dec int, supply *big.Int) {
	t.Helper()

	err := dbc.TokenDeploy(dbc.DB, testAdmin, &models.TokenCollect{
		TickId:        tickId,
		Name:          tickId + " Token",
		Symbol:        tickId,
		Dec:           dec,
		Max:           num(supply),
		HolderAddress: testOwner,
	}, testEpoch)
	require.NoError(t, err)
}

func depositNative(t *testing.T, dbc *DBClient, holder string, amt *big.Int) {
	t.Helper()
	require.NoError(t, dbc.NativeDeposit(dbc.DB, testAdmin, holder, amt, testEpoch))
}

func balance(t *testing.T, dbc *DBClient, tickId, holder string) *big.Int {
	t.Helper()
	amt, err := dbc.BalanceOf(tickId, holder)
	require.NoError(t, err)
	return amt
}

// saleCampaign is a typical sale: 4 native hard cap, 18720 tokens on
// sale, 8112 liquidity tokens against 1 native, 5% fee.
func saleCampaign() *models.CampaignCollect {
	return &models.CampaignCollect{
		TokenId:            "SALE",
		SubIndex:           0,
		CampaignOwner:      testOwner,
		SoftCap:            num(e18(2)),
		HardCap:            num(e18(4)),
		TokenSalesQty:      num(e18(18720)),
		FeePcnt:            50000,
		QualifyingTokenQty: models.NewNumber(0),
		StartDate:          testEpoch,
		EndDate:            testEpoch + 7*24*3600,
		MinBuyLimit:        num(e18(1)),
		MaxBuyLimit:        num(e18(2)),
		AccessMode:         models.AccessPublic,
		LpNativeQty:        num(e18(1)),
		LpTokenQty:         num(e18(8112)),
		LpLockDuration:     30 * 24 * 3600,
		BurnUnsold:         true,
	}
}

// createSale deploys the SALE token, creates the campaign and funds it in.
func createSale(t *testing.T, dbc *DBClient, campaign *models.CampaignCollect) *models.CampaignCollect {
	t.Helper()

	deployToken(t, dbc, campaign.TokenId, 18, e18(100000))

	_, err := dbc.CampaignCreate(dbc.DB, testAdmin, campaign, testEpoch)
	require.NoError(t, err)

	require.NoError(t, dbc.CampaignFundIn(dbc.DB, campaign.CampaignIndex, testOwner, testEpoch))

	created, err := dbc.Campaign(campaign.CampaignIndex)
	require.NoError(t, err)
	return created
}
