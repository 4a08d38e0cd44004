package router

import (
	"launchpad-engine/metrics"
	"launchpad-engine/models"
	"launchpad-engine/storage"
	"launchpad-engine/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type FactoryRouter struct {
	dbc *storage.DBClient
	ldb *storage.LevelDBClient
}

func NewFactoryRouter(dbc *storage.DBClient, ldb *storage.LevelDBClient) *FactoryRouter {
	return &FactoryRouter{
		dbc: dbc,
		ldb: ldb,
	}
}

// CreateCampaign instantiates a campaign. Platform admin only.
func (r *FactoryRouter) CreateCampaign(c *gin.Context) {
	params := &struct {
		Caller   string `json:"caller"`
		TokenId  string `json:"token_id"`
		SubIndex int    `json:"sub_index"`
		Owner    string `json:"campaign_owner"`

		SoftCap            *models.Number `json:"soft_cap"`
		HardCap            *models.Number `json:"hard_cap"`
		TokenSalesQty      *models.Number `json:"token_sales_qty"`
		FeePcnt            int64          `json:"fee_pcnt"`
		QualifyingTokenQty *models.Number `json:"qualifying_token_qty"`

		StartDate int64 `json:"start_date"`
		EndDate   int64 `json:"end_date"`
		MidDate   int64 `json:"mid_date"`

		MinBuyLimit *models.Number `json:"min_buy_limit"`
		MaxBuyLimit *models.Number `json:"max_buy_limit"`
		AccessMode  int            `json:"access_mode"`

		LpNativeQty    *models.Number `json:"lp_native_qty"`
		LpTokenQty     *models.Number `json:"lp_token_qty"`
		LpLockDuration int64          `json:"lp_lock_duration"`
		BurnUnsold     bool           `json:"burn_unsold"`
	}{}

	if err := c.ShouldBindJSON(&params); err != nil {
		badRequest(c, err)
		return
	}

	campaign := &models.CampaignCollect{
		TokenId:            params.TokenId,
		SubIndex:           params.SubIndex,
		CampaignOwner:      params.Owner,
		SoftCap:            orZero(params.SoftCap),
		HardCap:            orZero(params.HardCap),
		TokenSalesQty:      orZero(params.TokenSalesQty),
		FeePcnt:            params.FeePcnt,
		QualifyingTokenQty: orZero(params.QualifyingTokenQty),
		StartDate:          params.StartDate,
		EndDate:            params.EndDate,
		MidDate:            params.MidDate,
		MinBuyLimit:        orZero(params.MinBuyLimit),
		MaxBuyLimit:        orZero(params.MaxBuyLimit),
		AccessMode:         params.AccessMode,
		LpNativeQty:        orZero(params.LpNativeQty),
		LpTokenQty:         orZero(params.LpTokenQty),
		LpLockDuration:     params.LpLockDuration,
		BurnUnsold:         params.BurnUnsold,
	}

	var record *models.FactoryRecord
	runCall(c, r.dbc, r.ldb, "create_campaign", 0, params.Caller,
		func(tx *gorm.DB, now int64) (*models.Number, error) {
			var err error
			record, err = r.dbc.CampaignCreate(tx, params.Caller, campaign, now)
			if err != nil {
				return nil, err
			}
			metrics.IncCampaignCreated()
			return models.NewNumber(record.CampaignIndex), nil
		})
}

// Campaigns looks records up by index, token or owner.
func (r *FactoryRouter) Campaigns(c *gin.Context) {
	params := &struct {
		CampaignIndex *int64 `json:"campaign_index"`
		TokenId       string `json:"token_id"`
		CampaignOwner string `json:"campaign_owner"`
		Limit         int    `json:"limit"`
		OffSet        int    `json:"offset"`
	}{
		Limit:  10,
		OffSet: 0,
	}

	if err := c.ShouldBindJSON(&params); err != nil {
		badRequest(c, err)
		return
	}

	if params.CampaignIndex != nil {
		record, err := r.dbc.FactoryCampaign(*params.CampaignIndex)
		if err != nil {
			result := &utils.HttpResult{}
			result.Code = errStatus(err)
			result.Msg = err.Error()
			c.JSON(errStatus(err), result)
			return
		}

		success(c, record)
		return
	}

	filter := &models.FactoryRecord{
		TokenId:       params.TokenId,
		CampaignOwner: params.CampaignOwner,
	}

	records := make([]*models.FactoryRecord, 0)
	total := int64(0)
	err := r.dbc.DB.Model(&models.FactoryRecord{}).Where(filter).Count(&total).
		Order("campaign_index asc").Limit(params.Limit).Offset(params.OffSet).Find(&records).Error
	if err != nil {
		serverError(c, err)
		return
	}

	result := &utils.HttpResult{}
	result.Code = 200
	result.Msg = "success"
	result.Data = records
	result.Total = total
	c.JSON(200, result)
}

// Config exposes the fee vault and liquidity router configuration.
func (r *FactoryRouter) Config(c *gin.Context) {
	cfg, err := r.dbc.FactoryConfig()
	if err != nil {
		serverError(c, err)
		return
	}

	success(c, cfg)
}

// SetAddresses updates fee payees / lp router. Platform admin only.
func (r *FactoryRouter) SetAddresses(c *gin.Context) {
	params := &struct {
		Caller          string `json:"caller"`
		FeePayee0       string `json:"fee_payee0"`
		FeePayee1       string `json:"fee_payee1"`
		LpRouterAddress string `json:"lp_router_address"`
	}{}

	if err := c.ShouldBindJSON(&params); err != nil {
		badRequest(c, err)
		return
	}

	runCall(c, r.dbc, r.ldb, "factory_set_addresses", 0, params.Caller,
		func(tx *gorm.DB, now int64) (*models.Number, error) {
			return nil, r.dbc.FactorySetAddresses(tx, params.Caller,
				params.FeePayee0, params.FeePayee1, params.LpRouterAddress)
		})
}

func orZero(n *models.Number) *models.Number {
	if n == nil {
		return models.NewNumber(0)
	}
	return n
}
