package router

import (
	"strconv"
	"time"

	"launchpad-engine/metrics"
	"launchpad-engine/models"
	"launchpad-engine/storage"
	"launchpad-engine/utils"

	"github.com/gin-gonic/gin"
	shell "github.com/ipfs/go-ipfs-api"
	"gorm.io/gorm"
)

type CampaignRouter struct {
	dbc  *storage.DBClient
	ldb  *storage.LevelDBClient
	ipfs *shell.Shell
}

func NewCampaignRouter(dbc *storage.DBClient, ldb *storage.LevelDBClient, ipfs *shell.Shell) *CampaignRouter {
	return &CampaignRouter{
		dbc:  dbc,
		ldb:  ldb,
		ipfs: ipfs,
	}
}

type campaignCall struct {
	CampaignIndex int64  `json:"campaign_index"`
	Caller        string `json:"caller"`
}

// FundIn escrows the sale allotment from the campaign owner.
func (r *CampaignRouter) FundIn(c *gin.Context) {
	params := &campaignCall{}
	if err := c.ShouldBindJSON(&params); err != nil {
		badRequest(c, err)
		return
	}

	runCall(c, r.dbc, r.ldb, "fund_in", params.CampaignIndex, params.Caller,
		func(tx *gorm.DB, now int64) (*models.Number, error) {
			return nil, r.dbc.CampaignFundIn(tx, params.CampaignIndex, params.Caller, now)
		})
}

// Buy contributes native value while the sale is live.
func (r *CampaignRouter) Buy(c *gin.Context) {
	params := &struct {
		CampaignIndex int64          `json:"campaign_index"`
		Caller        string         `json:"caller"`
		Value         *models.Number `json:"value"`
	}{}

	if err := c.ShouldBindJSON(&params); err != nil {
		badRequest(c, err)
		return
	}

	if params.Value == nil || params.Value.Int().Sign() <= 0 {
		badRequest(c, storage.ErrInvalidConfiguration)
		return
	}

	runCall(c, r.dbc, r.ldb, "buy_tokens", params.CampaignIndex, params.Caller,
		func(tx *gorm.DB, now int64) (*models.Number, error) {
			qty, err := r.dbc.CampaignBuy(tx, params.CampaignIndex, params.Caller, params.Value.Int(), now)
			if err != nil {
				return nil, err
			}
			return (*models.Number)(qty), nil
		})
}

// FinishUp settles a closed sale.
func (r *CampaignRouter) FinishUp(c *gin.Context) {
	params := &campaignCall{}
	if err := c.ShouldBindJSON(&params); err != nil {
		badRequest(c, err)
		return
	}

	start := time.Now()
	runCall(c, r.dbc, r.ldb, "finish_up", params.CampaignIndex, params.Caller,
		func(tx *gorm.DB, now int64) (*models.Number, error) {
			success, err := r.dbc.CampaignFinishUp(tx, params.CampaignIndex, params.Caller, now)
			if err != nil {
				return nil, err
			}

			metrics.ObserveSettle(time.Since(start).Seconds())
			if success {
				metrics.IncFinalized("success")
				return models.NewNumber(1), nil
			}
			metrics.IncFinalized("failed")
			return models.NewNumber(0), nil
		})
}

// SetClaimable opens token claims after a successful finish.
func (r *CampaignRouter) SetClaimable(c *gin.Context) {
	params := &campaignCall{}
	if err := c.ShouldBindJSON(&params); err != nil {
		badRequest(c, err)
		return
	}

	runCall(c, r.dbc, r.ldb, "set_token_claimable", params.CampaignIndex, params.Caller,
		func(tx *gorm.DB, now int64) (*models.Number, error) {
			return nil, r.dbc.CampaignSetClaimable(tx, params.CampaignIndex, params.Caller, now)
		})
}

// Claim pays out a participant's reserved tokens.
func (r *CampaignRouter) Claim(c *gin.Context) {
	params := &campaignCall{}
	if err := c.ShouldBindJSON(&params); err != nil {
		badRequest(c, err)
		return
	}

	runCall(c, r.dbc, r.ldb, "claim_tokens", params.CampaignIndex, params.Caller,
		func(tx *gorm.DB, now int64) (*models.Number, error) {
			qty, err := r.dbc.CampaignClaim(tx, params.CampaignIndex, params.Caller, now)
			if err != nil {
				return nil, err
			}
			return (*models.Number)(qty), nil
		})
}

// Refund returns a participant's native contribution after a failed sale.
func (r *CampaignRouter) Refund(c *gin.Context) {
	params := &campaignCall{}
	if err := c.ShouldBindJSON(&params); err != nil {
		badRequest(c, err)
		return
	}

	runCall(c, r.dbc, r.ldb, "refund", params.CampaignIndex, params.Caller,
		func(tx *gorm.DB, now int64) (*models.Number, error) {
			amt, err := r.dbc.CampaignRefund(tx, params.CampaignIndex, params.Caller, now)
			if err != nil {
				return nil, err
			}
			return (*models.Number)(amt), nil
		})
}

type whitelistCall struct {
	CampaignIndex int64    `json:"campaign_index"`
	Caller        string   `json:"caller"`
	Addresses     []string `json:"addresses"`
}

func (r *CampaignRouter) AppendWhitelisted(c *gin.Context) {
	params := &whitelistCall{}
	if err := c.ShouldBindJSON(&params); err != nil {
		badRequest(c, err)
		return
	}

	runCall(c, r.dbc, r.ldb, "append_whitelisted", params.CampaignIndex, params.Caller,
		func(tx *gorm.DB, now int64) (*models.Number, error) {
			return nil, r.dbc.CampaignAppendWhitelisted(tx, params.CampaignIndex, params.Caller, params.Addresses, now)
		})
}

func (r *CampaignRouter) RemoveWhitelisted(c *gin.Context) {
	params := &whitelistCall{}
	if err := c.ShouldBindJSON(&params); err != nil {
		badRequest(c, err)
		return
	}

	runCall(c, r.dbc, r.ldb, "remove_whitelisted", params.CampaignIndex, params.Caller,
		func(tx *gorm.DB, now int64) (*models.Number, error) {
			return nil, r.dbc.CampaignRemoveWhitelisted(tx, params.CampaignIndex, params.Caller, params.Addresses, now)
		})
}

// Info reads one campaign's full configuration and state, plus liveness
// and an optional participant record.
func (r *CampaignRouter) Info(c *gin.Context) {
	params := &struct {
		CampaignIndex int64  `json:"campaign_index"`
		HolderAddress string `json:"holder_address"`
	}{}

	if err := c.ShouldBindJSON(&params); err != nil {
		badRequest(c, err)
		return
	}

	campaign, err := r.dbc.Campaign(params.CampaignIndex)
	if err != nil {
		result := &utils.HttpResult{}
		result.Code = errStatus(err)
		result.Msg = err.Error()
		c.JSON(errStatus(err), result)
		return
	}

	isLive, err := r.dbc.CampaignIsLive(params.CampaignIndex, time.Now().Unix())
	if err != nil {
		serverError(c, err)
		return
	}

	data := map[string]interface{}{
		"campaign": campaign,
		"is_live":  isLive,
	}

	if params.HolderAddress != "" {
		contribution, err := r.dbc.CampaignContributionOf(params.CampaignIndex, params.HolderAddress)
		if err != nil {
			serverError(c, err)
			return
		}

		whitelisted, err := r.dbc.CampaignWhitelisted(params.CampaignIndex, params.HolderAddress)
		if err != nil {
			serverError(c, err)
			return
		}

		data["contribution"] = contribution
		data["whitelisted"] = whitelisted
	}

	success(c, data)
}

// Logo pins an uploaded campaign logo to IPFS and stores the CID.
func (r *CampaignRouter) Logo(c *gin.Context) {
	caller := c.PostForm("caller")
	index, err := strconv.ParseInt(c.PostForm("campaign_index"), 10, 64)
	if err != nil {
		badRequest(c, err)
		return
	}

	file, _, err := c.Request.FormFile("logo")
	if err != nil {
		badRequest(c, err)
		return
	}
	defer file.Close()

	cid, err := r.ipfs.Add(file)
	if err != nil {
		serverError(c, err)
		return
	}

	runCall(c, r.dbc, r.ldb, "set_logo", index, caller,
		func(tx *gorm.DB, now int64) (*models.Number, error) {
			return nil, r.dbc.CampaignSetLogo(tx, index, caller, cid)
		})
}
