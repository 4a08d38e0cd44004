package router

import (
	"launchpad-engine/models"
	"launchpad-engine/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TokenRouter struct {
	dbc *storage.DBClient
	ldb *storage.LevelDBClient
}

func NewTokenRouter(dbc *storage.DBClient, ldb *storage.LevelDBClient) *TokenRouter {
	return &TokenRouter{
		dbc: dbc,
		ldb: ldb,
	}
}

// Deploy registers a sellable token and mints its supply to the holder.
// Platform admin only.
func (r *TokenRouter) Deploy(c *gin.Context) {
	params := &struct {
		Caller        string         `json:"caller"`
		TickId        string         `json:"tick_id"`
		Name          string         `json:"name"`
		Symbol        string         `json:"symbol"`
		Dec           int            `json:"dec"`
		Max           *models.Number `json:"max"`
		HolderAddress string         `json:"holder_address"`
	}{}

	if err := c.ShouldBindJSON(&params); err != nil {
		badRequest(c, err)
		return
	}

	token := &models.TokenCollect{
		TickId:        params.TickId,
		Name:          params.Name,
		Symbol:        params.Symbol,
		Dec:           params.Dec,
		Max:           orZero(params.Max),
		HolderAddress: params.HolderAddress,
	}

	supply := token.Max

	runCall(c, r.dbc, r.ldb, "token_deploy", 0, params.Caller,
		func(tx *gorm.DB, now int64) (*models.Number, error) {
			return supply, r.dbc.TokenDeploy(tx, params.Caller, token, now)
		})
}

// Deposit credits native value into the ledger. Platform admin only.
func (r *TokenRouter) Deposit(c *gin.Context) {
	params := &struct {
		Caller        string         `json:"caller"`
		HolderAddress string         `json:"holder_address"`
		Amt           *models.Number `json:"amt"`
	}{}

	if err := c.ShouldBindJSON(&params); err != nil {
		badRequest(c, err)
		return
	}

	if params.Amt == nil || params.Amt.Int().Sign() <= 0 {
		badRequest(c, storage.ErrInvalidConfiguration)
		return
	}

	runCall(c, r.dbc, r.ldb, "native_deposit", 0, params.Caller,
		func(tx *gorm.DB, now int64) (*models.Number, error) {
			return params.Amt, r.dbc.NativeDeposit(tx, params.Caller, params.HolderAddress, params.Amt.Int(), now)
		})
}

// Balance reads a ledger balance; a missing account reads as zero.
func (r *TokenRouter) Balance(c *gin.Context) {
	params := &struct {
		TickId        string `json:"tick_id"`
		HolderAddress string `json:"holder_address"`
	}{}

	if err := c.ShouldBindJSON(&params); err != nil {
		badRequest(c, err)
		return
	}

	amt, err := r.dbc.BalanceOf(params.TickId, params.HolderAddress)
	if err != nil {
		serverError(c, err)
		return
	}

	success(c, map[string]interface{}{
		"tick_id":        params.TickId,
		"holder_address": params.HolderAddress,
		"amt":            amt.String(),
	})
}
