package router

import (
	"launchpad-engine/models"
	"launchpad-engine/storage"
	"launchpad-engine/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type VestingRouter struct {
	dbc *storage.DBClient
	ldb *storage.LevelDBClient
}

func NewVestingRouter(dbc *storage.DBClient, ldb *storage.LevelDBClient) *VestingRouter {
	return &VestingRouter{
		dbc: dbc,
		ldb: ldb,
	}
}

// Unlock releases one team tranche to the beneficiary.
func (r *VestingRouter) Unlock(c *gin.Context) {
	params := &struct {
		TrancheIndex int    `json:"tranche_index"`
		Caller       string `json:"caller"`
	}{}

	if err := c.ShouldBindJSON(&params); err != nil {
		badRequest(c, err)
		return
	}

	runCall(c, r.dbc, r.ldb, "unlock_team_allocation", 0, params.Caller,
		func(tx *gorm.DB, now int64) (*models.Number, error) {
			amt, err := r.dbc.VestingUnlock(tx, params.TrancheIndex, params.Caller, now)
			if err != nil {
				return nil, err
			}
			return (*models.Number)(amt), nil
		})
}

// Schedule reads the vesting schedule and its tranches.
func (r *VestingRouter) Schedule(c *gin.Context) {
	vesting, tranches, err := r.dbc.VestingSchedule()
	if err != nil {
		result := &utils.HttpResult{}
		result.Code = errStatus(err)
		result.Msg = err.Error()
		c.JSON(errStatus(err), result)
		return
	}

	success(c, map[string]interface{}{
		"vesting":  vesting,
		"tranches": tranches,
	})
}
