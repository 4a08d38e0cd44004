package router

import (
	"errors"
	"net/http"
	"time"

	"launchpad-engine/metrics"
	"launchpad-engine/models"
	"launchpad-engine/storage"
	"launchpad-engine/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func errStatus(err error) int {
	switch {
	case errors.Is(err, storage.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrInvalidConfiguration),
		errors.Is(err, storage.ErrBelowMinimum),
		errors.Is(err, storage.ErrExceedsMaxLimit),
		errors.Is(err, storage.ErrHardCapExceeded):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrNotLive),
		errors.Is(err, storage.ErrNotYetEndable),
		errors.Is(err, storage.ErrAlreadyFinalized),
		errors.Is(err, storage.ErrAlreadyFunded),
		errors.Is(err, storage.ErrNotWhitelisted),
		errors.Is(err, storage.ErrNotQualified),
		errors.Is(err, storage.ErrNothingToClaim),
		errors.Is(err, storage.ErrNotYetUnlockable),
		errors.Is(err, storage.ErrAlreadyReleased),
		errors.Is(err, storage.ErrTransferFailed):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func badRequest(c *gin.Context, err error) {
	result := &utils.HttpResult{}
	result.Code = 400
	result.Msg = err.Error()
	c.JSON(http.StatusBadRequest, result)
}

func serverError(c *gin.Context, err error) {
	result := &utils.HttpResult{}
	result.Code = 500
	result.Msg = err.Error()
	c.JSON(http.StatusInternalServerError, result)
}

func success(c *gin.Context, data interface{}) {
	result := &utils.HttpResult{}
	result.Code = 200
	result.Msg = "success"
	result.Data = data
	c.JSON(http.StatusOK, result)
}

// runCall executes one state-changing call: one gorm transaction, full
// rollback on error, a journaled receipt either way. The client lock is
// held from Begin to Commit so calls execute one at a time against
// committed state.
func runCall(c *gin.Context, dbc *storage.DBClient, ldb *storage.LevelDBClient,
	op string, campaignIndex int64, caller string,
	fn func(tx *gorm.DB, now int64) (*models.Number, error)) {

	metrics.IncCall(op)
	now := time.Now().Unix()

	receipt := &storage.CallReceipt{
		OrderId:       uuid.New().String(),
		Op:            op,
		CampaignIndex: campaignIndex,
		Caller:        caller,
		CallTime:      models.LocalTime(now),
	}

	dbc.Lock()
	tx := dbc.DB.Begin()
	amt, err := fn(tx, now)
	if err != nil {
		tx.Rollback()
		dbc.Unlock()
		metrics.IncCallError(op)

		receipt.ErrInfo = err.Error()
		if ldb != nil {
			_ = ldb.PutReceipt(receipt)
		}

		status := errStatus(err)
		result := &utils.HttpResult{}
		result.Code = status
		result.Msg = err.Error()
		c.JSON(status, result)
		return
	}

	err = tx.Commit().Error
	dbc.Unlock()
	if err != nil {
		metrics.IncCallError(op)
		serverError(c, err)
		return
	}

	receipt.Success = true
	receipt.Amt = amt
	if ldb != nil {
		_ = ldb.PutReceipt(receipt)
	}

	data := map[string]interface{}{
		"order_id": receipt.OrderId,
	}
	if amt != nil {
		data["amt"] = amt.String()
	}

	success(c, data)
}

// ReceiptRouter serves journaled call receipts.
type ReceiptRouter struct {
	ldb *storage.LevelDBClient
}

func NewReceiptRouter(ldb *storage.LevelDBClient) *ReceiptRouter {
	return &ReceiptRouter{ldb: ldb}
}

func (r *ReceiptRouter) Receipt(c *gin.Context) {
	receipt, err := r.ldb.GetReceipt(c.Param("id"))
	if err != nil {
		result := &utils.HttpResult{}
		result.Code = errStatus(err)
		result.Msg = err.Error()
		c.JSON(errStatus(err), result)
		return
	}

	success(c, receipt)
}
