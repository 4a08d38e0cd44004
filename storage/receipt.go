package storage

import (
	"encoding/json"
	"errors"

	"launchpad-engine/models"

	"github.com/syndtr/goleveldb/leveldb"
)

// CallReceipt journals the outcome of one state-changing call.
type CallReceipt struct {
	OrderId       string           `json:"order_id"`
	Op            string           `json:"op"`
	CampaignIndex int64            `json:"campaign_index,omitempty"`
	Caller        string           `json:"caller"`
	Amt           *models.Number   `json:"amt,omitempty"`
	Success       bool             `json:"success"`
	ErrInfo       string           `json:"err_info,omitempty"`
	CallTime      models.LocalTime `json:"call_time"`
}

// PutReceipt journals a receipt under its order id.
func (ldb *LevelDBClient) PutReceipt(receipt *CallReceipt) error {

	data, err := json.Marshal(receipt)
	if err != nil {
		return err
	}

	return ldb.DB.Put([]byte("receipt-"+receipt.OrderId), data, nil)
}

// GetReceipt reads a receipt back; ErrNotFound when the id is unknown.
func (ldb *LevelDBClient) GetReceipt(orderId string) (*CallReceipt, error) {

	data, err := ldb.DB.Get([]byte("receipt-"+orderId), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	receipt := &CallReceipt{}
	err = json.Unmarshal(data, receipt)
	if err != nil {
		return nil, err
	}

	return receipt, nil
}
