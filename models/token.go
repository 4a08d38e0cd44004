package models

// TokenCollect is one fungible asset known to the ledger. The native value
// asset is itself a row here, so every transfer goes through the same
// balance accounting.
type TokenCollect struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	TickId        string    `gorm:"uniqueIndex" json:"tick_id"`
	Name          string    `json:"name"`
	Symbol        string    `json:"symbol"`
	Dec           int       `gorm:"column:dec_" json:"dec"`
	Max           *Number   `gorm:"column:max_" json:"max"`
	HolderAddress string    `json:"holder_address"`
	Transactions  int64     `json:"transactions"`
	UpdateDate    LocalTime `gorm:"autoUpdateTime" json:"update_date"`
	CreateDate    LocalTime `gorm:"autoCreateTime" json:"create_date"`
}

func (TokenCollect) TableName() string {
	return "token_collect"
}

type TokenCollectAddress struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	TickId        string    `gorm:"index:idx_token_holder" json:"tick_id"`
	HolderAddress string    `gorm:"index:idx_token_holder" json:"holder_address"`
	Amt           *Number   `json:"amt"`
	Transactions  int64     `json:"transactions"`
	UpdateDate    LocalTime `gorm:"autoUpdateTime" json:"update_date"`
	CreateDate    LocalTime `gorm:"autoCreateTime" json:"create_date"`
}

func (TokenCollectAddress) TableName() string {
	return "token_collect_address"
}
