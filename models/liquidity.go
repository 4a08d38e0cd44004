package models

// LiquidityPair is a trading pair seeded at settlement. The engine does not
// price against it; it only records the position and its lock.
type LiquidityPair struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	PairId          string    `gorm:"uniqueIndex" json:"pair_id"`
	Tick0Id         string    `gorm:"index" json:"tick0_id"`
	Tick1Id         string    `json:"tick1_id"`
	Amt0            *Number   `json:"amt0"`
	Amt1            *Number   `json:"amt1"`
	LpAmount        *Number   `json:"lp_amount"`
	ReservesAddress string    `json:"reserves_address"`
	HolderAddress   string    `json:"holder_address"`
	UnlockDate      int64     `json:"unlock_date"`
	UpdateDate      LocalTime `gorm:"autoUpdateTime" json:"update_date"`
	CreateDate      LocalTime `gorm:"autoCreateTime" json:"create_date"`
}

func (LiquidityPair) TableName() string {
	return "liquidity_pair"
}
