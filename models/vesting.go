package models

// VestingCollect holds the team allocation of the platform token: one
// beneficiary, a reference epoch, and a fixed total across the tranches.
type VestingCollect struct {
	ID                 uint      `gorm:"primarykey" json:"id"`
	TokenId            string    `json:"token_id"`
	BeneficiaryAddress string    `json:"beneficiary_address"`
	ReferenceEpoch     int64     `json:"reference_epoch"`
	TotalAllocation    *Number   `json:"total_allocation"`
	UpdateDate         LocalTime `gorm:"autoUpdateTime" json:"update_date"`
	CreateDate         LocalTime `gorm:"autoCreateTime" json:"create_date"`
}

func (VestingCollect) TableName() string {
	return "vesting_collect"
}

// VestingTranche releases Amt once UnlockOffset seconds have elapsed since
// the reference epoch. Each tranche releases exactly once.
type VestingTranche struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	TrancheIndex int       `gorm:"uniqueIndex" json:"tranche_index"`
	UnlockOffset int64     `json:"unlock_offset"`
	Amt          *Number   `json:"amt"`
	Released     bool      `json:"released"`
	ReleaseDate  int64     `json:"release_date"`
	UpdateDate   LocalTime `gorm:"autoUpdateTime" json:"update_date"`
	CreateDate   LocalTime `gorm:"autoCreateTime" json:"create_date"`
}

func (VestingTranche) TableName() string {
	return "vesting_tranche"
}
