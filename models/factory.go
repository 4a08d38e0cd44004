package models

// FactoryConfig is the platform singleton: admin authority, fee vault
// payees, liquidity router handle and the platform token. Written once at
// genesis; fee/router fields mutable by the admin only.
type FactoryConfig struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	AdminAddress    string    `json:"admin_address"`
	PlatformTokenId string    `json:"platform_token_id"`
	FeeVaultAddress string    `json:"fee_vault_address"`
	FeePayee0       string    `json:"fee_payee0"`
	FeePayee1       string    `json:"fee_payee1"`
	LpRouterAddress string    `json:"lp_router_address"`
	UpdateDate      LocalTime `gorm:"autoUpdateTime" json:"update_date"`
	CreateDate      LocalTime `gorm:"autoCreateTime" json:"create_date"`
}

func (FactoryConfig) TableName() string {
	return "factory_config"
}

// FactoryRecord indexes one created campaign. Append-only.
type FactoryRecord struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	CampaignIndex   int64     `gorm:"uniqueIndex" json:"campaign_index"`
	ContractAddress string    `json:"contract_address"`
	TokenId         string    `gorm:"index" json:"token_id"`
	SubIndex        int       `json:"sub_index"`
	CampaignOwner   string    `json:"campaign_owner"`
	CreateDate      LocalTime `gorm:"autoCreateTime" json:"create_date"`
}

func (FactoryRecord) TableName() string {
	return "factory_record"
}

// FeeVaultDeposit records one settlement fee credit, split between the two
// configured payees by the depositing op.
type FeeVaultDeposit struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	CampaignIndex int64     `gorm:"index" json:"campaign_index"`
	TickId        string    `json:"tick_id"`
	Amt           *Number   `json:"amt"`
	PayeeAddress  string    `json:"payee_address"`
	CreateDate    LocalTime `gorm:"autoCreateTime" json:"create_date"`
}

func (FeeVaultDeposit) TableName() string {
	return "fee_vault_deposit"
}
