package models

// Campaign access modes.
const (
	AccessPublic             = 0
	AccessWhitelistOnly      = 1
	AccessWhitelistThenEvery = 2
)

// CampaignCollect is one sale: the immutable configuration written by the
// factory plus the mutable lifecycle state. Escrowed balances live in
// token_collect_address under EscrowAddress.
type CampaignCollect struct {
	ID            uint   `gorm:"primarykey" json:"id"`
	CampaignIndex int64  `gorm:"uniqueIndex" json:"campaign_index"`
	TokenId       string `gorm:"index" json:"token_id"`
	SubIndex      int    `json:"sub_index"`
	CampaignOwner string `json:"campaign_owner"`
	EscrowAddress string `json:"escrow_address"`
	Logo          string `json:"logo"`

	SoftCap            *Number `json:"soft_cap"`
	HardCap            *Number `json:"hard_cap"`
	TokenSalesQty      *Number `json:"token_sales_qty"`
	FeePcnt            int64   `json:"fee_pcnt"`
	QualifyingTokenQty *Number `json:"qualifying_token_qty"`

	StartDate int64 `json:"start_date"`
	EndDate   int64 `json:"end_date"`
	MidDate   int64 `json:"mid_date"`

	MinBuyLimit *Number `json:"min_buy_limit"`
	MaxBuyLimit *Number `json:"max_buy_limit"`
	AccessMode  int     `json:"access_mode"`

	LpNativeQty    *Number `json:"lp_native_qty"`
	LpTokenQty     *Number `json:"lp_token_qty"`
	LpLockDuration int64   `json:"lp_lock_duration"`
	BurnUnsold     bool    `json:"burn_unsold"`

	CollectedNative  *Number `gorm:"default:'0'" json:"collected_native"`
	TokenFunded      *Number `gorm:"default:'0'" json:"token_funded"`
	LpTokenAmount    *Number `gorm:"default:'0'" json:"lp_token_amount"`
	LpUnlockDate     int64   `json:"lp_unlock_date"`
	NumOfWhitelisted int64   `json:"num_of_whitelisted"`

	IsFunded        bool `json:"is_funded"`
	IsFinalized     bool `json:"is_finalized"`
	FinishUpSuccess bool `json:"finish_up_success"`
	TokensClaimable bool `json:"tokens_claimable"`

	UpdateDate LocalTime `gorm:"autoUpdateTime" json:"update_date"`
	CreateDate LocalTime `gorm:"autoCreateTime" json:"create_date"`
}

func (CampaignCollect) TableName() string {
	return "campaign_collect"
}

// CampaignContribution is one participant's running total. Amt is the native
// value paid in, TokenQty the exact token amount reserved at purchase time.
// Claim zeroes TokenQty, refund zeroes Amt; each happens at most once.
type CampaignContribution struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	CampaignIndex int64     `gorm:"index:idx_contrib_holder" json:"campaign_index"`
	HolderAddress string    `gorm:"index:idx_contrib_holder" json:"holder_address"`
	Amt           *Number   `gorm:"default:'0'" json:"amt"`
	TokenQty      *Number   `gorm:"default:'0'" json:"token_qty"`
	Claimed       bool      `json:"claimed"`
	Refunded      bool      `json:"refunded"`
	UpdateDate    LocalTime `gorm:"autoUpdateTime" json:"update_date"`
	CreateDate    LocalTime `gorm:"autoCreateTime" json:"create_date"`
}

func (CampaignContribution) TableName() string {
	return "campaign_contribution"
}

type CampaignWhitelist struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	CampaignIndex int64     `gorm:"index:idx_whitelist_holder" json:"campaign_index"`
	HolderAddress string    `gorm:"index:idx_whitelist_holder" json:"holder_address"`
	CreateDate    LocalTime `gorm:"autoCreateTime" json:"create_date"`
}

func (CampaignWhitelist) TableName() string {
	return "campaign_whitelist"
}
