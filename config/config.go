package config

import (
	"encoding/json"
	"os"

	"github.com/caarlos0/env/v11"
)

type Mysql struct {
	Server   string `json:"server" env:"LAUNCHPAD_MYSQL_SERVER"`
	UserName string `json:"user_name" env:"LAUNCHPAD_MYSQL_USER"`
	PassWord string `json:"pass_word" env:"LAUNCHPAD_MYSQL_PASSWORD"`
	Database string `json:"database" env:"LAUNCHPAD_MYSQL_DATABASE"`
}

type Sqlite struct {
	Switch   bool   `json:"switch" env:"LAUNCHPAD_SQLITE_SWITCH"`
	Database string `json:"database" env:"LAUNCHPAD_SQLITE_DATABASE"`
}

type LevelDB struct {
	Dir string `json:"dir" env:"LAUNCHPAD_LEVELDB_DIR"`
}

type HttpServer struct {
	Switch bool   `json:"switch" env:"LAUNCHPAD_HTTP_SWITCH"`
	Server string `json:"server" env:"LAUNCHPAD_HTTP_SERVER"`
}

// Genesis seeds the factory singleton and the platform token on first boot.
type Genesis struct {
	AdminAddress    string `json:"admin_address" env:"LAUNCHPAD_ADMIN_ADDRESS"`
	FeePayee0       string `json:"fee_payee0" env:"LAUNCHPAD_FEE_PAYEE0"`
	FeePayee1       string `json:"fee_payee1" env:"LAUNCHPAD_FEE_PAYEE1"`
	LpRouterAddress string `json:"lp_router_address" env:"LAUNCHPAD_LP_ROUTER"`
	TeamBeneficiary string `json:"team_beneficiary" env:"LAUNCHPAD_TEAM_BENEFICIARY"`
	VestingEpoch    int64  `json:"vesting_epoch" env:"LAUNCHPAD_VESTING_EPOCH"`
}

type Config struct {
	DebugLevel int        `json:"debug_level" env:"LAUNCHPAD_DEBUG_LEVEL"`
	Mysql      Mysql      `json:"mysql"`
	Sqlite     Sqlite     `json:"sqlite"`
	LevelDB    LevelDB    `json:"leveldb"`
	HttpServer HttpServer `json:"http_server"`
	Ipfs       string     `json:"ipfs" env:"LAUNCHPAD_IPFS"`
	Genesis    Genesis    `json:"genesis"`
}

// LoadConfig reads the JSON config file and overlays LAUNCHPAD_* env vars.
func LoadConfig(cfg *Config, path string) {
	if path == "" {
		path = "config.json"
	}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			panic(err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		panic(err)
	}
}
