package storage

import (
	"fmt"
	"sync"

	"launchpad-engine/config"

	"github.com/dogecoinw/doged/btcutil"
	"github.com/dogecoinw/doged/chaincfg"
	"github.com/syndtr/goleveldb/leveldb"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NativeTick is the ledger row for the native value asset. Contributions,
// fees and liquidity seeding all move this tick.
const NativeTick = "WBNB(WRAPPED-BNB)"

type DBClient struct {
	DB   *gorm.DB
	lock sync.Mutex
}

// Lock serializes state-changing calls: the holder's transaction must
// commit or roll back before the next call begins, so every guard check
// sees committed state. Storage ops do not take the lock themselves.
func (db *DBClient) Lock() {
	db.lock.Lock()
}

func (db *DBClient) Unlock() {
	db.lock.Unlock()
}

func NewSqliteClient(cfg config.Sqlite) *DBClient {
	db, err := gorm.Open(sqlite.Open(cfg.Database), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(err)
	}

	return &DBClient{DB: db}
}

func NewMysqlClient(cfg config.Mysql) *DBClient {
	dsn := fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.UserName, cfg.PassWord, cfg.Server, cfg.Database)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(err)
	}

	return &DBClient{DB: db}
}

type LevelDBClient struct {
	DB *leveldb.DB
}

func NewLevelDB(cfg config.LevelDB) *LevelDBClient {
	db, err := leveldb.OpenFile(cfg.Dir, nil)
	if err != nil {
		panic(err)
	}

	return &LevelDBClient{DB: db}
}

// EscrowAddress derives the deterministic custody address for a seed string
// (campaign identity, pair identity, vault identity). Same derivation for
// everyone, so custody accounts need no key material.
func EscrowAddress(seed string) string {
	addr, err := btcutil.NewAddressScriptHash([]byte(seed), &chaincfg.MainNetParams)
	if err != nil {
		panic(err)
	}
	return addr.String()
}
