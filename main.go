package main

import (
	"os"
	"os/signal"
	"syscall"

	"launchpad-engine/config"
	"launchpad-engine/metrics"
	"launchpad-engine/models"
	"launchpad-engine/router"
	"launchpad-engine/storage"

	"github.com/dogecoinw/go-dogecoin/log"
	"github.com/gin-gonic/gin"
	shell "github.com/ipfs/go-ipfs-api"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	cfg config.Config
)

func main() {

	config.LoadConfig(&cfg, "")

	glogger := log.NewGlogHandler(log.StreamHandler(os.Stderr, log.TerminalFormat(true)))
	glogger.Verbosity(log.Lvl(cfg.DebugLevel))
	log.Root().SetHandler(glogger)

	var dbClient *storage.DBClient
	if cfg.Sqlite.Switch {
		dbClient = storage.NewSqliteClient(cfg.Sqlite)
	} else {
		dbClient = storage.NewMysqlClient(cfg.Mysql)
	}

	if err := dbClient.AutoMigrate(); err != nil {
		log.Error("engine", "AutoMigrate", err.Error())
		os.Exit(1)
	}

	genesis := &models.FactoryConfig{
		AdminAddress:    cfg.Genesis.AdminAddress,
		FeePayee0:       cfg.Genesis.FeePayee0,
		FeePayee1:       cfg.Genesis.FeePayee1,
		LpRouterAddress: cfg.Genesis.LpRouterAddress,
	}
	if err := dbClient.FactoryInit(genesis, cfg.Genesis.TeamBeneficiary, cfg.Genesis.VestingEpoch); err != nil {
		log.Error("engine", "FactoryInit", err.Error())
		os.Exit(1)
	}

	ipfs := shell.NewShell(cfg.Ipfs)

	if cfg.HttpServer.Switch {
		metrics.MustRegister()

		levelClient := storage.NewLevelDB(cfg.LevelDB)
		grt := gin.Default()
		grt.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS, PUT, DELETE")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept")
			c.Writer.Header().Set("Access-Control-Max-Age", "3600")
			if c.Request.Method == "OPTIONS" {
				c.AbortWithStatus(200)
				return
			}
			c.Next()
		})

		grt.GET("/metrics", func(c *gin.Context) {
			promhttp.Handler().ServeHTTP(c.Writer, c.Request)
		})

		v1 := grt.Group("/v1")
		{
			factoryRouter := router.NewFactoryRouter(dbClient, levelClient)
			v1.POST("/factory/campaign/create", factoryRouter.CreateCampaign)
			v1.POST("/factory/campaigns", factoryRouter.Campaigns)
			v1.POST("/factory/config", factoryRouter.Config)
			v1.POST("/factory/addresses", factoryRouter.SetAddresses)

			campaignRouter := router.NewCampaignRouter(dbClient, levelClient, ipfs)
			v1.POST("/campaign/fundin", campaignRouter.FundIn)
			v1.POST("/campaign/buy", campaignRouter.Buy)
			v1.POST("/campaign/finishup", campaignRouter.FinishUp)
			v1.POST("/campaign/claimable", campaignRouter.SetClaimable)
			v1.POST("/campaign/claim", campaignRouter.Claim)
			v1.POST("/campaign/refund", campaignRouter.Refund)
			v1.POST("/campaign/whitelist/append", campaignRouter.AppendWhitelisted)
			v1.POST("/campaign/whitelist/remove", campaignRouter.RemoveWhitelisted)
			v1.POST("/campaign/info", campaignRouter.Info)
			v1.POST("/campaign/logo", campaignRouter.Logo)

			tokenRouter := router.NewTokenRouter(dbClient, levelClient)
			v1.POST("/token/deploy", tokenRouter.Deploy)
			v1.POST("/token/deposit", tokenRouter.Deposit)
			v1.POST("/token/balance", tokenRouter.Balance)

			vestingRouter := router.NewVestingRouter(dbClient, levelClient)
			v1.POST("/vesting/unlock", vestingRouter.Unlock)
			v1.POST("/vesting/schedule", vestingRouter.Schedule)

			receiptRouter := router.NewReceiptRouter(levelClient)
			v1.GET("/receipt/:id", receiptRouter.Receipt)
		}

		go func() {
			if err := grt.Run(cfg.HttpServer.Server); err != nil {
				log.Error("engine", "HttpServer", err.Error())
				os.Exit(1)
			}
		}()
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	log.Info("engine", "main", "received an interrupt, stopping services")
}
