package main

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/database/mongoclient"
	"github.com/x-xyz/marketplace/base/database/redisclient"
	"github.com/x-xyz/marketplace/base/goroutine"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/base/metrics"
	"github.com/x-xyz/marketplace/base/tracker"
	bValidator "github.com/x-xyz/marketplace/base/validator"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/keys"
	"github.com/x-xyz/marketplace/domain/market"
	mmiddleware "github.com/x-xyz/marketplace/middleware"
	"github.com/x-xyz/marketplace/service/cache"
	"github.com/x-xyz/marketplace/service/cache/provider"
	"github.com/x-xyz/marketplace/service/cache/provider/compound"
	"github.com/x-xyz/marketplace/service/cache/provider/primitive"
	redisProvider "github.com/x-xyz/marketplace/service/cache/provider/redis"
	"github.com/x-xyz/marketplace/service/chain"
	"github.com/x-xyz/marketplace/service/chain/contract"
	"github.com/x-xyz/marketplace/service/discord"
	"github.com/x-xyz/marketplace/service/query"
	"github.com/x-xyz/marketplace/service/redis"
	auth_delivery "github.com/x-xyz/marketplace/stores/auth/delivery/http"
	auth_middleware "github.com/x-xyz/marketplace/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/x-xyz/marketplace/stores/auth/usecase"
	chain_usecase "github.com/x-xyz/marketplace/stores/chain/usecase"
	collection_usecase "github.com/x-xyz/marketplace/stores/collection/usecase"
	contract_repository "github.com/x-xyz/marketplace/stores/contract/repository"
	custody_usecase "github.com/x-xyz/marketplace/stores/custody/usecase"
	deposit_repository "github.com/x-xyz/marketplace/stores/deposit/repository"
	deposit_usecase "github.com/x-xyz/marketplace/stores/deposit/usecase"
	hc_delivery "github.com/x-xyz/marketplace/stores/healthcheck/delivery/http"
	hc_repo "github.com/x-xyz/marketplace/stores/healthcheck/repository"
	hc_usecase "github.com/x-xyz/marketplace/stores/healthcheck/usecase"
	offering_repository "github.com/x-xyz/marketplace/stores/offering/repository"
	offering_usecase "github.com/x-xyz/marketplace/stores/offering/usecase"
	outbox_repository "github.com/x-xyz/marketplace/stores/outbox/repository"
	outbox_usecase "github.com/x-xyz/marketplace/stores/outbox/usecase"
	settlement_delivery "github.com/x-xyz/marketplace/stores/settlement/delivery/http"
	settlement_usecase "github.com/x-xyz/marketplace/stores/settlement/usecase"
	tracker_state_repository "github.com/x-xyz/marketplace/stores/tracker_state/repository"
)

func init() {
	configFile := pflag.String("config", "infra/configs/config.yaml", "config file")
	pflag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		panic(err)
	}

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configFile)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		panic(err)
	}

	log.SetDebug(viper.GetBool("debug"))
	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

type royaltyOverride struct {
	PaymentAddress string `mapstructure:"paymentAddress"`
	Share          string `mapstructure:"share"`
}

//	@title			X Marketplace API
//	@version		1.0
//	@description	Listing, bidding and settlement of escrowed NFTs.

// main
//
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						Authorization
//	@description				retrive token from #/auth/post_auth_sign and apply with `bearer {token}`
func main() {
	defer log.Sync()

	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middL.CORS(viper.GetStringSlice("http.allowOrigins")...))
	e.Validator = bValidator.NewCustomValidator(bValidator.New())

	context := ctx.Background()

	// init storage, an unset mongo uri runs on the in process store
	var (
		mongoClient *mongoclient.Client
		q           query.Mongo
	)
	if uri := viper.GetString("mongo.uri"); uri != "" {
		context.Info("init mongo")
		mongoClient = mongoclient.MustConnect(mongoclient.Config{
			URI:                uri,
			AuthDBName:         viper.GetString("mongo.authDBName"),
			DBName:             viper.GetString("mongo.dbName"),
			SSL:                viper.GetBool("mongo.enableSSL"),
			SetSafe:            true,
			PoolSizeMultiplier: viper.GetFloat64("mongo.poolMultiplier"),
		})
		mustEnsureIndexes(context, mongoClient)
		q = query.New(mongoClient, viper.GetBool("mongo.checkIndex"))
	} else {
		context.Warn("mongo.uri not set, state lives in memory")
		q = query.NewMemory()
	}

	// init Redis service
	var redisCache redis.Service
	cacheLayers := []provider.Provider{primitive.NewPrimitive("marketplace", viper.GetInt("cache.localSizeMB"))}
	if uri := viper.GetString("redis_cache.uri"); uri != "" {
		context.Info("init redis cache")
		redisCacheName := viper.GetString("redis_cache.name")
		redisCachePool := redisclient.MustConnect(redisclient.Config{
			URI:            uri,
			Password:       viper.GetString("redis_cache.password"),
			PoolMultiplier: viper.GetFloat64("redis_cache.poolMultiplier"),
			Retry:          true,
		})
		redisCache = redis.New(redisCacheName, metrics.New(redisCacheName), redisCachePool)
		cacheLayers = append(cacheLayers, redisProvider.NewRedis(redisCache))
	}
	cacheProvider := compound.NewCompound(cacheLayers...)

	// init chain service, without rpc the block context follows the wall clock
	chainId := domain.ChainId(viper.GetInt64("chain.chainId"))
	var (
		envProvider  market.EnvProvider
		erc2981      contract.Erc2981Contract
		chainService chain.Client
		escrow       domain.Address
	)
	if rpcUrl := viper.GetString("chain.rpcUrl"); rpcUrl != "" {
		var err error
		chainService, err = chain.NewClient(context, &chain.ClientCfg{
			RpcUrls:     map[domain.ChainId]string{chainId: rpcUrl},
			Concurrency: viper.GetInt("chain.concurrency"),
		})
		if err != nil {
			context.WithField("err", err).Panic("chain.NewClient failed")
		}
		envProvider = chain_usecase.NewChainEnvProvider(chainId, chainService)
		erc2981 = contract.NewErc2981(chainService)
		if escrow, err = domain.ParseAddress(viper.GetString("marketplace.escrow")); err != nil {
			context.WithField("err", err).Panic("invalid marketplace.escrow")
		}
	} else {
		context.Warn("chain.rpcUrl not set, using clock env")
		envProvider = chain_usecase.NewClockEnvProvider(viper.GetTime("chain.genesis"), viper.GetDuration("chain.blockTime"))
	}

	overrides := map[string]royaltyOverride{}
	if err := viper.UnmarshalKey("royalty.overrides", &overrides); err != nil {
		context.WithField("err", err).Panic("invalid royalty.overrides")
	}
	royaltyOverrides := map[domain.Address]market.Royalty{}
	for addr, o := range overrides {
		share, err := market.ParseFraction(o.Share)
		if err != nil {
			context.WithFields(log.Fields{"address": addr, "err": err}).Panic("invalid royalty share")
		}
		royaltyOverrides[domain.Address(addr).ToLower()] = market.Royalty{
			PaymentAddress: domain.Address(o.PaymentAddress).ToLower(),
			Share:          share,
		}
	}

	var notifier market.SaleNotifier
	if botKey := viper.GetString("discord.botKey"); botKey != "" {
		discordCfg := discord.Config{
			BotKey:    botKey,
			ChannelId: viper.GetString("discord.channelId"),
			AssetUrl:  viper.GetString("discord.assetUrl"),
			Decimals:  viper.GetInt32("discord.decimals"),
		}
		session, err := discord.NewSession(discordCfg)
		if err != nil {
			context.WithField("err", err).Panic("discord.NewSession failed")
		}
		notifier = discord.NewSaleNotifier(discordCfg, session)
	}

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(mongoClient, redisCache)
	offeringRepo := offering_repository.NewOfferingRepo(q)
	bidOfferingRepo := offering_repository.NewBidOfferingRepo(q)
	contractRepo := contract_repository.NewContractRepo(q)
	recordRepo := outbox_repository.NewRecordRepo(q)
	dispatcher := outbox_usecase.NewDispatcher(recordRepo)

	// payments need a chain to verify deposits against
	var deposits market.DepositLedger
	if chainService != nil {
		deposits = deposit_usecase.NewLedger(&deposit_usecase.LedgerCfg{
			ChainId:       chainId,
			Client:        chainService,
			Repo:          deposit_repository.NewDepositRepo(q),
			Escrow:        escrow,
			Confirmations: viper.GetUint64("deposits.confirmations"),
		})
	}

	registry := offering_usecase.NewRegistry(&offering_usecase.RegistryCfg{
		OfferingRepo:    offeringRepo,
		BidOfferingRepo: bidOfferingRepo,
		ContractRepo:    contractRepo,
	})
	collections := collection_usecase.NewRoyaltyRegistry(&collection_usecase.RoyaltyRegistryCfg{
		ChainId: chainId,
		Erc2981: erc2981,
		Cache: cache.New(cache.ServiceConfig{
			Ttl:   viper.GetDuration("royalty.cacheTtl"),
			Pfx:   keys.PfxRoyalty,
			Cache: cacheProvider,
		}),
		Overrides: royaltyOverrides,
	})
	engine := settlement_usecase.NewEngine(&settlement_usecase.EngineCfg{
		Transactor:   q,
		Registry:     registry,
		ContractRepo: contractRepo,
		Collections:  collections,
		Dispatcher:   dispatcher,
		Notifier:     notifier,
		Deposits:     deposits,
	})
	mustInstantiate(context, engine)

	trackerCtx, stopTracker := ctx.WithCancel(context)
	defer stopTracker()
	if chainService != nil && viper.GetBool("tracker.enabled") {
		custody := tracker.NewEventTracker(&tracker.EventTrackerCfg{
			ChainId:    chainId,
			Client:     chainService,
			Transactor: q,
			StateRepo:  tracker_state_repository.NewTrackerStateRepo(q),
			Handler: custody_usecase.NewCustodyHandler(&custody_usecase.CustodyCfg{
				ChainId:    chainId,
				Client:     chainService,
				Escrow:     escrow,
				Engine:     engine,
				Dispatcher: dispatcher,
			}),
			ContractAddress: escrow,
			Tag:             "custody",
			StartBlock:      viper.GetUint64("tracker.startBlock"),
			FollowDistance:  viper.GetUint64("tracker.followDistance"),
			BatchSize:       viper.GetInt("tracker.batchSize"),
			MaxRange:        viper.GetUint64("tracker.maxRange"),
		})
		goroutine.RecoverableGo(func() {
			custody.Run(trackerCtx, viper.GetDuration("tracker.interval"))
		})
	} else {
		context.Warn("escrow tracker disabled, tokens sent to escrow are not listed")
	}

	auth := auth_usecase.New(&auth_usecase.AuthCfg{
		JwtSecret:          viper.GetString("auth.jwtSecret"),
		SigningMsgTemplate: viper.GetString("auth.signingMsg"),
		TokenTtl:           viper.GetDuration("auth.tokenTtl"),
	})
	hc := hc_usecase.New(hcRepo, contractRepo)
	listCache := mmiddleware.CacheHttp(cache.New(cache.ServiceConfig{
		Ttl:   viper.GetDuration("http.cacheTtl"),
		Pfx:   "httpCacheMiddleware",
		Cache: cacheProvider,
	}))

	authMiddleware := auth_middleware.New(auth)

	hc_delivery.New(e, hc)
	auth_delivery.New(e, auth)
	settlement_delivery.New(e, engine, envProvider, authMiddleware.Auth(), listCache)

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	stopTracker()
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}

func mustEnsureIndexes(context ctx.Ctx, client *mongoclient.Client) {
	tables := map[domain.Table][]mongoclient.Index{
		domain.TableOfferings: {
			{Keys: []string{"offeringId"}, Unique: true},
			{Keys: []string{"seller", "offeringId"}},
			{Keys: []string{"nftAddress", "tokenId"}},
			{Keys: []string{"saleType.kind", "offeringId"}},
		},
		domain.TableBidOfferings: {
			{Keys: []string{"offeringId"}, Unique: true},
		},
		domain.TableContractItems: {
			{Keys: []string{"key"}, Unique: true},
		},
		domain.TableSettlementMessages: {
			{Keys: []string{"id"}, Unique: true},
			{Keys: []string{"status", "createdAt", "seq"}},
			{Keys: []string{"offeringId", "createdAt", "seq"}},
			{Keys: []string{"settlementId", "seq"}},
		},
		domain.TableDeposits: {
			{Keys: []string{"txHash"}, Unique: true},
		},
		domain.TableTrackerStates: {
			{Keys: []string{"chainId", "contractAddress", "tag"}, Unique: true},
		},
	}
	for table, indexes := range tables {
		if err := client.EnsureIndexes(context, string(table), indexes...); err != nil {
			context.WithFields(log.Fields{
				"table": table,
				"err":   err,
			}).Panic("EnsureIndexes failed")
		}
	}
}

// mustInstantiate writes the marketplace state on the first start
func mustInstantiate(context ctx.Ctx, engine market.Engine) {
	_, err := engine.ContractInfo(context)
	if err == nil {
		return
	}
	if !errors.Is(err, market.ErrNotInstantiated) {
		context.WithField("err", err).Panic("engine.ContractInfo failed")
	}

	admin := viper.GetString("marketplace.admin")
	if _, err := domain.ParseAddress(admin); err != nil {
		context.WithField("err", err).Panic("marketplace.admin must be an account address")
	}
	res, err := engine.Instantiate(context, market.MessageInfo{Sender: domain.Address(admin)}, market.InstantiateMsg{
		Admin:        &admin,
		Name:         viper.GetString("marketplace.name"),
		NativeDenom:  viper.GetString("marketplace.nativeDenom"),
		NftContracts: viper.GetStringSlice("marketplace.nftContracts"),
	})
	if err != nil {
		context.WithField("err", err).Panic("engine.Instantiate failed")
	}
	context.WithField("attributes", res.Attributes).Info("marketplace instantiated")
}
