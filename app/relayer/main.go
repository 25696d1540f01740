package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/database/mongoclient"
	"github.com/x-xyz/marketplace/base/database/redisclient"
	"github.com/x-xyz/marketplace/base/env"
	"github.com/x-xyz/marketplace/base/ethereum"
	"github.com/x-xyz/marketplace/base/goroutine"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/base/metrics"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/service/chain"
	"github.com/x-xyz/marketplace/service/chain/contract"
	"github.com/x-xyz/marketplace/service/query"
	"github.com/x-xyz/marketplace/service/redis"
	contract_repository "github.com/x-xyz/marketplace/stores/contract/repository"
	outbox_repository "github.com/x-xyz/marketplace/stores/outbox/repository"
	outbox_usecase "github.com/x-xyz/marketplace/stores/outbox/usecase"
)

func init() {
	configFile := pflag.String("config", "infra/configs/relayer.yaml", "config file")
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
}

func main() {
	defer log.Sync()

	bCtx, cancel := ctx.WithCancel(ctx.Background())
	defer cancel()

	mongoClient := mongoclient.MustConnect(mongoclient.Config{
		URI:                viper.GetString("mongo.uri"),
		AuthDBName:         viper.GetString("mongo.authDBName"),
		DBName:             viper.GetString("mongo.dbName"),
		SSL:                viper.GetBool("mongo.enableSSL"),
		SetSafe:            true,
		PoolSizeMultiplier: viper.GetFloat64("mongo.poolMultiplier"),
	})
	q := query.New(mongoClient, false)

	var redisCache redis.Service
	if uri := viper.GetString("redis_cache.uri"); uri != "" {
		redisCacheName := viper.GetString("redis_cache.name")
		redisCachePool := redisclient.MustConnect(redisclient.Config{
			URI:            uri,
			Password:       viper.GetString("redis_cache.password"),
			PoolMultiplier: viper.GetFloat64("redis_cache.poolMultiplier"),
			Retry:          true,
		})
		redisCache = redis.New(redisCacheName, metrics.New(redisCacheName), redisCachePool)
	} else {
		bCtx.Warn("redis_cache.uri not set, run a single relayer only")
	}

	chainId := domain.ChainId(viper.GetInt64("chain.chainId"))
	chainService, err := chain.NewClient(bCtx, &chain.ClientCfg{
		RpcUrls:     map[domain.ChainId]string{chainId: viper.GetString("chain.rpcUrl")},
		Concurrency: viper.GetInt("chain.concurrency"),
	})
	if err != nil {
		bCtx.WithField("err", err).Panic("chain.NewClient failed")
	}

	key, err := ethereum.ParseKey(viper.GetString("relayer.privateKey"))
	if err != nil {
		bCtx.WithField("err", err).Panic("invalid relayer.privateKey")
	}
	bCtx.WithField("escrow", ethereum.KeyAddress(key).Hex()).Info("relaying from escrow account")

	info, err := contract_repository.NewContractRepo(q).GetContractInfo(bCtx)
	if err != nil {
		bCtx.WithField("err", err).Panic("GetContractInfo failed, is the marketplace instantiated?")
	}

	executor := outbox_usecase.NewChainExecutor(&outbox_usecase.ChainExecutorCfg{
		ChainId:     chainId,
		Client:      chainService,
		Erc721:      contract.NewErc721(chainService),
		Key:         key,
		NativeDenom: info.NativeDenom,
	})
	relayer := outbox_usecase.NewRelayer(&outbox_usecase.RelayerCfg{
		Repo:        outbox_repository.NewRecordRepo(q),
		Executor:    executor,
		Redis:       redisCache,
		InstanceId:  env.PodName(),
		BatchSize:   viper.GetInt("relayer.batchSize"),
		MaxAttempts: viper.GetInt("relayer.maxAttempts"),
		LeaseTtl:    viper.GetDuration("relayer.leaseTtl"),
		Confirmers:  viper.GetInt("relayer.confirmers"),
		RetryStart:  viper.GetDuration("relayer.retryStart"),
		RetryLimit:  viper.GetDuration("relayer.retryLimit"),
	})

	done := goroutine.RecoverableGo(func() {
		relayer.Run(bCtx, viper.GetDuration("relayer.interval"))
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	select {
	case sig := <-quit:
		log.Log().WithField("signal", sig).Info("received signal")
		cancel()
	case p := <-done:
		if p != nil {
			log.Log().WithFields(log.Fields{
				"panic": p.Panic,
				"stack": string(p.Stack),
			}).Error("relayer panicked")
		}
		return
	}

	select {
	case <-done:
		log.Log().Info("relayer stopped")
	case <-time.After(10 * time.Second):
		log.Log().Warn("relayer did not stop in time")
	}
}
