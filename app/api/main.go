package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/go-playground/validator/v10"
	"github.com/auric-xyz/marketd/base/ctx"
	"github.com/auric-xyz/marketd/base/database/mongoclient"
	"github.com/auric-xyz/marketd/base/database/redisclient"
	"github.com/auric-xyz/marketd/base/log"
	"github.com/auric-xyz/marketd/base/metrics"
	bValidator "github.com/auric-xyz/marketd/base/validator"
	"github.com/auric-xyz/marketd/domain"
	mmiddleware "github.com/auric-xyz/marketd/middleware"
	"github.com/auric-xyz/marketd/service/chain"
	"github.com/auric-xyz/marketd/service/chain/contract"
	"github.com/auric-xyz/marketd/service/notifier"
	"github.com/auric-xyz/marketd/service/query"
	"github.com/auric-xyz/marketd/service/redis"
	auth_delivery "github.com/auric-xyz/marketd/stores/auth/delivery/http"
	auth_middleware "github.com/auric-xyz/marketd/stores/auth/delivery/http/middleware"
	auth_repository "github.com/auric-xyz/marketd/stores/auth/repository"
	auth_usecase "github.com/auric-xyz/marketd/stores/auth/usecase"
	fund_usecase "github.com/auric-xyz/marketd/stores/fund/usecase"
	hc_delivery "github.com/auric-xyz/marketd/stores/healthcheck/delivery/http"
	hc_repo "github.com/auric-xyz/marketd/stores/healthcheck/repository"
	hc_usecase "github.com/auric-xyz/marketd/stores/healthcheck/usecase"
	marketplace_delivery "github.com/auric-xyz/marketd/stores/marketplace/delivery/http"
	marketplace_repository "github.com/auric-xyz/marketd/stores/marketplace/repository"
	marketplace_usecase "github.com/auric-xyz/marketd/stores/marketplace/usecase"
	paytoken_repository "github.com/auric-xyz/marketd/stores/paytoken/repository"
	registry_repository "github.com/auric-xyz/marketd/stores/registry/repository"
	registry_usecase "github.com/auric-xyz/marketd/stores/registry/usecase"
)

func init() {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(`infra/configs/config.yaml`)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	checkIndex := viper.GetBool("mongo.checkIndex")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient, checkIndex)

	// init Redis service
	context.Info("init redis cache")
	redisCacheName := viper.GetString("redis_cache.name")
	redisCacheURI := viper.GetString("redis_cache.uri")
	redisCachePwd := viper.GetString("redis_cache.password")
	redisCachePoolMultiplier := viper.GetFloat64("redis_cache.poolMultiplier")
	redisCachePool := redisclient.MustConnectRedis(redisCacheURI, redisCachePwd, redisclient.RedisParam{
		PoolMultiplier: redisCachePoolMultiplier,
		Retry:          true,
	})
	redisCache := redis.New(redisCacheName, metrics.New(redisCacheName), &redis.Pools{
		Src: redisCachePool,
	})

	mmiddleware.SetupCache(redisCache)

	// init chain service
	networks := viper.Sub("networks")
	keys := networks.AllSettings()
	rpcs := make(map[int32]string)
	archiveRpcs := make(map[int32]string)
	marketKeys := make(map[int32]string)
	wrappedNatives := make(map[domain.ChainId]domain.Address)
	chainIds := []domain.ChainId{}
	for k := range keys {
		chainId := networks.GetInt32(fmt.Sprintf("%s.chainId", k))
		rpcs[chainId] = networks.GetString(fmt.Sprintf("%s.rpcUrl", k))
		archiveRpcs[chainId] = networks.GetString(fmt.Sprintf("%s.archiveRpcUrl", k))
		marketKeys[chainId] = networks.GetString(fmt.Sprintf("%s.marketKey", k))
		if wrapped := networks.GetString(fmt.Sprintf("%s.wrappedNative", k)); len(wrapped) > 0 {
			wrappedNatives[domain.ChainId(chainId)] = domain.Address(wrapped).ToLower()
		}
		chainIds = append(chainIds, domain.ChainId(chainId))
	}
	chainService, err := chain.NewClient(context, &chain.ClientCfg{
		RpcUrls:            rpcs,
		ArchiveRpcUrls:     archiveRpcs,
		MaxConcurrentCalls: viper.GetInt("chain.maxConcurrentCalls"),
	})
	if err != nil {
		context.WithField("err", err).Warn("chainService started with error")
	}
	transactor, err := chain.NewTransactor(context, &chain.TransactorCfg{
		RpcUrls:        rpcs,
		MarketKeys:     marketKeys,
		ConfirmTimeout: viper.GetDuration("chain.confirmTimeout"),
	})
	if err != nil {
		context.WithField("err", err).Panic("failed to init transactor")
	}
	erc721Service := contract.NewErc721(chainService, transactor)
	erc1155Service := contract.NewErc1155(chainService, transactor)
	erc20Service := contract.NewErc20(chainService, transactor)
	wethService := contract.NewWeth(chainService, transactor)

	// protocol fee settings per chain
	fees := viper.Sub("fees")
	feeConfigs := make(map[domain.ChainId]registry_usecase.FeeConfig)
	for k := range fees.AllSettings() {
		chainId := domain.ChainId(fees.GetInt32(fmt.Sprintf("%s.chainId", k)))
		feeConfigs[chainId] = registry_usecase.FeeConfig{
			MarketFeeBps: fees.GetInt64(fmt.Sprintf("%s.marketFeeBps", k)),
			Treasury:     domain.Address(fees.GetString(fmt.Sprintf("%s.treasury", k))).ToLower(),
		}
	}

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(mongoClient, redisCache)
	listingRepo := marketplace_repository.NewListingRepo(q)
	offerRepo := marketplace_repository.NewOfferRepo(q)
	winningBidRepo := marketplace_repository.NewWinningBidRepo(q)
	eventRepo := marketplace_repository.NewEventRepo(q)
	paytokenRepo := paytoken_repository.NewPayTokenRepo(q)
	royaltyConfigRepo := registry_repository.NewRoyaltyConfigRepo(q)
	nonceRepo := auth_repository.NewAccountNonceRepo(q)

	hc := hc_usecase.New(hcRepo)
	registry := registry_usecase.New(&registry_usecase.RegistryCfg{
		RoyaltyConfigRepo: royaltyConfigRepo,
		FeeConfigs:        feeConfigs,
		Redis:             redisCache,
	})
	fund := fund_usecase.New(&fund_usecase.FundUseCaseCfg{
		Erc20:         erc20Service,
		Weth:          wethService,
		Transactor:    transactor,
		WrappedNative: wrappedNatives,
	})
	market := marketplace_usecase.New(&marketplace_usecase.MarketplaceUseCaseCfg{
		ListingRepo:    listingRepo,
		OfferRepo:      offerRepo,
		WinningBidRepo: winningBidRepo,
		EventRepo:      eventRepo,
		PayTokenRepo:   paytokenRepo,
		Registry:       registry,
		Fund:           fund,
		Erc721:         erc721Service,
		Erc1155:        erc1155Service,
		Transactor:     transactor,
		TimeBuffer:     viper.GetDuration("marketplace.timeBuffer"),
	})
	signatureMsg := viper.GetString("auth.signatureMsg")
	auth := auth_usecase.New(viper.GetString("auth.jwtSecret"), signatureMsg, nonceRepo)

	adminAddresses := viper.GetStringSlice("admin.addresses")
	auth_middleware := auth_middleware.New(auth, adminAddresses)

	hc_delivery.New(e, hc)
	auth_delivery.New(e, auth, signatureMsg)
	marketplace_delivery.New(e, market, registry, auth_middleware)

	e.GET("/check", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"address": c.Get("address").(domain.Address),
		})
	}, auth_middleware.Auth())

	// background revalidation of open direct listings
	revalidateCtx, cancelRevalidate := ctx.WithCancel(context)
	revalidateInterval := viper.GetDuration("marketplace.revalidateInterval")
	if revalidateInterval <= 0 {
		revalidateInterval = 5 * time.Minute
	}
	go func() {
		ticker := time.NewTicker(revalidateInterval)
		defer ticker.Stop()
		for {
			select {
			case <-revalidateCtx.Done():
				return
			case <-ticker.C:
				for _, chainId := range chainIds {
					if err := market.RevalidateDirectListings(revalidateCtx, chainId); err != nil {
						revalidateCtx.WithFields(log.Fields{
							"err":     err,
							"chainId": chainId,
						}).Error("failed to market.RevalidateDirectListings")
					}
				}
			}
		}
	}()

	// discord sale notifier, enabled when a bot key is configured
	var saleNotifier *notifier.Notifier
	notifierCtx, cancelNotifier := ctx.WithCancel(context)
	if botKey := viper.GetString("discord.botKey"); len(botKey) > 0 {
		saleNotifier, err = notifier.New(&notifier.NotifierCfg{
			ChainId:          domain.ChainId(viper.GetInt32("discord.chainId")),
			DiscordBotKey:    botKey,
			DiscordChannelId: viper.GetString("discord.channelId"),
			SiteUrl:          viper.GetString("discord.siteUrl"),
			EventRepo:        eventRepo,
			PayTokenRepo:     paytokenRepo,
			PollInterval:     viper.GetDuration("discord.pollInterval"),
		})
		if err != nil {
			context.WithField("err", err).Panic("failed to init notifier")
		}
		saleNotifier.Start(notifierCtx)
	}

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
	cancelRevalidate()
	cancelNotifier()
	if saleNotifier != nil {
		saleNotifier.Wait()
	}
	shutdownCtx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
