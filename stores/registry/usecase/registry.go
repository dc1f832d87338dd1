package usecase

import (
	"fmt"
	"time"

	bCtx "github.com/auric-xyz/marketd/base/ctx"
	"github.com/auric-xyz/marketd/base/log"
	"github.com/auric-xyz/marketd/domain"
	"github.com/auric-xyz/marketd/domain/registry"
	"github.com/auric-xyz/marketd/service/cache"
	"github.com/auric-xyz/marketd/service/cache/provider"
	"github.com/auric-xyz/marketd/service/cache/provider/compound"
	"github.com/auric-xyz/marketd/service/cache/provider/primitive"
	redisCache "github.com/auric-xyz/marketd/service/cache/provider/redis"
	"github.com/auric-xyz/marketd/service/redis"
)

// FeeConfig is the protocol fee setting of one chain, loaded from the
// service configuration at startup.
type FeeConfig struct {
	MarketFeeBps int64          `mapstructure:"marketFeeBps"`
	Treasury     domain.Address `mapstructure:"treasury"`
}

type RegistryCfg struct {
	RoyaltyConfigRepo registry.RoyaltyConfigRepo
	FeeConfigs        map[domain.ChainId]FeeConfig
	Redis             redis.Service
}

type impl struct {
	royaltyConfigRepo registry.RoyaltyConfigRepo
	feeConfigs        map[domain.ChainId]FeeConfig
	royaltyCache      cache.Service
}

func New(cfg *RegistryCfg) registry.Registry {
	cacheProviders := []provider.Provider{
		primitive.NewPrimitive("registry", 128),
	}

	if cfg.Redis != nil {
		cacheProviders = append(cacheProviders, redisCache.NewRedis(cfg.Redis))
	}

	return &impl{
		royaltyConfigRepo: cfg.RoyaltyConfigRepo,
		feeConfigs:        cfg.FeeConfigs,
		royaltyCache: cache.New(cache.ServiceConfig{
			Ttl:   10 * time.Minute,
			Pfx:   "royalty",
			Cache: compound.NewCompound(cacheProviders),
		}),
	}
}

func (im *impl) MarketFeeBps(ctx bCtx.Ctx, chainId domain.ChainId) (int64, error) {
	feeConfig, ok := im.feeConfigs[chainId]
	if !ok {
		return 0, domain.ErrInvalidChainId
	}
	return feeConfig.MarketFeeBps, nil
}

func (im *impl) RoyaltyTreasury(ctx bCtx.Ctx, chainId domain.ChainId) (domain.Address, error) {
	feeConfig, ok := im.feeConfigs[chainId]
	if !ok {
		return "", domain.ErrInvalidChainId
	}
	return feeConfig.Treasury.ToLower(), nil
}

func (im *impl) RoyaltyBps(ctx bCtx.Ctx, chainId domain.ChainId, assetContract domain.Address) (int64, error) {
	feeConfig, ok := im.feeConfigs[chainId]
	if !ok {
		return 0, domain.ErrInvalidChainId
	}

	key := fmt.Sprintf("%d:%s", chainId, assetContract.ToLower())

	res := registry.RoyaltyConfig{}
	err := im.royaltyCache.GetByFunc(ctx, key, &res, func() (interface{}, error) {
		cfg, err := im.royaltyConfigRepo.FindOne(ctx, registry.RoyaltyConfigId{ChainId: chainId, AssetContract: assetContract})
		if err == domain.ErrNotFound {
			// an unregistered collection simply earns no royalty
			return &registry.RoyaltyConfig{ChainId: chainId, AssetContract: assetContract.ToLower()}, nil
		} else if err != nil {
			return nil, err
		}
		return cfg, nil
	})
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"asset": assetContract,
		}).Error("royaltyCache.GetByFunc failed")
		return 0, err
	}

	// the lister payout can never go negative whatever was registered
	if max := domain.MaxBps - feeConfig.MarketFeeBps; res.RoyaltyBps > max {
		return max, nil
	}
	return res.RoyaltyBps, nil
}

func (im *impl) SetRoyaltyBps(ctx bCtx.Ctx, chainId domain.ChainId, assetContract domain.Address, bps int64) error {
	if bps < 0 || bps > domain.MaxBps {
		return domain.ErrBadParamInput
	}

	cfg := &registry.RoyaltyConfig{
		ChainId:       chainId,
		AssetContract: assetContract.ToLower(),
		RoyaltyBps:    bps,
	}
	if err := im.royaltyConfigRepo.Upsert(ctx, cfg); err != nil {
		return err
	}

	key := fmt.Sprintf("%d:%s", chainId, assetContract.ToLower())
	if err := im.royaltyCache.Del(ctx, key); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"asset": assetContract,
		}).Warn("royaltyCache.Del failed")
	}
	return nil
}
