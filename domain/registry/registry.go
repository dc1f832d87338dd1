package registry

import (
	"github.com/auric-xyz/marketd/base/ctx"
	"github.com/auric-xyz/marketd/domain"
)

// RoyaltyConfig is the per-asset royalty rate, set by the collection owner
// through the protocol registry.
type RoyaltyConfig struct {
	ChainId       domain.ChainId `json:"chainId" bson:"chainId"`
	AssetContract domain.Address `json:"assetContract" bson:"assetContract"`
	RoyaltyBps    int64          `json:"royaltyBps" bson:"royaltyBps"`
}

func (c *RoyaltyConfig) ToId() RoyaltyConfigId {
	return RoyaltyConfigId{ChainId: c.ChainId, AssetContract: c.AssetContract.ToLower()}
}

type RoyaltyConfigId struct {
	ChainId       domain.ChainId `json:"chainId" bson:"chainId"`
	AssetContract domain.Address `json:"assetContract" bson:"assetContract"`
}

type RoyaltyConfigRepo interface {
	FindOne(ctx ctx.Ctx, id RoyaltyConfigId) (*RoyaltyConfig, error)
	Upsert(ctx ctx.Ctx, cfg *RoyaltyConfig) error
}

// Registry supplies the protocol-level fee configuration. Reads are cheap
// and may be served from cache; a missing royalty config means zero bps.
type Registry interface {
	MarketFeeBps(ctx ctx.Ctx, chainId domain.ChainId) (int64, error)
	RoyaltyTreasury(ctx ctx.Ctx, chainId domain.ChainId) (domain.Address, error)
	RoyaltyBps(ctx ctx.Ctx, chainId domain.ChainId, assetContract domain.Address) (int64, error)
	SetRoyaltyBps(ctx ctx.Ctx, chainId domain.ChainId, assetContract domain.Address, bps int64) error
}
