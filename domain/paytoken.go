package domain

import (
	"github.com/auric-xyz/marketd/base/ctx"
)

type Id struct {
	ChainId ChainId `bson:"chainId"`
	Address Address `bson:"address"`
}

// PayToken is an erc20 accepted as listing currency on a chain
type PayToken struct {
	Name     string  `bson:"name"`
	Symbol   string  `bson:"symbol"`
	Decimals int32   `bson:"decimals"`
	ChainId  ChainId `bson:"chainId"`
	Address  Address `bson:"address"`
}

func (t *PayToken) ToId() *Id {
	return &Id{
		ChainId: t.ChainId,
		Address: t.Address,
	}
}

type PayTokenRepo interface {
	FindOne(ctx.Ctx, ChainId, Address) (*PayToken, error)
	Create(ctx.Ctx, *PayToken) error
	Upsert(ctx.Ctx, *PayToken) error
}
