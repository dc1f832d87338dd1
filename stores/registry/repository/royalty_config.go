package repository

import (
	"github.com/auric-xyz/marketd/base/ctx"
	"github.com/auric-xyz/marketd/base/database/mongoclient"
	"github.com/auric-xyz/marketd/base/log"
	"github.com/auric-xyz/marketd/domain"
	"github.com/auric-xyz/marketd/domain/registry"
	"github.com/auric-xyz/marketd/service/query"
)

type royaltyConfigRepoImpl struct {
	q query.Mongo
}

func NewRoyaltyConfigRepo(q query.Mongo) registry.RoyaltyConfigRepo {
	return &royaltyConfigRepoImpl{q}
}

func (im *royaltyConfigRepoImpl) FindOne(ctx ctx.Ctx, id registry.RoyaltyConfigId) (*registry.RoyaltyConfig, error) {
	id.AssetContract = id.AssetContract.ToLower()

	qry, err := mongoclient.MakeBsonM(id)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to mongoclient.MakeBsonM")
		return nil, err
	}

	res := registry.RoyaltyConfig{}
	err = im.q.FindOne(ctx, domain.TableRoyaltyConfigs, qry, &res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.FindOne")
		return nil, err
	}

	return &res, nil
}

func (im *royaltyConfigRepoImpl) Upsert(ctx ctx.Ctx, cfg *registry.RoyaltyConfig) error {
	cfg.AssetContract = cfg.AssetContract.ToLower()

	selector, err := mongoclient.MakeBsonM(cfg.ToId())
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"cfg": *cfg,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	if err := im.q.Upsert(ctx, domain.TableRoyaltyConfigs, selector, cfg); err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"selector": selector,
		}).Error("failed to q.Upsert")
		return err
	}

	return nil
}
