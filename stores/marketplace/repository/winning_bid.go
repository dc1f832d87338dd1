package repository

import (
	"github.com/auric-xyz/marketd/base/ctx"
	"github.com/auric-xyz/marketd/base/database/mongoclient"
	"github.com/auric-xyz/marketd/base/log"
	"github.com/auric-xyz/marketd/domain"
	"github.com/auric-xyz/marketd/domain/marketplace"
	"github.com/auric-xyz/marketd/service/query"
)

type winningBidRepoImpl struct {
	q query.Mongo
}

func NewWinningBidRepo(q query.Mongo) marketplace.WinningBidRepo {
	return &winningBidRepoImpl{q}
}

func (im *winningBidRepoImpl) FindOne(ctx ctx.Ctx, id marketplace.WinningBidId) (*marketplace.WinningBid, error) {
	qry, err := mongoclient.MakeBsonM(id)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to mongoclient.MakeBsonM")
		return nil, err
	}

	res := marketplace.WinningBid{}
	err = im.q.FindOne(ctx, domain.TableWinningBids, qry, &res)
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

func (im *winningBidRepoImpl) Upsert(ctx ctx.Ctx, bid *marketplace.WinningBid) error {
	bid.Bidder = bid.Bidder.ToLower()
	bid.Currency = bid.Currency.ToLower()

	selector, err := mongoclient.MakeBsonM(bid.ToId())
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"bid": *bid,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	if err := im.q.Upsert(ctx, domain.TableWinningBids, selector, bid); err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"selector": selector,
		}).Error("failed to q.Upsert")
		return err
	}

	return nil
}

func (im *winningBidRepoImpl) Update(ctx ctx.Ctx, id marketplace.WinningBidId, patchable marketplace.WinningBidPatchable) error {
	selector, err := mongoclient.MakeBsonM(id)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	updater, err := mongoclient.MakeBsonM(patchable)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"patchable": patchable,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	if err := im.q.Patch(ctx, domain.TableWinningBids, selector, updater); err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"selector": selector,
			"updater":  updater,
		}).Error("failed to q.Patch")
		return err
	}

	return nil
}

func (im *winningBidRepoImpl) Remove(ctx ctx.Ctx, id marketplace.WinningBidId) error {
	selector, err := mongoclient.MakeBsonM(id)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	if err := im.q.Remove(ctx, domain.TableWinningBids, selector); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"selector": selector,
		}).Error("failed to q.Remove")
		return err
	}

	return nil
}
