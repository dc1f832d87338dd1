package repository

import (
	"github.com/auric-xyz/marketd/base/ctx"
	"github.com/auric-xyz/marketd/base/log"
	"github.com/auric-xyz/marketd/domain"
	"github.com/auric-xyz/marketd/domain/marketplace"
	"github.com/auric-xyz/marketd/service/query"
	"go.mongodb.org/mongo-driver/bson"
)

type eventRepoImpl struct {
	q query.Mongo
}

func NewEventRepo(q query.Mongo) marketplace.EventRepo {
	return &eventRepoImpl{q}
}

func (im *eventRepoImpl) makeQuery(opts ...marketplace.EventFindAllOptionsFunc) (bson.M, error) {
	options, err := marketplace.GetEventFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}
	query := bson.M{}

	if options.ChainId != nil {
		query["chainId"] = *options.ChainId
	}

	if options.ListingId != nil {
		query["listingId"] = *options.ListingId
	}

	if options.Type != nil {
		query["type"] = *options.Type
	}

	if options.TimeGT != nil {
		query["time"] = bson.M{"$gt": *options.TimeGT}
	}

	return query, nil
}

func (im *eventRepoImpl) FindAll(ctx ctx.Ctx, opts ...marketplace.EventFindAllOptionsFunc) ([]*marketplace.Event, error) {
	qry, err := im.makeQuery(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery")
		return nil, err
	}

	options, _ := marketplace.GetEventFindAllOptions(opts...)
	offset, limit := 0, 0
	if options.Offset != nil {
		offset = int(*options.Offset)
	}
	if options.Limit != nil {
		limit = int(*options.Limit)
	}

	res := []*marketplace.Event{}
	err = im.q.Search(ctx, domain.TableMarketplaceEvents, offset, limit, "-time", qry, &res)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Search")
		return nil, err
	}

	return res, nil
}

func (im *eventRepoImpl) Insert(ctx ctx.Ctx, event *marketplace.Event) error {
	if err := im.q.Insert(ctx, domain.TableMarketplaceEvents, event); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"event": *event,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}
