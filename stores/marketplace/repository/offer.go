package repository

import (
	"github.com/auric-xyz/marketd/base/ctx"
	"github.com/auric-xyz/marketd/base/database/mongoclient"
	"github.com/auric-xyz/marketd/base/log"
	"github.com/auric-xyz/marketd/domain"
	"github.com/auric-xyz/marketd/domain/marketplace"
	"github.com/auric-xyz/marketd/service/query"
	"go.mongodb.org/mongo-driver/bson"
)

type offerRepoImpl struct {
	q query.Mongo
}

func NewOfferRepo(q query.Mongo) marketplace.OfferRepo {
	return &offerRepoImpl{q}
}

func (im *offerRepoImpl) makeQuery(opts ...marketplace.OfferFindAllOptionsFunc) (bson.M, error) {
	options, err := marketplace.GetOfferFindAllOptions(opts...)
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

	if options.Offeror != nil {
		query["offeror"] = *options.Offeror
	}

	return query, nil
}

func (im *offerRepoImpl) FindAll(ctx ctx.Ctx, opts ...marketplace.OfferFindAllOptionsFunc) ([]*marketplace.Offer, error) {
	qry, err := im.makeQuery(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery")
		return nil, err
	}

	options, _ := marketplace.GetOfferFindAllOptions(opts...)
	offset, limit := 0, 0
	if options.Offset != nil {
		offset = int(*options.Offset)
	}
	if options.Limit != nil {
		limit = int(*options.Limit)
	}

	res := []*marketplace.Offer{}
	err = im.q.Search(ctx, domain.TableOffers, offset, limit, "listingId", qry, &res)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Search")
		return nil, err
	}

	return res, nil
}

func (im *offerRepoImpl) FindOne(ctx ctx.Ctx, id marketplace.OfferId) (*marketplace.Offer, error) {
	qry, err := mongoclient.MakeBsonM(id)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to mongoclient.MakeBsonM")
		return nil, err
	}

	res := marketplace.Offer{}
	err = im.q.FindOne(ctx, domain.TableOffers, qry, &res)
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

func (im *offerRepoImpl) Upsert(ctx ctx.Ctx, offer *marketplace.Offer) error {
	offer.Offeror = offer.Offeror.ToLower()
	offer.Currency = offer.Currency.ToLower()

	selector, err := mongoclient.MakeBsonM(offer.ToId())
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"offer": *offer,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	if err := im.q.Upsert(ctx, domain.TableOffers, selector, offer); err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"selector": selector,
		}).Error("failed to q.Upsert")
		return err
	}

	return nil
}

func (im *offerRepoImpl) Remove(ctx ctx.Ctx, id marketplace.OfferId) error {
	selector, err := mongoclient.MakeBsonM(id)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	if err := im.q.Remove(ctx, domain.TableOffers, selector); err == query.ErrNotFound {
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
