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

type listingRepoImpl struct {
	q query.Mongo
}

func NewListingRepo(q query.Mongo) marketplace.ListingRepo {
	return &listingRepoImpl{q}
}

func (im *listingRepoImpl) makeQuery(opts ...marketplace.ListingFindAllOptionsFunc) (bson.M, error) {
	options, err := marketplace.GetListingFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}
	query := bson.M{}

	if options.ChainId != nil {
		query["chainId"] = *options.ChainId
	}

	if options.TokenOwner != nil {
		query["tokenOwner"] = *options.TokenOwner
	}

	if options.AssetContract != nil {
		query["assetContract"] = *options.AssetContract
	}

	if options.TokenId != nil {
		query["tokenId"] = *options.TokenId
	}

	if options.ListingType != nil {
		query["listingType"] = *options.ListingType
	}

	if options.QuantityGT != nil {
		query["quantity"] = bson.M{"$gt": *options.QuantityGT}
	}

	if options.StartTimeLT != nil {
		query["startTime"] = bson.M{"$lt": *options.StartTimeLT}
	}

	endTimeQuery := bson.M{}
	if options.EndTimeGT != nil {
		endTimeQuery["$gt"] = *options.EndTimeGT
	}

	if options.EndTimeLT != nil {
		endTimeQuery["$lt"] = *options.EndTimeLT
	}

	if len(endTimeQuery) > 0 {
		query["endTime"] = endTimeQuery
	}

	if options.IsValid != nil {
		query["isValid"] = *options.IsValid
	}

	return query, nil
}

func (im *listingRepoImpl) FindAll(ctx ctx.Ctx, opts ...marketplace.ListingFindAllOptionsFunc) ([]*marketplace.Listing, error) {
	qry, err := im.makeQuery(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery")
		return nil, err
	}

	options, _ := marketplace.GetListingFindAllOptions(opts...)
	offset, limit := 0, 0
	if options.Offset != nil {
		offset = int(*options.Offset)
	}
	if options.Limit != nil {
		limit = int(*options.Limit)
	}

	res := []*marketplace.Listing{}
	err = im.q.Search(ctx, domain.TableListings, offset, limit, "listingId", qry, &res)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Search")
		return nil, err
	}

	return res, nil
}

func (im *listingRepoImpl) Count(ctx ctx.Ctx, opts ...marketplace.ListingFindAllOptionsFunc) (int, error) {
	qry, err := im.makeQuery(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery")
		return 0, err
	}

	cnt, err := im.q.Count(ctx, domain.TableListings, qry)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Count")
		return 0, err
	}

	return cnt, nil
}

func (im *listingRepoImpl) FindOne(ctx ctx.Ctx, id marketplace.ListingId) (*marketplace.Listing, error) {
	qry, err := mongoclient.MakeBsonM(id)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to mongoclient.MakeBsonM")
		return nil, err
	}

	res := marketplace.Listing{}
	err = im.q.FindOne(ctx, domain.TableListings, qry, &res)
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

func (im *listingRepoImpl) Insert(ctx ctx.Ctx, listing *marketplace.Listing) error {
	listing.LowerCase()
	if err := im.q.Insert(ctx, domain.TableListings, listing); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"listing": *listing,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}

func (im *listingRepoImpl) Update(ctx ctx.Ctx, id marketplace.ListingId, patchable marketplace.ListingPatchable) error {
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

	err = im.q.Patch(ctx, domain.TableListings, selector, updater)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"selector": selector,
			"updater":  updater,
		}).Error("failed to q.Patch")
		return err
	}

	return nil
}

type listingCounter struct {
	ChainId domain.ChainId `bson:"chainId"`
	Seq     int64          `bson:"seq"`
}

// NextListingId assigns monotonic per-chain listing ids through an atomic
// counter increment.
func (im *listingRepoImpl) NextListingId(ctx ctx.Ctx, chainId domain.ChainId) (uint64, error) {
	counter := listingCounter{}
	err := im.q.Increment(ctx, domain.TableListingCounters, bson.M{"chainId": chainId}, &counter, "seq", 1)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"chainId": chainId,
		}).Error("failed to q.Increment")
		return 0, err
	}
	// counter starts at 1; listing ids start at 0 like the total-listings
	// sequence they mirror
	return uint64(counter.Seq - 1), nil
}
