package repository

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/auric-xyz/marketd/base/ctx"
	"github.com/auric-xyz/marketd/base/log"
	"github.com/auric-xyz/marketd/domain"
	"github.com/auric-xyz/marketd/service/query"
)

type nonceRepoImpl struct {
	q query.Mongo
}

func NewAccountNonceRepo(q query.Mongo) domain.AccountNonceRepo {
	return &nonceRepoImpl{q}
}

func (im *nonceRepoImpl) Get(ctx ctx.Ctx, address domain.Address) (*domain.AccountNonce, error) {
	id := strings.ToLower(string(address))

	res := domain.AccountNonce{}
	err := im.q.FindOne(ctx, domain.TableAccountNonces, bson.M{"address": id}, &res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Error("failed to q.FindOne")
		return nil, err
	}

	return &res, nil
}

func (im *nonceRepoImpl) Set(ctx ctx.Ctx, address domain.Address, nonce int32) error {
	record := &domain.AccountNonce{
		Address: address.ToLower(),
		Nonce:   nonce,
	}

	if err := im.q.Upsert(ctx, domain.TableAccountNonces, bson.M{"address": record.Address}, record); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Error("failed to q.Upsert")
		return err
	}

	return nil
}
