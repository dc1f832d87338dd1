package usecase

import (
	"time"

	bCtx "github.com/auric-xyz/marketd/base/ctx"
	"github.com/auric-xyz/marketd/base/log"
	"github.com/auric-xyz/marketd/base/ptr"
	"github.com/auric-xyz/marketd/domain"
	"github.com/auric-xyz/marketd/domain/marketplace"
	"github.com/viney-shih/goroutines"
)

const revalidateBatchSize = 500

// RevalidateDirectListings re-checks owner balance and approval of every
// open direct listing on the chain and patches the isValid flag. The flag
// only steers the read path; Buy re-validates on its own.
func (im *impl) RevalidateDirectListings(ctx bCtx.Ctx, chainId domain.ChainId) error {
	listings, err := im.listingRepo.FindAll(ctx,
		marketplace.ListingWithChainId(chainId),
		marketplace.ListingWithType(marketplace.ListingTypeDirect),
		marketplace.ListingWithQuantityGT(0),
		marketplace.ListingWithEndTimeGT(time.Now()),
		marketplace.ListingWithPagination(0, revalidateBatchSize),
	)
	if err != nil {
		return err
	}
	if len(listings) == 0 {
		return nil
	}

	b := goroutines.NewBatch(10, goroutines.WithBatchSize(len(listings)))
	defer b.Close()
	for i := 0; i < len(listings); i++ {
		idx := i
		b.Queue(func() (interface{}, error) {
			return nil, im.revalidateListing(ctx, listings[idx])
		})
	}
	b.QueueComplete()

	for ret := range b.Results() {
		if ret.Error() != nil {
			ctx.WithFields(log.Fields{
				"err":     ret.Error(),
				"chainId": chainId,
			}).Error("revalidateListing failed")
		}
	}
	return nil
}

func (im *impl) revalidateListing(ctx bCtx.Ctx, listing *marketplace.Listing) error {
	err := im.validateOwnershipAndApproval(ctx, listing.ChainId, listing.TokenOwner, listing.AssetContract, listing.TokenId, listing.TokenType, listing.Quantity)
	valid := err == nil
	if err != nil && err != domain.ErrTokenNotOwnedOrApproved {
		return err
	}
	if valid == listing.IsValid {
		return nil
	}
	return im.listingRepo.Update(ctx, listing.ToId(), marketplace.ListingPatchable{IsValid: ptr.Bool(valid)})
}
