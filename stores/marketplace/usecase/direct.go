package usecase

import (
	"math/big"
	"time"

	bCtx "github.com/auric-xyz/marketd/base/ctx"
	"github.com/auric-xyz/marketd/base/ptr"
	"github.com/auric-xyz/marketd/domain"
	"github.com/auric-xyz/marketd/domain/marketplace"
)

func (im *impl) Buy(ctx bCtx.Ctx, buyer domain.Address, id marketplace.ListingId, params *marketplace.BuyParams) (*marketplace.Listing, error) {
	defer im.lockListing(id)()

	listing, err := im.listingRepo.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing.ListingType != marketplace.ListingTypeDirect {
		return nil, domain.ErrListingNotDirect
	}

	quantity := safeQuantity(listing.TokenType, params.QuantityToBuy)
	if quantity <= 0 || quantity > listing.Quantity {
		return nil, domain.ErrInvalidQuantity
	}
	if !listing.WithinSaleWindow(time.Now()) {
		return nil, domain.ErrSaleWindowClosed
	}

	// direct listing assets are never escrowed; a lister who disposed of
	// them elsewhere fails here instead of producing a stale sale
	if err := im.validateOwnershipAndApproval(ctx, listing.ChainId, listing.TokenOwner, listing.AssetContract, listing.TokenId, listing.TokenType, quantity); err != nil {
		if err == domain.ErrTokenNotOwnedOrApproved {
			im.markInvalid(ctx, listing)
		}
		return nil, err
	}

	// direct sales settle at the buyout price
	price, err := listing.BuyoutPrice()
	if err != nil {
		return nil, err
	}
	sentValue, err := marketplace.ParsePrice(params.SentValue)
	if err != nil {
		return nil, err
	}

	if err := im.executeSale(ctx, listing, buyer, listing.Currency, price, quantity, sentValue); err != nil {
		return nil, err
	}

	return im.listingRepo.FindOne(ctx, id)
}

func (im *impl) AcceptOffer(ctx bCtx.Ctx, lister domain.Address, id marketplace.ListingId, offeror domain.Address) (*marketplace.Listing, error) {
	defer im.lockListing(id)()

	listing, err := im.listingRepo.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if !listing.TokenOwner.Equals(lister) {
		return nil, domain.ErrNotListingCreator
	}
	if listing.ListingType != marketplace.ListingTypeDirect {
		return nil, domain.ErrListingNotDirect
	}
	if listing.IsClosed() {
		return nil, domain.ErrListingClosed
	}
	if !listing.WithinSaleWindow(time.Now()) {
		return nil, domain.ErrSaleWindowClosed
	}

	offer, err := im.offerRepo.FindOne(ctx, marketplace.OfferId{ChainId: id.ChainId, ListingId: id.ListingId, Offeror: offeror.ToLower()})
	if err != nil {
		return nil, err
	}
	if offer.Expired(time.Now()) {
		return nil, domain.ErrOfferExpired
	}
	if offer.QuantityWanted <= 0 || offer.QuantityWanted > listing.Quantity {
		return nil, domain.ErrInvalidQuantity
	}

	if err := im.validateOwnershipAndApproval(ctx, listing.ChainId, listing.TokenOwner, listing.AssetContract, listing.TokenId, listing.TokenType, offer.QuantityWanted); err != nil {
		if err == domain.ErrTokenNotOwnedOrApproved {
			im.markInvalid(ctx, listing)
		}
		return nil, err
	}

	price, err := offer.Price()
	if err != nil {
		return nil, err
	}

	// consume the offer before any value moves; a second accept finds
	// nothing left
	if err := im.offerRepo.Remove(ctx, offer.ToId()); err != nil {
		return nil, err
	}

	if err := im.executeSale(ctx, listing, offer.Offeror, offer.Currency, price, offer.QuantityWanted, big.NewInt(0)); err != nil {
		return nil, err
	}

	return im.listingRepo.FindOne(ctx, id)
}

// executeSale is the shared settlement tail of Buy and AcceptOffer: quantity
// decrement first, then payment escrow, asset transfer and payout split.
func (im *impl) executeSale(ctx bCtx.Ctx, listing *marketplace.Listing, buyer, currency domain.Address, pricePerToken *big.Int, quantity int64, sentValue *big.Int) error {
	totalPrice := new(big.Int).Mul(pricePerToken, big.NewInt(quantity))

	remaining := listing.Quantity - quantity
	if err := im.listingRepo.Update(ctx, listing.ToId(), marketplace.ListingPatchable{Quantity: &remaining}); err != nil {
		return err
	}

	if err := im.fund.Pull(ctx, listing.ChainId, buyer, currency, totalPrice, sentValue); err != nil {
		return err
	}

	if err := im.transferListingTokens(ctx, listing, listing.TokenOwner, buyer, quantity); err != nil {
		return err
	}

	if err := im.distributeSalePrice(ctx, listing.ChainId, listing.AssetContract, currency, listing.TokenOwner, totalPrice); err != nil {
		return err
	}

	im.emitSaleEvent(ctx, listing.ChainId, &marketplace.SaleInfo{
		ListingId:      listing.ListingId,
		AssetContract:  listing.AssetContract,
		Lister:         listing.TokenOwner,
		Buyer:          buyer.ToLower(),
		QuantityBought: quantity,
		TotalPricePaid: totalPrice.String(),
		Currency:       currency.ToLower(),
		DisplayPrice:   im.displayPrice(ctx, listing.ChainId, currency, totalPrice),
	})

	return nil
}

func (im *impl) markInvalid(ctx bCtx.Ctx, listing *marketplace.Listing) {
	if err := im.listingRepo.Update(ctx, listing.ToId(), marketplace.ListingPatchable{IsValid: ptr.Bool(false)}); err != nil {
		ctx.WithField("err", err).Warn("failed to flag invalid listing")
	}
}
