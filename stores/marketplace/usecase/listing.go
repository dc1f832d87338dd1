package usecase

import (
	"time"

	bCtx "github.com/auric-xyz/marketd/base/ctx"
	"github.com/auric-xyz/marketd/base/log"
	"github.com/auric-xyz/marketd/base/ptr"
	"github.com/auric-xyz/marketd/domain"
	"github.com/auric-xyz/marketd/domain/marketplace"
)

// safeQuantity clamps the listed amount per token type. An ERC 721 listing
// never exceeds one unit.
func safeQuantity(tokenType domain.TokenType, quantity int64) int64 {
	if tokenType == domain.TokenType721 && quantity > 1 {
		return 1
	}
	return quantity
}

func (im *impl) checkPayToken(ctx bCtx.Ctx, chainId domain.ChainId, currency domain.Address) error {
	if _, err := im.paytokenRepo.FindOne(ctx, chainId, currency.ToLower()); err == domain.ErrNotFound {
		return domain.ErrUnsupportedCurrency
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"currency": currency,
		}).Error("paytokenRepo.FindOne failed")
		return err
	}
	return nil
}

func (im *impl) checkTokenType(ctx bCtx.Ctx, chainId domain.ChainId, assetContract domain.Address, tokenType domain.TokenType) error {
	var (
		ok  bool
		err error
	)
	switch tokenType {
	case domain.TokenType721:
		ok, err = im.erc721.Supports721Interface(ctx, int32(chainId), string(assetContract))
	case domain.TokenType1155:
		ok, err = im.erc1155.Supports1155Interface(ctx, int32(chainId), string(assetContract))
	default:
		return domain.ErrInvalidTokenType
	}
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"asset": assetContract,
		}).Warn("supportsInterface call failed")
		return domain.ErrInvalidTokenType
	}
	if !ok {
		return domain.ErrInvalidTokenType
	}
	return nil
}

func (im *impl) CreateListing(ctx bCtx.Ctx, lister domain.Address, params *marketplace.CreateListingParams) (*marketplace.Listing, error) {
	if !params.ListingType.IsValid() {
		return nil, domain.ErrBadParamInput
	}
	if params.SecondsUntilEndTime <= 0 {
		return nil, domain.ErrBadParamInput
	}

	quantity := safeQuantity(params.TokenType, params.QuantityToList)
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	reserve, err := marketplace.ParsePrice(params.ReservePricePerToken)
	if err != nil {
		return nil, err
	}
	buyout, err := marketplace.ParsePrice(params.BuyoutPricePerToken)
	if err != nil {
		return nil, err
	}
	if buyout.Sign() > 0 && buyout.Cmp(reserve) < 0 {
		return nil, domain.ErrReserveExceedsBuyout
	}

	if err := im.checkPayToken(ctx, params.ChainId, params.CurrencyToAccept); err != nil {
		return nil, err
	}
	if err := im.checkTokenType(ctx, params.ChainId, params.AssetContract, params.TokenType); err != nil {
		return nil, err
	}
	if err := im.validateOwnershipAndApproval(ctx, params.ChainId, lister, params.AssetContract, params.TokenId, params.TokenType, quantity); err != nil {
		return nil, err
	}

	startTime := time.Unix(params.StartTime, 0)
	if now := time.Now(); startTime.Before(now) {
		startTime = now
	}
	endTime := startTime.Add(time.Duration(params.SecondsUntilEndTime) * time.Second)

	listingId, err := im.listingRepo.NextListingId(ctx, params.ChainId)
	if err != nil {
		return nil, err
	}

	listing := &marketplace.Listing{
		ListingId:            listingId,
		ChainId:              params.ChainId,
		TokenOwner:           lister.ToLower(),
		AssetContract:        params.AssetContract.ToLower(),
		TokenId:              params.TokenId,
		TokenType:            params.TokenType,
		StartTime:            startTime,
		EndTime:              endTime,
		Quantity:             quantity,
		Currency:             params.CurrencyToAccept.ToLower(),
		ReservePricePerToken: reserve.String(),
		BuyoutPricePerToken:  buyout.String(),
		ListingType:          params.ListingType,
		IsValid:              true,
	}

	// auction assets are escrowed up front so settlement can never fail on
	// a lister who walked away
	if listing.ListingType == marketplace.ListingTypeAuction {
		market, err := im.marketAccount(ctx, listing.ChainId)
		if err != nil {
			return nil, err
		}
		if err := im.transferListingTokens(ctx, listing, lister, market, quantity); err != nil {
			return nil, err
		}
	}

	if err := im.listingRepo.Insert(ctx, listing); err != nil {
		return nil, err
	}

	im.emitListingEvent(ctx, marketplace.EventTypeNewListing, listing)

	return listing, nil
}

func (im *impl) UpdateListing(ctx bCtx.Ctx, lister domain.Address, id marketplace.ListingId, params *marketplace.UpdateListingParams) (*marketplace.Listing, error) {
	defer im.lockListing(id)()

	listing, err := im.listingRepo.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if !listing.TokenOwner.Equals(lister) {
		return nil, domain.ErrNotListingCreator
	}

	if listing.ListingType == marketplace.ListingTypeAuction {
		return im.updateAuctionListing(ctx, lister, listing, params)
	}
	return im.updateDirectListing(ctx, lister, listing, params)
}

func (im *impl) updateDirectListing(ctx bCtx.Ctx, lister domain.Address, listing *marketplace.Listing, params *marketplace.UpdateListingParams) (*marketplace.Listing, error) {
	quantity := safeQuantity(listing.TokenType, params.QuantityToList)
	if quantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}

	// quantity 0 delists; anything else must still be covered by the
	// owner's balance and approval
	if quantity > 0 {
		if err := im.validateOwnershipAndApproval(ctx, listing.ChainId, lister, listing.AssetContract, listing.TokenId, listing.TokenType, quantity); err != nil {
			return nil, err
		}
	}

	patchable := marketplace.ListingPatchable{Quantity: &quantity}
	if err := im.applyListingParams(ctx, listing, params, &patchable); err != nil {
		return nil, err
	}

	if err := im.listingRepo.Update(ctx, listing.ToId(), patchable); err != nil {
		return nil, err
	}

	updated, err := im.listingRepo.FindOne(ctx, listing.ToId())
	if err != nil {
		return nil, err
	}

	im.emitListingEvent(ctx, marketplace.EventTypeListingUpdate, updated)

	return updated, nil
}

func (im *impl) updateAuctionListing(ctx bCtx.Ctx, lister domain.Address, listing *marketplace.Listing, params *marketplace.UpdateListingParams) (*marketplace.Listing, error) {
	// quantity 0 is terminal for auctions only; a delisted direct listing
	// can always be restocked
	if listing.IsClosed() {
		return nil, domain.ErrListingClosed
	}

	if params.QuantityToList == 0 {
		if err := im.cancelAuction(ctx, lister, listing); err != nil {
			return nil, err
		}
		return im.listingRepo.FindOne(ctx, listing.ToId())
	}

	// auction parameters freeze once the auction opens; cancellation above
	// is the only post-start mutation
	if !time.Now().Before(listing.StartTime) {
		return nil, domain.ErrAuctionAlreadyStarted
	}

	quantity := safeQuantity(listing.TokenType, params.QuantityToList)
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	market, err := im.marketAccount(ctx, listing.ChainId)
	if err != nil {
		return nil, err
	}

	// keep escrow aligned with the new quantity
	if delta := quantity - listing.Quantity; delta > 0 {
		if err := im.validateOwnershipAndApproval(ctx, listing.ChainId, lister, listing.AssetContract, listing.TokenId, listing.TokenType, delta); err != nil {
			return nil, err
		}
		if err := im.transferListingTokens(ctx, listing, lister, market, delta); err != nil {
			return nil, err
		}
	} else if delta < 0 {
		if err := im.transferListingTokens(ctx, listing, market, lister, -delta); err != nil {
			return nil, err
		}
	}

	patchable := marketplace.ListingPatchable{Quantity: &quantity}
	if err := im.applyListingParams(ctx, listing, params, &patchable); err != nil {
		return nil, err
	}

	if err := im.listingRepo.Update(ctx, listing.ToId(), patchable); err != nil {
		return nil, err
	}

	updated, err := im.listingRepo.FindOne(ctx, listing.ToId())
	if err != nil {
		return nil, err
	}

	im.emitListingEvent(ctx, marketplace.EventTypeListingUpdate, updated)

	return updated, nil
}

func (im *impl) applyListingParams(ctx bCtx.Ctx, listing *marketplace.Listing, params *marketplace.UpdateListingParams, patchable *marketplace.ListingPatchable) error {
	if params.ReservePricePerToken != "" {
		reserve, err := marketplace.ParsePrice(params.ReservePricePerToken)
		if err != nil {
			return err
		}
		patchable.ReservePricePerToken = ptr.String(reserve.String())
	}
	if params.BuyoutPricePerToken != "" {
		buyout, err := marketplace.ParsePrice(params.BuyoutPricePerToken)
		if err != nil {
			return err
		}
		patchable.BuyoutPricePerToken = ptr.String(buyout.String())
	}
	if !params.CurrencyToAccept.IsEmpty() {
		if err := im.checkPayToken(ctx, listing.ChainId, params.CurrencyToAccept); err != nil {
			return err
		}
		patchable.Currency = params.CurrencyToAccept.ToLowerPtr()
	}

	startTime := listing.StartTime
	if params.StartTime > 0 {
		startTime = time.Unix(params.StartTime, 0)
		if now := time.Now(); startTime.Before(now) {
			startTime = now
		}
		patchable.StartTime = &startTime
	}
	if params.SecondsUntilEndTime > 0 {
		endTime := startTime.Add(time.Duration(params.SecondsUntilEndTime) * time.Second)
		patchable.EndTime = &endTime
	}
	return nil
}

// cancelAuction returns escrowed assets to the lister and moves the listing
// to its terminal state. Only possible while no bid has landed.
func (im *impl) cancelAuction(ctx bCtx.Ctx, closer domain.Address, listing *marketplace.Listing) error {
	if _, err := im.winningBidRepo.FindOne(ctx, marketplace.WinningBidId(listing.ToId())); err == nil {
		return domain.ErrAuctionAlreadyStarted
	} else if err != domain.ErrNotFound {
		return err
	}

	creator := listing.TokenOwner
	quantity := listing.Quantity

	owner := domain.EmptyAddress
	zero := int64(0)
	endTime := time.Unix(0, 0)
	err := im.listingRepo.Update(ctx, listing.ToId(), marketplace.ListingPatchable{
		TokenOwner: &owner,
		Quantity:   &zero,
		EndTime:    &endTime,
	})
	if err != nil {
		return err
	}

	market, err := im.marketAccount(ctx, listing.ChainId)
	if err != nil {
		return err
	}
	if err := im.transferListingTokens(ctx, listing, market, creator, quantity); err != nil {
		return err
	}

	im.emitAuctionClosedEvent(ctx, listing.ChainId, &marketplace.AuctionClosedInfo{
		ListingId:      listing.ListingId,
		Closer:         closer.ToLower(),
		Cancelled:      true,
		AuctionCreator: creator,
	})

	return nil
}
