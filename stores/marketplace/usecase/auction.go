package usecase

import (
	"math/big"
	"time"

	bCtx "github.com/auric-xyz/marketd/base/ctx"
	"github.com/auric-xyz/marketd/base/log"
	"github.com/auric-xyz/marketd/domain"
	"github.com/auric-xyz/marketd/domain/marketplace"
)

func (im *impl) Offer(ctx bCtx.Ctx, offeror domain.Address, id marketplace.ListingId, params *marketplace.OfferParams) error {
	defer im.lockListing(id)()

	listing, err := im.listingRepo.FindOne(ctx, id)
	if err != nil {
		return err
	}
	if listing.IsClosed() {
		return domain.ErrListingClosed
	}
	if !listing.WithinSaleWindow(time.Now()) {
		return domain.ErrOfferOutsideWindow
	}

	price, err := marketplace.ParsePrice(params.PricePerToken)
	if err != nil {
		return err
	}
	sentValue, err := marketplace.ParsePrice(params.SentValue)
	if err != nil {
		return err
	}

	if listing.ListingType == marketplace.ListingTypeAuction {
		return im.handleBid(ctx, offeror, listing, params, price, sentValue)
	}
	return im.handleDirectOffer(ctx, offeror, listing, params, price)
}

// handleDirectOffer records an advisory offer on a direct listing. Nothing
// is escrowed; the lister pulls payment at accept time, so the currency must
// be a transferable pay token, never native value.
func (im *impl) handleDirectOffer(ctx bCtx.Ctx, offeror domain.Address, listing *marketplace.Listing, params *marketplace.OfferParams, price *big.Int) error {
	if params.Currency.IsNative() {
		return domain.ErrInvalidCurrency
	}
	if err := im.checkPayToken(ctx, listing.ChainId, params.Currency); err != nil {
		return err
	}

	quantity := safeQuantity(listing.TokenType, params.QuantityWanted)
	if quantity <= 0 || quantity > listing.Quantity {
		return domain.ErrInvalidQuantity
	}

	var deadline *time.Time
	if params.ExpirationTime > 0 {
		d := time.Unix(params.ExpirationTime, 0)
		if !d.After(time.Now()) {
			return domain.ErrBadParamInput
		}
		deadline = &d
	}

	offer := &marketplace.Offer{
		ChainId:        listing.ChainId,
		ListingId:      listing.ListingId,
		Offeror:        offeror.ToLower(),
		QuantityWanted: quantity,
		Currency:       params.Currency.ToLower(),
		PricePerToken:  price.String(),
		Deadline:       deadline,
	}

	total, err := offer.TotalPrice()
	if err != nil {
		return err
	}
	if err := im.fund.CheckFunds(ctx, listing.ChainId, offeror, offer.Currency, total); err != nil {
		return err
	}

	if err := im.offerRepo.Upsert(ctx, offer); err != nil {
		return err
	}

	im.emitOfferEvent(ctx, marketplace.EventTypeNewOffer, offer)

	return nil
}

// handleBid places a bid on an open auction. Three mutually exclusive
// outcomes, evaluated in order: buyout settlement, new strict high with
// anti-snipe extension, or a recorded non-winning bid.
func (im *impl) handleBid(ctx bCtx.Ctx, offeror domain.Address, listing *marketplace.Listing, params *marketplace.OfferParams, price, sentValue *big.Int) error {
	currency := params.Currency
	if currency.IsEmpty() {
		currency = listing.Currency
	}
	if !currency.Equals(listing.Currency) {
		return domain.ErrCurrencyMismatch
	}

	// auctions are all or nothing per listing
	if params.QuantityWanted != listing.Quantity {
		return domain.ErrOfferWrongQuantity
	}

	reserve, err := listing.ReservePrice()
	if err != nil {
		return err
	}
	buyout, err := listing.BuyoutPrice()
	if err != nil {
		return err
	}

	quantityBig := big.NewInt(listing.Quantity)
	totalOffer := new(big.Int).Mul(price, quantityBig)
	totalReserve := new(big.Int).Mul(reserve, quantityBig)
	totalBuyout := new(big.Int).Mul(buyout, quantityBig)

	if totalOffer.Cmp(totalReserve) < 0 {
		return domain.ErrOfferUnderReserve
	}

	winningBid, err := im.winningBidRepo.FindOne(ctx, marketplace.WinningBidId(listing.ToId()))
	if err == domain.ErrNotFound {
		winningBid = nil
	} else if err != nil {
		return err
	}

	// escrow the incoming bid before anything else moves
	if err := im.fund.Pull(ctx, listing.ChainId, offeror, listing.Currency, totalOffer, sentValue); err != nil {
		return err
	}

	// a rebidding offeror gets the prior non-winning escrow back in full
	priorId := marketplace.OfferId{ChainId: listing.ChainId, ListingId: listing.ListingId, Offeror: offeror.ToLower()}
	if prior, err := im.offerRepo.FindOne(ctx, priorId); err == nil {
		priorTotal, err := prior.TotalPrice()
		if err != nil {
			return err
		}
		if err := im.offerRepo.Remove(ctx, priorId); err != nil {
			return err
		}
		if err := im.fund.Push(ctx, listing.ChainId, prior.Offeror, prior.Currency, priorTotal); err != nil {
			return err
		}
	} else if err != domain.ErrNotFound {
		return err
	}

	isBuyout := buyout.Sign() > 0 && totalOffer.Cmp(totalBuyout) >= 0
	isNewHigh := winningBid == nil
	if winningBid != nil {
		winningTotal, err := winningBid.TotalPrice()
		if err != nil {
			return err
		}
		isNewHigh = totalOffer.Cmp(winningTotal) > 0
	}

	incoming := &marketplace.Offer{
		ChainId:        listing.ChainId,
		ListingId:      listing.ListingId,
		Offeror:        offeror.ToLower(),
		QuantityWanted: listing.Quantity,
		Currency:       listing.Currency,
		PricePerToken:  price.String(),
	}

	defer im.emitOfferEvent(ctx, marketplace.EventTypeNewOffer, incoming)

	if !isBuyout && !isNewHigh {
		// valid but not a new high: escrowed and visible, the winning bid
		// is not disturbed
		return im.offerRepo.Upsert(ctx, incoming)
	}

	newWinningBid := &marketplace.WinningBid{
		ChainId:        listing.ChainId,
		ListingId:      listing.ListingId,
		Bidder:         offeror.ToLower(),
		QuantityWanted: listing.Quantity,
		Currency:       listing.Currency,
		PricePerToken:  price.String(),
	}
	if isBuyout {
		newWinningBid.AssetsDone = true
	}
	if err := im.winningBidRepo.Upsert(ctx, newWinningBid); err != nil {
		return err
	}

	// the dethroned bidder is always made whole before anything else
	if winningBid != nil {
		winningTotal, err := winningBid.TotalPrice()
		if err != nil {
			return err
		}
		if err := im.fund.Push(ctx, listing.ChainId, winningBid.Bidder, winningBid.Currency, winningTotal); err != nil {
			return err
		}
	}

	if isBuyout {
		return im.settleBuyout(ctx, listing, newWinningBid)
	}

	// anti-snipe: every qualifying late bid guarantees timeBuffer of
	// remaining auction time
	now := time.Now()
	if listing.EndTime.Sub(now) < im.timeBuffer {
		endTime := listing.EndTime.Add(im.timeBuffer)
		if err := im.listingRepo.Update(ctx, listing.ToId(), marketplace.ListingPatchable{EndTime: &endTime}); err != nil {
			return err
		}
	}

	im.emitOfferEvent(ctx, marketplace.EventTypeNewBid, incoming)

	return nil
}

// settleBuyout ends the auction in the same call that met the buyout price.
// The bidder's assets move immediately; the lister collects the payout
// through CloseAuction.
func (im *impl) settleBuyout(ctx bCtx.Ctx, listing *marketplace.Listing, winningBid *marketplace.WinningBid) error {
	endTime := time.Now()
	if err := im.listingRepo.Update(ctx, listing.ToId(), marketplace.ListingPatchable{EndTime: &endTime}); err != nil {
		return err
	}

	// the buyout ends the auction, so outstanding losing bids unwind here
	if err := im.refundNonWinningOffers(ctx, listing); err != nil {
		return err
	}

	market, err := im.marketAccount(ctx, listing.ChainId)
	if err != nil {
		return err
	}
	if err := im.transferListingTokens(ctx, listing, market, winningBid.Bidder, winningBid.QuantityWanted); err != nil {
		return err
	}

	im.emitAuctionClosedEvent(ctx, listing.ChainId, &marketplace.AuctionClosedInfo{
		ListingId:      listing.ListingId,
		Closer:         winningBid.Bidder,
		Cancelled:      false,
		AuctionCreator: listing.TokenOwner,
		WinningBidder:  winningBid.Bidder,
	})

	return nil
}

// refundNonWinningOffers returns every remaining escrowed non-winning bid to
// its offeror. Each record is removed before its value moves, so a retried
// close sweeps only what is still outstanding and never pays twice.
func (im *impl) refundNonWinningOffers(ctx bCtx.Ctx, listing *marketplace.Listing) error {
	offers, err := im.offerRepo.FindAll(ctx,
		marketplace.OfferWithChainId(listing.ChainId),
		marketplace.OfferWithListingId(listing.ListingId),
	)
	if err != nil {
		return err
	}
	for _, offer := range offers {
		total, err := offer.TotalPrice()
		if err != nil {
			return err
		}
		if err := im.offerRepo.Remove(ctx, offer.ToId()); err != nil {
			return err
		}
		if err := im.fund.Push(ctx, listing.ChainId, offer.Offeror, offer.Currency, total); err != nil {
			return err
		}
	}
	return nil
}

func (im *impl) CloseAuction(ctx bCtx.Ctx, caller domain.Address, id marketplace.ListingId, closeFor domain.Address) error {
	defer im.lockListing(id)()

	listing, err := im.listingRepo.FindOne(ctx, id)
	if err != nil {
		return err
	}
	if listing.ListingType != marketplace.ListingTypeAuction {
		return domain.ErrListingNotAuction
	}

	winningBid, err := im.winningBidRepo.FindOne(ctx, marketplace.WinningBidId(id))
	if err == domain.ErrNotFound {
		winningBid = nil
	} else if err != nil {
		return err
	}

	// no bid has landed: the only close is the lister taking the escrowed
	// assets back
	if winningBid == nil {
		if listing.IsClosed() {
			return domain.ErrListingClosed
		}
		if !listing.TokenOwner.Equals(caller) {
			return domain.ErrNotBidderOrCreator
		}
		return im.cancelAuction(ctx, caller, listing)
	}

	if !listing.TokenOwner.Equals(caller) && !winningBid.Bidder.Equals(caller) {
		return domain.ErrNotBidderOrCreator
	}
	if time.Now().Before(listing.EndTime) {
		return domain.ErrAuctionNotEnded
	}

	switch {
	case listing.TokenOwner.Equals(closeFor):
		return im.closeAuctionForLister(ctx, caller, listing, winningBid)
	case winningBid.Bidder.Equals(closeFor):
		return im.closeAuctionForBidder(ctx, caller, listing, winningBid)
	default:
		return domain.ErrNotBidderOrCreator
	}
}

// closeAuctionForLister pays the escrowed winning-bid value out to the
// lister, fee and royalty split applied. Idempotent; repeat calls are no-ops.
func (im *impl) closeAuctionForLister(ctx bCtx.Ctx, caller domain.Address, listing *marketplace.Listing, winningBid *marketplace.WinningBid) error {
	// losing-bid refunds run ahead of the idempotency guard so a retried
	// close can finish an interrupted sweep
	if err := im.refundNonWinningOffers(ctx, listing); err != nil {
		return err
	}

	if winningBid.PayoutDone {
		ctx.WithFields(log.Fields{
			"listingId": listing.ListingId,
		}).Info("auction payout already collected")
		return nil
	}

	total, err := winningBid.TotalPrice()
	if err != nil {
		return err
	}

	// flags and quantity hit their terminal values before any value moves
	done := true
	if err := im.winningBidRepo.Update(ctx, winningBid.ToId(), marketplace.WinningBidPatchable{PayoutDone: &done}); err != nil {
		return err
	}
	zero := int64(0)
	if err := im.listingRepo.Update(ctx, listing.ToId(), marketplace.ListingPatchable{Quantity: &zero}); err != nil {
		return err
	}

	if err := im.distributeSalePrice(ctx, listing.ChainId, listing.AssetContract, winningBid.Currency, listing.TokenOwner, total); err != nil {
		return err
	}

	im.emitAuctionClosedEvent(ctx, listing.ChainId, &marketplace.AuctionClosedInfo{
		ListingId:      listing.ListingId,
		Closer:         caller.ToLower(),
		Cancelled:      false,
		AuctionCreator: listing.TokenOwner,
		WinningBidder:  winningBid.Bidder,
	})

	return nil
}

// closeAuctionForBidder hands the escrowed assets to the winning bidder.
// Idempotent; already done when the auction ended through a buyout.
func (im *impl) closeAuctionForBidder(ctx bCtx.Ctx, caller domain.Address, listing *marketplace.Listing, winningBid *marketplace.WinningBid) error {
	if err := im.refundNonWinningOffers(ctx, listing); err != nil {
		return err
	}

	if winningBid.AssetsDone {
		ctx.WithFields(log.Fields{
			"listingId": listing.ListingId,
		}).Info("auction assets already transferred")
		return nil
	}

	done := true
	if err := im.winningBidRepo.Update(ctx, winningBid.ToId(), marketplace.WinningBidPatchable{AssetsDone: &done}); err != nil {
		return err
	}

	market, err := im.marketAccount(ctx, listing.ChainId)
	if err != nil {
		return err
	}
	if err := im.transferListingTokens(ctx, listing, market, winningBid.Bidder, winningBid.QuantityWanted); err != nil {
		return err
	}

	im.emitAuctionClosedEvent(ctx, listing.ChainId, &marketplace.AuctionClosedInfo{
		ListingId:      listing.ListingId,
		Closer:         caller.ToLower(),
		Cancelled:      false,
		AuctionCreator: listing.TokenOwner,
		WinningBidder:  winningBid.Bidder,
	})

	return nil
}
