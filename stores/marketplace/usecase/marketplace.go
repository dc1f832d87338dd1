package usecase

import (
	"math/big"
	"sync"
	"time"

	bCtx "github.com/auric-xyz/marketd/base/ctx"
	"github.com/auric-xyz/marketd/base/log"
	"github.com/auric-xyz/marketd/domain"
	"github.com/auric-xyz/marketd/domain/fund"
	"github.com/auric-xyz/marketd/domain/marketplace"
	"github.com/auric-xyz/marketd/domain/registry"
	"github.com/auric-xyz/marketd/service/chain"
	"github.com/auric-xyz/marketd/service/chain/contract"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MarketplaceUseCaseCfg struct {
	ListingRepo    marketplace.ListingRepo
	OfferRepo      marketplace.OfferRepo
	WinningBidRepo marketplace.WinningBidRepo
	EventRepo      marketplace.EventRepo
	PayTokenRepo   domain.PayTokenRepo
	Registry       registry.Registry
	Fund           fund.UseCase
	Erc721         contract.Erc721Contract
	Erc1155        contract.Erc1155Contract
	Transactor     chain.Transactor

	// TimeBuffer overrides marketplace.DefaultTimeBuffer when positive.
	TimeBuffer time.Duration
}

type impl struct {
	listingRepo    marketplace.ListingRepo
	offerRepo      marketplace.OfferRepo
	winningBidRepo marketplace.WinningBidRepo
	eventRepo      marketplace.EventRepo
	paytokenRepo   domain.PayTokenRepo
	registry       registry.Registry
	fund           fund.UseCase
	erc721         contract.Erc721Contract
	erc1155        contract.Erc1155Contract
	transactor     chain.Transactor
	timeBuffer     time.Duration

	locksMu sync.Mutex
	locks   map[marketplace.ListingId]*sync.Mutex
}

func New(cfg *MarketplaceUseCaseCfg) marketplace.UseCase {
	timeBuffer := cfg.TimeBuffer
	if timeBuffer <= 0 {
		timeBuffer = marketplace.DefaultTimeBuffer
	}
	return &impl{
		listingRepo:    cfg.ListingRepo,
		offerRepo:      cfg.OfferRepo,
		winningBidRepo: cfg.WinningBidRepo,
		eventRepo:      cfg.EventRepo,
		paytokenRepo:   cfg.PayTokenRepo,
		registry:       cfg.Registry,
		fund:           cfg.Fund,
		erc721:         cfg.Erc721,
		erc1155:        cfg.Erc1155,
		transactor:     cfg.Transactor,
		timeBuffer:     timeBuffer,
		locks:          map[marketplace.ListingId]*sync.Mutex{},
	}
}

// lockListing serializes competing callers on one listing. Every mutating
// operation holds the listing lock for its whole duration, which substitutes
// for ledger-ordered transactions.
func (im *impl) lockListing(id marketplace.ListingId) func() {
	im.locksMu.Lock()
	mu, ok := im.locks[id]
	if !ok {
		mu = &sync.Mutex{}
		im.locks[id] = mu
	}
	im.locksMu.Unlock()

	mu.Lock()
	return mu.Unlock
}

func (im *impl) marketAccount(ctx bCtx.Ctx, chainId domain.ChainId) (domain.Address, error) {
	account, err := im.transactor.Account(int32(chainId))
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"chainId": chainId,
		}).Error("transactor.Account failed")
		return "", err
	}
	return domain.Address(account.Hex()).ToLower(), nil
}

// validateOwnershipAndApproval checks that owner currently holds quantity of
// the asset and has approved the market account to move it. Direct listings
// are never escrowed, so this runs again at every sale.
func (im *impl) validateOwnershipAndApproval(ctx bCtx.Ctx, chainId domain.ChainId, owner, assetContract domain.Address, tokenId domain.TokenId, tokenType domain.TokenType, quantity int64) error {
	market, err := im.marketAccount(ctx, chainId)
	if err != nil {
		return err
	}

	id, err := tokenId.ToBigInt()
	if err != nil {
		return err
	}

	switch tokenType {
	case domain.TokenType721:
		holder, err := im.erc721.OwnerOf(ctx, int32(chainId), string(assetContract), id)
		if err != nil {
			ctx.WithFields(log.Fields{
				"err":     err,
				"asset":   assetContract,
				"tokenId": tokenId,
			}).Error("erc721.OwnerOf failed")
			return err
		}
		if !domain.Address(holder).Equals(owner) {
			return domain.ErrTokenNotOwnedOrApproved
		}

		approved, err := im.erc721.GetApproved(ctx, int32(chainId), string(assetContract), id)
		if err != nil {
			ctx.WithFields(log.Fields{
				"err":     err,
				"asset":   assetContract,
				"tokenId": tokenId,
			}).Error("erc721.GetApproved failed")
			return err
		}
		if domain.Address(approved).Equals(market) {
			return nil
		}

		approvedForAll, err := im.erc721.IsApprovedForAll(ctx, int32(chainId), string(assetContract), string(owner), string(market))
		if err != nil {
			ctx.WithFields(log.Fields{
				"err":   err,
				"asset": assetContract,
				"owner": owner,
			}).Error("erc721.IsApprovedForAll failed")
			return err
		}
		if !approvedForAll {
			return domain.ErrTokenNotOwnedOrApproved
		}
		return nil
	case domain.TokenType1155:
		balance, err := im.erc1155.BalanceOf(ctx, int32(chainId), string(assetContract), string(owner), id)
		if err != nil {
			ctx.WithFields(log.Fields{
				"err":     err,
				"asset":   assetContract,
				"tokenId": tokenId,
			}).Error("erc1155.BalanceOf failed")
			return err
		}
		if balance.Cmp(big.NewInt(quantity)) < 0 {
			return domain.ErrTokenNotOwnedOrApproved
		}

		approvedForAll, err := im.erc1155.IsApprovedForAll(ctx, int32(chainId), string(assetContract), string(owner), string(market))
		if err != nil {
			ctx.WithFields(log.Fields{
				"err":   err,
				"asset": assetContract,
				"owner": owner,
			}).Error("erc1155.IsApprovedForAll failed")
			return err
		}
		if !approvedForAll {
			return domain.ErrTokenNotOwnedOrApproved
		}
		return nil
	default:
		return domain.ErrInvalidTokenType
	}
}

// transferListingTokens moves quantity of the listed asset from one holder
// to another through the market account's operator approval.
func (im *impl) transferListingTokens(ctx bCtx.Ctx, listing *marketplace.Listing, from, to domain.Address, quantity int64) error {
	id, err := listing.TokenId.ToBigInt()
	if err != nil {
		return err
	}

	switch listing.TokenType {
	case domain.TokenType721:
		err = im.erc721.SafeTransferFrom(ctx, int32(listing.ChainId), string(listing.AssetContract), string(from), string(to), id)
	case domain.TokenType1155:
		err = im.erc1155.SafeTransferFrom(ctx, int32(listing.ChainId), string(listing.AssetContract), string(from), string(to), id, big.NewInt(quantity))
	default:
		return domain.ErrInvalidTokenType
	}
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"listingId": listing.ListingId,
			"from":      from,
			"to":        to,
			"quantity":  quantity,
		}).Error("asset transfer failed")
		return err
	}
	return nil
}

// distributeSalePrice splits total between the royalty treasury and the
// payee. State must already be at its terminal value when this runs.
func (im *impl) distributeSalePrice(ctx bCtx.Ctx, chainId domain.ChainId, assetContract, currency, payee domain.Address, total *big.Int) error {
	marketFeeBps, err := im.registry.MarketFeeBps(ctx, chainId)
	if err != nil {
		return err
	}
	royaltyBps, err := im.registry.RoyaltyBps(ctx, chainId, assetContract)
	if err != nil {
		return err
	}
	treasury, err := im.registry.RoyaltyTreasury(ctx, chainId)
	if err != nil {
		return err
	}

	payout := marketplace.Distribute(total, marketFeeBps, royaltyBps)

	if payout.MarketCut.Sign() > 0 {
		if err := im.fund.Push(ctx, chainId, treasury, currency, payout.MarketCut); err != nil {
			return err
		}
	}
	if payout.RoyaltyCut.Sign() > 0 {
		if err := im.fund.Push(ctx, chainId, treasury, currency, payout.RoyaltyCut); err != nil {
			return err
		}
	}
	if payout.ListerPayout.Sign() > 0 {
		if err := im.fund.Push(ctx, chainId, payee, currency, payout.ListerPayout); err != nil {
			return err
		}
	}
	return nil
}

// displayPrice scales total by the pay token's decimals for human-readable
// event payloads. Failures degrade to the raw amount.
func (im *impl) displayPrice(ctx bCtx.Ctx, chainId domain.ChainId, currency domain.Address, total *big.Int) string {
	payToken, err := im.paytokenRepo.FindOne(ctx, chainId, currency.ToLower())
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"currency": currency,
		}).Warn("paytokenRepo.FindOne failed")
		return total.String()
	}
	return decimal.NewFromBigInt(total, -payToken.Decimals).String()
}

func (im *impl) emitListingEvent(ctx bCtx.Ctx, eventType marketplace.EventType, listing *marketplace.Listing) {
	im.insertEvent(ctx, &marketplace.Event{
		Id:        uuid.NewString(),
		Type:      eventType,
		ChainId:   listing.ChainId,
		ListingId: listing.ListingId,
		Time:      time.Now(),
		Listing:   listing,
	})
}

func (im *impl) emitOfferEvent(ctx bCtx.Ctx, eventType marketplace.EventType, offer *marketplace.Offer) {
	im.insertEvent(ctx, &marketplace.Event{
		Id:        uuid.NewString(),
		Type:      eventType,
		ChainId:   offer.ChainId,
		ListingId: offer.ListingId,
		Time:      time.Now(),
		Offer:     offer,
	})
}

func (im *impl) emitAuctionClosedEvent(ctx bCtx.Ctx, chainId domain.ChainId, info *marketplace.AuctionClosedInfo) {
	im.insertEvent(ctx, &marketplace.Event{
		Id:            uuid.NewString(),
		Type:          marketplace.EventTypeAuctionClosed,
		ChainId:       chainId,
		ListingId:     info.ListingId,
		Time:          time.Now(),
		AuctionClosed: info,
	})
}

func (im *impl) emitSaleEvent(ctx bCtx.Ctx, chainId domain.ChainId, info *marketplace.SaleInfo) {
	im.insertEvent(ctx, &marketplace.Event{
		Id:        uuid.NewString(),
		Type:      marketplace.EventTypeNewSale,
		ChainId:   chainId,
		ListingId: info.ListingId,
		Time:      time.Now(),
		Sale:      info,
	})
}

// insertEvent never fails the surrounding operation. Settled value movement
// outranks a lost notification.
func (im *impl) insertEvent(ctx bCtx.Ctx, event *marketplace.Event) {
	if err := im.eventRepo.Insert(ctx, event); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"event": *event,
		}).Error("eventRepo.Insert failed")
	}
}

func (im *impl) GetListing(ctx bCtx.Ctx, id marketplace.ListingId) (*marketplace.Listing, error) {
	return im.listingRepo.FindOne(ctx, id)
}

func (im *impl) FindListings(ctx bCtx.Ctx, opts ...marketplace.ListingFindAllOptionsFunc) ([]*marketplace.Listing, error) {
	return im.listingRepo.FindAll(ctx, opts...)
}

func (im *impl) FindOffers(ctx bCtx.Ctx, opts ...marketplace.OfferFindAllOptionsFunc) ([]*marketplace.Offer, error) {
	return im.offerRepo.FindAll(ctx, opts...)
}

func (im *impl) GetWinningBid(ctx bCtx.Ctx, id marketplace.ListingId) (*marketplace.WinningBid, error) {
	return im.winningBidRepo.FindOne(ctx, marketplace.WinningBidId(id))
}
