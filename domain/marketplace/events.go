package marketplace

import (
	"time"

	"github.com/auric-xyz/marketd/base/ctx"
	"github.com/auric-xyz/marketd/domain"
)

type EventType string

const (
	EventTypeNewListing    EventType = "newListing"
	EventTypeListingUpdate EventType = "listingUpdate"
	EventTypeNewOffer      EventType = "newOffer"
	EventTypeNewBid        EventType = "newBid"
	EventTypeAuctionClosed EventType = "auctionClosed"
	EventTypeNewSale       EventType = "newSale"
)

type AuctionClosedInfo struct {
	ListingId      uint64         `json:"listingId" bson:"listingId"`
	Closer         domain.Address `json:"closer" bson:"closer"`
	Cancelled      bool           `json:"cancelled" bson:"cancelled"`
	AuctionCreator domain.Address `json:"auctionCreator" bson:"auctionCreator"`
	WinningBidder  domain.Address `json:"winningBidder" bson:"winningBidder"`
}

type SaleInfo struct {
	ListingId      uint64         `json:"listingId" bson:"listingId"`
	AssetContract  domain.Address `json:"assetContract" bson:"assetContract"`
	Lister         domain.Address `json:"lister" bson:"lister"`
	Buyer          domain.Address `json:"buyer" bson:"buyer"`
	QuantityBought int64          `json:"quantityBought" bson:"quantityBought"`
	// TotalPricePaid is in the currency's smallest unit
	TotalPricePaid string         `json:"totalPricePaid" bson:"totalPricePaid"`
	Currency       domain.Address `json:"currency" bson:"currency"`
	// DisplayPrice is TotalPricePaid scaled by the currency's decimals
	DisplayPrice string `json:"displayPrice" bson:"displayPrice"`
}

// Event is one marketplace event record, consumed by off-chain style
// indexers and the notification bot. Exactly one of the payload pointers is
// set, according to Type.
type Event struct {
	Id        string         `json:"id" bson:"id"`
	Type      EventType      `json:"type" bson:"type"`
	ChainId   domain.ChainId `json:"chainId" bson:"chainId"`
	ListingId uint64         `json:"listingId" bson:"listingId"`
	Time      time.Time      `json:"time" bson:"time"`

	Listing       *Listing           `json:"listing,omitempty" bson:"listing,omitempty"`
	Offer         *Offer             `json:"offer,omitempty" bson:"offer,omitempty"`
	AuctionClosed *AuctionClosedInfo `json:"auctionClosed,omitempty" bson:"auctionClosed,omitempty"`
	Sale          *SaleInfo          `json:"sale,omitempty" bson:"sale,omitempty"`
}

type EventFindAllOptions struct {
	ChainId   *domain.ChainId
	ListingId *uint64
	Type      *EventType
	TimeGT    *time.Time
	Offset    *int32
	Limit     *int32
}

type EventFindAllOptionsFunc func(*EventFindAllOptions) error

func GetEventFindAllOptions(opts ...EventFindAllOptionsFunc) (EventFindAllOptions, error) {
	res := EventFindAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func EventWithChainId(chainId domain.ChainId) EventFindAllOptionsFunc {
	return func(options *EventFindAllOptions) error {
		options.ChainId = &chainId
		return nil
	}
}

func EventWithListingId(listingId uint64) EventFindAllOptionsFunc {
	return func(options *EventFindAllOptions) error {
		options.ListingId = &listingId
		return nil
	}
}

func EventWithType(t EventType) EventFindAllOptionsFunc {
	return func(options *EventFindAllOptions) error {
		options.Type = &t
		return nil
	}
}

func EventWithTimeGT(t time.Time) EventFindAllOptionsFunc {
	return func(options *EventFindAllOptions) error {
		options.TimeGT = &t
		return nil
	}
}

func EventWithPagination(offset, limit int32) EventFindAllOptionsFunc {
	return func(options *EventFindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

type EventRepo interface {
	FindAll(ctx ctx.Ctx, opts ...EventFindAllOptionsFunc) ([]*Event, error)
	Insert(ctx ctx.Ctx, event *Event) error
}
