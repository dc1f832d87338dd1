package marketplace

import (
	"math/big"
	"time"

	"github.com/auric-xyz/marketd/base/ctx"
	"github.com/auric-xyz/marketd/domain"
)

// Offer is the pending offer of one offeror against one listing. For direct
// listings it is advisory until the lister accepts it; for auctions a
// qualifying offer becomes the winning bid.
type Offer struct {
	ChainId        domain.ChainId `json:"chainId" bson:"chainId"`
	ListingId      uint64         `json:"listingId" bson:"listingId"`
	Offeror        domain.Address `json:"offeror" bson:"offeror"`
	QuantityWanted int64          `json:"quantityWanted" bson:"quantityWanted"`
	Currency       domain.Address `json:"currency" bson:"currency"`
	PricePerToken  string         `json:"pricePerToken" bson:"pricePerToken"`
	// Deadline bounds direct-listing offers; nil means the offer stands
	// until accepted or replaced. Auction bids never carry one.
	Deadline *time.Time `json:"deadline,omitempty" bson:"deadline,omitempty"`
}

// Expired reports whether the offer's deadline has passed.
func (o *Offer) Expired(now time.Time) bool {
	return o.Deadline != nil && !now.Before(*o.Deadline)
}

func (o *Offer) ToId() OfferId {
	return OfferId{ChainId: o.ChainId, ListingId: o.ListingId, Offeror: o.Offeror.ToLower()}
}

func (o *Offer) Price() (*big.Int, error) {
	p, ok := new(big.Int).SetString(o.PricePerToken, 10)
	if !ok {
		return nil, domain.ErrInvalidNumberFormat
	}
	return p, nil
}

// TotalPrice is PricePerToken * QuantityWanted.
func (o *Offer) TotalPrice() (*big.Int, error) {
	p, err := o.Price()
	if err != nil {
		return nil, err
	}
	return new(big.Int).Mul(p, big.NewInt(o.QuantityWanted)), nil
}

type OfferId struct {
	ChainId   domain.ChainId `json:"chainId" bson:"chainId"`
	ListingId uint64         `json:"listingId" bson:"listingId"`
	Offeror   domain.Address `json:"offeror" bson:"offeror"`
}

type OfferFindAllOptions struct {
	ChainId   *domain.ChainId
	ListingId *uint64
	Offeror   *domain.Address
	Offset    *int32
	Limit     *int32
}

type OfferFindAllOptionsFunc func(*OfferFindAllOptions) error

func GetOfferFindAllOptions(opts ...OfferFindAllOptionsFunc) (OfferFindAllOptions, error) {
	res := OfferFindAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func OfferWithChainId(chainId domain.ChainId) OfferFindAllOptionsFunc {
	return func(options *OfferFindAllOptions) error {
		options.ChainId = &chainId
		return nil
	}
}

func OfferWithListingId(listingId uint64) OfferFindAllOptionsFunc {
	return func(options *OfferFindAllOptions) error {
		options.ListingId = &listingId
		return nil
	}
}

func OfferWithOfferor(offeror domain.Address) OfferFindAllOptionsFunc {
	return func(options *OfferFindAllOptions) error {
		options.Offeror = offeror.ToLowerPtr()
		return nil
	}
}

func OfferWithPagination(offset, limit int32) OfferFindAllOptionsFunc {
	return func(options *OfferFindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

type OfferRepo interface {
	FindAll(ctx ctx.Ctx, opts ...OfferFindAllOptionsFunc) ([]*Offer, error)
	FindOne(ctx ctx.Ctx, id OfferId) (*Offer, error)
	Upsert(ctx ctx.Ctx, offer *Offer) error
	Remove(ctx ctx.Ctx, id OfferId) error
}

// WinningBid is the single escrowed highest valid bid of an auction listing.
// It is replaced only by a strictly higher, currency-matching bid. PayoutDone
// and AssetsDone make the two closeAuction branches idempotent.
type WinningBid struct {
	ChainId        domain.ChainId `json:"chainId" bson:"chainId"`
	ListingId      uint64         `json:"listingId" bson:"listingId"`
	Bidder         domain.Address `json:"bidder" bson:"bidder"`
	QuantityWanted int64          `json:"quantityWanted" bson:"quantityWanted"`
	Currency       domain.Address `json:"currency" bson:"currency"`
	PricePerToken  string         `json:"pricePerToken" bson:"pricePerToken"`
	PayoutDone     bool           `json:"payoutDone" bson:"payoutDone"`
	AssetsDone     bool           `json:"assetsDone" bson:"assetsDone"`
}

func (b *WinningBid) ToId() WinningBidId {
	return WinningBidId{ChainId: b.ChainId, ListingId: b.ListingId}
}

func (b *WinningBid) Price() (*big.Int, error) {
	p, ok := new(big.Int).SetString(b.PricePerToken, 10)
	if !ok {
		return nil, domain.ErrInvalidNumberFormat
	}
	return p, nil
}

func (b *WinningBid) TotalPrice() (*big.Int, error) {
	p, err := b.Price()
	if err != nil {
		return nil, err
	}
	return new(big.Int).Mul(p, big.NewInt(b.QuantityWanted)), nil
}

type WinningBidId struct {
	ChainId   domain.ChainId `json:"chainId" bson:"chainId"`
	ListingId uint64         `json:"listingId" bson:"listingId"`
}

type WinningBidPatchable struct {
	PayoutDone *bool `bson:"payoutDone,omitempty"`
	AssetsDone *bool `bson:"assetsDone,omitempty"`
}

type WinningBidRepo interface {
	FindOne(ctx ctx.Ctx, id WinningBidId) (*WinningBid, error)
	Upsert(ctx ctx.Ctx, bid *WinningBid) error
	Update(ctx ctx.Ctx, id WinningBidId, patchable WinningBidPatchable) error
	Remove(ctx ctx.Ctx, id WinningBidId) error
}
