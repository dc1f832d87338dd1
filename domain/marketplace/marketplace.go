package marketplace

import (
	"math/big"
	"time"

	"github.com/auric-xyz/marketd/base/ctx"
	"github.com/auric-xyz/marketd/domain"
)

// DefaultTimeBuffer is the minimum remaining auction duration guaranteed
// after any new winning bid.
const DefaultTimeBuffer = 15 * time.Minute

type CreateListingParams struct {
	ChainId              domain.ChainId   `json:"chainId"`
	AssetContract        domain.Address   `json:"assetContract" validate:"required"`
	TokenId              domain.TokenId   `json:"tokenId" validate:"required"`
	TokenType            domain.TokenType `json:"tokenType" validate:"required"`
	StartTime            int64            `json:"startTime"`
	SecondsUntilEndTime  int64            `json:"secondsUntilEndTime" validate:"gt=0"`
	QuantityToList       int64            `json:"quantityToList"`
	CurrencyToAccept     domain.Address   `json:"currencyToAccept" validate:"required"`
	ReservePricePerToken string           `json:"reservePricePerToken"`
	BuyoutPricePerToken  string           `json:"buyoutPricePerToken"`
	ListingType          ListingType      `json:"listingType" validate:"required"`
}

type UpdateListingParams struct {
	QuantityToList       int64          `json:"quantityToList"`
	ReservePricePerToken string         `json:"reservePricePerToken"`
	BuyoutPricePerToken  string         `json:"buyoutPricePerToken"`
	CurrencyToAccept     domain.Address `json:"currencyToAccept"`
	StartTime            int64          `json:"startTime"`
	SecondsUntilEndTime  int64          `json:"secondsUntilEndTime"`
}

type OfferParams struct {
	QuantityWanted int64          `json:"quantityWanted"`
	Currency       domain.Address `json:"currency"`
	PricePerToken  string         `json:"pricePerToken"`
	// SentValue is the native value attached to the call; must equal the
	// total offer amount when the listing currency is native.
	SentValue string `json:"sentValue"`
	// ExpirationTime is the unix second the offer lapses at; zero means no
	// expiry. Only direct-listing offers honor it.
	ExpirationTime int64 `json:"expirationTime"`
}

type BuyParams struct {
	QuantityToBuy int64 `json:"quantityToBuy"`
	// SentValue, see OfferParams.
	SentValue string `json:"sentValue"`
}

// UseCase is the listing and auction settlement engine. Every operation is
// atomic per listing: competing callers are serialized and a failed call
// leaves no partial state. The caller address is the effective sender
// resolved by the auth layer, never the transport peer.
type UseCase interface {
	CreateListing(ctx ctx.Ctx, lister domain.Address, params *CreateListingParams) (*Listing, error)
	UpdateListing(ctx ctx.Ctx, lister domain.Address, id ListingId, params *UpdateListingParams) (*Listing, error)

	Buy(ctx ctx.Ctx, buyer domain.Address, id ListingId, params *BuyParams) (*Listing, error)
	AcceptOffer(ctx ctx.Ctx, lister domain.Address, id ListingId, offeror domain.Address) (*Listing, error)

	Offer(ctx ctx.Ctx, offeror domain.Address, id ListingId, params *OfferParams) error
	CloseAuction(ctx ctx.Ctx, caller domain.Address, id ListingId, closeFor domain.Address) error

	GetListing(ctx ctx.Ctx, id ListingId) (*Listing, error)
	FindListings(ctx ctx.Ctx, opts ...ListingFindAllOptionsFunc) ([]*Listing, error)
	FindOffers(ctx ctx.Ctx, opts ...OfferFindAllOptionsFunc) ([]*Offer, error)
	GetWinningBid(ctx ctx.Ctx, id ListingId) (*WinningBid, error)

	// RevalidateDirectListings re-checks owner balance and approval of open
	// direct listings and patches their IsValid flag.
	RevalidateDirectListings(ctx ctx.Ctx, chainId domain.ChainId) error
}

func ParsePrice(s string) (*big.Int, error) {
	if s == "" {
		return big.NewInt(0), nil
	}
	p, ok := new(big.Int).SetString(s, 10)
	if !ok || p.Sign() < 0 {
		return nil, domain.ErrInvalidNumberFormat
	}
	return p, nil
}
