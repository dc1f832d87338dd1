package marketplace

import (
	"math/big"
	"time"

	"github.com/auric-xyz/marketd/base/ctx"
	"github.com/auric-xyz/marketd/domain"
)

type ListingType string

const (
	ListingTypeDirect  ListingType = "direct"
	ListingTypeAuction ListingType = "auction"
)

func (t ListingType) IsValid() bool {
	return t == ListingTypeDirect || t == ListingTypeAuction
}

// Listing is a posted sale intent for a fixed quantity of one asset.
//
// A listing with Quantity == 0 is logically closed. For auctions the zero
// quantity is the terminal marker: the auction was either settled or
// cancelled and can never reopen.
type Listing struct {
	ListingId     uint64            `json:"listingId" bson:"listingId"`
	ChainId       domain.ChainId    `json:"chainId" bson:"chainId"`
	TokenOwner    domain.Address    `json:"tokenOwner" bson:"tokenOwner"`
	AssetContract domain.Address    `json:"assetContract" bson:"assetContract"`
	TokenId       domain.TokenId    `json:"tokenId" bson:"tokenId"`
	TokenType     domain.TokenType  `json:"tokenType" bson:"tokenType"`
	StartTime     time.Time         `json:"startTime" bson:"startTime"`
	EndTime       time.Time         `json:"endTime" bson:"endTime"`
	Quantity      int64             `json:"quantity" bson:"quantity"`
	Currency      domain.Address    `json:"currency" bson:"currency"`
	// prices are per token, in the currency's smallest unit, decimal strings
	ReservePricePerToken string      `json:"reservePricePerToken" bson:"reservePricePerToken"`
	BuyoutPricePerToken  string      `json:"buyoutPricePerToken" bson:"buyoutPricePerToken"`
	ListingType          ListingType `json:"listingType" bson:"listingType"`

	// maintained by the revalidator for direct listings; buy re-checks anyway
	IsValid bool `json:"isValid" bson:"isValid"`
}

func (l *Listing) LowerCase() {
	l.TokenOwner = l.TokenOwner.ToLower()
	l.AssetContract = l.AssetContract.ToLower()
	l.Currency = l.Currency.ToLower()
}

func (l *Listing) ToId() ListingId {
	return ListingId{ChainId: l.ChainId, ListingId: l.ListingId}
}

func (l *Listing) ReservePrice() (*big.Int, error) {
	p, ok := new(big.Int).SetString(l.ReservePricePerToken, 10)
	if !ok {
		return nil, domain.ErrInvalidNumberFormat
	}
	return p, nil
}

func (l *Listing) BuyoutPrice() (*big.Int, error) {
	p, ok := new(big.Int).SetString(l.BuyoutPricePerToken, 10)
	if !ok {
		return nil, domain.ErrInvalidNumberFormat
	}
	return p, nil
}

// WithinSaleWindow reports whether now falls in [StartTime, EndTime).
func (l *Listing) WithinSaleWindow(now time.Time) bool {
	return !now.Before(l.StartTime) && now.Before(l.EndTime)
}

func (l *Listing) IsClosed() bool {
	return l.Quantity == 0
}

type ListingId struct {
	ChainId   domain.ChainId `json:"chainId" bson:"chainId"`
	ListingId uint64         `json:"listingId" bson:"listingId"`
}

type ListingPatchable struct {
	TokenOwner           *domain.Address `bson:"tokenOwner,omitempty"`
	StartTime            *time.Time      `bson:"startTime,omitempty"`
	EndTime              *time.Time      `bson:"endTime,omitempty"`
	Quantity             *int64          `bson:"quantity,omitempty"`
	Currency             *domain.Address `bson:"currency,omitempty"`
	ReservePricePerToken *string         `bson:"reservePricePerToken,omitempty"`
	BuyoutPricePerToken  *string         `bson:"buyoutPricePerToken,omitempty"`
	IsValid              *bool           `bson:"isValid,omitempty"`
}

type ListingFindAllOptions struct {
	ChainId     *domain.ChainId
	TokenOwner  *domain.Address
	AssetContract *domain.Address
	TokenId     *domain.TokenId
	ListingType *ListingType
	QuantityGT  *int64
	StartTimeLT *time.Time
	EndTimeGT   *time.Time
	EndTimeLT   *time.Time
	IsValid     *bool
	Offset      *int32
	Limit       *int32
}

type ListingFindAllOptionsFunc func(*ListingFindAllOptions) error

func GetListingFindAllOptions(opts ...ListingFindAllOptionsFunc) (ListingFindAllOptions, error) {
	res := ListingFindAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func ListingWithChainId(chainId domain.ChainId) ListingFindAllOptionsFunc {
	return func(options *ListingFindAllOptions) error {
		options.ChainId = &chainId
		return nil
	}
}

func ListingWithTokenOwner(owner domain.Address) ListingFindAllOptionsFunc {
	return func(options *ListingFindAllOptions) error {
		options.TokenOwner = owner.ToLowerPtr()
		return nil
	}
}

func ListingWithAssetContract(asset domain.Address) ListingFindAllOptionsFunc {
	return func(options *ListingFindAllOptions) error {
		options.AssetContract = asset.ToLowerPtr()
		return nil
	}
}

func ListingWithTokenId(tokenId domain.TokenId) ListingFindAllOptionsFunc {
	return func(options *ListingFindAllOptions) error {
		options.TokenId = &tokenId
		return nil
	}
}

func ListingWithType(t ListingType) ListingFindAllOptionsFunc {
	return func(options *ListingFindAllOptions) error {
		options.ListingType = &t
		return nil
	}
}

func ListingWithQuantityGT(q int64) ListingFindAllOptionsFunc {
	return func(options *ListingFindAllOptions) error {
		options.QuantityGT = &q
		return nil
	}
}

func ListingWithStartTimeLT(t time.Time) ListingFindAllOptionsFunc {
	return func(options *ListingFindAllOptions) error {
		options.StartTimeLT = &t
		return nil
	}
}

func ListingWithEndTimeGT(t time.Time) ListingFindAllOptionsFunc {
	return func(options *ListingFindAllOptions) error {
		options.EndTimeGT = &t
		return nil
	}
}

func ListingWithEndTimeLT(t time.Time) ListingFindAllOptionsFunc {
	return func(options *ListingFindAllOptions) error {
		options.EndTimeLT = &t
		return nil
	}
}

func ListingWithIsValid(valid bool) ListingFindAllOptionsFunc {
	return func(options *ListingFindAllOptions) error {
		options.IsValid = &valid
		return nil
	}
}

func ListingWithPagination(offset, limit int32) ListingFindAllOptionsFunc {
	return func(options *ListingFindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

type ListingRepo interface {
	FindAll(ctx ctx.Ctx, opts ...ListingFindAllOptionsFunc) ([]*Listing, error)
	Count(ctx ctx.Ctx, opts ...ListingFindAllOptionsFunc) (int, error)
	FindOne(ctx ctx.Ctx, id ListingId) (*Listing, error)
	Insert(ctx ctx.Ctx, listing *Listing) error
	Update(ctx ctx.Ctx, id ListingId, patchable ListingPatchable) error
	NextListingId(ctx ctx.Ctx, chainId domain.ChainId) (uint64, error)
}
