package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/auric-xyz/marketd/base/ctx"
	"github.com/auric-xyz/marketd/base/delivery"
	"github.com/auric-xyz/marketd/domain"
	"github.com/auric-xyz/marketd/domain/marketplace"
	"github.com/auric-xyz/marketd/domain/registry"
	mMiddleware "github.com/auric-xyz/marketd/middleware"
	authMiddleware "github.com/auric-xyz/marketd/stores/auth/delivery/http/middleware"
)

type handler struct {
	marketplace marketplace.UseCase
	registry    registry.Registry
}

// New registers the marketplace endpoints. Mutating routes resolve the
// effective sender from the auth token, never from the request body.
func New(e *echo.Echo, mu marketplace.UseCase, reg registry.Registry, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{
		marketplace: mu,
		registry:    reg,
	}

	g := e.Group("/listings")
	g.POST("", h.createListing, authMiddleware.Auth())
	g.GET("", h.findListings, mMiddleware.CacheHttp(15*time.Second))
	g.GET("/:chainId/:listingId", h.getListing)
	g.PATCH("/:chainId/:listingId", h.updateListing, authMiddleware.Auth())
	g.POST("/:chainId/:listingId/buy", h.buy, authMiddleware.Auth())
	g.POST("/:chainId/:listingId/offers", h.offer, authMiddleware.Auth())
	g.GET("/:chainId/:listingId/offers", h.findOffers)
	g.POST("/:chainId/:listingId/accept-offer", h.acceptOffer, authMiddleware.Auth())
	g.POST("/:chainId/:listingId/close-auction", h.closeAuction, authMiddleware.Auth())
	g.GET("/:chainId/:listingId/winning-bid", h.getWinningBid)

	r := e.Group("/royalty-configs")
	r.POST("", h.setRoyaltyConfig, authMiddleware.Auth(), authMiddleware.IsAdmin())
}

func parseListingId(c echo.Context) (marketplace.ListingId, error) {
	chainId, err := strconv.ParseInt(c.Param("chainId"), 10, 32)
	if err != nil {
		return marketplace.ListingId{}, domain.ErrInvalidChainId
	}
	listingId, err := strconv.ParseUint(c.Param("listingId"), 10, 64)
	if err != nil {
		return marketplace.ListingId{}, domain.ErrBadParamInput
	}
	return marketplace.ListingId{ChainId: domain.ChainId(chainId), ListingId: listingId}, nil
}

// market errors are caller mistakes, anything else is on us
func errStatus(err error) int {
	switch err {
	case domain.ErrNotFound:
		return http.StatusNotFound
	case domain.ErrBadParamInput,
		domain.ErrInvalidChainId,
		domain.ErrInvalidCurrency,
		domain.ErrInvalidNumberFormat,
		domain.ErrInvalidQuantity,
		domain.ErrInvalidTokenType,
		domain.ErrReserveExceedsBuyout,
		domain.ErrUnsupportedCurrency,
		domain.ErrCurrencyMismatch,
		domain.ErrTokenNotOwnedOrApproved,
		domain.ErrInsufficientFunds,
		domain.ErrIncorrectNativeValue,
		domain.ErrSaleWindowClosed,
		domain.ErrListingNotDirect,
		domain.ErrListingNotAuction,
		domain.ErrAuctionAlreadyStarted,
		domain.ErrAuctionNotEnded,
		domain.ErrOfferOutsideWindow,
		domain.ErrOfferUnderReserve,
		domain.ErrOfferWrongQuantity,
		domain.ErrListingClosed:
		return http.StatusBadRequest
	case domain.ErrNotListingCreator, domain.ErrNotBidderOrCreator:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) createListing(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	lister := c.Get("address").(domain.Address)

	p := &marketplace.CreateListingParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	listing, err := h.marketplace.CreateListing(ctx, lister, p)
	if err != nil {
		return delivery.MakeJsonResp(c, errStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, listing)
}

func (h *handler) findListings(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	params := &struct {
		ChainId       *domain.ChainId          `query:"chainId"`
		TokenOwner    *domain.Address          `query:"tokenOwner"`
		AssetContract *domain.Address          `query:"assetContract"`
		TokenId       *domain.TokenId          `query:"tokenId"`
		ListingType   *marketplace.ListingType `query:"listingType"`
		IsValid       *bool                    `query:"isValid"`
		Offset        int32                    `query:"offset"`
		Limit         int32                    `query:"limit"`
	}{}

	if err := c.Bind(params); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if params.Limit <= 0 || params.Limit > 100 {
		params.Limit = 100
	}

	opts := []marketplace.ListingFindAllOptionsFunc{
		marketplace.ListingWithPagination(params.Offset, params.Limit),
	}
	if params.ChainId != nil {
		opts = append(opts, marketplace.ListingWithChainId(*params.ChainId))
	}
	if params.TokenOwner != nil {
		opts = append(opts, marketplace.ListingWithTokenOwner(*params.TokenOwner))
	}
	if params.AssetContract != nil {
		opts = append(opts, marketplace.ListingWithAssetContract(*params.AssetContract))
	}
	if params.TokenId != nil {
		opts = append(opts, marketplace.ListingWithTokenId(*params.TokenId))
	}
	if params.ListingType != nil {
		opts = append(opts, marketplace.ListingWithType(*params.ListingType))
	}
	if params.IsValid != nil {
		opts = append(opts, marketplace.ListingWithIsValid(*params.IsValid))
	}

	listings, err := h.marketplace.FindListings(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, listings)
}

func (h *handler) getListing(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := parseListingId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	listing, err := h.marketplace.GetListing(ctx, id)
	if err != nil {
		return delivery.MakeJsonResp(c, errStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, listing)
}

func (h *handler) updateListing(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	lister := c.Get("address").(domain.Address)

	id, err := parseListingId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	p := &marketplace.UpdateListingParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	listing, err := h.marketplace.UpdateListing(ctx, lister, id, p)
	if err != nil {
		return delivery.MakeJsonResp(c, errStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, listing)
}

func (h *handler) buy(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	buyer := c.Get("address").(domain.Address)

	id, err := parseListingId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	p := &marketplace.BuyParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	listing, err := h.marketplace.Buy(ctx, buyer, id, p)
	if err != nil {
		return delivery.MakeJsonResp(c, errStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, listing)
}

func (h *handler) offer(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	offeror := c.Get("address").(domain.Address)

	id, err := parseListingId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	p := &marketplace.OfferParams{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.marketplace.Offer(ctx, offeror, id, p); err != nil {
		return delivery.MakeJsonResp(c, errStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) findOffers(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := parseListingId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	offers, err := h.marketplace.FindOffers(ctx,
		marketplace.OfferWithChainId(id.ChainId),
		marketplace.OfferWithListingId(id.ListingId),
	)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, offers)
}

func (h *handler) acceptOffer(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	lister := c.Get("address").(domain.Address)

	id, err := parseListingId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	p := &struct {
		Offeror domain.Address `json:"offeror"`
	}{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if p.Offeror.IsEmpty() {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	listing, err := h.marketplace.AcceptOffer(ctx, lister, id, p.Offeror)
	if err != nil {
		return delivery.MakeJsonResp(c, errStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, listing)
}

func (h *handler) closeAuction(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	caller := c.Get("address").(domain.Address)

	id, err := parseListingId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	p := &struct {
		CloseFor domain.Address `json:"closeFor"`
	}{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	closeFor := p.CloseFor
	if closeFor.IsEmpty() {
		closeFor = caller
	}

	if err := h.marketplace.CloseAuction(ctx, caller, id, closeFor); err != nil {
		return delivery.MakeJsonResp(c, errStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) getWinningBid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	id, err := parseListingId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	bid, err := h.marketplace.GetWinningBid(ctx, id)
	if err != nil {
		return delivery.MakeJsonResp(c, errStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, bid)
}

func (h *handler) setRoyaltyConfig(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &struct {
		ChainId       domain.ChainId `json:"chainId"`
		AssetContract domain.Address `json:"assetContract"`
		RoyaltyBps    int64          `json:"royaltyBps"`
	}{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.registry.SetRoyaltyBps(ctx, p.ChainId, p.AssetContract, p.RoyaltyBps); err != nil {
		return delivery.MakeJsonResp(c, errStatus(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}
