package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("Your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput       = errors.New("Given Param is not valid")
	ErrInvalidNumberFormat = errors.New("invalid number format")
	ErrInvalidChainId      = errors.New("invalid chain id")
	ErrInvalidCurrency     = errors.New("invalid currency")

	// request error
	ErrInvalidAddress   = errors.New("Invalid address")
	ErrInvalidSignature = errors.New("Invalid signature")
	ErrInvalidNonce     = errors.New("Invalid nonce")

	// listing preconditions
	ErrNotListingCreator       = errors.New("market: caller is not the listing creator")
	ErrInvalidQuantity         = errors.New("market: must list and buy a non-zero amount of tokens")
	ErrTokenNotOwnedOrApproved = errors.New("market: must own and approve market to transfer tokens")
	ErrInsufficientFunds       = errors.New("market: must own and approve market to transfer currency")
	ErrIncorrectNativeValue    = errors.New("market: incorrect native token value sent")
	ErrSaleWindowClosed        = errors.New("market: the sale has either not started or closed")
	ErrListingNotDirect        = errors.New("market: cannot buy tokens from this listing")
	ErrListingNotAuction       = errors.New("market: listing is not an auction")
	ErrAuctionAlreadyStarted   = errors.New("market: auction already started")
	ErrInvalidTokenType        = errors.New("market: token must implement ERC 721 or ERC 1155")
	ErrReserveExceedsBuyout    = errors.New("market: reserve price exceeds buyout price")
	ErrUnsupportedCurrency     = errors.New("market: currency is not a registered pay token")

	// bidding
	ErrOfferOutsideWindow = errors.New("market: can only make offers in listing duration")
	ErrOfferExpired       = errors.New("market: the offer has expired")
	ErrOfferUnderReserve  = errors.New("market: must offer at least reserve price")
	ErrOfferWrongQuantity = errors.New("market: must offer the full listed quantity")
	ErrCurrencyMismatch   = errors.New("market: must offer in the listing currency")

	// auction closing
	ErrAuctionNotEnded    = errors.New("market: can only close auction after it has ended")
	ErrNotBidderOrCreator = errors.New("market: must be bidder or auction creator")
	ErrListingClosed      = errors.New("market: listing is already closed")
)
