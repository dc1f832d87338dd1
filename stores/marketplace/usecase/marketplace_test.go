package usecase

import (
	"math/big"
	"testing"
	"time"

	"github.com/auric-xyz/marketd/base/ctx"
	"github.com/auric-xyz/marketd/domain"
	"github.com/auric-xyz/marketd/domain/marketplace"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	mFund "github.com/auric-xyz/marketd/domain/fund/mocks"
	mMarketplace "github.com/auric-xyz/marketd/domain/marketplace/mocks"
	mDomain "github.com/auric-xyz/marketd/domain/mocks"
	mRegistry "github.com/auric-xyz/marketd/domain/registry/mocks"
	mContract "github.com/auric-xyz/marketd/service/chain/contract/mocks"
	mChain "github.com/auric-xyz/marketd/service/chain/mocks"
)

var (
	mockCtx = ctx.Background()

	mockChainId  = domain.ChainId(1)
	mockLister   = domain.Address("0x1111111111111111111111111111111111111111")
	mockBuyer    = domain.Address("0x2222222222222222222222222222222222222222")
	mockBidderA  = domain.Address("0x3333333333333333333333333333333333333333")
	mockBidderB  = domain.Address("0x4444444444444444444444444444444444444444")
	mockTreasury = domain.Address("0x5555555555555555555555555555555555555555")
	mockAsset    = domain.Address("0x6666666666666666666666666666666666666666")
	mockErc20    = domain.Address("0x7777777777777777777777777777777777777777")

	mockMarketAccount = common.HexToAddress("0x9999999999999999999999999999999999999999")
	mockMarket        = domain.Address("0x9999999999999999999999999999999999999999")
)

type testSuite struct {
	suite.Suite

	listingRepo    *mMarketplace.ListingRepo
	offerRepo      *mMarketplace.OfferRepo
	winningBidRepo *mMarketplace.WinningBidRepo
	eventRepo      *mMarketplace.EventRepo
	paytokenRepo   *mDomain.PayTokenRepo
	registry       *mRegistry.Registry
	fund           *mFund.UseCase
	erc721         *mContract.Erc721Contract
	erc1155        *mContract.Erc1155Contract
	transactor     *mChain.Transactor

	im *impl
}

func (s *testSuite) SetupTest() {
	s.listingRepo = &mMarketplace.ListingRepo{}
	s.offerRepo = &mMarketplace.OfferRepo{}
	s.winningBidRepo = &mMarketplace.WinningBidRepo{}
	s.eventRepo = &mMarketplace.EventRepo{}
	s.paytokenRepo = &mDomain.PayTokenRepo{}
	s.registry = &mRegistry.Registry{}
	s.fund = &mFund.UseCase{}
	s.erc721 = &mContract.Erc721Contract{}
	s.erc1155 = &mContract.Erc1155Contract{}
	s.transactor = &mChain.Transactor{}

	s.im = New(&MarketplaceUseCaseCfg{
		ListingRepo:    s.listingRepo,
		OfferRepo:      s.offerRepo,
		WinningBidRepo: s.winningBidRepo,
		EventRepo:      s.eventRepo,
		PayTokenRepo:   s.paytokenRepo,
		Registry:       s.registry,
		Fund:           s.fund,
		Erc721:         s.erc721,
		Erc1155:        s.erc1155,
		Transactor:     s.transactor,
	}).(*impl)
}

func (s *testSuite) TearDownTest() {
	s.listingRepo.AssertExpectations(s.T())
	s.offerRepo.AssertExpectations(s.T())
	s.winningBidRepo.AssertExpectations(s.T())
	s.eventRepo.AssertExpectations(s.T())
	s.paytokenRepo.AssertExpectations(s.T())
	s.registry.AssertExpectations(s.T())
	s.fund.AssertExpectations(s.T())
	s.erc721.AssertExpectations(s.T())
	s.erc1155.AssertExpectations(s.T())
	s.transactor.AssertExpectations(s.T())
}

func TestSuite(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func mockDirectListing() *marketplace.Listing {
	return &marketplace.Listing{
		ListingId:            7,
		ChainId:              mockChainId,
		TokenOwner:           mockLister,
		AssetContract:        mockAsset,
		TokenId:              "1",
		TokenType:            domain.TokenType1155,
		StartTime:            time.Now().Add(-time.Hour),
		EndTime:              time.Now().Add(time.Hour),
		Quantity:             10,
		Currency:             domain.NativeToken,
		ReservePricePerToken: "10",
		BuyoutPricePerToken:  "20",
		ListingType:          marketplace.ListingTypeDirect,
		IsValid:              true,
	}
}

func mockAuctionListing() *marketplace.Listing {
	return &marketplace.Listing{
		ListingId:            7,
		ChainId:              mockChainId,
		TokenOwner:           mockLister,
		AssetContract:        mockAsset,
		TokenId:              "1",
		TokenType:            domain.TokenType1155,
		StartTime:            time.Now().Add(-time.Hour),
		EndTime:              time.Now().Add(time.Hour),
		Quantity:             5,
		Currency:             mockErc20,
		ReservePricePerToken: "10",
		BuyoutPricePerToken:  "20",
		ListingType:          marketplace.ListingTypeAuction,
		IsValid:              true,
	}
}

func (s *testSuite) expectMarketAccount() {
	s.transactor.On("Account", int32(mockChainId)).Return(mockMarketAccount, nil)
}

func (s *testSuite) expect1155OwnershipOk(owner domain.Address, balance int64) {
	s.erc1155.On("BalanceOf", mock.Anything, int32(mockChainId), string(mockAsset), string(owner), big.NewInt(1)).
		Return(big.NewInt(balance), nil).Once()
	s.erc1155.On("IsApprovedForAll", mock.Anything, int32(mockChainId), string(mockAsset), string(owner), string(mockMarket)).
		Return(true, nil).Once()
}

func (s *testSuite) expectRemainingOffers(offers ...*marketplace.Offer) {
	s.offerRepo.On("FindAll", mock.Anything,
		mock.AnythingOfType("marketplace.OfferFindAllOptionsFunc"),
		mock.AnythingOfType("marketplace.OfferFindAllOptionsFunc")).
		Return(offers, nil).Once()
}

func (s *testSuite) expectEvent(eventType marketplace.EventType) {
	s.eventRepo.On("Insert", mock.Anything, mock.MatchedBy(func(e *marketplace.Event) bool {
		return e.Type == eventType
	})).Return(nil).Once()
}

func (s *testSuite) TestCreateAuctionListingEscrowsAssets() {
	startTime := time.Now().Add(time.Hour).Truncate(time.Second)
	params := &marketplace.CreateListingParams{
		ChainId:              mockChainId,
		AssetContract:        mockAsset,
		TokenId:              "1",
		TokenType:            domain.TokenType1155,
		StartTime:            startTime.Unix(),
		SecondsUntilEndTime:  7200,
		QuantityToList:       5,
		CurrencyToAccept:     mockErc20,
		ReservePricePerToken: "10",
		BuyoutPricePerToken:  "20",
		ListingType:          marketplace.ListingTypeAuction,
	}

	s.paytokenRepo.On("FindOne", mock.Anything, mockChainId, mockErc20).
		Return(&domain.PayToken{ChainId: mockChainId, Address: mockErc20, Decimals: 18}, nil).Once()
	s.erc1155.On("Supports1155Interface", mock.Anything, int32(mockChainId), string(mockAsset)).
		Return(true, nil).Once()
	s.expectMarketAccount()
	s.expect1155OwnershipOk(mockLister, 5)
	s.listingRepo.On("NextListingId", mock.Anything, mockChainId).Return(uint64(3), nil).Once()
	s.erc1155.On("SafeTransferFrom", mock.Anything, int32(mockChainId), string(mockAsset), string(mockLister), string(mockMarket), big.NewInt(1), big.NewInt(5)).
		Return(nil).Once()
	s.listingRepo.On("Insert", mock.Anything, mock.MatchedBy(func(l *marketplace.Listing) bool {
		return l.ListingId == 3 &&
			l.Quantity == 5 &&
			l.ListingType == marketplace.ListingTypeAuction &&
			l.EndTime.Equal(startTime.Add(2*time.Hour))
	})).Return(nil).Once()
	s.expectEvent(marketplace.EventTypeNewListing)

	listing, err := s.im.CreateListing(mockCtx, mockLister, params)
	s.NoError(err)
	s.Equal(uint64(3), listing.ListingId)
	s.Equal(int64(5), listing.Quantity)
}

func (s *testSuite) TestBuyDirectListing() {
	listing := mockDirectListing()
	id := listing.ToId()

	s.listingRepo.On("FindOne", mock.Anything, id).Return(listing, nil).Once()
	s.expectMarketAccount()
	s.expect1155OwnershipOk(mockLister, 10)

	s.listingRepo.On("Update", mock.Anything, id, mock.MatchedBy(func(p marketplace.ListingPatchable) bool {
		return p.Quantity != nil && *p.Quantity == 7
	})).Return(nil).Once()
	s.fund.On("Pull", mock.Anything, mockChainId, mockBuyer, domain.NativeToken, big.NewInt(60), big.NewInt(60)).
		Return(nil).Once()
	s.erc1155.On("SafeTransferFrom", mock.Anything, int32(mockChainId), string(mockAsset), string(mockLister), string(mockBuyer), big.NewInt(1), big.NewInt(3)).
		Return(nil).Once()

	s.registry.On("MarketFeeBps", mock.Anything, mockChainId).Return(int64(250), nil).Once()
	s.registry.On("RoyaltyBps", mock.Anything, mockChainId, mockAsset).Return(int64(500), nil).Once()
	s.registry.On("RoyaltyTreasury", mock.Anything, mockChainId).Return(mockTreasury, nil).Once()
	s.fund.On("Push", mock.Anything, mockChainId, mockTreasury, domain.NativeToken, big.NewInt(1)).Return(nil).Once()
	s.fund.On("Push", mock.Anything, mockChainId, mockTreasury, domain.NativeToken, big.NewInt(3)).Return(nil).Once()
	s.fund.On("Push", mock.Anything, mockChainId, mockLister, domain.NativeToken, big.NewInt(56)).Return(nil).Once()

	s.paytokenRepo.On("FindOne", mock.Anything, mockChainId, domain.NativeToken).
		Return(&domain.PayToken{Decimals: 18}, nil).Once()
	s.eventRepo.On("Insert", mock.Anything, mock.MatchedBy(func(e *marketplace.Event) bool {
		return e.Type == marketplace.EventTypeNewSale &&
			e.Sale != nil &&
			e.Sale.QuantityBought == 3 &&
			e.Sale.TotalPricePaid == "60"
	})).Return(nil).Once()

	updated := *listing
	updated.Quantity = 7
	s.listingRepo.On("FindOne", mock.Anything, id).Return(&updated, nil).Once()

	res, err := s.im.Buy(mockCtx, mockBuyer, id, &marketplace.BuyParams{QuantityToBuy: 3, SentValue: "60"})
	s.NoError(err)
	s.Equal(int64(7), res.Quantity)
}

func (s *testSuite) TestBuyRejectsAuctionListing() {
	listing := mockAuctionListing()
	id := listing.ToId()

	s.listingRepo.On("FindOne", mock.Anything, id).Return(listing, nil).Once()

	_, err := s.im.Buy(mockCtx, mockBuyer, id, &marketplace.BuyParams{QuantityToBuy: 1, SentValue: "20"})
	s.Equal(domain.ErrListingNotDirect, err)
}

func (s *testSuite) TestAcceptOfferConsumesOffer() {
	listing := mockDirectListing()
	id := listing.ToId()
	offerId := marketplace.OfferId{ChainId: mockChainId, ListingId: 7, Offeror: mockBuyer}
	offer := &marketplace.Offer{
		ChainId:        mockChainId,
		ListingId:      7,
		Offeror:        mockBuyer,
		QuantityWanted: 2,
		Currency:       mockErc20,
		PricePerToken:  "30",
	}

	s.listingRepo.On("FindOne", mock.Anything, id).Return(listing, nil).Once()
	s.offerRepo.On("FindOne", mock.Anything, offerId).Return(offer, nil).Once()
	s.expectMarketAccount()
	s.expect1155OwnershipOk(mockLister, 10)
	s.offerRepo.On("Remove", mock.Anything, offerId).Return(nil).Once()

	s.listingRepo.On("Update", mock.Anything, id, mock.MatchedBy(func(p marketplace.ListingPatchable) bool {
		return p.Quantity != nil && *p.Quantity == 8
	})).Return(nil).Once()
	s.fund.On("Pull", mock.Anything, mockChainId, mockBuyer, mockErc20, big.NewInt(60), big.NewInt(0)).
		Return(nil).Once()
	s.erc1155.On("SafeTransferFrom", mock.Anything, int32(mockChainId), string(mockAsset), string(mockLister), string(mockBuyer), big.NewInt(1), big.NewInt(2)).
		Return(nil).Once()

	s.registry.On("MarketFeeBps", mock.Anything, mockChainId).Return(int64(250), nil).Once()
	s.registry.On("RoyaltyBps", mock.Anything, mockChainId, mockAsset).Return(int64(500), nil).Once()
	s.registry.On("RoyaltyTreasury", mock.Anything, mockChainId).Return(mockTreasury, nil).Once()
	s.fund.On("Push", mock.Anything, mockChainId, mockTreasury, mockErc20, big.NewInt(1)).Return(nil).Once()
	s.fund.On("Push", mock.Anything, mockChainId, mockTreasury, mockErc20, big.NewInt(3)).Return(nil).Once()
	s.fund.On("Push", mock.Anything, mockChainId, mockLister, mockErc20, big.NewInt(56)).Return(nil).Once()

	s.paytokenRepo.On("FindOne", mock.Anything, mockChainId, mockErc20).
		Return(&domain.PayToken{Decimals: 18}, nil).Once()
	s.expectEvent(marketplace.EventTypeNewSale)

	updated := *listing
	updated.Quantity = 8
	s.listingRepo.On("FindOne", mock.Anything, id).Return(&updated, nil).Once()

	res, err := s.im.AcceptOffer(mockCtx, mockLister, id, mockBuyer)
	s.NoError(err)
	s.Equal(int64(8), res.Quantity)
}

func (s *testSuite) TestDirectOfferRecordsDeadline() {
	listing := mockDirectListing()
	listing.Currency = mockErc20
	id := listing.ToId()
	expiration := time.Now().Add(time.Hour).Truncate(time.Second)

	s.listingRepo.On("FindOne", mock.Anything, id).Return(listing, nil).Once()
	s.paytokenRepo.On("FindOne", mock.Anything, mockChainId, mockErc20).
		Return(&domain.PayToken{Decimals: 18}, nil).Once()
	s.fund.On("CheckFunds", mock.Anything, mockChainId, mockBuyer, mockErc20, big.NewInt(60)).
		Return(nil).Once()
	s.offerRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(o *marketplace.Offer) bool {
		return o.Offeror == mockBuyer && o.Deadline != nil && o.Deadline.Equal(expiration)
	})).Return(nil).Once()
	s.expectEvent(marketplace.EventTypeNewOffer)

	err := s.im.Offer(mockCtx, mockBuyer, id, &marketplace.OfferParams{
		QuantityWanted: 2,
		Currency:       mockErc20,
		PricePerToken:  "30",
		ExpirationTime: expiration.Unix(),
	})
	s.NoError(err)
}

func (s *testSuite) TestAcceptOfferRejectsExpired() {
	listing := mockDirectListing()
	id := listing.ToId()
	offerId := marketplace.OfferId{ChainId: mockChainId, ListingId: 7, Offeror: mockBuyer}
	deadline := time.Now().Add(-time.Minute)
	offer := &marketplace.Offer{
		ChainId:        mockChainId,
		ListingId:      7,
		Offeror:        mockBuyer,
		QuantityWanted: 2,
		Currency:       mockErc20,
		PricePerToken:  "30",
		Deadline:       &deadline,
	}

	s.listingRepo.On("FindOne", mock.Anything, id).Return(listing, nil).Once()
	s.offerRepo.On("FindOne", mock.Anything, offerId).Return(offer, nil).Once()

	_, err := s.im.AcceptOffer(mockCtx, mockLister, id, mockBuyer)
	s.Equal(domain.ErrOfferExpired, err)
}

func (s *testSuite) TestBidBecomesWinningBid() {
	listing := mockAuctionListing()
	id := listing.ToId()

	s.listingRepo.On("FindOne", mock.Anything, id).Return(listing, nil).Once()
	s.winningBidRepo.On("FindOne", mock.Anything, marketplace.WinningBidId(id)).
		Return(nil, domain.ErrNotFound).Once()
	s.fund.On("Pull", mock.Anything, mockChainId, mockBidderA, mockErc20, big.NewInt(75), big.NewInt(0)).
		Return(nil).Once()
	s.offerRepo.On("FindOne", mock.Anything, marketplace.OfferId{ChainId: mockChainId, ListingId: 7, Offeror: mockBidderA}).
		Return(nil, domain.ErrNotFound).Once()
	s.winningBidRepo.On("Upsert", mock.Anything, &marketplace.WinningBid{
		ChainId:        mockChainId,
		ListingId:      7,
		Bidder:         mockBidderA,
		QuantityWanted: 5,
		Currency:       mockErc20,
		PricePerToken:  "15",
	}).Return(nil).Once()
	s.expectEvent(marketplace.EventTypeNewBid)
	s.expectEvent(marketplace.EventTypeNewOffer)

	err := s.im.Offer(mockCtx, mockBidderA, id, &marketplace.OfferParams{
		QuantityWanted: 5,
		Currency:       mockErc20,
		PricePerToken:  "15",
	})
	s.NoError(err)
}

func (s *testSuite) TestHigherBidRefundsPrior() {
	listing := mockAuctionListing()
	id := listing.ToId()
	priorBid := &marketplace.WinningBid{
		ChainId:        mockChainId,
		ListingId:      7,
		Bidder:         mockBidderA,
		QuantityWanted: 5,
		Currency:       mockErc20,
		PricePerToken:  "15",
	}

	s.listingRepo.On("FindOne", mock.Anything, id).Return(listing, nil).Once()
	s.winningBidRepo.On("FindOne", mock.Anything, marketplace.WinningBidId(id)).
		Return(priorBid, nil).Once()
	s.fund.On("Pull", mock.Anything, mockChainId, mockBidderB, mockErc20, big.NewInt(90), big.NewInt(0)).
		Return(nil).Once()
	s.offerRepo.On("FindOne", mock.Anything, marketplace.OfferId{ChainId: mockChainId, ListingId: 7, Offeror: mockBidderB}).
		Return(nil, domain.ErrNotFound).Once()
	s.winningBidRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(b *marketplace.WinningBid) bool {
		return b.Bidder == mockBidderB && b.PricePerToken == "18" && !b.AssetsDone
	})).Return(nil).Once()
	// prior bidder made whole in full
	s.fund.On("Push", mock.Anything, mockChainId, mockBidderA, mockErc20, big.NewInt(75)).
		Return(nil).Once()
	s.expectEvent(marketplace.EventTypeNewBid)
	s.expectEvent(marketplace.EventTypeNewOffer)

	err := s.im.Offer(mockCtx, mockBidderB, id, &marketplace.OfferParams{
		QuantityWanted: 5,
		Currency:       mockErc20,
		PricePerToken:  "18",
	})
	s.NoError(err)
}

func (s *testSuite) TestNonWinningBidRecordedOnly() {
	listing := mockAuctionListing()
	id := listing.ToId()
	priorBid := &marketplace.WinningBid{
		ChainId:        mockChainId,
		ListingId:      7,
		Bidder:         mockBidderA,
		QuantityWanted: 5,
		Currency:       mockErc20,
		PricePerToken:  "15",
	}

	s.listingRepo.On("FindOne", mock.Anything, id).Return(listing, nil).Once()
	s.winningBidRepo.On("FindOne", mock.Anything, marketplace.WinningBidId(id)).
		Return(priorBid, nil).Once()
	s.fund.On("Pull", mock.Anything, mockChainId, mockBidderB, mockErc20, big.NewInt(55), big.NewInt(0)).
		Return(nil).Once()
	s.offerRepo.On("FindOne", mock.Anything, marketplace.OfferId{ChainId: mockChainId, ListingId: 7, Offeror: mockBidderB}).
		Return(nil, domain.ErrNotFound).Once()
	// escrowed and visible, the winning bid stays untouched
	s.offerRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(o *marketplace.Offer) bool {
		return o.Offeror == mockBidderB && o.PricePerToken == "11"
	})).Return(nil).Once()
	s.expectEvent(marketplace.EventTypeNewOffer)

	err := s.im.Offer(mockCtx, mockBidderB, id, &marketplace.OfferParams{
		QuantityWanted: 5,
		Currency:       mockErc20,
		PricePerToken:  "11",
	})
	s.NoError(err)
}

func (s *testSuite) TestBuyoutClosesAuction() {
	listing := mockAuctionListing()
	id := listing.ToId()
	priorBid := &marketplace.WinningBid{
		ChainId:        mockChainId,
		ListingId:      7,
		Bidder:         mockBidderA,
		QuantityWanted: 5,
		Currency:       mockErc20,
		PricePerToken:  "15",
	}

	s.listingRepo.On("FindOne", mock.Anything, id).Return(listing, nil).Once()
	s.winningBidRepo.On("FindOne", mock.Anything, marketplace.WinningBidId(id)).
		Return(priorBid, nil).Once()
	s.fund.On("Pull", mock.Anything, mockChainId, mockBidderB, mockErc20, big.NewInt(100), big.NewInt(0)).
		Return(nil).Once()
	s.offerRepo.On("FindOne", mock.Anything, marketplace.OfferId{ChainId: mockChainId, ListingId: 7, Offeror: mockBidderB}).
		Return(nil, domain.ErrNotFound).Once()
	s.winningBidRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(b *marketplace.WinningBid) bool {
		return b.Bidder == mockBidderB && b.AssetsDone
	})).Return(nil).Once()
	s.fund.On("Push", mock.Anything, mockChainId, mockBidderA, mockErc20, big.NewInt(75)).
		Return(nil).Once()
	// the auction ends in this very call
	s.listingRepo.On("Update", mock.Anything, id, mock.MatchedBy(func(p marketplace.ListingPatchable) bool {
		return p.EndTime != nil && !p.EndTime.After(time.Now())
	})).Return(nil).Once()
	s.expectRemainingOffers()
	s.expectMarketAccount()
	s.erc1155.On("SafeTransferFrom", mock.Anything, int32(mockChainId), string(mockAsset), string(mockMarket), string(mockBidderB), big.NewInt(1), big.NewInt(5)).
		Return(nil).Once()
	s.eventRepo.On("Insert", mock.Anything, mock.MatchedBy(func(e *marketplace.Event) bool {
		return e.Type == marketplace.EventTypeAuctionClosed &&
			e.AuctionClosed != nil &&
			!e.AuctionClosed.Cancelled &&
			e.AuctionClosed.WinningBidder == mockBidderB
	})).Return(nil).Once()
	s.expectEvent(marketplace.EventTypeNewOffer)

	err := s.im.Offer(mockCtx, mockBidderB, id, &marketplace.OfferParams{
		QuantityWanted: 5,
		Currency:       mockErc20,
		PricePerToken:  "20",
	})
	s.NoError(err)
}

func (s *testSuite) TestBidUnderReserveRejected() {
	listing := mockAuctionListing()
	id := listing.ToId()

	s.listingRepo.On("FindOne", mock.Anything, id).Return(listing, nil).Once()

	err := s.im.Offer(mockCtx, mockBidderA, id, &marketplace.OfferParams{
		QuantityWanted: 5,
		Currency:       mockErc20,
		PricePerToken:  "5",
	})
	s.Equal(domain.ErrOfferUnderReserve, err)
}

func (s *testSuite) TestBidWrongQuantityRejected() {
	listing := mockAuctionListing()
	id := listing.ToId()

	s.listingRepo.On("FindOne", mock.Anything, id).Return(listing, nil).Once()

	err := s.im.Offer(mockCtx, mockBidderA, id, &marketplace.OfferParams{
		QuantityWanted: 3,
		Currency:       mockErc20,
		PricePerToken:  "15",
	})
	s.Equal(domain.ErrOfferWrongQuantity, err)
}

func (s *testSuite) TestLateBidExtendsEndTime() {
	listing := mockAuctionListing()
	listing.EndTime = time.Now().Add(5 * time.Minute)
	id := listing.ToId()
	wantEndTime := listing.EndTime.Add(marketplace.DefaultTimeBuffer)

	s.listingRepo.On("FindOne", mock.Anything, id).Return(listing, nil).Once()
	s.winningBidRepo.On("FindOne", mock.Anything, marketplace.WinningBidId(id)).
		Return(nil, domain.ErrNotFound).Once()
	s.fund.On("Pull", mock.Anything, mockChainId, mockBidderA, mockErc20, big.NewInt(75), big.NewInt(0)).
		Return(nil).Once()
	s.offerRepo.On("FindOne", mock.Anything, marketplace.OfferId{ChainId: mockChainId, ListingId: 7, Offeror: mockBidderA}).
		Return(nil, domain.ErrNotFound).Once()
	s.winningBidRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil).Once()
	// the buffer extends from the previous end, not from now
	s.listingRepo.On("Update", mock.Anything, id, mock.MatchedBy(func(p marketplace.ListingPatchable) bool {
		return p.EndTime != nil && p.EndTime.Equal(wantEndTime)
	})).Return(nil).Once()
	s.expectEvent(marketplace.EventTypeNewBid)
	s.expectEvent(marketplace.EventTypeNewOffer)

	err := s.im.Offer(mockCtx, mockBidderA, id, &marketplace.OfferParams{
		QuantityWanted: 5,
		Currency:       mockErc20,
		PricePerToken:  "15",
	})
	s.NoError(err)
}

func (s *testSuite) TestCloseAuctionBeforeBidCancels() {
	listing := mockAuctionListing()
	listing.StartTime = time.Now().Add(time.Hour)
	listing.EndTime = time.Now().Add(3 * time.Hour)
	id := listing.ToId()

	s.listingRepo.On("FindOne", mock.Anything, id).Return(listing, nil).Once()
	s.winningBidRepo.On("FindOne", mock.Anything, marketplace.WinningBidId(id)).
		Return(nil, domain.ErrNotFound).Twice()
	s.listingRepo.On("Update", mock.Anything, id, mock.MatchedBy(func(p marketplace.ListingPatchable) bool {
		return p.Quantity != nil && *p.Quantity == 0 &&
			p.TokenOwner != nil && *p.TokenOwner == domain.EmptyAddress &&
			p.EndTime != nil
	})).Return(nil).Once()
	s.expectMarketAccount()
	s.erc1155.On("SafeTransferFrom", mock.Anything, int32(mockChainId), string(mockAsset), string(mockMarket), string(mockLister), big.NewInt(1), big.NewInt(5)).
		Return(nil).Once()
	s.eventRepo.On("Insert", mock.Anything, mock.MatchedBy(func(e *marketplace.Event) bool {
		return e.Type == marketplace.EventTypeAuctionClosed &&
			e.AuctionClosed != nil &&
			e.AuctionClosed.Cancelled &&
			e.AuctionClosed.AuctionCreator == mockLister
	})).Return(nil).Once()

	err := s.im.CloseAuction(mockCtx, mockLister, id, mockLister)
	s.NoError(err)
}

func (s *testSuite) TestCloseAuctionCancelRequiresCreator() {
	listing := mockAuctionListing()
	id := listing.ToId()

	s.listingRepo.On("FindOne", mock.Anything, id).Return(listing, nil).Once()
	s.winningBidRepo.On("FindOne", mock.Anything, marketplace.WinningBidId(id)).
		Return(nil, domain.ErrNotFound).Once()

	err := s.im.CloseAuction(mockCtx, mockBidderA, id, mockBidderA)
	s.Equal(domain.ErrNotBidderOrCreator, err)
}

func (s *testSuite) TestCloseAuctionPaysLister() {
	listing := mockAuctionListing()
	listing.EndTime = time.Now().Add(-time.Minute)
	id := listing.ToId()
	winningBid := &marketplace.WinningBid{
		ChainId:        mockChainId,
		ListingId:      7,
		Bidder:         mockBidderA,
		QuantityWanted: 5,
		Currency:       mockErc20,
		PricePerToken:  "15",
	}

	s.listingRepo.On("FindOne", mock.Anything, id).Return(listing, nil).Once()
	s.winningBidRepo.On("FindOne", mock.Anything, marketplace.WinningBidId(id)).
		Return(winningBid, nil).Once()
	s.expectRemainingOffers()
	s.winningBidRepo.On("Update", mock.Anything, winningBid.ToId(), mock.MatchedBy(func(p marketplace.WinningBidPatchable) bool {
		return p.PayoutDone != nil && *p.PayoutDone
	})).Return(nil).Once()
	s.listingRepo.On("Update", mock.Anything, id, mock.MatchedBy(func(p marketplace.ListingPatchable) bool {
		return p.Quantity != nil && *p.Quantity == 0
	})).Return(nil).Once()

	// 75 total, 250 bps fee, 500 bps royalty
	s.registry.On("MarketFeeBps", mock.Anything, mockChainId).Return(int64(250), nil).Once()
	s.registry.On("RoyaltyBps", mock.Anything, mockChainId, mockAsset).Return(int64(500), nil).Once()
	s.registry.On("RoyaltyTreasury", mock.Anything, mockChainId).Return(mockTreasury, nil).Once()
	s.fund.On("Push", mock.Anything, mockChainId, mockTreasury, mockErc20, big.NewInt(1)).Return(nil).Once()
	s.fund.On("Push", mock.Anything, mockChainId, mockTreasury, mockErc20, big.NewInt(3)).Return(nil).Once()
	s.fund.On("Push", mock.Anything, mockChainId, mockLister, mockErc20, big.NewInt(71)).Return(nil).Once()
	s.expectEvent(marketplace.EventTypeAuctionClosed)

	err := s.im.CloseAuction(mockCtx, mockLister, id, mockLister)
	s.NoError(err)
}

func (s *testSuite) TestCloseAuctionPayoutIdempotent() {
	listing := mockAuctionListing()
	listing.EndTime = time.Now().Add(-time.Minute)
	id := listing.ToId()
	winningBid := &marketplace.WinningBid{
		ChainId:        mockChainId,
		ListingId:      7,
		Bidder:         mockBidderA,
		QuantityWanted: 5,
		Currency:       mockErc20,
		PricePerToken:  "15",
		PayoutDone:     true,
	}

	s.listingRepo.On("FindOne", mock.Anything, id).Return(listing, nil).Once()
	s.winningBidRepo.On("FindOne", mock.Anything, marketplace.WinningBidId(id)).
		Return(winningBid, nil).Once()
	s.expectRemainingOffers()

	// second collection attempt moves no value
	err := s.im.CloseAuction(mockCtx, mockLister, id, mockLister)
	s.NoError(err)
}

func (s *testSuite) TestCloseAuctionTransfersAssets() {
	listing := mockAuctionListing()
	listing.EndTime = time.Now().Add(-time.Minute)
	id := listing.ToId()
	winningBid := &marketplace.WinningBid{
		ChainId:        mockChainId,
		ListingId:      7,
		Bidder:         mockBidderA,
		QuantityWanted: 5,
		Currency:       mockErc20,
		PricePerToken:  "15",
	}

	s.listingRepo.On("FindOne", mock.Anything, id).Return(listing, nil).Once()
	s.winningBidRepo.On("FindOne", mock.Anything, marketplace.WinningBidId(id)).
		Return(winningBid, nil).Once()
	s.expectRemainingOffers()
	s.winningBidRepo.On("Update", mock.Anything, winningBid.ToId(), mock.MatchedBy(func(p marketplace.WinningBidPatchable) bool {
		return p.AssetsDone != nil && *p.AssetsDone
	})).Return(nil).Once()
	s.expectMarketAccount()
	s.erc1155.On("SafeTransferFrom", mock.Anything, int32(mockChainId), string(mockAsset), string(mockMarket), string(mockBidderA), big.NewInt(1), big.NewInt(5)).
		Return(nil).Once()
	s.expectEvent(marketplace.EventTypeAuctionClosed)

	err := s.im.CloseAuction(mockCtx, mockBidderA, id, mockBidderA)
	s.NoError(err)
}

func (s *testSuite) TestCloseAuctionAssetsIdempotent() {
	listing := mockAuctionListing()
	listing.EndTime = time.Now().Add(-time.Minute)
	id := listing.ToId()
	winningBid := &marketplace.WinningBid{
		ChainId:        mockChainId,
		ListingId:      7,
		Bidder:         mockBidderA,
		QuantityWanted: 5,
		Currency:       mockErc20,
		PricePerToken:  "15",
		AssetsDone:     true,
	}

	s.listingRepo.On("FindOne", mock.Anything, id).Return(listing, nil).Once()
	s.winningBidRepo.On("FindOne", mock.Anything, marketplace.WinningBidId(id)).
		Return(winningBid, nil).Once()
	s.expectRemainingOffers()

	err := s.im.CloseAuction(mockCtx, mockBidderA, id, mockBidderA)
	s.NoError(err)
}

func (s *testSuite) TestCloseAuctionRefundsLosingBids() {
	listing := mockAuctionListing()
	listing.EndTime = time.Now().Add(-time.Minute)
	id := listing.ToId()
	winningBid := &marketplace.WinningBid{
		ChainId:        mockChainId,
		ListingId:      7,
		Bidder:         mockBidderA,
		QuantityWanted: 5,
		Currency:       mockErc20,
		PricePerToken:  "15",
	}
	losingOffer := &marketplace.Offer{
		ChainId:        mockChainId,
		ListingId:      7,
		Offeror:        mockBidderB,
		QuantityWanted: 5,
		Currency:       mockErc20,
		PricePerToken:  "11",
	}

	s.listingRepo.On("FindOne", mock.Anything, id).Return(listing, nil).Once()
	s.winningBidRepo.On("FindOne", mock.Anything, marketplace.WinningBidId(id)).
		Return(winningBid, nil).Once()

	// the losing bidder's 55 leaves escrow, record removed first
	s.expectRemainingOffers(losingOffer)
	s.offerRepo.On("Remove", mock.Anything, losingOffer.ToId()).Return(nil).Once()
	s.fund.On("Push", mock.Anything, mockChainId, mockBidderB, mockErc20, big.NewInt(55)).
		Return(nil).Once()

	s.winningBidRepo.On("Update", mock.Anything, winningBid.ToId(), mock.MatchedBy(func(p marketplace.WinningBidPatchable) bool {
		return p.PayoutDone != nil && *p.PayoutDone
	})).Return(nil).Once()
	s.listingRepo.On("Update", mock.Anything, id, mock.MatchedBy(func(p marketplace.ListingPatchable) bool {
		return p.Quantity != nil && *p.Quantity == 0
	})).Return(nil).Once()

	s.registry.On("MarketFeeBps", mock.Anything, mockChainId).Return(int64(250), nil).Once()
	s.registry.On("RoyaltyBps", mock.Anything, mockChainId, mockAsset).Return(int64(500), nil).Once()
	s.registry.On("RoyaltyTreasury", mock.Anything, mockChainId).Return(mockTreasury, nil).Once()
	s.fund.On("Push", mock.Anything, mockChainId, mockTreasury, mockErc20, big.NewInt(1)).Return(nil).Once()
	s.fund.On("Push", mock.Anything, mockChainId, mockTreasury, mockErc20, big.NewInt(3)).Return(nil).Once()
	s.fund.On("Push", mock.Anything, mockChainId, mockLister, mockErc20, big.NewInt(71)).Return(nil).Once()
	s.expectEvent(marketplace.EventTypeAuctionClosed)

	err := s.im.CloseAuction(mockCtx, mockLister, id, mockLister)
	s.NoError(err)
	s.fund.AssertCalled(s.T(), "Push", mock.Anything, mockChainId, mockBidderB, mockErc20, big.NewInt(55))
}

func (s *testSuite) TestCloseAuctionBeforeEndRejected() {
	listing := mockAuctionListing()
	id := listing.ToId()
	winningBid := &marketplace.WinningBid{
		ChainId:        mockChainId,
		ListingId:      7,
		Bidder:         mockBidderA,
		QuantityWanted: 5,
		Currency:       mockErc20,
		PricePerToken:  "15",
	}

	s.listingRepo.On("FindOne", mock.Anything, id).Return(listing, nil).Once()
	s.winningBidRepo.On("FindOne", mock.Anything, marketplace.WinningBidId(id)).
		Return(winningBid, nil).Once()

	err := s.im.CloseAuction(mockCtx, mockLister, id, mockLister)
	s.Equal(domain.ErrAuctionNotEnded, err)
}

func (s *testSuite) TestUpdateAuctionAfterStartRejected() {
	listing := mockAuctionListing()
	id := listing.ToId()

	s.listingRepo.On("FindOne", mock.Anything, id).Return(listing, nil).Once()

	_, err := s.im.UpdateListing(mockCtx, mockLister, id, &marketplace.UpdateListingParams{QuantityToList: 3})
	s.Equal(domain.ErrAuctionAlreadyStarted, err)
}

func (s *testSuite) TestUpdateDirectListingDelists() {
	listing := mockDirectListing()
	id := listing.ToId()

	s.listingRepo.On("FindOne", mock.Anything, id).Return(listing, nil).Once()
	s.listingRepo.On("Update", mock.Anything, id, mock.MatchedBy(func(p marketplace.ListingPatchable) bool {
		return p.Quantity != nil && *p.Quantity == 0
	})).Return(nil).Once()

	updated := *listing
	updated.Quantity = 0
	s.listingRepo.On("FindOne", mock.Anything, id).Return(&updated, nil).Once()
	s.expectEvent(marketplace.EventTypeListingUpdate)

	res, err := s.im.UpdateListing(mockCtx, mockLister, id, &marketplace.UpdateListingParams{QuantityToList: 0})
	s.NoError(err)
	s.Equal(int64(0), res.Quantity)
}

func (s *testSuite) TestUpdateDirectListingRestocksAfterSoldOut() {
	listing := mockDirectListing()
	listing.Quantity = 0
	id := listing.ToId()

	s.listingRepo.On("FindOne", mock.Anything, id).Return(listing, nil).Once()
	s.expectMarketAccount()
	s.expect1155OwnershipOk(mockLister, 4)
	s.listingRepo.On("Update", mock.Anything, id, mock.MatchedBy(func(p marketplace.ListingPatchable) bool {
		return p.Quantity != nil && *p.Quantity == 4
	})).Return(nil).Once()

	updated := *listing
	updated.Quantity = 4
	s.listingRepo.On("FindOne", mock.Anything, id).Return(&updated, nil).Once()
	s.expectEvent(marketplace.EventTypeListingUpdate)

	res, err := s.im.UpdateListing(mockCtx, mockLister, id, &marketplace.UpdateListingParams{QuantityToList: 4})
	s.NoError(err)
	s.Equal(int64(4), res.Quantity)
}

func (s *testSuite) TestUpdateSettledAuctionRejected() {
	listing := mockAuctionListing()
	listing.Quantity = 0
	id := listing.ToId()

	s.listingRepo.On("FindOne", mock.Anything, id).Return(listing, nil).Once()

	_, err := s.im.UpdateListing(mockCtx, mockLister, id, &marketplace.UpdateListingParams{QuantityToList: 3})
	s.Equal(domain.ErrListingClosed, err)
}

func (s *testSuite) TestUpdateListingRequiresCreator() {
	listing := mockDirectListing()
	id := listing.ToId()

	s.listingRepo.On("FindOne", mock.Anything, id).Return(listing, nil).Once()

	_, err := s.im.UpdateListing(mockCtx, mockBuyer, id, &marketplace.UpdateListingParams{QuantityToList: 5})
	s.Equal(domain.ErrNotListingCreator, err)
}

func (s *testSuite) TestRevalidateDirectListingsFlagsStaleListing() {
	listing := mockDirectListing()

	s.listingRepo.On("FindAll", mock.Anything,
		mock.AnythingOfType("marketplace.ListingFindAllOptionsFunc"),
		mock.AnythingOfType("marketplace.ListingFindAllOptionsFunc"),
		mock.AnythingOfType("marketplace.ListingFindAllOptionsFunc"),
		mock.AnythingOfType("marketplace.ListingFindAllOptionsFunc"),
		mock.AnythingOfType("marketplace.ListingFindAllOptionsFunc")).
		Return([]*marketplace.Listing{listing}, nil).Once()
	s.expectMarketAccount()
	// the lister moved the asset elsewhere
	s.erc1155.On("BalanceOf", mock.Anything, int32(mockChainId), string(mockAsset), string(mockLister), big.NewInt(1)).
		Return(big.NewInt(0), nil).Once()
	s.listingRepo.On("Update", mock.Anything, listing.ToId(), mock.MatchedBy(func(p marketplace.ListingPatchable) bool {
		return p.IsValid != nil && !*p.IsValid
	})).Return(nil).Once()

	err := s.im.RevalidateDirectListings(mockCtx, mockChainId)
	s.NoError(err)
}
