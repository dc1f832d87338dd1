package usecase

import (
	"testing"

	"github.com/auric-xyz/marketd/base/ctx"
	"github.com/auric-xyz/marketd/domain"
	"github.com/auric-xyz/marketd/domain/registry"
	mRegistry "github.com/auric-xyz/marketd/domain/registry/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var (
	mockCtx = ctx.Background()

	mockChainId  = domain.ChainId(1)
	mockAsset    = domain.Address("0x6666666666666666666666666666666666666666")
	mockTreasury = domain.Address("0x5555555555555555555555555555555555555555")
)

type testSuite struct {
	suite.Suite

	royaltyConfigRepo *mRegistry.RoyaltyConfigRepo

	im *impl
}

func (s *testSuite) SetupTest() {
	s.royaltyConfigRepo = &mRegistry.RoyaltyConfigRepo{}
	s.im = New(&RegistryCfg{
		RoyaltyConfigRepo: s.royaltyConfigRepo,
		FeeConfigs: map[domain.ChainId]FeeConfig{
			mockChainId: {MarketFeeBps: 250, Treasury: mockTreasury},
		},
	}).(*impl)
}

func (s *testSuite) TearDownTest() {
	s.royaltyConfigRepo.AssertExpectations(s.T())
}

func TestSuite(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestMarketFeeBps() {
	bps, err := s.im.MarketFeeBps(mockCtx, mockChainId)
	s.NoError(err)
	s.Equal(int64(250), bps)

	_, err = s.im.MarketFeeBps(mockCtx, domain.ChainId(99))
	s.Equal(domain.ErrInvalidChainId, err)
}

func (s *testSuite) TestRoyaltyTreasury() {
	treasury, err := s.im.RoyaltyTreasury(mockCtx, mockChainId)
	s.NoError(err)
	s.Equal(mockTreasury, treasury)
}

func (s *testSuite) TestRoyaltyBpsCachesRead() {
	id := registry.RoyaltyConfigId{ChainId: mockChainId, AssetContract: mockAsset}
	s.royaltyConfigRepo.On("FindOne", mock.Anything, id).
		Return(&registry.RoyaltyConfig{ChainId: mockChainId, AssetContract: mockAsset, RoyaltyBps: 500}, nil).Once()

	for i := 0; i < 3; i++ {
		bps, err := s.im.RoyaltyBps(mockCtx, mockChainId, mockAsset)
		s.NoError(err)
		s.Equal(int64(500), bps)
	}
}

func (s *testSuite) TestRoyaltyBpsDefaultsToZero() {
	id := registry.RoyaltyConfigId{ChainId: mockChainId, AssetContract: mockAsset}
	s.royaltyConfigRepo.On("FindOne", mock.Anything, id).
		Return(nil, domain.ErrNotFound).Once()

	bps, err := s.im.RoyaltyBps(mockCtx, mockChainId, mockAsset)
	s.NoError(err)
	s.Equal(int64(0), bps)
}

func (s *testSuite) TestRoyaltyBpsClampedByMarketFee() {
	id := registry.RoyaltyConfigId{ChainId: mockChainId, AssetContract: mockAsset}
	s.royaltyConfigRepo.On("FindOne", mock.Anything, id).
		Return(&registry.RoyaltyConfig{ChainId: mockChainId, AssetContract: mockAsset, RoyaltyBps: 9900}, nil).Once()

	bps, err := s.im.RoyaltyBps(mockCtx, mockChainId, mockAsset)
	s.NoError(err)
	s.Equal(int64(9750), bps)
}

func (s *testSuite) TestSetRoyaltyBpsInvalidatesCache() {
	id := registry.RoyaltyConfigId{ChainId: mockChainId, AssetContract: mockAsset}
	s.royaltyConfigRepo.On("FindOne", mock.Anything, id).
		Return(&registry.RoyaltyConfig{ChainId: mockChainId, AssetContract: mockAsset, RoyaltyBps: 300}, nil).Once()

	bps, err := s.im.RoyaltyBps(mockCtx, mockChainId, mockAsset)
	s.NoError(err)
	s.Equal(int64(300), bps)

	s.royaltyConfigRepo.On("Upsert", mock.Anything, &registry.RoyaltyConfig{
		ChainId:       mockChainId,
		AssetContract: mockAsset,
		RoyaltyBps:    700,
	}).Return(nil).Once()
	s.NoError(s.im.SetRoyaltyBps(mockCtx, mockChainId, mockAsset, 700))

	s.royaltyConfigRepo.On("FindOne", mock.Anything, id).
		Return(&registry.RoyaltyConfig{ChainId: mockChainId, AssetContract: mockAsset, RoyaltyBps: 700}, nil).Once()

	bps, err = s.im.RoyaltyBps(mockCtx, mockChainId, mockAsset)
	s.NoError(err)
	s.Equal(int64(700), bps)
}

func (s *testSuite) TestSetRoyaltyBpsRejectsOutOfRange() {
	s.Equal(domain.ErrBadParamInput, s.im.SetRoyaltyBps(mockCtx, mockChainId, mockAsset, 10001))
	s.Equal(domain.ErrBadParamInput, s.im.SetRoyaltyBps(mockCtx, mockChainId, mockAsset, -1))
}
