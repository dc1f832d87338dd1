package usecase

import (
	"errors"
	"math/big"
	"testing"

	"github.com/auric-xyz/marketd/base/ctx"
	"github.com/auric-xyz/marketd/domain"
	"github.com/auric-xyz/marketd/service/chain"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/suite"

	mContract "github.com/auric-xyz/marketd/service/chain/contract/mocks"
	mChain "github.com/auric-xyz/marketd/service/chain/mocks"
)

var (
	mockCtx = ctx.Background()

	mockChainId = domain.ChainId(1)
	mockPayer   = domain.Address("0x1111111111111111111111111111111111111111")
	mockPayee   = domain.Address("0x2222222222222222222222222222222222222222")
	mockErc20   = domain.Address("0x7777777777777777777777777777777777777777")
	mockWrapped = domain.Address("0x8888888888888888888888888888888888888888")

	mockMarketAccount = common.HexToAddress("0x9999999999999999999999999999999999999999")
)

type testSuite struct {
	suite.Suite

	erc20      *mContract.Erc20Contract
	weth       *mContract.WethContract
	transactor *mChain.Transactor

	im *impl
}

func (s *testSuite) SetupTest() {
	s.erc20 = &mContract.Erc20Contract{}
	s.weth = &mContract.WethContract{}
	s.transactor = &mChain.Transactor{}

	s.im = New(&FundUseCaseCfg{
		Erc20:      s.erc20,
		Weth:       s.weth,
		Transactor: s.transactor,
		WrappedNative: map[domain.ChainId]domain.Address{
			mockChainId: mockWrapped,
		},
	}).(*impl)
}

func (s *testSuite) TearDownTest() {
	s.erc20.AssertExpectations(s.T())
	s.weth.AssertExpectations(s.T())
	s.transactor.AssertExpectations(s.T())
}

func TestFundSuite(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestPullNativeRequiresExactValue() {
	amount := big.NewInt(60)

	s.NoError(s.im.Pull(mockCtx, mockChainId, mockPayer, domain.NativeToken, amount, big.NewInt(60)))
	s.Equal(domain.ErrIncorrectNativeValue, s.im.Pull(mockCtx, mockChainId, mockPayer, domain.NativeToken, amount, big.NewInt(59)))
	s.Equal(domain.ErrIncorrectNativeValue, s.im.Pull(mockCtx, mockChainId, mockPayer, domain.NativeToken, amount, nil))
}

func (s *testSuite) TestPullErc20EscrowsViaTransferFrom() {
	amount := big.NewInt(60)

	s.transactor.On("Account", int32(mockChainId)).Return(mockMarketAccount, nil)
	s.erc20.On("BalanceOf", mockCtx, int32(mockChainId), mockErc20.ToLowerStr(), mockPayer.ToLowerStr()).
		Return(big.NewInt(100), nil).Once()
	s.erc20.On("Allowance", mockCtx, int32(mockChainId), mockErc20.ToLowerStr(), mockPayer.ToLowerStr(), mockMarketAccount.Hex()).
		Return(big.NewInt(100), nil).Once()
	s.erc20.On("TransferFrom", mockCtx, int32(mockChainId), mockErc20.ToLowerStr(), mockPayer.ToLowerStr(), mockMarketAccount.Hex(), amount).
		Return(nil).Once()

	s.NoError(s.im.Pull(mockCtx, mockChainId, mockPayer, mockErc20, amount, big.NewInt(0)))
}

func (s *testSuite) TestPullErc20InsufficientAllowance() {
	amount := big.NewInt(60)

	s.transactor.On("Account", int32(mockChainId)).Return(mockMarketAccount, nil)
	s.erc20.On("BalanceOf", mockCtx, int32(mockChainId), mockErc20.ToLowerStr(), mockPayer.ToLowerStr()).
		Return(big.NewInt(100), nil).Once()
	s.erc20.On("Allowance", mockCtx, int32(mockChainId), mockErc20.ToLowerStr(), mockPayer.ToLowerStr(), mockMarketAccount.Hex()).
		Return(big.NewInt(59), nil).Once()

	s.Equal(domain.ErrInsufficientFunds, s.im.Pull(mockCtx, mockChainId, mockPayer, mockErc20, amount, big.NewInt(0)))
}

func (s *testSuite) TestPushErc20() {
	amount := big.NewInt(56)

	s.erc20.On("Transfer", mockCtx, int32(mockChainId), mockErc20.ToLowerStr(), mockPayee.ToLowerStr(), amount).
		Return(nil).Once()

	s.NoError(s.im.Push(mockCtx, mockChainId, mockPayee, mockErc20, amount))
}

func (s *testSuite) TestPushNative() {
	amount := big.NewInt(56)

	s.transactor.On("Send", mockCtx, int32(mockChainId), chain.ToCommonAddress(mockPayee), amount, []byte(nil)).
		Return(nil).Once()

	s.NoError(s.im.Push(mockCtx, mockChainId, mockPayee, domain.NativeToken, amount))
}

func (s *testSuite) TestPushNativeFallsBackToWrapped() {
	amount := big.NewInt(56)

	s.transactor.On("Send", mockCtx, int32(mockChainId), chain.ToCommonAddress(mockPayee), amount, []byte(nil)).
		Return(errors.New("execution reverted")).Once()
	s.weth.On("Deposit", mockCtx, int32(mockChainId), mockWrapped.ToLowerStr(), amount).
		Return(nil).Once()
	s.weth.On("Transfer", mockCtx, int32(mockChainId), mockWrapped.ToLowerStr(), mockPayee.ToLowerStr(), amount).
		Return(nil).Once()

	s.NoError(s.im.Push(mockCtx, mockChainId, mockPayee, domain.NativeToken, amount))
}

func (s *testSuite) TestZeroAmountMovesNothing() {
	s.NoError(s.im.Pull(mockCtx, mockChainId, mockPayer, mockErc20, big.NewInt(0), big.NewInt(0)))
	s.NoError(s.im.Push(mockCtx, mockChainId, mockPayee, mockErc20, big.NewInt(0)))
}

func (s *testSuite) TestCheckFundsNativeOnlyBalance() {
	s.NoError(s.im.CheckFunds(mockCtx, mockChainId, mockPayer, domain.NativeToken, big.NewInt(60)))
}
