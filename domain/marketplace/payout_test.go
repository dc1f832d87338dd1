package marketplace

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/suite"
)

type payoutTestSuite struct {
	suite.Suite
}

func TestPayoutSuite(t *testing.T) {
	suite.Run(t, new(payoutTestSuite))
}

func (s *payoutTestSuite) TestDistribute() {
	cases := []struct {
		name         string
		totalPrice   *big.Int
		marketFeeBps int64
		royaltyBps   int64
		marketCut    *big.Int
		royaltyCut   *big.Int
		listerPayout *big.Int
	}{
		{
			name:         "even split",
			totalPrice:   big.NewInt(10000),
			marketFeeBps: 250,
			royaltyBps:   500,
			marketCut:    big.NewInt(250),
			royaltyCut:   big.NewInt(500),
			listerPayout: big.NewInt(9250),
		},
		{
			name:         "remainder accrues to lister",
			totalPrice:   big.NewInt(99),
			marketFeeBps: 250,
			royaltyBps:   500,
			marketCut:    big.NewInt(2),
			royaltyCut:   big.NewInt(4),
			listerPayout: big.NewInt(93),
		},
		{
			name:         "no fees",
			totalPrice:   big.NewInt(777),
			marketFeeBps: 0,
			royaltyBps:   0,
			marketCut:    big.NewInt(0),
			royaltyCut:   big.NewInt(0),
			listerPayout: big.NewInt(777),
		},
		{
			name:         "dust amount under one bps unit",
			totalPrice:   big.NewInt(3),
			marketFeeBps: 250,
			royaltyBps:   500,
			marketCut:    big.NewInt(0),
			royaltyCut:   big.NewInt(0),
			listerPayout: big.NewInt(3),
		},
	}

	for _, c := range cases {
		payout := Distribute(c.totalPrice, c.marketFeeBps, c.royaltyBps)
		s.Equal(c.marketCut, payout.MarketCut, c.name)
		s.Equal(c.royaltyCut, payout.RoyaltyCut, c.name)
		s.Equal(c.listerPayout, payout.ListerPayout, c.name)
	}
}

func (s *payoutTestSuite) TestDistributeConservesTotal() {
	totals := []int64{1, 3, 99, 10000, 123456789}
	for _, t := range totals {
		total := big.NewInt(t)
		payout := Distribute(total, 250, 500)

		sum := new(big.Int).Add(payout.MarketCut, payout.RoyaltyCut)
		sum.Add(sum, payout.ListerPayout)
		s.Zero(total.Cmp(sum))
		s.True(payout.ListerPayout.Sign() >= 0)
	}
}
