package marketplace

import (
	"math/big"

	"github.com/auric-xyz/marketd/domain"
)

// Payout is the three-way split of a sale amount.
type Payout struct {
	MarketCut    *big.Int
	RoyaltyCut   *big.Int
	ListerPayout *big.Int
}

var maxBps = big.NewInt(domain.MaxBps)

// Distribute splits totalPrice into the protocol-fee cut, the royalty cut
// and the lister payout. Cuts truncate toward zero, so any rounding
// remainder accrues to the lister. marketFeeBps + royaltyBps is expected to
// be <= domain.MaxBps; that bound is a config concern, not re-validated here.
func Distribute(totalPrice *big.Int, marketFeeBps, royaltyBps int64) Payout {
	marketCut := new(big.Int).Mul(totalPrice, big.NewInt(marketFeeBps))
	marketCut.Quo(marketCut, maxBps)

	royaltyCut := new(big.Int).Mul(totalPrice, big.NewInt(royaltyBps))
	royaltyCut.Quo(royaltyCut, maxBps)

	listerPayout := new(big.Int).Sub(totalPrice, marketCut)
	listerPayout.Sub(listerPayout, royaltyCut)

	return Payout{
		MarketCut:    marketCut,
		RoyaltyCut:   royaltyCut,
		ListerPayout: listerPayout,
	}
}
