package fund

import (
	"math/big"

	"github.com/auric-xyz/marketd/base/ctx"
	"github.com/auric-xyz/marketd/domain"
)

// UseCase moves sale value between parties, abstracting native-token and
// ERC-20 transfers behind one interface.
//
// Pull escrows value into the market account: for ERC-20 it requires a prior
// allowance, for the native token the attached sentValue must equal amount.
//
// Push pays value out of the market account. A native push that the
// recipient rejects is never fatal: the amount is deposited into the wrapped
// native token and transferred as a fungible balance instead, so a malicious
// payee cannot block settlement or refunds.
type UseCase interface {
	Pull(ctx ctx.Ctx, chainId domain.ChainId, from domain.Address, currency domain.Address, amount *big.Int, sentValue *big.Int) error
	Push(ctx ctx.Ctx, chainId domain.ChainId, to domain.Address, currency domain.Address, amount *big.Int) error

	// CheckFunds reports whether from holds amount of currency and has
	// approved the market account to spend it. Native currency has no
	// approval concept; only the balance is checked.
	CheckFunds(ctx ctx.Ctx, chainId domain.ChainId, from domain.Address, currency domain.Address, amount *big.Int) error
}
