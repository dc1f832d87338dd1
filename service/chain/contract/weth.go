package contract

import (
	"math/big"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	baseabi "github.com/auric-xyz/marketd/base/abi"
	bCtx "github.com/auric-xyz/marketd/base/ctx"
	"github.com/auric-xyz/marketd/service/chain"
)

// WethContract is the wrapped native token, used as the fallback payout
// route when a recipient refuses a direct native transfer.
type WethContract interface {
	Deposit(ctx bCtx.Ctx, chainId int32, addr string, amount *big.Int) error
	Transfer(ctx bCtx.Ctx, chainId int32, addr string, to string, amount *big.Int) error
	BalanceOf(ctx bCtx.Ctx, chainId int32, addr string, owner string) (*big.Int, error)
}

type Weth struct {
	chainService chain.Client
	transactor   chain.Transactor
	abi          ethabi.ABI
}

func NewWeth(chainService chain.Client, transactor chain.Transactor) *Weth {
	return &Weth{
		abi:          baseabi.WETHTokenABI,
		chainService: chainService,
		transactor:   transactor,
	}
}

func (w *Weth) Deposit(ctx bCtx.Ctx, chainId int32, addr string, amount *big.Int) error {
	data, err := w.abi.Pack("deposit")
	if err != nil {
		return err
	}
	return w.transactor.Send(ctx, chainId, common.HexToAddress(addr), amount, data)
}

func (w *Weth) Transfer(ctx bCtx.Ctx, chainId int32, addr string, to string, amount *big.Int) error {
	data, err := w.abi.Pack("transfer", common.HexToAddress(to), amount)
	if err != nil {
		return err
	}
	return w.transactor.Send(ctx, chainId, common.HexToAddress(addr), nil, data)
}

func (w *Weth) BalanceOf(ctx bCtx.Ctx, chainId int32, addr string, owner string) (*big.Int, error) {
	method := "balanceOf"
	unpacked, err := w.chainService.Call(ctx, chainId, common.HexToAddress(addr), nil, w.abi, method, common.HexToAddress(owner))
	if err != nil {
		return nil, err
	}
	return unpacked[0].(*big.Int), nil
}
