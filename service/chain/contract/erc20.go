package contract

import (
	"math/big"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	baseabi "github.com/auric-xyz/marketd/base/abi"
	bCtx "github.com/auric-xyz/marketd/base/ctx"
	"github.com/auric-xyz/marketd/service/chain"
)

type Erc20Contract interface {
	BalanceOf(ctx bCtx.Ctx, chainId int32, addr string, owner string) (*big.Int, error)
	Allowance(ctx bCtx.Ctx, chainId int32, addr string, owner string, spender string) (*big.Int, error)
	Transfer(ctx bCtx.Ctx, chainId int32, addr string, to string, amount *big.Int) error
	TransferFrom(ctx bCtx.Ctx, chainId int32, addr string, from string, to string, amount *big.Int) error
}

type Erc20 struct {
	chainService chain.Client
	transactor   chain.Transactor
	abi          ethabi.ABI
}

func NewErc20(chainService chain.Client, transactor chain.Transactor) *Erc20 {
	return &Erc20{
		abi:          baseabi.ERC20TokenABI,
		chainService: chainService,
		transactor:   transactor,
	}
}

func (e *Erc20) BalanceOf(ctx bCtx.Ctx, chainId int32, addr string, owner string) (*big.Int, error) {
	method := "balanceOf"
	unpacked, err := e.chainService.Call(ctx, chainId, common.HexToAddress(addr), nil, e.abi, method, common.HexToAddress(owner))
	if err != nil {
		return nil, err
	}
	return unpacked[0].(*big.Int), nil
}

func (e *Erc20) Allowance(ctx bCtx.Ctx, chainId int32, addr string, owner string, spender string) (*big.Int, error) {
	method := "allowance"
	unpacked, err := e.chainService.Call(ctx, chainId, common.HexToAddress(addr), nil, e.abi, method, common.HexToAddress(owner), common.HexToAddress(spender))
	if err != nil {
		return nil, err
	}
	return unpacked[0].(*big.Int), nil
}

func (e *Erc20) Transfer(ctx bCtx.Ctx, chainId int32, addr string, to string, amount *big.Int) error {
	data, err := e.abi.Pack("transfer", common.HexToAddress(to), amount)
	if err != nil {
		return err
	}
	return e.transactor.Send(ctx, chainId, common.HexToAddress(addr), nil, data)
}

func (e *Erc20) TransferFrom(ctx bCtx.Ctx, chainId int32, addr string, from string, to string, amount *big.Int) error {
	data, err := e.abi.Pack("transferFrom", common.HexToAddress(from), common.HexToAddress(to), amount)
	if err != nil {
		return err
	}
	return e.transactor.Send(ctx, chainId, common.HexToAddress(addr), nil, data)
}
