package contract

import (
	"math/big"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	baseabi "github.com/auric-xyz/marketd/base/abi"
	bCtx "github.com/auric-xyz/marketd/base/ctx"
	"github.com/auric-xyz/marketd/service/chain"
)

type Erc1155Contract interface {
	Supports1155Interface(ctx bCtx.Ctx, chainId int32, addr string) (bool, error)
	BalanceOf(ctx bCtx.Ctx, chainId int32, addr string, owner string, tokenId *big.Int) (*big.Int, error)
	IsApprovedForAll(ctx bCtx.Ctx, chainId int32, addr string, owner string, operator string) (bool, error)
	SafeTransferFrom(ctx bCtx.Ctx, chainId int32, addr string, from string, to string, tokenId *big.Int, amount *big.Int) error
}

type Erc1155 struct {
	chainService       chain.Client
	transactor         chain.Transactor
	abi                ethabi.ABI
	erc1155InterfaceId [4]byte
}

func NewErc1155(chainService chain.Client, transactor chain.Transactor) *Erc1155 {
	var interfaceId [4]byte
	copy(interfaceId[:], common.Hex2Bytes("d9b67a26"))
	return &Erc1155{
		abi:                baseabi.ERC1155TokenABI,
		chainService:       chainService,
		transactor:         transactor,
		erc1155InterfaceId: interfaceId,
	}
}

func (e *Erc1155) Supports1155Interface(ctx bCtx.Ctx, chainId int32, addr string) (bool, error) {
	method := "supportsInterface"
	unpacked, err := e.chainService.Call(ctx, chainId, common.HexToAddress(addr), nil, e.abi, method, e.erc1155InterfaceId)
	if err != nil {
		return false, err
	}
	return unpacked[0].(bool), nil
}

func (e *Erc1155) BalanceOf(ctx bCtx.Ctx, chainId int32, addr string, owner string, tokenId *big.Int) (*big.Int, error) {
	method := "balanceOf"
	unpacked, err := e.chainService.Call(ctx, chainId, common.HexToAddress(addr), nil, e.abi, method, common.HexToAddress(owner), tokenId)
	if err != nil {
		return nil, err
	}
	return unpacked[0].(*big.Int), nil
}

func (e *Erc1155) IsApprovedForAll(ctx bCtx.Ctx, chainId int32, addr string, owner string, operator string) (bool, error) {
	method := "isApprovedForAll"
	unpacked, err := e.chainService.Call(ctx, chainId, common.HexToAddress(addr), nil, e.abi, method, common.HexToAddress(owner), common.HexToAddress(operator))
	if err != nil {
		return false, err
	}
	return unpacked[0].(bool), nil
}

func (e *Erc1155) SafeTransferFrom(ctx bCtx.Ctx, chainId int32, addr string, from string, to string, tokenId *big.Int, amount *big.Int) error {
	data, err := e.abi.Pack("safeTransferFrom", common.HexToAddress(from), common.HexToAddress(to), tokenId, amount, []byte{})
	if err != nil {
		return err
	}
	return e.transactor.Send(ctx, chainId, common.HexToAddress(addr), nil, data)
}
