package usecase

import (
	"math/big"

	bCtx "github.com/auric-xyz/marketd/base/ctx"
	"github.com/auric-xyz/marketd/base/log"
	"github.com/auric-xyz/marketd/domain"
	"github.com/auric-xyz/marketd/domain/fund"
	"github.com/auric-xyz/marketd/service/chain"
	"github.com/auric-xyz/marketd/service/chain/contract"
)

type FundUseCaseCfg struct {
	Erc20      contract.Erc20Contract
	Weth       contract.WethContract
	Transactor chain.Transactor
	// WrappedNative maps chainId to the wrapped native token address used
	// for the failed-push fallback.
	WrappedNative map[domain.ChainId]domain.Address
}

type impl struct {
	erc20         contract.Erc20Contract
	weth          contract.WethContract
	transactor    chain.Transactor
	wrappedNative map[domain.ChainId]domain.Address
}

func New(cfg *FundUseCaseCfg) fund.UseCase {
	wrapped := cfg.WrappedNative
	if wrapped == nil {
		wrapped = domain.ChainIdWrappedNativeMap
	}
	return &impl{
		erc20:         cfg.Erc20,
		weth:          cfg.Weth,
		transactor:    cfg.Transactor,
		wrappedNative: wrapped,
	}
}

func (im *impl) Pull(ctx bCtx.Ctx, chainId domain.ChainId, from domain.Address, currency domain.Address, amount *big.Int, sentValue *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}

	if currency.IsNative() {
		// native value rides along with the call itself; it must match the
		// amount being escrowed exactly
		if sentValue == nil || sentValue.Cmp(amount) != 0 {
			return domain.ErrIncorrectNativeValue
		}
		return nil
	}

	if err := im.CheckFunds(ctx, chainId, from, currency, amount); err != nil {
		return err
	}

	market, err := im.transactor.Account(int32(chainId))
	if err != nil {
		return err
	}
	if err := im.erc20.TransferFrom(ctx, int32(chainId), currency.ToLowerStr(), from.ToLowerStr(), market.Hex(), amount); err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"from":     from,
			"currency": currency,
			"amount":   amount.String(),
		}).Error("failed to erc20.TransferFrom")
		return err
	}
	return nil
}

func (im *impl) Push(ctx bCtx.Ctx, chainId domain.ChainId, to domain.Address, currency domain.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}

	if !currency.IsNative() {
		if err := im.erc20.Transfer(ctx, int32(chainId), currency.ToLowerStr(), to.ToLowerStr(), amount); err != nil {
			ctx.WithFields(log.Fields{
				"err":      err,
				"to":       to,
				"currency": currency,
				"amount":   amount.String(),
			}).Error("failed to erc20.Transfer")
			return err
		}
		return nil
	}

	sendErr := im.transactor.Send(ctx, int32(chainId), chain.ToCommonAddress(to), amount, nil)
	if sendErr == nil {
		return nil
	}

	// the recipient rejected the native transfer; wrap the amount and pay
	// it out as a fungible balance so settlement cannot be blocked
	ctx.WithFields(log.Fields{
		"err": sendErr,
		"to":  to,
	}).Warn("native transfer failed, falling back to wrapped token")

	wrapped, ok := im.wrappedNative[chainId]
	if !ok {
		return domain.ErrInvalidChainId
	}
	if err := im.weth.Deposit(ctx, int32(chainId), wrapped.ToLowerStr(), amount); err != nil {
		ctx.WithFields(log.Fields{"err": err, "amount": amount.String()}).Error("failed to weth.Deposit")
		return err
	}
	if err := im.weth.Transfer(ctx, int32(chainId), wrapped.ToLowerStr(), to.ToLowerStr(), amount); err != nil {
		ctx.WithFields(log.Fields{"err": err, "to": to}).Error("failed to weth.Transfer")
		return err
	}
	return nil
}

func (im *impl) CheckFunds(ctx bCtx.Ctx, chainId domain.ChainId, from domain.Address, currency domain.Address, amount *big.Int) error {
	if currency.IsNative() {
		return nil
	}

	balance, err := im.erc20.BalanceOf(ctx, int32(chainId), currency.ToLowerStr(), from.ToLowerStr())
	if err != nil {
		ctx.WithFields(log.Fields{"err": err, "from": from, "currency": currency}).Error("failed to erc20.BalanceOf")
		return err
	}
	if balance.Cmp(amount) < 0 {
		return domain.ErrInsufficientFunds
	}

	market, err := im.transactor.Account(int32(chainId))
	if err != nil {
		return err
	}
	allowance, err := im.erc20.Allowance(ctx, int32(chainId), currency.ToLowerStr(), from.ToLowerStr(), market.Hex())
	if err != nil {
		ctx.WithFields(log.Fields{"err": err, "from": from, "currency": currency}).Error("failed to erc20.Allowance")
		return err
	}
	if allowance.Cmp(amount) < 0 {
		return domain.ErrInsufficientFunds
	}
	return nil
}
