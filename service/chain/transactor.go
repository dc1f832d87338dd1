package chain

import (
	"crypto/ecdsa"
	"errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	bCtx "github.com/auric-xyz/marketd/base/ctx"
	"github.com/auric-xyz/marketd/base/log"
)

var ErrTxReverted = errors.New("transaction reverted")

type TransactorCfg struct {
	RpcUrls map[int32]string
	// MarketKeys maps chainId to the hex private key of the market account
	// holding escrowed assets and funds on that chain.
	MarketKeys map[int32]string

	ConfirmTimeout time.Duration
}

// Transactor signs and sends state-changing transactions from the market
// account. Send dry-runs the call first, so a call the recipient would
// revert fails before any value moves.
type Transactor interface {
	Account(chainId int32) (common.Address, error)
	Send(ctx bCtx.Ctx, chainId int32, to common.Address, value *big.Int, data []byte) error
}

type account struct {
	key  *ecdsa.PrivateKey
	addr common.Address
}

type transactorImpl struct {
	clients        map[int32]*ethclient.Client
	accounts       map[int32]account
	confirmTimeout time.Duration
}

func NewTransactor(ctx bCtx.Ctx, cfg *TransactorCfg) (Transactor, error) {
	clients := make(map[int32]*ethclient.Client)
	accounts := make(map[int32]account)
	for chainId, url := range cfg.RpcUrls {
		keyHex, ok := cfg.MarketKeys[chainId]
		if !ok {
			continue
		}
		key, err := crypto.HexToECDSA(keyHex)
		if err != nil {
			ctx.WithFields(log.Fields{"err": err, "chainId": chainId}).Error("invalid market key")
			return nil, err
		}
		client, err := ethclient.DialContext(ctx, url)
		if err != nil {
			ctx.WithFields(log.Fields{"err": err, "chainId": chainId, "url": url}).Error("failed to dial rpc")
			return nil, err
		}
		clients[chainId] = client
		accounts[chainId] = account{key: key, addr: crypto.PubkeyToAddress(key.PublicKey)}
	}
	confirmTimeout := cfg.ConfirmTimeout
	if confirmTimeout == 0 {
		confirmTimeout = 2 * time.Minute
	}
	return &transactorImpl{
		clients:        clients,
		accounts:       accounts,
		confirmTimeout: confirmTimeout,
	}, nil
}

func (t *transactorImpl) Account(chainId int32) (common.Address, error) {
	acc, ok := t.accounts[chainId]
	if !ok {
		return common.Address{}, ErrUnsupportedChain
	}
	return acc.addr, nil
}

func (t *transactorImpl) Send(ctx bCtx.Ctx, chainId int32, to common.Address, value *big.Int, data []byte) error {
	client, ok := t.clients[chainId]
	if !ok {
		return ErrUnsupportedChain
	}
	acc := t.accounts[chainId]

	msg := ethereum.CallMsg{From: acc.addr, To: &to, Value: value, Data: data}
	gas, err := client.EstimateGas(ctx, msg)
	if err != nil {
		// estimation fails when the callee reverts; surface it before
		// signing anything
		ctx.WithFields(log.Fields{"err": err, "to": to.Hex()}).Warn("gas estimation failed")
		return ErrTxReverted
	}

	nonce, err := client.PendingNonceAt(ctx, acc.addr)
	if err != nil {
		ctx.WithField("err", err).Error("client.PendingNonceAt failed")
		return err
	}
	gasPrice, err := client.SuggestGasPrice(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("client.SuggestGasPrice failed")
		return err
	}

	netChainId, err := client.ChainID(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("client.ChainID failed")
		return err
	}
	tx := types.NewTransaction(nonce, to, value, gas, gasPrice, data)
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(netChainId), acc.key)
	if err != nil {
		ctx.WithField("err", err).Error("types.SignTx failed")
		return err
	}

	if err := client.SendTransaction(ctx, signed); err != nil {
		ctx.WithFields(log.Fields{"err": err, "tx": signed.Hash().Hex()}).Error("client.SendTransaction failed")
		return err
	}

	waitCtx, cancel := bCtx.WithTimeout(ctx, t.confirmTimeout)
	defer cancel()
	receipt, err := bind.WaitMined(waitCtx, client, signed)
	if err != nil {
		ctx.WithFields(log.Fields{"err": err, "tx": signed.Hash().Hex()}).Error("bind.WaitMined failed")
		return err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		ctx.WithField("tx", signed.Hash().Hex()).Warn("transaction reverted")
		return ErrTxReverted
	}
	return nil
}
