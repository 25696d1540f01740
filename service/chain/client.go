package chain

import (
	"crypto/ecdsa"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	bCtx "github.com/x-xyz/marketplace/base/ctx"
	baseeth "github.com/x-xyz/marketplace/base/ethereum"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/domain"
)

var ErrUnsupportedChain = errors.New("unsupported chain")

const defaultConcurrency = 8

type ClientCfg struct {
	RpcUrls map[domain.ChainId]string
	// Concurrency caps in-flight rpc calls per chain
	Concurrency int
}

// Tx is an outgoing transaction. Data is empty for a plain value transfer.
type Tx struct {
	To    common.Address
	Value *big.Int
	Data  []byte
}

type Client interface {
	Call(ctx bCtx.Ctx, chainId domain.ChainId, addr common.Address, blk *big.Int, _abi abi.ABI, method string, params ...interface{}) ([]interface{}, error)
	HeaderByNumber(ctx bCtx.Ctx, chainId domain.ChainId, number *big.Int) (*types.Header, error)
	// SendTransaction signs tx with key and broadcasts it without waiting for inclusion
	SendTransaction(ctx bCtx.Ctx, chainId domain.ChainId, key *ecdsa.PrivateKey, tx Tx) (common.Hash, error)
	TransactionReceipt(ctx bCtx.Ctx, chainId domain.ChainId, hash common.Hash) (*types.Receipt, error)
	// TransactionByHash also reports whether the transaction is still pending
	TransactionByHash(ctx bCtx.Ctx, chainId domain.ChainId, hash common.Hash) (*types.Transaction, bool, error)
	BlockNumber(ctx bCtx.Ctx, chainId domain.ChainId) (uint64, error)
	FilterLogs(ctx bCtx.Ctx, chainId domain.ChainId, q ethereum.FilterQuery) ([]types.Log, error)
}

type clientImpl struct {
	clients map[domain.ChainId]*baseeth.ThrottledClient
}

func NewClient(ctx bCtx.Ctx, cfg *ClientCfg) (Client, error) {
	var anyerr error
	n := cfg.Concurrency
	if n <= 0 {
		n = defaultConcurrency
	}
	clients := make(map[domain.ChainId]*baseeth.ThrottledClient)
	for chainId, url := range cfg.RpcUrls {
		client, err := ethclient.DialContext(ctx, url)
		if err != nil {
			anyerr = err
			ctx.WithFields(log.Fields{
				"err":     err,
				"chainId": chainId,
				"url":     url,
			}).Warn("failed to dial rpc")
			// soft warning, still let the server start
			continue
		}
		clients[chainId] = baseeth.NewThrottledClient(client, n)
	}
	return &clientImpl{clients: clients}, anyerr
}

func (c *clientImpl) client(chainId domain.ChainId) (*baseeth.ThrottledClient, error) {
	client, ok := c.clients[chainId]
	if !ok {
		return nil, ErrUnsupportedChain
	}
	return client, nil
}

func (c *clientImpl) Call(ctx bCtx.Ctx, chainId domain.ChainId, addr common.Address, blk *big.Int, _abi abi.ABI, method string, params ...interface{}) ([]interface{}, error) {
	client, err := c.client(chainId)
	if err != nil {
		return nil, err
	}

	data, err := _abi.Pack(method, params...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"method": method,
			"params": params,
			"err":    err,
		}).Error("abi.Pack failed")
		return nil, err
	}
	msg := ethereum.CallMsg{
		To:   &addr,
		Data: data,
	}
	res, err := client.CallContract(ctx, msg, blk)
	if err != nil {
		ctx.WithField("err", err).Error("client.CallContract failed")
		return nil, err
	}
	unpacked, err := _abi.Unpack(method, res)
	if err != nil {
		ctx.WithField("err", err).Error("abi.Unpack failed")
		return nil, err
	}
	return unpacked, nil
}

func (c *clientImpl) HeaderByNumber(ctx bCtx.Ctx, chainId domain.ChainId, number *big.Int) (*types.Header, error) {
	client, err := c.client(chainId)
	if err != nil {
		return nil, err
	}
	header, err := client.HeaderByNumber(ctx, number)
	if err != nil {
		ctx.WithFields(log.Fields{"err": err, "chainId": chainId}).Error("client.HeaderByNumber failed")
		return nil, err
	}
	return header, nil
}

func (c *clientImpl) SendTransaction(ctx bCtx.Ctx, chainId domain.ChainId, key *ecdsa.PrivateKey, tx Tx) (common.Hash, error) {
	client, err := c.client(chainId)
	if err != nil {
		return common.Hash{}, err
	}
	from := crypto.PubkeyToAddress(key.PublicKey)
	ctx = bCtx.WithValues(ctx, map[string]interface{}{"from": from.Hex(), "to": tx.To.Hex()})

	nonce, err := client.PendingNonceAt(ctx, from)
	if err != nil {
		ctx.WithField("err", err).Error("client.PendingNonceAt failed")
		return common.Hash{}, err
	}
	gasPrice, err := client.SuggestGasPrice(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("client.SuggestGasPrice failed")
		return common.Hash{}, err
	}
	value := tx.Value
	if value == nil {
		value = big.NewInt(0)
	}
	gas, err := client.EstimateGas(ctx, ethereum.CallMsg{From: from, To: &tx.To, Value: value, Data: tx.Data})
	if err != nil {
		ctx.WithField("err", err).Error("client.EstimateGas failed")
		return common.Hash{}, err
	}

	signer := types.LatestSignerForChainID(big.NewInt(int64(chainId)))
	signed, err := types.SignNewTx(key, signer, &types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gas,
		To:       &tx.To,
		Value:    value,
		Data:     tx.Data,
	})
	if err != nil {
		ctx.WithField("err", err).Error("types.SignNewTx failed")
		return common.Hash{}, err
	}
	if err := client.SendTransaction(ctx, signed); err != nil {
		ctx.WithField("err", err).Error("client.SendTransaction failed")
		return common.Hash{}, err
	}
	return signed.Hash(), nil
}

func (c *clientImpl) TransactionReceipt(ctx bCtx.Ctx, chainId domain.ChainId, hash common.Hash) (*types.Receipt, error) {
	client, err := c.client(chainId)
	if err != nil {
		return nil, err
	}
	return client.TransactionReceipt(ctx, hash)
}

func (c *clientImpl) TransactionByHash(ctx bCtx.Ctx, chainId domain.ChainId, hash common.Hash) (*types.Transaction, bool, error) {
	client, err := c.client(chainId)
	if err != nil {
		return nil, false, err
	}
	return client.TransactionByHash(ctx, hash)
}

func (c *clientImpl) BlockNumber(ctx bCtx.Ctx, chainId domain.ChainId) (uint64, error) {
	client, err := c.client(chainId)
	if err != nil {
		return 0, err
	}
	n, err := client.BlockNumber(ctx)
	if err != nil {
		ctx.WithFields(log.Fields{"err": err, "chainId": chainId}).Error("client.BlockNumber failed")
		return 0, err
	}
	return n, nil
}

func (c *clientImpl) FilterLogs(ctx bCtx.Ctx, chainId domain.ChainId, q ethereum.FilterQuery) ([]types.Log, error) {
	client, err := c.client(chainId)
	if err != nil {
		return nil, err
	}
	return client.FilterLogs(ctx, q)
}
