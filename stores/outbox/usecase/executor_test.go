package usecase

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/x-xyz/marketplace/base/abi"
	"github.com/x-xyz/marketplace/base/backoff"
	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/market"
	"github.com/x-xyz/marketplace/domain/outbox"
	"github.com/x-xyz/marketplace/service/chain"
	"github.com/x-xyz/marketplace/service/chain/contract"
	"github.com/x-xyz/marketplace/service/chain/mocks"
)

const (
	testChainId = domain.ChainId(1)
	buyer       = domain.Address("0x00000000000000000000000000000000000000b1")
	nftContract = domain.Address("0x00000000000000000000000000000000000000c1")
)

func newTestExecutor(t *testing.T) (outbox.Executor, *mocks.Client, common.Address) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	client := mocks.NewClient(t)
	e := NewChainExecutor(&ChainExecutorCfg{
		ChainId:     testChainId,
		Client:      client,
		Erc721:      contract.NewErc721(client),
		Key:         key,
		NativeDenom: "wei",
	})
	return e, client, crypto.PubkeyToAddress(key.PublicKey)
}

func TestExecuteBankSend(t *testing.T) {
	req := require.New(t)
	e, client, _ := newTestExecutor(t)

	client.On("SendTransaction", mock.Anything, testChainId, mock.Anything, mock.MatchedBy(func(tx chain.Tx) bool {
		return tx.To == buyer.ToHex() && tx.Value.Cmp(big.NewInt(1500)) == 0 && len(tx.Data) == 0
	})).Return(common.HexToHash("0xaa"), nil).Once()

	hash, err := e.Execute(ctx.Background(), market.NewBankSend(buyer, market.NewCoin(market.NewAmount(1500), "wei")))
	req.NoError(err)
	req.Equal(domain.TxHash(common.HexToHash("0xaa").Hex()), hash)

	_, err = e.Execute(ctx.Background(), market.NewBankSend(buyer, market.NewCoin(market.NewAmount(1), "uatom")))
	req.ErrorIs(err, market.ErrDenomNotMatch)
	req.ErrorIs(err, backoff.ErrPermanent)
}

func TestExecuteNftTransfer(t *testing.T) {
	req := require.New(t)
	e, client, escrow := newTestExecutor(t)

	want, err := abi.ERC721TokenABI.Pack("safeTransferFrom", escrow, buyer.ToHex(), big.NewInt(42))
	req.NoError(err)

	client.On("SendTransaction", mock.Anything, testChainId, mock.Anything, chain.Tx{
		To:   nftContract.ToHex(),
		Data: want,
	}).Return(common.HexToHash("0xbb"), nil).Once()

	_, err = e.Execute(ctx.Background(), market.NewNftTransfer(nftContract, buyer, "42"))
	req.NoError(err)

	_, err = e.Execute(ctx.Background(), market.NewNftTransfer(nftContract, buyer, "not a number"))
	req.ErrorIs(err, backoff.ErrPermanent)
}

func TestExecuteUnknownKind(t *testing.T) {
	e, _, _ := newTestExecutor(t)
	_, err := e.Execute(ctx.Background(), market.Message{Kind: "teleport"})
	require.ErrorIs(t, err, outbox.ErrUnknownMessageKind)
	require.ErrorIs(t, err, backoff.ErrPermanent)
}

func TestReceipt(t *testing.T) {
	req := require.New(t)
	e, client, _ := newTestExecutor(t)

	mined := common.HexToHash("0x01")
	reverted := common.HexToHash("0x02")
	pending := common.HexToHash("0x03")
	broken := common.HexToHash("0x04")
	client.On("TransactionReceipt", mock.Anything, testChainId, mined).Return(&types.Receipt{Status: types.ReceiptStatusSuccessful}, nil).Once()
	client.On("TransactionReceipt", mock.Anything, testChainId, reverted).Return(&types.Receipt{Status: types.ReceiptStatusFailed}, nil).Once()
	client.On("TransactionReceipt", mock.Anything, testChainId, pending).Return(nil, ethereum.NotFound).Once()
	client.On("TransactionReceipt", mock.Anything, testChainId, broken).Return(nil, errors.New("rpc down")).Once()

	ok, success, err := e.Receipt(ctx.Background(), domain.TxHash(mined.Hex()))
	req.NoError(err)
	req.True(ok)
	req.True(success)

	ok, success, err = e.Receipt(ctx.Background(), domain.TxHash(reverted.Hex()))
	req.NoError(err)
	req.True(ok)
	req.False(success)

	ok, _, err = e.Receipt(ctx.Background(), domain.TxHash(pending.Hex()))
	req.NoError(err)
	req.False(ok)

	_, _, err = e.Receipt(ctx.Background(), domain.TxHash(broken.Hex()))
	req.Error(err)
}
