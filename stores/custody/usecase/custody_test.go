package usecase

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/marketplace/base/abi"
	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/tracker"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/market"
	marketMocks "github.com/x-xyz/marketplace/domain/market/mocks"
	"github.com/x-xyz/marketplace/domain/outbox"
	"github.com/x-xyz/marketplace/service/chain/mocks"
	"github.com/x-xyz/marketplace/service/query"
	outboxRepository "github.com/x-xyz/marketplace/stores/outbox/repository"
	outboxUsecase "github.com/x-xyz/marketplace/stores/outbox/usecase"
)

const chainId = domain.ChainId(1)

var (
	escrow = common.HexToAddress("0x00000000000000000000000000000000000000e5")
	nft    = common.HexToAddress("0x00000000000000000000000000000000000000b1")
	seller = common.HexToAddress("0x00000000000000000000000000000000000000c1")
	terms  = []byte(`{"fixed_price":"1000"}`)
	listed = time.Date(2022, 5, 1, 0, 0, 0, 0, time.UTC)
)

type custodySuite struct {
	suite.Suite

	client  *mocks.Client
	engine  *marketMocks.Engine
	records outbox.Repo
	handler tracker.EventHandler
}

func TestCustodySuite(t *testing.T) {
	suite.Run(t, new(custodySuite))
}

func (s *custodySuite) SetupTest() {
	s.client = mocks.NewClient(s.T())
	s.engine = marketMocks.NewEngine(s.T())
	s.records = outboxRepository.NewRecordRepo(query.NewMemory())
	s.handler = NewCustodyHandler(&CustodyCfg{
		ChainId:    chainId,
		Client:     s.client,
		Escrow:     domain.Address(escrow.Hex()),
		Engine:     s.engine,
		Dispatcher: outboxUsecase.NewDispatcher(s.records),
	})
}

func transferEvent(txHash common.Hash, from common.Address, tokenId int64) tracker.Event {
	return tracker.Event{
		Log: types.Log{
			Address: nft,
			Topics: []common.Hash{
				abi.ERC721TokenABI.Events["Transfer"].ID,
				from.Hash(),
				escrow.Hash(),
				common.BigToHash(big.NewInt(tokenId)),
			},
			TxHash:      txHash,
			BlockNumber: 120,
			Index:       2,
		},
		BlockTime: listed,
	}
}

func (s *custodySuite) sentWith(txHash common.Hash, to common.Address, data []byte) {
	tx := types.NewTx(&types.LegacyTx{To: &to, Gas: 100000, GasPrice: big.NewInt(1), Data: data})
	s.client.On("TransactionByHash", mock.Anything, chainId, txHash).Return(tx, false, nil).Once()
}

func safeTransfer(tokenId int64, data []byte) []byte {
	input, err := abi.ERC721SafeTransferWithDataABI.Pack("safeTransferFrom", seller, escrow, big.NewInt(tokenId), data)
	if err != nil {
		panic(err)
	}
	return input
}

func (s *custodySuite) returned() []market.Message {
	records, err := s.records.FindAll(ctx.Background())
	s.Require().NoError(err)
	msgs := []market.Message{}
	for _, r := range records {
		s.Equal(market.ActionReturnNft, r.Action)
		msgs = append(msgs, r.Message)
	}
	return msgs
}

func (s *custodySuite) TestFilterMatchesTransfersIntoEscrow() {
	f := s.handler.Filter()
	s.Empty(f.Addresses)
	s.Equal([][]common.Hash{{abi.ERC721TokenABI.Events["Transfer"].ID}, nil, {escrow.Hash()}}, f.Topics)
}

func (s *custodySuite) TestTransferWithTermsCreatesListing() {
	hash := common.HexToHash("0x01")
	s.sentWith(hash, nft, safeTransfer(42, terms))
	s.engine.On("ReceiveNft", mock.Anything,
		market.Env{Height: 120, Time: listed},
		market.MessageInfo{Sender: domain.Address(nft.Hex()).ToLower()},
		market.ReceiveNftMsg{Sender: domain.Address(seller.Hex()).ToLowerStr(), TokenId: "42", Msg: terms},
	).Return(market.NewResponse().AddAttribute("offering_id", "1"), nil).Once()

	s.NoError(s.handler.ProcessEvents(ctx.Background(), []tracker.Event{transferEvent(hash, seller, 42)}))
	s.Empty(s.returned())
}

func (s *custodySuite) TestRejectedListingReturnsToken() {
	hash := common.HexToHash("0x02")
	s.sentWith(hash, nft, safeTransfer(42, []byte(`{"fixed_price":"0"}`)))
	s.engine.On("ReceiveNft", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, market.ErrPriceMustBePositive).Once()

	s.NoError(s.handler.ProcessEvents(ctx.Background(), []tracker.Event{transferEvent(hash, seller, 42)}))
	msgs := s.returned()
	s.Require().Len(msgs, 1)
	s.Require().Equal(market.MessageKindNftTransfer, msgs[0].Kind)
	s.Equal(domain.Address(nft.Hex()).ToLower(), msgs[0].NftTransfer.Contract)
	s.Equal(domain.Address(seller.Hex()).ToLower(), msgs[0].NftTransfer.Recipient)
	s.Equal(domain.TokenId("42"), msgs[0].NftTransfer.TokenId)
}

func (s *custodySuite) TestTransferWithoutTermsReturnsToken() {
	plainHash, otherHash, viaHash := common.HexToHash("0x03"), common.HexToHash("0x04"), common.HexToHash("0x05")

	// transferFrom carries no data
	plain, err := abi.ERC721TokenABI.Pack("transferFrom", seller, escrow, big.NewInt(1))
	s.Require().NoError(err)
	s.sentWith(plainHash, nft, plain)
	// terms for another token
	s.sentWith(otherHash, nft, safeTransfer(9, terms))
	// sent through another contract
	s.sentWith(viaHash, common.HexToAddress("0x0000000000000000000000000000000000000777"), safeTransfer(3, terms))

	s.NoError(s.handler.ProcessEvents(ctx.Background(), []tracker.Event{
		transferEvent(plainHash, seller, 1),
		transferEvent(otherHash, seller, 2),
		transferEvent(viaHash, seller, 3),
	}))
	s.Len(s.returned(), 3)
	s.engine.AssertNotCalled(s.T(), "ReceiveNft", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *custodySuite) TestMintsAndErc20TransfersAreSkipped() {
	erc20 := transferEvent(common.HexToHash("0x06"), seller, 0)
	erc20.Topics = erc20.Topics[:3]

	s.NoError(s.handler.ProcessEvents(ctx.Background(), []tracker.Event{
		transferEvent(common.HexToHash("0x07"), common.Address{}, 5),
		erc20,
	}))
	s.Empty(s.returned())
}

func (s *custodySuite) TestInfrastructureErrorStopsBatch() {
	hash := common.HexToHash("0x08")
	errDb := errors.New("db down")
	s.sentWith(hash, nft, safeTransfer(42, terms))
	s.engine.On("ReceiveNft", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, errDb).Once()

	err := s.handler.ProcessEvents(ctx.Background(), []tracker.Event{
		transferEvent(hash, seller, 42),
		transferEvent(common.HexToHash("0x09"), seller, 43),
	})
	s.ErrorIs(err, errDb)
	s.Empty(s.returned())
}

func (s *custodySuite) TestUnknownTransactionIsRetried() {
	hash := common.HexToHash("0x0a")
	errRpc := errors.New("rpc down")
	s.client.On("TransactionByHash", mock.Anything, chainId, hash).Return(nil, false, errRpc).Once()

	err := s.handler.ProcessEvents(ctx.Background(), []tracker.Event{transferEvent(hash, seller, 42)})
	s.ErrorIs(err, errRpc)
	s.Empty(s.returned())
}
