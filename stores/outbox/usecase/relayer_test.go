package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/x-xyz/marketplace/base/backoff"
	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/keys"
	"github.com/x-xyz/marketplace/domain/market"
	"github.com/x-xyz/marketplace/domain/outbox"
	"github.com/x-xyz/marketplace/domain/outbox/mocks"
	"github.com/x-xyz/marketplace/service/query"
	"github.com/x-xyz/marketplace/service/redis"
	redisMocks "github.com/x-xyz/marketplace/service/redis/mocks"
	"github.com/x-xyz/marketplace/stores/outbox/repository"
)

type relayerSuite struct {
	suite.Suite

	q          query.Mongo
	repo       outbox.Repo
	executor   *mocks.Executor
	dispatcher market.Dispatcher
}

func TestRelayerSuite(t *testing.T) {
	suite.Run(t, new(relayerSuite))
}

func (s *relayerSuite) SetupTest() {
	s.q = query.NewMemory()
	s.repo = repository.NewRecordRepo(s.q)
	s.executor = mocks.NewExecutor(s.T())
	s.dispatcher = NewDispatcher(s.repo)
}

func (s *relayerSuite) relayer(redis redis.Service) outbox.Relayer {
	return NewRelayer(&RelayerCfg{
		Repo:        s.repo,
		Executor:    s.executor,
		Redis:       redis,
		InstanceId:  "relayer-1",
		MaxAttempts: 3,
		RetryStart:  time.Millisecond,
		RetryLimit:  time.Millisecond,
	})
}

func (s *relayerSuite) dispatch(msgs ...market.Message) {
	s.Require().NoError(s.dispatcher.Dispatch(ctx.Background(), "1", market.ActionMakeOrder, msgs))
}

func (s *relayerSuite) TestDispatchKeepsOrder() {
	pay := market.NewBankSend("0xseller", market.NewCoin(market.NewAmount(10), "uusd"))
	nft := market.NewNftTransfer("0xnft", "0xbuyer", "1")
	s.dispatch(pay, nft)

	records, err := s.repo.FindAll(ctx.Background(), outbox.WithOfferingId("1"))
	s.NoError(err)
	s.Len(records, 2)
	s.Equal(market.MessageKindBankSend, records[0].Message.Kind)
	s.Equal(market.MessageKindNftTransfer, records[1].Message.Kind)
	for i, r := range records {
		s.Equal(i, r.Seq)
		s.Equal(outbox.StatusPending, r.Status)
		s.Equal(market.ActionMakeOrder, r.Action)
		s.NotEmpty(r.Id)
	}
}

func (s *relayerSuite) TestDispatchInsideAbortedTransaction() {
	errAbort := errors.New("abort")
	err := s.q.RunWithTransaction(ctx.Background(), func(c ctx.Ctx) error {
		s.NoError(s.dispatcher.Dispatch(c, "1", market.ActionBid, []market.Message{
			market.NewBankSend("0xbidder", market.NewCoin(market.NewAmount(1), "uusd")),
		}))
		return errAbort
	})
	s.ErrorIs(err, errAbort)

	records, err := s.repo.FindAll(ctx.Background())
	s.NoError(err)
	s.Empty(records)
}

func (s *relayerSuite) TestRelayPendingSendsInOrder() {
	pay := market.NewBankSend("0xseller", market.NewCoin(market.NewAmount(10), "uusd"))
	nft := market.NewNftTransfer("0xnft", "0xbuyer", "1")
	s.dispatch(pay, nft)

	call := 0
	s.executor.On("Execute", mock.Anything, pay).Run(func(mock.Arguments) {
		s.Equal(0, call)
		call++
	}).Return(domain.TxHash("0x01"), nil).Once()
	s.executor.On("Execute", mock.Anything, nft).Run(func(mock.Arguments) {
		s.Equal(1, call)
		call++
	}).Return(domain.TxHash("0x02"), nil).Once()

	sent, err := s.relayer(nil).RelayPending(ctx.Background())
	s.NoError(err)
	s.Equal(2, sent)

	records, err := s.repo.FindAll(ctx.Background(), outbox.WithStatus(outbox.StatusSent))
	s.NoError(err)
	s.Len(records, 2)
	s.Equal(domain.TxHash("0x01"), records[0].TxHash)
	s.Equal(1, records[0].Attempts)
}

func (s *relayerSuite) TestRelayRetriesThenFails() {
	pay := market.NewBankSend("0xseller", market.NewCoin(market.NewAmount(10), "uusd"))
	s.dispatch(pay)

	errRpc := errors.New("rpc down")
	s.executor.On("Execute", mock.Anything, pay).Return(domain.TxHash(""), errRpc).Times(3)

	sent, err := s.relayer(nil).RelayPending(ctx.Background())
	s.NoError(err)
	s.Equal(0, sent)

	records, err := s.repo.FindAll(ctx.Background(), outbox.WithStatus(outbox.StatusFailed))
	s.NoError(err)
	s.Len(records, 1)
	s.Equal(3, records[0].Attempts)
	s.Equal("rpc down", records[0].LastError)
}

func (s *relayerSuite) TestRelayRetrySucceeds() {
	pay := market.NewBankSend("0xseller", market.NewCoin(market.NewAmount(10), "uusd"))
	s.dispatch(pay)

	s.executor.On("Execute", mock.Anything, pay).Return(domain.TxHash(""), errors.New("nonce too low")).Once()
	s.executor.On("Execute", mock.Anything, pay).Return(domain.TxHash("0x03"), nil).Once()

	sent, err := s.relayer(nil).RelayPending(ctx.Background())
	s.NoError(err)
	s.Equal(1, sent)

	records, err := s.repo.FindAll(ctx.Background())
	s.NoError(err)
	s.Equal(outbox.StatusSent, records[0].Status)
	s.Equal(2, records[0].Attempts)
}

func (s *relayerSuite) TestPermanentErrorStopsAtOnce() {
	msg := market.Message{Kind: "teleport"}
	s.dispatch(msg)

	s.executor.On("Execute", mock.Anything, msg).Return(domain.TxHash(""), backoff.Permanent(outbox.ErrUnknownMessageKind)).Once()

	_, err := s.relayer(nil).RelayPending(ctx.Background())
	s.NoError(err)

	records, err := s.repo.FindAll(ctx.Background(), outbox.WithStatus(outbox.StatusFailed))
	s.NoError(err)
	s.Len(records, 1)
	s.Equal(1, records[0].Attempts)
}

func (s *relayerSuite) TestLease() {
	key := keys.RedisKey(keys.PfxRelayerLock)

	held := redisMocks.NewService(s.T())
	held.On("SetNX", mock.Anything, key, []byte("relayer-1"), defaultLeaseTtl).Return(redis.ErrNotSet).Once()
	held.On("Get", mock.Anything, key).Return([]byte("relayer-2"), nil).Once()

	_, err := s.relayer(held).RelayPending(ctx.Background())
	s.ErrorIs(err, outbox.ErrLeaseHeld)

	renew := redisMocks.NewService(s.T())
	renew.On("SetNX", mock.Anything, key, []byte("relayer-1"), defaultLeaseTtl).Return(redis.ErrNotSet).Once()
	renew.On("Get", mock.Anything, key).Return([]byte("relayer-1"), nil).Once()
	renew.On("Expire", mock.Anything, key, defaultLeaseTtl).Return(nil).Once()

	sent, err := s.relayer(renew).RelayPending(ctx.Background())
	s.NoError(err)
	s.Equal(0, sent)
}

func (s *relayerSuite) TestConfirmSent() {
	ok := market.NewBankSend("0xa", market.NewCoin(market.NewAmount(1), "uusd"))
	reverted := market.NewBankSend("0xb", market.NewCoin(market.NewAmount(2), "uusd"))
	waiting := market.NewBankSend("0xc", market.NewCoin(market.NewAmount(3), "uusd"))
	s.dispatch(ok, reverted, waiting)

	s.executor.On("Execute", mock.Anything, ok).Return(domain.TxHash("0x0a"), nil).Once()
	s.executor.On("Execute", mock.Anything, reverted).Return(domain.TxHash("0x0b"), nil).Once()
	s.executor.On("Execute", mock.Anything, waiting).Return(domain.TxHash("0x0c"), nil).Once()
	r := s.relayer(nil)
	_, err := r.RelayPending(ctx.Background())
	s.NoError(err)

	s.executor.On("Receipt", mock.Anything, domain.TxHash("0x0a")).Return(true, true, nil).Once()
	s.executor.On("Receipt", mock.Anything, domain.TxHash("0x0b")).Return(true, false, nil).Once()
	s.executor.On("Receipt", mock.Anything, domain.TxHash("0x0c")).Return(false, false, nil).Once()

	settled, err := r.ConfirmSent(ctx.Background())
	s.NoError(err)
	s.Equal(2, settled)

	confirmed, err := s.repo.FindAll(ctx.Background(), outbox.WithStatus(outbox.StatusConfirmed))
	s.NoError(err)
	s.Len(confirmed, 1)
	s.Equal(domain.TxHash("0x0a"), confirmed[0].TxHash)

	pending, err := s.repo.FindAll(ctx.Background(), outbox.WithStatus(outbox.StatusPending))
	s.NoError(err)
	s.Len(pending, 1)
	s.Equal(domain.TxHash("0x0b"), pending[0].TxHash)

	sent, err := s.repo.FindAll(ctx.Background(), outbox.WithStatus(outbox.StatusSent))
	s.NoError(err)
	s.Len(sent, 1)
}

func (s *relayerSuite) TestRevertsCountTowardAttempts() {
	c := ctx.Background()
	pay := market.NewBankSend("0xseller", market.NewCoin(market.NewAmount(10), "uusd"))
	s.dispatch(pay)

	s.executor.On("Execute", mock.Anything, pay).Return(domain.TxHash("0x0d"), nil).Times(2)
	s.executor.On("Receipt", mock.Anything, domain.TxHash("0x0d")).Return(true, false, nil).Times(2)

	r := s.relayer(nil)
	for i := 0; i < 6; i++ {
		_, err := r.RelayPending(c)
		s.NoError(err)
		_, err = r.ConfirmSent(c)
		s.NoError(err)
	}

	records, err := s.repo.FindAll(c)
	s.NoError(err)
	s.Require().Len(records, 1)
	s.Equal(outbox.StatusFailed, records[0].Status)
	s.Equal(4, records[0].Attempts)
	s.Equal("transaction reverted: 0x0d", records[0].LastError)
}

func (s *relayerSuite) TestExhaustedRecordIsNotSent() {
	c := ctx.Background()
	s.Require().NoError(s.repo.Insert(c, &outbox.Record{
		Id:           "spent",
		SettlementId: "s1",
		OfferingId:   "1",
		Action:       market.ActionBid,
		Message:      market.NewBankSend("0xbidder", market.NewCoin(market.NewAmount(1), "uusd")),
		Status:       outbox.StatusPending,
		Attempts:     3,
	}))

	sent, err := s.relayer(nil).RelayPending(c)
	s.NoError(err)
	s.Equal(0, sent)

	got, err := s.repo.FindOne(c, "spent")
	s.NoError(err)
	s.Equal(outbox.StatusFailed, got.Status)
	s.Equal(3, got.Attempts)
	s.Equal(outbox.ErrAttemptsExhausted.Error(), got.LastError)
}

func (s *relayerSuite) TestFailedMessageAbortsRestOfSettlement() {
	c := ctx.Background()
	pay := market.NewBankSend("0xseller", market.NewCoin(market.NewAmount(10), "uusd"))
	nft := market.NewNftTransfer("0xnft", "0xbuyer", "1")
	s.dispatch(pay, nft)
	// another settlement on the same offering keeps going
	other := market.NewBankSend("0xbidder", market.NewCoin(market.NewAmount(5), "uusd"))
	s.dispatch(other)

	s.executor.On("Execute", mock.Anything, pay).Return(domain.TxHash(""), errors.New("insufficient funds")).Times(3)
	s.executor.On("Execute", mock.Anything, other).Return(domain.TxHash("0x0e"), nil).Once()

	r := s.relayer(nil)
	sent, err := r.RelayPending(c)
	s.NoError(err)
	s.Equal(1, sent)

	failed, err := s.repo.FindAll(c, outbox.WithStatus(outbox.StatusFailed))
	s.NoError(err)
	s.Require().Len(failed, 1)
	s.Equal(pay, failed[0].Message)

	aborted, err := s.repo.FindAll(c, outbox.WithStatus(outbox.StatusAborted))
	s.NoError(err)
	s.Require().Len(aborted, 1)
	s.Equal(nft, aborted[0].Message)
	s.Equal(0, aborted[0].Attempts)
	s.Equal(failed[0].SettlementId, aborted[0].SettlementId)
	s.Contains(aborted[0].LastError, failed[0].Id)

	delivered, err := s.repo.FindAll(c, outbox.WithStatus(outbox.StatusSent))
	s.NoError(err)
	s.Require().Len(delivered, 1)
	s.Equal(domain.TxHash("0x0e"), delivered[0].TxHash)

	// nothing of the halted settlement goes out later
	sent, err = r.RelayPending(c)
	s.NoError(err)
	s.Equal(0, sent)
}
