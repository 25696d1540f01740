package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/market"
	"github.com/x-xyz/marketplace/domain/outbox"
	"github.com/x-xyz/marketplace/service/query"
)

type recordSuite struct {
	suite.Suite

	repo outbox.Repo
}

func TestRecordSuite(t *testing.T) {
	suite.Run(t, new(recordSuite))
}

func (s *recordSuite) SetupTest() {
	s.repo = NewRecordRepo(query.NewMemory())
}

func (s *recordSuite) TestInsertFindPatch() {
	c := ctx.Background()
	now := time.Date(2022, 5, 1, 0, 0, 0, 0, time.UTC)

	records := []*outbox.Record{
		{Id: "b", OfferingId: "1", Action: market.ActionMakeOrder, Seq: 1, Status: outbox.StatusPending, CreatedAt: now,
			Message: market.NewNftTransfer("0xnft", "0xbuyer", "7")},
		{Id: "a", OfferingId: "1", Action: market.ActionMakeOrder, Seq: 0, Status: outbox.StatusPending, CreatedAt: now,
			Message: market.NewBankSend("0xseller", market.NewCoin(market.NewAmount(100), "uusd"))},
		{Id: "c", OfferingId: "2", Action: market.ActionWithdrawNft, Seq: 0, Status: outbox.StatusSent, CreatedAt: now.Add(time.Second),
			Message: market.NewNftTransfer("0xnft", "0xseller", "8")},
	}
	for _, r := range records {
		s.NoError(s.repo.Insert(c, r))
	}

	pending, err := s.repo.FindAll(c, outbox.WithStatus(outbox.StatusPending))
	s.NoError(err)
	s.Len(pending, 2)
	s.Equal("a", pending[0].Id)
	s.Equal("b", pending[1].Id)
	s.Equal("100 uusd", pending[0].Message.BankSend.Amount[0].String())
	s.Equal(domain.TokenId("7"), pending[1].Message.NftTransfer.TokenId)

	byOffering, err := s.repo.FindAll(c, outbox.WithOfferingId("2"))
	s.NoError(err)
	s.Len(byOffering, 1)

	sent := outbox.StatusSent
	attempts := 1
	hash := domain.TxHash("0xhash")
	s.NoError(s.repo.Patch(c, "a", &outbox.RecordPatchable{Status: &sent, Attempts: &attempts, TxHash: &hash}))

	got, err := s.repo.FindOne(c, "a")
	s.NoError(err)
	s.Equal(outbox.StatusSent, got.Status)
	s.Equal(1, got.Attempts)
	s.Equal(hash, got.TxHash)
	// untouched fields survive the patch
	s.Equal(market.ActionMakeOrder, got.Action)

	_, err = s.repo.FindOne(c, "missing")
	s.ErrorIs(err, query.ErrNotFound)
	s.ErrorIs(s.repo.Patch(c, "missing", &outbox.RecordPatchable{Status: &sent}), query.ErrNotFound)
}
