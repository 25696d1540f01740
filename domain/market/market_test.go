package market

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
)

type marketSuite struct {
	suite.Suite
}

func TestMarketSuite(t *testing.T) {
	suite.Run(t, new(marketSuite))
}

func (s *marketSuite) TestAmountArithmetic() {
	a := NewAmount(100)
	b := NewAmount(30)

	sum, err := a.Add(b)
	s.NoError(err)
	s.Equal("130", sum.String())

	diff, err := a.Sub(b)
	s.NoError(err)
	s.Equal("70", diff.String())

	_, err = b.Sub(a)
	s.ErrorIs(err, ErrOverflow)

	max := MustParseAmount("340282366920938463463374607431768211455")
	_, err = max.Add(NewAmount(1))
	s.ErrorIs(err, ErrOverflow)

	_, err = ParseAmount("340282366920938463463374607431768211456")
	s.ErrorIs(err, ErrOverflow)

	for _, in := range []string{"", "-1", "1.5", "0x10", " 1"} {
		_, err := ParseAmount(in)
		s.Error(err, in)
	}

	s.True(Amount{}.IsZero())
	s.Equal("0", Amount{}.String())
}

func (s *marketSuite) TestAmountMulFloor() {
	cases := []struct {
		amount string
		share  string
		want   string
	}{
		{"1000", "0.1", "100"},
		{"999", "0.1", "99"},
		{"1", "0.5", "0"},
		{"7", "1", "7"},
		{"7", "0", "0"},
		{"340282366920938463463374607431768211455", "0.5", "170141183460469231731687303715884105727"},
	}
	for _, c := range cases {
		got := MustParseAmount(c.amount).MulFloor(MustParseFraction(c.share))
		s.Equal(c.want, got.String(), c.amount+"*"+c.share)
	}
}

func (s *marketSuite) TestFractionBounds() {
	_, err := ParseFraction("1.01")
	s.ErrorIs(err, ErrInvalidShare)
	_, err = ParseFraction("-0.1")
	s.ErrorIs(err, ErrInvalidShare)
	_, err = ParseFraction("abc")
	s.ErrorIs(err, ErrInvalidShare)
	f, err := ParseFraction("0.025")
	s.NoError(err)
	s.Equal("0.025", f.String())
}

func (s *marketSuite) TestAmountCodec() {
	type doc struct {
		Price Amount   `json:"price" bson:"price"`
		Inc   *Amount  `json:"inc" bson:"inc"`
		Share Fraction `json:"share" bson:"share"`
	}
	in := doc{Price: MustParseAmount("123456789012345678901234567890"), Share: MustParseFraction("0.05")}

	raw, err := json.Marshal(in)
	s.NoError(err)
	s.JSONEq(`{"price":"123456789012345678901234567890","inc":null,"share":"0.05"}`, string(raw))

	out := doc{}
	s.NoError(json.Unmarshal(raw, &out))
	s.True(in.Price.Equal(out.Price))
	s.Nil(out.Inc)
	s.True(in.Share.Equal(out.Share))

	b, err := bson.Marshal(in)
	s.NoError(err)
	s.Equal("123456789012345678901234567890", bson.Raw(b).Lookup("price").StringValue())
	outB := doc{}
	s.NoError(bson.Unmarshal(b, &outB))
	s.True(in.Price.Equal(outB.Price))
	s.True(in.Share.Equal(outB.Share))

	s.Error(json.Unmarshal([]byte(`{"price":100}`), &out))
}

func (s *marketSuite) TestOneCoin() {
	denom := "uusd"
	cases := []struct {
		name  string
		funds []Coin
		err   error
	}{
		{"no coins", nil, ErrNoFunds},
		{"zero amount", []Coin{NewCoin(NewAmount(0), denom)}, ErrNoFunds},
		{"two coins", []Coin{NewCoin(NewAmount(1), denom), NewCoin(NewAmount(1), "other")}, ErrMultipleDenoms},
		{"wrong denom", []Coin{NewCoin(NewAmount(5), "other")}, ErrDenomNotMatch},
		{"ok", []Coin{NewCoin(NewAmount(5), denom)}, nil},
	}
	for _, c := range cases {
		coin, err := OneCoin(c.funds, denom)
		if c.err != nil {
			s.ErrorIs(err, c.err, c.name)
			continue
		}
		s.NoError(err, c.name)
		s.Equal("5 uusd", coin.String())
	}
}

func (s *marketSuite) TestExpiration() {
	now := time.Date(2022, 5, 1, 0, 0, 0, 0, time.UTC)
	env := Env{Height: 100, Time: now}

	s.True(AtHeight(100).IsExpired(env))
	s.False(AtHeight(101).IsExpired(env))
	s.True(AtTime(now).IsExpired(env))
	s.False(AtTime(now.Add(time.Nanosecond)).IsExpired(env))
	s.False(Never().IsExpired(env))

	cases := []struct {
		raw  string
		want Expiration
	}{
		{`{"at_height":42}`, AtHeight(42)},
		{`{"at_time":"1651363200000000000"}`, AtTime(now)},
		{`{"never":{}}`, Never()},
	}
	for _, c := range cases {
		e := Expiration{}
		s.NoError(json.Unmarshal([]byte(c.raw), &e), c.raw)
		s.Equal(c.want.Kind, e.Kind)
		s.Equal(c.want.Height, e.Height)
		s.True(c.want.Time.Equal(e.Time))

		raw, err := json.Marshal(e)
		s.NoError(err)
		s.JSONEq(c.raw, string(raw))
	}

	for _, raw := range []string{`{}`, `{"at_height":1,"never":{}}`, `{"at_time":"soon"}`} {
		e := Expiration{}
		s.ErrorIs(json.Unmarshal([]byte(raw), &e), ErrInvalidExpiration, raw)
	}
}

func (s *marketSuite) TestDecodeSaleType() {
	st, err := DecodeSaleType([]byte(`{"fixed_price":"1000"}`))
	s.NoError(err)
	s.True(st.IsFixedPrice())
	s.Equal("1000", st.FixedPrice.String())

	st, err = DecodeSaleType([]byte(`{"auction":{"start_price":"10","increase_per_bid":"5","expiration":{"at_height":99}}}`))
	s.NoError(err)
	s.True(st.IsAuction())
	s.Equal("10", st.Auction.StartPrice.String())
	s.Equal("5", st.Auction.MinIncrement().String())
	s.Equal(AtHeight(99), st.Auction.Expiration)

	st, err = DecodeSaleType([]byte(`{"auction":{"start_price":"10","increase_per_bid":null,"expiration":{"never":{}}}}`))
	s.NoError(err)
	s.True(st.Auction.MinIncrement().IsZero())

	_, err = DecodeSaleType([]byte(`{"auction":{"start_price":"10"}}`))
	s.ErrorIs(err, ErrInvalidExpiration)

	_, err = DecodeSaleType([]byte(`{"fixed_price":"1","auction":{"start_price":"1","expiration":{"never":{}}}}`))
	s.ErrorIs(err, ErrInvalidSaleType)

	_, err = DecodeSaleType([]byte(`not json`))
	s.ErrorIs(err, ErrInvalidSaleType)

	_, err = DecodeSaleType([]byte(`{"fixed_price":"-1"}`))
	s.ErrorIs(err, ErrInvalidSaleType)
}

func (s *marketSuite) TestSaleTypeBsonRoundTrip() {
	inc := NewAmount(3)
	at := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	in := NewAuction(AuctionTerms{StartPrice: NewAmount(10), IncreasePerBid: &inc, Expiration: AtTime(at)})

	b, err := bson.Marshal(in)
	s.NoError(err)
	out := SaleType{}
	s.NoError(bson.Unmarshal(b, &out))
	s.NoError(out.Validate())
	s.True(out.IsAuction())
	s.Equal("10", out.Auction.StartPrice.String())
	s.Equal("3", out.Auction.IncreasePerBid.String())
	s.True(at.Equal(out.Auction.Expiration.Time))
}

func TestRoyaltySplit(t *testing.T) {
	req := require.New(t)

	var none *Royalty
	fee, net := none.Split(NewAmount(1000))
	req.True(fee.IsZero())
	req.Equal("1000", net.String())

	r := &Royalty{PaymentAddress: "0x1", Share: MustParseFraction("0.1")}
	fee, net = r.Split(NewAmount(999))
	req.Equal("99", fee.String())
	req.Equal("900", net.String())

	full := &Royalty{PaymentAddress: "0x1", Share: MustParseFraction("1")}
	fee, net = full.Split(NewAmount(5))
	req.Equal("5", fee.String())
	req.True(net.IsZero())
}

func TestExecuteMsgName(t *testing.T) {
	req := require.New(t)

	msg := ExecuteMsg{}
	req.NoError(json.Unmarshal([]byte(`{"update_price":{"offering_id":"3","update_price":"70"}}`), &msg))
	name, err := msg.Name()
	req.NoError(err)
	req.Equal("update_price", name)
	req.Equal("70", msg.UpdatePrice.UpdatePrice.String())

	_, err = ExecuteMsg{}.Name()
	req.ErrorIs(err, ErrInvalidCommand)

	_, err = ExecuteMsg{Bid: &OfferingMsg{"1"}, CloseBid: &OfferingMsg{"1"}}.Name()
	req.ErrorIs(err, ErrInvalidCommand)
}

func TestResponseAddPaymentSkipsZero(t *testing.T) {
	req := require.New(t)
	res := NewResponse().
		AddPayment("0x1", NewCoin(NewAmount(0), "uusd")).
		AddPayment("0x2", NewCoin(NewAmount(1), "uusd")).
		AddAttribute("action", "bid")
	req.Len(res.Messages, 1)
	req.Equal(MessageKindBankSend, res.Messages[0].Kind)
	v, ok := res.Attribute("action")
	req.True(ok)
	req.Equal("bid", v)
}
