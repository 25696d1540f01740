package market

import (
	"encoding/json"
	"math/big"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"golang.org/x/xerrors"
)

var maxUint128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

// Amount is an unsigned 128 bit integer amount of the native denomination.
// It is stored as a decimal string both in json and bson.
type Amount struct {
	i *big.Int
}

func NewAmount(v uint64) Amount {
	return Amount{new(big.Int).SetUint64(v)}
}

func NewAmountFromBig(v *big.Int) (Amount, error) {
	if v == nil || v.Sign() < 0 || v.Cmp(maxUint128) > 0 {
		return Amount{}, ErrOverflow
	}
	return Amount{new(big.Int).Set(v)}, nil
}

func ParseAmount(s string) (Amount, error) {
	for _, c := range s {
		if c < '0' || c > '9' {
			return Amount{}, xerrors.Errorf("invalid amount %q", s)
		}
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Amount{}, xerrors.Errorf("invalid amount %q", s)
	}
	return NewAmountFromBig(v)
}

func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Amount) bigInt() *big.Int {
	if a.i == nil {
		return new(big.Int)
	}
	return a.i
}

// BigInt returns a copy of the underlying integer
func (a Amount) BigInt() *big.Int {
	return new(big.Int).Set(a.bigInt())
}

func (a Amount) IsZero() bool {
	return a.bigInt().Sign() == 0
}

func (a Amount) Cmp(b Amount) int {
	return a.bigInt().Cmp(b.bigInt())
}

func (a Amount) Equal(b Amount) bool {
	return a.Cmp(b) == 0
}

func (a Amount) Add(b Amount) (Amount, error) {
	return NewAmountFromBig(new(big.Int).Add(a.bigInt(), b.bigInt()))
}

func (a Amount) Sub(b Amount) (Amount, error) {
	return NewAmountFromBig(new(big.Int).Sub(a.bigInt(), b.bigInt()))
}

// MulFloor returns floor(a * f). f never exceeds one so the result never overflows.
func (a Amount) MulFloor(f Fraction) Amount {
	v := decimal.NewFromBigInt(a.bigInt(), 0).Mul(f.Decimal()).Floor().BigInt()
	return Amount{v}
}

func (a Amount) String() string {
	return a.bigInt().String()
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return xerrors.Errorf("amount must be a string: %w", err)
	}
	v, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

func (a Amount) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(a.String())
}

func (a *Amount) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	s, ok := bson.RawValue{Type: t, Value: data}.StringValueOK()
	if !ok {
		return xerrors.Errorf("amount: unexpected bson type %s", t)
	}
	v, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Fraction is a decimal share within [0, 1].
type Fraction struct {
	d decimal.Decimal
}

func NewFraction(d decimal.Decimal) (Fraction, error) {
	if d.IsNegative() || d.GreaterThan(decimal.NewFromInt(1)) {
		return Fraction{}, xerrors.Errorf("%w: %s", ErrInvalidShare, d.String())
	}
	return Fraction{d}, nil
}

func ParseFraction(s string) (Fraction, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Fraction{}, xerrors.Errorf("%w: %s", ErrInvalidShare, s)
	}
	return NewFraction(d)
}

func MustParseFraction(s string) Fraction {
	f, err := ParseFraction(s)
	if err != nil {
		panic(err)
	}
	return f
}

func (f Fraction) Decimal() decimal.Decimal {
	return f.d
}

func (f Fraction) IsZero() bool {
	return f.d.IsZero()
}

func (f Fraction) Equal(o Fraction) bool {
	return f.d.Equal(o.d)
}

func (f Fraction) String() string {
	return f.d.String()
}

func (f Fraction) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

func (f *Fraction) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return xerrors.Errorf("share must be a string: %w", err)
	}
	v, err := ParseFraction(s)
	if err != nil {
		return err
	}
	*f = v
	return nil
}

func (f Fraction) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(f.String())
}

func (f *Fraction) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	s, ok := bson.RawValue{Type: t, Value: data}.StringValueOK()
	if !ok {
		return xerrors.Errorf("share: unexpected bson type %s", t)
	}
	v, err := ParseFraction(s)
	if err != nil {
		return err
	}
	*f = v
	return nil
}
