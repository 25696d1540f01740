package market

import "fmt"

type Coin struct {
	Denom  string `json:"denom" bson:"denom"`
	Amount Amount `json:"amount" bson:"amount"`
}

func NewCoin(amount Amount, denom string) Coin {
	return Coin{Denom: denom, Amount: amount}
}

// String renders the coin the way it appears in response attributes, e.g. "100 uatom".
func (c Coin) String() string {
	return fmt.Sprintf("%s %s", c.Amount.String(), c.Denom)
}

// OneCoin extracts the single attached payment and checks it against the native denomination.
func OneCoin(funds []Coin, denom string) (Coin, error) {
	switch len(funds) {
	case 0:
		return Coin{}, ErrNoFunds
	case 1:
	default:
		return Coin{}, ErrMultipleDenoms
	}

	c := funds[0]
	if c.Amount.IsZero() {
		return Coin{}, ErrNoFunds
	}
	if c.Denom != denom {
		return Coin{}, ErrDenomNotMatch
	}
	return c, nil
}
