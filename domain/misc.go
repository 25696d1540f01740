package domain

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/xerrors"
)

type ChainId int64

type Address string

const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

// ParseAddress validates a hex account address and returns its lower case form.
func ParseAddress(s string) (Address, error) {
	if !common.IsHexAddress(s) {
		return "", xerrors.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	return Address(s).ToLower(), nil
}

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerPtr() *Address {
	res := a.ToLower()
	return &res
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

func (a Address) ToHex() common.Address {
	return common.HexToAddress(string(a))
}

func (a Address) String() string {
	return string(a)
}

type TokenId string

func (i TokenId) String() string {
	return string(i)
}

func (i TokenId) ToBigInt() (*big.Int, error) {
	id, ok := new(big.Int).SetString(i.String(), 10)
	if !ok {
		return nil, xerrors.Errorf("invalid id %s", i)
	}
	return id, nil
}

type TxHash string

func (h TxHash) ToLower() TxHash {
	return TxHash(strings.ToLower(string(h)))
}

func (h TxHash) ToHex() common.Hash {
	return common.HexToHash(string(h))
}

// ParseTxHash validates a 32 byte hex transaction hash and returns its lower case form.
func ParseTxHash(s string) (TxHash, error) {
	s = strings.TrimSpace(s)
	if len(s) != 66 || !strings.HasPrefix(s, "0x") {
		return "", xerrors.Errorf("%w: tx hash %q", ErrBadParamInput, s)
	}
	for _, c := range s[2:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return "", xerrors.Errorf("%w: tx hash %q", ErrBadParamInput, s)
		}
	}
	return TxHash(s).ToLower(), nil
}
