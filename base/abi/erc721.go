package abi

import (
	"bytes"
	"errors"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var (
	ERC721TokenABI abi.ABI
	// ERC721SafeTransferWithDataABI holds the four argument safeTransferFrom,
	// whose data argument carries the sale terms of a listing.
	ERC721SafeTransferWithDataABI abi.ABI

	ErrNotTransferLog = errors.New("not an erc721 transfer log")
)

// only the three argument safeTransferFrom overload is declared, abi.JSON renames overloads
var erc721ABI = `[{"type":"function","name":"supportsInterface","constant":true,"stateMutability":"view","payable":false,"inputs":[{"type":"bytes4","name":"interfaceId"}],"outputs":[{"type":"bool"}]},{"type":"function","name":"ownerOf","constant":true,"stateMutability":"view","payable":false,"inputs":[{"type":"uint256","name":"tokenId"}],"outputs":[{"type":"address"}]},{"type":"function","name":"safeTransferFrom","constant":false,"stateMutability":"nonpayable","payable":false,"inputs":[{"type":"address","name":"from"},{"type":"address","name":"to"},{"type":"uint256","name":"tokenId"}],"outputs":[]},{"type":"function","name":"transferFrom","constant":false,"stateMutability":"nonpayable","payable":false,"inputs":[{"type":"address","name":"from"},{"type":"address","name":"to"},{"type":"uint256","name":"tokenId"}],"outputs":[]},{"type":"event","name":"Transfer","anonymous":false,"inputs":[{"type":"address","name":"from","indexed":true},{"type":"address","name":"to","indexed":true},{"type":"uint256","name":"tokenId","indexed":true}]}]`

var erc721SafeTransferWithDataABI = `[{"type":"function","name":"safeTransferFrom","constant":false,"stateMutability":"nonpayable","payable":false,"inputs":[{"type":"address","name":"from"},{"type":"address","name":"to"},{"type":"uint256","name":"tokenId"},{"type":"bytes","name":"data"}],"outputs":[]}]`

func init() {
	_abi, err := abi.JSON(strings.NewReader(erc721ABI))
	if err != nil {
		panic("Failed to parse erc721 abi")
	}
	ERC721TokenABI = _abi

	_abi, err = abi.JSON(strings.NewReader(erc721SafeTransferWithDataABI))
	if err != nil {
		panic("Failed to parse erc721 safeTransferFrom abi")
	}
	ERC721SafeTransferWithDataABI = _abi
}

type Erc721TransferLog struct {
	From    common.Address
	To      common.Address
	TokenId *big.Int
}

// ToErc721TransferLog reads the indexed fields. Erc20 Transfer shares the
// signature with one topic less, such logs are rejected.
func ToErc721TransferLog(log *types.Log) (*Erc721TransferLog, error) {
	if len(log.Topics) != 4 || log.Topics[0] != ERC721TokenABI.Events["Transfer"].ID {
		return nil, ErrNotTransferLog
	}
	return &Erc721TransferLog{
		From:    common.BytesToAddress(log.Topics[1].Bytes()),
		To:      common.BytesToAddress(log.Topics[2].Bytes()),
		TokenId: log.Topics[3].Big(),
	}, nil
}

type Erc721SafeTransferCall struct {
	From    common.Address
	To      common.Address
	TokenId *big.Int
	Data    []byte
}

// DecodeSafeTransferWithData decodes the input of a four argument
// safeTransferFrom call.
func DecodeSafeTransferWithData(input []byte) (*Erc721SafeTransferCall, error) {
	method := ERC721SafeTransferWithDataABI.Methods["safeTransferFrom"]
	if len(input) < 4 || !bytes.Equal(input[:4], method.ID) {
		return nil, errors.New("not a safeTransferFrom with data call")
	}
	args, err := method.Inputs.Unpack(input[4:])
	if err != nil {
		return nil, err
	}
	return &Erc721SafeTransferCall{
		From:    args[0].(common.Address),
		To:      args[1].(common.Address),
		TokenId: args[2].(*big.Int),
		Data:    args[3].([]byte),
	}, nil
}
