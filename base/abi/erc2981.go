package abi

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

var ERC2981ABI abi.ABI

var erc2981ABI = `[{"type":"function","name":"supportsInterface","constant":true,"stateMutability":"view","payable":false,"inputs":[{"type":"bytes4","name":"interfaceId"}],"outputs":[{"type":"bool"}]},{"type":"function","name":"royaltyInfo","constant":true,"stateMutability":"view","payable":false,"inputs":[{"type":"uint256","name":"tokenId"},{"type":"uint256","name":"salePrice"}],"outputs":[{"type":"address","name":"receiver"},{"type":"uint256","name":"royaltyAmount"}]}]`

func init() {
	_abi, err := abi.JSON(strings.NewReader(erc2981ABI))
	if err != nil {
		panic("Failed to parse erc2981 abi")
	}
	ERC2981ABI = _abi
}
