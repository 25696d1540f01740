package contract

import (
	"math/big"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	baseabi "github.com/x-xyz/marketplace/base/abi"
	bCtx "github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/service/chain"
)

// Erc2981Contract reads the NFT royalty standard
type Erc2981Contract interface {
	SupportsRoyalty(ctx bCtx.Ctx, chainId domain.ChainId, addr string) (bool, error)
	RoyaltyInfo(ctx bCtx.Ctx, chainId domain.ChainId, addr string, tokenId *big.Int, salePrice *big.Int) (string, *big.Int, error)
}

type Erc2981 struct {
	chainService       chain.Client
	abi                ethabi.ABI
	erc2981InterfaceId [4]byte
}

func NewErc2981(chainService chain.Client) Erc2981Contract {
	var interfaceId [4]byte
	copy(interfaceId[:], common.Hex2Bytes("2a55205a"))
	return &Erc2981{
		abi:                baseabi.ERC2981ABI,
		chainService:       chainService,
		erc2981InterfaceId: interfaceId,
	}
}

func (e *Erc2981) SupportsRoyalty(ctx bCtx.Ctx, chainId domain.ChainId, addr string) (bool, error) {
	unpacked, err := e.chainService.Call(ctx, chainId, common.HexToAddress(addr), nil, e.abi, "supportsInterface", e.erc2981InterfaceId)
	if err != nil {
		return false, err
	}
	return unpacked[0].(bool), nil
}

func (e *Erc2981) RoyaltyInfo(ctx bCtx.Ctx, chainId domain.ChainId, addr string, tokenId *big.Int, salePrice *big.Int) (string, *big.Int, error) {
	unpacked, err := e.chainService.Call(ctx, chainId, common.HexToAddress(addr), nil, e.abi, "royaltyInfo", tokenId, salePrice)
	if err != nil {
		return "", nil, err
	}
	return unpacked[0].(common.Address).String(), unpacked[1].(*big.Int), nil
}
