package market

import (
	"github.com/x-xyz/marketplace/domain"
)

// MessageInfo identifies who sends a command and what payment comes with it.
// Funds are taken as given. Deposit names a transfer into escrow whose value
// replaces Funds once the engine has claimed it.
type MessageInfo struct {
	Sender  domain.Address `json:"sender"`
	Funds   []Coin         `json:"funds"`
	Deposit domain.TxHash  `json:"deposit,omitempty"`
}

type InstantiateMsg struct {
	Admin        *string  `json:"admin"`
	Name         string   `json:"name"`
	NativeDenom  string   `json:"native_denom"`
	NftContracts []string `json:"nft_contracts"`
}

type AddNftContractMsg struct {
	Address string `json:"address"`
}

type OfferingMsg struct {
	OfferingId string `json:"offering_id"`
}

type UpdatePriceMsg struct {
	OfferingId  string `json:"offering_id"`
	UpdatePrice Amount `json:"update_price"`
}

// ReceiveNftMsg is the custody notification a trusted collection sends after
// moving a token to the marketplace. Msg carries the json encoded SaleType.
type ReceiveNftMsg struct {
	Sender  string `json:"sender"`
	TokenId string `json:"token_id"`
	Msg     []byte `json:"msg"`
}

const (
	ActionInstantiate    = "instantiate"
	ActionAddNftContract = "add_nft_contract"
	ActionWithdrawNft    = "withdraw_nft"
	ActionMakeOrder      = "make_order"
	ActionBid            = "bid"
	ActionSellerCloseBid = "seller_close_bid"
	ActionUpdatePrice    = "update_price"
	ActionCreateSale     = "create_sale"
	// ActionReturnNft sends back a token that reached escrow without a valid listing
	ActionReturnNft = "return_nft"
)

// ExecuteMsg is the tagged command set; exactly one field is set.
type ExecuteMsg struct {
	AddNftContract *AddNftContractMsg `json:"add_nft_contract,omitempty"`
	WithdrawNft    *OfferingMsg       `json:"withdraw_nft,omitempty"`
	MakeOffer      *OfferingMsg       `json:"make_offer,omitempty"`
	Bid            *OfferingMsg       `json:"bid,omitempty"`
	CloseBid       *OfferingMsg       `json:"close_bid,omitempty"`
	UpdatePrice    *UpdatePriceMsg    `json:"update_price,omitempty"`
	ReceiveNft     *ReceiveNftMsg     `json:"receive_nft,omitempty"`
}

// Name returns the command name used for logs and metrics.
func (m ExecuteMsg) Name() (string, error) {
	names := []string{}
	if m.AddNftContract != nil {
		names = append(names, "add_nft_contract")
	}
	if m.WithdrawNft != nil {
		names = append(names, "withdraw_nft")
	}
	if m.MakeOffer != nil {
		names = append(names, "make_offer")
	}
	if m.Bid != nil {
		names = append(names, "bid")
	}
	if m.CloseBid != nil {
		names = append(names, "close_bid")
	}
	if m.UpdatePrice != nil {
		names = append(names, "update_price")
	}
	if m.ReceiveNft != nil {
		names = append(names, "receive_nft")
	}
	if len(names) != 1 {
		return "", ErrInvalidCommand
	}
	return names[0], nil
}
