package market

import (
	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
)

type MessageKind string

const (
	MessageKindBankSend    MessageKind = "bank_send"
	MessageKindNftTransfer MessageKind = "nft_transfer"
)

// BankSend pays native currency out of escrow.
type BankSend struct {
	ToAddress domain.Address `json:"to_address" bson:"toAddress"`
	Amount    []Coin         `json:"amount" bson:"amount"`
}

// NftTransfer moves a token out of custody.
type NftTransfer struct {
	Contract  domain.Address `json:"contract_addr" bson:"contract"`
	Recipient domain.Address `json:"recipient" bson:"recipient"`
	TokenId   domain.TokenId `json:"token_id" bson:"tokenId"`
}

// Message is one instruction the host executes after a command commits.
type Message struct {
	Kind        MessageKind  `json:"kind" bson:"kind"`
	BankSend    *BankSend    `json:"bank_send,omitempty" bson:"bankSend,omitempty"`
	NftTransfer *NftTransfer `json:"nft_transfer,omitempty" bson:"nftTransfer,omitempty"`
}

func NewBankSend(to domain.Address, coin Coin) Message {
	return Message{
		Kind:     MessageKindBankSend,
		BankSend: &BankSend{ToAddress: to, Amount: []Coin{coin}},
	}
}

func NewNftTransfer(contract, recipient domain.Address, tokenId domain.TokenId) Message {
	return Message{
		Kind:        MessageKindNftTransfer,
		NftTransfer: &NftTransfer{Contract: contract, Recipient: recipient, TokenId: tokenId},
	}
}

type Attribute struct {
	Key   string `json:"key" bson:"key"`
	Value string `json:"value" bson:"value"`
}

type Response struct {
	Messages   []Message   `json:"messages"`
	Attributes []Attribute `json:"attributes"`
}

func NewResponse() *Response {
	return &Response{Messages: []Message{}, Attributes: []Attribute{}}
}

func (r *Response) AddMessage(msg Message) *Response {
	r.Messages = append(r.Messages, msg)
	return r
}

// AddPayment appends a bank send unless the amount is zero.
func (r *Response) AddPayment(to domain.Address, coin Coin) *Response {
	if coin.Amount.IsZero() {
		return r
	}
	return r.AddMessage(NewBankSend(to, coin))
}

func (r *Response) AddAttribute(key, value string) *Response {
	r.Attributes = append(r.Attributes, Attribute{Key: key, Value: value})
	return r
}

// Attribute returns the first attribute value under key.
func (r *Response) Attribute(key string) (string, bool) {
	for _, a := range r.Attributes {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// Dispatcher hands emitted messages to the host. Implementations must enlist
// in the ctx transaction so messages persist only with the state they belong to.
type Dispatcher interface {
	Dispatch(ctx ctx.Ctx, offeringId, action string, msgs []Message) error
}
