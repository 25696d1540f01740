package usecase

import (
	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/market"
)

func (im *impl) AddNftContract(c ctx.Ctx, info market.MessageInfo, address string) (*market.Response, error) {
	return im.run(c, market.ActionAddNftContract, func(c ctx.Ctx) (*outcome, error) {
		if err := im.requireAdmin(c, info.Sender); err != nil {
			return nil, err
		}
		addr, err := domain.ParseAddress(address)
		if err != nil {
			return nil, err
		}

		nftContracts, err := im.contract.GetNftContracts(c)
		if err != nil {
			c.WithField("err", err).Error("contract.GetNftContracts failed")
			return nil, err
		}
		if !containsAddress(nftContracts, addr) {
			if err := im.contract.SetNftContracts(c, append(nftContracts, addr)); err != nil {
				c.WithField("err", err).Error("contract.SetNftContracts failed")
				return nil, err
			}
		}

		res := market.NewResponse().
			AddAttribute("action", market.ActionAddNftContract).
			AddAttribute("nft_contract", addr.String())
		return &outcome{res: res}, nil
	})
}

func (im *impl) WithdrawNft(c ctx.Ctx, info market.MessageInfo, offeringId string) (*market.Response, error) {
	return im.run(c, market.ActionWithdrawNft, func(c ctx.Ctx) (*outcome, error) {
		offering, err := im.registry.GetOffering(c, offeringId)
		if err != nil {
			return nil, err
		}
		if !offering.SaleType.IsFixedPrice() {
			return nil, market.ErrSaleTypeMustBeFixedPrice
		}
		if !offering.Seller.Equals(info.Sender) {
			return nil, market.ErrUnauthorized
		}

		if err := im.registry.RemoveListing(c, offeringId); err != nil {
			return nil, err
		}

		res := market.NewResponse().
			AddMessage(market.NewNftTransfer(offering.NftAddress, offering.Seller, offering.TokenId)).
			AddAttribute("action", market.ActionWithdrawNft).
			AddAttribute("seller", info.Sender.String()).
			AddAttribute("offering_id", offeringId)
		return &outcome{res: res, offeringId: offeringId}, nil
	})
}

func (im *impl) MakeOffer(c ctx.Ctx, env market.Env, info market.MessageInfo, offeringId string) (*market.Response, error) {
	return im.run(c, market.ActionMakeOrder, func(c ctx.Ctx) (*outcome, error) {
		contractInfo, err := im.contract.GetContractInfo(c)
		if err != nil {
			return nil, err
		}
		offering, err := im.registry.GetOffering(c, offeringId)
		if err != nil {
			return nil, err
		}
		if !offering.SaleType.IsFixedPrice() {
			return nil, market.ErrSaleTypeMustBeFixedPrice
		}
		paid, err := im.attached(c, info, market.ActionMakeOrder, offeringId, contractInfo.NativeDenom)
		if err != nil {
			return nil, err
		}
		price := *offering.SaleType.FixedPrice
		if paid.Amount.Cmp(price) < 0 {
			return nil, market.ErrInsufficientDeposit
		}
		// always >= 0 after the check above
		excess, _ := paid.Amount.Sub(price)

		res := market.NewResponse()
		fee, net := payout(res, offering, price, contractInfo.NativeDenom)
		res.AddPayment(info.Sender, market.NewCoin(excess, contractInfo.NativeDenom)).
			AddMessage(market.NewNftTransfer(offering.NftAddress, info.Sender, offering.TokenId))

		if err := im.registry.RemoveListing(c, offeringId); err != nil {
			return nil, err
		}

		addSaleAttributes(res, offering, info.Sender, market.NewCoin(price, contractInfo.NativeDenom), net, fee)
		return &outcome{
			res:        res,
			offeringId: offeringId,
			sale:       newSale(offering, info.Sender, market.NewCoin(price, contractInfo.NativeDenom), fee, env),
		}, nil
	})
}

func (im *impl) Bid(c ctx.Ctx, env market.Env, info market.MessageInfo, offeringId string) (*market.Response, error) {
	return im.run(c, market.ActionBid, func(c ctx.Ctx) (*outcome, error) {
		contractInfo, err := im.contract.GetContractInfo(c)
		if err != nil {
			return nil, err
		}
		offering, err := im.registry.GetOffering(c, offeringId)
		if err != nil {
			return nil, err
		}
		if !offering.SaleType.IsAuction() {
			return nil, market.ErrSaleTypeMustBeAuction
		}
		terms := offering.SaleType.Auction
		if terms.Expiration.IsExpired(env) {
			return nil, market.ErrBidExpiration
		}
		paid, err := im.attached(c, info, market.ActionBid, offeringId, contractInfo.NativeDenom)
		if err != nil {
			return nil, err
		}

		bid, err := im.registry.GetBidOffering(c, offeringId)
		if err != nil {
			return nil, err
		}

		res := market.NewResponse()
		if !bid.HasBid() {
			if paid.Amount.Cmp(terms.StartPrice) < 0 {
				return nil, market.ErrInsufficientDeposit
			}
		} else {
			floor, err := bid.HighestBidPrice.Add(terms.MinIncrement())
			if err != nil {
				return nil, err
			}
			if paid.Amount.Cmp(floor) <= 0 {
				return nil, market.ErrInsufficientDeposit
			}
			res.AddPayment(*bid.Address, market.NewCoin(*bid.HighestBidPrice, contractInfo.NativeDenom))
		}

		bid.Place(paid.Amount, info.Sender)
		if err := im.registry.SaveBidOffering(c, bid); err != nil {
			c.WithFields(log.Fields{
				"offeringId": offeringId,
				"err":        err,
			}).Error("registry.SaveBidOffering failed")
			return nil, err
		}

		res.AddAttribute("action", market.ActionBid).
			AddAttribute("bidder", info.Sender.String()).
			AddAttribute("price", paid.String()).
			AddAttribute("token_id", offering.TokenId.String()).
			AddAttribute("contract_addr", offering.NftAddress.String())
		return &outcome{res: res, offeringId: offeringId}, nil
	})
}

func (im *impl) CloseBid(c ctx.Ctx, env market.Env, info market.MessageInfo, offeringId string) (*market.Response, error) {
	// the action differs per path, the metric tag uses the command name
	return im.run(c, "close_bid", func(c ctx.Ctx) (*outcome, error) {
		contractInfo, err := im.contract.GetContractInfo(c)
		if err != nil {
			return nil, err
		}
		offering, err := im.registry.GetOffering(c, offeringId)
		if err != nil {
			return nil, err
		}
		if !offering.SaleType.IsAuction() {
			return nil, market.ErrSaleTypeMustBeAuction
		}
		bid, err := im.registry.GetBidOffering(c, offeringId)
		if err != nil {
			return nil, err
		}

		res := market.NewResponse()
		switch {
		case offering.Seller.Equals(info.Sender):
			res.AddMessage(market.NewNftTransfer(offering.NftAddress, offering.Seller, offering.TokenId))
			if bid.HasBid() {
				res.AddPayment(*bid.Address, market.NewCoin(*bid.HighestBidPrice, contractInfo.NativeDenom))
			}
			if err := im.registry.RemoveListing(c, offeringId); err != nil {
				return nil, err
			}
			res.AddAttribute("action", market.ActionSellerCloseBid).
				AddAttribute("seller", info.Sender.String()).
				AddAttribute("offering_id", offeringId)
			return &outcome{res: res, offeringId: offeringId}, nil

		case bid.IsHighestBidder(info.Sender) && offering.SaleType.Auction.Expiration.IsExpired(env):
			price := *bid.HighestBidPrice
			fee, net := payout(res, offering, price, contractInfo.NativeDenom)
			res.AddMessage(market.NewNftTransfer(offering.NftAddress, info.Sender, offering.TokenId))
			if err := im.registry.RemoveListing(c, offeringId); err != nil {
				return nil, err
			}
			paid := market.NewCoin(price, contractInfo.NativeDenom)
			addSaleAttributes(res, offering, info.Sender, paid, net, fee)
			return &outcome{
				res:        res,
				offeringId: offeringId,
				sale:       newSale(offering, info.Sender, paid, fee, env),
			}, nil

		default:
			return nil, market.ErrUnauthorized
		}
	})
}

func (im *impl) UpdatePrice(c ctx.Ctx, info market.MessageInfo, offeringId string, price market.Amount) (*market.Response, error) {
	return im.run(c, market.ActionUpdatePrice, func(c ctx.Ctx) (*outcome, error) {
		contractInfo, err := im.contract.GetContractInfo(c)
		if err != nil {
			return nil, err
		}
		offering, err := im.registry.GetOffering(c, offeringId)
		if err != nil {
			return nil, err
		}
		if !offering.SaleType.IsFixedPrice() {
			return nil, market.ErrSaleTypeMustBeFixedPrice
		}
		if !offering.Seller.Equals(info.Sender) {
			return nil, market.ErrUnauthorized
		}
		if price.IsZero() {
			return nil, market.ErrPriceMustBePositive
		}

		offering.SaleType = market.NewFixedPrice(price)
		if err := im.registry.SaveOffering(c, offering); err != nil {
			c.WithFields(log.Fields{
				"offeringId": offeringId,
				"err":        err,
			}).Error("registry.SaveOffering failed")
			return nil, err
		}

		res := market.NewResponse().
			AddAttribute("action", market.ActionUpdatePrice).
			AddAttribute("sender", info.Sender.String()).
			AddAttribute("offering_id", offeringId).
			AddAttribute("update_price", market.NewCoin(price, contractInfo.NativeDenom).String())
		return &outcome{res: res, offeringId: offeringId}, nil
	})
}

// ReceiveNft lists a token the sending collection just moved into custody.
// info.Sender is the collection, msg.Sender the owner who sent the token.
func (im *impl) ReceiveNft(c ctx.Ctx, env market.Env, info market.MessageInfo, msg market.ReceiveNftMsg) (*market.Response, error) {
	return im.run(c, market.ActionCreateSale, func(c ctx.Ctx) (*outcome, error) {
		nftContracts, err := im.contract.GetNftContracts(c)
		if err != nil {
			c.WithField("err", err).Error("contract.GetNftContracts failed")
			return nil, err
		}
		if !containsAddress(nftContracts, info.Sender) {
			return nil, market.ErrNFTAddressNotMatch
		}
		nftAddress := info.Sender.ToLower()

		saleType, err := market.DecodeSaleType(msg.Msg)
		if err != nil {
			return nil, err
		}
		seller, err := domain.ParseAddress(msg.Sender)
		if err != nil {
			return nil, err
		}

		royalty, err := im.collections.RoyaltySnapshot(c, nftAddress)
		if err != nil {
			c.WithFields(log.Fields{
				"nftAddress": nftAddress,
				"err":        err,
			}).Error("collections.RoyaltySnapshot failed")
			return nil, err
		}

		offering, err := im.registry.CreateListing(c, market.CreateListingParams{
			TokenId:     domain.TokenId(msg.TokenId),
			NftAddress:  nftAddress,
			Seller:      seller,
			SaleType:    saleType,
			RoyaltyInfo: royalty,
			Now:         env.Time,
		})
		if err != nil {
			return nil, err
		}

		res := market.NewResponse().
			AddAttribute("action", market.ActionCreateSale).
			AddAttribute("offering_id", offering.Id).
			AddAttribute("original_contract", nftAddress.String()).
			AddAttribute("seller", seller.String()).
			AddAttribute("token_id", msg.TokenId)
		return &outcome{res: res, offeringId: offering.Id}, nil
	})
}

func (im *impl) requireAdmin(c ctx.Ctx, sender domain.Address) error {
	admin, err := im.contract.GetAdmin(c)
	if err != nil {
		c.WithField("err", err).Error("contract.GetAdmin failed")
		return err
	}
	if !admin.Equals(sender) {
		return market.ErrUnauthorized
	}
	return nil
}

// payout appends the royalty and seller payments for a sale at price.
func payout(res *market.Response, offering *market.Offering, price market.Amount, denom string) (fee, net market.Amount) {
	fee, net = offering.RoyaltyInfo.Split(price)
	if offering.RoyaltyInfo != nil {
		res.AddPayment(offering.RoyaltyInfo.PaymentAddress, market.NewCoin(fee, denom))
	}
	res.AddPayment(offering.Seller, market.NewCoin(net, denom))
	return fee, net
}

func addSaleAttributes(res *market.Response, offering *market.Offering, buyer domain.Address, paid market.Coin, net, fee market.Amount) {
	res.AddAttribute("action", market.ActionMakeOrder).
		AddAttribute("seller", offering.Seller.String()).
		AddAttribute("buyer", buyer.String()).
		AddAttribute("paid_price", paid.String()).
		AddAttribute("token_id", offering.TokenId.String()).
		AddAttribute("contract_addr", offering.NftAddress.String()).
		AddAttribute("net_price", net.String()).
		AddAttribute("royalty_fee", fee.String())
}

func newSale(offering *market.Offering, buyer domain.Address, price market.Coin, fee market.Amount, env market.Env) *market.Sale {
	return &market.Sale{
		OfferingId: offering.Id,
		NftAddress: offering.NftAddress,
		TokenId:    offering.TokenId,
		Seller:     offering.Seller,
		Buyer:      buyer,
		Price:      price,
		RoyaltyFee: fee,
		SaleKind:   offering.SaleType.Kind,
		Time:       env.Time,
	}
}
