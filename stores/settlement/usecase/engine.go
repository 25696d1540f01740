package usecase

import (
	"time"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/base/metrics"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/market"
)

var met = metrics.New("settlement")

const notifyTimeout = 5 * time.Second

type EngineCfg struct {
	Transactor   market.Transactor
	Registry     market.Registry
	ContractRepo market.ContractRepo
	Collections  market.CollectionRegistry
	Dispatcher   market.Dispatcher
	// Deposits backs funds named by a deposit transaction, without it such commands are rejected
	Deposits market.DepositLedger
	// Notifier is told about settled sales after commit, optional
	Notifier market.SaleNotifier
}

type impl struct {
	tx          market.Transactor
	registry    market.Registry
	contract    market.ContractRepo
	collections market.CollectionRegistry
	dispatcher  market.Dispatcher
	deposits    market.DepositLedger
	notifier    market.SaleNotifier
}

func NewEngine(cfg *EngineCfg) market.Engine {
	return &impl{
		tx:          cfg.Transactor,
		registry:    cfg.Registry,
		contract:    cfg.ContractRepo,
		collections: cfg.Collections,
		dispatcher:  cfg.Dispatcher,
		deposits:    cfg.Deposits,
		notifier:    cfg.Notifier,
	}
}

// outcome is what an operation produces inside its transaction.
type outcome struct {
	res        *market.Response
	offeringId string
	sale       *market.Sale
}

// run executes op in one transaction together with dispatching its messages.
// op may be called again when the storage retries the transaction.
func (im *impl) run(c ctx.Ctx, action string, op func(ctx.Ctx) (*outcome, error)) (*market.Response, error) {
	defer met.BumpTime("execute.time", "action", action).End()

	var out *outcome
	err := im.tx.RunWithTransaction(c, func(tc ctx.Ctx) error {
		o, err := op(tc)
		if err != nil {
			return err
		}
		if len(o.res.Messages) > 0 {
			if err := im.dispatcher.Dispatch(tc, o.offeringId, action, o.res.Messages); err != nil {
				tc.WithField("err", err).Error("dispatcher.Dispatch failed")
				return err
			}
		}
		out = o
		return nil
	})
	if err != nil {
		met.BumpSum("execute.rejected", 1, "action", action)
		c.WithFields(log.Fields{
			"action": action,
			"err":    err,
		}).Warn("operation rejected")
		return nil, err
	}
	met.BumpSum("execute.ok", 1, "action", action)

	if out.sale != nil {
		im.notifySale(c, *out.sale)
	}
	return out.res, nil
}

// attached returns what the sender paid in denom. A deposit is claimed inside
// the command transaction and stays unspent when the command is rejected.
func (im *impl) attached(c ctx.Ctx, info market.MessageInfo, action, offeringId, denom string) (market.Coin, error) {
	if info.Deposit == "" {
		return market.OneCoin(info.Funds, denom)
	}
	if im.deposits == nil {
		return market.Coin{}, market.ErrDepositNotFound
	}
	amount, err := im.deposits.Claim(c, market.DepositClaim{
		TxHash:     info.Deposit,
		Sender:     info.Sender,
		Action:     action,
		OfferingId: offeringId,
	})
	if err != nil {
		c.WithFields(log.Fields{
			"deposit": info.Deposit,
			"err":     err,
		}).Warn("deposits.Claim failed")
		return market.Coin{}, err
	}
	return market.NewCoin(amount, denom), nil
}

func (im *impl) notifySale(c ctx.Ctx, sale market.Sale) {
	if im.notifier == nil {
		return
	}
	nc, cancel := ctx.WithTimeout(c, notifyTimeout)
	defer cancel()
	if err := im.notifier.NotifySale(nc, sale); err != nil {
		c.WithFields(log.Fields{
			"offeringId": sale.OfferingId,
			"err":        err,
		}).Error("notifier.NotifySale failed")
	}
}

func (im *impl) Instantiate(c ctx.Ctx, info market.MessageInfo, msg market.InstantiateMsg) (*market.Response, error) {
	return im.run(c, market.ActionInstantiate, func(c ctx.Ctx) (*outcome, error) {
		if _, err := im.contract.GetContractInfo(c); err == nil {
			return nil, market.ErrAlreadyInstantiated
		} else if err != market.ErrNotInstantiated {
			return nil, err
		}

		// an absent or malformed admin falls back to the sender
		admin := info.Sender.ToLower()
		if msg.Admin != nil {
			if a, err := domain.ParseAddress(*msg.Admin); err == nil {
				admin = a
			}
		}

		nftContracts := []domain.Address{}
		for _, raw := range msg.NftContracts {
			addr, err := domain.ParseAddress(raw)
			if err != nil {
				return nil, err
			}
			if !containsAddress(nftContracts, addr) {
				nftContracts = append(nftContracts, addr)
			}
		}

		contractInfo := market.ContractInfo{Name: msg.Name, NativeDenom: msg.NativeDenom}
		if err := im.contract.SetAdmin(c, admin); err != nil {
			return nil, err
		}
		if err := im.contract.SetContractInfo(c, contractInfo); err != nil {
			return nil, err
		}
		if err := im.contract.SetNftContracts(c, nftContracts); err != nil {
			return nil, err
		}
		if err := im.contract.SetVersion(c, market.Version{Contract: market.ContractName, Version: market.ContractVersion}); err != nil {
			return nil, err
		}

		res := market.NewResponse().
			AddAttribute("action", market.ActionInstantiate).
			AddAttribute("name", contractInfo.Name).
			AddAttribute("admin", admin.String())
		return &outcome{res: res}, nil
	})
}

func (im *impl) Execute(c ctx.Ctx, env market.Env, info market.MessageInfo, msg market.ExecuteMsg) (*market.Response, error) {
	name, err := msg.Name()
	if err != nil {
		return nil, err
	}
	c = ctx.WithValues(c, map[string]interface{}{
		"command": name,
		"sender":  info.Sender,
	})

	switch {
	case msg.AddNftContract != nil:
		return im.AddNftContract(c, info, msg.AddNftContract.Address)
	case msg.WithdrawNft != nil:
		return im.WithdrawNft(c, info, msg.WithdrawNft.OfferingId)
	case msg.MakeOffer != nil:
		return im.MakeOffer(c, env, info, msg.MakeOffer.OfferingId)
	case msg.Bid != nil:
		return im.Bid(c, env, info, msg.Bid.OfferingId)
	case msg.CloseBid != nil:
		return im.CloseBid(c, env, info, msg.CloseBid.OfferingId)
	case msg.UpdatePrice != nil:
		return im.UpdatePrice(c, info, msg.UpdatePrice.OfferingId, msg.UpdatePrice.UpdatePrice)
	default:
		return im.ReceiveNft(c, env, info, *msg.ReceiveNft)
	}
}

func (im *impl) ContractInfo(c ctx.Ctx) (*market.ContractInfoResult, error) {
	info, err := im.contract.GetContractInfo(c)
	if err != nil {
		return nil, err
	}
	admin, err := im.contract.GetAdmin(c)
	if err != nil {
		return nil, err
	}
	nftContracts, err := im.contract.GetNftContracts(c)
	if err != nil {
		return nil, err
	}
	version, err := im.contract.GetVersion(c)
	if err != nil {
		return nil, err
	}
	count, err := im.contract.GetOfferingsCount(c)
	if err != nil {
		return nil, err
	}
	return &market.ContractInfoResult{
		ContractInfo:   *info,
		Admin:          admin,
		NftContracts:   nftContracts,
		Version:        *version,
		OfferingsCount: count,
	}, nil
}

func (im *impl) Offering(c ctx.Ctx, offeringId string) (*market.OfferingResult, error) {
	offering, err := im.registry.GetOffering(c, offeringId)
	if err != nil {
		return nil, err
	}
	return im.withBid(c, offering)
}

func (im *impl) Offerings(c ctx.Ctx, opts ...market.OfferingFindAllOptionsFunc) ([]*market.OfferingResult, int, error) {
	offerings, err := im.registry.FindAll(c, opts...)
	if err != nil {
		c.WithField("err", err).Error("registry.FindAll failed")
		return nil, 0, err
	}
	count, err := im.registry.Count(c, opts...)
	if err != nil {
		c.WithField("err", err).Error("registry.Count failed")
		return nil, 0, err
	}

	res := make([]*market.OfferingResult, 0, len(offerings))
	for _, o := range offerings {
		r, err := im.withBid(c, o)
		if err != nil {
			return nil, 0, err
		}
		res = append(res, r)
	}
	return res, count, nil
}

func (im *impl) withBid(c ctx.Ctx, offering *market.Offering) (*market.OfferingResult, error) {
	res := &market.OfferingResult{Offering: *offering}
	if !offering.SaleType.IsAuction() {
		return res, nil
	}
	bid, err := im.registry.GetBidOffering(c, offering.Id)
	if err != nil {
		c.WithFields(log.Fields{
			"offeringId": offering.Id,
			"err":        err,
		}).Error("registry.GetBidOffering failed")
		return nil, err
	}
	res.Bid = bid
	return res, nil
}

func containsAddress(list []domain.Address, addr domain.Address) bool {
	for _, a := range list {
		if a.Equals(addr) {
			return true
		}
	}
	return false
}
