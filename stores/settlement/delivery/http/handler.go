package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/delivery"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/market"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type handler struct {
	engine market.Engine
	env    market.EnvProvider
}

// New registers the routes. listCache wraps the offering list, which is the
// only route read often enough to need it.
func New(e *echo.Echo, engine market.Engine, env market.EnvProvider, authMiddleware, listCache echo.MiddlewareFunc) {
	h := &handler{
		engine: engine,
		env:    env,
	}

	e.POST("/execute", h.execute, authMiddleware)
	e.GET("/contract", h.getContract)
	e.GET("/offerings", h.getOfferings, listCache)
	e.GET("/offerings/:id", h.getOffering)
}

// executeParams pays with a transfer into escrow, named by DepositTx. The
// engine verifies the transfer on chain and spends it once.
type executeParams struct {
	Msg       market.ExecuteMsg `json:"msg"`
	DepositTx string            `json:"deposit_tx,omitempty"`
}

// execute
//
//	@Summary		Execute a marketplace command
//	@Description	Runs one command as the authenticated address against the current block
//	@Tags			settlement
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			params	body		http.executeParams	true	"command and the deposit paying for it"
//	@Success		200		{object}	object{data=market.Response}
//	@Failure		400
//	@Failure		401
//	@Failure		403
//	@Failure		404
//	@Failure		500
//	@Router			/execute [post]
func (h *handler) execute(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	sender := c.Get("address").(domain.Address)

	p := executeParams{}
	if err := c.Bind(&p); err != nil {
		ctx.WithField("err", err).Warn("bind failed")
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidJsonFormat)
	}
	// custody notifications come from the escrow event tracker only
	if p.Msg.ReceiveNft != nil {
		ctx.WithField("sender", sender).Warn("receive_nft over http refused")
		return delivery.MakeJsonResp(c, http.StatusForbidden, market.ErrUnauthorized)
	}

	info := market.MessageInfo{Sender: sender}
	if p.DepositTx != "" {
		hash, err := domain.ParseTxHash(p.DepositTx)
		if err != nil {
			return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
		}
		info.Deposit = hash
	}

	env, err := h.env.Env(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("env.Env failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	res, err := h.engine.Execute(ctx, env, info, p.Msg)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

// getContract
//
//	@Summary		Get marketplace state
//	@Tags			settlement
//	@Produce		json
//	@Success		200	{object}	object{data=market.ContractInfoResult}
//	@Failure		503
//	@Router			/contract [get]
func (h *handler) getContract(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.engine.ContractInfo(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("engine.ContractInfo failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

// getOfferings
//
//	@Summary		List offerings
//	@Tags			settlement
//	@Produce		json
//	@Param			seller		query		string	false	"seller address"
//	@Param			nftAddress	query		string	false	"collection address"
//	@Param			tokenId		query		string	false	"token id, requires nftAddress"
//	@Param			saleKind	query		string	false	"fixed_price or auction"
//	@Param			offset		query		int		false	"offset"
//	@Param			limit		query		int		false	"limit"
//	@Success		200			{object}	object{data=object{items=[]market.OfferingResult,count=int}}
//	@Failure		400
//	@Router			/offerings [get]
func (h *handler) getOfferings(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	opts, err := parseOfferingQuery(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	items, count, err := h.engine.Offerings(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	res := struct {
		Items []*market.OfferingResult `json:"items"`
		Count int                      `json:"count"`
	}{items, count}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

// getOffering
//
//	@Summary		Get one offering with its auction state
//	@Tags			settlement
//	@Produce		json
//	@Param			id	path		string	true	"offering id"
//	@Success		200	{object}	object{data=market.OfferingResult}
//	@Failure		404
//	@Router			/offerings/{id} [get]
func (h *handler) getOffering(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.engine.Offering(ctx, c.Param("id"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func parseOfferingQuery(c echo.Context) ([]market.OfferingFindAllOptionsFunc, error) {
	offset, limit := 0, defaultLimit
	var err error
	if v := c.QueryParam("offset"); v != "" {
		if offset, err = strconv.Atoi(v); err != nil || offset < 0 {
			return nil, domain.ErrBadParamInput
		}
	}
	if v := c.QueryParam("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil || limit <= 0 || limit > maxLimit {
			return nil, domain.ErrBadParamInput
		}
	}
	opts := []market.OfferingFindAllOptionsFunc{market.OfferingWithPagination(offset, limit)}

	if v := c.QueryParam("seller"); v != "" {
		addr, err := domain.ParseAddress(v)
		if err != nil {
			return nil, err
		}
		opts = append(opts, market.OfferingWithSeller(addr))
	}
	if v := c.QueryParam("nftAddress"); v != "" {
		addr, err := domain.ParseAddress(v)
		if err != nil {
			return nil, err
		}
		opts = append(opts, market.OfferingWithNftAddress(addr))
	}
	if v := c.QueryParam("tokenId"); v != "" {
		if c.QueryParam("nftAddress") == "" {
			return nil, domain.ErrBadParamInput
		}
		opts = append(opts, market.OfferingWithTokenId(domain.TokenId(v)))
	}
	if v := c.QueryParam("saleKind"); v != "" {
		opts = append(opts, market.OfferingWithSaleKind(market.SaleKind(v)))
	}
	return opts, nil
}
