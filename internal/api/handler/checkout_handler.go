package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/foodorder/internal/api"
	"github.com/RoyceAzure/lab/foodorder/internal/api/dto"
	"github.com/RoyceAzure/lab/foodorder/internal/pkg/apperr"
	"github.com/RoyceAzure/lab/foodorder/internal/service"
	"github.com/RoyceAzure/lab/foodorder/internal/util"
)

const maxCheckoutBodyBytes = 1 << 20

type CheckoutHandler struct {
	checkoutService service.ICheckoutService
}

func NewCheckoutHandler(checkoutService service.ICheckoutService) *CheckoutHandler {
	if checkoutService == nil {
		panic("checkoutService cannot be nil")
	}
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// @Summary create checkout session
// @Description 建立 pending 訂單並回傳付款頁面網址, 金額一律以菜單價格計算
// @Tags checkout
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CheckoutSessionRequest true "restaurant, delivery details and cart items"
// @Success 200 {object} api.Response{data=dto.CheckoutSessionResponse} "success"
// @Failure 400 {object} api.ResponseError{data=string} "ValidationError / InvalidReference"
// @Failure 401 {object} api.ResponseError{data=string} "Unauthenticated"
// @Failure 404 {object} api.ResponseError{data=string} "restaurant not found"
// @Failure 429 {object} api.ResponseError{data=string} "RateLimited"
// @Failure 502 {object} api.ResponseError{data=string} "GatewayUnavailable"
// @Router /checkout/session [post]
func (c *CheckoutHandler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	var req dto.CheckoutSessionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCheckoutBodyBytes)).Decode(&req); err != nil {
		api.WriteError(w, apperr.Wrap(apperr.ValidationError, "invalid request body", err))
		return
	}

	ctx := r.Context()
	res, err := c.checkoutService.CreateCheckoutSession(ctx, req.ToInput(util.GetUserID(ctx)))
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.SuccessJSON(w, dto.NewCheckoutSessionResponse(res))
}
