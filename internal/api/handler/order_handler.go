package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/foodorder/internal/api"
	"github.com/RoyceAzure/lab/foodorder/internal/api/dto"
	"github.com/RoyceAzure/lab/foodorder/internal/pkg/apperr"
	"github.com/RoyceAzure/lab/foodorder/internal/service"
	"github.com/RoyceAzure/lab/foodorder/internal/util"
	"github.com/go-chi/chi/v5"
)

const maxStatusBodyBytes = 4 << 10

type OrderHandler struct {
	orderService service.IOrderService
}

func NewOrderHandler(orderService service.IOrderService) *OrderHandler {
	if orderService == nil {
		panic("orderService cannot be nil")
	}
	return &OrderHandler{
		orderService: orderService,
	}
}

// @Summary list my orders
// @Tags orders
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} api.Response{data=[]dto.OrderDTO} "success"
// @Failure 401 {object} api.ResponseError{data=string} "Unauthenticated"
// @Router /orders/mine [get]
func (o *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orders, err := o.orderService.ListMine(ctx, util.GetUserID(ctx))
	if err != nil {
		api.WriteError(w, err)
		return
	}
	api.SuccessJSON(w, dto.NewOrderDTOs(orders))
}

// @Summary get my order
// @Tags orders
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "order id"
// @Success 200 {object} api.Response{data=dto.OrderDTO} "success"
// @Failure 403 {object} api.ResponseError{data=string} "Forbidden"
// @Failure 404 {object} api.ResponseError{data=string} "NotFound"
// @Router /orders/{id} [get]
func (o *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	order, err := o.orderService.GetForBuyer(ctx, chi.URLParam(r, "id"), util.GetUserID(ctx))
	if err != nil {
		api.WriteError(w, err)
		return
	}
	api.SuccessJSON(w, dto.NewOrderDTO(order))
}

// @Summary update order status
// @Description 餐廳擁有者推進訂單狀態, 只能往前一步
// @Tags orders
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "order id"
// @Param request body dto.UpdateStatusRequest true "next status"
// @Success 200 {object} api.Response{data=dto.OrderDTO} "success"
// @Failure 400 {object} api.ResponseError{data=string} "InvalidStatus"
// @Failure 403 {object} api.ResponseError{data=string} "Forbidden"
// @Failure 404 {object} api.ResponseError{data=string} "NotFound"
// @Failure 409 {object} api.ResponseError{data=string} "InvalidTransition"
// @Router /orders/{id}/status [put]
func (o *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateStatusRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxStatusBodyBytes)).Decode(&req); err != nil {
		api.WriteError(w, apperr.Wrap(apperr.ValidationError, "invalid request body", err))
		return
	}

	ctx := r.Context()
	order, err := o.orderService.UpdateStatus(ctx, chi.URLParam(r, "id"), util.GetUserID(ctx), req.Status)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	api.SuccessJSON(w, dto.NewOrderDTO(order))
}

// @Summary list restaurant orders
// @Tags orders
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "restaurant id"
// @Param status query string false "status filter"
// @Success 200 {object} api.Response{data=[]dto.OrderDTO} "success"
// @Failure 403 {object} api.ResponseError{data=string} "Forbidden"
// @Failure 404 {object} api.ResponseError{data=string} "NotFound"
// @Router /restaurants/{id}/orders [get]
func (o *OrderHandler) ListForRestaurant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orders, err := o.orderService.ListForRestaurant(ctx, chi.URLParam(r, "id"), util.GetUserID(ctx), r.URL.Query().Get("status"))
	if err != nil {
		api.WriteError(w, err)
		return
	}
	api.SuccessJSON(w, dto.NewOrderDTOs(orders))
}
