package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/foodorder/internal/api"
	"github.com/RoyceAzure/lab/foodorder/internal/api/dto"
	"github.com/RoyceAzure/lab/foodorder/internal/service"
	"github.com/RoyceAzure/lab/foodorder/internal/util"
	"github.com/go-chi/chi/v5"
)

type RestaurantHandler struct {
	catalogService service.ICatalogService
}

func NewRestaurantHandler(catalogService service.ICatalogService) *RestaurantHandler {
	if catalogService == nil {
		panic("catalogService cannot be nil")
	}
	return &RestaurantHandler{
		catalogService: catalogService,
	}
}

// @Summary get restaurant with menu
// @Tags restaurants
// @Produce json
// @Param id path string true "restaurant id"
// @Success 200 {object} api.Response{data=dto.RestaurantDTO} "success"
// @Failure 404 {object} api.ResponseError{data=string} "NotFound"
// @Router /restaurants/{id} [get]
func (h *RestaurantHandler) Get(w http.ResponseWriter, r *http.Request) {
	restaurant, err := h.catalogService.GetRestaurant(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		api.WriteError(w, err)
		return
	}
	api.SuccessJSON(w, dto.NewRestaurantDTO(restaurant))
}

// @Summary list restaurants owned by caller
// @Tags restaurants
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} api.Response{data=[]dto.RestaurantDTO} "success"
// @Failure 401 {object} api.ResponseError{data=string} "Unauthenticated"
// @Router /restaurants/mine [get]
func (h *RestaurantHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	restaurants, err := h.catalogService.ListOwnedRestaurants(ctx, util.GetUserID(ctx))
	if err != nil {
		api.WriteError(w, err)
		return
	}
	api.SuccessJSON(w, dto.NewRestaurantDTOs(restaurants))
}
