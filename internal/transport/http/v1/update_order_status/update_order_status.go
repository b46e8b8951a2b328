package updateorderstatus

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/corray333/backend-labs/shop/internal/service/errs"
	"github.com/corray333/backend-labs/shop/internal/service/models/order"
	"github.com/corray333/backend-labs/shop/internal/transport/http/v1/response"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// service is an interface for the service layer.
type service interface {
	UpdateOrderStatus(ctx context.Context, id int64, status string) (order.Order, error)
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled"`
}

// UpdateOrderStatus handles the update order status request.
//
//	@Summary	Change the status of an order
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int							true	"Order ID"
//	@Param		status	body		updateOrderStatusRequest	true	"New status"
//	@Success	200		{object}	order.Order
//	@Failure	400		{object}	response.Status
//	@Failure	404		{object}	response.Status
//	@Router		/orders/{id} [put]
func UpdateOrderStatus(w http.ResponseWriter, r *http.Request, service service) {
	id, err := response.IDParam(r, "id")
	if err != nil {
		response.Error(w, r, err)

		return
	}

	req := updateOrderStatusRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, errs.Validation("malformed request body: %v", err))

		return
	}
	if err := validate.Struct(req); err != nil {
		response.Error(w, r, errs.Validation("%v", err))

		return
	}

	updated, err := service.UpdateOrderStatus(r.Context(), id, req.Status)
	if err != nil {
		response.Error(w, r, err)

		return
	}

	response.JSON(w, r, http.StatusOK, updated)
}
