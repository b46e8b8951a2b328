package getorder

import (
	"context"
	"net/http"

	"github.com/corray333/backend-labs/shop/internal/service/models/order"
	"github.com/corray333/backend-labs/shop/internal/transport/http/v1/response"
)

// service is an interface for the service layer.
type service interface {
	GetOrder(ctx context.Context, id int64) (order.Order, error)
}

// GetOrder handles the get order request.
//
//	@Summary	Get an order with its items
//	@Tags		orders
//	@Produce	json
//	@Param		id	path		int	true	"Order ID"
//	@Success	200	{object}	order.Order
//	@Failure	400	{object}	response.Status
//	@Failure	404	{object}	response.Status
//	@Router		/orders/{id} [get]
func GetOrder(w http.ResponseWriter, r *http.Request, service service) {
	id, err := response.IDParam(r, "id")
	if err != nil {
		response.Error(w, r, err)

		return
	}

	o, err := service.GetOrder(r.Context(), id)
	if err != nil {
		response.Error(w, r, err)

		return
	}

	response.JSON(w, r, http.StatusOK, o)
}
