package listorders

import (
	"context"
	"net/http"

	"github.com/corray333/backend-labs/shop/internal/service/models/order"
	"github.com/corray333/backend-labs/shop/internal/transport/http/v1/response"
)

// service is an interface for the service layer.
type service interface {
	ListOrders(ctx context.Context) ([]order.Order, error)
}

// ListOrders handles the list orders request. Orders come newest first.
//
//	@Summary	List orders
//	@Tags		orders
//	@Produce	json
//	@Success	200	{array}		order.Order
//	@Failure	500	{object}	response.Status
//	@Router		/orders [get]
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	orders, err := service.ListOrders(r.Context())
	if err != nil {
		response.Error(w, r, err)

		return
	}

	response.JSON(w, r, http.StatusOK, orders)
}
