package deleteorder

import (
	"context"
	"net/http"

	"github.com/corray333/backend-labs/shop/internal/transport/http/v1/response"
)

// service is an interface for the service layer.
type service interface {
	DeleteOrder(ctx context.Context, id int64) error
}

// DeleteOrder handles the delete order request. Items of the order are
// deleted with it.
//
//	@Summary	Delete an order
//	@Tags		orders
//	@Produce	json
//	@Param		id	path		int	true	"Order ID"
//	@Success	200	{object}	response.Status
//	@Failure	404	{object}	response.Status
//	@Router		/orders/{id} [delete]
func DeleteOrder(w http.ResponseWriter, r *http.Request, service service) {
	id, err := response.IDParam(r, "id")
	if err != nil {
		response.Error(w, r, err)

		return
	}

	if err := service.DeleteOrder(r.Context(), id); err != nil {
		response.Error(w, r, err)

		return
	}

	response.JSON(w, r, http.StatusOK, response.Status{Success: true, Message: "Order deleted successfully"})
}
