package userorders

import (
	"context"
	"net/http"

	"github.com/corray333/backend-labs/shop/internal/service/models/order"
	"github.com/corray333/backend-labs/shop/internal/transport/http/v1/response"
)

// service is an interface for the service layer.
type service interface {
	ListOrdersByUser(ctx context.Context, userID int64) ([]order.Order, error)
}

// UserOrders handles the list orders of a user request.
//
//	@Summary	List the orders of a user
//	@Tags		orders
//	@Produce	json
//	@Param		userID	path		int	true	"User ID"
//	@Success	200		{array}		order.Order
//	@Failure	400		{object}	response.Status
//	@Router		/orders/get/usersorders/{userID} [get]
func UserOrders(w http.ResponseWriter, r *http.Request, service service) {
	userID, err := response.IDParam(r, "userID")
	if err != nil {
		response.Error(w, r, err)

		return
	}

	orders, err := service.ListOrdersByUser(r.Context(), userID)
	if err != nil {
		response.Error(w, r, err)

		return
	}

	response.JSON(w, r, http.StatusOK, orders)
}
