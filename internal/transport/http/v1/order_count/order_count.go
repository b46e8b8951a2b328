package ordercount

import (
	"context"
	"net/http"

	"github.com/corray333/backend-labs/shop/internal/transport/http/v1/response"
)

// service is an interface for the service layer.
type service interface {
	OrderCount(ctx context.Context) (int64, error)
}

type orderCountResponse struct {
	OrderCount int64 `json:"orderCount"`
}

// OrderCount handles the order count request.
//
//	@Summary	Count orders
//	@Tags		sales
//	@Produce	json
//	@Success	200	{object}	orderCountResponse
//	@Failure	500	{object}	response.Status
//	@Router		/orders/get/count [get]
func OrderCount(w http.ResponseWriter, r *http.Request, service service) {
	count, err := service.OrderCount(r.Context())
	if err != nil {
		response.Error(w, r, err)

		return
	}

	response.JSON(w, r, http.StatusOK, orderCountResponse{OrderCount: count})
}
