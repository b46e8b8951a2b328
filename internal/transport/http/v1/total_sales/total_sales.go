package totalsales

import (
	"context"
	"net/http"

	"github.com/corray333/backend-labs/shop/internal/transport/http/v1/response"
	"github.com/shopspring/decimal"
)

// service is an interface for the service layer.
type service interface {
	TotalSales(ctx context.Context) (decimal.NullDecimal, error)
}

// totalSalesResponse carries null when there are no orders.
type totalSalesResponse struct {
	TotalSales decimal.NullDecimal `json:"totalsales" swaggertype:"string"`
}

// TotalSales handles the total sales request.
//
//	@Summary	Sum of all order totals
//	@Tags		sales
//	@Produce	json
//	@Success	200	{object}	totalSalesResponse
//	@Failure	500	{object}	response.Status
//	@Router		/orders/get/totalsales [get]
func TotalSales(w http.ResponseWriter, r *http.Request, service service) {
	total, err := service.TotalSales(r.Context())
	if err != nil {
		response.Error(w, r, err)

		return
	}

	response.JSON(w, r, http.StatusOK, totalSalesResponse{TotalSales: total})
}
