package createorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/corray333/backend-labs/shop/internal/service/errs"
	"github.com/corray333/backend-labs/shop/internal/service/models/order"
	"github.com/corray333/backend-labs/shop/internal/transport/http/v1/response"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// service is an interface for the service layer.
type service interface {
	PlaceOrder(ctx context.Context, model order.PlaceOrderModel) (order.Order, error)
}

// itemInCreateOrderRequest represents an item in a create order request.
type itemInCreateOrderRequest struct {
	Product  int64 `json:"product"  validate:"gt=0"`
	Quantity int   `json:"quantity" validate:"gt=0"`
}

// createOrderRequest represents a create order request.
type createOrderRequest struct {
	OrderItems       []itemInCreateOrderRequest `json:"orderItems"       validate:"required,min=1,dive"`
	ShippingAddress1 string                     `json:"shippingAddress1" validate:"required"`
	ShippingAddress2 string                     `json:"shippingAddress2"`
	City             string                     `json:"city"             validate:"required"`
	Zip              string                     `json:"zip"              validate:"required"`
	Country          string                     `json:"country"          validate:"required"`
	Phone            string                     `json:"phone"            validate:"required"`
	Status           string                     `json:"status"`
	User             int64                      `json:"user"             validate:"gt=0"`
}

// Validate validates the create order request.
func (r *createOrderRequest) Validate() error {
	return validate.Struct(r)
}

func (r *createOrderRequest) toModel() order.PlaceOrderModel {
	items := make([]order.RequestedItem, len(r.OrderItems))
	for i, item := range r.OrderItems {
		items[i] = order.RequestedItem{ProductID: item.Product, Quantity: item.Quantity}
	}

	return order.PlaceOrderModel{
		Items: items,
		Shipping: order.ShippingInfo{
			ShippingAddress1: r.ShippingAddress1,
			ShippingAddress2: r.ShippingAddress2,
			City:             r.City,
			Zip:              r.Zip,
			Country:          r.Country,
			Phone:            r.Phone,
		},
		UserID: r.User,
		Status: r.Status,
	}
}

// CreateOrder handles the create order request.
//
//	@Summary	Place an order
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		order	body		createOrderRequest	true	"Order to place"
//	@Success	201		{object}	order.Order
//	@Failure	400		{object}	response.Status
//	@Failure	404		{object}	response.Status
//	@Failure	500		{object}	response.Status
//	@Router		/orders [post]
func CreateOrder(w http.ResponseWriter, r *http.Request, service service) {
	req := createOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Error decoding request body for create order", "error", err)
		response.Error(w, r, errs.Validation("malformed request body: %v", err))

		return
	}

	if err := req.Validate(); err != nil {
		slog.Warn("Error validating request body for create order", "error", err)
		response.Error(w, r, errs.Validation("%v", err))

		return
	}

	created, err := service.PlaceOrder(r.Context(), req.toModel())
	if err != nil {
		response.Error(w, r, err)

		return
	}

	response.JSON(w, r, http.StatusCreated, created)
}
