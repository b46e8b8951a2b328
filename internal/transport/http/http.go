package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	_ "github.com/corray333/backend-labs/shop/docs"
	"github.com/corray333/backend-labs/shop/internal/service/models/order"
	createorder "github.com/corray333/backend-labs/shop/internal/transport/http/v1/create_order"
	deleteorder "github.com/corray333/backend-labs/shop/internal/transport/http/v1/delete_order"
	getorder "github.com/corray333/backend-labs/shop/internal/transport/http/v1/get_order"
	listorders "github.com/corray333/backend-labs/shop/internal/transport/http/v1/list_orders"
	ordercount "github.com/corray333/backend-labs/shop/internal/transport/http/v1/order_count"
	totalsales "github.com/corray333/backend-labs/shop/internal/transport/http/v1/total_sales"
	updateorderstatus "github.com/corray333/backend-labs/shop/internal/transport/http/v1/update_order_status"
	userorders "github.com/corray333/backend-labs/shop/internal/transport/http/v1/user_orders"
	"github.com/corray333/backend-labs/shop/pkg/http/middleware/metrics"
	"github.com/corray333/backend-labs/shop/pkg/http/middleware/trace"
	"github.com/corray333/backend-labs/shop/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

const defaultAPIPrefix = "/api/v1"

type service interface {
	PlaceOrder(ctx context.Context, model order.PlaceOrderModel) (order.Order, error)
	GetOrder(ctx context.Context, id int64) (order.Order, error)
	ListOrders(ctx context.Context) ([]order.Order, error)
	ListOrdersByUser(ctx context.Context, userID int64) ([]order.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status string) (order.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
	OrderCount(ctx context.Context) (int64, error)
	TotalSales(ctx context.Context) (decimal.NullDecimal, error)
}

type HTTPTransport struct {
	server   *http.Server
	router   *chi.Mux
	registry *prometheus.Registry
	service  service
}

func NewHTTPTransport(service service) *HTTPTransport {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := newRouter(metrics.NewServerMetrics(registry, "orders"))
	server := newServer(router)

	return &HTTPTransport{
		server:   server,
		router:   router,
		registry: registry,
		service:  service,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// Handler returns the router, for use in tests.
func (h *HTTPTransport) Handler() http.Handler {
	return h.router
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	prefix := viper.GetString("server.http.api_prefix")
	if prefix == "" {
		prefix = defaultAPIPrefix
	}

	h.router.Route(prefix, func(r chi.Router) {
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.listOrders)
			r.Post("/", h.createOrder)
			r.Get("/get/count", h.orderCount)
			r.Get("/get/totalsales", h.totalSales)
			r.Get("/get/usersorders/{userID}", h.userOrders)
			r.Get("/{id}", h.getOrder)
			r.Put("/{id}", h.updateOrderStatus)
			r.Delete("/{id}", h.deleteOrder)
		})
	})

	h.router.Get("/api-docs/*", httpSwagger.Handler(httpSwagger.URL("/api-docs/doc.json")))
	h.router.Handle("/metrics", metrics.Handler(h.registry))
}

func (h *HTTPTransport) createOrder(w http.ResponseWriter, r *http.Request) {
	createorder.CreateOrder(w, r, h.service)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	getorder.GetOrder(w, r, h.service)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.service)
}

func (h *HTTPTransport) userOrders(w http.ResponseWriter, r *http.Request) {
	userorders.UserOrders(w, r, h.service)
}

func (h *HTTPTransport) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	updateorderstatus.UpdateOrderStatus(w, r, h.service)
}

func (h *HTTPTransport) deleteOrder(w http.ResponseWriter, r *http.Request) {
	deleteorder.DeleteOrder(w, r, h.service)
}

func (h *HTTPTransport) orderCount(w http.ResponseWriter, r *http.Request) {
	ordercount.OrderCount(w, r, h.service)
}

func (h *HTTPTransport) totalSales(w http.ResponseWriter, r *http.Request) {
	totalsales.TotalSales(w, r, h.service)
}

func newRouter(serverMetrics *metrics.ServerMetrics) *chi.Mux {
	serviceName := viper.GetString("service.name")
	if serviceName == "" {
		serviceName = "shop-svc"
	}

	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(trace.NewTraceMiddleware(serviceName))
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(serverMetrics.Middleware)

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
