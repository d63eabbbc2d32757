package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/corray333/storefront/internal/service/models/actor"
	"github.com/corray333/storefront/internal/service/models/notification"
	"github.com/corray333/storefront/internal/service/models/order"
	"github.com/corray333/storefront/internal/service/models/payment"
	"github.com/corray333/storefront/internal/service/services/checkoutsvc"
	"github.com/corray333/storefront/internal/service/services/ordersvc"
	"github.com/corray333/storefront/internal/service/services/shippingsvc"
	checkoutorder "github.com/corray333/storefront/internal/transport/http/checkout_order"
	createorder "github.com/corray333/storefront/internal/transport/http/create_order"
	estimateshipping "github.com/corray333/storefront/internal/transport/http/estimate_shipping"
	getorder "github.com/corray333/storefront/internal/transport/http/get_order"
	listorders "github.com/corray333/storefront/internal/transport/http/list_orders"
	"github.com/corray333/storefront/internal/transport/http/notifications"
	paymentcallback "github.com/corray333/storefront/internal/transport/http/payment_callback"
	transitionorder "github.com/corray333/storefront/internal/transport/http/transition_order"
	"github.com/corray333/storefront/pkg/http/middleware/identity"
	tracemw "github.com/corray333/storefront/pkg/http/middleware/trace"
	"github.com/corray333/storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
)

type orderService interface {
	CreateOrder(ctx context.Context, act actor.Actor, lines []ordersvc.NewLine) (*order.Order, error)
	GetOrder(ctx context.Context, act actor.Actor, orderID int64) (*order.Order, error)
	GetOrders(ctx context.Context, act actor.Actor, filter *order.QueryOrdersModel) ([]order.Order, error)
	TransitionStatus(ctx context.Context, act actor.Actor, orderID int64, next order.Status) (*order.Order, error)
	ListNotifications(ctx context.Context, act actor.Actor) ([]notification.Notification, error)
	ClearNotifications(ctx context.Context, act actor.Actor) error
}

type checkoutService interface {
	Checkout(
		ctx context.Context,
		act actor.Actor,
		orderID int64,
		method payment.Method,
		addressID *int64,
	) (*checkoutsvc.CheckoutResult, error)
	HandleChargeResult(ctx context.Context, orderID int64, outcome payment.Outcome) (*order.Order, error)
}

type shippingService interface {
	EstimateForAddress(ctx context.Context, act actor.Actor, addressID *int64) (*shippingsvc.Estimate, error)
}

type HTTPTransport struct {
	server      *http.Server
	router      *chi.Mux
	orderSvc    orderService
	checkoutSvc checkoutService
	shippingSvc shippingService
}

func NewHTTPTransport(
	orderSvc orderService,
	checkoutSvc checkoutService,
	shippingSvc shippingService,
) *HTTPTransport {
	router := newRouter()
	server := newServer(router)

	return &HTTPTransport{
		server:      server,
		router:      router,
		orderSvc:    orderSvc,
		checkoutSvc: checkoutSvc,
		shippingSvc: shippingSvc,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api", func(r chi.Router) {
		// The gateway webhook authenticates with a shared token, not a
		// customer identity.
		r.Post("/payments/callback", h.paymentCallback)

		r.Group(func(r chi.Router) {
			r.Use(identity.NewIdentityMiddleware)

			r.Post("/orders", h.withActor(func(w http.ResponseWriter, r *http.Request, act actor.Actor) {
				createorder.CreateOrder(w, r, act, h.orderSvc)
			}))
			r.Get("/orders", h.withActor(func(w http.ResponseWriter, r *http.Request, act actor.Actor) {
				listorders.ListOrders(w, r, act, h.orderSvc)
			}))
			r.Get("/orders/{orderID}", h.withActor(func(w http.ResponseWriter, r *http.Request, act actor.Actor) {
				getorder.GetOrder(w, r, act, h.orderSvc)
			}))
			r.Post("/orders/{orderID}/checkout", h.withActor(func(w http.ResponseWriter, r *http.Request, act actor.Actor) {
				checkoutorder.Checkout(w, r, act, h.checkoutSvc)
			}))
			r.Post("/orders/{orderID}/status", h.withActor(func(w http.ResponseWriter, r *http.Request, act actor.Actor) {
				transitionorder.Transition(w, r, act, h.orderSvc)
			}))
			r.Get("/shipping/estimate", h.withActor(func(w http.ResponseWriter, r *http.Request, act actor.Actor) {
				estimateshipping.Estimate(w, r, act, h.shippingSvc)
			}))
			r.Get("/notifications", h.withActor(func(w http.ResponseWriter, r *http.Request, act actor.Actor) {
				notifications.List(w, r, act, h.orderSvc)
			}))
			r.Delete("/notifications", h.withActor(func(w http.ResponseWriter, r *http.Request, act actor.Actor) {
				notifications.Clear(w, r, act, h.orderSvc)
			}))
		})
	})
}

func (h *HTTPTransport) withActor(
	handler func(w http.ResponseWriter, r *http.Request, act actor.Actor),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		act, ok := identity.FromContext(r.Context())
		if !ok {
			http.Error(w, "missing identity", http.StatusUnauthorized)

			return
		}
		handler(w, r, act)
	}
}

func (h *HTTPTransport) paymentCallback(w http.ResponseWriter, r *http.Request) {
	paymentcallback.HandleCallback(w, r, h.checkoutSvc)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(tracemw.NewTraceMiddleware)

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
