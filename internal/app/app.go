package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/corray333/storefront/internal/dal/geocoder"
	"github.com/corray333/storefront/internal/dal/paymentgw"
	"github.com/corray333/storefront/internal/dal/postgres"
	"github.com/corray333/storefront/internal/dal/rabbitmq"
	redisdal "github.com/corray333/storefront/internal/dal/redis"
	addressrepo "github.com/corray333/storefront/internal/dal/repositories/address/postgres"
	outboxrepo "github.com/corray333/storefront/internal/dal/repositories/outbox/postgres"
	"github.com/corray333/storefront/internal/jaeger"
	"github.com/corray333/storefront/internal/service/services/checkoutsvc"
	"github.com/corray333/storefront/internal/service/services/notifysvc"
	"github.com/corray333/storefront/internal/service/services/ordersvc"
	"github.com/corray333/storefront/internal/service/services/shippingsvc"
	httptransport "github.com/corray333/storefront/internal/transport/http"
	"github.com/corray333/storefront/internal/worker/pushqueue"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
)

// App represents the application.
type App struct {
	transport      *httptransport.HTTPTransport
	pushWorker     *pushqueue.Worker
	postgresClient *postgres.Client
	rabbitClient   *rabbitmq.Client
	redisClient    *redisdal.Client
	tracerProvider *tracesdk.TracerProvider
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	tracerProvider := jaeger.MustSetup()

	postgresClient := postgres.MustNewClient()
	rabbitClient := rabbitmq.MustNewClient()
	redisClient := redisdal.MustNewClient()

	notifier := notifysvc.MustNewPublisher()

	shippingSvc := shippingsvc.MustNewShippingService(
		shippingsvc.WithAddressRepo(addressrepo.NewPostgresAddressRepository(postgresClient.Pool())),
		shippingsvc.WithGeocoder(geocoder.NewClient()),
		shippingsvc.WithCache(redisClient),
	)

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithPostgresClient(postgresClient),
		ordersvc.WithNotifier(notifier),
	)

	checkoutSvc := checkoutsvc.MustNewCheckoutService(
		checkoutsvc.WithPostgresClient(postgresClient),
		checkoutsvc.WithShippingEstimator(shippingSvc),
		checkoutsvc.WithGateway(paymentgw.NewClient()),
		checkoutsvc.WithNotifier(notifier),
	)

	pushWorker := pushqueue.NewWorker(
		outboxrepo.NewOutboxRepository(postgresClient.Pool()),
		rabbitClient.Channel(),
	)

	transport := httptransport.NewHTTPTransport(orderSvc, checkoutSvc, shippingSvc)
	transport.RegisterRoutes()

	return &App{
		transport:      transport,
		pushWorker:     pushWorker,
		postgresClient: postgresClient,
		rabbitClient:   rabbitClient,
		redisClient:    redisClient,
		tracerProvider: tracerProvider,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	// Create a channel to receive OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	go a.pushWorker.Start(workerCtx)

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	cancelWorker()

	if err := a.rabbitClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	}

	if err := a.redisClient.Close(); err != nil {
		slog.Error("Redis connection close error", "error", err)
	}

	if err := a.tracerProvider.Shutdown(ctx); err != nil {
		slog.Error("Tracer provider shutdown error", "error", err)
	}

	a.postgresClient.Close()
	slog.Info("Application shutdown complete")
}
