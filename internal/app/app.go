package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/Renatopaccha/Dental-Gest/config"
	"github.com/Renatopaccha/Dental-Gest/internal/adapter/catalogapi"
	"github.com/Renatopaccha/Dental-Gest/internal/adapter/httphandler"
	"github.com/Renatopaccha/Dental-Gest/internal/adapter/kafka"
	"github.com/Renatopaccha/Dental-Gest/internal/adapter/storage"
	"github.com/Renatopaccha/Dental-Gest/internal/core/port"
	"github.com/Renatopaccha/Dental-Gest/internal/core/service"
	"github.com/Renatopaccha/Dental-Gest/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type services struct {
	catalog  *service.CatalogService
	filter   *service.FilterService
	cart     *service.CartService
	checkout *service.CheckoutService
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	cartEvents port.CartEventsProducer
	eventsCl   kafka.CartEventsProducer
	services   services
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initCartEventsProducer()
	app.initServices()
	app.initHTTPServer()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

// initCartEventsProducer wires the analytics pipeline only when seed
// brokers are configured; otherwise the storefront runs standalone and
// cart events are skipped.
func (app *App) initCartEventsProducer() {
	const op = "App.initCartEventsProducer"

	if !app.cfg.EventsEnabled() {
		slog.Info("cart events pipeline is disabled")
		return
	}

	ctx := app.ctx
	brokerCfg := app.cfg.Broker

	srClient, err := sr.NewClient(sr.URLs(brokerCfg.SchemaRegistryURLs...))
	if err != nil {
		app.fallDown(op, err)
	}

	schemaCreater := schema.NewSchemaCreater(srClient)
	subject := brokerCfg.CartEventsTopic + "-value"
	serde, err := schema.NewSerdeCartEventV1(
		ctx,
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	producer, err := kafka.NewCartEventsProducer(
		kafka.ProducerClientOpt(
			ctx, brokerCfg.SeedBrokers, brokerCfg.CartEventsTopic,
		),
		kafka.ProducerEncoderOpt(serde),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.eventsCl = producer
	app.cartEvents = producer
}

func (app *App) initServices() {
	catalogClient := catalogapi.New(app.cfg.Catalog.BaseURL)
	snapshots := storage.NewCartSnapshotRepository(app.cfg.Cart.SnapshotFile)

	app.services.catalog = service.NewCatalogService(catalogClient)
	app.services.filter = service.NewFilterService(catalogClient)
	app.services.cart = service.NewCartService(
		app.ctx, snapshots, app.cartEvents,
	)
	app.services.checkout = service.NewCheckoutService(
		app.cfg.WhatsApp.Phone, app.services.cart,
	)
}

func (app *App) initHTTPServer() {
	addr := app.cfg.HTTPServerAddr
	mux := http.NewServeMux()
	httphandler.RegisterCatalog(
		mux, app.services.catalog, app.services.filter, app.services.checkout,
	)
	httphandler.RegisterCart(
		mux, app.services.cart, app.services.catalog, app.services.checkout,
	)

	handler := httphandler.AllowJSON(mux)
	app.httpServer = httphandler.NewHTTPServer(addr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	if app.cfg.EventsEnabled() {
		app.eventsCl.Close()
	}

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
