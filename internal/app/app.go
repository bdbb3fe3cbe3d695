package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/niksmo/product-service/config"
	"github.com/niksmo/product-service/internal/adapter/httphandler"
	"github.com/niksmo/product-service/internal/adapter/kafka"
	"github.com/niksmo/product-service/internal/adapter/storage"
	"github.com/niksmo/product-service/internal/core/port"
	"github.com/niksmo/product-service/internal/core/service"
	"github.com/niksmo/product-service/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type outbound struct {
	sqlDB          storage.SQLDB
	photoDir       storage.PhotoDir
	eventsProducer *kafka.ProductEventsProducer
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	outbound   outbound
	service    port.ProductsService
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initOutboundAdapters()
	app.initCoreService()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	level, _ := app.cfg.SlogLevel()
	opts := &slog.HandlerOptions{Level: level}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initOutboundAdapters() {
	const op = "App.initOutboundAdapters"

	sqlDB, err := storage.NewSQLDB(app.ctx, app.cfg.Postgres.DSN())
	if err != nil {
		app.fallDown(op, err)
	}
	app.outbound.sqlDB = sqlDB

	photoDir, err := storage.NewPhotoDir(app.cfg.PhotoDir)
	if err != nil {
		app.fallDown(op, err)
	}
	app.outbound.photoDir = photoDir

	if app.cfg.EventsEnabled() {
		app.initEventsProducer()
	} else {
		slog.Info("product events are disabled", "op", op)
	}
}

func (app *App) initEventsProducer() {
	const op = "App.initEventsProducer"
	ctx := app.ctx
	brokerCfg := app.cfg.Broker

	srClient, err := sr.NewClient(sr.URLs(brokerCfg.SchemaRegistryURLs...))
	if err != nil {
		app.fallDown(op, err)
	}

	eventSerde, err := schema.NewSerdeProductEventV1(
		ctx,
		schema.SubjectOpt(brokerCfg.ProductEventsTopic+"-value"),
		schema.SchemaIdentifierOpt(schema.NewSchemaCreater(srClient)),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	eventsProducer, err := kafka.NewProductEventsProducer(
		kafka.ProducerClientOpt(
			ctx, brokerCfg.SeedBrokers, brokerCfg.ProductEventsTopic,
		),
		kafka.ProducerEncoderOpt(eventSerde),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.outbound.eventsProducer = &eventsProducer
}

func (app *App) initCoreService() {
	var eventsProducer port.ProductEventsProducer
	if app.outbound.eventsProducer != nil {
		eventsProducer = app.outbound.eventsProducer
	}

	app.service = service.New(
		storage.NewProductsRepository(app.outbound.sqlDB),
		app.outbound.photoDir,
		eventsProducer,
	)
}

func (app *App) initInboundAdapters() {
	gin.SetMode(gin.ReleaseMode)

	router := httphandler.NewRouter(
		httphandler.RouterConfig{
			PhotoURLPath: app.cfg.PhotoURLPath,
			PhotoDir:     app.outbound.photoDir.Dir(),
		},
		app.service,
		app.outbound.sqlDB,
	)
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr(), router)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

// Close drains the HTTP server before releasing the pool and producer.
func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	if app.outbound.eventsProducer != nil {
		app.outbound.eventsProducer.Close()
	}
	app.outbound.sqlDB.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
