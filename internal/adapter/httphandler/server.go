package httphandler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/niksmo/product-service/internal/core/port"
)

type RouterConfig struct {
	PhotoURLPath string
	PhotoDir     string
}

// NewRouter returns the engine with every route of the service.
func NewRouter(
	cfg RouterConfig,
	service port.ProductsService,
	checker port.HealthChecker,
) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		RequestLogger(),
		CORS(
			http.MethodGet, http.MethodPost,
			http.MethodPut, http.MethodDelete,
		),
		AllowMediaTypes(
			gin.MIMEJSON, gin.MIMEMultipartPOSTForm, gin.MIMEPOSTForm,
		),
	)

	RegisterProducts(r, service)
	RegisterPhotos(r, cfg.PhotoURLPath, cfg.PhotoDir)
	RegisterHealth(r, checker)
	return r
}

type HTTPServer struct {
	httpServer *http.Server
}

// NewHTTPServer does not limit handler time: uploads run until the
// client or the database gives up.
func NewHTTPServer(addr string, handler http.Handler) HTTPServer {
	s := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       30 * time.Second,
	}
	return HTTPServer{s}
}

func (s HTTPServer) Run(stopFn context.CancelFunc) {
	const op = "HTTPServer.Run"
	log := slog.With("op", op)

	defer stopFn()
	log.Info("server is running", "addr", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			return
		}
		log.Error("unexpected servers shutdown", "err", err)
	}
}

func (s HTTPServer) Close(ctx context.Context) {
	const op = "HTTPServer.Close"
	log := slog.With("op", op)

	log.Info("closing http server...")

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		log.Error("failed to shutdown gracefully", "err", err)
	}
	log.Info("http server is closed")
}
