package server

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/akolanti/DocSummaryAPI/internal/adapter/utils"
	"github.com/akolanti/DocSummaryAPI/internal/config"
	"github.com/akolanti/DocSummaryAPI/internal/handlers"
	"github.com/akolanti/DocSummaryAPI/internal/middleware"
	"github.com/akolanti/DocSummaryAPI/pkg/logger_i"
)

var (
	server  *http.Server
	_logger = logger_i.NewLogger("Server")
)

type ShutdownParams struct {
	GracefulShutdown chan os.Signal
	StopExecution    chan bool
	StopWorkers      func()
	CloseServices    context.CancelFunc
}

// Routes are the handlers mounted by NewRouter. MCP may be nil.
type Routes struct {
	Handler    *handlers.Handler
	Middleware *middleware.Middleware
	MCP        http.Handler
}

func NewRouter(routes Routes) http.Handler {
	r := utils.NewRouter()
	h, m := routes.Handler, routes.Middleware

	//html pages
	r.Router.Get("/", m.Wrap(middleware.Public, h.LandingHandler))
	r.Router.Get("/dashboard", m.Wrap(middleware.Public, h.DashboardHandler))
	r.Router.Get("/upload", m.Wrap(middleware.Public, h.UploadPageHandler))
	r.Router.Post("/summarize", m.Wrap(middleware.Policy{RateLimit: true, Reject: h.RejectPage}, h.SummarizeHandler))

	//json api
	r.Router.Post("/api/v1/summaries", m.Wrap(middleware.API, h.PostSummaryHandler))
	r.Router.Get("/api/v1/summaries/{id}", m.Wrap(middleware.Protected, h.GetStatusHandler))
	r.Router.Get("/api/v1/summaries/{id}/docx", m.Wrap(middleware.Protected, h.GetSummaryDocxHandler))
	r.Router.Get("/healthz", m.Wrap(middleware.Public, h.HealthHandler))

	if routes.MCP != nil {
		r.Router.Handle("/mcp", m.Wrap(middleware.API, routes.MCP.ServeHTTP))
	}
	return r.Router
}

// CreateServer must run before Serve and ShutDownHandler.
func CreateServer(listenAddr string, handler http.Handler) {
	server = &http.Server{
		Addr:         listenAddr,
		Handler:      handler,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}
}

func Serve() {
	_logger.Info("Server is listening at", "address", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		_logger.Error("Server crashed", "error", err.Error(), "addr", server.Addr)
		close(crashed)
	}
}

// crashed lets ShutDownHandler stop the process when the listener fails.
var crashed = make(chan struct{})

func ShutDownHandler(shutdownParams ShutdownParams) {
	select {
	case state := <-shutdownParams.GracefulShutdown:
		_logger.Info("Server is shutting down", "signal", state.String())
	case <-crashed:
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownContextTimeout)
	defer cancel()

	done := make(chan struct{})

	go func() {
		server.SetKeepAlivesEnabled(false)

		if err := server.Shutdown(ctx); err != nil {
			_logger.Error("Could not shutdown gracefully", "error", err)
		}

		//running jobs finish before the stores go away
		shutdownParams.StopWorkers()
		shutdownParams.CloseServices()
		close(shutdownParams.StopExecution)
		close(done)
	}()

	select {
	case <-done:
		_logger.Info("Gracefully shut down")
	case <-ctx.Done():
		_logger.Info("Force Shut down")
		os.Exit(1)
	}
}
