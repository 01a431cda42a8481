// @title           Document Summary API
// @version         1.0
// @description     Classifies uploaded or pasted documents as legal or general and summarizes them with an LLM.
// @termsOfService  http://swagger.io/terms/

// @contact.name    API Support
// @contact.url
// @contact.email   ank.github@gmail.com

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/akolanti/DocSummaryAPI/internal/config"
	"github.com/akolanti/DocSummaryAPI/internal/customHttpClient"
	"github.com/akolanti/DocSummaryAPI/internal/data/redisStore"
	"github.com/akolanti/DocSummaryAPI/internal/data/store"
	"github.com/akolanti/DocSummaryAPI/internal/document"
	"github.com/akolanti/DocSummaryAPI/internal/domain/jobModel"
	"github.com/akolanti/DocSummaryAPI/internal/domain/summaryModel"
	"github.com/akolanti/DocSummaryAPI/internal/handlers"
	"github.com/akolanti/DocSummaryAPI/internal/job"
	"github.com/akolanti/DocSummaryAPI/internal/mcpServer"
	"github.com/akolanti/DocSummaryAPI/internal/middleware"
	"github.com/akolanti/DocSummaryAPI/internal/server"
	"github.com/akolanti/DocSummaryAPI/internal/summary"
	"github.com/akolanti/DocSummaryAPI/internal/summary/llm"
	"github.com/akolanti/DocSummaryAPI/internal/summary/llm/breaker"
	"github.com/akolanti/DocSummaryAPI/internal/summary/llm/gemini"
	"github.com/akolanti/DocSummaryAPI/internal/summary/llm/openaichat"
	"github.com/akolanti/DocSummaryAPI/internal/worker"
	"github.com/akolanti/DocSummaryAPI/pkg/logger_i"
	"github.com/sony/gobreaker/v2"
)

const version = "1.0.0"

var listenAddr string

func main() {
	cfg, err := config.Load()
	if err != nil {
		var initErr *config.InitError
		if errors.As(err, &initErr) {
			fmt.Fprintln(os.Stderr, "invalid configuration:", initErr)
		} else {
			fmt.Fprintln(os.Stderr, "could not load configuration:", err)
		}
		os.Exit(1)
	}

	logger_i.Init(cfg.LogLevel, cfg.JSONLogs)
	var logger = logger_i.NewLogger("main")

	flag.StringVar(&listenAddr, "listen-addr", cfg.ListenAddr, "server listen address")
	flag.Parse()

	//init buffered job channel
	jobChannel := make(chan jobModel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	jobStore, summaryCache, healthChecks := initStores(serviceContext, cfg, logger)

	provider, err := newProvider(serviceContext, cfg)
	if err != nil {
		logger.Error("LLM provider failed to initialize. Shutting down.", "provider", cfg.LLMProvider, "error", err)
		os.Exit(1)
	}
	guarded := breaker.Wrap(cfg.LLMProvider, provider)
	healthChecks["llm"] = func(ctx context.Context) error {
		if guarded.State() == gobreaker.StateOpen {
			return fmt.Errorf("%s circuit is open", cfg.LLMProvider)
		}
		return nil
	}

	summaryService := summary.NewService(guarded, guarded, summaryCache, cfg.MaxDocumentLen)

	logger.Info("Starting job service")
	jobService := job.InitJobService(job.ServiceConfig{
		JobChannel:        jobChannel,
		DispatcherChannel: dispatcherChannel,
		JobStore:          jobStore,
	})

	//init worker pool
	pool := worker.NewPool(worker.PoolConfig{
		JobService:        jobService,
		SummaryService:    summaryService,
		MinWorkerCount:    config.MinWorkerCount,
		MaxWorkerCount:    config.MaxWorkerCount,
		IdleWorkerTimeout: config.IdleWorkerTimeout,
	})
	pool.Start()

	handler, err := handlers.NewHandler(handlers.Deps{
		Loader:         document.NewLoader(document.NewFileExtractor(), cfg.UploadDir),
		SummaryService: summaryService,
		JobService:     jobService,
		MaxUploadSize:  cfg.MaxUploadSize,
		MaxDocumentLen: cfg.MaxDocumentLen,
		HealthChecks:   healthChecks,
	})
	if err != nil {
		logger.Error("Could not load page templates", "error", err)
		os.Exit(1)
	}

	mw := middleware.New(middleware.Config{
		AuthToken:          cfg.AuthToken,
		NoAuthBypass:       cfg.NoAuthBypass,
		RateLimitPerSecond: cfg.RateLimitPerSecond,
		RateLimitBurst:     cfg.RateLimitBurst,
	})

	router := server.NewRouter(server.Routes{
		Handler:    handler,
		Middleware: mw,
		MCP:        mcpServer.NewHTTPHandler(mcpServer.NewServer(summaryService, version)),
	})

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		StopWorkers:      pool.Stop,
		CloseServices:    closeExternalServices,
	}
	server.CreateServer(listenAddr, router)
	go server.ShutDownHandler(shutdownParams)
	go server.Serve()

	<-stopExecution
	logger.Info("Server stopped")
}

// initStores prefers Redis and falls back to process memory when it is
// disabled or offline.
func initStores(ctx context.Context, cfg config.Config, logger *logger_i.Logger) (jobModel.JobStore, summaryModel.SummaryCache, map[string]handlers.HealthCheck) {
	checks := map[string]handlers.HealthCheck{}

	var jobStore jobModel.JobStore = store.InitInMemoryJobStore()
	var cache summaryModel.SummaryCache
	if cfg.CacheEnabled {
		cache = store.InitInMemorySummaryCache(cfg.CacheTTL, config.InMemoryCacheMaxEntries)
	}

	if !cfg.RedisEnabled {
		logger.Info("Redis disabled, using in-memory stores")
		return jobStore, cache, checks
	}

	opts := redisStore.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
	if redisJobs := store.GetRedisJobStore(ctx, opts); redisJobs != nil {
		jobStore = redisJobs
		checks["redis_jobs"] = redisStore.GetRedisStore(ctx, opts, config.RedisJobStore).Ping
	} else {
		logger.Error("Redis job store is offline, using in-memory store")
	}

	if cfg.CacheEnabled {
		if redisCache := store.GetRedisSummaryCache(ctx, opts, cfg.CacheTTL); redisCache != nil {
			cache = redisCache
			checks["redis_cache"] = redisStore.GetRedisStore(ctx, opts, config.RedisSummaryCache).Ping
		} else {
			logger.Error("Redis summary cache is offline, using in-memory cache")
		}
	}
	return jobStore, cache, checks
}

func newProvider(ctx context.Context, cfg config.Config) (llm.Provider, error) {
	httpClient := customHttpClient.NewPooledClient()
	switch cfg.LLMProvider {
	case config.LLMProviderOpenAI:
		return openaichat.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.LLMModel, cfg.LLMTemperature, httpClient)
	default:
		return gemini.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.LLMModel, cfg.LLMTemperature, httpClient)
	}
}
