package config

import (
	"log/slog"
	"time"
)

const (
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute
	JobTimeout                      = 120 * time.Second

	//serverTimeouts
	//the summarize call blocks on two model round trips, so writes get a long budget
	ReadTimeout            = 30 * time.Second
	WriteTimeout           = 180 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//job requests buffer limit
	BufferLimit = 100

	//uploads
	UploadDir            = "uploads"
	MaxUploadSize  int64 = 32 << 20 //32mb
	MaxDocumentLen       = 1_000_000
	PDFPageTimeout       = 10 * time.Second

	//llm
	LLMProviderGemini = "gemini"
	LLMProviderOpenAI = "openai"

	GeminiModelName          = "gemini-2.0-flash"
	OpenAIModelName          = "gpt-4o-mini"
	ModelTemperature float32 = 0.3

	BreakerFailureThreshold uint32 = 5
	BreakerOpenTimeout             = 30 * time.Second

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	//redis has 16 DB we can use
	RedisJobStore     = 0
	RedisSummaryCache = 1

	//redis timeouts
	RedisJobStoreTTL     = 24 * time.Hour
	RedisSummaryCacheTTL = 6 * time.Hour
	RedisIOTimeout       = 30 * time.Second

	//in-memory fallback for the summary cache
	InMemoryCacheMaxEntries = 500
)
