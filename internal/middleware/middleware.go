package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/akolanti/DocSummaryAPI/internal/adapter/utils"
	"github.com/akolanti/DocSummaryAPI/internal/metrics"
	"github.com/akolanti/DocSummaryAPI/pkg/logger_i"
	"golang.org/x/time/rate"
)

type requestResponseStruct struct {
	writer     http.ResponseWriter
	req        *http.Request
	badRequest failureStruct
	logger     *logger_i.Logger
}

type failureStruct struct {
	isBadRequest bool
	httpCode     int
	errorMessage string
}

// Policy selects the checks a route goes through. Every route gets a trace id
// and request metrics. Reject, when set, replaces the JSON error body.
type Policy struct {
	Auth      bool
	RateLimit bool
	Reject    RejectFunc
}

// RejectFunc writes the response for a request the policy turned away.
type RejectFunc func(w http.ResponseWriter, r *http.Request, code int, message string)

var (
	Public    = Policy{}
	Limited   = Policy{RateLimit: true}
	Protected = Policy{Auth: true}
	API       = Policy{Auth: true, RateLimit: true}
)

type Config struct {
	AuthToken          string
	NoAuthBypass       bool
	RateLimitPerSecond float64
	RateLimitBurst     int
}

type Middleware struct {
	authToken    string
	noAuthBypass bool
	limiter      *IPRateLimiter
	logger       *logger_i.Logger
}

func New(cfg Config) *Middleware {
	m := &Middleware{
		authToken:    cfg.AuthToken,
		noAuthBypass: cfg.NoAuthBypass,
		limiter:      NewIPRateLimiter(rate.Limit(cfg.RateLimitPerSecond), cfg.RateLimitBurst),
		logger:       logger_i.NewLogger("middleware"),
	}
	if m.noAuthBypass {
		m.logger.Warn("API authentication is bypassed")
	} else if m.authToken == "" {
		m.logger.Warn("API_AUTH_TOKEN is empty, every protected route will answer 401")
	}
	return m
}

func (m *Middleware) Wrap(policy Policy, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &metrics.HttpStatusRecorder{ResponseWriter: w, Status: http.StatusOK}
		re := m.processRequest(policy, requestResponseStruct{req: r, writer: rec})

		if re.badRequest.isBadRequest {
			handleBadRequest(re, policy.Reject)
		} else {
			next(rec, re.req)
		}

		route := utils.RoutePattern(re.req)
		metrics.HttpRequestsTotal.WithLabelValues(route, strconv.Itoa(rec.Status)).Inc()
		re.logger.Debug("Request done", "route", route, "status", rec.Status, "elapsed", time.Since(start).String())
	}
}

func (m *Middleware) processRequest(policy Policy, re requestResponseStruct) requestResponseStruct {
	re.logger = m.logger
	re = injectTrace(re)
	re.logger.Debug("New request received", "method", re.req.Method, "path", re.req.URL.Path)

	if policy.Auth {
		re = m.authenticate(re)
		if re.badRequest.isBadRequest {
			return re //stop if auth fails
		}
	}
	if policy.RateLimit {
		re = m.rateLimiter(re)
	}
	return re
}
