package middleware

import (
	"context"
	"crypto/subtle"
	"net"
	"net/http"
	"strings"

	"github.com/akolanti/DocSummaryAPI/internal/adapter/utils"
	"github.com/akolanti/DocSummaryAPI/internal/config"
	"github.com/akolanti/DocSummaryAPI/internal/handlers"
)

const traceHeader = "X-Trace-Id"

func injectTrace(re requestResponseStruct) requestResponseStruct {
	req := re.req
	trace := req.Header.Get(traceHeader)
	if trace == "" || len(trace) > 128 {
		trace = utils.GetNewUUID()
	}
	re.logger = re.logger.With("traceId", trace)
	ctx := context.WithValue(req.Context(), config.TRACE_ID_KEY, trace)
	req.Header.Set(traceHeader, trace)
	re.writer.Header().Set(traceHeader, trace)
	re.req = req.WithContext(ctx)
	return re
}

func (m *Middleware) authenticate(re requestResponseStruct) requestResponseStruct {
	if !m.IsValidBearerToken(re.req.Header.Get("Authorization"), re) {
		re.badRequest = failureStruct{
			isBadRequest: true,
			httpCode:     http.StatusUnauthorized,
			errorMessage: "Unauthorized",
		}
		return re
	}
	re.logger.Debug("Authorized")
	return re
}

func (m *Middleware) IsValidBearerToken(authHeader string, re requestResponseStruct) bool {
	log := re.logger
	if m.noAuthBypass {
		return true
	}
	if m.authToken == "" {
		log.Warn("No API token configured")
		return false
	}
	if authHeader == "" {
		log.Warn("Empty authorization header")
		return false
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		log.Warn("No Bearer header")
		return false
	}
	if subtle.ConstantTimeCompare([]byte(strings.TrimPrefix(authHeader, "Bearer ")), []byte(m.authToken)) != 1 {
		log.Warn("Invalid authorization header")
		return false
	}

	return true
}

func (m *Middleware) rateLimiter(re requestResponseStruct) requestResponseStruct {
	ip, _, err := net.SplitHostPort(re.req.RemoteAddr)
	if err != nil {
		ip = re.req.RemoteAddr
	}

	if !m.limiter.GetLimiter(ip).Allow() {
		re.logger.Warn("Too many requests", "ip", ip)
		re.badRequest = failureStruct{
			isBadRequest: true,
			httpCode:     http.StatusTooManyRequests,
			errorMessage: "Rate limit exceeded, slow down",
		}
	}
	return re
}

func handleBadRequest(re requestResponseStruct, reject RejectFunc) {
	re.logger.Warn("Bad request", "httpCode", re.badRequest.httpCode, "errorMessage", re.badRequest.errorMessage, "IP", re.req.RemoteAddr)
	if reject != nil {
		reject(re.writer, re.req, re.badRequest.httpCode, re.badRequest.errorMessage)
		return
	}
	if re.badRequest.httpCode == http.StatusTooManyRequests {
		re.writer.Header().Set("Retry-After", "1")
	}
	handlers.WriteErrorResponse(re.writer, re.badRequest.httpCode, "", re.badRequest.errorMessage)
}
