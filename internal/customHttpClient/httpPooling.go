package customHttpClient

import (
	"net/http"

	"github.com/akolanti/DocSummaryAPI/internal/config"
)

// NewPooledClient is shared by the model clients so classify and summarize
// calls reuse connections to the provider. No client timeout is set; callers
// bound each call through its context.
func NewPooledClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        config.MaxIdleConns,
			MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
			IdleConnTimeout:     config.IdleConnTimeout,
			ForceAttemptHTTP2:   true,
		},
	}
}
