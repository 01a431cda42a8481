package middleware

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type IPRateLimiter struct {
	ips       map[string]*limiterEntry
	mu        sync.Mutex
	rateLimit rate.Limit
	burstRate int
	lastSweep time.Time
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{ips: make(map[string]*limiterEntry), rateLimit: r, burstRate: b, lastSweep: time.Now()}
}

func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()
	now := time.Now()
	if now.Sub(i.lastSweep) > limiterIdleTTL {
		i.sweep(now)
	}
	entry, exists := i.ips[ip]
	if !exists {
		entry = &limiterEntry{limiter: rate.NewLimiter(i.rateLimit, i.burstRate)}
		i.ips[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// sweep drops limiters of clients not seen for limiterIdleTTL.
func (i *IPRateLimiter) sweep(now time.Time) {
	for ip, entry := range i.ips {
		if now.Sub(entry.lastSeen) > limiterIdleTTL {
			delete(i.ips, ip)
		}
	}
	i.lastSweep = now
}

//TODO: when the users grow
// I must offload this key-value to redis
