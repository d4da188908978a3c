package api

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

const (
	maxTrackedClients  = 10000
	clientIdleDuration = 30 * time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientRateLimiter keeps a token bucket per client key.
type clientRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	limit   rate.Limit
	burst   int
}

func newClientRateLimiter(limit rate.Limit, burst int) *clientRateLimiter {
	return &clientRateLimiter{
		clients: make(map[string]*clientLimiter),
		limit:   limit,
		burst:   burst,
	}
}

func (limiter *clientRateLimiter) allow(key string, now time.Time) bool {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	client, ok := limiter.clients[key]
	if !ok {
		if len(limiter.clients) >= maxTrackedClients {
			limiter.evictIdleLocked(now)
		}
		client = &clientLimiter{limiter: rate.NewLimiter(limiter.limit, limiter.burst)}
		limiter.clients[key] = client
	}
	client.lastSeen = now
	return client.limiter.AllowN(now, 1)
}

func (limiter *clientRateLimiter) evictIdleLocked(now time.Time) {
	for key, client := range limiter.clients {
		if now.Sub(client.lastSeen) > clientIdleDuration {
			delete(limiter.clients, key)
		}
	}
	if len(limiter.clients) >= maxTrackedClients {
		limiter.clients = make(map[string]*clientLimiter)
	}
}

func (handler *Handler) RateLimit(c *fiber.Ctx) error {
	if !handler.clientLimiter.allow(requestLimiterKey(c), handler.now()) {
		handler.logger.WithFields(requestFields(c)).Warn("rate limit exceeded")
		c.Set(fiber.HeaderRetryAfter, "1")
		return apiError(c, fiber.StatusTooManyRequests, "too many requests")
	}
	return c.Next()
}
