// internal/middleware/rate_limit.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/Sheikh-Nabeel/Mystic-NFT-backend/internal/config"
	"github.com/Sheikh-Nabeel/Mystic-NFT-backend/internal/utils"
)

const visitorTTL = 3 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	visitors map[string]*visitor
	mtx      sync.Mutex
	rate     rate.Limit
	burst    int
}

func NewRateLimiter(r rate.Limit, b int) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     r,
		burst:    b,
	}
}

// Run sweeps idle visitors every minute until done is closed.
func (rl *RateLimiter) Run(done <-chan struct{}) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			rl.sweep(time.Now())
		}
	}
}

func (rl *RateLimiter) sweep(now time.Time) {
	rl.mtx.Lock()
	defer rl.mtx.Unlock()

	for ip, v := range rl.visitors {
		if now.Sub(v.lastSeen) > visitorTTL {
			delete(rl.visitors, ip)
		}
	}
}

func (rl *RateLimiter) getVisitor(ip string) *rate.Limiter {
	rl.mtx.Lock()
	defer rl.mtx.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(rl.rate, rl.burst)
		rl.visitors[ip] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.getVisitor(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, utils.APIResponse{
				StatusCode: http.StatusTooManyRequests,
				Message:    "Rate limit exceeded. Please try again later.",
			})
			return
		}

		c.Next()
	}
}

// Limiters holds the process-wide rate limiters built from configuration.
type Limiters struct {
	General *RateLimiter
	Upload  *RateLimiter
}

func NewLimiters(cfg config.UploadConfig) *Limiters {
	general := rate.Limit(cfg.GeneralRateRPS)
	if cfg.GeneralRateRPS <= 0 {
		general = rate.Inf
	}

	upload := rate.Inf
	if cfg.RatePerMinute > 0 {
		upload = rate.Every(time.Minute / time.Duration(cfg.RatePerMinute))
	}

	return &Limiters{
		General: NewRateLimiter(general, cfg.GeneralBurst),
		Upload:  NewRateLimiter(upload, cfg.UploadRateBurst),
	}
}

func (l *Limiters) Run(done <-chan struct{}) {
	go l.General.Run(done)
	go l.Upload.Run(done)
}
