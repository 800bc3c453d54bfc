package jobs

import (
	"time"

	log "github.com/sirupsen/logrus"
	"motodealer-api/middleware"
)

// LimiterCleanupJob periodically drops rate limiter buckets of clients that have gone
// quiet, so the visitor map does not grow without bound.
type LimiterCleanupJob struct {
	limiter *middleware.RateLimiter
	maxIdle time.Duration
	ticker  *time.Ticker
	done    chan struct{}
}

func NewLimiterCleanupJob(limiter *middleware.RateLimiter, interval, maxIdle time.Duration) *LimiterCleanupJob {
	return &LimiterCleanupJob{
		limiter: limiter,
		maxIdle: maxIdle,
		ticker:  time.NewTicker(interval),
		done:    make(chan struct{}),
	}
}

// Start runs the job in its own goroutine until Stop is called.
func (j *LimiterCleanupJob) Start() {
	log.Info("Limiter cleanup job started")

	go func() {
		for {
			select {
			case <-j.ticker.C:
				j.cleanup()
			case <-j.done:
				log.Info("Limiter cleanup job stopped")
				return
			}
		}
	}()
}

func (j *LimiterCleanupJob) Stop() {
	j.ticker.Stop()
	close(j.done)
}

func (j *LimiterCleanupJob) cleanup() {
	removed := j.limiter.CleanupLimiters(j.maxIdle)
	if removed > 0 {
		log.WithFields(log.Fields{
			"removed":   removed,
			"remaining": j.limiter.Size(),
		}).Debug("Pruned idle rate limiters")
	}
}
