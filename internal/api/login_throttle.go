package api

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// loginThrottle locks a key out once it collects limit failures inside window.
// Keys with no recent failures are swept at most once per window.
type loginThrottle struct {
	mu        sync.Mutex
	limit     int
	window    time.Duration
	failures  map[string][]time.Time
	lastSweep time.Time
}

func newLoginThrottle(limit int, window time.Duration) *loginThrottle {
	return &loginThrottle{
		limit:    limit,
		window:   window,
		failures: make(map[string][]time.Time),
	}
}

// retryAfter reports how long key stays locked out. Zero means the attempt may proceed.
func (throttle *loginThrottle) retryAfter(key string, now time.Time) time.Duration {
	throttle.mu.Lock()
	defer throttle.mu.Unlock()

	recent := throttle.recentLocked(key, now)
	if len(recent) < throttle.limit {
		return 0
	}
	oldest := recent[len(recent)-throttle.limit]
	return oldest.Add(throttle.window).Sub(now)
}

func (throttle *loginThrottle) fail(key string, now time.Time) {
	throttle.mu.Lock()
	defer throttle.mu.Unlock()

	throttle.sweepLocked(now)
	throttle.failures[key] = append(throttle.recentLocked(key, now), now)
}

func (throttle *loginThrottle) clear(key string) {
	throttle.mu.Lock()
	defer throttle.mu.Unlock()
	delete(throttle.failures, key)
}

func (throttle *loginThrottle) tracked() int {
	throttle.mu.Lock()
	defer throttle.mu.Unlock()
	return len(throttle.failures)
}

// recentLocked drops failures older than the window and returns the rest oldest first.
func (throttle *loginThrottle) recentLocked(key string, now time.Time) []time.Time {
	cutoff := now.Add(-throttle.window)
	stamps := slices.DeleteFunc(throttle.failures[key], func(stamp time.Time) bool {
		return !stamp.After(cutoff)
	})
	if len(stamps) == 0 {
		delete(throttle.failures, key)
		return nil
	}
	slices.SortFunc(stamps, time.Time.Compare)
	throttle.failures[key] = stamps
	return stamps
}

func (throttle *loginThrottle) sweepLocked(now time.Time) {
	if now.Sub(throttle.lastSweep) < throttle.window {
		return
	}
	throttle.lastSweep = now
	for key := range throttle.failures {
		throttle.recentLocked(key, now)
	}
}

// loginAttemptKey scopes failures to the client address and the submitted email.
func loginAttemptKey(c *fiber.Ctx, email string) string {
	address := strings.TrimSpace(c.IP())
	if address == "" {
		address = "unknown"
	}
	return address + "|" + strings.ToLower(strings.TrimSpace(email))
}
