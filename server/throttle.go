package server

import (
	"strings"
	"time"

	cache "github.com/go-pkgz/expirable-cache/v3"
)

// maxThrottled bounds how many names are remembered, so spraying unique
// names can't grow memory without limit.
const maxThrottled = 10000

// throttle delays login attempts for names that recently failed one.
type throttle struct {
	interval time.Duration
	failures cache.Cache[string, time.Time]
	now      func() time.Time
	sleep    func(time.Duration)
}

func newThrottle(interval time.Duration) *throttle {
	return &throttle{
		interval: interval,
		failures: cache.NewCache[string, time.Time]().WithTTL(interval).WithMaxKeys(maxThrottled),
		now:      time.Now,
		sleep:    time.Sleep,
	}
}

// waitIfNeeded blocks until interval has passed since the last failure for
// name, and returns how long it waited.
func (t *throttle) waitIfNeeded(name string) time.Duration {
	last, found := t.failures.Get(strings.ToLower(name))
	if !found {
		return 0
	}
	wait := t.interval - t.now().Sub(last)
	if wait <= 0 {
		return 0
	}
	t.sleep(wait)
	return wait
}

func (t *throttle) recordFailure(name string) {
	t.failures.Set(strings.ToLower(name), t.now(), 0)
}

func (t *throttle) clearFailure(name string) {
	t.failures.Invalidate(strings.ToLower(name))
}
