package retry

import (
	"math"
	"math/rand"
	"time"

	"github.com/vvka-141/fsproc/pkg/fsproc"
)

// ExponentialBackoff grows the delay by a constant multiplier per attempt,
// caps it at maxDelay, and spreads it by a jitter factor.
type ExponentialBackoff struct {
	initialDelay time.Duration
	maxDelay     time.Duration
	multiplier   float64

	// maxAttempts counts retries after the first call; negative means unlimited.
	maxAttempts int

	// jitter of 0.1 spreads delays by +/- 10%.
	jitter     float64
	jitterFunc func() float64
}

var _ fsproc.BackoffStrategy = (*ExponentialBackoff)(nil)

// BackoffOption configures an ExponentialBackoff.
type BackoffOption func(*ExponentialBackoff)

// WithInitialDelay sets the delay before the first retry.
func WithInitialDelay(d time.Duration) BackoffOption {
	return func(b *ExponentialBackoff) { b.initialDelay = d }
}

// WithMaxDelay caps the delay between retries.
func WithMaxDelay(d time.Duration) BackoffOption {
	return func(b *ExponentialBackoff) { b.maxDelay = d }
}

// WithMultiplier sets the growth factor between attempts.
func WithMultiplier(m float64) BackoffOption {
	return func(b *ExponentialBackoff) { b.multiplier = m }
}

// WithJitter sets the jitter factor in [0, 1].
func WithJitter(j float64) BackoffOption {
	return func(b *ExponentialBackoff) { b.jitter = j }
}

// WithJitterFunc replaces the random source used for jitter. Tests pass a
// constant function to get deterministic delays.
func WithJitterFunc(f func() float64) BackoffOption {
	return func(b *ExponentialBackoff) { b.jitterFunc = f }
}

// NewExponentialBackoff returns a strategy allowing maxAttempts retries,
// starting from fsproc.DefaultRetryInitialDelay and capped at
// fsproc.DefaultRetryMaxDelay unless overridden.
func NewExponentialBackoff(maxAttempts int, opts ...BackoffOption) *ExponentialBackoff {
	b := &ExponentialBackoff{
		initialDelay: fsproc.DefaultRetryInitialDelay,
		maxDelay:     fsproc.DefaultRetryMaxDelay,
		multiplier:   2.0,
		maxAttempts:  maxAttempts,
		jitter:       0.1,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NextDelay returns initialDelay * multiplier^attempt, capped and jittered.
func (b *ExponentialBackoff) NextDelay(attempt int) time.Duration {
	delayMs := float64(b.initialDelay.Milliseconds()) * math.Pow(b.multiplier, float64(attempt))
	if capMs := float64(b.maxDelay.Milliseconds()); delayMs > capMs {
		delayMs = capMs
	}

	if b.jitter > 0 {
		random := b.jitterFunc
		if random == nil {
			random = rand.Float64
		}
		// map [0,1) onto [-1,1)
		offset := (random() - 0.5) * 2.0
		delayMs *= 1.0 + b.jitter*offset
	}

	return time.Duration(delayMs) * time.Millisecond
}

// MaxAttempts returns the number of retries allowed after the first call.
func (b *ExponentialBackoff) MaxAttempts() int { return b.maxAttempts }

func (b *ExponentialBackoff) InitialDelay() time.Duration { return b.initialDelay }

func (b *ExponentialBackoff) MaxDelay() time.Duration { return b.maxDelay }

func (b *ExponentialBackoff) Multiplier() float64 { return b.multiplier }

func (b *ExponentialBackoff) Jitter() float64 { return b.jitter }
