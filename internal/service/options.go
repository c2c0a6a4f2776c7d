package service

import (
	"math/rand/v2"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// DefaultMaxImageSize is the largest recipe image accepted, in bytes
const DefaultMaxImageSize int64 = 5 * 1024 * 1024

type options struct {
	now          func() time.Time
	randSource   rand.Source
	bcryptCost   int
	maxImageSize int64
}

// Option customises a service
type Option func(*options)

// WithClock replaces time.Now, mostly for tests
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithRandSource seeds avatar colour selection
func WithRandSource(src rand.Source) Option {
	return func(o *options) { o.randSource = src }
}

// WithBcryptCost sets the password hashing cost
func WithBcryptCost(cost int) Option {
	return func(o *options) { o.bcryptCost = cost }
}

// WithMaxImageSize caps recipe image uploads
func WithMaxImageSize(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxImageSize = n
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		now:          func() time.Time { return time.Now().UTC() },
		bcryptCost:   bcrypt.DefaultCost,
		maxImageSize: DefaultMaxImageSize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
