// Package ratelimit limits request rates per key with token buckets.
package ratelimit

// Limiter decides whether a request charged to key may proceed.
type Limiter interface {
	Allow(key string) bool
}

// NopLimiter allows every request
type NopLimiter struct{}

// Allow always returns true
func (NopLimiter) Allow(string) bool { return true }
