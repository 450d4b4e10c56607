package config

import "time"

const (
	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	// The booking and feedback endpoints historically moved between local
	// and hosted deployments, so both targets are configuration rather
	// than constants. The feedback URL falls back to the booking URL when
	// unset because most deployments serve both from one host.
	DefaultBookingAPIBaseURL = "http://localhost:3000"
	DefaultUpstreamTimeout   = 10 * time.Second

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)
