package config

import (
	"runtime"
	"time"
)

// Built-in defaults, applied after every other source.
const (
	DefaultTokenIssuer            = "lockbox"
	DefaultTokenDuration          = 24 * time.Hour
	DefaultSessionTTL             = 30 * time.Minute
	DefaultMaxFailedAttempts      = 5
	DefaultLockoutDuration        = 15 * time.Minute
	DefaultHTTPAddress            = "localhost:8080"
	DefaultGRPCAddress            = "localhost:9090"
	DefaultRequestTimeout         = 30 * time.Second
	DefaultAdapterAddress         = "http://localhost:8080"
	DefaultSessionCleanupInterval = 10 * time.Minute
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   DefaultTokenIssuer,
			TokenDuration: DefaultTokenDuration,
			SessionTTL:    DefaultSessionTTL,
			Version:       "dev",
		},
		Security: Security{
			MaxFailedAttempts: DefaultMaxFailedAttempts,
			LockoutDuration:   DefaultLockoutDuration,
			KDFConcurrency:    runtime.NumCPU(),
		},
		Server: Server{
			HTTPAddress:    DefaultHTTPAddress,
			GRPCAddress:    DefaultGRPCAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    DefaultAdapterAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Workers: Workers{
			SessionCleanupInterval: DefaultSessionCleanupInterval,
		},
	}
}
