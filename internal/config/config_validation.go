// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// minTokenSignKeyLen rejects toy secrets for HS256.
const minTokenSignKeyLen = 32

// minKDFIterations is the lowest accepted work factor override.
const minKDFIterations = 1000

// validate checks that the final merged [StructuredConfig] can run a server.
func (cfg *StructuredConfig) validate() error {
	if len(cfg.App.TokenSignKey) < minTokenSignKeyLen {
		return fmt.Errorf("%w: token sign key must be at least %d bytes", ErrInvalidAppConfigs, minTokenSignKeyLen)
	}
	if cfg.App.TokenIssuer == "" || cfg.App.TokenDuration <= 0 {
		return fmt.Errorf("%w: token issuer and duration are required", ErrInvalidAppConfigs)
	}

	dsn := cfg.Storage.DB.DSN
	if !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") && !strings.HasPrefix(dsn, "sqlite://") {
		return fmt.Errorf("%w: unsupported or empty DSN", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	sec := cfg.Security
	if sec.MaxFailedAttempts <= 0 || sec.LockoutDuration <= 0 || sec.KDFConcurrency <= 0 {
		return ErrInvalidSecurityConfigs
	}
	if (sec.KDFFastIterations != 0 && sec.KDFFastIterations < minKDFIterations) ||
		(sec.KDFSlowIterations != 0 && sec.KDFSlowIterations < minKDFIterations) {
		return fmt.Errorf("%w: kdf iterations below %d", ErrInvalidSecurityConfigs, minKDFIterations)
	}

	if cfg.Workers.SessionCleanupInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.App.SessionTTL <= 0 {
		return ErrInvalidAppConfigs
	}

	return nil
}
