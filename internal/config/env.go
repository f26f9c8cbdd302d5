// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
)

// tokenSignKeyFileEnv names a file holding the token signing key, for
// deployments that mount secrets instead of exporting them.
const tokenSignKeyFileEnv = "APP_TOKEN_SIGN_KEY_FILE"

// parseEnv builds a config from environ, a list of KEY=VALUE pairs in the
// form returned by os.Environ. Fields are mapped through the `env` and
// `envPrefix` tags on [StructuredConfig].
func parseEnv(environ []string) (*StructuredConfig, error) {
	vars := env.ToMap(environ)

	cfg, err := env.ParseAsWithOptions[StructuredConfig](env.Options{Environment: vars})
	if err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}

	if cfg.App.TokenSignKey == "" {
		if path := vars[tokenSignKeyFileEnv]; path != "" {
			key, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("error reading %s: %w", tokenSignKeyFileEnv, err)
			}
			cfg.App.TokenSignKey = strings.TrimSpace(string(key))
		}
	}

	return &cfg, nil
}
