// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"
)

var (
	// ErrUserQuit is returned when the prompt is cancelled with esc or ctrl+c.
	ErrUserQuit = errors.New("cancelled by user")

	// ErrEmptyInput is returned when a required prompt was submitted empty.
	ErrEmptyInput = errors.New("empty input")
)

// HumanizeError turns transport failures into a short hint for the user.
func HumanizeError(err error) string {
	if err == nil {
		return ""
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "server is unreachable, check the address and your network"
	}

	return err.Error()
}
