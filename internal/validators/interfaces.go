// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks account and vault requests before they reach the
// services. Passwords are checked for length only, and encrypted item fields
// for envelope syntax only.
package validators

import "context"

// Validator checks a request value. When fields are given only those fields
// are checked, which lets partial updates skip absent members.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
