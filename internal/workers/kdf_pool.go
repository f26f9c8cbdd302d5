// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/semaphore"
)

// KDFPool bounds the number of PBKDF2 derivations running at once.
// A derivation costs hundreds of milliseconds of CPU; without a bound a burst
// of logins would starve every other request.
type KDFPool struct {
	sem  *semaphore.Weighted
	size int64
}

// NewKDFPool returns a pool admitting size concurrent derivations.
// A non-positive size means runtime.NumCPU.
func NewKDFPool(size int) *KDFPool {
	if size <= 0 {
		size = runtime.NumCPU()
	}
	return &KDFPool{
		sem:  semaphore.NewWeighted(int64(size)),
		size: int64(size),
	}
}

// Size returns the configured concurrency.
func (p *KDFPool) Size() int {
	return int(p.size)
}

// Do waits for a free slot and runs fn in the calling goroutine.
// If ctx is done before a slot frees up, fn is not run and the context
// error is returned.
func (p *KDFPool) Do(ctx context.Context, fn func()) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("kdf pool: %w", err)
	}
	defer p.sem.Release(1)

	fn()
	return nil
}
