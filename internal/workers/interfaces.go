// Package workers provides background and bounded-concurrency helpers of the
// server.
//
// A [KDFPool] caps concurrent key derivations and the [SessionJanitor]
// purges expired sessions on a ticker.
package workers

import "context"

// Worker is a background task. Run returns immediately; the task stops when
// ctx is cancelled.
type Worker interface {
	Run(ctx context.Context)
}
