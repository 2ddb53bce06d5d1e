// Package delivery defines the contract every transport entrypoint satisfies.
package delivery

import "context"

// Delivery is a long-running transport (HTTP API, worker push endpoint) that
// serves until its context is cancelled or the process shuts down.
type Delivery interface {
	Serve(ctx context.Context) error
}
