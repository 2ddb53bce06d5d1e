// Package lifecycle holds shared lifecycle constants for graceful startup and shutdown.
package lifecycle

import "time"

// DefaultTimeout bounds startup pings and graceful shutdown of deliveries.
const DefaultTimeout = 10 * time.Second
