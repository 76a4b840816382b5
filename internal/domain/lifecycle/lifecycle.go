// Package lifecycle holds values shared by components that start and stop with the application.
package lifecycle

import "time"

// DefaultTimeout bounds startup pings, migrations and graceful shutdown.
const DefaultTimeout = 10 * time.Second
