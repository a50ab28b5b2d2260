// Package delivery holds the entry points that expose the use cases.
package delivery

import "context"

// Delivery is a long-running server started from main.
type Delivery interface {
	Serve(ctx context.Context) error
}
