// Package delivery defines the contract every transport entrypoint satisfies.
package delivery

import "context"

// Delivery is a serving surface (HTTP today) started by the application runner.
type Delivery interface {
	// Serve blocks and serves until the server is shut down.
	Serve(ctx context.Context) error
}
