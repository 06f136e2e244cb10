package ports

import (
	"context"
)

// Gateway is an intake surface that feeds messages into the analysis service
type Gateway interface {
	// Name identifies the gateway in logs
	Name() string

	// Start starts serving in the background
	Start() error

	// Stop stops the gateway, waiting for in-flight work until ctx is done
	Stop(ctx context.Context) error
}
