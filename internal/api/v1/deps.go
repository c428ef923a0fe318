// internal/api/v1/deps.go
package v1

import (
	"context"
	"errors"

	"github.com/vmunix/mediascan/internal/channel"
	"github.com/vmunix/mediascan/internal/events"
	"github.com/vmunix/mediascan/internal/mediaindex"
	"github.com/vmunix/mediascan/internal/mediaserver"
)

//go:generate mockgen -destination=mocks/mock_deps.go -package=mocks github.com/vmunix/mediascan/internal/api/v1 PlexClient,ScanQueue

// ErrMissingDependency is returned when a required dependency is nil.
var ErrMissingDependency = errors.New("missing required dependency")

// ChannelHandler answers method calls for one channel.
type ChannelHandler interface {
	Handle(req channel.Request) channel.Response
}

// PlexClient is the subset of the Plex client used for status reporting.
type PlexClient interface {
	GetIdentity(ctx context.Context) (*mediaserver.Identity, error)
}

// ScanQueue reports on the background scanner.
type ScanQueue interface {
	Pending() int
	Backends() []string
}

// ServerDeps contains all dependencies for the API server.
// Required dependencies must be non-nil; optional dependencies may be nil.
type ServerDeps struct {
	// Required
	Handler ChannelHandler

	// Optional (nil if not configured)
	Scanner  ScanQueue
	Index    *mediaindex.Store
	EventLog *events.EventLog
	Bus      *events.Bus
	Plex     PlexClient
}

// Validate checks that all required dependencies are provided.
func (d ServerDeps) Validate() error {
	if d.Handler == nil {
		return errors.New("channel handler is required")
	}
	return nil
}
