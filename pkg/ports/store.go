// Package ports defines the interfaces between the engine core and its
// adapters.
package ports

import (
	"context"

	"github.com/fabulist/fabula/pkg/domain"
)

// SessionStore persists playback snapshots so sessions can stop and
// resume. The engine itself never touches a store; hosts opt in.
type SessionStore interface {
	// Save persists the snapshot for a given session ID.
	Save(ctx context.Context, sessionID string, snap *domain.Snapshot) error

	// Load retrieves the snapshot for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.Snapshot, error)

	// Delete removes the snapshot for a given session ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the ids of all stored sessions.
	List(ctx context.Context) ([]string, error)
}
