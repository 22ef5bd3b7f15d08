// Package signal adapts identity-provider session state into navigation
// snapshots. The provider propagates the user identity asynchronously after
// session creation, so every snapshot is a fresh sample rather than a cached
// view.
package signal

import (
	"context"
	"errors"
	"sync"

	"cardspace/internal/navigation"
	"cardspace/internal/platform/middleware"
	"cardspace/pkg/platform/sentinel"
)

// Directory resolves the user behind a session. Returns an empty user ID (or
// sentinel.ErrNotFound) while identity is still propagating.
type Directory interface {
	UserIDForSession(ctx context.Context, sessionID string) (string, error)
}

// SessionSource samples session state for one validated token. The token's
// subject may lag session creation; when it is empty the directory is
// consulted on every sample so propagation is observed as it happens.
type SessionSource struct {
	claims    middleware.JWTClaims
	directory Directory
}

func NewSessionSource(claims middleware.JWTClaims, directory Directory) *SessionSource {
	return &SessionSource{claims: claims, directory: directory}
}

func (s *SessionSource) Snapshot(ctx context.Context) (navigation.Snapshot, error) {
	if s.claims.SessionID == "" {
		return navigation.Snapshot{Loaded: true, SignedIn: false}, nil
	}

	userID := s.claims.UserID
	if userID == "" && s.directory != nil {
		resolved, err := s.directory.UserIDForSession(ctx, s.claims.SessionID)
		if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
			return navigation.Snapshot{}, err
		}
		userID = resolved
	}

	return navigation.Snapshot{Loaded: true, SignedIn: true, UserID: userID}, nil
}

// MemoryDirectory is a concurrency-safe session-to-user map. It backs
// deployments without a provider directory endpoint and the tests.
type MemoryDirectory struct {
	mu       sync.RWMutex
	sessions map[string]string
}

func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{sessions: make(map[string]string)}
}

// Bind associates a session with a user, typically once the provider's
// webhook reports identity propagation.
func (d *MemoryDirectory) Bind(sessionID, userID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sessions[sessionID] = userID
}

func (d *MemoryDirectory) UserIDForSession(_ context.Context, sessionID string) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	userID, ok := d.sessions[sessionID]
	if !ok {
		return "", sentinel.ErrNotFound
	}
	return userID, nil
}

// Static replays a scripted sequence of snapshots, repeating the last one
// once the script is exhausted. Test helper for wait-loop behavior.
type Static struct {
	mu        sync.Mutex
	snapshots []navigation.Snapshot
	err       error
}

func NewStatic(snapshots ...navigation.Snapshot) *Static {
	return &Static{snapshots: snapshots}
}

// NewStaticError returns a source whose every sample fails.
func NewStaticError(err error) *Static {
	return &Static{err: err}
}

func (s *Static) Snapshot(context.Context) (navigation.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return navigation.Snapshot{}, s.err
	}
	if len(s.snapshots) == 0 {
		return navigation.Snapshot{}, nil
	}
	snap := s.snapshots[0]
	if len(s.snapshots) > 1 {
		s.snapshots = s.snapshots[1:]
	}
	return snap, nil
}
