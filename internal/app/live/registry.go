/*
Package live contains the realtime core for collaborative drawing rooms.

This file defines the Registry, the process-wide table of live sessions and
their room memberships. It is created once at server start and mutated only
through the operations below; the underlying collection is never exposed.
*/
package live

import (
	"sync"

	"github.com/rs/zerolog"

	"inkroom/internal/pkg/logx"
)

// Registry is the in-memory table of live sessions. One identity may hold
// several concurrent sessions (multiple tabs); the registry does not dedup.
type Registry struct {
	// mu protects sessions and every session's rooms set.
	mu sync.RWMutex

	// sessions holds every registered live session.
	sessions map[*Session]struct{}

	logger zerolog.Logger
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[*Session]struct{}),
		logger:   logx.Logger().With().Str("component", "registry").Logger(),
	}
}

// Register adds a freshly authenticated session with no room memberships.
func (r *Registry) Register(s *Session) {
	r.mu.Lock()
	r.sessions[s] = struct{}{}
	total := len(r.sessions)
	r.mu.Unlock()

	r.logger.Info().Str("user_id", s.userID).Int("total_sessions", total).Msg("Session registered.")
}

// Remove unregisters the session and signals its write pump to stop. It is
// idempotent: the done channel is closed exactly once, on the call that
// actually removes the session.
func (r *Registry) Remove(s *Session) {
	r.mu.Lock()
	_, registered := r.sessions[s]
	if registered {
		delete(r.sessions, s)
		close(s.done)
	}
	total := len(r.sessions)
	r.mu.Unlock()

	if registered {
		r.logger.Info().Str("user_id", s.userID).Int("total_sessions", total).Msg("Session removed.")
	}
}

// Join adds roomID to the session's membership set. Idempotent; a no-op for
// a session that was already removed.
func (r *Registry) Join(s *Session, roomID RoomID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[s]; !ok {
		return
	}

	s.rooms[roomID] = struct{}{}
}

// Leave removes roomID from the session's membership set. Idempotent.
func (r *Registry) Leave(s *Session, roomID RoomID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[s]; !ok {
		return
	}

	delete(s.rooms, roomID)
}

// SessionsInRoom returns every registered session currently joined to
// roomID. The snapshot reflects removals synchronously: a removed session
// never appears.
func (r *Registry) SessionsInRoom(roomID RoomID) []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var members []*Session
	for s := range r.sessions {
		if _, ok := s.rooms[roomID]; ok {
			members = append(members, s)
		}
	}

	return members
}

// Len returns the number of registered sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}

// Shutdown removes every session and signals its transport to close. Called
// once during process shutdown.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	count := len(r.sessions)
	for s := range r.sessions {
		delete(r.sessions, s)
		close(s.done)
	}
	r.mu.Unlock()

	r.logger.Info().Int("closed_sessions", count).Msg("Registry shut down.")
}
