// Package store persists client session state across process restarts. It
// is the Go counterpart of the browser localStorage the dashboard used to
// rely on: two independent keys, an opaque token and a serialized user
// record, with last-write-wins semantics.
package store

import "context"

// Keys under which session state is persisted.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

type (
	// Session is the persisted pair. A zero Token means no session; User is
	// the raw serialized user record. Both may legitimately come back
	// partial after a crash mid-clear, and callers must treat a partial
	// session as no session.
	Session struct {
		Token string
		User  []byte
	}

	// SessionStore is the port both the gateway (clear on expiry) and the
	// session manager (save on login, clear on logout) write through.
	SessionStore interface {
		// SaveSession writes token and user together; a reader never
		// observes one key updated without the other.
		SaveSession(ctx context.Context, token string, user []byte) error

		// LoadSession returns whatever is persisted. Missing keys come back
		// as zero values, not errors.
		LoadSession(ctx context.Context) (Session, error)

		// ClearSession removes both keys together.
		ClearSession(ctx context.Context) error
	}
)

// IsComplete reports whether both keys are present.
func (s Session) IsComplete() bool {
	return s.Token != "" && len(s.User) > 0
}
