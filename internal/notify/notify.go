// Package notify carries the two presentation side-channels the core emits
// into: transient user notifications and navigation requests. The core only
// triggers them; rendering (toast, redirect, terminal output) belongs to
// whatever drives the core.
package notify

import "time"

type (
	Level string

	// Route names a presentation entry point the core can request.
	Route string

	// Notification is a transient user-facing message. DismissAfter is the
	// auto-dismiss delay the presentation layer should honor.
	Notification struct {
		Level        Level
		Message      string
		DismissAfter time.Duration
	}

	// Notifier receives every outcome notification the core emits.
	Notifier interface {
		Notify(n Notification)
	}

	// Navigator receives navigation requests, e.g. the forced return to the
	// login route after session expiry.
	Navigator interface {
		NavigateTo(route Route)
	}
)

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"

	// RouteLogin is the unauthenticated entry point.
	RouteLogin Route = "login"
	// RouteDashboard is the authenticated landing page.
	RouteDashboard Route = "dashboard"

	DefaultDismissAfter = 5 * time.Second
)

// New builds a notification with the default dismiss delay.
func New(level Level, message string) Notification {
	return Notification{Level: level, Message: message, DismissAfter: DefaultDismissAfter}
}
