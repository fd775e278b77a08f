package view

import "context"

// Kind classifies a notification's tone.
type Kind uint8

const (
	// KindInfo is an exported constant or variable used by the view controller.
	KindInfo Kind = iota
	// KindSuccess is an exported constant or variable used by the view controller.
	KindSuccess
	// KindError is an exported constant or variable used by the view controller.
	KindError
)

// String returns the conventional lowercase name.
func (k Kind) String() string {
	switch k {
	case KindInfo:
		return "info"
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Mode selects the presentation surface.
type Mode uint8

const (
	// ModeToast is a transient corner notification.
	ModeToast Mode = iota
	// ModeModal blocks until dismissed or an action is chosen.
	ModeModal
)

// Action is one choice offered by a modal notification. Tag is what
// [Notifier.Notify] returns when the user picks it.
type Action struct {
	Label string
	Tag   string
}

// Notification is the complete description of one toast or modal.
type Notification struct {
	Kind    Kind
	Title   string
	Message string
	Mode    Mode
	Actions []Action
}

// Notifier presents notifications to the user. Notify returns the Tag of
// the chosen action, or "" when the notification was dismissed or offered
// no actions. Implementations must be safe to call from the UI thread and
// must not call back into the controller.
type Notifier interface {
	Notify(ctx context.Context, n Notification) (string, error)
}

// Navigator performs full-page navigation to a target page identifier. The
// controller never inspects the outcome beyond the error.
type Navigator interface {
	Navigate(ctx context.Context, target string) error
}
