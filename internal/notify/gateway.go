// Package notify defines the outbound messaging surface the application
// depends on. Transport details (Telegram, chat ids, markup) live behind the
// Gateway interface so handlers and the scheduler stay transport-agnostic.
package notify

import "context"

// Action is an opaque token carried by a menu button and echoed back when the
// button is pressed. Encoding is owned by the transport adapter.
type Action struct {
	Kind string
	Arg  string
}

// MenuOption is one selectable button.
type MenuOption struct {
	Label  string
	Action Action
}

// Gateway delivers formatted messages to the group chat.
type Gateway interface {
	// SendText posts a plain message to the group.
	SendText(ctx context.Context, text string) error
	// SendMenu posts a message with a button per option and returns the
	// message id for later cleanup.
	SendMenu(ctx context.Context, text string, options []MenuOption) (int, error)
	// DeleteMessage removes a previously sent message. Best-effort: failures
	// are logged by the implementation, not returned.
	DeleteMessage(ctx context.Context, messageID int)
	// Alert answers an interaction with a popup shown only to the actor.
	Alert(ctx context.Context, interactionID string, text string) error
}
