package telegram

import (
	"errors"
	"strings"

	"github.com/felixgeelhaar/rota/internal/notify"
)

// Callback action kinds. Every inline button carries "kind|arg" so one
// dispatcher can route all interactions without prefix guessing.
const (
	ActionDepleted   = "oos"
	ActionBought     = "bought"
	ActionDifficulty = "diff"
	ActionCancel     = "cancel"
)

// ErrBadAction is returned for callback payloads this bot did not produce.
var ErrBadAction = errors.New("malformed callback action")

// EncodeAction serializes an action into a callback payload.
func EncodeAction(a notify.Action) string {
	if a.Arg == "" {
		return a.Kind
	}
	return a.Kind + "|" + a.Arg
}

// ParseAction deserializes a callback payload.
func ParseAction(data string) (notify.Action, error) {
	data = strings.TrimSpace(data)
	kind, arg, _ := strings.Cut(data, "|")
	if kind == "" {
		return notify.Action{}, ErrBadAction
	}
	return notify.Action{Kind: kind, Arg: arg}, nil
}
