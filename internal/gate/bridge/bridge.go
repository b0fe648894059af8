// Package bridge models the Mini-App platform bridge as an explicit capability
// interface. The live variant speaks to the real Telegram client through a
// per-request event stream; the null variant serves development runtimes where
// no host client exists. The variant is selected by configuration, never by
// runtime probing, so mock identities cannot leak into production.
package bridge

import (
	"context"

	"vitrina/internal/initdata"
)

// Bridge is the capability surface the gate and downstream pages rely on.
// Dialogs are awaitable request/response operations rather than callbacks.
type Bridge interface {
	// Ready signals to the host chrome that the app has rendered.
	Ready()
	// Expand requests full-height layout.
	Expand()
	// Alert shows a dismissable message dialog.
	Alert(ctx context.Context, message string) error
	// Confirm shows a yes/no dialog and waits for the answer.
	Confirm(ctx context.Context, message string) (bool, error)
	// User returns the caller identity when the bridge carries one.
	User() (*initdata.Identity, bool)
}

// Event is one outbound Mini-App event, drained by the front end after each
// request and relayed to the Telegram client.
type Event struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Message string `json:"message,omitempty"`
}

// Mini-App event names understood by the host client.
const (
	EventReady   = "web_app_ready"
	EventExpand  = "web_app_expand"
	EventAlert   = "web_app_open_popup"
	EventConfirm = "web_app_open_confirm"
)
