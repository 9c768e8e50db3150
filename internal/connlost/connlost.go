// Package connlost holds the hook a host calls when it loses contact with its
// server.
package connlost

import (
	"context"

	"github.com/ashwch/hubnav/internal/i18n"
)

// Manager is the host's service manager. The handler only receives it.
type Manager interface{}

// Handler is called when server communication fails. The returned channel
// reports when the handler is done, with a non-nil error if it failed.
type Handler func(ctx context.Context, manager Manager, err error, translator i18n.Translator) <-chan error

// Ignore is the placeholder handler: it shows nothing and its channel is never
// sent on or closed, so the default error dialog never appears. Hosts that
// want their own reaction replace it. Waiting on the result blocks forever;
// ctx is not observed.
var Ignore Handler = func(context.Context, Manager, error, i18n.Translator) <-chan error {
	return make(chan error)
}
