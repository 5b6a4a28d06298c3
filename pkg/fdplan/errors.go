package fdplan

import (
	"github.com/cockroachdb/errors"
)

// Error taxonomy for the planner core (spec §7). Configuration and
// resource-exhaustion errors are fatal; heuristic dead-ends, search
// dead-ends, and aborts are not errors and are reported as Result
// values instead (see Result in driver.go).

// ErrConfig is the sentinel wrapped by configuration errors: a bucket
// list whose configured max cost is exceeded, an agent count outside
// the 64-agent cap, an unknown driver or open-list name, or an
// unreadable search config. Variable domains are not validated, so an
// invalid domain produces no ErrConfig.
var ErrConfig = errors.New("fdplan: configuration error")

// ErrResourceExhausted is the sentinel wrapped when the state pool or
// state space cannot allocate further storage.
var ErrResourceExhausted = errors.New("fdplan: resource exhausted")

// ErrTransport is the sentinel wrapped by fatal transport failures in
// multi-agent mode (unreachable peer, closed queue). It is returned as
// a plain error (Arbiter.ConfirmTermination); no driver converts it
// into an ABORT return code.
var ErrTransport = errors.New("fdplan: transport failure")

// NewConfigError wraps ErrConfig with call-site context so callers can
// still errors.Is(err, ErrConfig) after formatting.
func NewConfigError(format string, args ...interface{}) error {
	return errors.Wrapf(ErrConfig, format, args...)
}

// NewResourceError wraps ErrResourceExhausted with call-site context.
func NewResourceError(format string, args ...interface{}) error {
	return errors.Wrapf(ErrResourceExhausted, format, args...)
}

// NewTransportError wraps ErrTransport with call-site context.
func NewTransportError(format string, args ...interface{}) error {
	return errors.Wrapf(ErrTransport, format, args...)
}
