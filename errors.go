package bloomd

import (
	"errors"
	"fmt"
)

// ErrDisposed rejects command submission after Client.Dispose.
var ErrDisposed = errors.New("bloomd: client disposed")

// ErrUnavailable rejects command submission once the client has given up
// reconnecting, or has crossed its internal-error ceiling.
var ErrUnavailable = errors.New("bloomd: service unavailable")

// ErrConnectionLost is delivered to commands that were already written to
// the wire when the connection carrying them was lost. They are not
// retried on the next connection; see DESIGN.md Open Question (b).
var ErrConnectionLost = errors.New("bloomd: connection lost while awaiting response")

// errUnexpectedFrame signals that a response frame's shape (single line vs.
// block) did not match what the matching command expected.
var errUnexpectedFrame = errors.New("bloomd: unexpected response frame for command")

// internalErrorText is the reserved server response that counts toward the
// maxErrors ceiling (§7.3). Ordinary server-reported errors, like "Filter
// does not exist", never count toward it.
const internalErrorText = "Bloomd Internal Error"

// filterMissingText is the exact server error text the safe coordinator
// watches for to trigger auto-creation.
const filterMissingText = "Filter does not exist"

// ServerError is a verbatim error response from the bloomd service, for
// example "Filter does not exist" or "Client Error: Bad arguments". Unlike
// a transport failure, it does not imply the connection is unusable.
type ServerError string

// Error honors the error interface. Unlike many wrapped server-error types,
// it returns the server text verbatim: the safe coordinator and callers
// compare it exactly against known strings such as "Filter does not
// exist".
func (e ServerError) Error() string {
	return string(e)
}

// Internal reports whether this error is the reserved internal-error shape
// that counts toward the client's maxErrors ceiling.
func (e ServerError) Internal() bool {
	return string(e) == internalErrorText
}

// unexpectedServerError wraps errUnexpectedFrame with the offending text: a
// list or info line that does not parse, a frame that arrives with no
// pending command, or a command with an unknown ResponseType (§7's
// "decoding failure" case). A frame of the wrong shape (single line vs.
// block) is reported as errUnexpectedFrame itself, without the text.
func unexpectedServerError(text string) error {
	return fmt.Errorf("bloomd: %w: %q", errUnexpectedFrame, text)
}
