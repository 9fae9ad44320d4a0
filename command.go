package bloomd

import (
	"strings"
	"time"
)

// ResponseType identifies the decoding rule a Command expects its matching
// response frame to follow. See §4.B.
type ResponseType int

const (
	// RespBool decodes a single "Yes"/"No" line.
	RespBool ResponseType = iota
	// RespBoolList decodes a single line of space-separated "Yes"/"No"
	// tokens, keyed positionally by the command's Keys.
	RespBoolList
	// RespConfirmation decodes "Done" as success, anything else as a
	// ServerError.
	RespConfirmation
	// RespCreateConfirmation decodes "Done" or "Exists" as success.
	RespCreateConfirmation
	// RespDropConfirmation decodes "Done" or "Filter does not exist" as
	// success.
	RespDropConfirmation
	// RespFilterList decodes a block of filter summary lines.
	RespFilterList
	// RespInfo decodes a block of "key value" lines into one FilterInfo.
	RespInfo
)

// Callback is invoked exactly once per submitted Command, with either a
// decoded value or a non-nil error. It is always invoked with the Client's
// internal lock released, so it may safely submit new commands.
type Callback func(err error, value interface{})

// Command is the in-memory description of one pending request. It is
// immutable after submission; overrideError is set by the safe coordinator
// when it builds a retry record, and submittedAt is not set by this package.
//
// A Command lives in at most one of the Client's three queues at a time:
// offlineQueue, inFlightQueue, or a single per-filter hold queue.
type Command struct {
	Verb         string
	Arguments    []string
	FilterName   string
	ExpectedType ResponseType
	// Keys holds the positional key arguments for RespBoolList decoding.
	Keys []string

	callback Callback

	// overrideError, when set, is substituted for whatever the frame
	// actually decodes to. Used by the safe coordinator to surface a
	// filter-creation failure instead of a stale "Filter does not exist".
	overrideError error

	// internal marks a record submitted by the safe coordinator itself
	// (a create, or an original command's retry); it bypasses the
	// per-filter hold-queue gate that would otherwise capture it.
	internal bool

	submittedAt time.Time
}

// encode renders the command as one newline-terminated wire line.
func (c *Command) encode() []byte {
	buf := make([]byte, 0, 32)
	buf = append(buf, strings.Join(c.Arguments, " ")...)
	buf = append(buf, '\n')
	return buf
}
