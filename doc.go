// Package bloomd provides a pipelined client for a bloomd-style remote
// bloom-filter service. See <https://github.com/armon/bloomd> for the
// concept.
//
// A Client owns a single TCP connection and pipelines commands across it:
// callers do not block on one another's responses, and responses are
// matched back to their requests strictly in submission order. The
// connection reconnects automatically with linear backoff, buffering
// commands submitted while offline, until either it recovers or the
// configured attempt ceiling is reached and the client becomes permanently
// unavailable.
package bloomd
