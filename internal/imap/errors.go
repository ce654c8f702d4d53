package imap

import "fmt"

// TransportError indicates the underlying connection is unreadable,
// unwritable, or failed TLS negotiation. It is fatal to the session:
// the caller should treat the Session as broken and reconnect.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("imap: transport %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ParseError indicates the raw response blob violated the grammar
// expected for the dispatched command kind. It is non-fatal to the
// session — the caller may continue issuing further commands — but the
// specific response that failed to parse is discarded. Line carries the
// offending line (or line fragment) verbatim.
type ParseError struct {
	Command CommandKind
	Reason  string
	Line    string
}

func (e *ParseError) Error() string {
	if e.Line != "" {
		return fmt.Sprintf("imap: parse %s: %s: %q", e.Command, e.Reason, e.Line)
	}
	return fmt.Sprintf("imap: parse %s: %s", e.Command, e.Reason)
}

// ProtocolError wraps a non-OK (NO or BAD) tagged response. The parser
// itself never raises this — it produces a Response with Status != OK
// and lets the caller decide. Session.SendCommandStrict surfaces it for
// callers that opt into "raise on non-OK" semantics, per spec §7.
type ProtocolError struct {
	Status  Status
	Message string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("imap: server returned %s: %s", e.Status, e.Message)
}
