// Package imap implements a client-side IMAP4rev1 protocol core: a
// line-oriented transport with literal-aware framing, a tagging command
// issuer, a response parser covering the command set in RFC 3501 §6,
// and a BODYSTRUCTURE tree parser with a pre-order visitor walk.
//
// The package does not implement the IMAP server side, does not try to
// tolerate malformed server output (a syntax violation surfaces as a
// single ParseError), and recognises only the response tokens its
// per-command parse routines handle. Callers drive a Session: Connect,
// Authenticate, SendCommand, Disconnect.
package imap
