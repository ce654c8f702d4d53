package imap

import (
	"fmt"
	"log/slog"
)

// Issuer assigns tags and writes command lines over a Transport (spec
// §4.2). Tag counter starts at 1; the default prefix "A" produces tags
// like "A0001", matching the scenario tags in spec §8.
type Issuer struct {
	Transport Transport
	Prefix    string
	Logger    *slog.Logger

	counter uint64
}

// NewIssuer builds an Issuer over transport with the default "A" tag
// prefix. logger may be nil (defaults to slog.Default()).
func NewIssuer(transport Transport, logger *slog.Logger) *Issuer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Issuer{Transport: transport, Prefix: "A", Logger: logger}
}

// nextTag returns the next tag in sequence, e.g. "A0001", "A0002".
func (iss *Issuer) nextTag() string {
	iss.counter++
	return fmt.Sprintf("%s%04d", iss.Prefix, iss.counter)
}

// SendNoWait writes cmdLine tagged with a freshly generated tag and
// returns the tag without reading a response. It exists for commands
// like IDLE whose reply doesn't arrive as a single tagged blob the
// caller can block on immediately.
func (iss *Issuer) SendNoWait(cmdLine string) (tag string, err error) {
	tag = iss.nextTag()
	iss.Logger.Debug("imap: sending command", "tag", tag, "command", CommandKindForLine(cmdLine), "line", cmdLine)
	if err := iss.Transport.SendLine(tag + " " + cmdLine); err != nil {
		return "", err
	}
	return tag, nil
}

// Send writes cmdLine (without a tag) tagged with a freshly generated
// tag, then reads and parses the response. kind is resolved via
// CommandKindForLine so that "UID <verb>" dispatches on verb, per spec
// §4.2.
func (iss *Issuer) Send(cmdLine string) (*Response, error) {
	tag := iss.nextTag()
	kind := CommandKindForLine(cmdLine)

	iss.Logger.Debug("imap: sending command", "tag", tag, "command", kind, "line", cmdLine)

	if err := iss.Transport.SendLine(tag + " " + cmdLine); err != nil {
		return nil, err
	}

	blob, err := iss.Transport.ReadResponse(tag)
	if err != nil {
		return nil, err
	}

	resp, err := Parse(blob, kind, tag, cmdLine, iss.Logger)
	if err != nil {
		return nil, err
	}

	iss.Logger.Debug("imap: received response", "tag", tag, "command", kind, "status", resp.Status)
	return resp, nil
}
