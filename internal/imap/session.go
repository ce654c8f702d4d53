package imap

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Session is the facade spec §4.5 describes: one Transport, one
// Issuer, serialized by a mutex — a Session never lets a caller issue
// a second command before the first's tagged reply has arrived, the
// same single-connection discipline as the teacher's mutex-guarded
// email client. This matters once a caller (idlewatch's connwatch
// probe, in particular) issues commands from a goroutine separate
// from the main request loop.
type Session struct {
	transport Transport
	issuer    *Issuer
	logger    *slog.Logger

	host string

	mu sync.Mutex
}

// NewSession wraps transport in a Session. logger is nil-safe and
// defaults to slog.Default(), matching the teacher's NewPoller.
func NewSession(host string, transport Transport, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		transport: transport,
		issuer:    NewIssuer(transport, logger),
		logger:    logger,
		host:      host,
	}
}

// Connect opens the underlying transport.
func (s *Session) Connect() error {
	s.logger.Info("imap: connecting", "host", s.host)
	if err := s.transport.Connect(); err != nil {
		return err
	}
	s.logger.Info("imap: connected", "host", s.host)
	return nil
}

// Authenticate issues LOGIN with the given credentials and returns a
// ProtocolError if the server rejects them.
func (s *Session) Authenticate(username, password string) error {
	s.logger.Info("imap: authenticating", "host", s.host, "user", username)
	resp, err := s.SendCommandStrict(fmt.Sprintf("LOGIN %s %s", quoteArg(username), quoteArg(password)))
	if err != nil {
		return err
	}
	_ = resp
	s.logger.Info("imap: authenticated", "host", s.host, "user", username)
	return nil
}

// SendCommand issues cmdLine (without a tag) and returns the parsed
// Response regardless of its Status — the caller decides how to treat
// NO/BAD, per spec §7.
func (s *Session) SendCommand(cmdLine string) (*Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issuer.Send(cmdLine)
}

// SendCommandStrict issues cmdLine and returns a ProtocolError if the
// tagged status was not OK, for callers that want "raise on non-OK"
// semantics instead of inspecting Response.Status themselves.
func (s *Session) SendCommandStrict(cmdLine string) (*Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	resp, err := s.issuer.Send(cmdLine)
	if err != nil {
		return nil, err
	}
	if resp.Status != StatusOK {
		return resp, &ProtocolError{Status: resp.Status, Message: resp.Message}
	}
	return resp, nil
}

// SupportsIdle issues CAPABILITY and reports whether the server
// advertises IDLE.
func (s *Session) SupportsIdle() (bool, error) {
	resp, err := s.SendCommandStrict("CAPABILITY")
	if err != nil {
		var protoErr *ProtocolError
		if errors.As(err, &protoErr) {
			return false, nil
		}
		return false, err
	}
	for _, field := range strings.Fields(resp.Capability) {
		if strings.EqualFold(field, "IDLE") {
			return true, nil
		}
	}
	return false, nil
}

// Idle issues IDLE and collects untagged event lines for up to
// maxWait before sending DONE and reading the final tagged reply.
// Real IDLE blocks until the server pushes an event; because spec §5
// keeps one session single-threaded and blocking, this CLI-facing
// helper instead bounds the wait with a deadline and treats a timeout
// as "no event yet", matching the idlewatch driver's poll-and-report
// loop rather than true indefinite async IDLE.
func (s *Session) Idle(maxWait time.Duration) (events []string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tag, err := s.issuer.SendNoWait("IDLE")
	if err != nil {
		return nil, err
	}

	if _, err := s.transport.ReadLine(); err != nil {
		return nil, fmt.Errorf("imap: read IDLE continuation: %w", err)
	}

	deadline := time.Now().Add(maxWait)
	_ = s.transport.SetDeadline(deadline)
	for {
		line, err := s.transport.ReadLine()
		if err != nil {
			break // deadline reached (or connection issue, surfaced on DONE below)
		}
		events = append(events, stripCR(strings.TrimSuffix(line, "\n")))
	}
	_ = s.transport.SetDeadline(time.Time{})

	if err := s.transport.SendLine("DONE"); err != nil {
		return events, err
	}
	blob, err := s.transport.ReadResponse(tag)
	if err != nil {
		return events, err
	}
	if _, err := Parse(blob, CmdIdle, tag, "IDLE", s.logger); err != nil {
		return events, err
	}
	return events, nil
}

// Disconnect issues LOGOUT and closes the transport regardless of
// whether the server replies cleanly.
func (s *Session) Disconnect() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Info("imap: disconnecting", "host", s.host)
	_, sendErr := s.issuer.Send("LOGOUT")
	closeErr := s.transport.Close()
	if sendErr != nil {
		return sendErr
	}
	return closeErr
}

// quoteArg wraps s in double quotes, escaping embedded backslashes and
// quotes, for use as a quoted-string argument in a command line.
func quoteArg(s string) string {
	escaped := make([]byte, 0, len(s)+2)
	escaped = append(escaped, '"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' || c == '\\' {
			escaped = append(escaped, '\\')
		}
		escaped = append(escaped, c)
	}
	escaped = append(escaped, '"')
	return string(escaped)
}
