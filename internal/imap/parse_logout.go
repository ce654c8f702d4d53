package imap

// parseLogout implements the LOGOUT routine (spec §4.3): captures the
// untagged BYE line (applyCommon already sets ByeSeen and appends it to
// RawLines) and defers to common status handling for the tagged reply.
func parseLogout(p *parseState) (*Response, error) {
	resp := newResponse(p.kind)

	for _, line := range p.lines {
		consumed, terminal := applyCommon(resp, line, p.tag, p.logger)
		if terminal {
			return resp, nil
		}
		if !consumed {
			resp.RawLines = append(resp.RawLines, line)
		}
	}

	return nil, &ParseError{Command: p.kind, Reason: "missing tagged terminator"}
}
