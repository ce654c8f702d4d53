package imap

// parseNoopIdle implements the NOOP/IDLE routine (spec §4.3):
// accumulates every untagged line verbatim.
func parseNoopIdle(p *parseState) (*Response, error) {
	resp := newResponse(p.kind)

	for _, line := range p.lines {
		consumed, terminal := applyCommon(resp, line, p.tag, p.logger)
		if terminal {
			return resp, nil
		}
		if consumed {
			continue
		}
		resp.RawLines = append(resp.RawLines, line)
	}

	return nil, &ParseError{Command: p.kind, Reason: "missing tagged terminator"}
}
