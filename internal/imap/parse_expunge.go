package imap

// parseExpunge implements the EXPUNGE routine (spec §4.3).
func parseExpunge(p *parseState) (*Response, error) {
	resp := newResponse(p.kind)

	for _, line := range p.lines {
		consumed, terminal := applyCommon(resp, line, p.tag, p.logger)
		if terminal {
			return resp, nil
		}
		if consumed {
			continue
		}
		if n, ok := extractNumberBefore(line, "EXISTS"); ok {
			resp.Exists = append(resp.Exists, n)
			continue
		}
		if n, ok := extractNumberBefore(line, "EXPUNGE"); ok {
			resp.Expunged = append(resp.Expunged, n)
			continue
		}
	}

	return nil, &ParseError{Command: p.kind, Reason: "missing tagged terminator"}
}
