package imap

import "strings"

// parseCapability implements the CAPABILITY routine (spec §4.3):
// concatenates the remainder after the "* CAPABILITY " prefix.
func parseCapability(p *parseState) (*Response, error) {
	resp := newResponse(p.kind)
	var parts []string

	for _, line := range p.lines {
		consumed, terminal := applyCommon(resp, line, p.tag, p.logger)
		if terminal {
			resp.Capability = strings.Join(parts, " ")
			return resp, nil
		}
		if consumed {
			continue
		}
		if !hasPrefixFold(line, "* CAPABILITY") {
			continue
		}
		rest := strings.TrimSpace(line[len("* CAPABILITY"):])
		if rest != "" {
			parts = append(parts, rest)
		}
	}

	return nil, &ParseError{Command: p.kind, Reason: "missing tagged terminator"}
}
