package imap

import "strings"

// parseStatus implements the STATUS routine (spec §4.3): parses
// "* STATUS <mailbox> ( KEY VAL KEY VAL ... )".
func parseStatus(p *parseState) (*Response, error) {
	resp := newResponse(p.kind)
	resp.StatusItems = make(map[string]string)

	for _, line := range p.lines {
		consumed, terminal := applyCommon(resp, line, p.tag, p.logger)
		if terminal {
			return resp, nil
		}
		if consumed {
			continue
		}
		if !hasPrefixFold(line, "* STATUS") {
			continue
		}

		list, ok := extractParenAfter(line, "STATUS")
		if !ok {
			return nil, &ParseError{Command: p.kind, Reason: "missing STATUS item list", Line: line}
		}

		between := strings.TrimSpace(line[len("* STATUS") : strings.Index(line, list)])
		resp.Mailbox = unquote(between)

		inner := strings.TrimSpace(list[1 : len(list)-1])
		fields := strings.Fields(inner)
		if len(fields)%2 != 0 {
			return nil, &ParseError{Command: p.kind, Reason: "STATUS item list has odd field count", Line: line}
		}
		for i := 0; i < len(fields); i += 2 {
			resp.StatusItems[strings.ToUpper(fields[i])] = fields[i+1]
		}
	}

	return nil, &ParseError{Command: p.kind, Reason: "missing tagged terminator"}
}
