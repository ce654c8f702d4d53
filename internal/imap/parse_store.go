package imap

// parseStore implements the STORE routine (spec §4.3): every untagged
// line containing FETCH yields {index, flags-list}, the flags list
// being the inner parenthesised list following "FLAGS ".
func parseStore(p *parseState) (*Response, error) {
	resp := newResponse(p.kind)

	for _, line := range p.lines {
		consumed, terminal := applyCommon(resp, line, p.tag, p.logger)
		if terminal {
			return resp, nil
		}
		if consumed {
			continue
		}
		if !containsFold(line, "FETCH") {
			continue
		}

		index, ok := extractNumberBefore(line, "FETCH")
		if !ok {
			return nil, &ParseError{Command: p.kind, Reason: "STORE FETCH line missing message index", Line: line}
		}
		flagsList, ok := extractParenAfter(line, "FLAGS")
		if !ok {
			return nil, &ParseError{Command: p.kind, Reason: "STORE FETCH line missing FLAGS", Line: line}
		}
		resp.StoreResults = append(resp.StoreResults, StoreResult{
			Index: index,
			Flags: flagsList[1 : len(flagsList)-1],
		})
	}

	return nil, &ParseError{Command: p.kind, Reason: "missing tagged terminator"}
}
