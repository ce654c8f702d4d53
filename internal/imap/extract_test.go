package imap

import "testing"

func TestExtractParenAfter(t *testing.T) {
	line := `* FLAGS (\Answered \Flagged \Deleted \Seen \Draft)`
	got, ok := extractParenAfter(line, "FLAGS")
	if !ok {
		t.Fatal("expected match")
	}
	want := `(\Answered \Flagged \Deleted \Seen \Draft)`
	if got != want {
		t.Errorf("extractParenAfter = %q, want %q", got, want)
	}
}

func TestExtractParenAfterDoesNotMatchSubstringWord(t *testing.T) {
	// PERMANENTFLAGS must not be picked up by a search for FLAGS.
	line := `* OK [PERMANENTFLAGS (\Deleted \Seen \*)] Limited`
	if _, ok := extractParenAfter(line, "FLAGS"); ok {
		t.Error("expected FLAGS search not to match inside PERMANENTFLAGS")
	}
	got, ok := extractParenAfter(line, "PERMANENTFLAGS")
	if !ok || got != `(\Deleted \Seen \*)` {
		t.Errorf("extractParenAfter(PERMANENTFLAGS) = %q, %v", got, ok)
	}
}

func TestExtractBracketValue(t *testing.T) {
	line := "* OK [UNSEEN 12] Message 12 is first unseen"
	got, ok := extractBracketValue(line, "UNSEEN")
	if !ok || got != "12" {
		t.Errorf("extractBracketValue = %q, %v", got, ok)
	}
}

func TestExtractBracketNumber(t *testing.T) {
	line := "* OK [UIDVALIDITY 3857529045] UIDs valid"
	got, ok := extractBracketNumber(line, "UIDVALIDITY")
	if !ok || got != 3857529045 {
		t.Errorf("extractBracketNumber = %d, %v", got, ok)
	}

	if _, ok := extractBracketNumber("* OK [READ-WRITE]", "UIDVALIDITY"); ok {
		t.Error("expected no match")
	}
}

func TestExtractNumberBefore(t *testing.T) {
	got, ok := extractNumberBefore("* 172 EXISTS", "EXISTS")
	if !ok || got != 172 {
		t.Errorf("extractNumberBefore = %d, %v", got, ok)
	}
	if _, ok := extractNumberBefore("* EXISTS", "EXISTS"); ok {
		t.Error("expected no match with no leading number")
	}
}

func TestExtractAccessMode(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"A0001 OK [READ-WRITE] SELECT completed", "READ-WRITE"},
		{"A0001 OK [READ-ONLY] EXAMINE completed", "READ-ONLY"},
		{"A0001 OK SELECT completed", ""},
	}
	for _, tt := range tests {
		if got := extractAccessMode(tt.line); got != tt.want {
			t.Errorf("extractAccessMode(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}
