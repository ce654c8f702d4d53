package imap

import "testing"

func TestCommandKindForLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want CommandKind
	}{
		{"select", "SELECT INBOX", CmdSelect},
		{"lowercase", "select inbox", CmdSelect},
		{"uid fetch dispatches on inner verb", "UID FETCH 1:5 (FLAGS)", CmdFetch},
		{"uid store dispatches on inner verb", "UID STORE 3 +FLAGS (\\Seen)", CmdStore},
		{"bare uid with no inner verb", "UID", CmdUID},
		{"unrecognised verb", "FROBNICATE", CmdUnknown},
		{"empty line", "", CmdUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CommandKindForLine(tt.line); got != tt.want {
				t.Errorf("CommandKindForLine(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestCommandKindString(t *testing.T) {
	if got := CmdSelect.String(); got != "SELECT" {
		t.Errorf("CmdSelect.String() = %q, want SELECT", got)
	}
	if got := CommandKind(9999).String(); got != "UNKNOWN" {
		t.Errorf("unknown kind String() = %q, want UNKNOWN", got)
	}
}

func TestFirstToken(t *testing.T) {
	tok, rest := firstToken("  FETCH 1:5 (FLAGS)")
	if tok != "FETCH" || rest != "1:5 (FLAGS)" {
		t.Errorf("firstToken = (%q, %q)", tok, rest)
	}
	tok, rest = firstToken("NOOP")
	if tok != "NOOP" || rest != "" {
		t.Errorf("firstToken(no rest) = (%q, %q)", tok, rest)
	}
}
