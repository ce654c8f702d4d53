package imap

import "testing"

func TestParseNoopIdleAccumulatesUntaggedLines(t *testing.T) {
	blob := "* 2 EXISTS\r\n* 1 RECENT\r\nA0010 OK NOOP completed\r\n"
	resp, err := Parse(blob, CmdNoop, "A0010", "NOOP", nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []string{"* 2 EXISTS", "* 1 RECENT"}
	if len(resp.RawLines) != len(want) {
		t.Fatalf("RawLines = %v, want %v", resp.RawLines, want)
	}
	for i := range want {
		if resp.RawLines[i] != want[i] {
			t.Errorf("RawLines[%d] = %q, want %q", i, resp.RawLines[i], want[i])
		}
	}
}
