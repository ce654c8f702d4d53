package imap

import (
	"reflect"
	"testing"
)

func TestParseExpunge(t *testing.T) {
	blob := "* 172 EXISTS\r\n* 3 EXPUNGE\r\n* 3 EXPUNGE\r\nA0007 OK EXPUNGE completed\r\n"
	resp, err := Parse(blob, CmdExpunge, "A0007", "EXPUNGE", nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !reflect.DeepEqual(resp.Exists, []uint64{172}) {
		t.Errorf("Exists = %v", resp.Exists)
	}
	if !reflect.DeepEqual(resp.Expunged, []uint64{3, 3}) {
		t.Errorf("Expunged = %v", resp.Expunged)
	}
}
