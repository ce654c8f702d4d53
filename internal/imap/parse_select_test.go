package imap

import "testing"

func TestParseSelectExamineOK(t *testing.T) {
	blob := "* 172 EXISTS\r\n* 1 RECENT\r\n* OK [UNSEEN 12]\r\n* OK [UIDVALIDITY 3857529045]\r\n* OK [UIDNEXT 4392]\r\n* FLAGS (\\Answered \\Flagged \\Deleted \\Seen \\Draft)\r\nA0001 OK [READ-WRITE] SELECT completed\r\n"

	resp, err := Parse(blob, CmdSelect, "A0001", `SELECT "INBOX"`, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if resp.Status != StatusOK {
		t.Errorf("Status = %v, want OK", resp.Status)
	}
	if resp.AccessMode != "READ-WRITE" {
		t.Errorf("AccessMode = %q, want READ-WRITE", resp.AccessMode)
	}
	if resp.Mailbox != "INBOX" {
		t.Errorf("Mailbox = %q, want INBOX", resp.Mailbox)
	}

	want := map[string]string{
		"EXISTS":       "172",
		"RECENT":       "1",
		"UNSEEN":       "12",
		"UIDVALIDITY":  "3857529045",
		"UIDNEXT":      "4392",
		"FLAGS":        `(\Answered \Flagged \Deleted \Seen \Draft)`,
	}
	for k, v := range want {
		if got := resp.MailboxItems[k]; got != v {
			t.Errorf("MailboxItems[%s] = %q, want %q", k, got, v)
		}
	}
}

func TestParseSelectNO(t *testing.T) {
	blob := "A0001 NO [NONEXISTENT] SELECT failed\r\n"
	resp, err := Parse(blob, CmdSelect, "A0001", `SELECT "Nonexistent"`, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if resp.Status != StatusNO {
		t.Errorf("Status = %v, want NO", resp.Status)
	}
}
