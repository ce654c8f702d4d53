package ledger

import (
	"path/filepath"
	"testing"
)

func testLedger(t *testing.T) *Ledger {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "ledger_test.db")
	l, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open(%q): %v", dbPath, err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

func TestHighWaterMarkMissing(t *testing.T) {
	l := testLedger(t)

	uid, err := l.HighWaterMark("INBOX")
	if err != nil {
		t.Fatalf("HighWaterMark() error: %v", err)
	}
	if uid != 0 {
		t.Errorf("HighWaterMark() = %d, want 0 for unseen mailbox", uid)
	}
}

func TestAdvanceHighWaterMark(t *testing.T) {
	l := testLedger(t)

	if err := l.AdvanceHighWaterMark("INBOX", 100); err != nil {
		t.Fatalf("AdvanceHighWaterMark(100): %v", err)
	}
	uid, err := l.HighWaterMark("INBOX")
	if err != nil {
		t.Fatalf("HighWaterMark(): %v", err)
	}
	if uid != 100 {
		t.Errorf("HighWaterMark() = %d, want 100", uid)
	}
}

func TestAdvanceHighWaterMarkNeverDecreases(t *testing.T) {
	l := testLedger(t)

	if err := l.AdvanceHighWaterMark("INBOX", 200); err != nil {
		t.Fatalf("AdvanceHighWaterMark(200): %v", err)
	}
	if err := l.AdvanceHighWaterMark("INBOX", 50); err != nil {
		t.Fatalf("AdvanceHighWaterMark(50): %v", err)
	}

	uid, err := l.HighWaterMark("INBOX")
	if err != nil {
		t.Fatalf("HighWaterMark(): %v", err)
	}
	if uid != 200 {
		t.Errorf("HighWaterMark() = %d, want 200 (mark must not decrease)", uid)
	}
}

func TestHighWaterMarkNamespaceIsolation(t *testing.T) {
	l := testLedger(t)

	if err := l.AdvanceHighWaterMark("INBOX", 10); err != nil {
		t.Fatalf("AdvanceHighWaterMark(INBOX): %v", err)
	}
	if err := l.AdvanceHighWaterMark("Archive", 20); err != nil {
		t.Fatalf("AdvanceHighWaterMark(Archive): %v", err)
	}

	inbox, err := l.HighWaterMark("INBOX")
	if err != nil {
		t.Fatalf("HighWaterMark(INBOX): %v", err)
	}
	archive, err := l.HighWaterMark("Archive")
	if err != nil {
		t.Fatalf("HighWaterMark(Archive): %v", err)
	}
	if inbox != 10 || archive != 20 {
		t.Errorf("INBOX=%d Archive=%d, want 10 and 20", inbox, archive)
	}
}

func TestAlreadyDownloadedMissing(t *testing.T) {
	l := testLedger(t)
	key := DownloadKey{UID: 42, PartNo: "2", MD5: "abc123"}

	_, ok, err := l.AlreadyDownloaded(key)
	if err != nil {
		t.Fatalf("AlreadyDownloaded() error: %v", err)
	}
	if ok {
		t.Error("AlreadyDownloaded() = true for a key never recorded")
	}
}

func TestRecordDownloadThenAlreadyDownloaded(t *testing.T) {
	l := testLedger(t)
	key := DownloadKey{UID: 42, PartNo: "2", MD5: "abc123"}

	id, err := l.RecordDownload(key)
	if err != nil {
		t.Fatalf("RecordDownload() error: %v", err)
	}
	if id == "" {
		t.Fatal("RecordDownload() returned an empty idempotency key")
	}

	gotID, ok, err := l.AlreadyDownloaded(key)
	if err != nil {
		t.Fatalf("AlreadyDownloaded() error: %v", err)
	}
	if !ok {
		t.Fatal("AlreadyDownloaded() = false after RecordDownload")
	}
	if gotID != id {
		t.Errorf("AlreadyDownloaded() id = %q, want %q", gotID, id)
	}
}

func TestDownloadKeysAreDistinctByPartNo(t *testing.T) {
	l := testLedger(t)
	a := DownloadKey{UID: 1, PartNo: "1", MD5: "x"}
	b := DownloadKey{UID: 1, PartNo: "2", MD5: "x"}

	if _, err := l.RecordDownload(a); err != nil {
		t.Fatalf("RecordDownload(a): %v", err)
	}

	_, ok, err := l.AlreadyDownloaded(b)
	if err != nil {
		t.Fatalf("AlreadyDownloaded(b): %v", err)
	}
	if ok {
		t.Error("AlreadyDownloaded(b) = true, but only key a was recorded")
	}
}
