// Package ledger provides a namespaced key-value store, backed by
// SQLite, for persistent operational state that needs to survive CLI
// driver restarts: per-mailbox high-water UID marks and per-attachment
// download dedup records. It is not a store for structured domain data
// (that would get its own schema) — just small durable facts the
// idlewatch and fetchattach drivers need between runs.
package ledger

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const (
	highWaterNamespace = "highwater"
	downloadNamespace  = "downloads"
)

// Ledger is safe for concurrent use (SQLite serializes writes).
type Ledger struct {
	db *sql.DB
}

// Open creates or reopens a ledger database at path. The schema is
// created automatically on first use.
func Open(path string) (*Ledger, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger database: %w", err)
	}

	l := &Ledger{db: db}
	if err := l.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate ledger: %w", err)
	}
	return l, nil
}

// Close closes the underlying database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

func (l *Ledger) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS ledger_state (
		namespace  TEXT NOT NULL,
		key        TEXT NOT NULL,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (namespace, key)
	);
	`
	_, err := l.db.Exec(schema)
	return err
}

func (l *Ledger) get(namespace, key string) (string, error) {
	var value string
	err := l.db.QueryRow(
		`SELECT value FROM ledger_state WHERE namespace = ? AND key = ?`,
		namespace, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get %s/%s: %w", namespace, key, err)
	}
	return value, nil
}

func (l *Ledger) set(namespace, key, value string) error {
	_, err := l.db.Exec(
		`INSERT INTO ledger_state (namespace, key, value, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (namespace, key) DO UPDATE
		 SET value = excluded.value, updated_at = excluded.updated_at`,
		namespace, key, value, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("set %s/%s: %w", namespace, key, err)
	}
	return nil
}

// HighWaterMark returns the stored high-water UID for a mailbox. Zero
// is returned (with no error) for a mailbox never seen before.
func (l *Ledger) HighWaterMark(mailbox string) (uint64, error) {
	raw, err := l.get(highWaterNamespace, mailbox)
	if err != nil {
		return 0, err
	}
	if raw == "" {
		return 0, nil
	}
	uid, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse stored high-water mark for %q: %w", mailbox, err)
	}
	return uid, nil
}

// AdvanceHighWaterMark updates the stored high-water mark for mailbox
// to candidate, but never decreases it — UIDs can disappear when
// messages are moved or deleted, but the mark must only advance
// (teacher's Poller.advanceHighWaterMark invariant).
func (l *Ledger) AdvanceHighWaterMark(mailbox string, candidate uint64) error {
	current, err := l.HighWaterMark(mailbox)
	if err != nil {
		return err
	}
	if candidate <= current {
		return nil
	}
	return l.set(highWaterNamespace, mailbox, strconv.FormatUint(candidate, 10))
}

// DownloadKey identifies one attachment download for dedup purposes.
type DownloadKey struct {
	UID    uint64
	PartNo string
	MD5    string
}

func (k DownloadKey) namespaceKey() string {
	return fmt.Sprintf("%d:%s:%s", k.UID, k.PartNo, k.MD5)
}

// AlreadyDownloaded reports whether key has a recorded completed
// download, and if so returns the idempotency UUID it was assigned.
func (l *Ledger) AlreadyDownloaded(key DownloadKey) (string, bool, error) {
	raw, err := l.get(downloadNamespace, key.namespaceKey())
	if err != nil {
		return "", false, err
	}
	if raw == "" {
		return "", false, nil
	}
	return raw, true, nil
}

// RecordDownload assigns a fresh idempotency UUID to key and persists
// it, marking the attachment as downloaded. The returned UUID is the
// temp-file name the caller should rename into place atomically
// (teacher precedent: idempotency keys guard retried effects from
// double-applying).
func (l *Ledger) RecordDownload(key DownloadKey) (string, error) {
	id := uuid.NewString()
	if err := l.set(downloadNamespace, key.namespaceKey(), id); err != nil {
		return "", err
	}
	return id, nil
}
