// Command fetchattach implements DownloadAllAttachments: it connects to
// an IMAP account, fetches BODYSTRUCTURE for a message set, walks each
// tree with the built-in attachment visitor, and downloads every part
// that looks like an attachment to a local directory.
package main

import (
	"encoding/base64"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/clockworkengineer/antik-go/internal/buildinfo"
	"github.com/clockworkengineer/antik-go/internal/config"
	"github.com/clockworkengineer/antik-go/internal/imap"
	"github.com/clockworkengineer/antik-go/internal/ledger"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	accountName := flag.String("account", "", "account name to fetch from (default: first configured account)")
	messageSet := flag.String("messages", "1:*", "IMAP message sequence set to scan for attachments")
	outDir := flag.String("out", "./attachments", "directory to write downloaded attachments into")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	runID := uuid.NewString()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})).With("run_id", runID)

	if *showVersion {
		fmt.Println(buildinfo.String())
		return
	}

	cfgPath, err := config.FindConfig(*configPath)
	if err != nil {
		logger.Error("config", "error", err)
		os.Exit(1)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "path", cfgPath, "error", err)
		os.Exit(1)
	}

	if level, err := config.ParseLogLevel(cfg.LogLevel); err != nil {
		logger.Warn("invalid log_level in config, keeping default", "error", err)
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: config.ReplaceLogLevelNames,
		})).With("run_id", runID)
	}

	acct, ok := resolveAccount(cfg, *accountName)
	if !ok {
		logger.Error("no matching account configured", "account", *accountName)
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		logger.Error("failed to create data directory", "path", cfg.DataDir, "error", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(*outDir, 0755); err != nil {
		logger.Error("failed to create output directory", "path", *outDir, "error", err)
		os.Exit(1)
	}

	store, err := ledger.Open(filepath.Join(cfg.DataDir, "fetchattach.db"))
	if err != nil {
		logger.Error("failed to open ledger", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	transport := &imap.TCPTransport{
		Host:           acct.IMAP.Host,
		Port:           acct.IMAP.Port,
		TLS:            acct.IMAP.TLS,
		MaxLiteralSize: acct.IMAP.MaxLiteralSize,
	}
	session := imap.NewSession(acct.IMAP.Host, transport, logger)

	n, err := run(logger, session, store, acct, *messageSet, *outDir)
	if err != nil {
		logger.Error("fetchattach exited with error", "error", err)
		os.Exit(1)
	}
	logger.Info("download complete", "attachments_written", n)
}

func resolveAccount(cfg *config.Config, name string) (config.AccountConfig, bool) {
	if name != "" {
		return cfg.Account(name)
	}
	if len(cfg.Accounts) == 0 {
		return config.AccountConfig{}, false
	}
	return cfg.Accounts[0], true
}

func run(logger *slog.Logger, session *imap.Session, store *ledger.Ledger, acct config.AccountConfig, messageSet, outDir string) (int, error) {
	if err := session.Connect(); err != nil {
		return 0, fmt.Errorf("connect: %w", err)
	}
	defer session.Disconnect()

	if err := session.Authenticate(acct.IMAP.Username, acct.IMAP.Password); err != nil {
		return 0, fmt.Errorf("authenticate: %w", err)
	}

	if _, err := session.SendCommandStrict(fmt.Sprintf("SELECT %q", acct.Mailbox)); err != nil {
		return 0, fmt.Errorf("select %s: %w", acct.Mailbox, err)
	}

	bsResp, err := session.SendCommandStrict(fmt.Sprintf("FETCH %s (BODYSTRUCTURE)", messageSet))
	if err != nil {
		return 0, fmt.Errorf("fetch bodystructure: %w", err)
	}

	written := 0
	for _, fetch := range bsResp.Fetches {
		raw, ok := fetch.Items["BODYSTRUCTURE"]
		if !ok {
			continue
		}
		root, err := imap.ParseBodyStructure(raw)
		if err != nil {
			logger.Warn("failed to parse body structure", "uid", fetch.Index, "error", err)
			continue
		}

		state := &imap.AttachmentState{}
		imap.Walk(root, imap.AttachmentVisitor(), state)

		for _, att := range state.Attachments {
			n, err := downloadAttachment(logger, session, store, fetch.Index, att, outDir)
			if err != nil {
				logger.Warn("failed to download attachment", "uid", fetch.Index, "part", att.PartNo, "error", err)
				continue
			}
			written += n
		}
	}

	return written, nil
}

// downloadAttachment fetches one BODY[<part_no>] part, decodes it if
// base64-encoded, and writes it to outDir, skipping parts already
// recorded as downloaded in store. Returns 1 if a file was written, 0
// if the attachment was skipped as a duplicate.
func downloadAttachment(logger *slog.Logger, session *imap.Session, store *ledger.Ledger, uid uint64, att imap.Attachment, outDir string) (int, error) {
	key := ledger.DownloadKey{UID: uid, PartNo: att.PartNo, MD5: att.MD5}
	if _, already, err := store.AlreadyDownloaded(key); err != nil {
		return 0, err
	} else if already {
		logger.Debug("attachment already downloaded, skipping", "uid", uid, "part", att.PartNo)
		return 0, nil
	}

	partResp, err := session.SendCommandStrict(fmt.Sprintf("FETCH %d (BODY[%s])", uid, att.PartNo))
	if err != nil {
		return 0, fmt.Errorf("fetch body part %s: %w", att.PartNo, err)
	}
	if len(partResp.Fetches) == 0 {
		return 0, fmt.Errorf("server returned no FETCH data for part %s", att.PartNo)
	}

	raw, ok := literalForPart(partResp.Fetches[0].Items, att.PartNo)
	if !ok {
		return 0, fmt.Errorf("response did not contain BODY[%s]", att.PartNo)
	}

	payload := []byte(raw)
	if strings.EqualFold(att.Encoding, "BASE64") {
		decoded, err := base64.StdEncoding.DecodeString(stripWhitespace(raw))
		if err != nil {
			return 0, fmt.Errorf("decode base64 part %s: %w", att.PartNo, err)
		}
		payload = decoded
	}

	idemKey, err := store.RecordDownload(key)
	if err != nil {
		return 0, fmt.Errorf("record download: %w", err)
	}

	filename := att.FileName
	if filename == "" {
		filename = "part-" + att.PartNo
	}
	finalPath := filepath.Join(outDir, sanitizeFilename(fmt.Sprintf("%d-%s", uid, filename)))
	tmpPath := filepath.Join(outDir, "."+idemKey+".tmp")

	if err := os.WriteFile(tmpPath, payload, 0644); err != nil {
		return 0, fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("rename into place: %w", err)
	}

	logger.Info("wrote attachment", "uid", uid, "part", att.PartNo, "path", finalPath, "bytes", len(payload))
	return 1, nil
}

// literalForPart finds the BODY[<partNo>] literal in items. parse_fetch
// keys literal items by the full source-line prefix up to the token,
// so the lookup matches on suffix rather than exact equality.
func literalForPart(items map[string]string, partNo string) (string, bool) {
	suffix := "BODY[" + partNo + "]"
	for key, value := range items {
		if strings.HasSuffix(key, suffix) {
			return value, true
		}
	}
	return "", false
}

func stripWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case ' ', '\t', '\r', '\n':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// sanitizeFilename strips path separators from name so a hostile
// FILENAME disposition parameter can't escape outDir.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == ".." || name == "" {
		return "attachment-" + strconv.Itoa(len(name))
	}
	return name
}
