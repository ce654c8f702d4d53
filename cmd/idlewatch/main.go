// Command idlewatch implements WaitForMailBoxEvent: it connects to an
// IMAP account, selects a mailbox, and reports new messages as they
// arrive, preferring IDLE and falling back to a NOOP poll loop when
// the server doesn't advertise IDLE support.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/clockworkengineer/antik-go/internal/buildinfo"
	"github.com/clockworkengineer/antik-go/internal/config"
	"github.com/clockworkengineer/antik-go/internal/connwatch"
	"github.com/clockworkengineer/antik-go/internal/imap"
	"github.com/clockworkengineer/antik-go/internal/ledger"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	accountName := flag.String("account", "", "account name to watch (default: first configured account)")
	pollInterval := flag.Duration("poll-interval", 30*time.Second, "NOOP poll interval when IDLE is unsupported")
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

	store, err := ledger.Open(filepath.Join(cfg.DataDir, "idlewatch.db"))
	if err != nil {
		logger.Error("failed to open ledger", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	transport := &imap.TCPTransport{
		Host:           acct.IMAP.Host,
		Port:           acct.IMAP.Port,
		TLS:            acct.IMAP.TLS,
		MaxLiteralSize: acct.IMAP.MaxLiteralSize,
	}
	session := imap.NewSession(acct.IMAP.Host, transport, logger)

	if err := runWatch(ctx, logger, session, store, acct, *pollInterval); err != nil {
		logger.Error("idlewatch exited with error", "error", err)
		os.Exit(1)
	}
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

func runWatch(ctx context.Context, logger *slog.Logger, session *imap.Session, store *ledger.Ledger, acct config.AccountConfig, pollInterval time.Duration) error {
	if err := session.Connect(); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer session.Disconnect()

	if err := session.Authenticate(acct.IMAP.Username, acct.IMAP.Password); err != nil {
		return fmt.Errorf("authenticate: %w", err)
	}

	selResp, err := session.SendCommandStrict(fmt.Sprintf("SELECT %s", quoteMailbox(acct.Mailbox)))
	if err != nil {
		return fmt.Errorf("select %s: %w", acct.Mailbox, err)
	}
	logger.Info("mailbox selected", "mailbox", acct.Mailbox, "access_mode", selResp.AccessMode)

	manager := connwatch.NewManager(logger)
	watcher := manager.Watch(ctx, connwatch.WatcherConfig{
		Name: "imap-session",
		Probe: func(_ context.Context) error {
			_, err := session.SendCommand("NOOP")
			return err
		},
		Backoff: connwatch.DefaultBackoffConfig(),
		OnDown: func(err error) {
			logger.Warn("imap session unreachable", "mailbox", acct.Mailbox, "error", err)
		},
		OnReady: func() {
			logger.Info("imap session healthy", "mailbox", acct.Mailbox)
		},
	})
	defer watcher.Stop()

	useIdle, err := session.SupportsIdle()
	if err != nil {
		return fmt.Errorf("capability: %w", err)
	}
	logger.Info("watch strategy chosen", "idle", useIdle)

	hwm, err := store.HighWaterMark(acct.Mailbox)
	if err != nil {
		return fmt.Errorf("read high-water mark: %w", err)
	}
	logger.Info("starting from high-water mark", "mailbox", acct.Mailbox, "uid", hwm)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		var events []string
		if useIdle {
			events, err = session.Idle(pollInterval)
		} else {
			var resp *imap.Response
			resp, err = session.SendCommandStrict("NOOP")
			if resp != nil {
				events = resp.RawLines
			}
			time.Sleep(pollInterval)
		}
		if err != nil {
			return fmt.Errorf("watch loop: %w", err)
		}

		for _, line := range events {
			fmt.Println(line)
		}

		searchResp, err := session.SendCommandStrict("SEARCH UNSEEN")
		if err != nil {
			logger.Warn("search unseen failed", "error", err)
			continue
		}
		var highest uint64
		for _, idx := range searchResp.Indices {
			if idx > highest {
				highest = idx
			}
		}
		if highest > 0 {
			if err := store.AdvanceHighWaterMark(acct.Mailbox, highest); err != nil {
				logger.Warn("failed to advance high-water mark", "error", err)
			}
		}
	}
}

func quoteMailbox(mailbox string) string {
	return `"` + mailbox + `"`
}
