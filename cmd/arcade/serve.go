package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/turn-arcade/internal/config"
	"github.com/vovakirdan/turn-arcade/internal/platform/tui"
	"github.com/vovakirdan/turn-arcade/internal/session"
	"github.com/vovakirdan/turn-arcade/internal/storage"
)

var (
	flagServerConfig string
	flagSSHAddr      string
	flagHostKey      string
	flagIdleTimeout  int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the arcade SSH server",
	Long: `Start an SSH server that allows users to connect and play games.

Each SSH connection gets its own session with a game picker menu.
Scores are stored per-server (all users share the same leaderboard).

Settings come from --config (YAML), then ARCADE_* environment variables
(a .env file in the working directory is loaded first), then flags.

Environment:
  ARCADE_ADDRESS         listen address (default :23234)
  ARCADE_HOST_KEY        host key path
  ARCADE_DB              scores database path
  ARCADE_IDLE_TIMEOUT    idle timeout, e.g. 30m
  ARCADE_LOG_LEVEL       debug, info, warn, error
  ARCADE_REDIS_ADDR      redis address for a shared leaderboard
  ARCADE_REDIS_PASSWORD  redis password
  ARCADE_REDIS_DB        redis database number

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.arcade/host_key

Examples:
  arcade serve                           # Listen on :23234 with auto-generated key
  arcade serve --ssh :2222               # Listen on port 2222
  arcade serve --host-key ./my_host_key  # Use specific host key
  arcade serve --config ./server.yaml    # Read settings from a file

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServerConfig, "config", "", "Path to server config YAML")
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadServer(flagServerConfig)
	if err != nil {
		return err
	}

	// Flags given explicitly win over file and environment
	flags := cmd.Flags()
	if flags.Changed("ssh") {
		cfg.Address = flagSSHAddr
	}
	if flags.Changed("host-key") {
		cfg.HostKeyPath = flagHostKey
	}
	if flags.Changed("idle-timeout") {
		cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}
	if flags.Changed("db") {
		cfg.DBPath = flagDBPath
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}

	logger, closeLog, err := newLogger("arcade-ssh", cfg.LogLevel, false)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("cannot open scores database: %w", err)
	}
	defer store.Close()

	var sink session.ScoreSink = store
	if cfg.Redis.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		board, err := storage.DialLeaderboard(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		cancel()
		if err != nil {
			return err
		}
		defer board.Close()
		sink = storage.MultiSink{store, board}
		logger.Info("redis leaderboard enabled", "addr", cfg.Redis.Addr)
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     cfg.Address,
		HostKeyPath: cfg.HostKeyPath,
		IdleTimeout: cfg.IdleTimeout,
		Seed:        flagSeed,
	}, store, sink, logger)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	fmt.Printf("Starting arcade SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
