package main

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/oscarklm/matchmoji/internal/platform/tui"
)

// serveEnv is read from MATCHMOJI_* environment variables.
// Flags given on the command line take precedence.
type serveEnv struct {
	Addr        string        `envconfig:"ADDR" default:":23234"`
	HostKey     string        `envconfig:"HOST_KEY"`
	DB          string        `envconfig:"DB"`
	IdleTimeout time.Duration `envconfig:"IDLE_TIMEOUT" default:"30m"`
}

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the matchmoji SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with a level picker.
Scores are stored per server, and every round is recorded with
the SSH user name as its player.

Environment:
  MATCHMOJI_ADDR          - Listen address (default :23234)
  MATCHMOJI_HOST_KEY      - Host key path
  MATCHMOJI_DB            - Scores database path
  MATCHMOJI_IDLE_TIMEOUT  - Idle timeout, e.g. 30m

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.matchmoji/host_key

Examples:
  matchmoji serve
  matchmoji serve --ssh :2222
  matchmoji serve --host-key ./my_host_key
  MATCHMOJI_DB=/var/lib/matchmoji.db matchmoji serve

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 30*time.Minute, "Idle time before disconnecting")
}

// serverConfig merges defaults, environment and explicitly set flags.
func serverConfig(cmd *cobra.Command) (tui.SSHServerConfig, error) {
	var env serveEnv
	if err := envconfig.Process("matchmoji", &env); err != nil {
		return tui.SSHServerConfig{}, fmt.Errorf("reading environment: %w", err)
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = env.Addr
	cfg.HostKeyPath = env.HostKey
	cfg.IdleTimeout = env.IdleTimeout
	cfg.TickRate = flagFPS
	if env.DB != "" {
		cfg.DBPath = env.DB
	}

	flags := cmd.Flags()
	if flags.Changed("ssh") {
		cfg.Address = flagSSHAddr
	}
	if flags.Changed("host-key") {
		cfg.HostKeyPath = flagHostKey
	}
	if flags.Changed("idle-timeout") {
		cfg.IdleTimeout = flagIdleTimeout
	}
	if flags.Changed("db") {
		cfg.DBPath = flagDBPath
	}

	return cfg, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := serverConfig(cmd)
	if err != nil {
		return err
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting matchmoji SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
