// Command svcensure runs one service reconciliation pass and exits.
//
// Exit codes:
//
//	0  - every named service ended in a running state
//	2  - at least one name did not resolve to an existing service
//	11 - at least one corrective action failed to produce a running service
//
// When both failure conditions occur in the same pass the action failure
// wins and the process exits 11.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	svcensure "github.com/axondata/go-svcensure"
)

// version can be set during build with -ldflags
var version = "dev"

var (
	flagDelay      int
	flagForceStart bool
	flagBackend    string
	flagServiceDir string
	flagSudo       bool
	flagOpTimeout  time.Duration
	flagVerifyWait time.Duration
	flagReport     string
	flagDebug      bool
)

var rootCmd = &cobra.Command{
	Use:   "svcensure <service[,service...]>",
	Short: "Ensure named OS services are in a running state",
	Long: `svcensure runs a single reconciliation pass over a comma-separated list
of service names: after a settle delay it restarts services found running
and, with --force-start, starts services found stopped. Each corrective
action is verified with a fresh status query. The pass never stops early;
every service is processed and the worst per-service outcome decides the
exit code.

Examples:
  svcensure nginx,redis
  svcensure --force-start --delay 0 "api, worker"
  svcensure --backend runit --service-dir /etc/service web`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().IntVar(&flagDelay, "delay", int(svcensure.DefaultDelay/time.Second), "settle delay in seconds before the pass begins")
	rootCmd.Flags().BoolVar(&flagForceStart, "force-start", false, "start services found not running instead of reporting them")
	rootCmd.Flags().StringVar(&flagBackend, "backend", "systemd", "service manager backend (systemd|runit)")
	rootCmd.Flags().StringVar(&flagServiceDir, "service-dir", "", "base service directory for the runit backend")
	rootCmd.Flags().BoolVar(&flagSudo, "sudo", false, "prefix systemctl invocations with sudo")
	rootCmd.Flags().DurationVar(&flagOpTimeout, "op-timeout", svcensure.DefaultOpTimeout, "timeout for a single query/start/restart call")
	rootCmd.Flags().DurationVar(&flagVerifyWait, "verify-wait", 0, "how long to wait for a service to come up after a corrective action")
	rootCmd.Flags().StringVar(&flagReport, "report", "", "write a JSON report of the pass to this path")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
}

// exitCodeError carries a reconciliation exit code through cobra's error
// return to main.
type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string {
	return fmt.Sprintf("reconciliation failed (exit code %d)", e.code)
}

func run(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(flagDebug)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cfg := svcensure.RunConfig{
		Services:   svcensure.ParseServiceList(args[0]),
		Delay:      time.Duration(flagDelay) * time.Second,
		ForceStart: flagForceStart,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	backend, err := svcensure.ParseBackend(flagBackend)
	if err != nil {
		return err
	}

	control, err := svcensure.NewControl(backend,
		svcensure.WithServiceDir(flagServiceDir),
		svcensure.WithSudo(flagSudo, ""),
		svcensure.WithOpTimeout(flagOpTimeout),
	)
	if err != nil {
		return err
	}

	rec := svcensure.NewReconciler(control,
		svcensure.WithLogger(logger),
		svcensure.WithVerifyWait(flagVerifyWait),
	)

	outcome := rec.Reconcile(cmd.Context(), cfg)

	if flagReport != "" {
		if werr := svcensure.WriteReport(flagReport, cfg, outcome); werr != nil {
			logger.Warn("report write failed", zap.Error(werr))
		}
	}

	if code := outcome.ExitCode(); code != svcensure.ExitSuccess {
		return &exitCodeError{code: code}
	}
	return nil
}

// newLogger builds a console logger for one-shot CLI use.
func newLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

func main() {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(`{{printf "svcensure version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		var exitErr *exitCodeError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.code)
		}
		os.Exit(1)
	}
}
