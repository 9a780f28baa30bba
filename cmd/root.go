package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/harsh-app/harsh/internal/logger"
	"github.com/harsh-app/harsh/pkg/loadtest"
)

const (
	envPrefix = "HARSH"
	// targetEnv is the environment variable the load test target is read from
	targetEnv = "TARGET_URL"
)

// Exit codes of the cli
const (
	exitFailure           = 1
	exitThresholdsCrossed = 99
)

// NewCmdRoot creates a new root command
func NewCmdRoot(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "harsh",
		Short: "harsh-app, a health service and its load generator",
		Long: "harsh-app serves a static health payload and ships a load generator\n" +
			"checking its latency and failure rate against thresholds.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}
	return rootCmd
}

// initConfig loads the .env file if present and binds the environment
func initConfig() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	return viper.BindEnv(loadtestTargetKey, envPrefix+"_LOADTEST_TARGET", targetEnv)
}

// Execute adds all child commands to the root command
// and executes the cmd tree
func Execute(version string) {
	cmd := NewCmdRoot(version)
	cmd.AddCommand(NewCmdServe())
	cmd.AddCommand(NewCmdLoadtest())
	cmd.AddCommand(NewCmdScore())
	cmd.AddCommand(NewCmdCDR())
	cmd.AddCommand(NewCmdProposeFix())
	cmd.AddCommand(NewCmdOpenAPI(version))
	cmd.AddCommand(NewCmdGenDocs(cmd))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	ctx = logger.IntoContext(ctx, logger.NewLogger())

	err := cmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps the error returned by a command to the exit code of the process
func exitCode(err error) int {
	if errors.Is(err, loadtest.ErrThresholdsCrossed) {
		return exitThresholdsCrossed
	}
	return exitFailure
}
