package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/colorprofile"
	"github.com/spf13/cobra"

	"github.com/raphi011/renum/internal/config"
	"github.com/raphi011/renum/internal/log"
	"github.com/raphi011/renum/internal/output"
	"github.com/raphi011/renum/internal/ui/prompt"
)

// app holds the state shared by all commands.
type app struct {
	cfg     config.Config
	workDir string

	// confirm asks before renaming in --interactive mode
	confirm func(msg string) (prompt.ConfirmResult, error)

	// Global flags
	verbose bool
	quiet   bool
}

// targetDir returns the directory argument resolved against workDir, or
// workDir itself when no argument is given.
func (a *app) targetDir(args []string) string {
	if len(args) == 0 {
		return a.workDir
	}
	if filepath.IsAbs(args[0]) {
		return args[0]
	}
	return filepath.Join(a.workDir, args[0])
}

// newRootCmd builds the command tree. cfg is the loaded global config and
// workDir the directory used when no directory argument is given.
func newRootCmd(cfg config.Config, workDir string) *cobra.Command {
	return newAppCmd(&app{cfg: cfg, workDir: workDir, confirm: prompt.Confirm})
}

func newAppCmd(a *app) *cobra.Command {
	cmd := newRenameCmd(a)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SuggestionsMinimumDistance = 2
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Flags are parsed here, so the logger sees --verbose/--quiet
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx = log.WithLogger(ctx, log.New(cmd.ErrOrStderr(), a.verbose, a.quiet))
		ctx = output.WithPrinter(ctx, cmd.OutOrStdout())
		cmd.SetContext(ctx)
		return nil
	}

	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log each filesystem operation")
	cmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "Suppress all log output")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.Version = versionString()
	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.AddCommand(newConfigCmd(a))

	return cmd
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	// Invalid config is not fatal, fall back to defaults
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "renum: failed to get working directory: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rootCmd := newRootCmd(cfg, workDir)
	// Downsample or strip colors for pipes, NO_COLOR and dumb terminals
	rootCmd.SetOut(colorprofile.NewWriter(os.Stdout, os.Environ()))
	rootCmd.SetErr(colorprofile.NewWriter(os.Stderr, os.Environ()))

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Run 'renum -h' for help")
		cancel()
		os.Exit(1)
	}
}
