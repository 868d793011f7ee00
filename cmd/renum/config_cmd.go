package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/raphi011/renum/internal/config"
	"github.com/raphi011/renum/internal/log"
	"github.com/raphi011/renum/internal/output"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config [dir]",
		Short: "Show the effective configuration",
		Long: `Show the configuration used for a directory as TOML.

Values from ~/.config/renum/config.toml are merged with the directory's
.renum.toml. Flags given to renum itself still override the result.

To rename the files of a directory named "config", run renum ./config.`,
		Example: `  renum config              # Effective config for the current directory
  renum config ~/Pictures   # Effective config for another directory
  renum config init         # Write a commented default config file`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			if info, err := os.Stat(filepath.Join(a.workDir, "config")); err == nil && info.IsDir() {
				log.FromContext(cmd.Context()).Warnf("showing configuration, use 'renum ./config' to rename inside the config directory")
			}

			dir := a.targetDir(args)

			local, err := config.LoadLocal(dir)
			if err != nil {
				return err
			}
			merged, err := config.MergeLocal(a.cfg, local)
			if err != nil {
				return err
			}

			text, err := merged.Encode()
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			out.Printf("%s", text)
			return nil
		},
	}

	cmd.AddCommand(newConfigInitCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			path, err := config.Init(force)
			if err != nil {
				return err
			}
			out.Printf("Created %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")

	return cmd
}
