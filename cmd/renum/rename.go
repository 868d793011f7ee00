package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/renum/internal/config"
	"github.com/raphi011/renum/internal/log"
	"github.com/raphi011/renum/internal/output"
	"github.com/raphi011/renum/internal/renamer"
	"github.com/raphi011/renum/internal/ui/progress"
	"github.com/raphi011/renum/internal/ui/static"
)

func newRenameCmd(a *app) *cobra.Command {
	var (
		prefix      string
		ext         string
		start       int
		dryRun      bool
		noClobber   bool
		interactive bool
		showBar     bool
	)

	cmd := &cobra.Command{
		Use:   "renum [dir]",
		Short: "Rename the JPEG files of a directory to g1.jpg, g2.jpg, ...",
		Long: `renum renames every entry of a directory whose name ends with ".jpg"
to a numbered sequence, in byte-wise sort order of the original names.

Without arguments the current directory is used. Matching is case-sensitive:
"photo.JPG" and "photo.jpeg" are left alone. Sorting is lexicographic, so
"img10.jpg" comes before "img2.jpg".

Existing entries with a target name are overwritten unless --no-clobber is
set. A failed rename stops the run; earlier renames are kept.

Defaults come from ~/.config/renum/config.toml and a .renum.toml file in the
target directory, which is never renamed itself.

To rename inside a directory called "config", pass it as ./config; a bare
"config" runs the config subcommand.`,
		Example: `  renum                     # Rename *.jpg in the current directory
  renum ~/Pictures/trip     # Rename *.jpg in another directory
  renum -n                  # Show the plan without renaming
  renum --prefix img_ --start 0
  renum --ext .png --no-clobber`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			dir := a.targetDir(args)

			opts, err := resolveOptions(a.cfg, dir)
			if err != nil {
				return err
			}

			// Explicit flags win over config files
			flags := cmd.Flags()
			if flags.Changed("prefix") {
				opts.Prefix = prefix
			}
			if flags.Changed("ext") {
				opts.Extension = ext
			}
			if flags.Changed("start") {
				opts.Start = start
			}
			if flags.Changed("no-clobber") {
				opts.NoClobber = noClobber
			}

			plan, err := renamer.NewPlan(dir, opts)
			if err != nil {
				return err
			}

			l.Debug("planned renames", "dir", dir, "count", plan.Len(), "skipped", len(plan.Skipped))

			if misses := renamer.NearMisses(plan.Skipped, opts.Extension); len(misses) > 0 {
				l.Warnf("not renaming %s (only names ending with %q match)", strings.Join(misses, ", "), opts.Extension)
			}

			if conflicts := plan.Conflicts(); len(conflicts) > 0 && !opts.NoClobber && !dryRun {
				l.Warnf("%d rename(s) will replace an existing entry, use --no-clobber to refuse", len(conflicts))
			}

			if dryRun {
				out.Table(static.PlanHeaders, static.PlanRows(plan))
				out.Printf("Dry run: %d file(s) would be renamed\n", plan.Len())
				return nil
			}

			if interactive && plan.Len() > 0 {
				fmt.Fprint(l.Writer(), static.RenderTable(static.PlanHeaders, static.PlanRows(plan)))
				result, err := a.confirm(fmt.Sprintf("Rename %d file(s) in %s?", plan.Len(), dir))
				if err != nil {
					return err
				}
				if !result.Confirmed {
					l.Println("Aborted, nothing renamed")
					return nil
				}
			}

			var bar *progress.ProgressBar
			if showBar && plan.Len() > 0 {
				bar = progress.NewProgressBar(plan.Len(), "Renaming")
				bar.Start()
				defer bar.Stop()
			}

			err = renamer.Apply(ctx, plan, opts, func(r renamer.Rename) {
				out.Println(renamer.ReportLine(r))
				if bar != nil {
					bar.Advance(r.New)
				}
			})
			if err != nil {
				return err
			}

			out.Println(renamer.DoneMessage)
			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", renamer.DefaultPrefix, "Prefix of the new names")
	cmd.Flags().StringVar(&ext, "ext", renamer.DefaultExtension, "Case-sensitive suffix of files to rename")
	cmd.Flags().IntVar(&start, "start", renamer.DefaultStart, "Index of the first file")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Show the plan without renaming")
	cmd.Flags().BoolVar(&noClobber, "no-clobber", false, "Refuse to run if a new name is already taken")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Confirm the plan before renaming")
	cmd.Flags().BoolVar(&showBar, "progress", false, "Show a progress bar on stderr")
	cmd.MarkFlagsMutuallyExclusive("dry-run", "interactive")

	return cmd
}

// resolveOptions merges the directory's .renum.toml into the global config.
func resolveOptions(global config.Config, dir string) (renamer.Options, error) {
	local, err := config.LoadLocal(dir)
	if err != nil {
		return renamer.Options{}, err
	}
	merged, err := config.MergeLocal(global, local)
	if err != nil {
		return renamer.Options{}, err
	}
	opts := merged.Options()
	// The file that configured this run must survive it
	opts.Exclude = []string{config.LocalConfigFileName}
	return opts, nil
}
