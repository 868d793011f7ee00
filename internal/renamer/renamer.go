package renamer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/raphi011/renum/internal/log"
)

// Default naming scheme
const (
	DefaultPrefix    = "g"
	DefaultExtension = ".jpg"
	DefaultStart     = 1
)

// DoneMessage is printed by Run after every rename succeeded.
const DoneMessage = "All files have been renamed successfully!"

// Options controls which entries are eligible and how targets are named.
type Options struct {
	Prefix    string // target name prefix, "g" by default
	Extension string // eligible suffix, also appended to targets
	Start     int    // index of the first target
	NoClobber bool   // refuse plans that would overwrite an existing entry

	// Exclude lists names that are never renamed, even when they end
	// with Extension.
	Exclude []string
}

// DefaultOptions returns the options matching the classic g1.jpg..gN.jpg scheme.
func DefaultOptions() Options {
	return Options{
		Prefix:    DefaultPrefix,
		Extension: DefaultExtension,
		Start:     DefaultStart,
	}
}

// Validate checks that targets stay inside the directory.
func (o Options) Validate() error {
	if o.Extension == "" {
		return errors.New("extension must not be empty")
	}
	if strings.ContainsAny(o.Extension, `/\`) {
		return fmt.Errorf("extension must not contain a path separator, got %q", o.Extension)
	}
	if strings.ContainsAny(o.Prefix, `/\`) {
		return fmt.Errorf("prefix must not contain a path separator, got %q", o.Prefix)
	}
	if o.Start < 0 {
		return fmt.Errorf("start must not be negative, got %d", o.Start)
	}
	return nil
}

// TargetName returns the name assigned to the entry at the given index.
func (o Options) TargetName(index int) string {
	return fmt.Sprintf("%s%d%s", o.Prefix, index, o.Extension)
}

// Rename is a single planned rename inside the plan's directory.
type Rename struct {
	Index int    // assigned index, Start for the first entry
	Old   string // original name
	New   string // target name
}

// Plan is the ordered list of renames computed from one directory listing.
type Plan struct {
	Dir     string
	Renames []Rename
	Skipped []string // entries not matching the extension, sorted
}

// ReportLine formats the line printed after r succeeded.
func ReportLine(r Rename) string {
	return fmt.Sprintf("Renamed: %s -> %s", r.Old, r.New)
}

// Len returns the number of planned renames.
func (p *Plan) Len() int {
	return len(p.Renames)
}

// Scan lists the entries directly inside dir. Names ending with ext are
// returned sorted in eligible; all other names go to skipped.
func Scan(dir, ext string) (eligible, skipped []string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("scan directory: %w", err)
	}

	for _, e := range entries {
		name := e.Name()
		if strings.HasSuffix(name, ext) {
			eligible = append(eligible, name)
		} else {
			skipped = append(skipped, name)
		}
	}

	// Index assignment depends on this order.
	slices.Sort(eligible)
	slices.Sort(skipped)

	return eligible, skipped, nil
}

// NewPlan scans dir and assigns a target name to every eligible entry.
// Nothing on disk is modified.
func NewPlan(dir string, opts Options) (*Plan, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	eligible, skipped, err := Scan(dir, opts.Extension)
	if err != nil {
		return nil, err
	}

	if len(opts.Exclude) > 0 {
		kept := eligible[:0]
		for _, name := range eligible {
			if slices.Contains(opts.Exclude, name) {
				skipped = append(skipped, name)
			} else {
				kept = append(kept, name)
			}
		}
		eligible = kept
		slices.Sort(skipped)
	}

	plan := &Plan{
		Dir:     dir,
		Renames: make([]Rename, 0, len(eligible)),
		Skipped: skipped,
	}
	for i, name := range eligible {
		index := opts.Start + i
		plan.Renames = append(plan.Renames, Rename{
			Index: index,
			Old:   name,
			New:   opts.TargetName(index),
		})
	}

	return plan, nil
}

// Apply performs the renames of plan in order. report is called after
// each successful rename and may be nil.
//
// The first failure stops the sequence and is returned as a *RenameError;
// renames applied before it are kept. With opts.NoClobber set, a plan with
// conflicts is refused with a *ConflictError before anything is renamed.
func Apply(ctx context.Context, plan *Plan, opts Options, report func(Rename)) error {
	l := log.FromContext(ctx)

	if opts.NoClobber {
		if conflicts := plan.Conflicts(); len(conflicts) > 0 {
			return &ConflictError{Conflicts: conflicts}
		}
	}

	for i, r := range plan.Renames {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("stopped after %d of %d renames: %w", i, len(plan.Renames), err)
		}

		done := l.Op(plan.Dir, "rename", r.Old, r.New)
		start := time.Now()
		err := os.Rename(filepath.Join(plan.Dir, r.Old), filepath.Join(plan.Dir, r.New))
		done(time.Since(start))
		if err != nil {
			return &RenameError{Rename: r, Done: i, Total: len(plan.Renames), Err: err}
		}

		if report != nil {
			report(r)
		}
	}

	return nil
}

// Run renames the eligible entries of dir and writes one line per rename
// to w, followed by DoneMessage once all renames succeeded.
func Run(ctx context.Context, dir string, opts Options, w io.Writer) error {
	plan, err := NewPlan(dir, opts)
	if err != nil {
		return err
	}

	if err := Apply(ctx, plan, opts, func(r Rename) {
		fmt.Fprintln(w, ReportLine(r))
	}); err != nil {
		return err
	}

	fmt.Fprintln(w, DoneMessage)
	return nil
}
