package renamer

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// populate creates files in dir; each file's content is its original name
// so renames can be traced afterwards.
func populate(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}
}

// contents maps every entry name in dir to its file content.
func contents(t *testing.T, dir string) map[string]string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read %s: %v", dir, err)
	}
	result := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			result[e.Name()] = "<dir>"
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			t.Fatalf("failed to read %s: %v", e.Name(), err)
		}
		result[e.Name()] = string(data)
	}
	return result
}

func skipIfRoot(t *testing.T) {
	t.Helper()
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
}

func TestRun_MixedDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	populate(t, dir, "b.jpg", "a.jpg", "c.txt")

	var out bytes.Buffer
	if err := Run(context.Background(), dir, DefaultOptions(), &out); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	wantOut := "Renamed: a.jpg -> g1.jpg\n" +
		"Renamed: b.jpg -> g2.jpg\n" +
		"All files have been renamed successfully!\n"
	if diff := cmp.Diff(wantOut, out.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}

	want := map[string]string{
		"g1.jpg": "a.jpg",
		"g2.jpg": "b.jpg",
		"c.txt":  "c.txt",
	}
	if diff := cmp.Diff(want, contents(t, dir)); diff != "" {
		t.Errorf("directory mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_EmptyDirectory(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := Run(context.Background(), t.TempDir(), DefaultOptions(), &out); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if got := out.String(); got != DoneMessage+"\n" {
		t.Errorf("output = %q, want only the success line", got)
	}
}

func TestRun_MissingDirectory(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := Run(context.Background(), filepath.Join(t.TempDir(), "missing"), DefaultOptions(), &out)
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}

func TestRun_UnreadableDirectory(t *testing.T) {
	skipIfRoot(t)
	t.Parallel()

	dir := t.TempDir()
	populate(t, dir, "a.jpg")
	if err := os.Chmod(dir, 0o000); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	var out bytes.Buffer
	err := Run(context.Background(), dir, DefaultOptions(), &out)
	if !errors.Is(err, fs.ErrPermission) {
		t.Fatalf("expected fs.ErrPermission, got %v", err)
	}
	if strings.Contains(out.String(), DoneMessage) {
		t.Error("success line must not be printed on failure")
	}
}

func TestRun_UppercaseExtensionNotMatched(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	populate(t, dir, "photo.JPG", "x.jpeg", "y.jpg")

	var out bytes.Buffer
	if err := Run(context.Background(), dir, DefaultOptions(), &out); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	want := map[string]string{
		"photo.JPG": "photo.JPG",
		"x.jpeg":    "x.jpeg",
		"g1.jpg":    "y.jpg",
	}
	if diff := cmp.Diff(want, contents(t, dir)); diff != "" {
		t.Errorf("directory mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_RenameFailureStopsSequence(t *testing.T) {
	skipIfRoot(t)
	t.Parallel()

	dir := t.TempDir()
	populate(t, dir, "a.jpg", "b.jpg")
	// Listable but not writable: the scan succeeds, the first rename fails.
	if err := os.Chmod(dir, 0o555); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	var out bytes.Buffer
	err := Run(context.Background(), dir, DefaultOptions(), &out)

	var renameErr *RenameError
	if !errors.As(err, &renameErr) {
		t.Fatalf("expected *RenameError, got %T: %v", err, err)
	}
	if renameErr.Rename.Old != "a.jpg" || renameErr.Done != 0 || renameErr.Total != 2 {
		t.Errorf("RenameError = %+v, want first rename of 2", renameErr)
	}
	if !errors.Is(err, fs.ErrPermission) {
		t.Errorf("expected fs.ErrPermission in chain, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}

func TestRun_LexicographicOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	populate(t, dir, "img10.jpg", "img2.jpg", "img1.jpg", "Zebra.jpg")

	var out bytes.Buffer
	if err := Run(context.Background(), dir, DefaultOptions(), &out); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	// Byte order: uppercase before lowercase, "10" before "2".
	want := map[string]string{
		"g1.jpg": "Zebra.jpg",
		"g2.jpg": "img1.jpg",
		"g3.jpg": "img10.jpg",
		"g4.jpg": "img2.jpg",
	}
	if diff := cmp.Diff(want, contents(t, dir)); diff != "" {
		t.Errorf("directory mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_SecondRunKeepsNames(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	populate(t, dir, "c.jpg", "a.jpg", "b.jpg")

	for i := 0; i < 2; i++ {
		var out bytes.Buffer
		if err := Run(context.Background(), dir, DefaultOptions(), &out); err != nil {
			t.Fatalf("run %d: %v", i+1, err)
		}
	}

	want := map[string]string{
		"g1.jpg": "a.jpg",
		"g2.jpg": "b.jpg",
		"g3.jpg": "c.jpg",
	}
	if diff := cmp.Diff(want, contents(t, dir)); diff != "" {
		t.Errorf("directory mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_TwoDigitIndexesOverwrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	populate(t, dir, "g1.jpg", "g2.jpg", "g10.jpg")

	var out bytes.Buffer
	if err := Run(context.Background(), dir, DefaultOptions(), &out); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	// Sorted: g1, g10, g2. g10 -> g2 replaces the original g2, which is
	// then lost; the unguarded default keeps this behavior.
	wantOut := "Renamed: g1.jpg -> g1.jpg\n" +
		"Renamed: g10.jpg -> g2.jpg\n" +
		"Renamed: g2.jpg -> g3.jpg\n" +
		DoneMessage + "\n"
	if diff := cmp.Diff(wantOut, out.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}

	want := map[string]string{
		"g1.jpg": "g1.jpg",
		"g3.jpg": "g10.jpg",
	}
	if diff := cmp.Diff(want, contents(t, dir)); diff != "" {
		t.Errorf("directory mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_CustomOptions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	populate(t, dir, "b.png", "a.png", "c.jpg")

	opts := Options{Prefix: "scan_", Extension: ".png", Start: 0}
	var out bytes.Buffer
	if err := Run(context.Background(), dir, opts, &out); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	want := map[string]string{
		"scan_0.png": "a.png",
		"scan_1.png": "b.png",
		"c.jpg":      "c.jpg",
	}
	if diff := cmp.Diff(want, contents(t, dir)); diff != "" {
		t.Errorf("directory mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_InvalidOptions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	populate(t, dir, "a.jpg")

	var out bytes.Buffer
	err := Run(context.Background(), dir, Options{Prefix: "../g", Extension: ".jpg", Start: 1}, &out)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if _, statErr := os.Stat(filepath.Join(dir, "a.jpg")); statErr != nil {
		t.Error("a.jpg should be untouched after a validation error")
	}
}

func TestScan(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	populate(t, dir, "b.jpg", "a.jpg", "notes.txt", "photo.JPG")
	if err := os.Mkdir(filepath.Join(dir, "album.jpg"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	populate(t, filepath.Join(dir, "sub"), "nested.jpg")

	eligible, skipped, err := Scan(dir, ".jpg")
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}

	// Entries of any kind match by name; subdirectories are not entered.
	if diff := cmp.Diff([]string{"a.jpg", "album.jpg", "b.jpg"}, eligible); diff != "" {
		t.Errorf("eligible mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"notes.txt", "photo.JPG", "sub"}, skipped); diff != "" {
		t.Errorf("skipped mismatch (-want +got):\n%s", diff)
	}
}

func TestNewPlan(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	populate(t, dir, "c.jpg", "a.jpg", "b.jpg", "readme.md")

	plan, err := NewPlan(dir, DefaultOptions())
	if err != nil {
		t.Fatalf("NewPlan() error: %v", err)
	}

	want := []Rename{
		{Index: 1, Old: "a.jpg", New: "g1.jpg"},
		{Index: 2, Old: "b.jpg", New: "g2.jpg"},
		{Index: 3, Old: "c.jpg", New: "g3.jpg"},
	}
	if diff := cmp.Diff(want, plan.Renames); diff != "" {
		t.Errorf("renames mismatch (-want +got):\n%s", diff)
	}
	if plan.Len() != 3 {
		t.Errorf("Len() = %d, want 3", plan.Len())
	}
	if plan.Dir != dir {
		t.Errorf("Dir = %q, want %q", plan.Dir, dir)
	}

	// Planning must not touch the disk.
	if _, err := os.Stat(filepath.Join(dir, "a.jpg")); err != nil {
		t.Errorf("a.jpg should still exist after planning: %v", err)
	}
}

func TestNewPlan_IndexesFollowSortOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	populate(t, dir, "delta.jpg", "alpha.jpg", "charlie.jpg", "bravo.jpg")

	plan, err := NewPlan(dir, DefaultOptions())
	if err != nil {
		t.Fatalf("NewPlan() error: %v", err)
	}

	for i := 1; i < len(plan.Renames); i++ {
		prev, cur := plan.Renames[i-1], plan.Renames[i]
		if !(prev.Old < cur.Old) || !(prev.Index < cur.Index) {
			t.Errorf("order broken between %+v and %+v", prev, cur)
		}
	}
	if plan.Renames[0].Index != 1 {
		t.Errorf("first index = %d, want 1", plan.Renames[0].Index)
	}
}

func TestNewPlan_Exclude(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	populate(t, dir, "a.toml", ".renum.toml", "b.toml")

	opts := DefaultOptions()
	opts.Extension = ".toml"
	opts.Start = 5
	opts.Exclude = []string{".renum.toml"}
	plan, err := NewPlan(dir, opts)
	if err != nil {
		t.Fatalf("NewPlan() error: %v", err)
	}

	want := []Rename{
		{Index: 5, Old: "a.toml", New: "g5.toml"},
		{Index: 6, Old: "b.toml", New: "g6.toml"},
	}
	if diff := cmp.Diff(want, plan.Renames); diff != "" {
		t.Errorf("Renames mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{".renum.toml"}, plan.Skipped); diff != "" {
		t.Errorf("Skipped mismatch (-want +got):\n%s", diff)
	}
}

func TestApply_NoClobberRefusesConflicts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	populate(t, dir, "a.jpg", "b.jpg", "g1.jpg")
	before := contents(t, dir)

	opts := DefaultOptions()
	opts.NoClobber = true
	plan, err := NewPlan(dir, opts)
	if err != nil {
		t.Fatalf("NewPlan() error: %v", err)
	}

	var reported []Rename
	err = Apply(context.Background(), plan, opts, func(r Rename) { reported = append(reported, r) })

	var conflictErr *ConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("expected *ConflictError, got %T: %v", err, err)
	}
	if !errors.Is(err, fs.ErrExist) {
		t.Error("conflict error should match fs.ErrExist")
	}
	if len(conflictErr.Conflicts) != 1 || conflictErr.Conflicts[0].Old != "a.jpg" {
		t.Errorf("Conflicts = %+v, want a.jpg -> g1.jpg", conflictErr.Conflicts)
	}
	if len(reported) != 0 {
		t.Errorf("expected no renames reported, got %+v", reported)
	}
	if diff := cmp.Diff(before, contents(t, dir)); diff != "" {
		t.Errorf("directory changed (-before +after):\n%s", diff)
	}
}

func TestApply_NoClobberWithoutConflicts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	populate(t, dir, "a.jpg", "b.jpg")

	opts := DefaultOptions()
	opts.NoClobber = true
	plan, err := NewPlan(dir, opts)
	if err != nil {
		t.Fatalf("NewPlan() error: %v", err)
	}
	if err := Apply(context.Background(), plan, opts, nil); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}

	want := map[string]string{"g1.jpg": "a.jpg", "g2.jpg": "b.jpg"}
	if diff := cmp.Diff(want, contents(t, dir)); diff != "" {
		t.Errorf("directory mismatch (-want +got):\n%s", diff)
	}
}

func TestApply_ReportsInOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	populate(t, dir, "z.jpg", "m.jpg", "a.jpg")

	plan, err := NewPlan(dir, DefaultOptions())
	if err != nil {
		t.Fatalf("NewPlan() error: %v", err)
	}

	var reported []string
	err = Apply(context.Background(), plan, DefaultOptions(), func(r Rename) {
		reported = append(reported, r.Old+">"+r.New)
	})
	if err != nil {
		t.Fatalf("Apply() error: %v", err)
	}

	want := []string{"a.jpg>g1.jpg", "m.jpg>g2.jpg", "z.jpg>g3.jpg"}
	if diff := cmp.Diff(want, reported); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestApply_CancelledContext(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	populate(t, dir, "a.jpg", "b.jpg")

	plan, err := NewPlan(dir, DefaultOptions())
	if err != nil {
		t.Fatalf("NewPlan() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = Apply(ctx, plan, DefaultOptions(), nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	want := map[string]string{"a.jpg": "a.jpg", "b.jpg": "b.jpg"}
	if diff := cmp.Diff(want, contents(t, dir)); diff != "" {
		t.Errorf("directory changed (-want +got):\n%s", diff)
	}
}

func TestOptionsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"defaults", DefaultOptions(), false},
		{"empty prefix", Options{Prefix: "", Extension: ".jpg", Start: 1}, false},
		{"zero start", Options{Prefix: "g", Extension: ".jpg", Start: 0}, false},
		{"empty extension", Options{Prefix: "g", Extension: "", Start: 1}, true},
		{"slash in extension", Options{Prefix: "g", Extension: "/x.jpg", Start: 1}, true},
		{"backslash in prefix", Options{Prefix: `a\b`, Extension: ".jpg", Start: 1}, true},
		{"negative start", Options{Prefix: "g", Extension: ".jpg", Start: -2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTargetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		opts  Options
		index int
		want  string
	}{
		{DefaultOptions(), 1, "g1.jpg"},
		{DefaultOptions(), 12, "g12.jpg"},
		{Options{Prefix: "", Extension: ".png"}, 0, "0.png"},
		{Options{Prefix: "img-", Extension: ".jpeg"}, 7, "img-7.jpeg"},
	}

	for _, tt := range tests {
		if got := tt.opts.TargetName(tt.index); got != tt.want {
			t.Errorf("TargetName(%d) with %+v = %q, want %q", tt.index, tt.opts, got, tt.want)
		}
	}
}
