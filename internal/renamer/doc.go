// Package renamer renames the images in a directory to a numbered sequence.
//
// Entries directly inside the directory whose names end with the configured
// suffix (".jpg" by default, matched case-sensitively) are sorted byte-wise
// and renamed in that order to "g1.jpg", "g2.jpg", and so on.
//
// # Operations
//
//   - [Scan]: list eligible and skipped entry names
//   - [NewPlan]: compute the ordered renames without touching the disk
//   - [Plan.Conflicts]: find steps whose target already exists at that point
//   - [Apply]: perform the renames of a plan, reporting each success
//   - [Run]: plan, apply and print the classic "Renamed: a -> b" lines
//
// # Ordering
//
// Sorting is purely lexicographic, so "g10.jpg" sorts before "g2.jpg".
//
// # Failure Behavior
//
// A failing rename stops the sequence. Renames already applied are kept;
// there is no rollback. Existing targets are overwritten unless
// [Options.NoClobber] is set, in which case the whole plan is refused
// before the first rename.
package renamer
