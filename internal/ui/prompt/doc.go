// Package prompt provides simple interactive prompts.
//
// Prompts render to stderr so stdout keeps only the rename report.
//
// Available prompts:
//   - [Confirm]: Yes/No confirmation prompt
package prompt
