// Package tui provides the Bubble Tea front end of romtool.
//
// Two pieces live here:
//
//   - Form, an interactive prompt that collects a list of values and keeps
//     asking for a field until its validator accepts the answer.
//   - RunView, a live view of a running pipeline: spinner, progress bar fed
//     by polling the pipeline's counters, and the most recent log lines.
//
// Both are plain tea.Models, so their Update logic can be driven directly
// in tests without a terminal.
package tui
