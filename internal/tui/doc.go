// Package tui provides the terminal user interface for git-pr-chain.
//
// It handles:
//   - Structured logging and status reporting (Splog)
//   - Terminal styling and colors (using lipgloss)
//   - Upload progress (line output or a bubbletea spinner on a TTY)
//   - Confirmation prompts (using survey)
package tui
