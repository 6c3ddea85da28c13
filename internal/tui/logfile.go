package tui

import (
	"os"
	"path/filepath"
)

// GetLogFilePath returns the path to the log file.
// If GIT_PR_CHAIN_LOG_FILE is set, uses that path.
// Otherwise, uses ~/.git-pr-chain/logs/git-pr-chain.log
func GetLogFilePath() string {
	if customPath := os.Getenv("GIT_PR_CHAIN_LOG_FILE"); customPath != "" {
		return customPath
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "git-pr-chain.log"
	}

	return filepath.Join(homeDir, ".git-pr-chain", "logs", "git-pr-chain.log")
}
