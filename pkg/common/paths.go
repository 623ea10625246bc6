package common

import (
	"os"
	"path/filepath"
)

// This file defines the local paths taskxm reads and writes.

const (
	// RootDirName is the directory created under the user's home directory, e.g. ~/.taskxm.
	RootDirName = ".taskxm"

	// DefaultConfigFileName is looked up inside RootDirName when --config is not given.
	DefaultConfigFileName = "config.yaml"

	// DefaultDataFileName holds the saved task table.
	DefaultDataFileName = "tasks.txt"

	// DefaultLogDirName and DefaultLogFileName locate the rotated log file when file logging is on.
	DefaultLogDirName  = "logs"
	DefaultLogFileName = "taskxm.log"
)

// RootDir returns ~/.taskxm, or ./.taskxm when the home directory cannot be determined.
func RootDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return RootDirName
	}
	return filepath.Join(home, RootDirName)
}

func DefaultConfigPath() string {
	return filepath.Join(RootDir(), DefaultConfigFileName)
}

func DefaultDataFilePath() string {
	return filepath.Join(RootDir(), DefaultDataFileName)
}

func DefaultLogFilePath() string {
	return filepath.Join(RootDir(), DefaultLogDirName, DefaultLogFileName)
}
