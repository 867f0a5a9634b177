package main

import (
	"log"
	"os"
	"strings"

	"project2prompt/cmd"
	"project2prompt/pkg/logging"
	"project2prompt/pkg/version"

	"go.uber.org/zap"
	"golang.org/x/term"
)

func main() {
	logger, err := logging.Setup(false, version.AppName, version.Version)
	if err != nil {
		log.Printf("Failed to initialize logger: %v", err)
	}

	err = cmd.Execute(logger)
	syncLogger(zap.L())
	if err != nil {
		os.Exit(1)
	}
}

// syncLogger flushes the logger when stderr is a terminal or a regular file;
// syncing a pipe or character device reports spurious errors.
func syncLogger(logger *zap.Logger) {
	if !term.IsTerminal(int(os.Stderr.Fd())) && !isRegularFile(os.Stderr) {
		return
	}
	if syncErr := logger.Sync(); syncErr != nil {
		if !strings.Contains(strings.ToLower(syncErr.Error()), "invalid argument") {
			log.Printf("Logger sync failed: %v", syncErr)
		}
	}
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return fileInfo.Mode().IsRegular()
}
