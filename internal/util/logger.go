package util

import (
	"log"
	"os"
)

// NewLogger returns the process-wide logger threaded through Config.
func NewLogger() *log.Logger {
	return log.New(os.Stdout, "", log.LstdFlags)
}
