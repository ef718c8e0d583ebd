package config

import (
	"log"
)

// Verbose and Debug are set from the root command's persistent flags.
var (
	Verbose bool
	Debug   bool
)

// VerboseLog prints a message when verbose output is enabled
func VerboseLog(format string, args ...interface{}) {
	if Verbose || Debug {
		log.Printf(format+"\n", args...)
	}
}

// DebugLog prints a [DEBUG] message when debug logging is enabled
func DebugLog(format string, args ...interface{}) {
	if Debug {
		log.Printf("[DEBUG] "+format+"\n", args...)
	}
}

// Warn prints a [WARN] message regardless of verbosity
func Warn(format string, args ...interface{}) {
	log.Printf("[WARN] "+format+"\n", args...)
}
