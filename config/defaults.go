package config

import (
	"os"
	"path/filepath"
)

const (
	// DefaultListen is the HTTP listen address when none is configured.
	DefaultListen = ":8080"

	// DefaultLogLevel matches logrus level names.
	DefaultLogLevel = "info"

	// DefaultAuthMethod is how the metastore API key is sent.
	DefaultAuthMethod = "header"

	// DefaultAuthHeader carries the API key for header auth.
	DefaultAuthHeader = "X-Api-Key"
)

// DefaultCacheDir is where fetched spec documents are cached on disk.
func DefaultCacheDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "dkan2")
}
