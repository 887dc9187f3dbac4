// Package version reports the trellis release.
package version

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var embedded string

// Build overrides the embedded release when set at link time:
//
//	go build -ldflags "-X github.com/ShayCichocki/trellis/internal/version.Build=0.2.0-rc1"
var Build string

// Get returns the release string, preferring Build over the VERSION file.
func Get() string {
	if b := strings.TrimSpace(Build); b != "" {
		return b
	}
	if v := strings.TrimSpace(embedded); v != "" {
		return v
	}
	return "dev"
}
