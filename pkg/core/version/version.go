// ============================================================================
// ninjachat - Cyber Ninja AI Terminal Client
// ============================================================================
//
// Package:     version
// Description: Central version management
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Component versions
const (
	// App is the release version of the client
	App = "1.0.0"

	// Settings is the version of the persisted settings layout
	Settings = "1.0.0"

	// Journal is the version of the turn journal schema
	Journal = "1.0.0"
)

// Build metadata, set via -ldflags "-X ..."
var (
	GitCommit = "development"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "settings":
		return Settings
	case "journal":
		return Journal
	default:
		return App
	}
}

// UserAgent returns the User-Agent sent to the hosted services
func UserAgent() string {
	return fmt.Sprintf("ninjachat/%s (%s/%s)", App, runtime.GOOS, runtime.GOARCH)
}
