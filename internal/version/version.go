// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version provides build-time version information.
package version

// Set at build time, e.g.
// -ldflags "-X github.com/olegiv/poscat-go/internal/version.version=v1.0.0".
var (
	version   string
	gitCommit string
	buildTime string
)

// Info contains build-time version information injected via ldflags.
type Info struct {
	Version   string // Semantic version from git tags (e.g., "v1.2.3")
	GitCommit string // Short git commit hash (e.g., "abc1234")
	BuildTime string // Build timestamp in RFC3339 format
}

// String renders the info for startup logs and the health endpoint.
func (i Info) String() string {
	v := i.Version
	if v == "" {
		v = "dev"
	}
	if i.GitCommit != "" {
		v += " (" + i.GitCommit + ")"
	}
	return v
}

// Get returns the build info for this binary.
func Get() Info {
	return Info{Version: version, GitCommit: gitCommit, BuildTime: buildTime}
}
