// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package version

import "testing"

func TestInfoString(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{name: "zero value", info: Info{}, want: "dev"},
		{name: "version only", info: Info{Version: "v1.2.0"}, want: "v1.2.0"},
		{name: "version and commit", info: Info{Version: "v1.2.0", GitCommit: "abc1234"}, want: "v1.2.0 (abc1234)"},
		{name: "commit only", info: Info{GitCommit: "abc1234"}, want: "dev (abc1234)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
