// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    Command
		wantErr bool
	}{
		{"no args starts tui", nil, CmdTUI, false},
		{"login", []string{"login"}, CmdLogin, false},
		{"logout", []string{"logout"}, CmdLogout, false},
		{"whoami", []string{"whoami"}, CmdWhoami, false},
		{"status", []string{"status"}, CmdStatus, false},
		{"status alias", []string{"s"}, CmdStatus, false},
		{"config defaults to show", []string{"config"}, CmdConfig, false},
		{"config show", []string{"config", "show"}, CmdConfig, false},
		{"config path", []string{"config", "path"}, CmdConfig, false},
		{"config set", []string{"config", "set", "ui.theme", "dark"}, CmdConfig, false},
		{"config set missing value", []string{"config", "set", "ui.theme"}, CmdConfig, true},
		{"config unknown sub", []string{"config", "frobnicate"}, CmdConfig, true},
		{"version", []string{"version"}, CmdVersion, false},
		{"version flag", []string{"--version"}, CmdVersion, false},
		{"help", []string{"help"}, CmdHelp, false},
		{"help flag", []string{"-h"}, CmdHelp, false},
		{"unknown command", []string{"frobnicate"}, CmdTUI, true},
		{"unknown flag", []string{"--frobnicate"}, CmdTUI, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%v) expected error", tt.args)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%v) unexpected error: %v", tt.args, err)
			}
			if got.Command != tt.want {
				t.Errorf("Parse(%v).Command = %v, want %v", tt.args, got.Command, tt.want)
			}
		})
	}
}

func TestParseConfigSetValues(t *testing.T) {
	got, err := Parse([]string{"config", "set", "api.base_url", "http://example.com"})
	if err != nil {
		t.Fatal(err)
	}
	if got.ConfigKey != "api.base_url" || got.ConfigVal != "http://example.com" {
		t.Errorf("got key=%q val=%q", got.ConfigKey, got.ConfigVal)
	}
}

func TestUsageMentionsEveryCommand(t *testing.T) {
	usage := Usage()
	for _, cmd := range []string{"login", "logout", "whoami", "status", "config", "version", "help"} {
		if !strings.Contains(usage, cmd) {
			t.Errorf("usage text missing %q", cmd)
		}
	}
}
