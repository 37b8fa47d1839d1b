// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command handlers for universe.
package cli

import (
	"fmt"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdLogin
	CmdLogout
	CmdWhoami
	CmdStatus
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	Command Command

	// Config subcommand: show | set | path
	Subcommand string
	ConfigKey  string
	ConfigVal  string

	// Raw args remaining after parsing
	Raw []string
}

const usageText = `universe - terminal client for the UniVerse forum

UniVerse connects students across universities through shared class
discussions.

Usage:
  universe                   Start the TUI (default)
  universe login             Log in from the command line
  universe logout            Clear the stored session
  universe whoami            Show the logged-in user
  universe status, s         Show backend and session status
  universe config [show|set|path]  Configuration
  universe version, -v       Show version
  universe help, -h          Show this help

Examples:
  universe login
  universe config set api.base_url http://localhost:5001
  universe config show

Configuration lives in ~/.universe/config.toml. Environment overrides:
  UNIVERSE_API_URL    Backend base URL
  UNIVERSE_THEME      dark | light | auto
  UNIVERSE_HISTORY    true | false
`

// Usage returns the top-level usage text.
func Usage() string {
	return usageText
}

// Parse parses command-line arguments (without the program name).
func Parse(args []string) (Args, error) {
	parsed := Args{Command: CmdTUI}
	if len(args) == 0 {
		return parsed, nil
	}

	cmd := args[0]
	rest := args[1:]

	switch cmd {
	case "login":
		parsed.Command = CmdLogin
	case "logout":
		parsed.Command = CmdLogout
	case "whoami":
		parsed.Command = CmdWhoami
	case "status", "s":
		parsed.Command = CmdStatus
	case "config":
		parsed.Command = CmdConfig
		if len(rest) > 0 {
			parsed.Subcommand = rest[0]
			rest = rest[1:]
		} else {
			parsed.Subcommand = "show"
		}
		switch parsed.Subcommand {
		case "show", "path":
		case "set":
			if len(rest) < 2 {
				return parsed, fmt.Errorf("usage: universe config set <key> <value>")
			}
			parsed.ConfigKey = rest[0]
			parsed.ConfigVal = rest[1]
			rest = rest[2:]
		default:
			return parsed, fmt.Errorf("unknown config subcommand %q", parsed.Subcommand)
		}
	case "version", "-v", "--version":
		parsed.Command = CmdVersion
	case "help", "-h", "--help":
		parsed.Command = CmdHelp
	default:
		if strings.HasPrefix(cmd, "-") {
			return parsed, fmt.Errorf("unknown flag %q", cmd)
		}
		return parsed, fmt.Errorf("unknown command %q (try 'universe help')", cmd)
	}

	parsed.Raw = rest
	return parsed, nil
}

// VersionString returns the formatted version line.
func VersionString() string {
	return fmt.Sprintf("universe %s (commit %s, built %s)", Version, GitCommit, BuildDate)
}
