// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - config show/set/path.
package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/universeapp/universe-tui/internal/config"
)

// RunConfig handles the config subcommands.
func RunConfig(args Args) int {
	switch args.Subcommand {
	case "path":
		path, err := config.ConfigPathTOML()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		fmt.Println(path)
		return 0

	case "set":
		return runConfigSet(args.ConfigKey, args.ConfigVal)

	default:
		return runConfigShow()
	}
}

func runConfigShow() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	fmt.Printf("api.base_url     = %s\n", cfg.API.BaseURL)
	fmt.Printf("api.timeout_secs = %d\n", cfg.API.TimeoutSecs)
	fmt.Printf("api.max_retries  = %d\n", cfg.API.MaxRetries)
	fmt.Printf("api.rate_limit   = %g\n", cfg.API.RateLimit)
	fmt.Printf("ui.theme         = %s\n", cfg.UI.Theme)
	fmt.Printf("ui.compact_mode  = %v\n", cfg.UI.CompactMode)
	fmt.Printf("history.enabled  = %v\n", cfg.History.Enabled)
	fmt.Printf("history.max_entries = %d\n", cfg.History.MaxEntries)
	return 0
}

func runConfigSet(key, value string) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	switch key {
	case "api.base_url":
		cfg.API.BaseURL = value
	case "api.timeout_secs":
		n, err := strconv.Atoi(value)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s must be an integer\n", key)
			return 1
		}
		cfg.API.TimeoutSecs = n
	case "api.max_retries":
		n, err := strconv.Atoi(value)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s must be an integer\n", key)
			return 1
		}
		cfg.API.MaxRetries = n
	case "api.rate_limit":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s must be a number\n", key)
			return 1
		}
		cfg.API.RateLimit = f
	case "ui.theme":
		cfg.UI.Theme = value
	case "ui.compact_mode":
		b, err := strconv.ParseBool(value)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s must be true or false\n", key)
			return 1
		}
		cfg.UI.CompactMode = b
	case "history.enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s must be true or false\n", key)
			return 1
		}
		cfg.History.Enabled = b
	case "history.max_entries":
		n, err := strconv.Atoi(value)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s must be an integer\n", key)
			return 1
		}
		cfg.History.MaxEntries = n
	default:
		fmt.Fprintf(os.Stderr, "error: unknown config key %q\n", key)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	if err := config.Save(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	fmt.Printf("%s = %s\n", key, value)
	return 0
}
