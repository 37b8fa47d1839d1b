// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status_cmd.go - backend and session status.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/universeapp/universe-tui/internal/api"
	"github.com/universeapp/universe-tui/internal/config"
	"github.com/universeapp/universe-tui/internal/session"
)

// RunStatus reports config, session, and backend reachability.
func RunStatus(cfg *config.Config, client *api.Client, sessions *session.Manager) int {
	fmt.Println(VersionString())
	fmt.Printf("Backend:   %s\n", cfg.API.BaseURL)
	fmt.Printf("Theme:     %s\n", cfg.UI.Theme)
	fmt.Printf("History:   %v\n", cfg.History.Enabled)

	if s, ok := sessions.Current(); ok {
		fmt.Printf("Session:   %s <%s>\n", s.Name, s.Email)
	} else {
		fmt.Println("Session:   not logged in")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	_, err := client.ListUniversities(ctx, "")
	if err != nil {
		fmt.Printf("API:       unreachable (%s)\n", statusErrText(err))
		return 1
	}
	fmt.Printf("API:       ok (%v)\n", time.Since(start).Round(time.Millisecond))
	return 0
}

func statusErrText(err error) string {
	if apiErr, ok := api.APIError(err); ok {
		return apiErr.Message
	}
	return "network error"
}
