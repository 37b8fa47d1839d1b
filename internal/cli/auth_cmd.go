// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// auth_cmd.go - login, logout, and whoami command handlers.
//
// Command: login
// Short:   Authenticate against the forum backend from the terminal
//
// The email is read with line editing (history disabled); the password is
// read with echo off. On success the session is written to
// ~/.universe/session.json, the same slot the TUI uses.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/peterh/liner"
	"golang.org/x/term"

	"github.com/universeapp/universe-tui/internal/session"
)

// RunLogin prompts for credentials and performs a login.
func RunLogin(sessions *session.Manager) int {
	// Already logged in? Say so instead of silently replacing the session.
	if s, ok := sessions.Current(); ok {
		fmt.Printf("Already logged in as %s <%s>. Run 'universe logout' first to switch accounts.\n", s.Name, s.Email)
		return 0
	}

	email, err := promptEmail()
	if err != nil {
		fmt.Fprintf(os.Stderr, "login aborted: %v\n", err)
		return 1
	}

	password, err := promptPassword()
	if err != nil {
		fmt.Fprintf(os.Stderr, "login aborted: %v\n", err)
		return 1
	}

	res := sessions.Login(context.Background(), email, password)
	if !res.OK {
		fmt.Fprintln(os.Stderr, res.Err)
		return 1
	}

	s, _ := sessions.Current()
	fmt.Printf("Logged in as %s <%s>\n", s.Name, s.Email)
	return 0
}

// RunLogout clears the stored session.
func RunLogout(sessions *session.Manager) int {
	_, wasLoggedIn := sessions.Current()
	sessions.Logout()
	if wasLoggedIn {
		fmt.Println("Logged out.")
	} else {
		fmt.Println("Not logged in.")
	}
	return 0
}

// RunWhoami prints the logged-in identity.
func RunWhoami(sessions *session.Manager) int {
	s, ok := sessions.Current()
	if !ok {
		fmt.Println("Not logged in. Run 'universe login'.")
		return 1
	}
	fmt.Printf("%s <%s>\n", s.Name, s.Email)
	if s.University != "" {
		fmt.Println(s.University)
	}
	return 0
}

// promptEmail reads the email with line editing.
func promptEmail() (string, error) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	email, err := line.Prompt("Email: ")
	if err != nil {
		return "", err
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return "", fmt.Errorf("email is required")
	}
	return email, nil
}

// promptPassword reads the password with echo disabled.
func promptPassword() (string, error) {
	fmt.Print("Password: ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	if len(raw) == 0 {
		return "", fmt.Errorf("password is required")
	}
	return string(raw), nil
}
