// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package nav carries ephemeral navigation context between views.
//
// A class view can be reached from a class group, from the home feed, or
// from explore. The back affordance must return the user to wherever they
// actually came from, so the originating view attaches a Context to the
// navigation. The context lives only in memory; it is never persisted and
// a restart resets it.
package nav

// Route identifies a screen in the application.
type Route string

const (
	RouteHome       Route = "home"
	RouteExplore    Route = "explore"
	RouteLogin      Route = "login"
	RouteSignup     Route = "signup"
	RouteProfile    Route = "profile"
	RouteGroup      Route = "group"
	RouteClass      Route = "class"
	RouteDiscussion Route = "discussion"
)

// Origin names the kind of view a navigation originated from.
type Origin int

const (
	// OriginNone is the zero value: no context was attached.
	OriginNone Origin = iota

	// OriginGroup means the user came from a class group view.
	OriginGroup

	// OriginHome means the user came from the home feed.
	OriginHome

	// OriginExplore means the user came from the explore view.
	OriginExplore
)

// String returns the origin name for logs.
func (o Origin) String() string {
	switch o {
	case OriginGroup:
		return "group"
	case OriginHome:
		return "home"
	case OriginExplore:
		return "explore"
	default:
		return "none"
	}
}

// Context describes where a navigation came from. GroupID and GroupLabel are
// meaningful only when Origin is OriginGroup.
type Context struct {
	Origin     Origin
	GroupID    string
	GroupLabel string
}

// FromGroup builds the context attached when navigating out of a class
// group view.
func FromGroup(groupID, label string) Context {
	return Context{Origin: OriginGroup, GroupID: groupID, GroupLabel: label}
}

// FromHome builds the context attached when navigating out of the home feed.
func FromHome() Context {
	return Context{Origin: OriginHome}
}

// FromExplore builds the context attached when navigating out of explore.
func FromExplore() Context {
	return Context{Origin: OriginExplore}
}

// Destination is a resolved back target: the route to return to and the
// label to render on the back affordance.
type Destination struct {
	Route   Route
	GroupID string
	Label   string
}

// Resolve maps a context to its back destination. The resolution is ordered
// and total: a group origin with a usable id wins, then home, then explore;
// anything else falls through to explore, which is always reachable and
// never needs parameters.
func Resolve(ctx Context) Destination {
	switch {
	case ctx.Origin == OriginGroup && ctx.GroupID != "":
		label := ctx.GroupLabel
		if label == "" {
			label = "Group"
		}
		return Destination{Route: RouteGroup, GroupID: ctx.GroupID, Label: "Back to " + label}
	case ctx.Origin == OriginHome:
		return Destination{Route: RouteHome, Label: "Back to Home"}
	default:
		return Destination{Route: RouteExplore, Label: "Back to Explore"}
	}
}
