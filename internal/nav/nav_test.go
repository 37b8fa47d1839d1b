// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package nav

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		ctx  Context
		want Destination
	}{
		{
			name: "group origin with label",
			ctx:  FromGroup("g-1", "CS Fundamentals"),
			want: Destination{Route: RouteGroup, GroupID: "g-1", Label: "Back to CS Fundamentals"},
		},
		{
			name: "group origin without label falls back to generic",
			ctx:  Context{Origin: OriginGroup, GroupID: "g-1"},
			want: Destination{Route: RouteGroup, GroupID: "g-1", Label: "Back to Group"},
		},
		{
			name: "group origin without id is not trusted",
			ctx:  Context{Origin: OriginGroup, GroupLabel: "CS Fundamentals"},
			want: Destination{Route: RouteExplore, Label: "Back to Explore"},
		},
		{
			name: "home origin",
			ctx:  FromHome(),
			want: Destination{Route: RouteHome, Label: "Back to Home"},
		},
		{
			name: "explore origin",
			ctx:  FromExplore(),
			want: Destination{Route: RouteExplore, Label: "Back to Explore"},
		},
		{
			name: "zero context defaults to explore",
			ctx:  Context{},
			want: Destination{Route: RouteExplore, Label: "Back to Explore"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.ctx); got != tt.want {
				t.Errorf("Resolve(%+v) = %+v, want %+v", tt.ctx, got, tt.want)
			}
		})
	}
}

func TestOriginString(t *testing.T) {
	if OriginGroup.String() != "group" || OriginHome.String() != "home" {
		t.Error("origin names changed")
	}
	if OriginNone.String() != "none" {
		t.Error("zero origin should stringify as none")
	}
}
