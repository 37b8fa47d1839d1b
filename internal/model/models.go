// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model defines the forum resource types returned by the UniVerse API.
package model

// University is a university as returned by GET /api/universities.
type University struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	UserCount  int    `json:"user_count"`
	ClassCount int    `json:"class_count"`
}

// Class is a class listing entry. University is the denormalized display
// name, not an identifier.
type Class struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	University      string   `json:"university"`
	UniversityID    string   `json:"university_id,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	DiscussionCount int      `json:"discussion_count,omitempty"`
}

// ClassGroup is the set of sibling classes grouped with a given class,
// as returned by GET /api/class-groups/by-class/{class_id}.
type ClassGroup struct {
	GroupID string       `json:"group_id"`
	Classes []GroupClass `json:"classes"`
}

// GroupClass is one class inside a class group.
type GroupClass struct {
	ClassID    string   `json:"class_id"`
	Name       string   `json:"name"`
	University string   `json:"university"`
	Tags       []string `json:"tags,omitempty"`
}

// DiscussionSummary is a discussion as it appears in listings. Body is
// truncated server-side to a preview.
type DiscussionSummary struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	CreatedAt  string `json:"created_at"`
	Author     string `json:"author"`
	University string `json:"university"`
	Class      string `json:"class"`
	ReplyCount int    `json:"reply_count"`
}

// Discussion is the full discussion detail with its untruncated body.
type Discussion struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
	Author    string `json:"author"`
	ClassID   string `json:"class_id"`
	Class     string `json:"class"`
}

// Reply is a single reply to a discussion.
type Reply struct {
	ID           string `json:"id"`
	DiscussionID string `json:"discussion_id"`
	Body         string `json:"body"`
	CreatedAt    string `json:"created_at"`
	Author       string `json:"author"`
}

// Tag is a class tag with usage statistics.
type Tag struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ClassCount int    `json:"class_count,omitempty"`
}
