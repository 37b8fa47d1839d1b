// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"net/url"

	"github.com/universeapp/universe-tui/internal/model"
)

// =============================================================================
// USERS / AUTHENTICATION
// =============================================================================

// AuthUser is the user projection returned by the login and signup
// endpoints. University is the denormalized display name and may be empty.
type AuthUser struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	University   string `json:"university"`
	UniversityID string `json:"university_id,omitempty"`
}

// loginRequest is the POST /api/users/login payload.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authEnvelope wraps the user object in login/signup responses.
type authEnvelope struct {
	Message string   `json:"message"`
	User    AuthUser `json:"user"`
}

// Login authenticates with email and password, returning the user profile
// on success. Bad credentials come back as *Error; transport faults as
// ErrNetwork-wrapped errors.
func (c *Client) Login(ctx context.Context, email, password string) (AuthUser, error) {
	var envelope authEnvelope
	err := c.post(ctx, "/api/users/login", loginRequest{Email: email, Password: password}, &envelope)
	if err != nil {
		return AuthUser{}, err
	}
	return envelope.User, nil
}

// SignupRequest is the POST /api/users payload.
type SignupRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	UniversityID string `json:"university_id"`
}

// CreateUser registers a new account. The backend treats a successful
// signup as a valid identity, so callers may log the user straight in.
func (c *Client) CreateUser(ctx context.Context, req SignupRequest) (AuthUser, error) {
	var envelope authEnvelope
	if err := c.post(ctx, "/api/users", req, &envelope); err != nil {
		return AuthUser{}, err
	}
	return envelope.User, nil
}

// ProfileUpdate is the PUT /api/users/{id} payload. Zero-valued fields are
// omitted and left unchanged server-side.
type ProfileUpdate struct {
	Name     string `json:"name,omitempty"`
	Password string `json:"password,omitempty"`
}

// UpdateUser updates the given user's name and/or password. The response
// carries no profile payload; callers merge accepted changes themselves.
func (c *Client) UpdateUser(ctx context.Context, userID string, upd ProfileUpdate) error {
	return c.put(ctx, "/api/users/"+url.PathEscape(userID), upd, nil)
}

// =============================================================================
// UNIVERSITIES
// =============================================================================

// ListUniversities returns all universities, optionally filtered by a name
// search.
func (c *Client) ListUniversities(ctx context.Context, search string) ([]model.University, error) {
	query := url.Values{}
	if search != "" {
		query.Set("q", search)
	}
	var out []model.University
	if err := c.get(ctx, "/api/universities", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetUniversity returns a single university by id.
func (c *Client) GetUniversity(ctx context.Context, universityID string) (model.University, error) {
	var out model.University
	if err := c.get(ctx, "/api/universities/"+url.PathEscape(universityID), nil, &out); err != nil {
		return model.University{}, err
	}
	return out, nil
}

// =============================================================================
// CLASSES
// =============================================================================

// ClassFilter narrows ListClasses results. Zero values mean "no filter".
type ClassFilter struct {
	UniversityID string
	TagID        string
	Search       string
}

// ListClasses returns classes matching the filter.
func (c *Client) ListClasses(ctx context.Context, filter ClassFilter) ([]model.Class, error) {
	query := url.Values{}
	if filter.UniversityID != "" {
		query.Set("university_id", filter.UniversityID)
	}
	if filter.TagID != "" {
		query.Set("tag_id", filter.TagID)
	}
	if filter.Search != "" {
		query.Set("q", filter.Search)
	}
	var out []model.Class
	if err := c.get(ctx, "/api/classes", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetClass returns a single class by id.
func (c *Client) GetClass(ctx context.Context, classID string) (model.Class, error) {
	var out model.Class
	if err := c.get(ctx, "/api/classes/"+url.PathEscape(classID), nil, &out); err != nil {
		return model.Class{}, err
	}
	return out, nil
}

// CreateClassRequest is the POST /api/classes payload.
type CreateClassRequest struct {
	Name         string   `json:"name"`
	UniversityID string   `json:"university_id"`
	TagIDs       []string `json:"tag_ids,omitempty"`
}

// createClassEnvelope wraps the class object in the create response.
type createClassEnvelope struct {
	Message string      `json:"message"`
	Class   model.Class `json:"class"`
}

// CreateClass creates a class scoped to a university.
func (c *Client) CreateClass(ctx context.Context, req CreateClassRequest) (model.Class, error) {
	var envelope createClassEnvelope
	if err := c.post(ctx, "/api/classes", req, &envelope); err != nil {
		return model.Class{}, err
	}
	return envelope.Class, nil
}

// =============================================================================
// CLASS GROUPS
// =============================================================================

// GroupByClass returns the class group containing the given class, with all
// sibling classes.
func (c *Client) GroupByClass(ctx context.Context, classID string) (model.ClassGroup, error) {
	var out model.ClassGroup
	if err := c.get(ctx, "/api/class-groups/by-class/"+url.PathEscape(classID), nil, &out); err != nil {
		return model.ClassGroup{}, err
	}
	return out, nil
}

// =============================================================================
// DISCUSSIONS
// =============================================================================

// DiscussionFilter narrows ListDiscussions results.
type DiscussionFilter struct {
	ClassID      string
	UniversityID string
	Search       string
}

// ListDiscussions returns discussion summaries matching the filter, newest
// first.
func (c *Client) ListDiscussions(ctx context.Context, filter DiscussionFilter) ([]model.DiscussionSummary, error) {
	query := url.Values{}
	if filter.ClassID != "" {
		query.Set("class_id", filter.ClassID)
	}
	if filter.UniversityID != "" {
		query.Set("university_id", filter.UniversityID)
	}
	if filter.Search != "" {
		query.Set("q", filter.Search)
	}
	var out []model.DiscussionSummary
	if err := c.get(ctx, "/api/discussions", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetDiscussion returns the full discussion detail with its untruncated
// body.
func (c *Client) GetDiscussion(ctx context.Context, discussionID string) (model.Discussion, error) {
	var out model.Discussion
	if err := c.get(ctx, "/api/discussions/"+url.PathEscape(discussionID), nil, &out); err != nil {
		return model.Discussion{}, err
	}
	return out, nil
}

// CreateDiscussionRequest is the POST /api/discussions payload. UserID is
// the author; the backend has no session of its own.
type CreateDiscussionRequest struct {
	Title   string `json:"title"`
	Body    string `json:"body"`
	UserID  string `json:"user_id"`
	ClassID string `json:"class_id"`
}

// CreateDiscussion starts a new discussion in a class.
func (c *Client) CreateDiscussion(ctx context.Context, req CreateDiscussionRequest) (model.Discussion, error) {
	var out model.Discussion
	if err := c.post(ctx, "/api/discussions", req, &out); err != nil {
		return model.Discussion{}, err
	}
	return out, nil
}

// =============================================================================
// REPLIES
// =============================================================================

// ListReplies returns all replies to a discussion, oldest first.
func (c *Client) ListReplies(ctx context.Context, discussionID string) ([]model.Reply, error) {
	query := url.Values{}
	query.Set("discussion_id", discussionID)
	var out []model.Reply
	if err := c.get(ctx, "/api/replies", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateReplyRequest is the POST /api/replies payload.
type CreateReplyRequest struct {
	Body         string `json:"body"`
	UserID       string `json:"user_id"`
	DiscussionID string `json:"discussion_id"`
}

// CreateReply posts a reply to a discussion.
func (c *Client) CreateReply(ctx context.Context, req CreateReplyRequest) (model.Reply, error) {
	var out model.Reply
	if err := c.post(ctx, "/api/replies", req, &out); err != nil {
		return model.Reply{}, err
	}
	return out, nil
}

// =============================================================================
// TAGS
// =============================================================================

// ListTags returns all tags.
func (c *Client) ListTags(ctx context.Context) ([]model.Tag, error) {
	var out []model.Tag
	if err := c.get(ctx, "/api/tags", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PopularTags returns the most used tags.
func (c *Client) PopularTags(ctx context.Context) ([]model.Tag, error) {
	var out []model.Tag
	if err := c.get(ctx, "/api/tags/popular", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
