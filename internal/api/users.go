package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// ListUsers fetches all managed accounts from GET /admin/users. Like
// ListEvents, failures degrade to an empty result with a message.
func (c *Client) ListUsers(ctx context.Context) ([]User, string) {
	body, err := c.do(ctx, http.MethodGet, "/admin/users", nil, nil, true)
	if err != nil {
		return []User{}, ErrorMessage(err, "No users found")
	}

	var response struct {
		Users   []User `json:"users"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return []User{}, "No users found"
	}
	if response.Users == nil {
		response.Users = []User{}
	}
	return response.Users, ""
}

// UpsertUser creates an account, or updates it when input.ID is set.
func (c *Client) UpsertUser(ctx context.Context, input UpsertUserInput) (UpsertResult, error) {
	body, err := c.do(ctx, http.MethodPost, "/admin/users/upsert", nil, input, true)
	if err != nil {
		return UpsertResult{}, fmt.Errorf("upsert user: %w", err)
	}
	var result UpsertResult
	if err := json.Unmarshal(body, &result); err != nil {
		return UpsertResult{}, fmt.Errorf("decode upsert user response: %w", err)
	}
	return result, nil
}

// DeleteUser removes an account. Success is HTTP 200.
func (c *Client) DeleteUser(ctx context.Context, id int) error {
	path := fmt.Sprintf("/admin/users/%d/delete", id)
	if _, err := c.do(ctx, http.MethodDelete, path, nil, nil, true); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return nil
}

// UserDetails fetches a single account.
func (c *Client) UserDetails(ctx context.Context, id int) (User, error) {
	path := fmt.Sprintf("/admin/users/%d/details", id)
	body, err := c.do(ctx, http.MethodGet, path, nil, nil, true)
	if err != nil {
		return User{}, fmt.Errorf("user details %d: %w", id, err)
	}
	var response struct {
		User    User   `json:"user"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return User{}, fmt.Errorf("decode user details response: %w", err)
	}
	return response.User, nil
}
