package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ListEvents fetches one page of events from GET /event. Listing never
// propagates an error: any failure degrades to an empty page with a
// descriptive Message, so list views render an empty state instead of
// crashing.
func (c *Client) ListEvents(ctx context.Context, params ListEventsParams) EventPage {
	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit < 1 {
		limit = DefaultPageSize
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	if params.Search != "" {
		query.Set("search", params.Search)
	}
	if params.SortBy != "" {
		query.Set("sortBy", params.SortBy)
	}
	if params.SortOrder != "" {
		query.Set("sortOrder", params.SortOrder)
	}

	empty := EventPage{Page: page, Limit: limit, Events: []Event{}}

	body, err := c.do(ctx, http.MethodGet, "/event", query, nil, true)
	if err != nil {
		empty.Message = ErrorMessage(err, "No events found")
		return empty
	}

	var result EventPage
	if err := json.Unmarshal(body, &result); err != nil {
		empty.Message = "No events found"
		return empty
	}
	if result.Events == nil {
		result.Events = []Event{}
	}
	return result
}

// UpsertEvent creates an event, or updates it when input.ID is set.
func (c *Client) UpsertEvent(ctx context.Context, input UpsertEventInput) (UpsertResult, error) {
	body, err := c.do(ctx, http.MethodPost, "/event/upsertEvent", nil, input, true)
	if err != nil {
		return UpsertResult{}, fmt.Errorf("upsert event: %w", err)
	}
	var result UpsertResult
	if err := json.Unmarshal(body, &result); err != nil {
		return UpsertResult{}, fmt.Errorf("decode upsert event response: %w", err)
	}
	return result, nil
}

// UpdateEvent replaces an existing event via PUT /event/{id}/update.
func (c *Client) UpdateEvent(ctx context.Context, id int, input UpsertEventInput) error {
	path := fmt.Sprintf("/event/%d/update", id)
	if _, err := c.do(ctx, http.MethodPut, path, nil, input, true); err != nil {
		return fmt.Errorf("update event %d: %w", id, err)
	}
	return nil
}

// DeleteEvent removes an event. The backend signals success with
// HTTP 200.
func (c *Client) DeleteEvent(ctx context.Context, id int) error {
	path := fmt.Sprintf("/event/%d/delete", id)
	if _, err := c.do(ctx, http.MethodDelete, path, nil, nil, true); err != nil {
		return fmt.Errorf("delete event %d: %w", id, err)
	}
	return nil
}

// EventDetails fetches the full event record including registered
// users.
func (c *Client) EventDetails(ctx context.Context, id int) (EventDetails, error) {
	path := fmt.Sprintf("/event/%d/details", id)
	body, err := c.do(ctx, http.MethodGet, path, nil, nil, true)
	if err != nil {
		return EventDetails{}, fmt.Errorf("event details %d: %w", id, err)
	}
	var response struct {
		Event   EventDetails `json:"event"`
		Message string       `json:"message"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return EventDetails{}, fmt.Errorf("decode event details response: %w", err)
	}
	return response.Event, nil
}
