package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginPayload is the flat login response shape. Some deployments wrap
// the same shape one level deeper under "data"; parseLoginPayload
// tries each known shape in order and fails closed.
type loginPayload struct {
	User         *AuthUser `json:"user"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
}

func (p loginPayload) complete() bool {
	return p.User != nil && p.User.Username != "" && p.AccessToken != ""
}

func parseLoginPayload(body []byte) (LoginResult, error) {
	var flat loginPayload
	if err := json.Unmarshal(body, &flat); err == nil && flat.complete() {
		return LoginResult{
			User:         *flat.User,
			AccessToken:  flat.AccessToken,
			RefreshToken: flat.RefreshToken,
		}, nil
	}

	var nested struct {
		Data loginPayload `json:"data"`
	}
	if err := json.Unmarshal(body, &nested); err == nil && nested.Data.complete() {
		return LoginResult{
			User:         *nested.Data.User,
			AccessToken:  nested.Data.AccessToken,
			RefreshToken: nested.Data.RefreshToken,
		}, nil
	}

	return LoginResult{}, ErrMalformedLogin
}

// Login authenticates against POST /auth/login/. No bearer header is
// sent. The response payload may be flat or nested under "data".
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	body, err := c.do(ctx, http.MethodPost, "/auth/login/", nil, loginRequest{Email: email, Password: password}, false)
	if err != nil {
		return LoginResult{}, fmt.Errorf("login failed: %w", err)
	}
	return parseLoginPayload(body)
}

// Logout notifies the backend, best-effort. The caller clears local
// state regardless of the outcome, so a missing route, a dead token,
// or an unreachable backend is reported but harmless.
func (c *Client) Logout(ctx context.Context) error {
	if _, err := c.do(ctx, http.MethodPost, "/auth/logout/", nil, nil, true); err != nil {
		return fmt.Errorf("logout call failed: %w", err)
	}
	return nil
}
