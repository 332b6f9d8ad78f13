package api

import (
	"context"

	json "github.com/json-iterator/go"

	"github.com/arslanonur06/connectme/cli/pkg/client"
	"github.com/arslanonur06/connectme/cli/pkg/logger"
)

// Login authenticates user with email and password
func Login(ctx context.Context, email, password string) (*SessionResponse, error) {
	logger.Debug("Attempting login", "email", email)

	req := LoginRequest{
		Email:    email,
		Password: password,
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("grant_type", "password").
		SetBody(reqBody).
		Post("/auth/v1/token")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var session SessionResponse
	if err := json.Unmarshal(resp.Body(), &session); err != nil {
		return nil, err
	}

	logger.Debug("Login successful", "user_id", session.User.ID)
	return &session, nil
}

// Register creates a new account. Depending on server settings the
// response may carry a full session or just the created user pending
// email confirmation.
func Register(ctx context.Context, email, password, username, fullName string) (*SessionResponse, error) {
	logger.Debug("Registering account", "email", email)

	req := RegisterRequest{
		Email:    email,
		Password: password,
		Data: map[string]interface{}{
			"username":  username,
			"full_name": fullName,
		},
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(reqBody).
		Post("/auth/v1/signup")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var session SessionResponse
	if err := json.Unmarshal(resp.Body(), &session); err != nil {
		return nil, err
	}

	logger.Debug("Registration successful", "user_id", session.User.ID)
	return &session, nil
}

// Refresh refreshes the access token using refresh token
func Refresh(ctx context.Context, refreshToken string) (*SessionResponse, error) {
	logger.Debug("Refreshing access token")

	req := RefreshRequest{
		RefreshToken: refreshToken,
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("grant_type", "refresh_token").
		SetBody(reqBody).
		Post("/auth/v1/token")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var session SessionResponse
	if err := json.Unmarshal(resp.Body(), &session); err != nil {
		return nil, err
	}

	logger.Debug("Access token refreshed")
	return &session, nil
}

// Logout revokes the current session server-side
func Logout(ctx context.Context) error {
	logger.Debug("Logging out")

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		Post("/auth/v1/logout")

	return CheckResponse(resp, err)
}

// GetCurrentUser gets the current authenticated user
func GetCurrentUser(ctx context.Context) (*User, error) {
	logger.Debug("Fetching current user")

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		Get("/auth/v1/user")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var user User
	if err := json.Unmarshal(resp.Body(), &user); err != nil {
		return nil, err
	}

	logger.Debug("Current user fetched", "user_id", user.ID)
	return &user, nil
}
