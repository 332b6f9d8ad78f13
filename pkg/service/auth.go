package service

import (
	"context"
	"fmt"
	"time"

	"github.com/arslanonur06/connectme/cli/pkg/api"
	"github.com/arslanonur06/connectme/cli/pkg/client"
	"github.com/arslanonur06/connectme/cli/pkg/credentials"
	"github.com/arslanonur06/connectme/cli/pkg/formatter"
	"github.com/arslanonur06/connectme/cli/pkg/logger"
)

// AuthService handles sign-in, sign-up and session state
type AuthService struct{}

// NewAuthService creates a new auth service
func NewAuthService() *AuthService {
	return &AuthService{}
}

// Login authenticates and stores the session locally
func (as *AuthService) Login(ctx context.Context, email, password string) error {
	logger.Debug("Logging in", "email", email)

	session, err := api.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if err := as.storeSession(session); err != nil {
		return err
	}

	formatter.PrintSuccess("Signed in as %s", session.User.Email)
	return nil
}

// Register creates an account and, when the server returns a session,
// signs the user in immediately
func (as *AuthService) Register(ctx context.Context, email, password, username, fullName string) error {
	logger.Debug("Registering", "email", email)

	session, err := api.Register(ctx, email, password, username, fullName)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	if session.AccessToken == "" {
		formatter.PrintInfo("Account created. Check your email to confirm, then run 'connectme-cli auth login'.")
		return nil
	}

	if err := as.storeSession(session); err != nil {
		return err
	}

	formatter.PrintSuccess("Welcome, %s!", session.User.Username)
	return nil
}

// Logout revokes the session and clears local credentials. The local
// credentials are removed even when the server call fails.
func (as *AuthService) Logout(ctx context.Context) error {
	logger.Debug("Logging out")

	if err := api.Logout(ctx); err != nil {
		logger.Warn("Server-side logout failed", "error", err)
	}

	if err := credentials.Delete(); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	client.ClearAuthToken()

	formatter.PrintSuccess("Signed out")
	return nil
}

// Refresh renews the access token using the stored refresh token
func (as *AuthService) Refresh(ctx context.Context) error {
	creds, err := credentials.Load()
	if err != nil {
		return fmt.Errorf("no stored session: %w", err)
	}

	session, err := api.Refresh(ctx, creds.RefreshToken)
	if err != nil {
		return fmt.Errorf("token refresh failed: %w", err)
	}

	return as.storeSession(session)
}

// Status prints whether a session is active and who it belongs to
func (as *AuthService) Status(ctx context.Context) error {
	creds, err := credentials.Load()
	if err != nil || !creds.IsValid() {
		formatter.PrintInfo("Not signed in. Run 'connectme-cli auth login'.")
		return nil
	}

	user, err := api.GetCurrentUser(ctx)
	if err != nil {
		formatter.PrintWarning("Stored session is no longer valid. Run 'connectme-cli auth login'.")
		return nil
	}

	formatter.PrintSuccess("Signed in as %s (%s)", user.Username, user.Email)
	if !creds.ExpiresAt.IsZero() {
		fmt.Printf("Session expires: %s\n", creds.ExpiresAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func (as *AuthService) storeSession(session *api.SessionResponse) error {
	creds := &credentials.Credentials{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		UserID:       session.User.ID,
		Username:     session.User.Username,
		Email:        session.User.Email,
	}
	if session.ExpiresIn > 0 {
		creds.ExpiresAt = time.Now().Add(time.Duration(session.ExpiresIn) * time.Second)
	}

	if err := credentials.Save(creds); err != nil {
		return fmt.Errorf("failed to store credentials: %w", err)
	}

	client.SetAuthToken(session.AccessToken)
	return nil
}
