package client

import (
	"testing"
)

// TestGetClientInitialization validates client initialization
func TestGetClientInitialization(t *testing.T) {
	httpClient = nil

	client := GetClient()

	if client == nil {
		t.Fatal("GetClient should not return nil")
	}
}

// TestGetClientSingleton validates that GetClient returns same instance
func TestGetClientSingleton(t *testing.T) {
	httpClient = nil

	client1 := GetClient()
	client2 := GetClient()

	if client1 != client2 {
		t.Error("GetClient should return same instance")
	}
}

// TestSetAuthToken validates auth token setting
func TestSetAuthToken(t *testing.T) {
	httpClient = nil

	token := "test_token_12345"
	SetAuthToken(token)

	client := GetClient()
	if client == nil {
		t.Fatal("Client should be initialized after SetAuthToken")
	}

	headers := client.Header
	if authHeader, ok := headers["Authorization"]; ok {
		if len(authHeader) == 0 {
			t.Error("Authorization header should be set")
		}
	}
}

// TestClearAuthToken validates auth token clearing
func TestClearAuthToken(t *testing.T) {
	httpClient = nil

	SetAuthToken("test_token")
	ClearAuthToken()

	client := GetClient()
	if client == nil {
		t.Fatal("Client should still exist after clearing auth")
	}
	if auth := client.Header.Get("Authorization"); auth != "" {
		t.Errorf("Authorization header should be cleared, got %q", auth)
	}
}

// TestClientInitializesWithDefaults validates client gets default values
func TestClientInitializesWithDefaults(t *testing.T) {
	httpClient = nil

	client := GetClient()

	if client == nil {
		t.Fatal("Client should initialize with defaults")
	}

	headers := client.Header
	if agent, ok := headers["User-Agent"]; ok {
		if len(agent) == 0 || agent[0] != "ConnectMe-CLI/0.1.0" {
			t.Error("User-Agent should be set to ConnectMe-CLI/0.1.0")
		}
	}
}

// TestSetAuthTokenInitializesClient validates auth token initializes client
func TestSetAuthTokenInitializesClient(t *testing.T) {
	httpClient = nil

	SetAuthToken("test_token")

	if httpClient == nil {
		t.Fatal("Client should be initialized after SetAuthToken")
	}
}

// TestClearAuthTokenMultipleTimes validates repeated clearing
func TestClearAuthTokenMultipleTimes(t *testing.T) {
	httpClient = nil

	SetAuthToken("token1")
	ClearAuthToken()
	ClearAuthToken() // Second clear should not panic
	ClearAuthToken() // Third clear should not panic

	client := GetClient()
	if client == nil {
		t.Error("Client should still be usable after multiple clears")
	}
}

// TestMultipleAuthTokens validates auth token replacement
func TestMultipleAuthTokens(t *testing.T) {
	httpClient = nil

	SetAuthToken("token1")
	SetAuthToken("token2")
	SetAuthToken("token3")

	client := GetClient()
	if client == nil {
		t.Fatal("Client should be initialized")
	}
	if auth := client.Header.Get("Authorization"); auth != "Bearer token3" {
		t.Errorf("Last token should win, got %q", auth)
	}
}
