// Package translate is the client for the external translation proxy.
// Translation is strictly best-effort: every failure degrades to
// pass-through (the original text is returned), and repeated failures
// trip a breaker that silences further calls for the session.
package translate

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/arslanonur06/connectme/cli/pkg/config"
	"github.com/arslanonur06/connectme/cli/pkg/logger"
)

// Client calls the translation proxy
type Client struct {
	http  *resty.Client
	state *State
}

type translateRequest struct {
	Text   string   `json:"text,omitempty"`
	Texts  []string `json:"texts,omitempty"`
	Source string   `json:"source,omitempty"`
	Target string   `json:"target"`
}

type translateResponse struct {
	TranslatedText string   `json:"translatedText"`
	Translations   []string `json:"translations"`
}

// NewClient creates a translation client. The timeout is deliberately
// short: a slow proxy must never stall the terminal.
func NewClient(baseURL string, timeout time.Duration, state *State) *Client {
	if state == nil {
		state = NewState(0)
	}
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)
	return &Client{http: httpClient, state: state}
}

// FromConfig builds a client from the loaded CLI configuration
func FromConfig() *Client {
	baseURL := config.GetString("translate.base_url")
	timeout := time.Duration(config.GetInt("translate.timeout")) * time.Second
	state := NewState(config.GetInt("translate.max_failures"))
	return NewClient(baseURL, timeout, state)
}

// State returns the breaker state
func (c *Client) State() *State {
	return c.state
}

// Translate translates text into the target language. On any failure the
// original text is returned unchanged.
func (c *Client) Translate(ctx context.Context, text, source, target string) string {
	if text == "" || c.state.Disabled() {
		return text
	}

	var result translateResponse
	resp, err := c.http.
		R().
		SetContext(ctx).
		SetBody(translateRequest{Text: text, Source: source, Target: target}).
		SetResult(&result).
		Post("/translate")

	if err != nil || !resp.IsSuccess() || result.TranslatedText == "" {
		c.recordFailure("translate", err, resp)
		return text
	}

	c.state.RecordSuccess()
	return result.TranslatedText
}

// TranslateBatch translates several texts in one call. On any failure the
// original slice is returned unchanged.
func (c *Client) TranslateBatch(ctx context.Context, texts []string, source, target string) []string {
	if len(texts) == 0 || c.state.Disabled() {
		return texts
	}

	var result translateResponse
	resp, err := c.http.
		R().
		SetContext(ctx).
		SetBody(translateRequest{Texts: texts, Source: source, Target: target}).
		SetResult(&result).
		Post("/translate")

	if err != nil || !resp.IsSuccess() || len(result.Translations) != len(texts) {
		c.recordFailure("translate batch", err, resp)
		return texts
	}

	c.state.RecordSuccess()
	return result.Translations
}

// Health probes the proxy availability
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.http.
		R().
		SetContext(ctx).
		Get("/health")

	if err != nil {
		return err
	}
	if !resp.IsSuccess() {
		return errFromStatus(resp)
	}
	return nil
}

func (c *Client) recordFailure(op string, err error, resp *resty.Response) {
	tripped := c.state.RecordFailure()
	status := 0
	if resp != nil {
		status = resp.StatusCode()
	}
	logger.Warn("Translation failed, showing original text", "op", op, "error", err, "status", status)
	if tripped {
		logger.Warn("Translation disabled for this session after repeated failures",
			"failures", c.state.Failures())
	}
}

type statusError struct {
	status string
}

func (e *statusError) Error() string {
	return "translation proxy unhealthy: " + e.status
}

func errFromStatus(resp *resty.Response) error {
	return &statusError{status: resp.Status()}
}
