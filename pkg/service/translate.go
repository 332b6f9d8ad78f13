package service

import (
	"context"
	"fmt"

	"github.com/arslanonur06/connectme/cli/pkg/formatter"
	"github.com/arslanonur06/connectme/cli/pkg/translate"
)

// TranslateService exposes the translation proxy to commands
type TranslateService struct {
	client *translate.Client
}

// NewTranslateService creates a translate service over the configured
// proxy
func NewTranslateService() *TranslateService {
	return &TranslateService{client: translate.FromConfig()}
}

// Translate prints the translation of text. Translation is best-effort:
// when the proxy is down the original text comes back unchanged.
func (ts *TranslateService) Translate(ctx context.Context, text, source, target string) error {
	if target == "" {
		return fmt.Errorf("target language is required")
	}
	if source == "" {
		source = "auto"
	}

	result := ts.client.Translate(ctx, text, source, target)
	fmt.Println(result)

	if result == text && ts.client.State().Disabled() {
		formatter.PrintWarning("Translation service is unavailable; showing original text")
	}
	return nil
}

// Status probes the proxy and prints breaker state
func (ts *TranslateService) Status(ctx context.Context) error {
	state := ts.client.State()

	if err := ts.client.Health(ctx); err != nil {
		formatter.PrintError("Translation proxy unreachable: %v", err)
	} else {
		formatter.PrintSuccess("Translation proxy is healthy")
	}

	if state.Disabled() {
		formatter.PrintWarning("Translation is currently disabled after %d consecutive failures", state.Failures())
		formatter.PrintInfo("Run 'connectme-cli translate enable' to try again")
	} else {
		fmt.Printf("Consecutive failures: %d\n", state.Failures())
	}
	return nil
}

// Enable re-arms translation after the breaker tripped
func (ts *TranslateService) Enable() error {
	ts.client.State().ReEnable()
	formatter.PrintSuccess("Translation re-enabled")
	return nil
}
