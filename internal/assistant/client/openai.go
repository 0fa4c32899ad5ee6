// ============================================================================
// ninjachat - Cyber Ninja AI Terminal Client
// ============================================================================
//
// Package:     client
// Description: Chat completion client for the hosted OpenAI API
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package client

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/msto63/ninjachat/pkg/core/apperr"
	"github.com/msto63/ninjachat/pkg/core/version"
)

// ErrNoAPIKey is returned when a client is built without a credential
var ErrNoAPIKey = errors.New("OpenAI API key is required")

// Completer turns a system prompt and a single user message into a reply
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// Config holds OpenAI connection settings
type Config struct {
	APIKey       string
	BaseURL      string
	Organization string
	Model        string
	HTTPClient   *http.Client
}

// DefaultConfig returns default client configuration
func DefaultConfig() Config {
	return Config{
		Model: "gpt-4",
	}
}

// NewAPI creates the shared go-openai client used by chat and speech
func NewAPI(cfg Config) (*openai.Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	if cfg.Organization != "" {
		apiCfg.OrgID = cfg.Organization
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	// No timeout: a turn runs until the service answers or fails
	base := httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	wrapped := *httpClient
	wrapped.Transport = &userAgentTransport{base: base, agent: version.UserAgent()}
	apiCfg.HTTPClient = &wrapped

	return openai.NewClientWithConfig(apiCfg), nil
}

// userAgentTransport tags every request with the client version
type userAgentTransport struct {
	base  http.RoundTripper
	agent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.agent)
	return t.base.RoundTrip(req)
}

// OpenAIClient sends chat completions
type OpenAIClient struct {
	api   *openai.Client
	model string
}

// NewOpenAIClient creates a chat client for model
func NewOpenAIClient(api *openai.Client, model string) *OpenAIClient {
	if model == "" {
		model = DefaultConfig().Model
	}
	return &OpenAIClient{api: api, model: model}
}

// Model returns the chat model name
func (c *OpenAIClient) Model() string {
	return c.model
}

// Complete sends the system prompt and the user message as the whole
// context and returns the first choice
func (c *OpenAIClient) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userMessage},
		},
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", apperr.Request("chat completion", err)
	}
	if len(resp.Choices) == 0 {
		return "", apperr.New(apperr.KindRequest, "chat completion", "no choices in response")
	}

	return resp.Choices[0].Message.Content, nil
}

// ListModels returns the ids of the models visible to the key, sorted
func (c *OpenAIClient) ListModels(ctx context.Context) ([]string, error) {
	list, err := c.api.ListModels(ctx)
	if err != nil {
		return nil, apperr.Request("list models", err)
	}

	ids := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		ids = append(ids, m.ID)
	}
	sort.Strings(ids)
	return ids, nil
}

// HealthCheck verifies that the service accepts the credential
func (c *OpenAIClient) HealthCheck(ctx context.Context) error {
	_, err := c.api.ListModels(ctx)
	if err != nil {
		return apperr.Request("health check", err)
	}
	return nil
}
