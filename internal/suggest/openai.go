package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	goopenai "github.com/sashabaranov/go-openai"
)

const defaultModel = "gpt-4o-mini"

var ErrEmptyResponse = errors.New("model returned no content")

type options struct {
	token      string
	model      string
	baseURL    string
	httpClient *http.Client
}

// Option configures the OpenAI suggester.
type Option func(*options)

// WithToken sets the API key.
func WithToken(token string) Option {
	return func(o *options) { o.token = token }
}

// WithModel sets the chat model; empty keeps the default.
func WithModel(model string) Option {
	return func(o *options) {
		if model != "" {
			o.model = model
		}
	}
}

// WithBaseURL points the client at an OpenAI compatible endpoint.
func WithBaseURL(baseURL string) Option {
	return func(o *options) { o.baseURL = baseURL }
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// OpenAI is a Suggester backed by the chat completions API in JSON mode.
type OpenAI struct {
	client *goopenai.Client
	model  string
}

var _ Suggester = (*OpenAI)(nil)

// NewOpenAI builds the suggester. The API key is required.
func NewOpenAI(opts ...Option) (*OpenAI, error) {
	o := &options{model: defaultModel, httpClient: http.DefaultClient}
	for _, opt := range opts {
		opt(o)
	}
	if o.token == "" {
		return nil, errors.New("missing the OpenAI API key, set OPENAI_API_KEY")
	}

	cfg := goopenai.DefaultConfig(o.token)
	if o.baseURL != "" {
		cfg.BaseURL = o.baseURL
	}
	if o.httpClient != nil {
		cfg.HTTPClient = o.httpClient
	}
	return &OpenAI{client: goopenai.NewClientWithConfig(cfg), model: o.model}, nil
}

type answer struct {
	Items []Candidate `json:"items"`
}

// Suggest sends one request and parses the answer. There is no retry.
func (s *OpenAI) Suggest(ctx context.Context, req Request) ([]Candidate, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	resp, err := s.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: s.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: "You are a travel consultant planning itineraries."},
			{Role: goopenai.ChatMessageRoleUser, Content: Prompt(req)},
		},
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{Type: goopenai.ChatCompletionResponseFormatTypeJSONObject},
	})
	if err != nil {
		return nil, fmt.Errorf("suggestion request failed: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, ErrEmptyResponse
	}

	var a answer
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &a); err != nil {
		return nil, fmt.Errorf("failed to parse suggestions: %w", err)
	}
	return normalize(a.Items), nil
}
