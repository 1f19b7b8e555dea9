package ai

import "context"

// MockClient returns deterministic responses for local runs and tests.
type MockClient struct {
	// Response is returned for every prompt when Err is nil.
	Response string

	// Err, when set, is returned for every call.
	Err error

	// Prompts records every prompt received, in order.
	Prompts []string
}

// NewMockClient creates a mock client with an empty default response.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Name returns the provider identifier.
func (c *MockClient) Name() string { return "mock" }

// Complete records the prompt and returns the configured response.
func (c *MockClient) Complete(_ context.Context, prompt string) (string, error) {
	c.Prompts = append(c.Prompts, prompt)
	if c.Err != nil {
		return "", c.Err
	}
	return c.Response, nil
}
