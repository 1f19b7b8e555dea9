package ai

import (
	"context"
	"testing"
)

func TestNewProviderDispatch(t *testing.T) {
	tests := []struct {
		provider string
		wantName string
	}{
		{"anthropic", "anthropic"},
		{"openai", "openai"},
		{"google", "google"},
		{"mock", "mock"},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			c, err := New(tt.provider, "", "test-key")
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if c.Name() != tt.wantName {
				t.Errorf("Name = %s, want %s", c.Name(), tt.wantName)
			}
		})
	}
}

func TestNewUnknownProvider(t *testing.T) {
	if _, err := New("cohere", "", "key"); err == nil {
		t.Error("unknown provider must be a construction error")
	}
}

func TestMockClientRecordsPrompts(t *testing.T) {
	c := &MockClient{Response: "7"}

	got, err := c.Complete(context.Background(), "rate this")
	if err != nil || got != "7" {
		t.Fatalf("Complete = (%q, %v), want (7, nil)", got, err)
	}
	if len(c.Prompts) != 1 || c.Prompts[0] != "rate this" {
		t.Errorf("Prompts = %v", c.Prompts)
	}
}
