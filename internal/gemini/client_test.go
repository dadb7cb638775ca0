package gemini

import (
	"context"
	"testing"
)

func TestTextClientWithoutClientReturnsError(t *testing.T) {
	c := NewTextClient(nil)

	_, err := c.GenerateText(context.Background(), "system", "prompt")
	if err == nil {
		t.Fatal("expected error when no genai client is configured")
	}
}

func TestTextClientModelDefault(t *testing.T) {
	t.Setenv("GEMINI_MODEL", "")

	c := NewTextClient(nil)
	if c.Model() != DefaultContentModel {
		t.Errorf("model = %q, want %q", c.Model(), DefaultContentModel)
	}
}

func TestTextClientModelOverride(t *testing.T) {
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")

	c := NewTextClient(nil)
	if c.Model() != "gemini-2.5-pro" {
		t.Errorf("model = %q, want gemini-2.5-pro", c.Model())
	}
}
