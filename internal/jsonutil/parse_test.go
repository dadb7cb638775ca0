package jsonutil

import (
	"errors"
	"strings"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "json fence",
			in:   "```json\n{\"a\": 1}\n```",
			want: "{\"a\": 1}",
		},
		{
			name: "bare fence",
			in:   "```\n{\"a\": 1}\n```",
			want: "{\"a\": 1}",
		},
		{
			name: "no fence",
			in:   "{\"a\": 1}",
			want: "{\"a\": 1}",
		},
		{
			name: "multiline body",
			in:   "```json\n{\n  \"a\": 1\n}\n```",
			want: "{\n  \"a\": 1\n}",
		},
		{
			name: "surrounding prose",
			in:   "Here is your result:\n{\"content\": \"hi\"}\nLet me know if you need changes.",
			want: "{\"content\": \"hi\"}",
		},
		{
			name: "array payload",
			in:   "tags: [\"a\", \"b\"]",
			want: "[\"a\", \"b\"]",
		},
		{
			name: "fence with trailing prose",
			in:   "```json\n{\"a\": 1}\n```\nAnything else?",
			want: "{\"a\": 1}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(tt.in)
			if err != nil {
				t.Fatalf("Extract() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Extract() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractNoContent(t *testing.T) {
	_, err := Extract("no structured data here")
	if !errors.Is(err, ErrNoJSON) {
		t.Fatalf("expected ErrNoJSON, got %v", err)
	}
}

func TestExtractUnclosed(t *testing.T) {
	if _, err := Extract("{\"a\": 1"); err == nil {
		t.Fatal("expected error for unclosed object")
	}
}

func TestParseJSON(t *testing.T) {
	type piece struct {
		Content  string   `json:"content"`
		Hashtags []string `json:"hashtags"`
	}

	raw := "```json\n{\"content\": \"New role open!\", \"hashtags\": [\"hiring\", \"jobs\"]}\n```"
	got, err := ParseJSON[piece](raw)
	if err != nil {
		t.Fatalf("ParseJSON() error: %v", err)
	}
	if got.Content != "New role open!" {
		t.Errorf("Content = %q", got.Content)
	}
	if len(got.Hashtags) != 2 || got.Hashtags[0] != "hiring" {
		t.Errorf("Hashtags = %v", got.Hashtags)
	}
}

func TestParseJSONInvalid(t *testing.T) {
	_, err := ParseJSON[map[string]string]("{bad: json,}")
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	if !strings.Contains(err.Error(), "invalid JSON") {
		t.Errorf("unexpected error: %v", err)
	}
}
