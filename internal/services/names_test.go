package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeduplicateNames(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "all distinct",
			input: []string{"Ann", "Bob", "Carol"},
			want:  []string{"Ann", "Bob", "Carol"},
		},
		{
			name:  "triple collision",
			input: []string{"Ann", "Ann", "Ann"},
			want:  []string{"Ann", "Ann (1)", "Ann (2)"},
		},
		{
			name:  "collision with existing suffix",
			input: []string{"Ann", "Ann (1)", "Ann"},
			want:  []string{"Ann", "Ann (1)", "Ann (2)"},
		},
		{
			name:  "empty",
			input: nil,
			want:  []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeduplicateNames(tt.input))
		})
	}
}

func TestResolveNameSuccess(t *testing.T) {
	llm := &fakeLLM{response: `{"fullName": "Jane Doe"}`}
	resolver := NewNameResolver(llm)

	name := resolver.ResolveName(context.Background(), "Jane Doe\nSenior Engineer", "jane.pdf")
	assert.Equal(t, "Jane Doe", name)
	assert.Equal(t, []float32{0}, llm.temps, "name extraction must run at temperature 0")
}

func TestResolveNameFallsBackOnError(t *testing.T) {
	llm := &fakeLLM{err: errors.New("network down")}
	resolver := NewNameResolver(llm)

	name := resolver.ResolveName(context.Background(), "some resume", "resume.pdf")
	assert.Equal(t, "resume.pdf", name)
}

func TestResolveNameFallsBackOnMalformedResponse(t *testing.T) {
	llm := &fakeLLM{response: "not json at all"}
	resolver := NewNameResolver(llm)

	name := resolver.ResolveName(context.Background(), "some resume", "resume.pdf")
	assert.Equal(t, "resume.pdf", name)
}

func TestResolveNameFallsBackOnEmptyName(t *testing.T) {
	llm := &fakeLLM{response: `{"fullName": "   "}`}
	resolver := NewNameResolver(llm)

	name := resolver.ResolveName(context.Background(), "some resume", "resume.pdf")
	assert.Equal(t, "resume.pdf", name)
}

func TestResolveNameTruncatesResumeText(t *testing.T) {
	llm := &fakeLLM{response: `{"fullName": "Jane Doe"}`}
	resolver := NewNameResolver(llm)

	text := strings.Repeat("a", 3000) + "UNIQUE-TAIL-MARKER"
	resolver.ResolveName(context.Background(), text, "resume.pdf")

	prompt := llm.lastPrompt()
	require.NotEmpty(t, prompt)
	assert.NotContains(t, prompt, "UNIQUE-TAIL-MARKER")
	assert.Contains(t, prompt, strings.Repeat("a", nameExtractionLimit))
}

func TestResolveNameTruncationKeepsValidUTF8(t *testing.T) {
	llm := &fakeLLM{response: `{"fullName": "Jane Doe"}`}
	resolver := NewNameResolver(llm)

	// A two-byte rune straddles the truncation limit.
	text := strings.Repeat("a", nameExtractionLimit-1) + strings.Repeat("é", 50)
	resolver.ResolveName(context.Background(), text, "resume.pdf")

	prompt := llm.lastPrompt()
	require.NotEmpty(t, prompt)
	assert.True(t, utf8.ValidString(prompt), "truncation must not split a multi-byte rune")
}
