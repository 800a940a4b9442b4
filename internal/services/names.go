package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

var nameSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"fullName": {Type: genai.TypeString},
	},
	Required: []string{"fullName"},
}

// NameResolver extracts a candidate's display name from resume text. Failure
// is a non-fatal degradation: the caller's fallback (the filename) is used.
type NameResolver interface {
	ResolveName(ctx context.Context, resumeText, fallback string) string
}

type nameResolver struct {
	llm           LLMClient
	promptBuilder *PromptBuilder
}

func NewNameResolver(llm LLMClient) NameResolver {
	return &nameResolver{
		llm:           llm,
		promptBuilder: NewPromptBuilder(),
	}
}

// ResolveName implements NameResolver. Temperature is pinned to 0 so the same
// resume always yields the same name.
func (n *nameResolver) ResolveName(ctx context.Context, resumeText, fallback string) string {
	prompt := n.promptBuilder.BuildNamePrompt(resumeText)

	response, err := n.llm.GenerateJSON(ctx, prompt, nameSchema, 0)
	if err != nil {
		return fallback
	}

	var payload struct {
		FullName string `json:"fullName"`
	}
	if err := json.Unmarshal([]byte(extractJSON(response)), &payload); err != nil {
		return fallback
	}

	name := strings.TrimSpace(payload.FullName)
	if name == "" {
		return fallback
	}
	return name
}

// DeduplicateNames processes names in order, appending a counter in
// parentheses to any name already seen until it is unique.
func DeduplicateNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, len(names))

	for i, name := range names {
		candidate := name
		for n := 1; seen[candidate]; n++ {
			candidate = fmt.Sprintf("%s (%d)", name, n)
		}
		seen[candidate] = true
		out[i] = candidate
	}

	return out
}
