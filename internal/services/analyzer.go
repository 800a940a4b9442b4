package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"talentsift/resume-screener/internal/models"
)

// ErrMalformedResponse marks an AI reply that violated the response schema.
// Such replies are rejected outright, never coerced.
var ErrMalformedResponse = errors.New("malformed analysis response")

const analysisTemperature = 0.2

var analysisSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"relevancyScore": {Type: genai.TypeInteger},
		"recommendation": {
			Type: genai.TypeString,
			Enum: []string{
				string(models.RecommendationReject),
				string(models.RecommendationConsider),
				string(models.RecommendationStrongHire),
			},
		},
		"summary":            {Type: genai.TypeString},
		"pros":               {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"cons":               {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"redFlags":           {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"finalVerdict":       {Type: genai.TypeString},
		"interviewQuestions": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
	},
	Required: []string{
		"relevancyScore",
		"recommendation",
		"summary",
		"pros",
		"cons",
		"redFlags",
		"finalVerdict",
		"interviewQuestions",
	},
}

// Analyzer sends one resume + job description pair to the model and parses
// the reply into a typed result. A single failure is surfaced to the caller;
// there is no retry.
type Analyzer interface {
	Analyze(ctx context.Context, candidateName, resumeText, jobDescription string) (*models.AnalysisResult, error)
}

type analyzer struct {
	llm           LLMClient
	promptBuilder *PromptBuilder
}

func NewAnalyzer(llm LLMClient) Analyzer {
	return &analyzer{
		llm:           llm,
		promptBuilder: NewPromptBuilder(),
	}
}

// Analyze implements Analyzer.
func (a *analyzer) Analyze(ctx context.Context, candidateName, resumeText, jobDescription string) (*models.AnalysisResult, error) {
	prompt := a.promptBuilder.BuildAnalysisPrompt(resumeText, jobDescription)

	response, err := a.llm.GenerateJSON(ctx, prompt, analysisSchema, analysisTemperature)
	if err != nil {
		return nil, fmt.Errorf("analysis failed for %s: %w", candidateName, err)
	}

	result, err := parseAnalysisResult(response)
	if err != nil {
		return nil, fmt.Errorf("analysis failed for %s: %w", candidateName, err)
	}

	result.CandidateName = candidateName
	return result, nil
}

// parseAnalysisResult validates the model reply against the fixed schema:
// every field must be present, the score numeric, the recommendation one of
// the three allowed values, and the four lists arrays of strings.
func parseAnalysisResult(response string) (*models.AnalysisResult, error) {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal([]byte(extractJSON(response)), &raw); err != nil {
		return nil, fmt.Errorf("%w: not a JSON object: %v", ErrMalformedResponse, err)
	}

	for _, field := range analysisSchema.Required {
		if _, ok := raw[field]; !ok {
			return nil, fmt.Errorf("%w: missing field %q", ErrMalformedResponse, field)
		}
	}

	var result models.AnalysisResult

	if err := json.Unmarshal(raw["relevancyScore"], &result.RelevancyScore); err != nil {
		return nil, fmt.Errorf("%w: relevancyScore is not numeric", ErrMalformedResponse)
	}

	var recommendation string
	if err := json.Unmarshal(raw["recommendation"], &recommendation); err != nil {
		return nil, fmt.Errorf("%w: recommendation is not a string", ErrMalformedResponse)
	}
	if !models.ValidRecommendation(recommendation) {
		return nil, fmt.Errorf("%w: recommendation %q is not one of Reject, Consider, Strong Hire", ErrMalformedResponse, recommendation)
	}
	result.Recommendation = models.Recommendation(recommendation)

	if err := json.Unmarshal(raw["summary"], &result.Summary); err != nil {
		return nil, fmt.Errorf("%w: summary is not a string", ErrMalformedResponse)
	}
	if err := json.Unmarshal(raw["finalVerdict"], &result.FinalVerdict); err != nil {
		return nil, fmt.Errorf("%w: finalVerdict is not a string", ErrMalformedResponse)
	}

	lists := []struct {
		field  string
		target *[]string
	}{
		{"pros", &result.Pros},
		{"cons", &result.Cons},
		{"redFlags", &result.RedFlags},
		{"interviewQuestions", &result.InterviewQuestions},
	}
	for _, l := range lists {
		values, err := decodeStringList(raw[l.field])
		if err != nil {
			return nil, fmt.Errorf("%w: %s is not a list of strings", ErrMalformedResponse, l.field)
		}
		*l.target = values
	}

	return &result, nil
}

func decodeStringList(raw json.RawMessage) ([]string, error) {
	if strings.TrimSpace(string(raw)) == "null" {
		return nil, fmt.Errorf("null is not a list")
	}
	values := []string{}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}
	return values, nil
}

// extractJSON strips markdown code fences the model sometimes wraps its JSON
// reply in.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end != -1 && end > start {
		return text[start : end+1]
	}

	return text
}
