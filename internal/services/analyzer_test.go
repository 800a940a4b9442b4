package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentsift/resume-screener/internal/models"
)

const validAnalysisResponse = `{
	"relevancyScore": 82,
	"recommendation": "Consider",
	"summary": "Solid backend background with some gaps.",
	"pros": ["5 years of Go", "Production Kubernetes experience"],
	"cons": ["No event streaming experience"],
	"redFlags": [],
	"finalVerdict": "Worth an interview.",
	"interviewQuestions": ["Describe a system you scaled."]
}`

func TestAnalyzeParsesValidResponse(t *testing.T) {
	llm := &fakeLLM{response: validAnalysisResponse}
	analyzer := NewAnalyzer(llm)

	result, err := analyzer.Analyze(context.Background(), "Jane Doe", "resume text", "job text")
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", result.CandidateName)
	assert.Equal(t, float64(82), result.RelevancyScore)
	assert.Equal(t, models.RecommendationConsider, result.Recommendation)
	assert.Equal(t, []string{"5 years of Go", "Production Kubernetes experience"}, result.Pros)
	assert.Equal(t, []string{}, result.RedFlags, "empty redFlags must stay an empty list")
	assert.Equal(t, []string{"Describe a system you scaled."}, result.InterviewQuestions)
	assert.Equal(t, []float32{analysisTemperature}, llm.temps)
}

func TestAnalyzeAcceptsMarkdownWrappedJSON(t *testing.T) {
	llm := &fakeLLM{response: "```json\n" + validAnalysisResponse + "\n```"}
	analyzer := NewAnalyzer(llm)

	result, err := analyzer.Analyze(context.Background(), "Jane Doe", "resume", "job")
	require.NoError(t, err)
	assert.Equal(t, models.RecommendationConsider, result.Recommendation)
}

func TestAnalyzeRejectsMissingField(t *testing.T) {
	// redFlags omitted entirely.
	llm := &fakeLLM{response: `{
		"relevancyScore": 90,
		"recommendation": "Strong Hire",
		"summary": "s",
		"pros": [],
		"cons": [],
		"finalVerdict": "v",
		"interviewQuestions": []
	}`}
	analyzer := NewAnalyzer(llm)

	_, err := analyzer.Analyze(context.Background(), "Jane Doe", "resume", "job")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.Contains(t, err.Error(), "redFlags")
	assert.Contains(t, err.Error(), "Jane Doe")
}

func TestAnalyzeRejectsUnknownRecommendation(t *testing.T) {
	llm := &fakeLLM{response: `{
		"relevancyScore": 90,
		"recommendation": "HIRE",
		"summary": "s",
		"pros": [],
		"cons": [],
		"redFlags": [],
		"finalVerdict": "v",
		"interviewQuestions": []
	}`}
	analyzer := NewAnalyzer(llm)

	_, err := analyzer.Analyze(context.Background(), "Jane Doe", "resume", "job")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.Contains(t, err.Error(), "HIRE")
}

func TestAnalyzeRejectsNonNumericScore(t *testing.T) {
	llm := &fakeLLM{response: `{
		"relevancyScore": "eighty",
		"recommendation": "Consider",
		"summary": "s",
		"pros": [],
		"cons": [],
		"redFlags": [],
		"finalVerdict": "v",
		"interviewQuestions": []
	}`}
	analyzer := NewAnalyzer(llm)

	_, err := analyzer.Analyze(context.Background(), "Jane Doe", "resume", "job")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.Contains(t, err.Error(), "relevancyScore")
}

func TestAnalyzeRejectsNullList(t *testing.T) {
	llm := &fakeLLM{response: `{
		"relevancyScore": 50,
		"recommendation": "Reject",
		"summary": "s",
		"pros": null,
		"cons": [],
		"redFlags": [],
		"finalVerdict": "v",
		"interviewQuestions": []
	}`}
	analyzer := NewAnalyzer(llm)

	_, err := analyzer.Analyze(context.Background(), "Jane Doe", "resume", "job")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestAnalyzeRejectsNonStringListElements(t *testing.T) {
	llm := &fakeLLM{response: `{
		"relevancyScore": 50,
		"recommendation": "Reject",
		"summary": "s",
		"pros": [1, 2],
		"cons": [],
		"redFlags": [],
		"finalVerdict": "v",
		"interviewQuestions": []
	}`}
	analyzer := NewAnalyzer(llm)

	_, err := analyzer.Analyze(context.Background(), "Jane Doe", "resume", "job")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestAnalyzeSurfacesCallFailureWithCandidateName(t *testing.T) {
	llm := &fakeLLM{err: errors.New("api unavailable")}
	analyzer := NewAnalyzer(llm)

	_, err := analyzer.Analyze(context.Background(), "Jane Doe", "resume", "job")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Jane Doe")
	assert.Contains(t, err.Error(), "api unavailable")
}

func TestAnalysisPromptCarriesRubric(t *testing.T) {
	llm := &fakeLLM{response: validAnalysisResponse}
	analyzer := NewAnalyzer(llm)

	_, err := analyzer.Analyze(context.Background(), "Jane Doe", "RESUME-BODY", "JOB-BODY")
	require.NoError(t, err)

	prompt := llm.lastPrompt()
	assert.Contains(t, prompt, "RESUME-BODY")
	assert.Contains(t, prompt, "JOB-BODY")
	assert.Contains(t, prompt, "Must-have skills (60 points)")
	assert.Contains(t, prompt, "Years of experience (25 points)")
	assert.Contains(t, prompt, "Nice-to-have skills (15 points)")
	assert.Contains(t, prompt, "scores 0 out of 60")
	assert.Contains(t, prompt, ">= 85")
	assert.Contains(t, prompt, ">= 60")
	assert.Contains(t, prompt, "job-hopping")
}
