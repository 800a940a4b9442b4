package services

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"

	"talentsift/resume-screener/internal/models"
)

// fakeLLM records prompts and replies with either a fixed response or the
// configured handler.
type fakeLLM struct {
	mu       sync.Mutex
	response string
	err      error
	handler  func(prompt string, schema *genai.Schema, temperature float32) (string, error)
	prompts  []string
	temps    []float32
}

func (f *fakeLLM) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema, temperature float32) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.temps = append(f.temps, temperature)
	handler := f.handler
	f.mu.Unlock()

	if handler != nil {
		return handler(prompt, schema, temperature)
	}
	return f.response, f.err
}

func (f *fakeLLM) lastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[len(f.prompts)-1]
}

// fakeExtractor maps filenames to canned text or errors.
type fakeExtractor struct {
	texts map[string]string
	errs  map[string]error
}

func (f *fakeExtractor) Extract(filename string, data []byte) (string, error) {
	if err, ok := f.errs[filename]; ok {
		return "", err
	}
	if text, ok := f.texts[filename]; ok {
		return text, nil
	}
	return string(data), nil
}

// fakeAnalyzer runs the configured handler per call, defaulting to a minimal
// successful result.
type fakeAnalyzer struct {
	mu      sync.Mutex
	calls   int
	handler func(candidateName, resumeText string) (*models.AnalysisResult, error)
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, candidateName, resumeText, jobDescription string) (*models.AnalysisResult, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.handler != nil {
		return f.handler(candidateName, resumeText)
	}
	return &models.AnalysisResult{
		CandidateName:      candidateName,
		RelevancyScore:     70,
		Recommendation:     models.RecommendationConsider,
		Summary:            fmt.Sprintf("summary for %s", candidateName),
		Pros:               []string{"pro"},
		Cons:               []string{"con"},
		RedFlags:           []string{},
		FinalVerdict:       "verdict",
		InterviewQuestions: []string{"question"},
	}, nil
}

func (f *fakeAnalyzer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeResolver returns a fixed name per resume text, or the fallback.
type fakeResolver struct {
	names map[string]string
}

func (f *fakeResolver) ResolveName(ctx context.Context, resumeText, fallback string) string {
	if name, ok := f.names[resumeText]; ok {
		return name
	}
	return fallback
}
