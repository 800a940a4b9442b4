package services

import (
	"fmt"
	"unicode/utf8"
)

const nameExtractionLimit = 2000

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildAnalysisPrompt embeds the resume and the job description into the
// fixed scoring rubric.
func (pb *PromptBuilder) BuildAnalysisPrompt(resumeText, jobDescription string) string {
	return fmt.Sprintf(`You are an expert technical recruiter evaluating a candidate's resume against a job description.

JOB DESCRIPTION:
%s

CANDIDATE RESUME:
%s

Score the candidate using this weighted rubric (100 points total):
1. Must-have skills (60 points) - Coverage of the skills the job description marks as required. If the resume shows zero evidence of the must-have skills, this component scores 0 out of 60.
2. Years of experience (25 points) - How the candidate's experience level compares to what the role asks for.
3. Nice-to-have skills (15 points) - Coverage of the optional or preferred skills.

While reading the resume, watch for red flags: date inconsistencies, unexplained employment gaps, job-hopping, career regression, and vague role descriptions with no concrete outcomes. List every red flag you find; return an empty list if there are none.

Recommendation thresholds:
- relevancyScore >= 85: "Strong Hire"
- relevancyScore >= 60: "Consider"
- otherwise: "Reject"

Return a JSON object with exactly these fields:
{
  "relevancyScore": <integer 0-100>,
  "recommendation": "Reject" | "Consider" | "Strong Hire",
  "summary": "<2-4 sentence overview of the candidate's fit>",
  "pros": ["<strength>", ...],
  "cons": ["<gap or weakness>", ...],
  "redFlags": ["<red flag>", ...],
  "finalVerdict": "<direct closing assessment>",
  "interviewQuestions": ["<question probing a gap or claim>", ...]
}

Base every claim on the provided texts only. Do not invent experience the resume does not mention.`,
		jobDescription, resumeText)
}

// BuildNamePrompt asks for the candidate's full name from the opening of the
// resume. The text is truncated so the call stays cheap.
func (pb *PromptBuilder) BuildNamePrompt(resumeText string) string {
	if len(resumeText) > nameExtractionLimit {
		// Back off to a rune boundary so the cut never splits a
		// multi-byte character.
		cut := nameExtractionLimit
		for cut > 0 && !utf8.RuneStart(resumeText[cut]) {
			cut--
		}
		resumeText = resumeText[:cut]
	}

	return fmt.Sprintf(`Extract the candidate's full name from the resume text below.

RESUME TEXT:
%s

Return a JSON object: {"fullName": "<the candidate's full name>"}. If no name can be found, return an empty string.`,
		resumeText)
}
