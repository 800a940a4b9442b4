package models

type Recommendation string

const (
	RecommendationReject     Recommendation = "Reject"
	RecommendationConsider   Recommendation = "Consider"
	RecommendationStrongHire Recommendation = "Strong Hire"
)

// AllowedRecommendations lists the only values the model may return.
var AllowedRecommendations = []Recommendation{
	RecommendationReject,
	RecommendationConsider,
	RecommendationStrongHire,
}

func ValidRecommendation(value string) bool {
	for _, r := range AllowedRecommendations {
		if string(r) == value {
			return true
		}
	}
	return false
}

// AnalysisResult is the structured hiring recommendation for one candidate.
// It is produced exactly once per successfully analyzed resume and never
// mutated afterwards.
type AnalysisResult struct {
	CandidateName      string         `json:"candidateName"`
	RelevancyScore     float64        `json:"relevancyScore"`
	Recommendation     Recommendation `json:"recommendation"`
	Summary            string         `json:"summary"`
	Pros               []string       `json:"pros"`
	Cons               []string       `json:"cons"`
	RedFlags           []string       `json:"redFlags"`
	FinalVerdict       string         `json:"finalVerdict"`
	InterviewQuestions []string       `json:"interviewQuestions"`
}

// BatchSummary reports partial-failure accounting for one analysis run.
type BatchSummary struct {
	Attempted int `json:"attempted"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

type IngestURLRequest struct {
	URL string `json:"url"`
}

type JobRequest struct {
	Text string `json:"text,omitempty"`
	URL  string `json:"url,omitempty"`
}

type UploadResponse struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Status   string `json:"status"`
}

type AnalyzeResponse struct {
	Status string `json:"status"`
}

type ResultsResponse struct {
	Running   bool             `json:"running"`
	Results   []AnalysisResult `json:"results"`
	Summary   *BatchSummary    `json:"summary,omitempty"`
	LastError string           `json:"last_error,omitempty"`
}
