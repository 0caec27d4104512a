package models

// AnalysisResult is the output of a single analysis pass over a job's text.
type AnalysisResult struct {
	Sentiment Sentiment `json:"sentiment"`
	Keywords  []string  `json:"keywords"`
}
