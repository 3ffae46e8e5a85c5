package dto

import "careernav/internal/model"

// AnalyzeResponse is the pair of ids a successful submission yields.
type AnalyzeResponse struct {
	ResumeID   int `json:"resumeId"`
	AnalysisID int `json:"analysisId"`
}

type ScanRequest struct {
	Content string `json:"content"`
}

// ScanResult pre-fills the target-role form before a full analysis.
type ScanResult struct {
	CandidateName string   `json:"candidateName,omitempty"`
	SuggestedRole string   `json:"suggestedRole,omitempty"`
	Skills        []string `json:"skills"`
}

// AnalysisResponse is the dashboard payload: the analysis joined with its
// resume and ordered roadmap.
type AnalysisResponse struct {
	model.AnalysisResult
	Resume  *model.Resume       `json:"resume"`
	Roadmap []model.RoadmapItem `json:"roadmap"`
}

type UpdateRoadmapStatusRequest struct {
	Status string `json:"status"`
}
