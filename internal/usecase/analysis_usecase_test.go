package usecase

import (
	"context"
	"errors"
	"testing"

	"careernav/internal/model"
	"careernav/internal/repository"
	"careernav/internal/service"
	"careernav/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

type stubLLM struct {
	response string
	err      error
	requests []service.GenerateRequest
}

func (s *stubLLM) Generate(_ context.Context, req service.GenerateRequest) (string, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

const cannedAnalysis = `{
  "readinessScore": 78,
  "atsScore": 85,
  "resumeQuality": 70,
  "skillMatch": 80,
  "feedback": "Solid foundation with room to grow.",
  "strengths": ["5 years of React", "AWS production experience"],
  "gaps": ["No system design experience", "Limited testing background"],
  "rewrittenContent": "# Jane Doe\n\n- Built dashboards in React, cutting load time 40%",
  "addedKeywords": ["TypeScript", "CI/CD"],
  "roadmap": [
    {"title": "Learn TypeScript", "description": "Adopt strict typing", "category": "skill", "order": 1},
    {"title": "Build a design system", "description": "Publish a component library", "category": "project", "order": 2},
    {"title": "Practice system design", "description": "Weekly mock sessions", "category": "practice", "order": 3},
    {"title": "Add test coverage", "description": "Unit tests on critical paths", "category": "skill", "order": 4},
    {"title": "Ship a side project", "description": "Full-stack deployment", "category": "project", "order": 5},
    {"title": "Mock interviews", "description": "Two rounds with peers", "category": "interview", "order": 6},
    {"title": "Contribute to open source", "description": "One PR a month", "category": "project", "order": 7}
  ]
}`

func TestAnalyzePersistsResumeAnalysisAndRoadmap(t *testing.T) {
	store := repository.NewMemoryStore()
	llm := &stubLLM{response: cannedAnalysis}
	uc := NewAnalysisUsecase(store, llm, nil, nil)

	result, err := uc.Analyze(context.Background(), AnalyzeInput{
		Content:    "5 years React, Node, AWS",
		TargetRole: "Senior Frontend Engineer",
		FileName:   "resume.txt",
	})
	require.NoError(t, err)
	assert.Positive(t, result.ResumeID)
	assert.Positive(t, result.AnalysisID)

	require.Len(t, llm.requests, 1)
	assert.True(t, llm.requests[0].Structured)

	payload, err := uc.GetAnalysis(result.ResumeID)
	require.NoError(t, err)
	assert.Equal(t, 78, payload.ReadinessScore)
	assert.Equal(t, 85, payload.ATSScore)
	assert.GreaterOrEqual(t, len(payload.Strengths), 1)
	assert.GreaterOrEqual(t, len(payload.Gaps), 1)
	assert.NotEmpty(t, payload.RewrittenContent)
	assert.Equal(t, model.ResumeStatusAnalyzed, payload.Resume.Status)

	require.GreaterOrEqual(t, len(payload.Roadmap), 6)
	require.LessOrEqual(t, len(payload.Roadmap), 8)
	for i := 1; i < len(payload.Roadmap); i++ {
		assert.LessOrEqual(t, payload.Roadmap[i-1].Order, payload.Roadmap[i].Order)
	}
	for _, item := range payload.Roadmap {
		assert.Equal(t, model.RoadmapStatusPending, item.Status)
	}

	keywords := gjson.GetBytes(payload.AnalysisData, "addedKeywords").Array()
	assert.Len(t, keywords, 2)
}

func TestAnalyzeDefaultsMissingSubScoresAndFeedback(t *testing.T) {
	store := repository.NewMemoryStore()
	llm := &stubLLM{response: `{
      "readinessScore": 50,
      "strengths": ["a"],
      "gaps": ["b"],
      "rewrittenContent": "# Resume",
      "roadmap": [
        {"title": "s1", "description": "d", "category": "skill"},
        {"title": "s2", "description": "d", "category": "skill"},
        {"title": "s3", "description": "d", "category": "skill"},
        {"title": "s4", "description": "d", "category": "skill"},
        {"title": "s5", "description": "d", "category": "skill"},
        {"title": "s6", "description": "d", "category": "skill"}
      ]
    }`}
	uc := NewAnalysisUsecase(store, llm, nil, nil)

	result, err := uc.Analyze(context.Background(), AnalyzeInput{
		Content:    "some resume",
		TargetRole: "Backend Engineer",
	})
	require.NoError(t, err)

	payload, err := uc.GetAnalysis(result.ResumeID)
	require.NoError(t, err)
	assert.Zero(t, payload.ATSScore)
	assert.Zero(t, payload.ResumeQuality)
	assert.Zero(t, payload.SkillMatch)
	assert.Equal(t, fallbackFeedback, payload.Feedback)

	// Items without an explicit order get their 1-based position.
	require.Len(t, payload.Roadmap, 6)
	assert.Equal(t, 1, payload.Roadmap[0].Order)
	assert.Equal(t, 6, payload.Roadmap[5].Order)
}

func TestAnalyzeOutOfRangeScoresPassThrough(t *testing.T) {
	// Range validation is deliberately not enforced anywhere; this pins the
	// pass-through so a future clamp is an explicit decision.
	store := repository.NewMemoryStore()
	llm := &stubLLM{response: `{
      "readinessScore": 130,
      "atsScore": -5,
      "strengths": ["a"],
      "gaps": ["b"],
      "rewrittenContent": "# R",
      "roadmap": [
        {"title": "s1", "description": "d", "category": "skill", "order": 1},
        {"title": "s2", "description": "d", "category": "skill", "order": 2},
        {"title": "s3", "description": "d", "category": "skill", "order": 3},
        {"title": "s4", "description": "d", "category": "skill", "order": 4},
        {"title": "s5", "description": "d", "category": "skill", "order": 5},
        {"title": "s6", "description": "d", "category": "skill", "order": 6}
      ]
    }`}
	uc := NewAnalysisUsecase(store, llm, nil, nil)

	result, err := uc.Analyze(context.Background(), AnalyzeInput{Content: "x", TargetRole: "y"})
	require.NoError(t, err)

	payload, err := uc.GetAnalysis(result.ResumeID)
	require.NoError(t, err)
	assert.Equal(t, 130, payload.ReadinessScore)
	assert.Equal(t, -5, payload.ATSScore)
}

func TestAnalyzeValidatesInput(t *testing.T) {
	uc := NewAnalysisUsecase(repository.NewMemoryStore(), &stubLLM{}, nil, nil)

	var formErr *util.FormError

	_, err := uc.Analyze(context.Background(), AnalyzeInput{Content: "text"})
	require.True(t, errors.As(err, &formErr))
	assert.Contains(t, formErr.Errors, "targetRole")

	_, err = uc.Analyze(context.Background(), AnalyzeInput{TargetRole: "SRE"})
	require.True(t, errors.As(err, &formErr))
	assert.Contains(t, formErr.Errors, "content")
}

func TestAnalyzeDispatcherFailureLeavesFailedResume(t *testing.T) {
	store := repository.NewMemoryStore()
	llm := &stubLLM{err: &service.ProviderExhaustedError{Attempts: []service.Attempt{
		{Label: "k1", Model: "m1", Err: errors.New("quota exceeded")},
	}}}
	uc := NewAnalysisUsecase(store, llm, nil, nil)

	_, err := uc.Analyze(context.Background(), AnalyzeInput{Content: "x", TargetRole: "y"})
	var exhausted *service.ProviderExhaustedError
	require.True(t, errors.As(err, &exhausted))

	// The resume survives the failure in an observable intermediate state.
	resume, err := store.GetLatestResume()
	require.NoError(t, err)
	assert.Equal(t, model.ResumeStatusFailed, resume.Status)

	_, err = uc.GetAnalysis(resume.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAnalyzeMissingRequiredFieldsIsMalformed(t *testing.T) {
	store := repository.NewMemoryStore()
	llm := &stubLLM{response: `{"readinessScore": 80, "gaps": ["b"], "rewrittenContent": "# R", "roadmap": [{"title": "t", "description": "d", "category": "skill", "order": 1}]}`}
	uc := NewAnalysisUsecase(store, llm, nil, nil)

	_, err := uc.Analyze(context.Background(), AnalyzeInput{Content: "x", TargetRole: "y"})
	var malformed *util.MalformedOutputError
	require.True(t, errors.As(err, &malformed))

	resume, err := store.GetLatestResume()
	require.NoError(t, err)
	assert.Equal(t, model.ResumeStatusFailed, resume.Status)
}

func TestScanExtractsCandidateFacts(t *testing.T) {
	llm := &stubLLM{response: "```json\n{\"candidateName\": \"Jane Doe\", \"suggestedRole\": \"Frontend Engineer\", \"skills\": [\"React\", \"Node\", \"AWS\", \"CSS\", \"Git\"]}\n```"}
	uc := NewAnalysisUsecase(repository.NewMemoryStore(), llm, nil, nil)

	result, err := uc.Scan(context.Background(), "Jane Doe, frontend dev, React/Node/AWS")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", result.CandidateName)
	assert.Equal(t, "Frontend Engineer", result.SuggestedRole)
	assert.Len(t, result.Skills, 5)
}

func TestUpdateRoadmapStatusRejectsUnknownValue(t *testing.T) {
	uc := NewAnalysisUsecase(repository.NewMemoryStore(), &stubLLM{}, nil, nil)

	_, err := uc.UpdateRoadmapStatus(1, "done")
	var formErr *util.FormError
	require.True(t, errors.As(err, &formErr))
	assert.Contains(t, formErr.Errors, "status")
}

func TestGetLatestAnalysisEmptyStore(t *testing.T) {
	uc := NewAnalysisUsecase(repository.NewMemoryStore(), &stubLLM{}, nil, nil)
	_, err := uc.GetLatestAnalysis()
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
