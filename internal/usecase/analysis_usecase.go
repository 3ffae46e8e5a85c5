package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"careernav/internal/dto"
	"careernav/internal/model"
	"careernav/internal/repository"
	"careernav/internal/service"
	"careernav/internal/storage"
	"careernav/internal/util"

	"github.com/pgvector/pgvector-go"
	"github.com/tidwall/gjson"
	"gorm.io/datatypes"
)

func vectorFrom(embedding []float32) pgvector.Vector {
	return pgvector.NewVector(embedding)
}

const fallbackFeedback = "No additional feedback was provided for this resume."

type AnalysisUsecase struct {
	store    repository.Store
	llm      service.Generator
	embedder service.Embedder // nil when no Gemini key is configured
	files    *storage.Client  // nil when object storage is not configured
}

func NewAnalysisUsecase(store repository.Store, llm service.Generator, embedder service.Embedder, files *storage.Client) *AnalysisUsecase {
	return &AnalysisUsecase{store: store, llm: llm, embedder: embedder, files: files}
}

// AnalyzeInput is one submission: pasted text and/or an uploaded file.
type AnalyzeInput struct {
	Content    string
	TargetRole string
	FileName   string
	UserID     *int
	FileData   []byte
	FileMime   string
}

// Analyze turns a submission into a persisted analysis. The resume row is
// committed before the model call; on model failure it stays behind with
// status "failed" rather than vanishing.
func (uc *AnalysisUsecase) Analyze(ctx context.Context, input AnalyzeInput) (*dto.AnalyzeResponse, error) {
	if strings.TrimSpace(input.TargetRole) == "" {
		return nil, util.NewFormError("targetRole is required", map[string]string{"targetRole": "required"})
	}
	if strings.TrimSpace(input.Content) == "" && len(input.FileData) == 0 {
		return nil, util.NewFormError("either content or file is required", map[string]string{"content": "required"})
	}

	content := input.Content
	if content == "" && input.FileMime == "application/pdf" {
		extracted, err := util.ExtractPDFText(input.FileData)
		if err != nil {
			log.Printf("pdf extraction failed, passing raw bytes to the model: %v", err)
		} else {
			content = extracted
		}
	}

	resume := &model.Resume{
		UserID:     input.UserID,
		Content:    content,
		TargetRole: input.TargetRole,
		FileName:   input.FileName,
		Status:     model.ResumeStatusPending,
		StorageKey: uc.archiveRawFile(ctx, input),
	}
	if err := uc.store.CreateResume(resume); err != nil {
		return nil, fmt.Errorf("create resume: %w", err)
	}

	req := service.GenerateRequest{
		Prompt:     buildAnalysisPrompt(input.TargetRole, content),
		Structured: true,
	}
	if len(input.FileData) > 0 {
		req.Attachment = &service.Attachment{MIMEType: input.FileMime, Data: input.FileData}
	}

	raw, err := uc.llm.Generate(ctx, req)
	if err != nil {
		uc.markFailed(resume.ID)
		return nil, err
	}

	analysis, items, err := uc.mapAnalysis(resume.ID, raw)
	if err != nil {
		uc.markFailed(resume.ID)
		return nil, err
	}

	if err := uc.store.CreateAnalysisResult(analysis); err != nil {
		uc.markFailed(resume.ID)
		return nil, fmt.Errorf("create analysis: %w", err)
	}
	for i := range items {
		items[i].AnalysisID = analysis.ID
	}
	if _, err := uc.store.CreateRoadmapItems(items); err != nil {
		return nil, fmt.Errorf("create roadmap items: %w", err)
	}
	if err := uc.store.UpdateResumeStatus(resume.ID, model.ResumeStatusAnalyzed); err != nil {
		return nil, fmt.Errorf("update resume status: %w", err)
	}

	return &dto.AnalyzeResponse{ResumeID: resume.ID, AnalysisID: analysis.ID}, nil
}

// archiveRawFile uploads the raw file to object storage. Best effort: any
// failure is logged and the analysis continues without a storage key.
func (uc *AnalysisUsecase) archiveRawFile(ctx context.Context, input AnalyzeInput) string {
	if uc.files == nil || len(input.FileData) == 0 {
		return ""
	}
	key, err := uc.files.UploadResume(ctx, input.FileName, input.FileData, input.FileMime)
	if err != nil {
		log.Printf("raw file archive failed for %q: %v", input.FileName, err)
		return ""
	}
	return key
}

func (uc *AnalysisUsecase) markFailed(resumeID int) {
	if err := uc.store.UpdateResumeStatus(resumeID, model.ResumeStatusFailed); err != nil {
		log.Printf("failed to mark resume %d as failed: %v", resumeID, err)
	}
}

// mapAnalysis repair-parses the model output and maps it onto one
// AnalysisResult plus its roadmap items. Missing sub-scores default to 0 and
// missing feedback to a placeholder; missing strengths, gaps, rewrite, or
// roadmap mean the output is unusable.
func (uc *AnalysisUsecase) mapAnalysis(resumeID int, raw string) (*model.AnalysisResult, []model.RoadmapItem, error) {
	text, err := util.RepairJSON(raw)
	if err != nil {
		return nil, nil, err
	}

	strengths := stringSlice(gjson.Get(text, "strengths"))
	gaps := stringSlice(gjson.Get(text, "gaps"))
	rewritten := gjson.Get(text, "rewrittenContent").String()
	roadmap := gjson.Get(text, "roadmap")

	switch {
	case len(strengths) == 0:
		return nil, nil, &util.MalformedOutputError{Raw: raw, Err: fmt.Errorf("missing required field strengths")}
	case len(gaps) == 0:
		return nil, nil, &util.MalformedOutputError{Raw: raw, Err: fmt.Errorf("missing required field gaps")}
	case rewritten == "":
		return nil, nil, &util.MalformedOutputError{Raw: raw, Err: fmt.Errorf("missing required field rewrittenContent")}
	case !roadmap.IsArray() || len(roadmap.Array()) == 0:
		return nil, nil, &util.MalformedOutputError{Raw: raw, Err: fmt.Errorf("missing required field roadmap")}
	}

	feedback := gjson.Get(text, "feedback").String()
	if feedback == "" {
		feedback = fallbackFeedback
	}

	analysisData, _ := json.Marshal(map[string]any{
		"addedKeywords": stringSlice(gjson.Get(text, "addedKeywords")),
	})

	analysis := &model.AnalysisResult{
		ResumeID:           resumeID,
		ReadinessScore:     int(gjson.Get(text, "readinessScore").Int()),
		ATSScore:           int(gjson.Get(text, "atsScore").Int()),
		ResumeQuality:      int(gjson.Get(text, "resumeQuality").Int()),
		SkillMatch:         int(gjson.Get(text, "skillMatch").Int()),
		ProjectStrength:    int(gjson.Get(text, "projectStrength").Int()),
		InterviewReadiness: int(gjson.Get(text, "interviewReadiness").Int()),
		Feedback:           feedback,
		RewrittenContent:   rewritten,
		AnalysisData:       datatypes.JSON(analysisData),
		Strengths:          strengths,
		Gaps:               gaps,
	}

	var items []model.RoadmapItem
	for i, entry := range roadmap.Array() {
		order := int(entry.Get("order").Int())
		if order == 0 {
			order = i + 1
		}
		items = append(items, model.RoadmapItem{
			Title:       entry.Get("title").String(),
			Description: entry.Get("description").String(),
			Category:    roadmapCategory(entry.Get("category").String()),
			Status:      model.RoadmapStatusPending,
			Order:       order,
		})
	}
	return analysis, items, nil
}

func roadmapCategory(category string) string {
	switch category {
	case "skill", "project", "practice", "interview":
		return category
	}
	return "skill"
}

func stringSlice(result gjson.Result) []string {
	var out []string
	for _, entry := range result.Array() {
		if s := entry.String(); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Scan infers the candidate's name, a suggested role, and top skills from
// resume text alone. Nothing is persisted.
func (uc *AnalysisUsecase) Scan(ctx context.Context, content string) (*dto.ScanResult, error) {
	if strings.TrimSpace(content) == "" {
		return nil, util.NewFormError("content is required", map[string]string{"content": "required"})
	}

	raw, err := uc.llm.Generate(ctx, service.GenerateRequest{
		Prompt:     buildScanPrompt(content),
		Structured: true,
	})
	if err != nil {
		return nil, err
	}

	text, err := util.RepairJSON(raw)
	if err != nil {
		return nil, err
	}

	return &dto.ScanResult{
		CandidateName: gjson.Get(text, "candidateName").String(),
		SuggestedRole: gjson.Get(text, "suggestedRole").String(),
		Skills:        stringSlice(gjson.Get(text, "skills")),
	}, nil
}

// GetAnalysis loads the analysis for a resume along with the resume itself
// and the ordered roadmap. A resume stuck in pending or failed state simply
// has no analysis yet; that is a not-found, not a crash signal.
func (uc *AnalysisUsecase) GetAnalysis(resumeID int) (*dto.AnalysisResponse, error) {
	analysis, err := uc.store.GetAnalysisByResumeID(resumeID)
	if err != nil {
		return nil, err
	}
	resume, err := uc.store.GetResume(resumeID)
	if err != nil {
		return nil, err
	}
	roadmap, err := uc.store.GetRoadmapItemsByAnalysisID(analysis.ID)
	if err != nil {
		return nil, err
	}
	return &dto.AnalysisResponse{AnalysisResult: *analysis, Resume: resume, Roadmap: roadmap}, nil
}

// GetLatestAnalysis serves the no-signup flow: the most recently submitted
// resume's analysis.
func (uc *AnalysisUsecase) GetLatestAnalysis() (*dto.AnalysisResponse, error) {
	resume, err := uc.store.GetLatestResume()
	if err != nil {
		return nil, err
	}
	return uc.GetAnalysis(resume.ID)
}

func (uc *AnalysisUsecase) UpdateRoadmapStatus(id int, status string) (*model.RoadmapItem, error) {
	if !model.ValidRoadmapStatus(status) {
		return nil, util.NewFormError(
			fmt.Sprintf("invalid status %q", status),
			map[string]string{"status": "must be one of pending, in_progress, completed"},
		)
	}
	return uc.store.UpdateRoadmapItemStatus(id, status)
}

// AddJob stores a job posting together with its embedding so it becomes
// searchable for recommendations.
func (uc *AnalysisUsecase) AddJob(ctx context.Context, job *model.Job) error {
	if uc.embedder == nil {
		return fmt.Errorf("job recommendations require a configured gemini key")
	}
	embedding, err := uc.embedder.GenerateEmbedding(ctx, job.Content)
	if err != nil {
		return err
	}
	job.Embedding = vectorFrom(embedding)
	return uc.store.CreateJob(job)
}

// RecommendJobs ranks stored postings against the resume content.
func (uc *AnalysisUsecase) RecommendJobs(ctx context.Context, resumeID, topK int) ([]model.Job, error) {
	if uc.embedder == nil {
		return nil, fmt.Errorf("job recommendations require a configured gemini key")
	}
	resume, err := uc.store.GetResume(resumeID)
	if err != nil {
		return nil, err
	}
	embedding, err := uc.embedder.GenerateEmbedding(ctx, resume.Content)
	if err != nil {
		return nil, err
	}
	if topK <= 0 {
		topK = 5
	}
	return uc.store.SearchJobs(embedding, topK)
}
