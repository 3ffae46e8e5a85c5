package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"careernav/internal/auth"
	"careernav/internal/middleware"
	"careernav/internal/model"
	"careernav/internal/repository"
	"careernav/internal/service"
	"careernav/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

type stubGenerator struct {
	response string
	err      error
}

func (s *stubGenerator) Generate(_ context.Context, _ service.GenerateRequest) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

// newTestApp wires the full route surface against the in-memory store, the
// same way the server binary does.
func newTestApp(llm service.Generator) (*fiber.App, repository.Store) {
	store := repository.NewMemoryStore()
	tokens := auth.NewTokenService("test-secret", time.Hour)

	app := fiber.New()
	api := app.Group("/api", middleware.OptionalAuth(tokens))
	NewResumeHandler(usecase.NewAnalysisUsecase(store, llm, nil, nil)).RegisterRoutes(api)
	NewInterviewHandler(usecase.NewInterviewUsecase(store, llm)).RegisterRoutes(api)
	NewAuthHandler(usecase.NewAuthUsecase(store, tokens)).RegisterRoutes(api)
	NewCareerHandler(store).RegisterRoutes(api)
	return app, store
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(payload)
}

const analysisJSON = `{
  "readinessScore": 72,
  "atsScore": 81,
  "resumeQuality": 68,
  "skillMatch": 75,
  "feedback": "Strong fundamentals.",
  "strengths": ["React depth"],
  "gaps": ["System design"],
  "rewrittenContent": "# Jane Doe",
  "addedKeywords": ["TypeScript"],
  "roadmap": [
    {"title": "t1", "description": "d", "category": "skill", "order": 1},
    {"title": "t2", "description": "d", "category": "project", "order": 2},
    {"title": "t3", "description": "d", "category": "practice", "order": 3},
    {"title": "t4", "description": "d", "category": "skill", "order": 4},
    {"title": "t5", "description": "d", "category": "interview", "order": 5},
    {"title": "t6", "description": "d", "category": "project", "order": 6}
  ]
}`

func analyzeRequest(t *testing.T, content, targetRole string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	require.NoError(t, form.WriteField("content", content))
	require.NoError(t, form.WriteField("targetRole", targetRole))
	require.NoError(t, form.Close())

	req := httptest.NewRequest(fiber.MethodPost, "/api/resumes/analyze", &body)
	req.Header.Set(fiber.HeaderContentType, form.FormDataContentType())
	return req
}

func TestAnalyzeEndToEnd(t *testing.T) {
	app, _ := newTestApp(&stubGenerator{response: analysisJSON})

	resp, err := app.Test(analyzeRequest(t, "5 years React", "Frontend Engineer"), -1)
	require.NoError(t, err)
	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	body := string(payload)
	assert.True(t, gjson.Get(body, "success").Bool())
	resumeID := gjson.Get(body, "data.resumeId").Int()
	require.Positive(t, resumeID)
	require.Positive(t, gjson.Get(body, "data.analysisId").Int())

	resp, body = doJSON(t, app, fiber.MethodGet, "/api/resumes/latest", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(72), gjson.Get(body, "data.readinessScore").Int())
	assert.Equal(t, "analyzed", gjson.Get(body, "data.resume.status").String())
	assert.Len(t, gjson.Get(body, "data.roadmap").Array(), 6)
	// Roadmap items expose their position under the camelCase key "order".
	assert.Equal(t, int64(1), gjson.Get(body, "data.roadmap.0.order").Int())
}

func TestAnalyzeMissingTargetRole(t *testing.T) {
	app, _ := newTestApp(&stubGenerator{response: analysisJSON})

	resp, err := app.Test(analyzeRequest(t, "some resume text", ""), -1)
	require.NoError(t, err)
	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := string(payload)
	assert.False(t, gjson.Get(body, "success").Bool())
	assert.Equal(t, "required", gjson.Get(body, "details.targetRole").String())
}

func TestAnalyzeProviderExhaustedRateLimited(t *testing.T) {
	app, _ := newTestApp(&stubGenerator{err: &service.ProviderExhaustedError{Attempts: []service.Attempt{
		{Label: "key-1", Model: "gemini-2.5-flash", Err: errors.New("googleapi: Error 429: quota exceeded")},
	}}})

	resp, err := app.Test(analyzeRequest(t, "resume text", "SRE"), -1)
	require.NoError(t, err)
	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	require.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	// Per-attempt detail stays in the server log, not the response.
	assert.NotContains(t, string(payload), "gemini-2.5-flash")
}

func TestLatestAnalysisEmptyStore(t *testing.T) {
	app, _ := newTestApp(&stubGenerator{})
	resp, _ := doJSON(t, app, fiber.MethodGet, "/api/resumes/latest", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetAnalysisUnknownResume(t *testing.T) {
	app, _ := newTestApp(&stubGenerator{})
	resp, _ := doJSON(t, app, fiber.MethodGet, "/api/resumes/99/analysis", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestScanEndpoint(t *testing.T) {
	app, _ := newTestApp(&stubGenerator{response: "```json\n{\"candidateName\": \"Jane\", \"suggestedRole\": \"Frontend Engineer\", \"skills\": [\"React\"]}\n```"})
	resp, body := doJSON(t, app, fiber.MethodPost, "/api/resumes/scan", `{"content": "Jane, frontend dev"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Jane", gjson.Get(body, "data.candidateName").String())
}

func TestUpdateRoadmapStatus(t *testing.T) {
	app, _ := newTestApp(&stubGenerator{response: analysisJSON})

	resp, err := app.Test(analyzeRequest(t, "resume", "Backend Engineer"), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, fiber.MethodPatch, "/api/roadmap/1/status", `{"status": "completed"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "completed", gjson.Get(body, "data.status").String())

	// Same update again is idempotent.
	resp, body = doJSON(t, app, fiber.MethodPatch, "/api/roadmap/1/status", `{"status": "completed"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "completed", gjson.Get(body, "data.status").String())
}

func TestUpdateRoadmapStatusRejectsBadValue(t *testing.T) {
	app, _ := newTestApp(&stubGenerator{})
	resp, body := doJSON(t, app, fiber.MethodPatch, "/api/roadmap/1/status", `{"status": "done"}`)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, gjson.Get(body, "details.status").String(), "must be one of")
}

func TestUpdateRoadmapStatusUnknownItem(t *testing.T) {
	app, _ := newTestApp(&stubGenerator{})
	resp, _ := doJSON(t, app, fiber.MethodPatch, "/api/roadmap/77/status", `{"status": "in_progress"}`)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestInterviewFlow(t *testing.T) {
	llm := &stubGenerator{response: "Welcome. Tell me about yourself."}
	app, store := newTestApp(llm)

	resume := &model.Resume{Content: "Jane, React dev", TargetRole: "Frontend Engineer"}
	require.NoError(t, store.CreateResume(resume))

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/interviews", `{"resumeId": 1}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	interviewID := gjson.Get(body, "data.id").Int()
	require.Positive(t, interviewID)

	llm.response = "Interesting. What was the hardest bug you fixed?"
	resp, body = doJSON(t, app, fiber.MethodPost, "/api/interviews/1/messages", `{"content": "I rebuilt our dashboard."}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "ai", gjson.Get(body, "data.role").String())

	resp, body = doJSON(t, app, fiber.MethodGet, "/api/interviews/1", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	messages := gjson.Get(body, "data.messages").Array()
	require.Len(t, messages, 3)
	assert.Equal(t, "ai", messages[0].Get("role").String())
	assert.Equal(t, "user", messages[1].Get("role").String())
	assert.Equal(t, "ai", messages[2].Get("role").String())
}

func TestInterviewWithoutResumeHasNoMessages(t *testing.T) {
	app, _ := newTestApp(&stubGenerator{response: "never used"})

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/interviews", `{"resumeId": 404}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Positive(t, gjson.Get(body, "data.id").Int())

	resp, body = doJSON(t, app, fiber.MethodGet, "/api/interviews/1", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, gjson.Get(body, "data.messages").Array(), 0)
}

func TestInterviewMessageUnknownInterview(t *testing.T) {
	app, _ := newTestApp(&stubGenerator{})
	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/interviews/5/messages", `{"content": "hello"}`)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAuthRegisterLoginFlow(t *testing.T) {
	app, _ := newTestApp(&stubGenerator{})

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/auth/register", `{"username": "jane", "password": "secret123"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, gjson.Get(body, "data.token").String())

	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/auth/register", `{"username": "jane", "password": "another1"}`)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, body = doJSON(t, app, fiber.MethodPost, "/api/auth/login", `{"username": "jane", "password": "secret123"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "jane", gjson.Get(body, "data.username").String())

	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/auth/login", `{"username": "jane", "password": "wrong"}`)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthRegisterValidation(t *testing.T) {
	app, _ := newTestApp(&stubGenerator{})
	resp, body := doJSON(t, app, fiber.MethodPost, "/api/auth/register", `{"username": "", "password": "abc"}`)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "required", gjson.Get(body, "details.username").String())
	assert.NotEmpty(t, gjson.Get(body, "details.password").String())
}

func TestPortfolioRoutes(t *testing.T) {
	app, _ := newTestApp(&stubGenerator{})

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/portfolios", `{"userId": 1, "domain": "jane.dev", "bio": "Frontend engineer"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "minimal", gjson.Get(body, "data.theme").String())

	resp, body = doJSON(t, app, fiber.MethodGet, "/api/users/1/portfolio", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "jane.dev", gjson.Get(body, "data.domain").String())

	resp, _ = doJSON(t, app, fiber.MethodGet, "/api/users/2/portfolio", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestApplicationRoutes(t *testing.T) {
	app, _ := newTestApp(&stubGenerator{})

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/applications", `{"userId": 1, "role": "SRE", "company": "Acme"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Applied", gjson.Get(body, "data.status").String())

	resp, body = doJSON(t, app, fiber.MethodPost, "/api/applications", `{"userId": 1}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body = doJSON(t, app, fiber.MethodGet, "/api/users/1/applications", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, gjson.Get(body, "data").Array(), 1)
	assert.Equal(t, int64(1), gjson.Get(body, "meta.total_items").Int())
}
