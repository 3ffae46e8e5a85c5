package handler

import (
	"io"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"careernav/internal/dto"
	"careernav/internal/middleware"
	"careernav/internal/model"
	"careernav/internal/usecase"
	"careernav/internal/util"

	"github.com/gofiber/fiber/v2"
)

const maxUploadSize = 5 * 1024 * 1024

type ResumeHandler struct {
	uc *usecase.AnalysisUsecase
}

func NewResumeHandler(uc *usecase.AnalysisUsecase) *ResumeHandler {
	return &ResumeHandler{uc: uc}
}

func (h *ResumeHandler) RegisterRoutes(api fiber.Router) {
	api.Post("/resumes/analyze", middleware.RateLimiter(2, 10*time.Second), h.Analyze)
	api.Post("/resumes/scan", h.Scan)
	api.Get("/resumes/latest", h.Latest)
	api.Get("/resumes/:id/analysis", h.GetAnalysis)
	api.Get("/resumes/:id/recommendations", h.Recommendations)
	api.Patch("/roadmap/:id/status", h.UpdateRoadmapStatus)
	api.Post("/jobs", h.CreateJob)
}

// Analyze accepts a multipart submission: pasted content and/or an uploaded
// file, plus the target role.
func (h *ResumeHandler) Analyze(c *fiber.Ctx) error {
	input := usecase.AnalyzeInput{
		Content:    c.FormValue("content"),
		TargetRole: c.FormValue("targetRole"),
		FileName:   c.FormValue("fileName"),
	}
	if raw := c.FormValue("userId"); raw != "" {
		if userID, err := strconv.Atoi(raw); err == nil && userID > 0 {
			input.UserID = &userID
		}
	}

	if file, err := c.FormFile("file"); err == nil {
		if file.Size > maxUploadSize {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusBadRequest,
				Message: "file size is too large (max 5MB)",
			})
		}
		data, mime, err := readUpload(file)
		if err != nil {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusBadRequest,
				Message: "cannot read uploaded file",
			}, err)
		}
		input.FileData = data
		input.FileMime = mime
		if input.FileName == "" {
			input.FileName = file.Filename
		}
	}

	result, err := h.uc.Analyze(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Resume analyzed",
		Data:    result,
	})
}

func readUpload(file *multipart.FileHeader) ([]byte, string, error) {
	opened, err := file.Open()
	if err != nil {
		return nil, "", err
	}
	defer opened.Close()

	data, err := io.ReadAll(opened)
	if err != nil {
		return nil, "", err
	}

	mime := file.Header.Get("Content-Type")
	if mime == "" || mime == "application/octet-stream" {
		if strings.EqualFold(filepath.Ext(file.Filename), ".pdf") {
			mime = "application/pdf"
		} else {
			mime = "text/plain"
		}
	}
	return data, mime, nil
}

func (h *ResumeHandler) Scan(c *fiber.Ctx) error {
	var req dto.ScanRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	result, err := h.uc.Scan(c.Context(), req.Content)
	if err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Resume scanned",
		Data:    result,
	})
}

func (h *ResumeHandler) GetAnalysis(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid resume id",
		})
	}

	result, err := h.uc.GetAnalysis(id)
	if err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get analysis",
		Data:    result,
	})
}

func (h *ResumeHandler) Latest(c *fiber.Ctx) error {
	result, err := h.uc.GetLatestAnalysis()
	if err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get latest analysis",
		Data:    result,
	})
}

func (h *ResumeHandler) UpdateRoadmapStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid roadmap item id",
		})
	}

	var req dto.UpdateRoadmapStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	item, err := h.uc.UpdateRoadmapStatus(id, req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Roadmap item updated",
		Data:    item,
	})
}

func (h *ResumeHandler) Recommendations(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid resume id",
		})
	}
	topK := c.QueryInt("limit", 5)

	jobs, err := h.uc.RecommendJobs(c.Context(), id, topK)
	if err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get job recommendations",
		Data:    jobs,
	})
}

func (h *ResumeHandler) CreateJob(c *fiber.Ctx) error {
	var job model.Job
	if err := c.BodyParser(&job); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if strings.TrimSpace(job.Title) == "" || strings.TrimSpace(job.Content) == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "title and content are required",
		})
	}

	if err := h.uc.AddJob(c.Context(), &job); err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Job created",
		Data:    job,
	})
}
