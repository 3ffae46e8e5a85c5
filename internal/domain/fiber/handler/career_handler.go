package handler

import (
	"strings"

	"careernav/internal/dto"
	"careernav/internal/model"
	"careernav/internal/repository"
	"careernav/internal/response"
	"careernav/internal/util"

	"github.com/gofiber/fiber/v2"
)

// CareerHandler serves the auxiliary portfolio and application-tracker
// entities. These are plain store reads and writes.
type CareerHandler struct {
	store repository.Store
}

func NewCareerHandler(store repository.Store) *CareerHandler {
	return &CareerHandler{store: store}
}

func (h *CareerHandler) RegisterRoutes(api fiber.Router) {
	api.Post("/portfolios", h.CreatePortfolio)
	api.Get("/users/:id/portfolio", h.GetPortfolio)
	api.Post("/applications", h.CreateApplication)
	api.Get("/users/:id/applications", h.ListApplications)
}

func (h *CareerHandler) CreatePortfolio(c *fiber.Ctx) error {
	var req dto.CreatePortfolioRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if strings.TrimSpace(req.Domain) == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "domain is required",
			Details: map[string]string{"domain": "required"},
		})
	}

	portfolio := &model.Portfolio{
		UserID:   req.UserID,
		Domain:   req.Domain,
		Bio:      req.Bio,
		Projects: req.Projects,
		Theme:    req.Theme,
		IsPublic: req.IsPublic,
	}
	if err := h.store.CreatePortfolio(portfolio); err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Portfolio created",
		Data:    portfolio,
	})
}

func (h *CareerHandler) GetPortfolio(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid user id",
		})
	}

	portfolio, err := h.store.GetPortfolioByUserID(userID)
	if err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get portfolio",
		Data:    portfolio,
	})
}

func (h *CareerHandler) CreateApplication(c *fiber.Ctx) error {
	var req dto.CreateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if strings.TrimSpace(req.Role) == "" || strings.TrimSpace(req.Company) == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "role and company are required",
		})
	}

	application := &model.Application{
		UserID:  req.UserID,
		Role:    req.Role,
		Company: req.Company,
		Status:  req.Status,
		Notes:   req.Notes,
	}
	if err := h.store.CreateApplication(application); err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Application created",
		Data:    application,
	})
}

func (h *CareerHandler) ListApplications(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid user id",
		})
	}

	apps, err := h.store.GetApplicationsByUserID(userID)
	if err != nil {
		return respondError(c, err)
	}

	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 20)
	total := int64(len(apps))
	apps = paginate(apps, page, pageSize)

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get applications",
		Data:    apps,
		Meta:    response.NewPagination(page, pageSize, total),
	})
}

func paginate(apps []model.Application, page, pageSize int) []model.Application {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	start := (page - 1) * pageSize
	if start >= len(apps) {
		return []model.Application{}
	}
	end := start + pageSize
	if end > len(apps) {
		end = len(apps)
	}
	return apps[start:end]
}
