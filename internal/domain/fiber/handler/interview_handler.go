package handler

import (
	"careernav/internal/dto"
	"careernav/internal/usecase"
	"careernav/internal/util"

	"github.com/gofiber/fiber/v2"
)

type InterviewHandler struct {
	uc *usecase.InterviewUsecase
}

func NewInterviewHandler(uc *usecase.InterviewUsecase) *InterviewHandler {
	return &InterviewHandler{uc: uc}
}

func (h *InterviewHandler) RegisterRoutes(api fiber.Router) {
	api.Post("/interviews", h.Create)
	api.Get("/interviews/:id", h.Get)
	api.Post("/interviews/:id/messages", h.AddMessage)
}

func (h *InterviewHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	interview, err := h.uc.Create(c.Context(), req.ResumeID, req.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Interview created",
		Data:    interview,
	})
}

func (h *InterviewHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid interview id",
		})
	}

	result, err := h.uc.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get interview",
		Data:    result,
	})
}

func (h *InterviewHandler) AddMessage(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid interview id",
		})
	}

	var req dto.AddMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	message, err := h.uc.AddMessage(c.Context(), id, req.Content)
	if err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Interviewer replied",
		Data:    message,
	})
}
