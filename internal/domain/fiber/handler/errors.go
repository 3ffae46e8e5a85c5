package handler

import (
	"errors"
	"log"

	"careernav/internal/repository"
	"careernav/internal/service"
	"careernav/internal/usecase"
	"careernav/internal/util"

	"github.com/gofiber/fiber/v2"
)

// respondError maps the error taxonomy onto HTTP responses. Per-attempt
// dispatcher failures and raw model output stay in the server log; clients
// only ever see the aggregate outcome.
func respondError(c *fiber.Ctx, err error) error {
	var formErr *util.FormError
	if errors.As(err, &formErr) {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: formErr.Message,
			Details: formErr.Errors,
		})
	}

	if errors.Is(err, repository.ErrNotFound) {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "not found",
		})
	}

	var exhausted *service.ProviderExhaustedError
	if errors.As(err, &exhausted) {
		log.Printf("all model candidates exhausted: %v", exhausted)
		if exhausted.RateLimited() {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusTooManyRequests,
				Message: "The AI service is rate limited right now, please retry shortly",
			})
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusInternalServerError,
			Message: "Analysis failed, please try again",
		})
	}

	var malformed *util.MalformedOutputError
	if errors.As(err, &malformed) {
		// Raw text is logged server-side only; never echoed to the client.
		log.Printf("malformed model output: %v, raw: %q", malformed.Err, malformed.Raw)
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusInternalServerError,
			Message: "The AI returned an unreadable response, please try again",
		})
	}

	switch {
	case errors.Is(err, usecase.ErrUsernameTaken):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusConflict,
			Message: "username already taken",
		})
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusUnauthorized,
			Message: "invalid username or password",
		})
	}

	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Message: "internal server error",
	}, err)
}
