package serverutils

import (
	"errors"

	"career-discovery-be/internal/apperr"
	"career-discovery-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps errors returned by controllers onto the
// response envelope. Gateway rate-limit and quota failures keep their
// distinguishing status codes so the client can show a specific notice.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *apperr.AppError
		if errors.As(err, &appErr) {
			return ctx.Status(appErr.Code).JSON(ErrorResponse(appErr.Message))
		}

		if errors.Is(err, llm.ErrRateLimited) {
			return ctx.Status(fiber.StatusTooManyRequests).
				JSON(ErrorResponse("Rate limit exceeded. Please try again in a moment."))
		}
		if errors.Is(err, llm.ErrQuotaExhausted) {
			return ctx.Status(fiber.StatusPaymentRequired).
				JSON(ErrorResponse("Usage limit reached. Please add credits to continue."))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse("Something went wrong. Please try again."))
	}
}
