package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/rafasilcos/arcflowapp-sub007/pkg/briefing/resolver"
)

// ErrorHandlerMiddleware converts errors bubbling out of handlers into the
// standard response envelope. An unresolvable template triple is a client
// configuration problem, not a server fault.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		if errors.Is(err, resolver.ErrNoTemplate) {
			return ctx.Status(fiber.StatusUnprocessableEntity).
				JSON(ErrorResponse(fiber.StatusUnprocessableEntity, err.Error()))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}
}
