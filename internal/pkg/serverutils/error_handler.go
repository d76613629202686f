package serverutils

import (
	"errors"

	"notes-admin-be/internal/entity"
	"notes-admin-be/pkg/admin/changelist"

	"github.com/gofiber/fiber/v2"
)

// StatusFor maps an error returned by a handler to an HTTP status and the
// message shown to the client. Unknown errors are not exposed.
func StatusFor(err error) (int, string) {
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code, fiberErr.Message
	case errors.Is(err, entity.ErrNoteNotFound), errors.Is(err, entity.ErrUserNotFound):
		return fiber.StatusNotFound, err.Error()
	case entity.IsFieldError(err),
		errors.Is(err, ErrInvalidRequest),
		errors.Is(err, changelist.ErrInvalidFilter):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, entity.ErrUsernameTaken):
		return fiber.StatusConflict, entity.ErrUsernameTaken.Error()
	case errors.Is(err, entity.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, err.Error()
	case errors.Is(err, entity.ErrForbidden):
		return fiber.StatusForbidden, err.Error()
	}
	return fiber.StatusInternalServerError, "Internal server error"
}

// ErrorHandlerMiddleware turns errors returned further down the chain into
// the JSON error envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		code, message := StatusFor(err)
		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}
