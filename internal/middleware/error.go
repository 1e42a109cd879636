package middleware

import (
	"errors"
	"net/http"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
	"quiz-forge/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler is the centralized fiber error handler. Every failure is
// rendered as {"erro": message}; diagnostics stay in the logs.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		logger := logger.Get()

		// Handle domain errors
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			statusCode := mapDomainErrorToHTTPStatus(domainErr)
			fields := []zap.Field{
				zap.String("code", string(domainErr.Code)),
				zap.String("stage", domainErr.Stage),
				zap.Int("status", statusCode),
				zap.String("path", c.Path()),
			}
			if statusCode >= http.StatusInternalServerError {
				logger.Error("Domain error occurred", append(fields, zap.Error(domainErr.Err))...)
			} else {
				logger.Debug("Request rejected", fields...)
			}

			message := domainErr.Message
			if message == "" {
				message = domain.MsgInternal
			}
			return c.Status(statusCode).JSON(dto.ErrorResponse{Erro: message})
		}

		// Handle fiber errors
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			logger.Warn("Fiber error occurred",
				zap.Int("code", fiberErr.Code),
				zap.String("message", fiberErr.Message),
				zap.String("path", c.Path()),
			)
			return c.Status(fiberErr.Code).JSON(dto.ErrorResponse{Erro: fiberErrorMessage(fiberErr)})
		}

		// Handle unknown errors
		logger.Error("Unknown error occurred",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(http.StatusInternalServerError).JSON(dto.ErrorResponse{Erro: domain.MsgInternal})
	}
}

// mapDomainErrorToHTTPStatus maps domain errors to HTTP status codes
func mapDomainErrorToHTTPStatus(err *domain.DomainError) int {
	switch err.Code {
	case domain.ErrUnauthorized:
		return http.StatusUnauthorized
	case domain.ErrMissingFile, domain.ErrMissingInstruction, domain.ErrUnsupportedFileType, domain.ErrMalformedDocument:
		return http.StatusBadRequest
	case domain.ErrFileTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

func fiberErrorMessage(err *fiber.Error) string {
	switch err.Code {
	case fiber.StatusRequestEntityTooLarge:
		return domain.MsgFileTooLarge
	case fiber.StatusNotFound, fiber.StatusMethodNotAllowed:
		return err.Message
	}
	if err.Code >= http.StatusInternalServerError {
		return domain.MsgInternal
	}
	return err.Message
}
