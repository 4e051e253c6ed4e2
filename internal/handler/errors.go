package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/zizouhuweidi/trivia/internal/query"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

var errorMessages = map[int]string{
	http.StatusBadRequest:          "Invalid request",
	http.StatusNotFound:            "Not found",
	http.StatusMethodNotAllowed:    "Method not allowed",
	http.StatusUnprocessableEntity: "Request could not be processed",
	http.StatusTooManyRequests:     "Too many requests",
	http.StatusInternalServerError: "Internal server error",
}

// statusFor maps a handler error onto a response status
func statusFor(err error) int {
	if kind, ok := query.KindOf(err); ok {
		switch kind {
		case query.KindInvalidRequest:
			return http.StatusBadRequest
		case query.KindNotFound:
			return http.StatusNotFound
		case query.KindUnprocessable:
			return http.StatusUnprocessableEntity
		}
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}
	return http.StatusInternalServerError
}

// NewErrorHandler returns an echo.HTTPErrorHandler that renders every failure
// as an ErrorResponse
func NewErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Error(err),
			)
		}

		message, ok := errorMessages[status]
		if !ok {
			message = http.StatusText(status)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, ErrorResponse{Success: false, Error: status, Message: message})
		}
		if err != nil {
			log.Error("failed to write error response", zap.Error(err))
		}
	}
}
