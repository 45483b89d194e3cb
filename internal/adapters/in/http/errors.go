package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"fulfillment/internal/core/application/workflow"
	"fulfillment/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

func statusFor(code workflow.Code) int {
	switch code {
	case workflow.CodeNotFound:
		return http.StatusNotFound
	case workflow.CodeInvalidState:
		return http.StatusConflict
	case workflow.CodeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusServiceUnavailable
	}
}

func writeError(ctx echo.Context, err error) error {
	wfErr := workflow.Classify(err)

	body := servers.Error{
		Code:      servers.ErrorCode(wfErr.Code),
		Message:   wfErr.Message,
		Retryable: wfErr.Retryable(),
	}
	if wfErr.Partial != nil {
		body.Partial = &servers.PartialFailure{
			Applied: wfErr.Partial.Applied,
			Failed:  wfErr.Partial.Failed,
		}
	}
	return ctx.JSON(statusFor(wfErr.Code), body)
}

func invalidBody(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{
		Code:    servers.ErrorCode(workflow.CodeValidation),
		Message: "invalid request body: " + bindMessage(err),
	})
}

func bindMessage(err error) string {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return fmt.Sprint(httpErr.Message)
	}
	return err.Error()
}

// NewHTTPErrorHandler renders errors that never reached a handler (unknown
// routes, malformed path parameters) in the same body as workflow errors.
func NewHTTPErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := err.Error()
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			status = httpErr.Code
			message = fmt.Sprint(httpErr.Message)
		}

		body := servers.Error{Message: message}
		switch {
		case status == http.StatusNotFound:
			body.Code = servers.ErrorCodeNotFound
		case status >= http.StatusInternalServerError:
			status = http.StatusServiceUnavailable
			body.Code = servers.ErrorCodeStoreError
			body.Retryable = true
			logger.ErrorContext(ctx.Request().Context(), "unhandled error", "error", err)
		default:
			body.Code = servers.ErrorCodeValidation
		}

		if writeErr := ctx.JSON(status, body); writeErr != nil {
			logger.ErrorContext(ctx.Request().Context(), "failed to write error response", "error", writeErr)
		}
	}
}
