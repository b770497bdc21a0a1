package http

import (
	"errors"
	"log/slog"
	"net/http"

	"listing_editor/internal/clients/estateapi"
	"listing_editor/internal/lib/logger/sl"
	"listing_editor/internal/services/editor"
	"listing_editor/internal/services/validation"
	"listing_editor/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// writeError переводит ошибку сервиса в HTTP статус и тело ответа.
func (r *Routers) writeError(c echo.Context, log *slog.Logger, err error) error {
	status, body := mapError(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", slog.Int("status", status), sl.Err(err))
	} else {
		log.Warn("request rejected", slog.Int("status", status), sl.Err(err))
	}
	return c.JSON(status, body)
}

func mapError(err error) (int, response.ErrorResponse) {
	var (
		validationErr *editor.ValidationError
		domainErr     *editor.DomainError
		submitErr     *editor.SubmitError
	)

	switch {
	case errors.As(err, &validationErr):
		body := response.ErrorResponseWithDetails(response.CodeValidationFailed, "Please fix the highlighted fields")
		body.Fields = validationErr.Result.Errors
		return http.StatusUnprocessableEntity, body
	case errors.As(err, &domainErr):
		return http.StatusUnprocessableEntity, response.ErrorResponseWithDetails(response.CodeDomainError, domainErr.Message)
	case errors.As(err, &submitErr):
		return http.StatusBadGateway, response.ErrorResponseWithDetails(response.CodeSubmissionFailed, submitErr.Message)
	case errors.Is(err, editor.ErrSubmissionInFlight):
		return http.StatusConflict, response.ErrorResponseWithDetails(response.CodeSubmissionInFlight, "A submission is already in progress")
	case errors.Is(err, editor.ErrSessionNotFound):
		return http.StatusNotFound, response.ErrSessionNotFound
	case errors.Is(err, editor.ErrSessionClosed):
		return http.StatusGone, response.ErrorResponseWithDetails(response.CodeSessionClosed, "Editor session was closed")
	case errors.Is(err, editor.ErrImageNotFound):
		return http.StatusNotFound, response.ErrorResponseWithDetails(response.CodeImageNotFound, "Image not found on this listing")
	case errors.Is(err, editor.ErrNotAgent):
		return http.StatusForbidden, response.ErrAgentRequired
	case errors.Is(err, validation.ErrMalformedDraft):
		return http.StatusBadRequest, response.ErrorResponseWithDetails(response.CodeInvalidRequest, err.Error())
	case errors.Is(err, estateapi.ErrNotFound):
		return http.StatusNotFound, response.ErrorResponseWithDetails(response.CodePropertyNotFound, "Property not found")
	case errors.Is(err, estateapi.ErrUnauthorized):
		return http.StatusUnauthorized, response.ErrAuthenticationFailed
	}

	var apiErr *estateapi.APIError
	if errors.As(err, &apiErr) || errors.Is(err, estateapi.ErrMalformedResponse) {
		details := "Property service is unavailable"
		if apiErr != nil {
			details = apiErr.UserMessage()
		}
		return http.StatusBadGateway, response.ErrorResponseWithDetails(response.CodeUpstreamFailed, details)
	}

	return http.StatusInternalServerError, response.ErrInternal
}
