package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vbncursed/vkr/wallet-service/internal/http/dto"
	"github.com/vbncursed/vkr/wallet-service/internal/models"
	wsvc "github.com/vbncursed/vkr/wallet-service/internal/service"
)

// MapError переводит доменные/DTO ошибки в HTTP статус и тело APIError
func MapError(err error) (int, APIError) {
	status, body := mapError(err)
	if stage := wsvc.StageOf(err); stage != "" {
		body.Details = map[string]string{"stage": string(stage)}
	}
	return status, body
}

func mapError(err error) (int, APIError) {
	var (
		remote *wsvc.RemoteError
		bind   *bindError
	)
	switch {
	case errors.Is(err, echo.ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType, APIError{Code: "unsupported_media_type", Message: "application/json expected"}
	case errors.As(err, &bind):
		return http.StatusBadRequest, APIError{Code: "invalid_request", Message: "malformed", Details: bind.err.Error()}

	// DTO validation
	case errors.Is(err, dto.ErrVerticalRequired),
		errors.Is(err, dto.ErrObjectIDRequired),
		errors.Is(err, dto.ErrIDRequired):
		return http.StatusBadRequest, APIError{Code: "invalid_request", Message: err.Error()}

	// Input errors
	case errors.Is(err, models.ErrUnknownVertical):
		return http.StatusBadRequest, APIError{Code: "unknown_vertical", Message: "unknown vertical"}
	case errors.Is(err, models.ErrUnknownKind):
		return http.StatusBadRequest, APIError{Code: "unknown_kind", Message: "kind must be class or object"}
	case errors.Is(err, wsvc.ErrInvalidRecord):
		return http.StatusBadRequest, APIError{Code: "invalid_record", Message: err.Error()}
	case errors.Is(err, wsvc.ErrUnsupportedKind):
		return http.StatusBadRequest, APIError{Code: "unsupported_kind", Message: "only classes can be updated"}

	// Catalog
	case errors.Is(err, wsvc.ErrNotFound):
		return http.StatusNotFound, APIError{Code: "not_found", Message: "resource not found"}
	case errors.Is(err, wsvc.ErrIssuanceNotFound):
		return http.StatusNotFound, APIError{Code: "not_found", Message: "issuance not found"}
	case errors.Is(err, wsvc.ErrConflict):
		return http.StatusConflict, APIError{Code: "conflict", Message: "resource already exists"}
	case errors.Is(err, wsvc.ErrNoCatalog):
		return http.StatusServiceUnavailable, APIError{Code: "catalog_not_configured", Message: "catalog not configured"}
	case errors.As(err, &remote):
		return http.StatusBadGateway, APIError{Code: "remote_error", Message: remote.Error()}

	// Signing
	case errors.Is(err, wsvc.ErrSigning):
		return http.StatusServiceUnavailable, APIError{Code: "signing_failed", Message: "token signing unavailable"}
	case errors.Is(err, wsvc.ErrEncoding):
		return http.StatusInternalServerError, APIError{Code: "encoding_failed", Message: "claims encoding failed"}
	}
	return http.StatusInternalServerError, APIError{Code: "internal", Message: "internal error"}
}

func writeError(c echo.Context, err error) error {
	status, body := MapError(err)
	c.Set(ctxKeyError, err)
	return writeJSON(c, status, body)
}
