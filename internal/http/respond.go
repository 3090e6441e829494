package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxKeyError — исходная ошибка обработчика для логгера запросов
const ctxKeyError = "handler_error"

type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func writeJSON(c echo.Context, status int, v any) error {
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return c.JSON(status, v)
}

func DefaultHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if he, ok := err.(*echo.HTTPError); ok {
		_ = writeJSON(c, he.Code, APIError{
			Code:    http.StatusText(he.Code),
			Message: messageOf(he),
		})
		return
	}
	c.Set(ctxKeyError, err)
	_ = writeJSON(c, http.StatusInternalServerError, APIError{Code: "internal", Message: "internal error"})
}

func messageOf(he *echo.HTTPError) string {
	if s, ok := he.Message.(string); ok {
		return s
	}
	return http.StatusText(he.Code)
}
