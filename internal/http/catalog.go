package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vbncursed/vkr/wallet-service/internal/http/dto"
	wsvc "github.com/vbncursed/vkr/wallet-service/internal/service"
)

// RegisterClass — insert класса в каталог
// @Summary     Регистрация класса
// @Tags        catalog
// @Accept      json
// @Produce     json
// @Param       request body dto.RecordRequest true "Class"
// @Success     201 {object} dto.RecordResponse
// @Failure     400 {object} APIError
// @Failure     409 {object} APIError
// @Failure     502 {object} APIError
// @Router      /catalog/classes [post]
func RegisterClass(svc *wsvc.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.RecordRequest
		if err := bindJSON(c, &req); err != nil {
			return writeError(c, err)
		}
		v, err := req.Validate()
		if err != nil {
			return writeError(c, err)
		}
		out, err := svc.RegisterClass(c.Request().Context(), v, req.Record)
		if err != nil {
			return writeError(c, err)
		}
		return writeJSON(c, http.StatusCreated, dto.FromRecord(out))
	}
}

// UpdateClass — замена класса
// @Summary     Обновление класса
// @Tags        catalog
// @Accept      json
// @Produce     json
// @Param       request body dto.RecordRequest true "Class"
// @Success     200 {object} dto.RecordResponse
// @Failure     400 {object} APIError
// @Failure     404 {object} APIError
// @Failure     502 {object} APIError
// @Router      /catalog/classes [put]
func UpdateClass(svc *wsvc.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.RecordRequest
		if err := bindJSON(c, &req); err != nil {
			return writeError(c, err)
		}
		v, err := req.Validate()
		if err != nil {
			return writeError(c, err)
		}
		out, err := svc.UpdateClass(c.Request().Context(), v, req.Record)
		if err != nil {
			return writeError(c, err)
		}
		return writeJSON(c, http.StatusOK, dto.FromRecord(out))
	}
}

// RegisterObject — insert объекта; при 409 ответ зависит от CONFLICT_POLICY
// @Summary     Регистрация объекта
// @Tags        catalog
// @Accept      json
// @Produce     json
// @Param       request body dto.RecordRequest true "Object"
// @Success     201 {object} dto.RecordResponse
// @Failure     400 {object} APIError
// @Failure     409 {object} APIError
// @Failure     502 {object} APIError
// @Router      /catalog/objects [post]
func RegisterObject(svc *wsvc.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.RecordRequest
		if err := bindJSON(c, &req); err != nil {
			return writeError(c, err)
		}
		v, err := req.Validate()
		if err != nil {
			return writeError(c, err)
		}
		out, err := svc.RegisterObject(c.Request().Context(), v, req.Record)
		if err != nil {
			return writeError(c, err)
		}
		return writeJSON(c, http.StatusCreated, dto.FromRecord(out))
	}
}

// LookupRecord — чтение класса или объекта
// @Summary     Чтение из каталога
// @Tags        catalog
// @Produce     json
// @Param       vertical path string true "Vertical" Enums(offer, loyalty, eventTicket, flight, giftCard, transit)
// @Param       kind     path string true "Kind" Enums(class, object)
// @Param       id       path string true "Resource ID"
// @Success     200 {object} dto.RecordResponse
// @Failure     400 {object} APIError
// @Failure     404 {object} APIError
// @Failure     502 {object} APIError
// @Router      /catalog/{vertical}/{kind}/{id} [get]
func LookupRecord(svc *wsvc.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		v, k, id, err := dto.ParseLookup(c.Param("vertical"), c.Param("kind"), c.Param("id"))
		if err != nil {
			return writeError(c, err)
		}
		out, err := svc.Lookup(c.Request().Context(), v, k, id)
		if err != nil {
			return writeError(c, err)
		}
		return writeJSON(c, http.StatusOK, dto.FromRecord(out))
	}
}
