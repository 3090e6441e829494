package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/vbncursed/vkr/wallet-service/internal/http/dto"
	wsvc "github.com/vbncursed/vkr/wallet-service/internal/service"
)

// GetIssuance — запись журнала выпуска
// @Summary     Запись журнала выпуска
// @Tags        jwt
// @Produce     json
// @Param       id  path string true "Issuance ID"
// @Success     200 {object} dto.IssuanceResponse
// @Failure     404 {object} APIError
// @Router      /issuances/{id} [get]
func GetIssuance(svc *wsvc.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := strings.TrimSpace(c.Param("id"))
		if id == "" {
			return writeError(c, dto.ErrIDRequired)
		}
		rec, err := svc.GetIssuance(c.Request().Context(), id)
		if err != nil {
			return writeError(c, err)
		}
		return writeJSON(c, http.StatusOK, dto.FromIssuance(rec))
	}
}
