package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vbncursed/vkr/wallet-service/internal/http/dto"
	wsvc "github.com/vbncursed/vkr/wallet-service/internal/service"
)

// MakeFatJWT — токен с классом и объектом целиком
// @Summary     Выпуск fat JWT
// @Description Класс и объект кладутся в токен; наличие в каталоге проверяется без гарантий, расхождения попадают в warnings.
// @Tags        jwt
// @Accept      json
// @Produce     json
// @Param       request body dto.FatJWTRequest true "Fat JWT"
// @Success     201 {object} dto.TokenResponse
// @Failure     400 {object} APIError
// @Failure     503 {object} APIError
// @Router      /jwt/fat [post]
func MakeFatJWT(svc *wsvc.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.FatJWTRequest
		if err := bindJSON(c, &req); err != nil {
			return writeError(c, err)
		}
		v, err := req.Validate()
		if err != nil {
			return writeError(c, err)
		}
		res, err := svc.MakeFatJWT(c.Request().Context(), v, req.Class, req.Object)
		if err != nil {
			return writeError(c, err)
		}
		return writeJSON(c, http.StatusCreated, dto.FromIssueResult(res))
	}
}

// MakeObjectJWT — токен только с объектом
// @Summary     Выпуск object JWT
// @Tags        jwt
// @Accept      json
// @Produce     json
// @Param       request body dto.ObjectJWTRequest true "Object JWT"
// @Success     201 {object} dto.TokenResponse
// @Failure     400 {object} APIError
// @Failure     503 {object} APIError
// @Router      /jwt/object [post]
func MakeObjectJWT(svc *wsvc.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.ObjectJWTRequest
		if err := bindJSON(c, &req); err != nil {
			return writeError(c, err)
		}
		v, err := req.Validate()
		if err != nil {
			return writeError(c, err)
		}
		res, err := svc.MakeObjectJWT(c.Request().Context(), v, req.Object)
		if err != nil {
			return writeError(c, err)
		}
		return writeJSON(c, http.StatusCreated, dto.FromIssueResult(res))
	}
}

// MakeSkinnyJWT — токен с одним id объекта
// @Summary     Выпуск skinny JWT
// @Tags        jwt
// @Accept      json
// @Produce     json
// @Param       request body dto.SkinnyJWTRequest true "Skinny JWT"
// @Success     201 {object} dto.TokenResponse
// @Failure     400 {object} APIError
// @Failure     503 {object} APIError
// @Router      /jwt/skinny [post]
func MakeSkinnyJWT(svc *wsvc.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.SkinnyJWTRequest
		if err := bindJSON(c, &req); err != nil {
			return writeError(c, err)
		}
		v, err := req.Validate()
		if err != nil {
			return writeError(c, err)
		}
		res, err := svc.MakeSkinnyJWT(c.Request().Context(), v, req.ObjectID)
		if err != nil {
			return writeError(c, err)
		}
		return writeJSON(c, http.StatusCreated, dto.FromIssueResult(res))
	}
}
