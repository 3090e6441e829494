package http

import (
	"crypto/rsa"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vbncursed/vkr/wallet-service/internal/http/dto"
)

// JWKS — публичный ключ, которым подписываются токены
// @Summary     JWKS набор ключей
// @Tags        keys
// @Produce     json
// @Success     200 {object} object
// @Router      /.well-known/keys [get]
func JWKS(pub *rsa.PublicKey, kid string) echo.HandlerFunc {
	set := dto.FromPublicKey(pub, kid)
	return func(c echo.Context) error {
		return writeJSON(c, http.StatusOK, set)
	}
}
