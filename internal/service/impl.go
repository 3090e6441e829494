package service

import (
	"time"

	"github.com/vbncursed/vkr/wallet-service/internal/crypto"
	"github.com/vbncursed/vkr/wallet-service/internal/models"
)

// RealClock — продовая реализация Clock
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// JWTSigner — адаптер Signer поверх internal/crypto
type JWTSigner struct {
	Identity crypto.Identity
}

func (s JWTSigner) Issuer() string { return s.Identity.Email }

func (s JWTSigner) SignJWT(claims models.Claims) (string, error) {
	return crypto.SignJWT(claims, s.Identity)
}
