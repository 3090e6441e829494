package dto

import (
	"crypto/rsa"

	jose "github.com/go-jose/go-jose/v3"
)

// FromPublicKey — JWKS с ключом, которым подписываются токены
func FromPublicKey(pub *rsa.PublicKey, kid string) jose.JSONWebKeySet {
	out := jose.JSONWebKeySet{Keys: []jose.JSONWebKey{}}
	if pub == nil {
		return out
	}
	out.Keys = append(out.Keys, jose.JSONWebKey{
		Key:       pub,
		KeyID:     kid,
		Algorithm: "RS256",
		Use:       "sig",
	})
	return out
}
