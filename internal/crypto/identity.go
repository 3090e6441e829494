package crypto

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"net/http"
	"os"

	gojwt "github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
)

// WalletScope — единственный scope, нужный клиенту каталога
const WalletScope = "https://www.googleapis.com/auth/wallet_object.issuer"

// Identity — принципал (email сервисного аккаунта) и его RSA-ключ
type Identity struct {
	Email string
	Key   *rsa.PrivateKey
}

func NewIdentity(email string, key *rsa.PrivateKey) (Identity, error) {
	if key == nil {
		return Identity{}, fmt.Errorf("%w: no private key", ErrSigning)
	}
	if err := key.Validate(); err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrSigning, err)
	}
	return Identity{Email: email, Key: key}, nil
}

func (i Identity) PublicKey() *rsa.PublicKey {
	if i.Key == nil {
		return nil
	}
	return &i.Key.PublicKey
}

// ServiceAccount — ключ сервисного аккаунта Google: подпись JWT и OAuth2 для каталога
type ServiceAccount struct {
	Identity Identity
	KeyID    string
	oauth    *jwt.Config
}

// LoadServiceAccount читает JSON-ключ сервисного аккаунта с диска.
// emailOverride, если задан, заменяет client_email из файла.
func LoadServiceAccount(path, emailOverride string) (*ServiceAccount, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read service account: %w", ErrSigning, err)
	}
	return ParseServiceAccount(data, emailOverride)
}

func ParseServiceAccount(data []byte, emailOverride string) (*ServiceAccount, error) {
	cfg, err := google.JWTConfigFromJSON(data, WalletScope)
	if err != nil {
		return nil, fmt.Errorf("%w: service account json: %w", ErrSigning, err)
	}
	key, err := gojwt.ParseRSAPrivateKeyFromPEM(cfg.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("%w: service account key: %w", ErrSigning, err)
	}
	email := cfg.Email
	if emailOverride != "" {
		email = emailOverride
	}
	id, err := NewIdentity(email, key)
	if err != nil {
		return nil, err
	}
	return &ServiceAccount{Identity: id, KeyID: cfg.PrivateKeyID, oauth: cfg}, nil
}

// HTTPClient возвращает клиент, подставляющий Bearer-токен со scope WalletScope.
func (sa *ServiceAccount) HTTPClient(ctx context.Context) *http.Client {
	return sa.oauth.Client(ctx)
}

// EncodeServiceAccount пишет ключ в формате JSON-файла сервисного аккаунта Google.
// Нужен для локальных ключей: подпись работает, OAuth2 к каталогу — нет.
func EncodeServiceAccount(id Identity, keyID, tokenURI string) ([]byte, error) {
	if id.Key == nil {
		return nil, fmt.Errorf("%w: no private key", ErrSigning)
	}
	der, err := x509.MarshalPKCS8PrivateKey(id.Key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSigning, err)
	}
	if tokenURI == "" {
		tokenURI = google.JWTTokenURL
	}
	return json.MarshalIndent(map[string]string{
		"type":           "service_account",
		"private_key_id": keyID,
		"private_key":    string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})),
		"client_email":   id.Email,
		"token_uri":      tokenURI,
	}, "", "  ")
}
