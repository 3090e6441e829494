package http

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/vbncursed/vkr/wallet-service/internal/config"
	"github.com/vbncursed/vkr/wallet-service/internal/crypto"
	"github.com/vbncursed/vkr/wallet-service/internal/http/dto"
	"github.com/vbncursed/vkr/wallet-service/internal/models"
	wsvc "github.com/vbncursed/vkr/wallet-service/internal/service"
)

var (
	keyOnce sync.Once
	testKey *rsa.PrivateKey
)

func signingKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	keyOnce.Do(func() {
		k, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			panic(err)
		}
		testKey = k
	})
	return testKey
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type memCatalog struct {
	mu      sync.Mutex
	records map[string]models.Record
	err     error
}

func catalogKey(v models.Vertical, k models.Kind, id string) string {
	return string(v) + "/" + string(k) + "/" + id
}

func (m *memCatalog) Get(_ context.Context, v models.Vertical, k models.Kind, id string) (models.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return models.Record{}, m.err
	}
	r, ok := m.records[catalogKey(v, k, id)]
	if !ok {
		return models.Record{}, wsvc.ErrNotFound
	}
	return r, nil
}

func (m *memCatalog) Insert(_ context.Context, r models.Record) (models.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return models.Record{}, m.err
	}
	key := catalogKey(r.Vertical, r.Kind, r.ID)
	if _, ok := m.records[key]; ok {
		return models.Record{}, wsvc.ErrConflict
	}
	m.records[key] = r
	return r, nil
}

func (m *memCatalog) Update(_ context.Context, r models.Record) (models.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := catalogKey(r.Vertical, r.Kind, r.ID)
	if _, ok := m.records[key]; !ok {
		return models.Record{}, wsvc.ErrNotFound
	}
	m.records[key] = r
	return r, nil
}

type memJournal struct {
	mu   sync.Mutex
	recs map[string]wsvc.IssuanceRecord
}

func (j *memJournal) RecordIssuance(_ context.Context, rec wsvc.IssuanceRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.recs[rec.ID] = rec
	return nil
}

func (j *memJournal) GetIssuance(_ context.Context, id string) (wsvc.IssuanceRecord, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	rec, ok := j.recs[id]
	if !ok {
		return wsvc.IssuanceRecord{}, wsvc.ErrIssuanceNotFound
	}
	return rec, nil
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type testEnv struct {
	handler http.Handler
	catalog *memCatalog
}

func newTestEnv(t *testing.T, withCatalog bool) testEnv {
	t.Helper()
	key := signingKey(t)
	id, err := crypto.NewIdentity("issuer@example.iam.gserviceaccount.com", key)
	require.NoError(t, err)
	logger, _ := logtest.NewNullLogger()

	cat := &memCatalog{records: map[string]models.Record{}}
	var catalog wsvc.Catalog
	if withCatalog {
		catalog = cat
	}
	svc := wsvc.New(catalog, &memJournal{recs: map[string]wsvc.IssuanceRecord{}},
		fixedClock{t: time.Unix(1700000000, 0)}, wsvc.JWTSigner{Identity: id},
		wsvc.Settings{Origins: []string{"https://shop.example"}, Logger: logger})

	e := Router(Deps{
		Service:   svc,
		Pool:      stubPinger{},
		PublicKey: id.PublicKey(),
		KeyID:     "kid-1",
		Logger:    logger,
	}, config.Config{})
	return testEnv{handler: e, catalog: cat}
}

func (env testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func parseToken(t *testing.T, token string) gojwt.MapClaims {
	t.Helper()
	claims := gojwt.MapClaims{}
	_, err := gojwt.NewParser(gojwt.WithValidMethods([]string{"RS256"})).ParseWithClaims(token, claims,
		func(*gojwt.Token) (any, error) { return &signingKey(t).PublicKey, nil })
	require.NoError(t, err)
	return claims
}

func TestHealthAndReady(t *testing.T) {
	env := newTestEnv(t, false)
	rec := env.do(t, http.MethodGet, "/api/v1/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	require.Equal(t, "ok", decodeBody[HealthzResponse](t, rec).Status)

	rec = env.do(t, http.MethodGet, "/api/v1/readyz", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzDBDown(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	e := Router(Deps{Pool: stubPinger{err: errors.New("connection refused")}, Logger: logger}, config.Config{})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/readyz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, "db_not_ready", decodeBody[APIError](t, rec).Code)
}

func TestSkinnyJWT(t *testing.T) {
	env := newTestEnv(t, false)
	rec := env.do(t, http.MethodPost, "/api/v1/jwt/skinny", `{"vertical":"LOYALTY","object_id":"338.member-1"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	resp := decodeBody[dto.TokenResponse](t, rec)
	require.Equal(t, "skinny", resp.Mode)
	require.Equal(t, "loyalty", resp.Vertical)
	require.Equal(t, "https://pay.google.com/gp/v/save/"+resp.Token, resp.SaveURL)
	require.Empty(t, resp.Warnings)

	claims := parseToken(t, resp.Token)
	require.Equal(t, "issuer@example.iam.gserviceaccount.com", claims["iss"])
	require.Equal(t, "google", claims["aud"])
	require.Equal(t, "savetoandroidpay", claims["typ"])
	require.Equal(t, []any{"https://shop.example"}, claims["origins"])
	require.Equal(t, map[string]any{
		"loyaltyObjects": []any{map[string]any{"id": "338.member-1"}},
	}, claims["payload"])

	rec = env.do(t, http.MethodGet, "/api/v1/issuances/"+resp.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	issued := decodeBody[dto.IssuanceResponse](t, rec)
	require.Equal(t, resp.Token, issued.Token)
	require.Equal(t, "338.member-1", issued.ObjectID)
}

func TestFatJWTWarnsOnClassMismatch(t *testing.T) {
	env := newTestEnv(t, true)
	body := `{
		"vertical": "offer",
		"class": {"id": "338.summer", "title": "Summer sale"},
		"object": {"id": "338.coupon-7", "classId": "338.winter", "state": "active"}
	}`
	rec := env.do(t, http.MethodPost, "/api/v1/jwt/fat", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	resp := decodeBody[dto.TokenResponse](t, rec)
	require.Equal(t, "fat", resp.Mode)
	require.Len(t, resp.Warnings, 1)
	require.Contains(t, resp.Warnings[0], "338.winter")

	payload := parseToken(t, resp.Token)["payload"].(map[string]any)
	require.Contains(t, payload, "offerClasses")
	require.Contains(t, payload, "offerObjects")
	require.Len(t, payload, 2)
}

func TestObjectJWTRequiresClassID(t *testing.T) {
	env := newTestEnv(t, false)
	rec := env.do(t, http.MethodPost, "/api/v1/jwt/object", `{"vertical":"flight","object":{"id":"338.bp-1"}}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	apiErr := decodeBody[APIError](t, rec)
	require.Equal(t, "invalid_record", apiErr.Code)
	require.Equal(t, map[string]any{"stage": "validate"}, apiErr.Details)
}

func TestRejectsBadRequests(t *testing.T) {
	env := newTestEnv(t, false)

	rec := env.do(t, http.MethodPost, "/api/v1/jwt/skinny", `{"vertical":"loyalty","object_id":"338.a","extra":1}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "invalid_request", decodeBody[APIError](t, rec).Code)

	rec = env.do(t, http.MethodPost, "/api/v1/jwt/skinny", `{"vertical":"boat","object_id":"338.a"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "unknown_vertical", decodeBody[APIError](t, rec).Code)

	rec = env.do(t, http.MethodPost, "/api/v1/jwt/skinny", `{"object_id":"338.a"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "invalid_request", decodeBody[APIError](t, rec).Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/jwt/skinny", strings.NewReader(`vertical=loyalty`))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	out := httptest.NewRecorder()
	env.handler.ServeHTTP(out, req)
	require.Equal(t, http.StatusUnsupportedMediaType, out.Code)
}

func TestCatalogEndpoints(t *testing.T) {
	env := newTestEnv(t, true)

	rec := env.do(t, http.MethodPost, "/api/v1/catalog/classes",
		`{"vertical":"giftCard","record":{"id":"338.gc","merchantName":"Cafe"}}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	out := decodeBody[dto.RecordResponse](t, rec)
	require.Equal(t, "class", out.Kind)
	require.Equal(t, "338.gc", out.Record.ID)

	rec = env.do(t, http.MethodPost, "/api/v1/catalog/classes",
		`{"vertical":"giftCard","record":{"id":"338.gc"}}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(t, http.MethodPut, "/api/v1/catalog/classes",
		`{"vertical":"giftCard","record":{"id":"338.gc","merchantName":"Tea House"}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/v1/catalog/giftCard/class/338.gc", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Tea House", decodeBody[dto.RecordResponse](t, rec).Record.Attrs["merchantName"])

	rec = env.do(t, http.MethodPost, "/api/v1/catalog/objects",
		`{"vertical":"giftCard","record":{"id":"338.card-1","classId":"338.gc","cardNumber":"42"}}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/v1/catalog/giftCard/object/338.missing", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/catalog/giftCard/widget/338.gc", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "unknown_kind", decodeBody[APIError](t, rec).Code)

	env.catalog.err = &wsvc.RemoteError{StatusCode: http.StatusForbidden, Message: "permission denied"}
	rec = env.do(t, http.MethodGet, "/api/v1/catalog/giftCard/class/338.gc", "")
	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.Equal(t, "remote_error", decodeBody[APIError](t, rec).Code)
}

func TestCatalogNotConfigured(t *testing.T) {
	env := newTestEnv(t, false)
	rec := env.do(t, http.MethodPost, "/api/v1/catalog/objects",
		`{"vertical":"transit","record":{"id":"338.ride","classId":"338.line"}}`)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, "catalog_not_configured", decodeBody[APIError](t, rec).Code)
}

func TestIssuanceNotFound(t *testing.T) {
	env := newTestEnv(t, false)
	rec := env.do(t, http.MethodGet, "/api/v1/issuances/unknown", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestJWKSExposesSigningKey(t *testing.T) {
	env := newTestEnv(t, false)
	rec := env.do(t, http.MethodGet, "/.well-known/keys", "")
	require.Equal(t, http.StatusOK, rec.Code)
	set := decodeBody[struct {
		Keys []map[string]string `json:"keys"`
	}](t, rec)
	require.Len(t, set.Keys, 1)
	require.Equal(t, "kid-1", set.Keys[0]["kid"])
	require.Equal(t, "RSA", set.Keys[0]["kty"])
}

func TestMapError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{wsvc.ErrNotFound, http.StatusNotFound, "not_found"},
		{wsvc.ErrConflict, http.StatusConflict, "conflict"},
		{&wsvc.StageError{Stage: wsvc.StageSign, Err: wsvc.ErrSigning}, http.StatusServiceUnavailable, "signing_failed"},
		{&wsvc.StageError{Stage: wsvc.StageEncode, Err: wsvc.ErrEncoding}, http.StatusInternalServerError, "encoding_failed"},
		{&wsvc.RemoteError{StatusCode: 500, Message: "boom"}, http.StatusBadGateway, "remote_error"},
		{wsvc.ErrUnsupportedKind, http.StatusBadRequest, "unsupported_kind"},
		{errors.New("db is gone"), http.StatusInternalServerError, "internal"},
	}
	for _, tc := range cases {
		status, body := MapError(tc.err)
		require.Equal(t, tc.status, status, tc.err.Error())
		require.Equal(t, tc.code, body.Code, tc.err.Error())
	}

	_, body := MapError(&wsvc.StageError{Stage: wsvc.StageJournal, Err: errors.New("insert failed")})
	require.Equal(t, map[string]string{"stage": "journal"}, body.Details)
}

func TestMapError_CatalogMissingID(t *testing.T) {
	status, body := MapError(fmt.Errorf("%w: resource id is required", wsvc.ErrInvalidRecord))
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "invalid_record", body.Code)
}
