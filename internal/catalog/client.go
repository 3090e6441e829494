// Package catalog is a REST client for the Google Wallet Objects API. One
// generic implementation serves every vertical and resource kind.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vbncursed/vkr/wallet-service/internal/models"
	"github.com/vbncursed/vkr/wallet-service/internal/service"
)

const (
	DefaultEndpoint = "https://walletobjects.googleapis.com"
	apiPrefix       = "/walletobjects/v1/"
)

// maxResponseBytes — предел тела ответа каталога
var maxResponseBytes int64 = 4 << 20

// ConflictPolicy — что делать, если insert объекта вернул 409
type ConflictPolicy string

const (
	// ConflictFetch возвращает уже сохранённый объект (create-if-absent).
	ConflictFetch ConflictPolicy = "fetch"
	// ConflictFail отдаёт service.ErrConflict вызывающему.
	ConflictFail ConflictPolicy = "fail"
)

func ParseConflictPolicy(s string) (ConflictPolicy, error) {
	switch ConflictPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", ConflictFetch:
		return ConflictFetch, nil
	case ConflictFail:
		return ConflictFail, nil
	}
	return "", fmt.Errorf("unknown conflict policy %q", s)
}

// Client реализует service.Catalog
type Client struct {
	endpoint   string
	httpClient *http.Client
	userAgent  string
	onConflict ConflictPolicy
	log        logrus.FieldLogger
}

type Option func(*Client)

// WithHTTPClient задаёт транспорт; в проде это OAuth2-клиент сервисного аккаунта.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

func WithConflictPolicy(p ConflictPolicy) Option {
	return func(c *Client) { c.onConflict = p }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Client) { c.log = l }
}

func New(endpoint string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		onConflict: ConflictFetch,
		log:        logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Get(ctx context.Context, v models.Vertical, k models.Kind, id string) (models.Record, error) {
	path, err := resourcePath(v, k)
	if err != nil {
		return models.Record{}, err
	}
	if id == "" {
		return models.Record{}, fmt.Errorf("%w: resource id is required", service.ErrInvalidRecord)
	}
	body, err := c.do(ctx, http.MethodGet, path+"/"+url.PathEscape(id), nil)
	if err != nil {
		return models.Record{}, err
	}
	return decodeRecord(body, v, k)
}

// Insert создаёт класс или объект. Конфликт по объекту разрешается согласно
// ConflictPolicy одинаково для всех вертикалей; конфликт по классу отдаётся как есть.
func (c *Client) Insert(ctx context.Context, r models.Record) (models.Record, error) {
	path, err := resourcePath(r.Vertical, r.Kind)
	if err != nil {
		return models.Record{}, err
	}
	body, err := c.do(ctx, http.MethodPost, path, r)
	if errors.Is(err, service.ErrConflict) && r.Kind == models.KindObject && c.onConflict == ConflictFetch {
		c.log.WithFields(logrus.Fields{"vertical": r.Vertical, "object_id": r.ID}).
			Info("object already exists, returning stored copy")
		return c.Get(ctx, r.Vertical, models.KindObject, r.ID)
	}
	if err != nil {
		return models.Record{}, err
	}
	return decodeRecord(body, r.Vertical, r.Kind)
}

// Update — PUT класса; объекты этим клиентом не обновляются
func (c *Client) Update(ctx context.Context, r models.Record) (models.Record, error) {
	if r.Kind != models.KindClass {
		return models.Record{}, fmt.Errorf("update %s: %w", r.Kind, service.ErrUnsupportedKind)
	}
	path, err := resourcePath(r.Vertical, r.Kind)
	if err != nil {
		return models.Record{}, err
	}
	if r.ID == "" {
		return models.Record{}, fmt.Errorf("%w: resource id is required", service.ErrInvalidRecord)
	}
	body, err := c.do(ctx, http.MethodPut, path+"/"+url.PathEscape(r.ID), r)
	if err != nil {
		return models.Record{}, err
	}
	return decodeRecord(body, r.Vertical, r.Kind)
}

func resourcePath(v models.Vertical, k models.Kind) (string, error) {
	if !v.Valid() {
		return "", fmt.Errorf("catalog resource %q: %w", v, models.ErrUnknownVertical)
	}
	if k != models.KindClass && k != models.KindObject {
		return "", fmt.Errorf("catalog resource %q: %w", k, models.ErrUnknownKind)
	}
	return apiPrefix + v.Resource(k), nil
}

func decodeRecord(body []byte, v models.Vertical, k models.Kind) (models.Record, error) {
	var r models.Record
	if err := json.Unmarshal(body, &r); err != nil {
		return models.Record{}, fmt.Errorf("decode %s: %w", v.Resource(k), err)
	}
	return r.With(v, k), nil
}

type apiErrorEnvelope struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	if c == nil || c.httpClient == nil {
		return nil, errors.New("catalog client is not configured")
	}
	var reader io.Reader = http.NoBody
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", service.ErrEncoding, err)
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &service.RemoteError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, &service.RemoteError{StatusCode: resp.StatusCode, Message: err.Error(), Err: err}
	}
	if int64(len(respBody)) > maxResponseBytes {
		return nil, &service.RemoteError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("response body exceeds %d bytes", maxResponseBytes),
		}
	}
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return respBody, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s %s: %w", method, path, service.ErrNotFound)
	case resp.StatusCode == http.StatusConflict:
		return nil, fmt.Errorf("%s %s: %w", method, path, service.ErrConflict)
	}
	return nil, &service.RemoteError{StatusCode: resp.StatusCode, Message: errorMessage(resp.StatusCode, respBody)}
}

func errorMessage(status int, body []byte) string {
	var env apiErrorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error.Message != "" {
		return env.Error.Message
	}
	if msg := strings.TrimSpace(string(body)); msg != "" && len(msg) < 512 {
		return msg
	}
	return http.StatusText(status)
}
