package dto

import (
	"errors"
	"strings"

	"github.com/vbncursed/vkr/wallet-service/internal/models"
)

var (
	ErrVerticalRequired = errors.New("vertical required")
	ErrObjectIDRequired = errors.New("object_id required")
	ErrIDRequired       = errors.New("id required")
)

func parseVertical(s string) (models.Vertical, error) {
	if strings.TrimSpace(s) == "" {
		return "", ErrVerticalRequired
	}
	return models.ParseVertical(s)
}

// Validate возвращает вертикаль запроса
func (r FatJWTRequest) Validate() (models.Vertical, error) {
	return parseVertical(r.Vertical)
}

func (r ObjectJWTRequest) Validate() (models.Vertical, error) {
	return parseVertical(r.Vertical)
}

// Validate проверяет вертикаль и наличие object_id; формат id проверяет сервис
func (r SkinnyJWTRequest) Validate() (models.Vertical, error) {
	v, err := parseVertical(r.Vertical)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(r.ObjectID) == "" {
		return "", ErrObjectIDRequired
	}
	return v, nil
}

func (r RecordRequest) Validate() (models.Vertical, error) {
	v, err := parseVertical(r.Vertical)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(r.Record.ID) == "" {
		return "", ErrIDRequired
	}
	return v, nil
}

// ParseLookup разбирает параметры пути GET /catalog/:vertical/:kind/:id
func ParseLookup(vertical, kind, id string) (models.Vertical, models.Kind, string, error) {
	v, err := parseVertical(vertical)
	if err != nil {
		return "", "", "", err
	}
	k, err := models.ParseKind(kind)
	if err != nil {
		return "", "", "", err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "", "", ErrIDRequired
	}
	return v, k, id, nil
}
