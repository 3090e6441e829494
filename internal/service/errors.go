package service

import (
	"errors"
	"fmt"

	"github.com/vbncursed/vkr/wallet-service/internal/crypto"
	"github.com/vbncursed/vkr/wallet-service/internal/models"
	"github.com/vbncursed/vkr/wallet-service/internal/validate"
)

var (
	ErrSigning          = crypto.ErrSigning
	ErrEncoding         = crypto.ErrEncoding
	ErrInvalidRecord    = validate.ErrInvalidRecord
	ErrUnknownVertical  = models.ErrUnknownVertical
	ErrNotFound         = errors.New("not_found")
	ErrConflict         = errors.New("conflict")
	ErrUnsupportedKind  = errors.New("unsupported_kind")
	ErrNoCatalog        = errors.New("catalog_not_configured")
	ErrIssuanceNotFound = errors.New("issuance_not_found")
)

// RemoteError — каталог ответил не 2xx (и не 404/409) либо запрос не дошёл
type RemoteError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *RemoteError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("catalog request failed: %s", e.Message)
	}
	return fmt.Sprintf("catalog error %d: %s", e.StatusCode, e.Message)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// Stage — этап выпуска, на котором произошла ошибка
type Stage string

const (
	StageValidate Stage = "validate"
	StageRemote   Stage = "remote"
	StageEncode   Stage = "encode"
	StageSign     Stage = "sign"
	StageJournal  Stage = "journal"
)

type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string { return string(e.Stage) + ": " + e.Err.Error() }

func (e *StageError) Unwrap() error { return e.Err }

// StageOf возвращает этап или "" для ошибок вне выпуска
func StageOf(err error) Stage {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}

func stageErr(stage Stage, err error) error {
	return &StageError{Stage: stage, Err: err}
}
