package service

import (
	"context"
	"time"

	"github.com/vbncursed/vkr/wallet-service/internal/models"
)

// Clock — абстракция времени для тестируемости
type Clock interface {
	Now() time.Time
}

// Signer — абстракция подписи JWT
type Signer interface {
	Issuer() string
	SignJWT(claims models.Claims) (token string, err error)
}

// Catalog — удалённый каталог классов и объектов.
// Get возвращает ErrNotFound, Insert — ErrConflict, прочее — *RemoteError.
type Catalog interface {
	Get(ctx context.Context, v models.Vertical, k models.Kind, id string) (models.Record, error)
	Insert(ctx context.Context, r models.Record) (models.Record, error)
	Update(ctx context.Context, r models.Record) (models.Record, error)
}

// IssuanceJournal — журнал выпущенных токенов
type IssuanceJournal interface {
	RecordIssuance(ctx context.Context, rec IssuanceRecord) error
	GetIssuance(ctx context.Context, id string) (IssuanceRecord, error)
}

// IssuanceRecord — запись журнала (write-модель)
type IssuanceRecord struct {
	ID       string
	Mode     models.Mode
	Vertical models.Vertical
	ClassID  string
	ObjectID string
	Token    string
	Warnings []string
	IssuedAt time.Time
}

// IssueResult — результат любого из режимов выпуска
type IssueResult struct {
	ID       string
	Mode     models.Mode
	Vertical models.Vertical
	Token    string
	SaveURL  string
	Warnings []string
	IssuedAt time.Time
}
