package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vbncursed/vkr/wallet-service/internal/models"
	"github.com/vbncursed/vkr/wallet-service/internal/service"
)

// Store — адаптер Postgres, реализующий service.IssuanceJournal
type Store struct {
	pool *pgxpool.Pool
}

func NewPool(ctx context.Context, url string) (*pgxpool.Pool, error) {
	return pgxpool.New(ctx, url)
}

func NewStore(pool *pgxpool.Pool) *Store { return &Store{pool: pool} }

// RecordIssuance — сохраняет выпущенный токен
func (s *Store) RecordIssuance(ctx context.Context, rec service.IssuanceRecord) error {
	warnings := rec.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	cmd := `INSERT INTO ` + tableIssuances + ` (` +
		colID + `, ` + colMode + `, ` + colVertical + `, ` + colClassID + `, ` + colObjectID + `, ` +
		colToken + `, ` + colWarnings + `, ` + colIssuedAt + `)
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	_, err := s.pool.Exec(ctx, cmd,
		rec.ID, string(rec.Mode), string(rec.Vertical), rec.ClassID, rec.ObjectID,
		rec.Token, warnings, rec.IssuedAt,
	)
	return err
}

// GetIssuance — запись по id или ErrIssuanceNotFound
func (s *Store) GetIssuance(ctx context.Context, id string) (service.IssuanceRecord, error) {
	if _, err := uuid.Parse(id); err != nil {
		return service.IssuanceRecord{}, service.ErrIssuanceNotFound
	}
	var (
		rec      service.IssuanceRecord
		mode     string
		vertical string
	)
	err := s.pool.QueryRow(ctx, `SELECT `+colID+`::text, `+colMode+`, `+colVertical+`, `+colClassID+`, `+colObjectID+`, `+
		colToken+`, `+colWarnings+`, `+colIssuedAt+` FROM `+tableIssuances+` WHERE `+colID+`=$1`, id).
		Scan(&rec.ID, &mode, &vertical, &rec.ClassID, &rec.ObjectID, &rec.Token, &rec.Warnings, &rec.IssuedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return service.IssuanceRecord{}, service.ErrIssuanceNotFound
		}
		return service.IssuanceRecord{}, err
	}
	rec.Mode = models.Mode(mode)
	rec.Vertical = models.Vertical(vertical)
	rec.IssuedAt = rec.IssuedAt.UTC()
	return rec, nil
}

// Ping — для readiness-пробы
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
