package dto

import (
	"github.com/vbncursed/vkr/wallet-service/internal/models"
	"github.com/vbncursed/vkr/wallet-service/internal/service"
)

// FromIssueResult формирует ответ по результату выпуска
func FromIssueResult(res service.IssueResult) TokenResponse {
	return TokenResponse{
		ID:       res.ID,
		Mode:     string(res.Mode),
		Vertical: string(res.Vertical),
		Token:    res.Token,
		SaveURL:  res.SaveURL,
		Warnings: res.Warnings,
		IssuedAt: res.IssuedAt,
	}
}

func FromRecord(r models.Record) RecordResponse {
	return RecordResponse{Vertical: string(r.Vertical), Kind: string(r.Kind), Record: r}
}

func FromIssuance(rec service.IssuanceRecord) IssuanceResponse {
	return IssuanceResponse{
		ID:       rec.ID,
		Mode:     string(rec.Mode),
		Vertical: string(rec.Vertical),
		ClassID:  rec.ClassID,
		ObjectID: rec.ObjectID,
		Token:    rec.Token,
		SaveURL:  service.SaveURL(rec.Token),
		Warnings: rec.Warnings,
		IssuedAt: rec.IssuedAt,
	}
}
