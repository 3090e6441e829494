package dto

import (
	"time"

	"github.com/vbncursed/vkr/wallet-service/internal/models"
)

// FatJWTRequest — класс и объект целиком
type FatJWTRequest struct {
	Vertical string        `json:"vertical" example:"loyalty"`
	Class    models.Record `json:"class" swaggertype:"object"`
	Object   models.Record `json:"object" swaggertype:"object"`
}

type ObjectJWTRequest struct {
	Vertical string        `json:"vertical" example:"loyalty"`
	Object   models.Record `json:"object" swaggertype:"object"`
}

type SkinnyJWTRequest struct {
	Vertical string `json:"vertical" example:"loyalty"`
	ObjectID string `json:"object_id" example:"3388000000012345678.member-42"`
}

type TokenResponse struct {
	ID       string    `json:"id"`
	Mode     string    `json:"mode"`
	Vertical string    `json:"vertical"`
	Token    string    `json:"token"`
	SaveURL  string    `json:"save_url"`
	Warnings []string  `json:"warnings,omitempty"`
	IssuedAt time.Time `json:"issued_at"`
}

// RecordRequest — класс или объект для каталога
type RecordRequest struct {
	Vertical string        `json:"vertical" example:"loyalty"`
	Record   models.Record `json:"record" swaggertype:"object"`
}

type RecordResponse struct {
	Vertical string        `json:"vertical"`
	Kind     string        `json:"kind"`
	Record   models.Record `json:"record" swaggertype:"object"`
}

type IssuanceResponse struct {
	ID       string    `json:"id"`
	Mode     string    `json:"mode"`
	Vertical string    `json:"vertical"`
	ClassID  string    `json:"class_id,omitempty"`
	ObjectID string    `json:"object_id"`
	Token    string    `json:"token"`
	SaveURL  string    `json:"save_url"`
	Warnings []string  `json:"warnings,omitempty"`
	IssuedAt time.Time `json:"issued_at"`
}
