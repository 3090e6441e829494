package models

import (
	"fmt"
	"time"
)

const (
	Audience  = "google"
	TokenType = "savetoandroidpay"
)

// TokenPayload — 12 слотов по вертикалям. Пустой слот в JSON отсутствует.
type TokenPayload struct {
	OfferClasses       []Record `json:"offerClasses,omitempty"`
	OfferObjects       []Record `json:"offerObjects,omitempty"`
	LoyaltyClasses     []Record `json:"loyaltyClasses,omitempty"`
	LoyaltyObjects     []Record `json:"loyaltyObjects,omitempty"`
	EventTicketClasses []Record `json:"eventTicketClasses,omitempty"`
	EventTicketObjects []Record `json:"eventTicketObjects,omitempty"`
	FlightClasses      []Record `json:"flightClasses,omitempty"`
	FlightObjects      []Record `json:"flightObjects,omitempty"`
	GiftCardClasses    []Record `json:"giftCardClasses,omitempty"`
	GiftCardObjects    []Record `json:"giftCardObjects,omitempty"`
	TransitClasses     []Record `json:"transitClasses,omitempty"`
	TransitObjects     []Record `json:"transitObjects,omitempty"`
}

// Add кладёт запись в слот по её вертикали и виду
func (p *TokenPayload) Add(r Record) error {
	slot := p.slot(r.Vertical, r.Kind)
	if slot == nil {
		return fmt.Errorf("payload slot %q/%q: %w", r.Vertical, r.Kind, ErrUnknownVertical)
	}
	*slot = append(*slot, r)
	return nil
}

// Records возвращает содержимое слота
func (p *TokenPayload) Records(v Vertical, k Kind) []Record {
	slot := p.slot(v, k)
	if slot == nil {
		return nil
	}
	return *slot
}

// Slots — имена непустых слотов
func (p *TokenPayload) Slots() []string {
	var out []string
	for _, v := range Verticals {
		for _, k := range []Kind{KindClass, KindObject} {
			if len(p.Records(v, k)) > 0 {
				out = append(out, v.Slot(k))
			}
		}
	}
	return out
}

func (p *TokenPayload) slot(v Vertical, k Kind) *[]Record {
	classes := k == KindClass
	if !classes && k != KindObject {
		return nil
	}
	switch v {
	case VerticalOffer:
		if classes {
			return &p.OfferClasses
		}
		return &p.OfferObjects
	case VerticalLoyalty:
		if classes {
			return &p.LoyaltyClasses
		}
		return &p.LoyaltyObjects
	case VerticalEventTicket:
		if classes {
			return &p.EventTicketClasses
		}
		return &p.EventTicketObjects
	case VerticalFlight:
		if classes {
			return &p.FlightClasses
		}
		return &p.FlightObjects
	case VerticalGiftCard:
		if classes {
			return &p.GiftCardClasses
		}
		return &p.GiftCardObjects
	case VerticalTransit:
		if classes {
			return &p.TransitClasses
		}
		return &p.TransitObjects
	}
	return nil
}

// Claims — тело save-to-wallet JWT
type Claims struct {
	Iss     string       `json:"iss"`
	Aud     string       `json:"aud"`
	Typ     string       `json:"typ"`
	Iat     int64        `json:"iat"`
	Origins []string     `json:"origins,omitempty"`
	Payload TokenPayload `json:"payload"`
}

func NewClaims(issuer string, issuedAt time.Time, origins []string) Claims {
	c := Claims{
		Iss: issuer,
		Aud: Audience,
		Typ: TokenType,
		Iat: issuedAt.UTC().Unix(),
	}
	if len(origins) > 0 {
		c.Origins = append([]string(nil), origins...)
	}
	return c
}
