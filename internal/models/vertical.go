package models

import (
	"errors"
	"strings"
)

// Vertical — категория пропуска
type Vertical string

const (
	VerticalOffer       Vertical = "offer"
	VerticalLoyalty     Vertical = "loyalty"
	VerticalEventTicket Vertical = "eventTicket"
	VerticalFlight      Vertical = "flight"
	VerticalGiftCard    Vertical = "giftCard"
	VerticalTransit     Vertical = "transit"
)

// Verticals in payload slot order.
var Verticals = []Vertical{
	VerticalOffer,
	VerticalLoyalty,
	VerticalEventTicket,
	VerticalFlight,
	VerticalGiftCard,
	VerticalTransit,
}

// Kind — класс (шаблон) или объект (экземпляр)
type Kind string

const (
	KindClass  Kind = "class"
	KindObject Kind = "object"
)

var (
	ErrUnknownVertical = errors.New("unknown_vertical")
	ErrUnknownKind     = errors.New("unknown_kind")
)

// ParseVertical принимает "eventTicket", "EVENTTICKET", "event_ticket" и т.п.
func ParseVertical(s string) (Vertical, error) {
	norm := strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.TrimSpace(s))
	for _, v := range Verticals {
		if strings.EqualFold(norm, string(v)) {
			return v, nil
		}
	}
	return "", ErrUnknownVertical
}

func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "class", "classes":
		return KindClass, nil
	case "object", "objects":
		return KindObject, nil
	}
	return "", ErrUnknownKind
}

func (v Vertical) Valid() bool {
	for _, known := range Verticals {
		if v == known {
			return true
		}
	}
	return false
}

// Resource — имя REST-ресурса каталога, например "loyaltyClass"
func (v Vertical) Resource(k Kind) string {
	if k == KindClass {
		return string(v) + "Class"
	}
	return string(v) + "Object"
}

// Slot — имя поля payload, например "loyaltyObjects"
func (v Vertical) Slot(k Kind) string {
	if k == KindClass {
		return string(v) + "Classes"
	}
	return string(v) + "Objects"
}
