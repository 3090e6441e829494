package util

import (
	"strings"
	"unicode"
)

// ResourceID собирает идентификатор вида "<issuerId>.<identifier>".
// Недопустимые символы идентификатора заменяются на "_".
func ResourceID(issuerID, identifier string) string {
	issuerID = strings.TrimSpace(issuerID)
	identifier = SanitizeIdentifier(identifier)
	if issuerID == "" || identifier == "" {
		return ""
	}
	return issuerID + "." + identifier
}

// SanitizeIdentifier оставляет буквы, цифры, '.', '_' и '-'
func SanitizeIdentifier(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// SplitResourceID разбирает "<issuerId>.<identifier>" по первой точке
func SplitResourceID(id string) (issuerID, identifier string, ok bool) {
	issuerID, identifier, ok = strings.Cut(id, ".")
	if !ok || issuerID == "" || identifier == "" {
		return "", "", false
	}
	return issuerID, identifier, true
}
