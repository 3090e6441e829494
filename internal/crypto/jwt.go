package crypto

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strconv"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/gowebpki/jcs"
)

var (
	ErrEncoding = errors.New("encoding_failed")
	ErrSigning  = errors.New("signing_failed")
)

// JWTHeader — фиксированный заголовок RS256
type JWTHeader struct {
	Alg string `json:"alg"`
	Typ string `json:"typ"`
}

var rs256Header = JWTHeader{Alg: "RS256", Typ: "JWT"}

// CanonicalJSON сериализует v и приводит результат к RFC 8785 (JCS).
// JCS пишет числа как IEEE 754 double, поэтому число, которое в double
// не представимо (например, целое больше 2^53), даёт ErrEncoding.
func CanonicalJSON(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	if err := checkNumbers(raw); err != nil {
		return nil, err
	}
	out, err := jcs.Transform(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return out, nil
}

// SignJWT создает compact JWT с alg RS256: header.payload.signature, base64url без паддинга
func SignJWT(claims any, id Identity) (string, error) {
	hdrB, err := CanonicalJSON(rs256Header)
	if err != nil {
		return "", err
	}
	payloadB, err := CanonicalJSON(claims)
	if err != nil {
		return "", err
	}
	signingInput := base64.RawURLEncoding.EncodeToString(hdrB) + "." + base64.RawURLEncoding.EncodeToString(payloadB)
	if id.Key == nil {
		return "", fmt.Errorf("%w: no private key", ErrSigning)
	}
	// PKCS#1 v1.5 is deterministic, so equal input gives an equal token
	sig, err := gojwt.SigningMethodRS256.Sign(signingInput, id.Key)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSigning, err)
	}
	return signingInput + "." + base64.RawURLEncoding.EncodeToString(sig), nil
}

func checkNumbers(raw []byte) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return walkNumbers(doc)
}

func walkNumbers(v any) error {
	switch t := v.(type) {
	case map[string]any:
		for _, e := range t {
			if err := walkNumbers(e); err != nil {
				return err
			}
		}
	case []any:
		for _, e := range t {
			if err := walkNumbers(e); err != nil {
				return err
			}
		}
	case json.Number:
		if !fitsDouble(t.String()) {
			return fmt.Errorf("%w: number %s is not representable as a double", ErrEncoding, t)
		}
	}
	return nil
}

// fitsDouble — кратчайшая запись double совпадает с исходным числом по значению
func fitsDouble(s string) bool {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return false
	}
	want, ok := new(big.Rat).SetString(s)
	if !ok {
		return false
	}
	got, ok := new(big.Rat).SetString(strconv.FormatFloat(f, 'g', -1, 64))
	return ok && want.Cmp(got) == 0
}
