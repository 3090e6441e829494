// Package validate checks pass records against embedded JSON Schemas before
// they are embedded into a token or sent to the catalog.
package validate

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/kaptinlin/jsonschema"

	"github.com/vbncursed/vkr/wallet-service/internal/models"
)

var ErrInvalidRecord = errors.New("invalid_record")

//go:embed schemas/*.json
var schemaFiles embed.FS

const (
	schemaClass       = "schemas/class.json"
	schemaObject      = "schemas/object.json"
	schemaObjectBound = "schemas/object_bound.json"
)

var (
	loadOnce sync.Once
	loadErr  error
	schemas  map[string]*jsonschema.Schema
)

func load() error {
	loadOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.AssertFormat = true
		schemas = make(map[string]*jsonschema.Schema, 3)
		for _, name := range []string{schemaClass, schemaObject, schemaObjectBound} {
			data, err := schemaFiles.ReadFile(name)
			if err != nil {
				loadErr = fmt.Errorf("read schema %s: %w", name, err)
				return
			}
			s, err := compiler.Compile(data)
			if err != nil {
				loadErr = fmt.Errorf("compile schema %s: %w", name, err)
				return
			}
			schemas[name] = s
		}
	})
	return loadErr
}

// Class проверяет класс: обязательный id вида <issuerId>.<identifier>
func Class(r models.Record) error {
	return check(schemaClass, r)
}

// Object проверяет объект. bound=true требует classId.
func Object(r models.Record, bound bool) error {
	if bound {
		return check(schemaObjectBound, r)
	}
	return check(schemaObject, r)
}

// ObjectID проверяет голый идентификатор объекта (skinny-токен)
func ObjectID(id string) error {
	return check(schemaObject, models.Record{Kind: models.KindObject, ID: id})
}

func check(name string, r models.Record) error {
	if err := load(); err != nil {
		return err
	}
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	result := schemas[name].ValidateJSON(data)
	if result.IsValid() {
		return nil
	}
	return fmt.Errorf("%w: %s %q: %v", ErrInvalidRecord, r.Kind, r.ID, result.Errors)
}
