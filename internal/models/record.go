package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

const (
	fieldID      = "id"
	fieldClassID = "classId"
)

// Record — класс или объект пропуска в представлении каталога.
// ID и ClassID типизированы, всё остальное лежит в Attrs как есть.
type Record struct {
	Vertical Vertical
	Kind     Kind
	ID       string
	ClassID  string
	Attrs    map[string]any
}

// ObjectRef — минимальный объект, содержащий только id
func ObjectRef(v Vertical, id string) Record {
	return Record{Vertical: v, Kind: KindObject, ID: id}
}

// MarshalJSON пишет плоский объект без пустых значений: null, пустые
// массивы и объекты выбрасываются на любой глубине.
func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Attrs)+2)
	for k, v := range r.Attrs {
		if k == fieldID || k == fieldClassID {
			continue
		}
		if v, ok := prune(v); ok {
			out[k] = v
		}
	}
	if r.ID != "" {
		out[fieldID] = r.ID
	}
	if r.ClassID != "" && r.Kind != KindClass {
		out[fieldClassID] = r.ClassID
	}
	return json.Marshal(out)
}

// UnmarshalJSON заполняет ID, ClassID и Attrs. Vertical и Kind не трогает:
// их знает вызывающий.
func (r *Record) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("record: expected json object")
	}
	id, err := stringField(raw, fieldID)
	if err != nil {
		return err
	}
	classID, err := stringField(raw, fieldClassID)
	if err != nil {
		return err
	}
	delete(raw, fieldID)
	delete(raw, fieldClassID)
	r.ID = id
	r.ClassID = classID
	r.Attrs = nil
	if len(raw) > 0 {
		r.Attrs = raw
	}
	return nil
}

func stringField(raw map[string]any, key string) (string, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("record: %s must be a string", key)
	}
	return s, nil
}

// With returns a copy tagged with vertical and kind.
func (r Record) With(v Vertical, k Kind) Record {
	r.Vertical = v
	r.Kind = k
	return r
}

// prune возвращает значение без пустых вложений; ok=false — значение пустое целиком
func prune(v any) (any, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			if e, ok := prune(e); ok {
				out[k] = e
			}
		}
		return out, len(out) > 0
	case []any:
		out := make([]any, 0, len(t))
		for _, e := range t {
			if e, ok := prune(e); ok {
				out = append(out, e)
			}
		}
		return out, len(out) > 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		if rv.IsNil() || rv.Len() == 0 {
			return nil, false
		}
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, false
		}
	}
	return v, true
}
