package normalize

import (
	"reflect"
	"strings"
	"sync"
)

// Record gives uniform field access to an upstream record.
// A field is missing when it is absent, null or a nil pointer.
type Record interface {
	Lookup(field string) (any, bool)
}

// MapRecord is a decoded JSON object.
type MapRecord map[string]any

func (m MapRecord) Lookup(field string) (any, bool) {
	v, ok := m[field]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// StructRecord is a typed struct looked up by its json tags.
type StructRecord struct {
	v      reflect.Value
	fields map[string]int
}

func (s StructRecord) Lookup(field string) (any, bool) {
	idx, ok := s.fields[field]
	if !ok {
		return nil, false
	}
	f := s.v.Field(idx)
	switch f.Kind() {
	case reflect.Pointer, reflect.Interface:
		if f.IsNil() {
			return nil, false
		}
		f = f.Elem()
	case reflect.Slice, reflect.Map:
		if f.IsNil() {
			return nil, false
		}
	}
	return f.Interface(), true
}

type emptyRecord struct{}

func (emptyRecord) Lookup(string) (any, bool) { return nil, false }

// RecordOf resolves the shape of v once. Unknown shapes yield a record without fields.
func RecordOf(v any) Record {
	switch r := v.(type) {
	case nil:
		return emptyRecord{}
	case Record:
		return r
	case map[string]any:
		return MapRecord(r)
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return emptyRecord{}
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return emptyRecord{}
	}
	return StructRecord{v: rv, fields: jsonFields(rv.Type())}
}

var fieldCache sync.Map // reflect.Type -> map[string]int

func jsonFields(t reflect.Type) map[string]int {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.(map[string]int)
	}

	fields := make(map[string]int, t.NumField())
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := sf.Name
		if tag, ok := sf.Tag.Lookup("json"); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		fields[name] = i
	}
	fieldCache.Store(t, fields)
	return fields
}
