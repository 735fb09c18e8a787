// Package canonical turns JSON-like values into one deterministic string,
// independent of map iteration or insertion order. The output is the exact
// byte string that gets hashed for every signature in the score protocol,
// so client and server must produce identical bytes for identical logical
// payloads.
package canonical

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ErrCircularStructure is returned when a value re-enters a container that
// is still being serialized. A circular payload must never be signed, so
// this always propagates to the caller.
var ErrCircularStructure = errors.New("canonical: circular structure")

// Serialize renders v as a deterministic JSON string.
//
// Rules:
//   - Object keys (maps with string keys, struct fields) are ordered by
//     case-insensitive locale collation, not by byte value.
//   - Array/slice element order is preserved.
//   - Non-finite numbers serialize as null.
//   - Values with no JSON representation (funcs, channels, complex numbers)
//     serialize as null inside arrays but are omitted entirely as object
//     properties, matching conventional JSON stringification.
//   - Containers with no inherent order (maps with non-string keys)
//     serialize their pairs independently and sort the resulting strings,
//     so two containers with the same members always match.
func Serialize(v any) (string, error) {
	s := &serializer{
		visiting: make(map[uintptr]bool),
		coll:     collate.New(language.Und, collate.IgnoreCase),
	}
	out, ok, err := s.value(reflect.ValueOf(v))
	if err != nil {
		return "", err
	}
	if !ok {
		return "null", nil
	}
	return out, nil
}

type serializer struct {
	// visiting holds the identities of containers currently on the
	// serialization stack, for cycle detection.
	visiting map[uintptr]bool
	coll     *collate.Collator
}

// value serializes rv. The second return is false when rv has no JSON
// representation at all; the caller decides between null and omission.
func (s *serializer) value(rv reflect.Value) (string, bool, error) {
	if !rv.IsValid() {
		return "null", true, nil
	}

	switch rv.Kind() {
	case reflect.Interface, reflect.Pointer:
		if rv.IsNil() {
			return "null", true, nil
		}
		if rv.Kind() == reflect.Pointer {
			id := rv.Pointer()
			if s.visiting[id] {
				return "", false, ErrCircularStructure
			}
			s.visiting[id] = true
			defer delete(s.visiting, id)
		}
		return s.value(rv.Elem())

	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true, nil

	case reflect.String:
		quoted, err := json.Marshal(rv.String())
		if err != nil {
			return "", false, err
		}
		return string(quoted), true, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true, nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true, nil

	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "null", true, nil
		}
		num, err := json.Marshal(f)
		if err != nil {
			return "", false, err
		}
		return string(num), true, nil

	case reflect.Slice, reflect.Array:
		return s.array(rv)

	case reflect.Map:
		return s.mapValue(rv)

	case reflect.Struct:
		return s.structValue(rv)

	default:
		// func, chan, complex, uintptr, unsafe.Pointer: not representable.
		return "", false, nil
	}
}

func (s *serializer) array(rv reflect.Value) (string, bool, error) {
	if rv.Kind() == reflect.Slice {
		if rv.IsNil() {
			return "null", true, nil
		}
		id := rv.Pointer()
		if s.visiting[id] {
			return "", false, ErrCircularStructure
		}
		s.visiting[id] = true
		defer delete(s.visiting, id)
	}

	parts := make([]string, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out, ok, err := s.value(rv.Index(i))
		if err != nil {
			return "", false, err
		}
		if !ok {
			// Unrepresentable array elements hold their slot as null.
			out = "null"
		}
		parts = append(parts, out)
	}
	return "[" + strings.Join(parts, ",") + "]", true, nil
}

func (s *serializer) mapValue(rv reflect.Value) (string, bool, error) {
	if rv.IsNil() {
		return "null", true, nil
	}
	id := rv.Pointer()
	if s.visiting[id] {
		return "", false, ErrCircularStructure
	}
	s.visiting[id] = true
	defer delete(s.visiting, id)

	if rv.Type().Key().Kind() == reflect.String {
		pairs := make([]keyedPair, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out, ok, err := s.value(iter.Value())
			if err != nil {
				return "", false, err
			}
			if !ok {
				// Unrepresentable values vanish as object properties.
				continue
			}
			pairs = append(pairs, keyedPair{key: iter.Key().String(), value: out})
		}
		return s.object(pairs), true, nil
	}

	// Non-string keys mean the container has no JSON object form and no
	// inherent order: serialize each pair independently and sort the
	// rendered strings so membership alone decides the output.
	rendered := make([]string, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		key, ok, err := s.value(iter.Key())
		if err != nil {
			return "", false, err
		}
		if !ok {
			continue
		}
		val, ok, err := s.value(iter.Value())
		if err != nil {
			return "", false, err
		}
		if !ok {
			continue
		}
		rendered = append(rendered, key+":"+val)
	}
	sort.Strings(rendered)
	return "{" + strings.Join(rendered, ",") + "}", true, nil
}

func (s *serializer) structValue(rv reflect.Value) (string, bool, error) {
	t := rv.Type()
	pairs := make([]keyedPair, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Name
		if tag, ok := field.Tag.Lookup("json"); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		out, ok, err := s.value(rv.Field(i))
		if err != nil {
			return "", false, err
		}
		if !ok {
			continue
		}
		pairs = append(pairs, keyedPair{key: name, value: out})
	}
	return s.object(pairs), true, nil
}

type keyedPair struct {
	key   string
	value string
}

// object emits pairs as a JSON object with collation-ordered keys. Keys that
// compare equal under case folding fall back to byte order so the result
// stays deterministic.
func (s *serializer) object(pairs []keyedPair) string {
	sort.SliceStable(pairs, func(i, j int) bool {
		switch s.coll.CompareString(pairs[i].key, pairs[j].key) {
		case -1:
			return true
		case 1:
			return false
		}
		return pairs[i].key < pairs[j].key
	})

	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		quoted, err := json.Marshal(p.key)
		if err != nil {
			// Key is a Go string; Marshal cannot fail on it.
			continue
		}
		parts = append(parts, string(quoted)+":"+p.value)
	}
	return "{" + strings.Join(parts, ",") + "}"
}
