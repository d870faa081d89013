// Package render generates the configuration files kitium-lint writes.
//
// Every JSON-like value embedded in generated source goes through Value, so
// output is stable: object keys are sorted and strings are single-quoted.
// Anything Value prints can be read back by legacy.ParseLiteral.
package render

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/kitium-ai/lint/internal/legacy"
)

// Value prints v as a JavaScript literal on a single line.
func Value(v any) string {
	var b strings.Builder
	writeValue(&b, v)
	return b.String()
}

// Key prints an object key, quoting it unless it is a plain identifier.
func Key(k string) string {
	if legacy.IsIdentifier(k) {
		return k
	}
	return quote(k)
}

func writeValue(b *strings.Builder, v any) {
	switch val := v.(type) {
	case nil:
		b.WriteString("null")
	case bool:
		b.WriteString(strconv.FormatBool(val))
	case string:
		b.WriteString(quote(val))
	case float64:
		b.WriteString(formatFloat(val))
	case float32:
		b.WriteString(formatFloat(float64(val)))
	case int:
		b.WriteString(strconv.Itoa(val))
	case int64:
		b.WriteString(strconv.FormatInt(val, 10))
	case int32:
		b.WriteString(strconv.FormatInt(int64(val), 10))
	case uint64:
		b.WriteString(strconv.FormatUint(val, 10))
	case json.Number:
		b.WriteString(val.String())
	case []any:
		writeList(b, len(val), func(i int) any { return val[i] })
	case []string:
		writeList(b, len(val), func(i int) any { return val[i] })
	case map[string]any:
		writeObject(b, val)
	case legacy.FormatterSettings:
		writeObject(b, val)
	default:
		writeValue(b, viaJSON(v))
	}
}

func writeList(b *strings.Builder, n int, item func(int) any) {
	b.WriteByte('[')
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		writeValue(b, item(i))
	}
	b.WriteByte(']')
}

func writeObject(b *strings.Builder, obj map[string]any) {
	if len(obj) == 0 {
		b.WriteString("{}")
		return
	}
	b.WriteString("{ ")
	for i, k := range SortedKeys(obj) {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(Key(k))
		b.WriteString(": ")
		writeValue(b, obj[k])
	}
	b.WriteString(" }")
}

// SortedKeys returns the keys of obj in ascending order.
func SortedKeys[V any](obj map[string]V) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "null"
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r == '\u2028' || r == '\u2029' || !unicode.IsPrint(r) {
				fmt.Fprintf(&b, `\u{%x}`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

// viaJSON converts an arbitrary value into JSON-decoded shapes.
func viaJSON(v any) any {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Sprint(v)
	}
	return out
}
