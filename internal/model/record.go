package model

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Kind identifies what a cell Value holds
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	default:
		return "unknown"
	}
}

// Value is a single spreadsheet cell: a string, a number, or null.
// The zero Value is Null.
type Value struct {
	kind Kind
	str  string
	num  float64
}

// Null is the placeholder for an empty cell
var Null = Value{}

// String creates a string cell value
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Number creates a numeric cell value
func Number(n float64) Value {
	return Value{kind: KindNumber, num: n}
}

// Kind reports what the value holds
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is the null placeholder
func (v Value) IsNull() bool { return v.kind == KindNull }

// Num returns the numeric payload (0 for non-numbers)
func (v Value) Num() float64 { return v.num }

// Text returns the display text of the value.
// Null renders as the empty string, numbers use the shortest exact form.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	default:
		return ""
	}
}

// String implements fmt.Stringer
func (v Value) String() string {
	if v.kind == KindNull {
		return "null"
	}
	return v.Text()
}

// Record is one spreadsheet row: an ordered mapping from column key to Value
type Record struct {
	keys  []string
	cells map[string]Value
}

// NewRecord creates an empty Record with room for n columns
func NewRecord(n int) Record {
	return Record{
		keys:  make([]string, 0, n),
		cells: make(map[string]Value, n),
	}
}

// Set assigns a value to key. New keys are appended after existing ones;
// re-setting an existing key keeps its position.
func (r *Record) Set(key string, v Value) {
	if r.cells == nil {
		r.cells = make(map[string]Value)
	}
	if _, exists := r.cells[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.cells[key] = v
}

// Get returns the value stored under key and whether the key is present.
// A missing key yields Null.
func (r Record) Get(key string) (Value, bool) {
	v, ok := r.cells[key]
	return v, ok
}

// Has reports whether the key is present, regardless of its value
func (r Record) Has(key string) bool {
	_, ok := r.cells[key]
	return ok
}

// Keys returns the column keys in insertion order
func (r Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of columns in the record
func (r Record) Len() int {
	return len(r.keys)
}

// Values returns the cell values in key order
func (r Record) Values() []Value {
	out := make([]Value, len(r.keys))
	for i, k := range r.keys {
		out[i] = r.cells[k]
	}
	return out
}

// Equal reports whether two records hold the same keys, in the same order,
// with the same values.
func (r Record) Equal(other Record) bool {
	if len(r.keys) != len(other.keys) {
		return false
	}
	for i, k := range r.keys {
		if other.keys[i] != k {
			return false
		}
		if r.cells[k] != other.cells[k] {
			return false
		}
	}
	return true
}

// Dataset is the full, unfiltered sequence of rows in original order
type Dataset []Record

// View is the subsequence of a Dataset matching the active filter
type View []Record

// Columns returns the union of column keys: the keys of the first row,
// followed by keys first seen in later rows.
func Columns(rows []Record) []string {
	var cols []string
	seen := make(map[string]bool)
	for _, r := range rows {
		for _, k := range r.keys {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, k)
			}
		}
	}
	return cols
}

// MarshalJSON encodes null, string and number values as their JSON forms
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return json.Marshal(v.num)
	default:
		return []byte("null"), nil
	}
}

// MarshalJSON encodes the record as an object with keys in column order
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := r.cells[k].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
