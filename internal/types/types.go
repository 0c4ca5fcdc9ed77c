package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// IDField is the name of the identifier field every record carries
const IDField = "id"

// Record is one entity instance of the current model
type Record map[string]any

// ID returns the record identifier rendered as text, or "" when absent
func (r Record) ID() string {
	v, ok := r[IDField]
	if !ok || v == nil {
		return ""
	}
	return FormatValue(v)
}

// Text returns the display text of a field and whether it holds a value.
// Missing, null and empty-string values report false.
func (r Record) Text(name string) (string, bool) {
	v, ok := r[name]
	if !ok || v == nil {
		return "", false
	}
	s := FormatValue(v)
	if s == "" {
		return "", false
	}
	return s, true
}

// Keys returns the record field names in sorted order
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FormatValue renders a decoded JSON scalar the way it is shown in a table cell
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case []byte:
		return string(val)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	}
}

// DecodeJSON decodes a JSON document keeping numbers as json.Number
func DecodeJSON(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeRecords decodes a JSON array of records
func DecodeRecords(data []byte) ([]Record, error) {
	v, err := DecodeJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return RecordsFrom(v)
}

// RecordsFrom converts a decoded JSON value into records
func RecordsFrom(v any) ([]Record, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a JSON array of records, got %T", v)
	}
	records := make([]Record, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("item %d: expected a JSON object, got %T", i, item)
		}
		records = append(records, Record(obj))
	}
	return records, nil
}

// Field describes one editable attribute of the current model
type Field struct {
	Name      string `json:"name" yaml:"name"`
	InputType string `json:"type" yaml:"type"`
}
