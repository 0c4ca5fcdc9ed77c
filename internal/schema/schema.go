// Package schema derives the editable field list of the current model.
package schema

import (
	"encoding/json"

	"github.com/studiowebux/restadmin/internal/types"
)

// Fields returns the form inputs as field descriptors in order, skipping
// unnamed inputs and the id field. It is recomputed on every call.
func Fields(inputs []types.Field) []types.Field {
	fields := make([]types.Field, 0, len(inputs))
	for _, in := range inputs {
		if in.Name == "" || in.Name == types.IDField {
			continue
		}
		fields = append(fields, in)
	}
	return fields
}

// Resolve returns the form inputs for a model: the configured definition when
// one exists, otherwise inputs inferred from the loaded records.
func Resolve(model string, defs map[string]types.ModelDef, records []types.Record) []types.Field {
	if def, ok := defs[model]; ok && len(def.Fields) > 0 {
		return def.FormInputs()
	}
	return Infer(records)
}

// Infer builds form inputs from the union of record keys, sorted by name.
// The input type is guessed from the first non-null value seen.
func Infer(records []types.Record) []types.Field {
	union := make(types.Record)
	for _, r := range records {
		for name, v := range r {
			if union[name] == nil {
				union[name] = v
			}
		}
	}

	names := union.Keys()
	inputs := make([]types.Field, 0, len(names))
	for _, name := range names {
		if name == types.IDField {
			continue
		}
		kind := inputTypeOf(union[name])
		if kind == "" {
			kind = "text"
		}
		inputs = append(inputs, types.Field{Name: name, InputType: kind})
	}
	return inputs
}

func inputTypeOf(v any) string {
	switch v.(type) {
	case nil:
		return ""
	case json.Number, float64, int, int64:
		return "number"
	case bool:
		return "checkbox"
	default:
		return "text"
	}
}
