package filter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jmespath/go-jmespath"
	"github.com/studiowebux/restadmin/internal/types"
)

// ContainsFold reports whether text contains term, ignoring case.
// An empty term matches everything.
func ContainsFold(text, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(term))
}

// Apply applies filter and query expressions to decoded records.
// Filter narrows results (e.g., [?active==`true`])
// Query transforms/selects fields (e.g., [].name)
func Apply(records []types.Record, filter string, query string) (any, error) {
	data, err := toPlain(records)
	if err != nil {
		return nil, err
	}

	if filter != "" {
		data, err = search(data, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to apply filter: %w", err)
		}
	}

	if query != "" {
		data, err = search(data, query)
		if err != nil {
			return nil, fmt.Errorf("failed to apply query: %w", err)
		}
	}

	return data, nil
}

// IsValidJMESPath checks if an expression is valid JMESPath syntax
func IsValidJMESPath(expression string) bool {
	_, err := jmespath.Compile(expression)
	return err == nil
}

func search(data any, expression string) (any, error) {
	jp, err := jmespath.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid JMESPath expression '%s': %w", expression, err)
	}

	result, err := jp.Search(data)
	if err != nil {
		return nil, fmt.Errorf("JMESPath search failed: %w", err)
	}
	return result, nil
}

// toPlain round-trips records through JSON so JMESPath sees float64
// numbers instead of json.Number values.
func toPlain(records []types.Record) (any, error) {
	raw, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to encode records: %w", err)
	}
	var plain any
	if err := json.Unmarshal(raw, &plain); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}
	return plain, nil
}
