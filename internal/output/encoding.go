// Package output renders result records deterministically for the
// PR-comment layer: identical inputs always produce byte-identical
// output.
package output

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// EncodeJSON produces indented JSON with stable key ordering. The value
// is round-tripped through generic maps so struct field order cannot
// influence the output.
func EncodeJSON(v any) ([]byte, error) {
	normalized, err := normalize(v)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(normalized); err != nil {
		return nil, err
	}

	out := buf.Bytes()
	if len(out) > 0 && out[len(out)-1] == '\n' {
		out = out[:len(out)-1]
	}
	return out, nil
}

// EncodeYAML renders the value as YAML, with the same normalization as
// the JSON path so field names match across formats.
func EncodeYAML(v any) ([]byte, error) {
	normalized, err := normalize(v)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(normalized)
}

// normalize converts v into generic maps and slices. JSON object keys are
// emitted in sorted order by encoding/json, which is what makes the
// output deterministic.
func normalize(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, err
	}
	return generic, nil
}
