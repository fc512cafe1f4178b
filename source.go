package llmskema

import (
	"bytes"

	j "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// JSONBytes decodes strict JSON into the dynamic representation the schema
// tree validates (map[string]any / []any / json.Number / string / bool /
// nil). Numbers are preserved as json.Number to avoid float64 precision
// loss before the number schema decides how to treat them.
func JSONBytes(data []byte) (any, error) {
	dec := j.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// YAMLBytes decodes a single YAML document into the same dynamic
// representation as JSONBytes. Non-string map keys are stringified the way
// JSON would render them.
func YAMLBytes(data []byte) (any, error) {
	var node any
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	return yamlNormalize(node), nil
}

func yamlNormalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = yamlNormalize(e)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[stringifyKey(k)] = yamlNormalize(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = yamlNormalize(e)
		}
		return out
	default:
		return v
	}
}

func stringifyKey(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	b, err := j.Marshal(k)
	if err != nil {
		return "?"
	}
	return string(b)
}
