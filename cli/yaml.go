package cli

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/bvald/jvq"
)

// decodeYAML parses a YAML document into the engine's value model.
func decodeYAML(data []byte) (*jvq.Value, error) {
	var x any
	if err := yaml.Unmarshal(data, &x); err != nil {
		return nil, err
	}
	return jvq.FromAny(fixMapKeyToString(x))
}

// Older YAML decoders produce map[interface{}]interface{}; normalize
// every key to a string before conversion.
func fixMapKeyToString(v any) any {
	switch v := v.(type) {
	case map[any]any:
		w := make(map[string]any, len(v))
		for k, x := range v {
			w[fmt.Sprint(k)] = fixMapKeyToString(x)
		}
		return w
	case map[string]any:
		w := make(map[string]any, len(v))
		for k, x := range v {
			w[k] = fixMapKeyToString(x)
		}
		return w
	case []any:
		for i, x := range v {
			v[i] = fixMapKeyToString(x)
		}
		return v
	default:
		return v
	}
}

// encodeYAML renders a value as a YAML document.
func encodeYAML(v *jvq.Value) ([]byte, error) {
	var bs bytes.Buffer
	enc := yaml.NewEncoder(&bs)
	enc.SetIndent(2)
	if err := enc.Encode(jvq.ToAny(v)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return bs.Bytes(), nil
}
