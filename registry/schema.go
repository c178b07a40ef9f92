package registry

import (
	"fmt"
	"strconv"

	"github.com/bvald/jvq"
)

// Validate checks JSON text against a JSON Schema subset: type,
// properties, required, items and enum. The first violation is returned
// with the offending document path.
func Validate(jsonText, schemaText string) error {
	data, err := jvq.Unmarshal(jsonText)
	if err != nil {
		return fmt.Errorf("invalid document: %w", err)
	}
	schema, err := jvq.Unmarshal(schemaText)
	if err != nil {
		return fmt.Errorf("invalid schema: %w", err)
	}
	return validateValue(data, schema, "")
}

func validateValue(data, schema *jvq.Value, path string) error {
	if !schema.IsObject() {
		return nil
	}

	if st := schema.ObjectGet("type"); st.IsString() {
		switch want := st.Str(); want {
		case "object", "array", "string", "number", "boolean", "null":
			if got := data.Kind().String(); got != want {
				return fmt.Errorf("type mismatch at %q, expected %q got %q",
					path, want, got)
			}
		}
	}

	if req := schema.ObjectGet("required"); req.IsArray() {
		if !data.IsObject() {
			return fmt.Errorf("expected object at %q for required properties", path)
		}
		for _, name := range req.ArrayElems() {
			if !name.IsString() {
				continue
			}
			if !data.ObjectHas(name.Str()) {
				return fmt.Errorf("missing required property %q at %q",
					name.Str(), path)
			}
		}
	}

	if props := schema.ObjectGet("properties"); props.IsObject() {
		if !data.IsObject() {
			return fmt.Errorf("expected object at %q for properties", path)
		}
		var err error
		props.ObjectEach(func(key string, sub *jvq.Value) bool {
			if data.ObjectHas(key) {
				err = validateValue(data.ObjectGet(key), sub, joinPath(path, key))
			}
			return err == nil
		})
		if err != nil {
			return err
		}
		data.ObjectEach(func(key string, _ *jvq.Value) bool {
			if !props.ObjectHas(key) {
				err = fmt.Errorf("unknown property %q at %q", key, path)
			}
			return err == nil
		})
		if err != nil {
			return err
		}
	}

	if enum := schema.ObjectGet("enum"); enum.IsArray() {
		match := false
		for _, e := range enum.ArrayElems() {
			if jvq.Compare(e, data) == 0 {
				match = true
				break
			}
		}
		if !match {
			return fmt.Errorf("enum mismatch at %q", path)
		}
	}

	if items := schema.ObjectGet("items"); !items.IsNull() {
		if !data.IsArray() {
			return fmt.Errorf("expected array at %q for items", path)
		}
		for i, elem := range data.ArrayElems() {
			sub := path + "[" + strconv.Itoa(i) + "]"
			if err := validateValue(elem, items, sub); err != nil {
				return err
			}
		}
	}

	return nil
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
