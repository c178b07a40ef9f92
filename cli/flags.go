package cli

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// parseFlags fills opts (a pointer to a struct with `long`/`short`/
// `default` field tags) from args and returns the remaining positional
// arguments. Bool flags take no argument; string and int flags consume
// the following argument, or for long flags an inline `=` value. Short
// flags are matched whole, so `-s=x` is an unknown flag.
func parseFlags(args []string, opts any) ([]string, error) {
	val := reflect.ValueOf(opts).Elem()
	typ := val.Type()
	longToValue := map[string]reflect.Value{}
	shortToValue := map[string]reflect.Value{}
	for i, l := 0, val.NumField(); i < l; i++ {
		field := typ.Field(i)
		if name, ok := field.Tag.Lookup("long"); ok {
			longToValue[name] = val.Field(i)
		}
		if name, ok := field.Tag.Lookup("short"); ok {
			shortToValue[name] = val.Field(i)
		}
		if def, ok := field.Tag.Lookup("default"); ok {
			if err := setFlagValue(val.Field(i), def); err != nil {
				return nil, err
			}
		}
	}

	rest := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			rest = append(rest, args[i+1:]...)
			break
		}
		var fv reflect.Value
		var ok bool
		var inline string
		var hasInline bool
		switch {
		case strings.HasPrefix(arg, "--"):
			name := arg[2:]
			if j := strings.IndexByte(name, '='); j >= 0 {
				name, inline, hasInline = name[:j], name[j+1:], true
			}
			if fv, ok = longToValue[name]; !ok {
				return nil, fmt.Errorf("unknown flag `%s'", "--"+name)
			}
		case len(arg) > 1 && arg[0] == '-':
			if fv, ok = shortToValue[arg[1:]]; !ok {
				return nil, fmt.Errorf("unknown flag `%s'", arg)
			}
		default:
			rest = append(rest, arg)
			continue
		}
		if fv.Kind() == reflect.Bool {
			if hasInline {
				return nil, fmt.Errorf("boolean flag `%s' cannot have an argument", arg)
			}
			fv.SetBool(true)
			continue
		}
		value := inline
		if !hasInline {
			if i+1 >= len(args) {
				return nil, fmt.Errorf("expected argument for flag `%s'", arg)
			}
			i++
			value = args[i]
		}
		if err := setFlagValue(fv, value); err != nil {
			return nil, fmt.Errorf("invalid argument for flag `%s': %w", arg, err)
		}
	}
	return rest, nil
}

func setFlagValue(fv reflect.Value, value string) error {
	switch fv.Kind() {
	case reflect.String:
		fv.SetString(value)
	case reflect.Int:
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		fv.SetInt(int64(n))
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		fv.SetBool(b)
	default:
		return fmt.Errorf("unsupported flag kind %s", fv.Kind())
	}
	return nil
}
