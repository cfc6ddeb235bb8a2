package params

import (
	"fmt"
	"math"
	"strconv"
)

// Translate converts one parameter into command-line tokens.
//
// A nil value means absent: no tokens are produced and the pipeline's
// own default applies downstream. Booleans are presence-only flags:
// true yields ["--name"], false yields nothing, and an explicit
// "--name false" is never emitted. All other kinds yield
// ["--name", stringified] when present.
//
// Translate is pure and deterministic: no I/O, no side effects.
func Translate(spec Spec, value any) ([]string, error) {
	if value == nil {
		return nil, nil
	}

	flag := "--" + spec.Name

	if spec.Kind == KindBool {
		b, ok := value.(bool)
		if !ok {
			return nil, fmt.Errorf("parameter %s: expected bool, got %T", spec.Name, value)
		}
		if !b {
			return nil, nil
		}
		return []string{flag}, nil
	}

	s, err := stringify(spec, value)
	if err != nil {
		return nil, err
	}
	return []string{flag, s}, nil
}

// BuildFlags translates every registered parameter in registry order.
// Bound values win over spec defaults; parameters that are absent and
// have no default are omitted entirely. The run name parameter is run
// identity, not a pipeline flag, and is skipped.
//
// Given identical bindings, two calls produce identical token sequences.
func BuildFlags(values Values) ([]string, error) {
	var tokens []string
	for _, spec := range Registry() {
		if spec.Name == RunNameParam {
			continue
		}

		value, bound := values.Lookup(spec.Name)
		if !bound {
			value = spec.Default
		}

		flagTokens, err := Translate(spec, value)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, flagTokens...)
	}
	return tokens, nil
}

// stringify converts a present non-bool value into its wire form.
func stringify(spec Spec, value any) (string, error) {
	switch spec.Kind {
	case KindInt:
		switch v := value.(type) {
		case int:
			return strconv.Itoa(v), nil
		case int64:
			return strconv.FormatInt(v, 10), nil
		case float64:
			// JSON numbers decode as float64; only integral values are valid.
			if v != math.Trunc(v) {
				return "", fmt.Errorf("parameter %s: expected integer, got %v", spec.Name, v)
			}
			return strconv.FormatInt(int64(v), 10), nil
		default:
			return "", fmt.Errorf("parameter %s: expected integer, got %T", spec.Name, value)
		}

	case KindEnum:
		switch v := value.(type) {
		case Mode:
			return v.String(), nil
		case string:
			mode, err := ParseMode(v)
			if err != nil {
				return "", fmt.Errorf("parameter %s: %w", spec.Name, err)
			}
			return mode.String(), nil
		default:
			return "", fmt.Errorf("parameter %s: expected mode name, got %T", spec.Name, value)
		}

	case KindString, KindFile, KindDir:
		v, ok := value.(string)
		if !ok {
			return "", fmt.Errorf("parameter %s: expected string, got %T", spec.Name, value)
		}
		return v, nil

	default:
		return "", fmt.Errorf("parameter %s: unsupported kind %s", spec.Name, spec.Kind)
	}
}
