package fonts

import (
	"encoding/base64"
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrInvalidConfig is the sentinel wrapped by every *ConfigError.
var ErrInvalidConfig = errors.New("fonts: invalid font config")

// ConfigError describes the first problem found in a font configuration.
type ConfigError struct {
	Index  int
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("fonts: config[%d]: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("fonts: config[%d]: field %s: %s", e.Index, e.Field, e.Reason)
}

// Is reports ErrInvalidConfig.
func (e *ConfigError) Is(target error) bool { return target == ErrInvalidConfig }

// Config is one embedded font face.
type Config struct {
	Family string `json:"fontFamily"`
	Base64 string `json:"fontBase64"`
	Style  string `json:"fontStyle"`
	Weight int    `json:"fontWeight"`
}

// Validate checks the weight enum and base64 payload of a Config built in Go.
func (c Config) Validate() error {
	return c.validate(0)
}

func (c Config) validate(i int) error {
	if c.Family == "" {
		return &ConfigError{Index: i, Field: "fontFamily", Reason: "must not be empty"}
	}
	if c.Weight != 400 && c.Weight != 700 {
		return &ConfigError{Index: i, Field: "fontWeight", Reason: fmt.Sprintf("must be 400 or 700, got %d", c.Weight)}
	}
	if _, err := base64.StdEncoding.DecodeString(c.Base64); err != nil {
		return &ConfigError{Index: i, Field: "fontBase64", Reason: "not valid base64: " + err.Error()}
	}
	return nil
}

// Data decodes the embedded font bytes.
func (c Config) Data() ([]byte, error) {
	return base64.StdEncoding.DecodeString(c.Base64)
}

var requiredFields = []struct {
	key  string
	kind string
}{
	{"fontFamily", "string"},
	{"fontBase64", "string"},
	{"fontStyle", "string"},
	{"fontWeight", "number"},
}

// ParseConfig strictly validates and decodes a JSON font configuration:
// either a single object or a list of objects. Every required field must
// be present with the right JSON type and fontWeight must be 400 or 700.
func ParseConfig(data []byte) ([]Config, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ConfigError{Reason: "malformed JSON: " + err.Error()}
	}
	var list []any
	switch v := raw.(type) {
	case []any:
		list = v
	default:
		list = []any{v}
	}

	out := make([]Config, 0, len(list))
	for i, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, &ConfigError{Index: i, Reason: fmt.Sprintf("expected object, got %s", jsonKind(item))}
		}
		for _, f := range requiredFields {
			val, present := obj[f.key]
			if !present {
				return nil, &ConfigError{Index: i, Field: f.key, Reason: "missing required field"}
			}
			if got := jsonKind(val); got != f.kind {
				return nil, &ConfigError{Index: i, Field: f.key, Reason: fmt.Sprintf("type error: expected %s, got %s", f.kind, got)}
			}
		}
		w := obj["fontWeight"].(float64)
		c := Config{
			Family: obj["fontFamily"].(string),
			Base64: obj["fontBase64"].(string),
			Style:  obj["fontStyle"].(string),
			Weight: int(w),
		}
		if float64(c.Weight) != w {
			return nil, &ConfigError{Index: i, Field: "fontWeight", Reason: fmt.Sprintf("must be 400 or 700, got %v", w)}
		}
		if err := c.validate(i); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}
