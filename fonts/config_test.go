package fonts

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

var payload = base64.StdEncoding.EncodeToString([]byte("not really a font"))

func TestParseConfig_Valid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"object", `{"fontFamily":"Roboto","fontBase64":"` + payload + `","fontStyle":"normal","fontWeight":400}`, 1},
		{"list", `[{"fontFamily":"A","fontBase64":"` + payload + `","fontStyle":"normal","fontWeight":400},
		           {"fontFamily":"A","fontBase64":"` + payload + `","fontStyle":"italic","fontWeight":700}]`, 2},
		{"empty list", `[]`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseConfig([]byte(tt.in))
			if err != nil {
				t.Fatalf("ParseConfig() error = %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("ParseConfig() = %d configs, want %d", len(got), tt.want)
			}
		})
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		field string
		text  string
	}{
		{"missing family", `{"fontBase64":"` + payload + `","fontStyle":"normal","fontWeight":400}`, "fontFamily", "missing required field"},
		{"weight as string", `{"fontFamily":"A","fontBase64":"` + payload + `","fontStyle":"normal","fontWeight":"400"}`, "fontWeight", "expected number, got string"},
		{"family as number", `{"fontFamily":1,"fontBase64":"` + payload + `","fontStyle":"normal","fontWeight":400}`, "fontFamily", "expected string, got number"},
		{"bad weight", `{"fontFamily":"A","fontBase64":"` + payload + `","fontStyle":"normal","fontWeight":500}`, "fontWeight", "must be 400 or 700, got 500"},
		{"bad base64", `{"fontFamily":"A","fontBase64":"!!!","fontStyle":"normal","fontWeight":700}`, "fontBase64", "not valid base64"},
		{"not an object", `[42]`, "", "expected object, got number"},
		{"second entry", `[{"fontFamily":"A","fontBase64":"` + payload + `","fontStyle":"normal","fontWeight":400},{"fontFamily":"B"}]`, "fontBase64", "missing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.in))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("ParseConfig() error = %v, want ErrInvalidConfig", err)
			}
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("ParseConfig() error type = %T, want *ConfigError", err)
			}
			if ce.Field != tt.field {
				t.Errorf("ConfigError.Field = %q, want %q", ce.Field, tt.field)
			}
			if !strings.Contains(err.Error(), tt.text) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.text)
			}
		})
	}
}

func TestParseConfig_ReportsIndex(t *testing.T) {
	in := `[{"fontFamily":"A","fontBase64":"` + payload + `","fontStyle":"normal","fontWeight":400},{"fontFamily":"B"}]`
	_, err := ParseConfig([]byte(in))
	var ce *ConfigError
	if !errors.As(err, &ce) || ce.Index != 1 {
		t.Errorf("ParseConfig() error = %v, want index 1", err)
	}
}
