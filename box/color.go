package box

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidColor is returned when a color string cannot be parsed.
var ErrInvalidColor = errors.New("box: invalid color")

// Color is a packed 0xRRGGBBAA color. A zero alpha byte means transparent.
type Color uint32

// Well-known colors.
const (
	Transparent Color = 0x00000000
	Black       Color = 0x000000FF
	White       Color = 0xFFFFFFFF
)

// RGBA packs 8-bit components into a Color.
func RGBA(r, g, b, a uint8) Color {
	return Color(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a))
}

// Components unpacks c into 8-bit red, green, blue and alpha.
func (c Color) Components() (r, g, b, a uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Alpha returns the alpha channel in [0, 1].
func (c Color) Alpha() float64 {
	return float64(uint8(c)) / 255
}

// IsTransparent reports whether the alpha channel is zero.
func (c Color) IsTransparent() bool {
	return uint8(c) == 0
}

// String formats c as #rrggbbaa.
func (c Color) String() string {
	return fmt.Sprintf("#%08x", uint32(c))
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	v, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ParseColor parses "transparent", #rgb, #rgba, #rrggbb, #rrggbbaa,
// rgb(r, g, b) and rgba(r, g, b, a) with a fractional alpha.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case s == "transparent" || s == "":
		return Transparent, nil
	case strings.HasPrefix(s, "#"):
		return parseHexColor(s[1:])
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		return parseFuncColor(s[5:len(s)-1], true)
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseFuncColor(s[4:len(s)-1], false)
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

func parseHexColor(h string) (Color, error) {
	switch len(h) {
	case 3, 4:
		var sb strings.Builder
		for _, ch := range h {
			sb.WriteRune(ch)
			sb.WriteRune(ch)
		}
		h = sb.String()
	case 6, 8:
	default:
		return 0, fmt.Errorf("%w: #%s", ErrInvalidColor, h)
	}
	if len(h) == 6 {
		h += "ff"
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: #%s", ErrInvalidColor, h)
	}
	return Color(v), nil
}

func parseFuncColor(args string, withAlpha bool) (Color, error) {
	parts := strings.Split(args, ",")
	if (withAlpha && len(parts) != 4) || (!withAlpha && len(parts) != 3) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidColor, args)
	}
	var ch [4]uint8
	ch[3] = 255
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidColor, args)
		}
		ch[i] = uint8(v)
	}
	if withAlpha {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidColor, args)
		}
		ch[3] = uint8(a*255 + 0.5)
	}
	return RGBA(ch[0], ch[1], ch[2], ch[3]), nil
}
