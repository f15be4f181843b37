// Package fonts resolves font faces for text runs.
//
// A Registry maps (family, bold, italic) to a gg text.FontSource. It is
// seeded with the Go font family and accepts embedded TTF/OTF data from
// validated font configurations. Unknown families fall back to the default
// family with a warning.
package fonts

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/cases"

	"github.com/gogpu/paged/internal/logging"
)

// DefaultFamily is the family used when nothing else matches.
const DefaultFamily = "go"

// Spec selects a face.
type Spec struct {
	Family string
	Weight int
	Italic bool
}

// Key identifies a registered face. Its String form round-trips through
// ParseKey and is what recorded text commands carry as font family.
type Key struct {
	Family string
	Bold   bool
	Italic bool
}

func (k Key) String() string {
	return k.Family + "|" + strconv.FormatBool(k.Bold) + "|" + strconv.FormatBool(k.Italic)
}

// ParseKey parses the String form of a Key. The flags are read from the
// right so family names may contain "|".
func ParseKey(s string) (Key, error) {
	rest, italicText, ok1 := cutLast(s, "|")
	family, boldText, ok2 := cutLast(rest, "|")
	bold, err1 := strconv.ParseBool(boldText)
	italic, err2 := strconv.ParseBool(italicText)
	if !ok1 || !ok2 || err1 != nil || err2 != nil {
		return Key{}, fmt.Errorf("fonts: malformed face key %q", s)
	}
	return Key{Family: family, Bold: bold, Italic: italic}, nil
}

func cutLast(s, sep string) (before, after string, found bool) {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+len(sep):], true
}

type faceKey struct {
	Key
	size float64
}

// Registry is a concurrency-safe font registry.
type Registry struct {
	mu      sync.RWMutex
	sources map[Key]*text.FontSource
	faces   map[faceKey]text.Face
	warned  map[string]bool
}

// NewRegistry returns a registry holding the Go font family.
func NewRegistry() (*Registry, error) {
	r := &Registry{
		sources: make(map[Key]*text.FontSource),
		faces:   make(map[faceKey]text.Face),
		warned:  make(map[string]bool),
	}
	defaults := []struct {
		data         []byte
		bold, italic bool
	}{
		{goregular.TTF, false, false},
		{gobold.TTF, true, false},
		{goitalic.TTF, false, true},
		{gobolditalic.TTF, true, true},
	}
	for _, d := range defaults {
		if err := r.add(Key{Family: DefaultFamily, Bold: d.bold, Italic: d.italic}, d.data); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register parses data and stores it under family, weight and style.
func (r *Registry) Register(family string, weight int, style string, data []byte) error {
	k := Key{Family: normalize(family), Bold: weight >= 600, Italic: isItalic(style)}
	return r.add(k, data)
}

// RegisterConfig registers a validated Config.
func (r *Registry) RegisterConfig(c Config) error {
	if err := c.Validate(); err != nil {
		return err
	}
	data, err := c.Data()
	if err != nil {
		return err
	}
	return r.Register(c.Family, c.Weight, c.Style, data)
}

func (r *Registry) add(k Key, data []byte) error {
	src, err := text.NewFontSource(data)
	if err != nil {
		return fmt.Errorf("fonts: parse %s: %w", k.Family, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[k] = src
	for fk := range r.faces {
		if fk.Key == k {
			delete(r.faces, fk)
		}
	}
	return nil
}

// Resolve picks the best registered key for spec. The family list is
// searched in order; each family prefers the exact style, then any style.
func (r *Registry) Resolve(spec Spec) Key {
	bold, italic := spec.Weight >= 600, spec.Italic
	r.mu.RLock()
	for _, fam := range splitFamilies(spec.Family) {
		for _, k := range candidates(fam, bold, italic) {
			if _, ok := r.sources[k]; ok {
				r.mu.RUnlock()
				return k
			}
		}
	}
	r.mu.RUnlock()

	if spec.Family != "" {
		r.warnOnce(spec.Family)
	}
	for _, k := range candidates(DefaultFamily, bold, italic) {
		if r.has(k) {
			return k
		}
	}
	return Key{Family: DefaultFamily}
}

// Face returns the face for spec at size, resolved through Resolve.
func (r *Registry) Face(spec Spec, size float64) (text.Face, Key) {
	k := r.Resolve(spec)
	return r.FaceFor(k, size), k
}

// FaceFor returns the cached face for a resolved key, or nil when the key
// is not registered.
func (r *Registry) FaceFor(k Key, size float64) text.Face {
	fk := faceKey{Key: k, size: size}
	r.mu.RLock()
	f, ok := r.faces[fk]
	src := r.sources[k]
	r.mu.RUnlock()
	if ok {
		return f
	}
	if src == nil {
		return nil
	}
	f = src.Face(size)
	r.mu.Lock()
	r.faces[fk] = f
	r.mu.Unlock()
	return f
}

// ResolveFace maps a recorded font family (a Key string) and size back to a
// face. Unparseable names resolve as plain family names.
func (r *Registry) ResolveFace(name string, size float64) text.Face {
	k, err := ParseKey(name)
	if err != nil {
		k = r.Resolve(Spec{Family: name, Weight: 400})
	}
	if f := r.FaceFor(k, size); f != nil {
		return f
	}
	f, _ := r.Face(Spec{Family: k.Family, Weight: boolWeight(k.Bold), Italic: k.Italic}, size)
	return f
}

func (r *Registry) has(k Key) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.sources[k]
	return ok
}

func (r *Registry) warnOnce(family string) {
	r.mu.Lock()
	seen := r.warned[family]
	r.warned[family] = true
	r.mu.Unlock()
	if !seen {
		logging.Logger().Warn("fonts: family not registered, using default", "family", family, "default", DefaultFamily)
	}
}

func candidates(family string, bold, italic bool) []Key {
	return []Key{
		{family, bold, italic},
		{family, bold, false},
		{family, false, italic},
		{family, false, false},
		{family, true, false},
		{family, true, true},
		{family, false, true},
	}
}

func splitFamilies(list string) []string {
	var out []string
	for _, f := range strings.Split(list, ",") {
		if f = normalize(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func normalize(family string) string {
	family = strings.Trim(strings.TrimSpace(family), `"'`)
	return cases.Fold().String(family)
}

func isItalic(style string) bool {
	s := normalize(style)
	return s == "italic" || s == "oblique"
}

func boolWeight(bold bool) int {
	if bold {
		return 700
	}
	return 400
}
