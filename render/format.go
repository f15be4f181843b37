package render

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// ErrUnknownFormat is returned for page format names missing from Formats.
var ErrUnknownFormat = errors.New("render: unknown page format")

// DefaultFormat is used when no page size is configured.
const DefaultFormat = "a4"

// Size is a page size in CSS pixels.
type Size struct {
	Width  float64
	Height float64
}

// Formats maps lower-case format names to their size at 96 DPI.
var Formats = map[string]Size{
	"a0": {3179, 4494}, "a1": {2245, 3179}, "a2": {1587, 2245}, "a3": {1123, 1587},
	"a4": {794, 1123}, "a5": {559, 794}, "a6": {397, 559}, "a7": {280, 397},
	"a8": {197, 280}, "a9": {140, 197}, "a10": {98, 140},

	"b0": {3780, 5344}, "b1": {2672, 3780}, "b2": {1890, 2672}, "b3": {1334, 1890},
	"b4": {945, 1334}, "b5": {665, 945}, "b6": {472, 665}, "b7": {333, 472},
	"b8": {234, 333}, "b9": {166, 234}, "b10": {117, 166},

	"c0": {3466, 4902}, "c1": {2449, 3466}, "c2": {1731, 2449}, "c3": {1225, 1731},
	"c4": {865, 1225}, "c5": {612, 865}, "c6": {431, 612}, "c7": {306, 431},
	"c8": {215, 306}, "c9": {151, 215}, "c10": {106, 151},

	"dl":                {416, 832},
	"letter":            {816, 1056},
	"government-letter": {768, 1008},
	"legal":             {816, 1344},
	"junior-legal":      {480, 768},
	"ledger":            {1632, 1056},
	"tabloid":           {1056, 1632},
	"credit-card":       {204, 324},
}

// LookupFormat returns the size of a named format. Names are matched
// case-insensitively.
func LookupFormat(name string) (Size, error) {
	key := cases.Fold().String(strings.TrimSpace(name))
	if s, ok := Formats[key]; ok {
		return s, nil
	}
	return Size{}, fmt.Errorf("%w %q", ErrUnknownFormat, name)
}

// FormatNames returns the known format names, sorted.
func FormatNames() []string {
	names := make([]string, 0, len(Formats))
	for n := range Formats {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// PxToPt converts CSS pixels (96 DPI) to points (72 DPI).
func PxToPt(px float64) float64 { return px * 72 / 96 }
