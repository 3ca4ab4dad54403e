package types

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var ErrBadKey = errors.New("invalid steno key")

// LayoutKey is one position on the steno keyboard.
type LayoutKey struct {
	Rtfcre rune // How the key is written in RTFCRE.
	SKey   Key  // The unique s-keys token.
	Side   Side
}

type Side uint8

const (
	SideLeft Side = iota
	SideCenter
	SideRight
)

// Layout is the ordered key list of a steno keyboard.
type Layout struct {
	keys       []LayoutKey
	rightStart int
	bySKey     map[Key]LayoutKey
}

// DefaultLayout is the standard English stenotype layout.
var DefaultLayout = NewLayout("#STKPWHR", "AO*EU", "FRPBLGTSDZ")

// NewLayout
// Builds a layout from its left, center and right key rows, each written in
// steno order. Right-hand keys become lower case s-keys.
func NewLayout(left, center, right string) *Layout {
	layout := &Layout{
		keys:   make([]LayoutKey, 0, len(left)+len(center)+len(right)),
		bySKey: make(map[Key]LayoutKey),
	}
	add := func(row string, side Side) {
		for _, r := range row {
			sk := Key(r)
			if side == SideRight {
				sk = Key(unicode.ToLower(r))
			}
			lk := LayoutKey{Rtfcre: r, SKey: sk, Side: side}
			layout.keys = append(layout.keys, lk)
			layout.bySKey[sk] = lk
		}
	}
	add(left, SideLeft)
	add(center, SideCenter)
	layout.rightStart = len(layout.keys)
	add(right, SideRight)
	return layout
}

// ParseRTFCRE
// Converts RTFCRE steno notation ("KAT", "T-D", "TEFT/-G") into Keys. Each
// stroke must list its keys in steno order; a hyphen moves to the right
// side of the board.
func (layout *Layout) ParseRTFCRE(s string) (Keys, error) {
	s = strings.TrimSpace(s)
	keys := make(Keys, 0, len(s))
	for strokeIdx, stroke := range strings.Split(s, string(Separator)) {
		if strokeIdx > 0 {
			keys = append(keys, Separator)
		}
		if stroke == "" {
			return nil, fmt.Errorf("%w: empty stroke in %q", ErrBadKey, s)
		}
		pos := 0
		for _, r := range stroke {
			if r == '-' {
				if pos < layout.rightStart {
					pos = layout.rightStart
				}
				continue
			}
			found := -1
			for i := pos; i < len(layout.keys); i++ {
				if layout.keys[i].Rtfcre == unicode.ToUpper(r) {
					found = i
					break
				}
			}
			if found == -1 {
				return nil, fmt.Errorf("%w: %q out of order or unknown in %q",
					ErrBadKey, r, s)
			}
			keys = append(keys, layout.keys[found].SKey)
			pos = found + 1
		}
	}
	return keys, nil
}

// Rtfcre
// Renders keys in canonical RTFCRE, inserting a hyphen before the first
// right-hand key of a stroke that has no center key.
func (layout *Layout) Rtfcre(keys Keys) string {
	var sb strings.Builder
	sb.Grow(len(keys) + 2)
	center := false
	for _, k := range keys {
		if k == Separator {
			sb.WriteRune(rune(Separator))
			center = false
			continue
		}
		lk, ok := layout.bySKey[k]
		if !ok {
			sb.WriteRune(rune(k))
			continue
		}
		switch lk.Side {
		case SideCenter:
			center = true
		case SideRight:
			if !center {
				sb.WriteRune('-')
				center = true
			}
		}
		sb.WriteRune(lk.Rtfcre)
	}
	return sb.String()
}

// NormalizeRTFCRE round-trips s through the layout.
func (layout *Layout) NormalizeRTFCRE(s string) (string, error) {
	keys, err := layout.ParseRTFCRE(s)
	if err != nil {
		return "", err
	}
	return layout.Rtfcre(keys), nil
}

// ParseRTFCRE parses s with the default layout.
func ParseRTFCRE(s string) (Keys, error) {
	return DefaultLayout.ParseRTFCRE(s)
}

// MustParseRTFCRE parses s and panics on error. Only for known-valid
// constants and tests.
func MustParseRTFCRE(s string) Keys {
	keys, err := ParseRTFCRE(s)
	if err != nil {
		panic(err)
	}
	return keys
}
