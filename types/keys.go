package types

import "strings"

// Key is one physical steno key in s-keys form: left and center keys are
// upper case, right-hand keys are lower case, so every key has its own rune.
type Key rune

// Keys is an ordered sequence of steno keys. Strokes are delimited by
// Separator tokens.
type Keys []Key

const (
	Separator Key = '/'
	Star      Key = '*'
	Number    Key = '#'
)

// KeysFromString
// Converts an s-keys string (e.g. "Kat/-g" written as "Kat/g") into Keys
// without any validation against the layout.
func KeysFromString(s string) Keys {
	keys := make(Keys, 0, len(s))
	for _, r := range s {
		keys = append(keys, Key(r))
	}
	return keys
}

func (keys Keys) Len() int {
	return len(keys)
}

func (keys Keys) IsEmpty() bool {
	return len(keys) == 0
}

// First returns the first key, or 0 if there is none.
func (keys Keys) First() Key {
	if len(keys) == 0 {
		return 0
	}
	return keys[0]
}

// At returns the key at index i, or 0 if out of bounds.
func (keys Keys) At(i int) Key {
	if i < 0 || i >= len(keys) {
		return 0
	}
	return keys[i]
}

// FirstStroke
// Returns the keys up to and including the first separator, or all keys if
// there is no separator.
func (keys Keys) FirstStroke() Keys {
	for i, k := range keys {
		if k == Separator {
			return keys[:i+1]
		}
	}
	return keys
}

// TrimSeparator returns the keys with one trailing separator removed.
func (keys Keys) TrimSeparator() Keys {
	if n := len(keys); n > 0 && keys[n-1] == Separator {
		return keys[:n-1]
	}
	return keys
}

func (keys Keys) HasSeparator() bool {
	for _, k := range keys {
		if k == Separator {
			return true
		}
	}
	return false
}

func (keys Keys) HasSeparatorAt(i int) bool {
	return i >= 0 && i < len(keys) && keys[i] == Separator
}

func (keys Keys) Equals(other Keys) bool {
	if len(keys) != len(other) {
		return false
	}
	for i, k := range keys {
		if other[i] != k {
			return false
		}
	}
	return true
}

// StartsWith is a token-wise prefix test.
func (keys Keys) StartsWith(prefix Keys) bool {
	if len(prefix) > len(keys) {
		return false
	}
	for i, k := range prefix {
		if keys[i] != k {
			return false
		}
	}
	return true
}

// Without returns a copy of the keys with every occurrence of key removed.
func (keys Keys) Without(key Key) Keys {
	out := make(Keys, 0, len(keys))
	for _, k := range keys {
		if k != key {
			out = append(out, k)
		}
	}
	return out
}

// TrimPrefix
// Removes prefix from the front of keys. Keys for which unordered returns
// true may be passed over when they do not match the next prefix key; the
// skipped keys are kept, in order, at the front of the remainder. Returns
// false if prefix does not match.
func (keys Keys) TrimPrefix(prefix Keys, unordered func(Key) bool) (Keys,
	bool) {
	var skipped Keys
	i := 0
	for _, want := range prefix {
		for i < len(keys) && keys[i] != want && unordered != nil &&
			unordered(keys[i]) {
			skipped = append(skipped, keys[i])
			i++
		}
		if i >= len(keys) || keys[i] != want {
			return nil, false
		}
		i++
	}
	if len(skipped) == 0 {
		return keys[i:], true
	}
	return append(skipped, keys[i:]...), true
}

// String returns the raw s-keys form.
func (keys Keys) String() string {
	var sb strings.Builder
	sb.Grow(len(keys))
	for _, k := range keys {
		sb.WriteRune(rune(k))
	}
	return sb.String()
}

// Rtfcre returns the canonical RTFCRE form under the default layout.
func (keys Keys) Rtfcre() string {
	return DefaultLayout.Rtfcre(keys)
}
