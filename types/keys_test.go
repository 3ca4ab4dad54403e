package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func isStar(k Key) bool {
	return k == Star
}

func TestKeysBasics(t *testing.T) {
	keys := KeysFromString("Kat/g")
	assert.Equal(t, 5, keys.Len())
	assert.False(t, keys.IsEmpty())
	assert.Equal(t, Key('K'), keys.First())
	assert.Equal(t, Key('g'), keys.At(4))
	assert.Equal(t, Key(0), keys.At(5))
	assert.Equal(t, Key(0), Keys{}.First())
	assert.True(t, Keys{}.IsEmpty())
	assert.Equal(t, "Kat/g", keys.String())
}

func TestKeysFirstStroke(t *testing.T) {
	assert.Equal(t, KeysFromString("Kat/"),
		KeysFromString("Kat/g").FirstStroke())
	assert.Equal(t, KeysFromString("Kat"), KeysFromString("Kat").FirstStroke())
	assert.Equal(t, KeysFromString("/"), KeysFromString("/g").FirstStroke())
	assert.Equal(t, KeysFromString("Kat"),
		KeysFromString("Kat/").TrimSeparator())
	assert.Equal(t, KeysFromString("Kat"),
		KeysFromString("Kat").TrimSeparator())
}

func TestKeysSeparators(t *testing.T) {
	keys := KeysFromString("*/g")
	assert.True(t, keys.HasSeparator())
	assert.True(t, keys.HasSeparatorAt(1))
	assert.False(t, keys.HasSeparatorAt(0))
	assert.False(t, keys.HasSeparatorAt(-1))
	assert.False(t, keys.HasSeparatorAt(3))
	assert.False(t, KeysFromString("Kat").HasSeparator())
}

func TestKeysStartsWith(t *testing.T) {
	keys := KeysFromString("Td")
	assert.True(t, keys.StartsWith(KeysFromString("T")))
	assert.True(t, keys.StartsWith(KeysFromString("Td")))
	assert.True(t, keys.StartsWith(Keys{}))
	assert.False(t, keys.StartsWith(KeysFromString("d")))
	assert.False(t, keys.StartsWith(KeysFromString("Tds")))
	assert.True(t, keys.Equals(KeysFromString("Td")))
	assert.False(t, keys.Equals(KeysFromString("T")))
}

func TestKeysWithout(t *testing.T) {
	keys := KeysFromString("KA*t/*")
	assert.Equal(t, "KAt/", keys.Without(Star).String())
	assert.Equal(t, "KA*t/*", keys.String(), "receiver must be unchanged")
}

func TestKeysTrimPrefix(t *testing.T) {
	tests := []struct {
		keys   string
		prefix string
		want   string
		ok     bool
	}{
		{"Kat", "K", "at", true},
		{"Kat", "Kat", "", true},
		{"K*t", "Kt", "*", true},
		{"*t/g", "t", "*/g", true},
		{"Kat", "Ka", "t", true},
		{"Kat", "KA", "", false},
		{"Kat", "Kats", "", false},
		{"K*t", "K*", "t", true},
	}
	for _, test := range tests {
		rest, ok := KeysFromString(test.keys).TrimPrefix(
			KeysFromString(test.prefix), isStar)
		assert.Equal(t, test.ok, ok, "%s - %s", test.keys, test.prefix)
		if test.ok {
			assert.Equal(t, test.want, rest.String(), "%s - %s",
				test.keys, test.prefix)
		}
	}
	_, ok := KeysFromString("K*t").TrimPrefix(KeysFromString("Kt"), nil)
	assert.False(t, ok)
}
