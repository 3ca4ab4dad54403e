package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRTFCRE(t *testing.T) {
	tests := map[string]string{
		"KAT":          "KAt",
		"TD":           "Td",
		"T-D":          "Td",
		"-D":           "d",
		"RR":           "Rr",
		"SKWR":         "SKWR",
		"KA*T":         "KA*t",
		"TEFT/-G":      "TEft/g",
		"STKPW/HRAEUT": "STKPW/HRAEUt",
		"#":            "#",
		"PHAO*EUPBD":   "PHAO*EUpbd",
		"kat":          "KAt",
	}
	for rtfcre, want := range tests {
		keys, err := ParseRTFCRE(rtfcre)
		require.NoError(t, err, rtfcre)
		assert.Equal(t, want, keys.String(), rtfcre)
	}
}

func TestParseRTFCREErrors(t *testing.T) {
	for _, bad := range []string{"TK/", "ZT", "X", "AA", "KAT//T"} {
		_, err := ParseRTFCRE(bad)
		assert.Error(t, err, bad)
		assert.True(t, errors.Is(err, ErrBadKey), bad)
	}
}

func TestRtfcreRoundTrip(t *testing.T) {
	for _, rtfcre := range []string{"KAT", "T-D", "-D", "KA*T",
		"TEFT/-G", "STKPW/HRAEUT", "R-R", "#", "-PBLGS"} {
		keys := MustParseRTFCRE(rtfcre)
		assert.Equal(t, rtfcre, keys.Rtfcre())
	}
}

func TestNormalizeRTFCRE(t *testing.T) {
	normal, err := DefaultLayout.NormalizeRTFCRE("TD")
	require.NoError(t, err)
	assert.Equal(t, "T-D", normal)
	_, err = DefaultLayout.NormalizeRTFCRE("DT")
	assert.Error(t, err)
}

func TestMustParseRTFCREPanics(t *testing.T) {
	assert.Panics(t, func() { MustParseRTFCRE("QQ") })
}
