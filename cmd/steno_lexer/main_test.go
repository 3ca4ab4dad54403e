package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	verbose, configPath, rsrcFlag = false, "", ""
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestMatchCommand(t *testing.T) {
	out, err := execute(t, "match", "KAT", "cat")
	require.NoError(t, err)
	assert.Contains(t, out, "K-.c")
	assert.NotContains(t, out, "K- ")
}

func TestAnalyzeCommand(t *testing.T) {
	out, err := execute(t, "analyze", "TEFT/-G", "testing")
	require.NoError(t, err)
	assert.Contains(t, out, "TEFT/-G → \"testing\" (7 letters matched)")
	assert.Contains(t, out, "-G.ing")
	assert.NotContains(t, out, "unmatched")
}

func TestAnalyzeCommand_BadChord(t *testing.T) {
	_, err := execute(t, "analyze", "KAXT", "cat")
	assert.Error(t, err)
}

func TestTextCommand(t *testing.T) {
	out, err := execute(t, "text", "the", "cat")
	require.NoError(t, err)
	assert.Contains(t, out, "-T.the")
	assert.Contains(t, out, "KAT → \"cat\"")
}

func TestDictCommand(t *testing.T) {
	out, err := execute(t, "dict")
	require.NoError(t, err)
	assert.Contains(t, out, "/13 complete")
}

func TestTreeCommand(t *testing.T) {
	out, err := execute(t, "tree")
	require.NoError(t, err)
	assert.Contains(t, out, "[K-,K-.c]")
}

func TestMissingResources(t *testing.T) {
	_, err := execute(t, "-r", t.TempDir(), "tree")
	assert.Error(t, err)
}
