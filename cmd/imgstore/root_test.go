package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseImageID(t *testing.T) {
	id, err := parseImageID("42")
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	for _, bad := range []string{"", "0", "-3", "abc", "4.2"} {
		_, err := parseImageID(bad)
		assert.Error(t, err, bad)
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()

	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["assets"])
	assert.True(t, names["views"])

	cmd, _, err := root.Find([]string{"views", "archive"})
	require.NoError(t, err)
	assert.Equal(t, "archive", cmd.Name())
	cmd, _, err = root.Find([]string{"assets", "put"})
	require.NoError(t, err)
	assert.Equal(t, "put", cmd.Name())
}

func TestRootCmd_RejectsBadImageID(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"assets", "ref", "not-a-number"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid image id")
}
