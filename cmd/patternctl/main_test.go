package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunExtract(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), "extract", nil, strings.NewReader("Pattern Name: Beanie"), &out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Beanie"}`, out.String())
}

func TestRunHelp(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), "help", nil, nil, &out))
	assert.Contains(t, out.String(), "usage: patternctl")
}

func TestRunUnknownCommand(t *testing.T) {
	t.Setenv("VAULT_BACKEND", "file")
	t.Setenv("VAULT_DIR", t.TempDir())
	t.Setenv("LOG_LEVEL", "error")

	err := run(context.Background(), "frobnicate", nil, nil, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestRunStatus(t *testing.T) {
	t.Setenv("VAULT_BACKEND", "file")
	t.Setenv("VAULT_DIR", t.TempDir())
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), "status", nil, nil, &out))
	assert.Contains(t, out.String(), `"authenticated": false`)
	assert.Contains(t, out.String(), `"vault_backend": "encrypted-file"`)
}
