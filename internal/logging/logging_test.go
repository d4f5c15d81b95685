package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitAndGet(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	log, err := Init(Options{Level: "debug", Output: &buf})
	require.NoError(t, err)

	log.Info().Str("component", "test").Msg("hello")

	out := buf.String()
	assert.Contains(t, out, `"component":"test"`)
	assert.Contains(t, out, `"message":"hello"`)

	// Get returns the same instance after Init.
	got := Get()
	got.Debug().Msg("again")
	assert.Contains(t, buf.String(), "again")
}

func TestInitIsIdempotent(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var first bytes.Buffer
	_, err := Init(Options{Output: &first})
	require.NoError(t, err)

	var second bytes.Buffer
	_, err = Init(Options{Output: &second})
	require.NoError(t, err)

	got := Get()
	got.Info().Msg("routed")
	assert.Contains(t, first.String(), "routed")
	assert.Empty(t, second.String())
}

func TestGetBeforeInitPanics(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	assert.Panics(t, func() { Get() })
}

func TestLevelFiltering(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	log, err := Init(Options{Level: "warn", Output: &buf})
	require.NoError(t, err)

	log.Info().Msg("dropped")
	log.Warn().Msg("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}
