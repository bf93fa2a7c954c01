package logging

import (
	"bytes"
	"errors"
	"testing"

	color "git.handmade.network/hmn/ltree/src/ansicolor"
	"git.handmade.network/hmn/ltree/src/oops"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func init() {
	color.Disable()
}

func TestPrettyWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(NewPrettyZerologWriter(&buf))

	t.Run("single line", func(t *testing.T) {
		buf.Reset()
		logger.Info().Msg("registered ltree")
		assert.Equal(t, "INFO: registered ltree\n", buf.String())
	})
	t.Run("fields", func(t *testing.T) {
		buf.Reset()
		logger.Warn().Uint32("oid", 24754).Str("source", "default").Msg("falling back")
		out := buf.String()
		assert.Contains(t, out, "WARN: falling back\n")
		assert.Contains(t, out, "    oid: 24754\n")
		assert.Contains(t, out, `    source: "default"`)
	})
	t.Run("oops stack", func(t *testing.T) {
		buf.Reset()
		logger.Error().Stack().Err(oops.New(errors.New("boom"), "lookup failed")).Msg("uh oh")
		out := buf.String()
		assert.Contains(t, out, "ERROR: lookup failed: boom\n")
		assert.Contains(t, out, "Stack trace:")
		assert.Contains(t, out, "TestPrettyWriter")
	})
	t.Run("not json", func(t *testing.T) {
		buf.Reset()
		w := NewPrettyZerologWriter(&buf)
		n, err := w.Write([]byte("plain text"))
		assert.Nil(t, err)
		assert.Equal(t, 10, n)
		assert.Equal(t, "plain text", buf.String())
	})
}

func TestLogPanics(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(NewPrettyZerologWriter(&buf))

	assert.NotPanics(t, func() {
		defer LogPanics(&logger)
		panic("ltree is not installed")
	})
	assert.Contains(t, buf.String(), "recovered from panic")
	assert.Contains(t, buf.String(), "ltree is not installed")
}
