package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestInitWriterLevels(t *testing.T) {
	t.Cleanup(func() { InitWriter(false, &bytes.Buffer{}) })

	var buf bytes.Buffer
	InitWriter(false, &buf)
	assert.False(t, DebugEnabled())
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	log.Debug().Msg("quiet detail")
	log.Info().Str("account", "local").Msg("level up")
	assert.NotContains(t, buf.String(), "quiet detail")
	assert.Contains(t, buf.String(), "level up")
	assert.Contains(t, buf.String(), "local")

	buf.Reset()
	InitWriter(true, &buf)
	assert.True(t, DebugEnabled())
	log.Debug().Msg("loud detail")
	assert.Contains(t, buf.String(), "loud detail")
}
