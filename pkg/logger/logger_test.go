package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/relief-inventory-api/pkg/logger"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, logger.ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, logger.ParseLevel(" WARN "))
	assert.Equal(t, zerolog.WarnLevel, logger.ParseLevel("warning"))
	assert.Equal(t, zerolog.ErrorLevel, logger.ParseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, logger.ParseLevel("desconocido"))
}

func TestNew_ProduccionEscribeJSONConServicioYComponente(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "info", Service: "relief", Out: &buf})

	comp := l.Component("import")
	comp.Info().Int("rows", 3).Msg("listo")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "relief", line["service"])
	assert.Equal(t, "import", line["component"])
	assert.Equal(t, "listo", line["message"])
	assert.EqualValues(t, 3, line["rows"])
}

func TestNew_FiltraPorNivel(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "warn", Out: &buf})

	l.Info().Msg("no debe aparecer")
	assert.Zero(t, buf.Len())

	l.Warn().Msg("sí")
	assert.Contains(t, buf.String(), "sí")
}
