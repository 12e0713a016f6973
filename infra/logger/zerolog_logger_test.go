package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLoggerMethods(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologLoggerTo(&buf, "test")
	require.NotNil(t, l)
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Warnf("warn")
	l.Errorf("error")
	assert.Contains(t, buf.String(), `"component":"test"`)
	assert.Contains(t, buf.String(), "info test")
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv("EVTOL_LOG_LEVEL", "debug")
	var buf bytes.Buffer
	l := NewZerologLoggerTo(&buf, "test")
	l.Debugf("visible")
	assert.Contains(t, buf.String(), "visible")
}
