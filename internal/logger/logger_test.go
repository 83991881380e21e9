package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	for _, mode := range []string{"dev", "prod", "PRODUCTION", ""} {
		t.Run(mode, func(t *testing.T) {
			log, err := New(mode)
			require.NoError(t, err)
			require.NotNil(t, log.SugaredLogger)

			child := log.With("component", "test")
			assert.NotSame(t, log, child)
		})
	}
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Debug("discarded", "k", "v")
	log.Info("discarded")
	log.Warn("discarded")
	log.Error("discarded")
	log.With("k", "v").Info("discarded")
	log.Sync()
}

func TestWith_AddsFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := &Logger{SugaredLogger: zap.New(core).Sugar()}

	log.With("request_id", "abc").Info("reconciled", "matches", 2)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "reconciled", entries[0].Message)
	assert.Equal(t, map[string]interface{}{"request_id": "abc", "matches": int64(2)}, entries[0].ContextMap())
}
