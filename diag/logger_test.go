package diag

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger_NilUsesNop(t *testing.T) {
	l := NewLogger(nil)
	require.NotPanics(t, func() {
		l.Info("hello")
	})
}

func TestLogger_RecordsFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := NewLogger(zap.New(core))

	l.Info("migration complete", zap.Uint32("slot", 7), zap.String("from", "v0"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	require.Equal(t, "migration complete", entry.Message)
	require.Equal(t, uint32(7), entry.ContextMap()["slot"])
	require.Equal(t, "v0", entry.ContextMap()["from"])
}

func TestLogger_With(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := NewLogger(zap.New(core)).With(zap.String("region", "r1"))

	l.Warn("retry under contention")

	require.Equal(t, 1, logs.Len())
	require.Equal(t, "r1", logs.All()[0].ContextMap()["region"])
}
