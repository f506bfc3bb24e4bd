package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventpass/internal/config"
)

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{{"serve"}, {"migrate", "up"}, {"migrate", "down"}, {"migrate", "version"}} {
		c, _, err := rootCmd.Find(path)
		require.NoError(t, err, "%v", path)
		assert.Equal(t, path[len(path)-1], c.Name())
	}
	steps := migrateDownCmd.Flags().Lookup("steps")
	require.NotNil(t, steps)
	assert.Equal(t, "1", steps.DefValue)
}

func TestApplyLogFlags(t *testing.T) {
	t.Cleanup(func() { logLevel, logFormat = "", "" })

	cfg := config.LoggingConfig{Level: "info", Format: "json"}
	applyLogFlags(&cfg)
	assert.Equal(t, config.LoggingConfig{Level: "info", Format: "json"}, cfg)

	logLevel, logFormat = "debug", "console"
	applyLogFlags(&cfg)
	assert.Equal(t, config.LoggingConfig{Level: "debug", Format: "console"}, cfg)
}
