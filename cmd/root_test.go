package cmd

import (
	"bytes"
	"context"
	"testing"

	"heartmatch-backend/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLoggerLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	setupLogger(config.LogConfig{Level: "debug", Format: "json"})
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	setupLogger(config.LogConfig{Level: "nonsense"})
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestOpenMemoryStores(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Driver = config.DriverMemory

	st, err := openStores(context.Background(), cfg)
	require.NoError(t, err)
	defer st.Close()
	assert.NotNil(t, st.users)
	assert.NotNil(t, st.profiles)
	assert.NotNil(t, st.swipes)
	assert.Nil(t, st.health)
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["migrate"])
	assert.True(t, names["score"])
}

func TestScoreRequiresFlags(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"score"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	assert.Error(t, err)
}
