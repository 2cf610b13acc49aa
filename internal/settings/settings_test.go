package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noDotenv points Load at a file that does not exist.
func noDotenv(t *testing.T) string {
	t.Helper()

	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoad_Defaults(t *testing.T) {
	s, err := Load(noDotenv(t))
	require.NoError(t, err)

	assert.Equal(t, ".lintel-cache", s.CachePath)
	assert.False(t, s.NoCache)
	assert.Zero(t, s.Jobs)
	assert.Empty(t, s.Configs)
	assert.Equal(t, 10*time.Second, s.RemoteTimeout)
	assert.Equal(t, "warn", s.Logging.Level)
	assert.Equal(t, "text", s.Logging.Format)
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("LINTEL_CACHE_PATH", "/tmp/cache")
	t.Setenv("LINTEL_NO_CACHE", "true")
	t.Setenv("LINTEL_JOBS", "4")
	t.Setenv("LINTEL_CONFIG", "base.yml,team.yml")
	t.Setenv("LINTEL_REMOTE_TIMEOUT", "2s")
	t.Setenv("LINTEL_LOG_LEVEL", "debug")
	t.Setenv("LINTEL_LOG_FORMAT", "json")

	s, err := Load(noDotenv(t))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/cache", s.CachePath)
	assert.True(t, s.NoCache)
	assert.Equal(t, 4, s.Jobs)
	assert.Equal(t, []string{"base.yml", "team.yml"}, s.Configs)
	assert.Equal(t, 2*time.Second, s.RemoteTimeout)
	assert.Equal(t, "debug", s.Logging.Level)
	assert.Equal(t, "json", s.Logging.Format)
}

func TestLoad_Dotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LINTEL_JOBS=3\n"), 0o600))

	// Loaded variables stay in the process environment.
	t.Setenv("LINTEL_JOBS", "")
	require.NoError(t, os.Unsetenv("LINTEL_JOBS"))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Jobs)

	t.Run("environment wins over dotenv", func(t *testing.T) {
		t.Setenv("LINTEL_JOBS", "8")

		s, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 8, s.Jobs)
	})
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		want string
	}{
		{"log level", "LINTEL_LOG_LEVEL", "verbose", "must be one of"},
		{"log format", "LINTEL_LOG_FORMAT", "xml", "must be one of"},
		{"negative jobs", "LINTEL_JOBS", "-1", "must be at least"},
		{"timeout", "LINTEL_REMOTE_TIMEOUT", "0s", "remote timeout"},
		{"not a number", "LINTEL_JOBS", "many", "failed to parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			_, err := Load(noDotenv(t))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
