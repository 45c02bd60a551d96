package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("ENV", "")
		conf, err := NewConfig()
		require.NoError(t, err)

		assert.Equal(t, "DEV", conf.Env)
		assert.False(t, conf.TestMode)
		assert.Equal(t, "http://localhost:8000", conf.API.BaseURL)
		assert.Equal(t, 15*time.Second, conf.API.Timeout)
		assert.Equal(t, ":8000", conf.Server.Address)
		assert.Equal(t, "memory", conf.Database.Engine)
		assert.Equal(t, "localhost:5432", conf.Database.Address())
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("ENV", "test")
		t.Setenv("TEST_API_BASEURL", "http://api.example.com/")
		t.Setenv("TEST_API_TIMEOUT", "3s")
		t.Setenv("TEST_DATABASE_ENGINE", "SQLite")

		conf, err := NewConfig()
		require.NoError(t, err)
		assert.Equal(t, "TEST", conf.Env)
		assert.True(t, conf.TestMode)
		assert.Equal(t, "http://api.example.com", conf.API.BaseURL)
		assert.Equal(t, 3*time.Second, conf.API.Timeout)
		assert.Equal(t, "sqlite", conf.Database.Engine)
	})

	t.Run("dotenv file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, "config"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config", ".env.qa"), []byte("QA_SERVER_ADDRESS=:9090\n"), 0o600))

		wd, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(dir))
		t.Cleanup(func() {
			_ = os.Chdir(wd)
			_ = os.Unsetenv("QA_SERVER_ADDRESS")
		})

		t.Setenv("ENV", "qa")
		conf, err := NewConfig()
		require.NoError(t, err)
		assert.Equal(t, ":9090", conf.Server.Address)
	})
}

func TestFillPath(t *testing.T) {
	assert.Equal(t, "/admin/course/42", FillPath("/admin/course/{id}", "42"))
	assert.Equal(t, "/admin/get_all_course", FillPath("/admin/get_all_course", "42"))
}

func TestCleanString(t *testing.T) {
	assert.Equal(t, "Admin@Example.com", CleanString("  Admin@Example.com "))
	assert.Equal(t, "admin@example.com", CleanString("  Admin@Example.com ", true))
}
