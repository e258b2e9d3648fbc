package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustLoad(t *testing.T) {
	t.Run("Defaults fill what the file leaves out", func(t *testing.T) {
		// Given: a config file that only sets the storage kind
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("storage:\n  kind: redis\n"), 0o600))

		// When: it is loaded
		conf := MustLoad(path)

		// Then: the remaining fields carry their defaults
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, StorageRedis, conf.Storage.Kind)
		assert.Equal(t, "save", conf.Storage.Slot)
		assert.False(t, conf.Storage.Strict)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
	})

	t.Run("Missing file panics", func(t *testing.T) {
		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "absent.yml"))
		})
	})
}
