package configuration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withoutEnvFile направляет чтение конфигурации на несуществующий .env
func withoutEnvFile(t *testing.T) {

	t.Helper()
	t.Setenv(envFileVar, filepath.Join(t.TempDir(), "absent.env"))
}

// TestReadConfigDefaults проверяет значения по умолчанию без .env файла
func TestReadConfigDefaults(t *testing.T) {

	withoutEnvFile(t)

	cfg, err := ReadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, "../InputFiles", cfg.Files.InputDir)
	assert.Equal(t, ".", cfg.Files.OutputDir)
	assert.Equal(t, "merge", cfg.Sort.Algorithm)
	assert.Equal(t, 1000, cfg.Sort.Threshold)
	assert.Equal(t, 3, cfg.Sort.MaxDepth)
	assert.Equal(t, "ascending,descending,lastletter", cfg.Sort.Orders)
	assert.Equal(t, "futures", cfg.Read.Mode)
	assert.Equal(t, 3, cfg.Read.RetryCount)
	assert.Equal(t, 50*time.Millisecond, cfg.Read.RetryDelay)
	assert.True(t, cfg.Run.Single)
	assert.True(t, cfg.Run.Multi)
	assert.Empty(t, cfg.Observability.MetricsFile)
}

// TestReadConfigFromEnvFile проверяет загрузку из .env файла
func TestReadConfigFromEnvFile(t *testing.T) {

	env := map[string]string{
		"INPUT_DIR":        "/data/in",
		"SORT_ALGORITHM":   "bubble",
		"READ_MODE":        "threaded",
		"READ_RETRY_DELAY": "10ms",
		"RUN_SINGLE":       "false",
	}
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, godotenv.Write(env, path))
	t.Setenv(envFileVar, path)

	// значения из .env попадают в окружение процесса - убираем их за собой
	t.Cleanup(func() {
		for k := range env {
			_ = os.Unsetenv(k)
		}
	})

	cfg, err := ReadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, "/data/in", cfg.Files.InputDir)
	assert.Equal(t, "bubble", cfg.Sort.Algorithm)
	assert.Equal(t, "threaded", cfg.Read.Mode)
	assert.Equal(t, 10*time.Millisecond, cfg.Read.RetryDelay)
	assert.False(t, cfg.Run.Single)
	assert.True(t, cfg.Run.Multi)
}

// TestReadConfigFlags проверяет, что флаги перекрывают окружение
func TestReadConfigFlags(t *testing.T) {

	withoutEnvFile(t)
	t.Setenv("SORT_ALGORITHM", "bubble")

	cfg, err := ReadConfig([]string{"-i", "in", "--output=out", "--algorithm", "threaded-bubble", "--multi=false", "--generate", "4"})
	require.NoError(t, err)

	assert.Equal(t, "in", cfg.Files.InputDir)
	assert.Equal(t, "out", cfg.Files.OutputDir)
	assert.Equal(t, "threaded-bubble", cfg.Sort.Algorithm)
	assert.False(t, cfg.Run.Multi)
	assert.Equal(t, 4, cfg.Run.Generate)
}

// TestReadConfigInvalid тестирует отказ на невалидных значениях
func TestReadConfigInvalid(t *testing.T) {

	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"неизвестный алгоритм", map[string]string{"SORT_ALGORITHM": "quick"}, nil},
		{"неизвестный способ чтения", map[string]string{"READ_MODE": "mmap"}, nil},
		{"нулевой порог", map[string]string{"SORT_THREAD_THRESHOLD": "0"}, nil},
		{"нет попыток открытия", map[string]string{"READ_RETRY_COUNT": "0"}, nil},
		{"неизвестный флаг", nil, []string{"--unknown"}},
		{"лишний аргумент", nil, []string{"extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withoutEnvFile(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := ReadConfig(tt.args)
			assert.Error(t, err)
		})
	}
}
