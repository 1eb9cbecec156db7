package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Load_UsesDefaults_WhenNothingConfigured(t *testing.T) {
	t.Setenv("APP_CONFIG", filepath.Join(t.TempDir(), "missing.json"))

	cfg := Load()

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 50, cfg.Paging.DefaultPageSize)
	assert.Equal(t, 30, cfg.Report.OverdueDays)
	assert.Equal(t, EngineSQL, cfg.Recommend.Engine)
	assert.False(t, cfg.IsProd())
}

func Test_Load_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"env": "production",
		"paging": {"defaultPageSize": 20},
		"report": {"overdueDays": 14},
		"database": {"dbname": "from_file"}
	}`), 0o600))
	t.Setenv("APP_CONFIG", path)
	t.Setenv("PAGE_SIZE_DEFAULT", "25")
	t.Setenv("RECOMMEND_ENGINE", " Memory ")

	cfg := Load()

	assert.True(t, cfg.IsProd())
	assert.Equal(t, 25, cfg.Paging.DefaultPageSize)
	assert.Equal(t, 14, cfg.Report.OverdueDays)
	assert.Equal(t, "from_file", cfg.Database.DBName)
	assert.Equal(t, EngineMemory, cfg.Recommend.Engine)
}

func Test_Load_NormalizesInvalidValues(t *testing.T) {
	t.Setenv("APP_CONFIG", filepath.Join(t.TempDir(), "missing.json"))
	t.Setenv("PAGE_SIZE_DEFAULT", "0")
	t.Setenv("REPORT_OVERDUE_DAYS", "-1")
	t.Setenv("RECOMMEND_ENGINE", "graph")

	cfg := Load()

	assert.Equal(t, 50, cfg.Paging.DefaultPageSize)
	assert.Equal(t, 30, cfg.Report.OverdueDays)
	assert.Equal(t, EngineSQL, cfg.Recommend.Engine)
}

func Test_DSN_SwitchesOnUnixSocket(t *testing.T) {
	cfg := Default()
	cfg.Database.Username, cfg.Database.Password = "lib", "secret"

	assert.Equal(t, "lib:secret@tcp(localhost:3306)/library?charset=utf8mb4&parseTime=True&loc=Local", cfg.DSN())

	cfg.Database.UseUnixSock = true
	cfg.Database.Host = "/var/run/mysqld/mysqld.sock"
	assert.Equal(t, "lib:secret@unix(/var/run/mysqld/mysqld.sock)/library?charset=utf8mb4&parseTime=True&loc=Local", cfg.DSN())
}

func Test_SplitEnvList_DropsBlanks(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitEnvList(" a, ,b"))
	assert.Nil(t, splitEnvList(""))
}
