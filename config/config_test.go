package config

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const memoryConfigYAML = `
env:
  serviceName: test
  log:
    level: debug
http:
  port: 8080
storage:
  driver: memory
auth:
  principals:
    - user: them
      key: D4ED43C0-8BD6-4FE2-B358-7C0E230D11EF
`

func writeConfig(t *testing.T, name, body string) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".yaml"), []byte(body), 0o600))
	t.Chdir(dir)
}

func TestLoadWithEnv_AppliesEnvOverrides(t *testing.T) {
	writeConfig(t, "config", memoryConfigYAML)
	t.Setenv("AUTH_BCRYPTCOST", "4")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	require.NotNil(t, cfg.Auth)
	assert.Equal(t, 4, cfg.Auth.BcryptCost)
	assert.Equal(t, []PrincipalConfig{{User: "them", Key: "D4ED43C0-8BD6-4FE2-B358-7C0E230D11EF"}}, cfg.Auth.Principals)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("absent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.yaml not found")
}

func TestNew_AppliesDefaults(t *testing.T) {
	writeConfig(t, "config", memoryConfigYAML)
	t.Setenv("AUTH_PRINCIPALS", "ops:s3cr3t:with:colons")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, defaultHost, cfg.HTTP.Host)
	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	assert.Equal(t, bcrypt.DefaultCost, cfg.Auth.BcryptCost)
	assert.Equal(t, http.StatusInternalServerError, cfg.Auth.MissingCredentialsStatus)
	assert.Equal(t, defaultMetricsPath, cfg.Metrics.Path)
	assert.Equal(t, []PrincipalConfig{
		{User: "them", Key: "D4ED43C0-8BD6-4FE2-B358-7C0E230D11EF"},
		{User: "ops", Key: "s3cr3t:with:colons"},
	}, cfg.Auth.Principals)
}

func TestNew_RejectsUnknownStorageDriver(t *testing.T) {
	writeConfig(t, "config", "storage:\n  driver: mongo\n")

	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage driver")
}

func TestNew_PostgresRequiresSection(t *testing.T) {
	writeConfig(t, "config", "storage:\n  driver: postgres\n")

	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres section is missing")
}

func TestParsePrincipals(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []PrincipalConfig
		wantErr bool
	}{
		{name: "empty", raw: "  "},
		{name: "single", raw: "them:key", want: []PrincipalConfig{{User: "them", Key: "key"}}},
		{
			name: "multiple with blanks",
			raw:  "a:1, ,b:2",
			want: []PrincipalConfig{{User: "a", Key: "1"}, {User: "b", Key: "2"}},
		},
		{name: "missing separator", raw: "them", wantErr: true},
		{name: "empty key", raw: "them:", wantErr: true},
		{name: "empty user", raw: ":key", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePrincipals(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
